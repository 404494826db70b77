// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"
)

const (
	defaultRequestTimeout = 15 * time.Second
	defaultEvictAfter     = 30 * time.Second
	defaultStaleRetries   = 3
	defaultNotesDebounce  = 750 * time.Millisecond
	defaultStubAddress    = "localhost:8080"
)

// ClientApp holds the panel credentials and the target server.
type ClientApp struct {
	// APIKey is the client API key used as a bearer token.
	APIKey string
	// ServerUUID identifies the managed game server.
	ServerUUID string
	// LogFile is the client log destination.
	LogFile string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the panel base URL.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
	// RetryCount is the transport retry count.
	RetryCount int
}

// ClientDB contains local snapshot database settings.
type ClientDB struct {
	// DSN is the SQLite file path. Empty disables persistence.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// DB holds local database settings.
	DB ClientDB
}

// ClientCache holds local cache store settings.
type ClientCache struct {
	EvictAfter   time.Duration
	StaleRetries int
}

// ClientWorkers contains client background timings.
type ClientWorkers struct {
	// NotesDebounce is the quiescence window of notes edits.
	NotesDebounce time.Duration
	// RevalidateInterval enables periodic revalidation when positive.
	RevalidateInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Cache   ClientCache
	Workers ClientWorkers
}

// StubConfig is the configuration of the stub panel server.
type StubConfig struct {
	HTTPAddress string
	ServerUUID  string
	// APIKey, when set, is the only bearer token the stub accepts.
	APIKey    string
	Latency   time.Duration
	RateLimit int
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration. Unset timings fall back to their defaults.
func GetClientConfig(args []string) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := newClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// GetStubConfig builds and validates the stub server config.
func GetStubConfig(args []string) (*StubConfig, error) {
	cfg, err := GetStructuredConfig(args)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	stubCfg := &StubConfig{
		HTTPAddress: cfg.Server.HTTPAddress,
		ServerUUID:  cfg.App.ServerUUID,
		APIKey:      cfg.App.APIKey,
		Latency:     cfg.Server.Latency,
		RateLimit:   cfg.Server.RateLimit,
	}
	if stubCfg.HTTPAddress == "" {
		stubCfg.HTTPAddress = defaultStubAddress
	}

	return stubCfg, stubCfg.validate()
}

func newClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			APIKey:     cfg.App.APIKey,
			ServerUUID: cfg.App.ServerUUID,
			LogFile:    cfg.App.LogFile,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			RetryCount:     cfg.Adapter.RetryCount,
		},
		Storage: ClientStorage{
			DB: ClientDB{DSN: cfg.Storage.DB.DSN},
		},
		Cache: ClientCache{
			EvictAfter:   cfg.Cache.EvictAfter,
			StaleRetries: cfg.Cache.StaleRetries,
		},
		Workers: ClientWorkers{
			NotesDebounce:      cfg.Workers.NotesDebounce,
			RevalidateInterval: cfg.Workers.RevalidateInterval,
		},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = defaultRequestTimeout
	}
	if clientCfg.Cache.EvictAfter == 0 {
		clientCfg.Cache.EvictAfter = defaultEvictAfter
	}
	if clientCfg.Cache.StaleRetries == 0 {
		clientCfg.Cache.StaleRetries = defaultStaleRetries
	}
	if clientCfg.Workers.NotesDebounce == 0 {
		clientCfg.Workers.NotesDebounce = defaultNotesDebounce
	}

	return clientCfg
}
