// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates all
// sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env:       direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the panel credentials and the server the client operates on.
	App App `envPrefix:"APP_"`

	// Adapter holds the outbound panel API settings.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the optional local snapshot database.
	Storage Storage `envPrefix:"STORAGE_"`

	// Cache holds local cache store tuning.
	Cache Cache `envPrefix:"CACHE_"`

	// Workers holds debounce and background revalidation timings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds the listen settings of the stub panel server.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level values.
type App struct {
	// APIKey is the client API key sent as a bearer token.
	// Env: APP_API_KEY
	APIKey string `env:"API_KEY"`

	// ServerUUID identifies the game server whose resources are managed.
	// Env: APP_SERVER_UUID
	ServerUUID string `env:"SERVER_UUID"`

	// LogFile is where the client writes its log. Empty means next to the
	// executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`
}

// Adapter holds the panel API transport settings.
type Adapter struct {
	// HTTPAddress is the base URL of the panel (e.g. "https://panel.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RetryCount is the number of transport-level retries for failed requests.
	// Env: ADAPTER_RETRY_COUNT
	RetryCount int `env:"RETRY_COUNT"`
}

// Storage groups the local persistence settings.
type Storage struct {
	// DB holds the SQLite snapshot database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds the SQLite snapshot database settings.
type DB struct {
	// DSN is the SQLite file path. Empty disables snapshot persistence.
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Cache holds local cache store settings.
type Cache struct {
	// EvictAfter is how long a collection stays cached after its last
	// subscriber is gone.
	// Env: CACHE_EVICT_AFTER
	EvictAfter time.Duration `env:"EVICT_AFTER"`

	// StaleRetries is how many times a revalidation discarded as stale is
	// re-issued.
	// Env: CACHE_STALE_RETRIES
	StaleRetries int `env:"STALE_RETRIES"`
}

// Workers holds timings of background work.
type Workers struct {
	// NotesDebounce is the quiescence window of notes edits.
	// Env: WORKERS_NOTES_DEBOUNCE
	NotesDebounce time.Duration `env:"NOTES_DEBOUNCE"`

	// RevalidateInterval enables periodic revalidation of live collections
	// when positive.
	// Env: WORKERS_REVALIDATE_INTERVAL
	RevalidateInterval time.Duration `env:"REVALIDATE_INTERVAL"`
}

// Server holds the stub panel server settings.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// Latency is added to every stub response to make optimistic updates
	// visible.
	// Env: SERVER_LATENCY
	Latency time.Duration `env:"LATENCY"`

	// RateLimit caps requests per second; excess requests get 429. Zero
	// disables the limit.
	// Env: SERVER_RATE_LIMIT
	RateLimit int `env:"RATE_LIMIT"`
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (last source wins for
// non-zero fields):
//  1. Environment variables
//  2. Command-line flags (args, usually os.Args[1:])
//  3. JSON file (path resolved from sources 1 and 2)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder(args).
		withEnv().
		withFlags().
		withJSON().
		build()
}
