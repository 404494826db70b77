// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the JSON file layout.
type StructuredJSONConfig struct {
	App struct {
		APIKey     string `json:"api_key"`
		ServerUUID string `json:"server_uuid"`
		LogFile    string `json:"log_file"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		RetryCount     int      `json:"retry_count"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Cache struct {
		EvictAfter   Duration `json:"evict_after"`
		StaleRetries int      `json:"stale_retries"`
	} `json:"cache,omitempty"`

	Workers struct {
		NotesDebounce      Duration `json:"notes_debounce"`
		RevalidateInterval Duration `json:"revalidate_interval"`
	} `json:"workers,omitempty"`

	Server struct {
		HTTPAddress string   `json:"http_address"`
		Latency     Duration `json:"latency"`
		RateLimit   int      `json:"rate_limit"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			APIKey:     jsonCfg.App.APIKey,
			ServerUUID: jsonCfg.App.ServerUUID,
			LogFile:    jsonCfg.App.LogFile,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
			RetryCount:     jsonCfg.Adapter.RetryCount,
		},
		Storage: Storage{
			DB: DB{DSN: jsonCfg.Storage.DB.DSN},
		},
		Cache: Cache{
			EvictAfter:   time.Duration(jsonCfg.Cache.EvictAfter),
			StaleRetries: jsonCfg.Cache.StaleRetries,
		},
		Workers: Workers{
			NotesDebounce:      time.Duration(jsonCfg.Workers.NotesDebounce),
			RevalidateInterval: time.Duration(jsonCfg.Workers.RevalidateInterval),
		},
		Server: Server{
			HTTPAddress: jsonCfg.Server.HTTPAddress,
			Latency:     time.Duration(jsonCfg.Server.Latency),
			RateLimit:   jsonCfg.Server.RateLimit,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "750ms" as well as raw nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
