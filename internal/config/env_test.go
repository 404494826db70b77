// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_AllFields(t *testing.T) {
	// Arrange
	envVars := map[string]string{
		"CONFIG": "/path/to/config.json",

		"APP_API_KEY":     "ptlc_key",
		"APP_SERVER_UUID": "1a7ce997-259b-452e-8b4e-cecc464142ca",
		"APP_LOG_FILE":    "/tmp/panel.log",

		"ADAPTER_ADDRESS":         "https://panel.example.com",
		"ADAPTER_REQUEST_TIMEOUT": "10s",
		"ADAPTER_RETRY_COUNT":     "2",

		"STORAGE_DB_DSN": "/tmp/snapshots.db",

		"CACHE_EVICT_AFTER":   "1m",
		"CACHE_STALE_RETRIES": "5",

		"WORKERS_NOTES_DEBOUNCE":      "750ms",
		"WORKERS_REVALIDATE_INTERVAL": "30s",

		"SERVER_ADDRESS": "localhost:8081",
		"SERVER_LATENCY": "200ms",
	}
	setEnvVars(t, envVars)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)

	assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)

	assert.Equal(t, "ptlc_key", cfg.App.APIKey)
	assert.Equal(t, "1a7ce997-259b-452e-8b4e-cecc464142ca", cfg.App.ServerUUID)
	assert.Equal(t, "/tmp/panel.log", cfg.App.LogFile)

	assert.Equal(t, "https://panel.example.com", cfg.Adapter.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 2, cfg.Adapter.RetryCount)

	assert.Equal(t, "/tmp/snapshots.db", cfg.Storage.DB.DSN)

	assert.Equal(t, time.Minute, cfg.Cache.EvictAfter)
	assert.Equal(t, 5, cfg.Cache.StaleRetries)

	assert.Equal(t, 750*time.Millisecond, cfg.Workers.NotesDebounce)
	assert.Equal(t, 30*time.Second, cfg.Workers.RevalidateInterval)

	assert.Equal(t, "localhost:8081", cfg.Server.HTTPAddress)
	assert.Equal(t, 200*time.Millisecond, cfg.Server.Latency)
}

func TestParseEnv_EmptyEnv(t *testing.T) {
	// Arrange
	clearEnvVars(t)

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

func TestParseEnv_InvalidDuration(t *testing.T) {
	// Arrange
	setEnvVars(t, map[string]string{
		"WORKERS_NOTES_DEBOUNCE": "soon",
	})

	// Act
	cfg := &StructuredConfig{}
	err := parseEnv(cfg)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "env")
}

func TestParseEnv_DurationFormats(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"milliseconds", "750ms", 750 * time.Millisecond},
		{"seconds", "30s", 30 * time.Second},
		{"combined", "1m30s", 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvVars(t, map[string]string{
				"ADAPTER_REQUEST_TIMEOUT": tt.envValue,
			})

			cfg := &StructuredConfig{}
			err := parseEnv(cfg)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Adapter.RequestTimeout)
		})
	}
}

// Helpers

func setEnvVars(t *testing.T, vars map[string]string) {
	t.Helper()
	clearEnvVars(t)
	for k, v := range vars {
		require.NoError(t, os.Setenv(k, v))
		t.Cleanup(func() { _ = os.Unsetenv(k) })
	}
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	keys := []string{
		"CONFIG",

		"APP_API_KEY",
		"APP_SERVER_UUID",
		"APP_LOG_FILE",

		"ADAPTER_ADDRESS",
		"ADAPTER_REQUEST_TIMEOUT",
		"ADAPTER_RETRY_COUNT",

		"STORAGE_DB_DSN",

		"CACHE_EVICT_AFTER",
		"CACHE_STALE_RETRIES",

		"WORKERS_NOTES_DEBOUNCE",
		"WORKERS_REVALIDATE_INTERVAL",

		"SERVER_ADDRESS",
		"SERVER_LATENCY",
	}
	for _, k := range keys {
		_ = os.Unsetenv(k)
	}
}
