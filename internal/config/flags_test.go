// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Host: "", Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expectError bool
		expected    NetAddress
	}{
		{name: "localhost", input: "localhost:8080", expected: NetAddress{Host: "localhost", Port: 8080}},
		{name: "ip", input: "127.0.0.1:9000", expected: NetAddress{Host: "127.0.0.1", Port: 9000}},
		{name: "any host", input: ":8080", expected: NetAddress{Port: 8080}},
		{name: "missing port", input: "localhost", expectError: true},
		{name: "non numeric port", input: "localhost:abc", expectError: true},
		{name: "port out of range", input: "localhost:70000", expectError: true},
		{name: "zero port", input: "localhost:0", expectError: true},
		{name: "bad ip", input: "999.1.1.1:80", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, addr)
		})
	}
}

// TestParseFlags tests the ParseFlags function
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		validate func(t *testing.T, cfg *StructuredConfig)
	}{
		{
			name: "all flags set",
			args: []string{
				"-a", "https://panel.example.com",
				"-k", "ptlc_key",
				"-s", "1a7ce997-259b-452e-8b4e-cecc464142ca",
				"-log-file", "/tmp/panel.log",
				"-d", "/tmp/snapshots.db",
				"-c", "/path/to/config.json",
				"-request-timeout", "10s",
				"-retry-count", "2",
				"-evict-after", "1m",
				"-stale-retries", "4",
				"-notes-debounce", "500ms",
				"-revalidate-interval", "30s",
				"-listen", "127.0.0.1:8081",
				"-latency", "100ms",
			},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "https://panel.example.com", cfg.Adapter.HTTPAddress)
				assert.Equal(t, "ptlc_key", cfg.App.APIKey)
				assert.Equal(t, "1a7ce997-259b-452e-8b4e-cecc464142ca", cfg.App.ServerUUID)
				assert.Equal(t, "/tmp/panel.log", cfg.App.LogFile)
				assert.Equal(t, "/tmp/snapshots.db", cfg.Storage.DB.DSN)
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
				assert.Equal(t, 10*time.Second, cfg.Adapter.RequestTimeout)
				assert.Equal(t, 2, cfg.Adapter.RetryCount)
				assert.Equal(t, time.Minute, cfg.Cache.EvictAfter)
				assert.Equal(t, 4, cfg.Cache.StaleRetries)
				assert.Equal(t, 500*time.Millisecond, cfg.Workers.NotesDebounce)
				assert.Equal(t, 30*time.Second, cfg.Workers.RevalidateInterval)
				assert.Equal(t, "127.0.0.1:8081", cfg.Server.HTTPAddress)
				assert.Equal(t, 100*time.Millisecond, cfg.Server.Latency)
			},
		},
		{
			name: "config alias flag",
			args: []string{"-config", "/path/to/config.json"},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, "/path/to/config.json", cfg.JSONFilePath)
			},
		},
		{
			name: "no flags",
			args: []string{},
			validate: func(t *testing.T, cfg *StructuredConfig) {
				assert.Equal(t, &StructuredConfig{}, cfg)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			require.NoError(t, err)
			require.NotNil(t, cfg)
			tt.validate(t, cfg)
		})
	}
}

// TestParseFlags_InvalidValues tests ParseFlags with values that do not parse
func TestParseFlags_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "invalid listen address format", args: []string{"-listen", "invalid"}},
		{name: "invalid port in listen address", args: []string{"-listen", "localhost:abc"}},
		{name: "invalid duration", args: []string{"-notes-debounce", "later"}},
		{name: "unknown flag", args: []string{"-grpc-address", "localhost:9090"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseFlags(tt.args)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
