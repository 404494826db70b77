// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testServerUUID = "1a7ce997-259b-452e-8b4e-cecc464142ca"

func TestNewClientConfig_AppliesDefaults(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		App:     App{APIKey: "key", ServerUUID: testServerUUID},
		Adapter: Adapter{HTTPAddress: "http://panel"},
	})

	assert.Equal(t, defaultRequestTimeout, cfg.Adapter.RequestTimeout)
	assert.Equal(t, defaultEvictAfter, cfg.Cache.EvictAfter)
	assert.Equal(t, defaultStaleRetries, cfg.Cache.StaleRetries)
	assert.Equal(t, 750*time.Millisecond, cfg.Workers.NotesDebounce)
	assert.Zero(t, cfg.Workers.RevalidateInterval)
	require.NoError(t, cfg.validate())
}

func TestNewClientConfig_KeepsExplicitValues(t *testing.T) {
	cfg := newClientConfig(&StructuredConfig{
		Adapter: Adapter{RequestTimeout: time.Second},
		Workers: Workers{NotesDebounce: 100 * time.Millisecond},
	})

	assert.Equal(t, time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Workers.NotesDebounce)
}

func TestClientConfig_Validate(t *testing.T) {
	valid := func() *ClientConfig {
		return newClientConfig(&StructuredConfig{
			App:     App{APIKey: "key", ServerUUID: testServerUUID},
			Adapter: Adapter{HTTPAddress: "http://panel"},
		})
	}

	tests := []struct {
		name    string
		mutate  func(cfg *ClientConfig)
		wantErr error
	}{
		{name: "valid", mutate: func(*ClientConfig) {}},
		{name: "missing address", mutate: func(cfg *ClientConfig) { cfg.Adapter.HTTPAddress = "" }, wantErr: ErrInvalidAdapterConfigs},
		{name: "missing api key", mutate: func(cfg *ClientConfig) { cfg.App.APIKey = "" }, wantErr: ErrInvalidAppConfigs},
		{name: "bad server uuid", mutate: func(cfg *ClientConfig) { cfg.App.ServerUUID = "not-a-uuid" }, wantErr: ErrInvalidAppConfigs},
		{name: "negative revalidate", mutate: func(cfg *ClientConfig) { cfg.Workers.RevalidateInterval = -time.Second }, wantErr: ErrInvalidWorkerConfigs},
		{name: "negative evict", mutate: func(cfg *ClientConfig) { cfg.Cache.EvictAfter = -time.Second }, wantErr: ErrInvalidCacheConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetClientConfig_FromFlags(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetClientConfig([]string{"-a", "http://panel", "-k", "key", "-s", testServerUUID})
	require.NoError(t, err)

	assert.Equal(t, "http://panel", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "key", cfg.App.APIKey)
	assert.Equal(t, testServerUUID, cfg.App.ServerUUID)
}

func TestGetStubConfig_DefaultAddress(t *testing.T) {
	clearEnvVars(t)

	cfg, err := GetStubConfig([]string{"-s", testServerUUID})
	require.NoError(t, err)

	assert.Equal(t, defaultStubAddress, cfg.HTTPAddress)
	assert.Equal(t, testServerUUID, cfg.ServerUUID)
}

func TestGetStubConfig_RequiresServerUUID(t *testing.T) {
	clearEnvVars(t)

	_, err := GetStubConfig(nil)
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}
