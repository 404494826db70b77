// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder(nil)
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder(nil).build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder(nil)
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs,
		&StructuredConfig{App: App{APIKey: "key"}},
		&StructuredConfig{Adapter: Adapter{HTTPAddress: "http://panel"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "key", cfg.App.APIKey)
	assert.Equal(t, "http://panel", cfg.Adapter.HTTPAddress)
}

// TestBuild_LaterSourceWins verifies that a non-zero value of a later source
// overrides the earlier one while zero values do not.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs,
		&StructuredConfig{App: App{APIKey: "env-key", ServerUUID: "env-uuid"}},
		&StructuredConfig{App: App{APIKey: "flag-key"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "flag-key", cfg.App.APIKey)
	assert.Equal(t, "env-uuid", cfg.App.ServerUUID)
}

// TestBuild_RejectsNegativeValues verifies source-independent validation.
func TestBuild_RejectsNegativeValues(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{Cache: Cache{StaleRetries: -1}})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidCacheConfigs)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder(nil)
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("APP_API_KEY", "env-key")
	t.Setenv("WORKERS_NOTES_DEBOUNCE", "500ms")

	b := newConfigBuilder(nil)
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "env-key", b.configs[0].App.APIKey)
	assert.Equal(t, 500*time.Millisecond, b.configs[0].Workers.NotesDebounce)
}

// ── withFlags ─────────────────────────────────────────────────────────────────

// TestWithFlags_AppendsConfig verifies the flags source is appended.
func TestWithFlags_AppendsConfig(t *testing.T) {
	b := newConfigBuilder([]string{"-k", "flag-key"})
	assert.Same(t, b, b.withFlags())

	require.Len(t, b.configs, 1)
	assert.Equal(t, "flag-key", b.configs[0].App.APIKey)
}

// TestWithFlags_SetsErrorOnUnknownFlag verifies that a parse failure is kept
// in the builder instead of exiting the process.
func TestWithFlags_SetsErrorOnUnknownFlag(t *testing.T) {
	b := newConfigBuilder([]string{"-unknown"})
	b.withFlags()

	assert.Error(t, b.err)
	assert.Empty(t, b.configs)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.APIKey = "json-key"
	payload.Workers.NotesDebounce = Duration(time.Second)
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "json-key", b.configs[1].App.APIKey)
	assert.Equal(t, time.Second, b.configs[1].Workers.NotesDebounce)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder(nil)
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.App.APIKey = "last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder(nil)
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: "/first/ignored.json"},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "last-wins", b.configs[2].App.APIKey)
}

// TestGetStructuredConfig_JSONOverridesFlags verifies the full source chain.
func TestGetStructuredConfig_JSONOverridesFlags(t *testing.T) {
	clearEnvVars(t)
	payload := StructuredJSONConfig{}
	payload.Adapter.HTTPAddress = "http://from-json"
	path := writeTempJSONConfig(t, payload)

	cfg, err := GetStructuredConfig([]string{"-a", "http://from-flags", "-k", "flag-key", "-c", path})
	require.NoError(t, err)

	assert.Equal(t, "http://from-json", cfg.Adapter.HTTPAddress)
	assert.Equal(t, "flag-key", cfg.App.APIKey)
}
