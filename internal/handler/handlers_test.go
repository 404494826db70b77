// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/panel"
	"github.com/MKhiriev/go-panel-client/models"
)

func newTestState() *panel.State {
	return panel.NewState(logger.Nop())
}

func TestNewHandlers_HTTPAddress(t *testing.T) {
	cfg := config.StubConfig{HTTPAddress: ":8080"}

	h, err := NewHandlers(newTestState(), cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err)
	require.NotNil(t, h)
	assert.NotNil(t, h.HTTP, "expected HTTP handler to be initialised")
}

func TestNewHandlers_NoAddress(t *testing.T) {
	h, err := NewHandlers(newTestState(), config.StubConfig{}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

func TestNewHandlers_NoState(t *testing.T) {
	h, err := NewHandlers(nil, config.StubConfig{HTTPAddress: ":8080"}, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.ErrorIs(t, err, errNoHandlersAreCreated)
	assert.Nil(t, h)
}

// TestNewHandlers_IndependentInstances verifies that two calls produce
// independent handlers.
func TestNewHandlers_IndependentInstances(t *testing.T) {
	cfg := config.StubConfig{HTTPAddress: ":8080"}
	state := newTestState()

	h1, err1 := NewHandlers(state, cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())
	h2, err2 := NewHandlers(state, cfg, models.NewAppBuildInfo("", "", ""), logger.Nop())

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.NotSame(t, h1, h2)
	assert.NotSame(t, h1.HTTP, h2.HTTP)
}
