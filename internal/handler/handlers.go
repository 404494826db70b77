// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import (
	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/handler/http"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/panel"
	"github.com/MKhiriev/go-panel-client/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(state *panel.State, cfg config.StubConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if state == nil || cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(state, cfg, buildInfo, logger),
	}, nil
}
