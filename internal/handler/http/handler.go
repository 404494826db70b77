// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/panel"
	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/models"
)

type Handler struct {
	panel     *panel.State
	buildInfo models.AppBuildInfo

	apiKey  string
	latency time.Duration
	limiter *rate.Limiter

	ids    *utils.UUIDGenerator
	logger *logger.Logger
}

func NewHandler(state *panel.State, cfg config.StubConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	h := &Handler{
		panel:     state,
		buildInfo: buildInfo,
		apiKey:    strings.TrimSpace(cfg.APIKey),
		latency:   cfg.Latency,
		ids:       utils.NewUUIDGenerator(),
		logger:    logger,
	}
	if cfg.RateLimit > 0 {
		h.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit)
	}

	logger.Info().Msg("http handler created")
	return h
}
