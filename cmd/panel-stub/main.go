// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/handler"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/panel"
	"github.com/MKhiriev/go-panel-client/internal/server"
	"github.com/MKhiriev/go-panel-client/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	printBuildInfo(buildInfo)

	log := logger.NewLogger("panel-stub")
	cfg, err := config.GetStubConfig(os.Args[1:])
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().
		Str("address", cfg.HTTPAddress).
		Str("server", cfg.ServerUUID).
		Dur("latency", cfg.Latency).
		Int("rate_limit", cfg.RateLimit).
		Bool("auth", cfg.APIKey != "").
		Msg("received configs")

	state := panel.NewState(log)
	state.SeedDemo(cfg.ServerUUID)

	handlers, err := handler.NewHandlers(state, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Printf("Build version: %s\n", info.BuildVersion())
	fmt.Printf("Build date: %s\n", info.BuildDate())
	fmt.Printf("Build commit: %s\n", info.BuildCommit())
}
