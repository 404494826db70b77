// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/internal/store"
	"github.com/MKhiriev/go-panel-client/internal/tui"
	"github.com/MKhiriev/go-panel-client/internal/workers"
	"github.com/MKhiriev/go-panel-client/models"
)

const (
	pruneInterval   = time.Hour
	shutdownTimeout = 10 * time.Second
)

// Frontend is the interactive part of the client.
type Frontend interface {
	// Run blocks until the user quits or ctx is done.
	Run(ctx context.Context) error
}

type App struct {
	storages *store.ClientStorages
	services *service.ClientServices
	workers  *workers.Workers
	ui       Frontend

	logger *logger.Logger
}

// NewApp wires the panel adapter, the optional snapshot storage, the services,
// the background jobs and the terminal UI.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	panel, err := adapter.NewHTTPPanelAdapter(cfg.Adapter, cfg.App, log)
	if err != nil {
		return nil, fmt.Errorf("create panel adapter: %w", err)
	}

	var (
		storages *store.ClientStorages
		opts     []service.ClientServicesOption
	)
	if cfg.Storage.DB.DSN != "" {
		storages, err = store.NewClientStorages(ctx, cfg.Storage, log)
		if err != nil {
			return nil, fmt.Errorf("create local storage: %w", err)
		}
		opts = append(opts, service.WithPersister(storages.SnapshotRepository))
	}

	services := service.NewClientServices(panel, cfg.Cache, cfg.Workers, log, opts...)
	ui := tui.New(services, cfg.App.ServerUUID, buildInfo, log)

	return newApp(storages, services, newWorkers(services, storages, cfg.Workers, log), ui, log), nil
}

func newApp(storages *store.ClientStorages, services *service.ClientServices, w *workers.Workers, ui Frontend, log *logger.Logger) *App {
	return &App{
		storages: storages,
		services: services,
		workers:  w,
		ui:       ui,
		logger:   log,
	}
}

func newWorkers(services *service.ClientServices, storages *store.ClientStorages, cfg config.ClientWorkers, log *logger.Logger) *workers.Workers {
	var jobs []workers.Worker
	if cfg.RevalidateInterval > 0 {
		jobs = append(jobs,
			workers.NewRevalidateJob(services.Allocations, cfg.RevalidateInterval, log),
			workers.NewRevalidateJob(services.Schedules, cfg.RevalidateInterval, log),
		)
	}
	if storages != nil {
		jobs = append(jobs, workers.NewPruneJob(storages.SnapshotRepository, store.SnapshotRetention, pruneInterval, log))
	}
	return workers.NewWorkers(jobs...)
}

// Run starts the background jobs and the UI. When the UI returns, pending
// edits are saved before the storage is closed.
func (a *App) Run(ctx context.Context) error {
	a.workers.Start(ctx)

	runErr := a.ui.Run(ctx)
	if errors.Is(runErr, tui.ErrUserQuit) {
		runErr = nil
	}

	a.workers.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := a.services.Close(shutdownCtx); err != nil {
		a.logger.Warn().Err(err).Msg("pending edits were not saved")
	}
	if a.storages != nil {
		if err := a.storages.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close local storage")
		}
	}

	a.logger.Info().Msg("client stopped")
	return runErr
}
