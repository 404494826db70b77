// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package tui is the terminal front end of the panel client: the network page
// with the allocations of one game server and the schedules page with its
// edit form. Screens render cache snapshots and the flash messages of their
// topic; edits go through the services and never block the event loop.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/service"
	"github.com/MKhiriev/go-panel-client/models"
)

var ErrUserQuit = errors.New("user quit")

type TUI struct {
	services  *service.ClientServices
	server    string
	buildInfo models.AppBuildInfo

	logger *logger.Logger
}

func New(services *service.ClientServices, server string, buildInfo models.AppBuildInfo, log *logger.Logger) *TUI {
	return &TUI{
		services:  services,
		server:    server,
		buildInfo: buildInfo,
		logger:    log.WithComponent("tui"),
	}
}

// Run subscribes to the collections of the server and blocks until the user
// quits or ctx is done. Subscriptions are closed on return; edits still in
// flight keep running on the services.
func (t *TUI) Run(ctx context.Context) error {
	allocations, err := t.services.AllocationService.Subscribe(ctx, t.server)
	if err != nil {
		return fmt.Errorf("subscribe to allocations: %w", err)
	}
	defer allocations.Close()

	schedules, err := t.services.ScheduleService.Subscribe(ctx, t.server)
	if err != nil {
		return fmt.Errorf("subscribe to schedules: %w", err)
	}
	defer schedules.Close()

	model := newAppModel(ctx, appDeps{
		server:            t.server,
		allocations:       t.services.AllocationService,
		schedules:         t.services.ScheduleService,
		flashes:           t.services.Flashes,
		buildInfo:         t.buildInfo,
		allocationUpdates: allocations.Updates(),
		scheduleUpdates:   schedules.Updates(),
	})

	t.logger.Info().Str("server", t.server).Msg("starting terminal UI")
	finalModel, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}

	if result, ok := finalModel.(appModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}
