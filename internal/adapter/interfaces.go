// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport layer between the panel client and
// the panel HTTP API.
//
// The primary abstraction is [PanelAdapter], which decouples the services from
// the underlying protocol. The package ships a resty implementation
// ([NewHTTPPanelAdapter]).
//
// Non-2xx responses are normalised by mapHTTPError into [*APIError] values that
// unwrap to the status sentinels defined in errors.go, so callers can use
// [errors.Is] (e.g. [ErrNotFound] for 404) and [HumanMessage] for display.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-panel-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/panel_adapter_mock.go -package=mock

// PanelAdapter defines transport-agnostic communication with the panel for a
// single game server identified by its UUID.
type PanelAdapter interface {
	// GetAllocations fetches the authoritative allocation list of server.
	GetAllocations(ctx context.Context, server string) ([]models.Allocation, error)

	// SetPrimaryAllocation marks allocation id as the primary allocation.
	SetPrimaryAllocation(ctx context.Context, server string, id int64) error

	// SetAllocationNotes replaces the notes of allocation id.
	SetAllocationNotes(ctx context.Context, server string, id int64, notes string) error

	// DeleteAllocation removes allocation id from server.
	DeleteAllocation(ctx context.Context, server string, id int64) error

	// GetSchedules fetches the schedules of server.
	GetSchedules(ctx context.Context, server string) ([]models.Schedule, error)

	// SaveSchedule creates the schedule when in.ID is zero and updates it
	// otherwise. It returns the schedule as stored by the panel.
	SaveSchedule(ctx context.Context, server string, in models.ScheduleInput) (models.Schedule, error)
}
