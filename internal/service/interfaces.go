// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/models"
)

// Flash topics.
const (
	TopicNetwork      = "server:network"
	TopicScheduleEdit = "schedule:edit"
)

// AllocationService coordinates edits of the allocation list of a server.
// Edits return as soon as the optimistic write is visible; remote calls run on
// the service's own context and are not cancelled by closing a subscription.
type AllocationService interface {
	// Subscribe registers the caller's interest in the allocations of server.
	Subscribe(ctx context.Context, server string) (*cache.Subscription[models.Allocation], error)

	// Read returns the current snapshot without blocking.
	Read(server string) cache.Snapshot[models.Allocation]

	// Refresh revalidates the allocations of server from the panel.
	Refresh(ctx context.Context, server string) error

	// SetPrimary makes allocation id the only primary allocation in the cache
	// and asks the panel to do the same. On failure the error is posted under
	// [TopicNetwork] and the list is revalidated. A call repeating one still in
	// flight returns the handle of the first.
	SetPrimary(server string, id int64) *Mutation

	// UpdateNotes writes notes into the cache immediately and schedules a
	// debounced save. A failed save is posted under [TopicNetwork]; the cached
	// notes keep the typed value.
	UpdateNotes(server string, id int64, notes string) error

	// NotesSaving reports whether a notes save for the allocation is in flight.
	NotesSaving(server string, id int64) bool

	// Saving reports whether any remote call for the allocations of server is
	// in flight.
	Saving(server string) bool

	// Delete removes a non-primary allocation on the panel, then from the
	// cache.
	Delete(server string, id int64) *Mutation

	// Close flushes pending notes saves and waits for in-flight calls.
	Close(ctx context.Context) error
}

// ScheduleService manages the schedules of a server.
type ScheduleService interface {
	// Subscribe registers the caller's interest in the schedules of server.
	Subscribe(ctx context.Context, server string) (*cache.Subscription[models.Schedule], error)

	// Read returns the current snapshot without blocking.
	Read(server string) cache.Snapshot[models.Schedule]

	// Refresh revalidates the schedules of server from the panel.
	Refresh(ctx context.Context, server string) error

	// Save creates or updates a schedule. Errors are posted under
	// [TopicScheduleEdit] and returned. On success the stored schedule replaces
	// or is appended to the cached list.
	Save(ctx context.Context, server string, in models.ScheduleInput) (models.Schedule, error)
}
