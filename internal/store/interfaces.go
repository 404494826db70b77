// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists committed collection snapshots in a local SQLite
// database so the next session can render the last known lists before the
// first fetch lands.
package store

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/snapshot_repository_mock.go -package=mock

// SnapshotRepository stores one JSON payload per (collection, key).
type SnapshotRepository interface {
	// LoadSnapshot returns the saved payload, or ok == false when none exists.
	LoadSnapshot(ctx context.Context, collection, key string) (payload []byte, ok bool, err error)

	// SaveSnapshot inserts or replaces the payload.
	SaveSnapshot(ctx context.Context, collection, key string, payload []byte) error

	// PruneSnapshots deletes payloads saved before the given time and returns
	// how many were removed.
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
}
