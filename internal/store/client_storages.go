// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/logger"
)

// SnapshotRetention is how long an untouched snapshot is kept.
const SnapshotRetention = 30 * 24 * time.Hour

// ClientStorages groups the client-side storage repositories.
type ClientStorages struct {
	// SnapshotRepository is the SQLite-backed snapshot store.
	SnapshotRepository SnapshotRepository

	db *DB
}

// NewClientStorages opens the SQLite database at cfg.DB.DSN, creating the file
// if needed, applies migrations and prunes snapshots older than the
// retention period.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	repo := NewSnapshotRepository(db, log)
	if pruned, err := repo.PruneSnapshots(ctx, time.Now().Add(-SnapshotRetention)); err != nil {
		log.Warn().Err(err).Msg("pruning old snapshots failed")
	} else if pruned > 0 {
		log.Info().Int64("pruned", pruned).Msg("old snapshots pruned")
	}

	return &ClientStorages{SnapshotRepository: repo, db: db}, nil
}

// Close closes the database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
