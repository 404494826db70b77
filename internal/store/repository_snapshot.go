// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/logger"
)

type snapshotRepository struct {
	db  *DB
	now func() time.Time

	logger *logger.Logger
}

func NewSnapshotRepository(db *DB, log *logger.Logger) SnapshotRepository {
	return &snapshotRepository{
		db:     db,
		now:    time.Now,
		logger: log,
	}
}

func (r *snapshotRepository) LoadSnapshot(ctx context.Context, collection, key string) ([]byte, bool, error) {
	query, args, err := buildLoadSnapshotQuery(collection, key)
	if err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.LoadSnapshot").Msg("failed to build query")
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var payload []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		r.logger.Err(err).
			Str("func", "snapshotRepository.LoadSnapshot").
			Str("collection", collection).
			Str("key", key).
			Msg("failed to load snapshot")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return payload, true, nil
}

func (r *snapshotRepository) SaveSnapshot(ctx context.Context, collection, key string, payload []byte) error {
	query, args, err := buildSaveSnapshotQuery(collection, key, payload, r.now())
	if err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.SaveSnapshot").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).
			Str("func", "snapshotRepository.SaveSnapshot").
			Str("collection", collection).
			Str("key", key).
			Msg("failed to execute upsert for snapshot")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrSnapshotNotSaved
	}

	return nil
}

func (r *snapshotRepository) PruneSnapshots(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := buildPruneSnapshotsQuery(before)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.Err(err).Str("func", "snapshotRepository.PruneSnapshots").Msg("failed to prune snapshots")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res.RowsAffected()
}
