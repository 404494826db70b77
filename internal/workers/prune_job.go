// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/store"
)

// NewPruneJob creates a job that deletes snapshots not saved within
// retention. It runs once an interval.
func NewPruneJob(repo store.SnapshotRepository, retention, interval time.Duration, log *logger.Logger) Worker {
	log = log.WithComponent("prune")
	return &tickerJob{
		interval: interval,
		tick: func(ctx context.Context) {
			n, err := repo.PruneSnapshots(ctx, time.Now().Add(-retention))
			if err != nil {
				log.Warn().Err(err).Msg("prune snapshots failed")
				return
			}
			if n > 0 {
				log.Info().Int64("pruned", n).Msg("old snapshots pruned")
			}
		},
	}
}
