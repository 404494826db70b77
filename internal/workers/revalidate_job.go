// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/logger"
)

// DefaultRevalidateInterval is used when the configured interval is not
// positive.
const DefaultRevalidateInterval = time.Minute

// NewRevalidateJob creates a job that revalidates every live key of store on
// each tick, so lists left open pick up changes made elsewhere.
func NewRevalidateJob[T any](store *cache.Store[T], interval time.Duration, log *logger.Logger) Worker {
	if interval <= 0 {
		interval = DefaultRevalidateInterval
	}

	log = log.WithComponent("revalidate." + store.Name())
	return &tickerJob{
		interval: interval,
		tick: func(ctx context.Context) {
			for _, key := range store.Keys() {
				_, err := store.Revalidate(ctx, key)
				switch {
				case err == nil:
				case errors.Is(err, context.Canceled), errors.Is(err, cache.ErrStoreClosed):
					return
				default:
					log.Warn().Err(err).Str("key", key).Msg("periodic revalidation failed")
				}
			}
		},
	}
}
