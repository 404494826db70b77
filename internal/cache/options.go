// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/clock"
)

const (
	defaultEvictAfter   = 30 * time.Second
	defaultStaleRetries = 3
)

// Persister stores committed snapshots between sessions. Payloads are JSON
// encoded item lists.
type Persister interface {
	// LoadSnapshot returns the last saved payload, or ok == false when the
	// collection was never saved.
	LoadSnapshot(ctx context.Context, collection, key string) (payload []byte, ok bool, err error)
	// SaveSnapshot replaces the saved payload.
	SaveSnapshot(ctx context.Context, collection, key string, payload []byte) error
}

// Option configures a [Store].
type Option func(*options)

type options struct {
	evictAfter      time.Duration
	staleRetries    int
	staleRetryDelay time.Duration
	persister       Persister
	afterFunc       clock.AfterFunc
}

func defaultOptions() options {
	return options{
		evictAfter:   defaultEvictAfter,
		staleRetries: defaultStaleRetries,
		afterFunc:    clock.Real,
	}
}

// WithEvictAfter sets how long an entry outlives its last subscription. Zero
// evicts immediately.
func WithEvictAfter(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.evictAfter = d
		}
	}
}

// WithStaleRetries sets how many times a revalidation is re-issued after its
// result was discarded as stale.
func WithStaleRetries(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.staleRetries = n
		}
	}
}

// WithStaleRetryDelay sets the pause before a re-issued revalidation.
func WithStaleRetryDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.staleRetryDelay = d
		}
	}
}

// WithPersister enables saving committed snapshots and seeding new entries
// from them.
func WithPersister(p Persister) Option {
	return func(o *options) {
		o.persister = p
	}
}

// WithAfterFunc replaces the timer used for eviction.
func WithAfterFunc(f clock.AfterFunc) Option {
	return func(o *options) {
		if f != nil {
			o.afterFunc = f
		}
	}
}
