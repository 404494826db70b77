// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package debounce collapses bursts of edits into the fewest remote calls.
//
// A [Funnel] keeps, per field key, the timer of the scheduled call and the last
// submitted value. Each Submit re-arms the timer; the call fires with the
// latest value once the quiescence window passes without further submits.
// Calls for one key never overlap: a value that becomes due while the previous
// call for the same key is still running waits for it, and only the newest
// waiting value is sent. Different keys are independent.
package debounce

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/clock"
)

type slot[V any] struct {
	timer clock.Timer
	// seq identifies the armed timer; callbacks of re-armed timers are ignored.
	// It is drawn from the funnel so a recreated slot never reuses one.
	seq        uint64
	pending    V
	hasPending bool

	running   bool
	queued    V
	hasQueued bool
}

// Funnel debounces calls per key. The zero value is not usable; see [New].
type Funnel[K comparable, V any] struct {
	wait      time.Duration
	call      func(key K, value V)
	afterFunc clock.AfterFunc

	mu       sync.Mutex
	seq      uint64
	slots    map[K]*slot[V]
	inflight int
	idle     chan struct{}
}

// Option configures a [Funnel].
type Option func(*config)

type config struct {
	afterFunc clock.AfterFunc
}

// WithAfterFunc replaces the timer implementation.
func WithAfterFunc(f clock.AfterFunc) Option {
	return func(c *config) {
		if f != nil {
			c.afterFunc = f
		}
	}
}

// New creates a funnel that invokes call with the latest value of a key after
// wait has passed without another [Funnel.Submit] for that key. call runs on
// its own goroutine.
func New[K comparable, V any](wait time.Duration, call func(key K, value V), opts ...Option) *Funnel[K, V] {
	c := config{afterFunc: clock.Real}
	for _, opt := range opts {
		opt(&c)
	}

	return &Funnel[K, V]{
		wait:      wait,
		call:      call,
		afterFunc: c.afterFunc,
		slots:     make(map[K]*slot[V]),
	}
}

// Submit records value as the latest edit of key and restarts its
// quiescence window.
func (f *Funnel[K, V]) Submit(key K, value V) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sl, ok := f.slots[key]
	if !ok {
		sl = &slot[V]{}
		f.slots[key] = sl
	}
	if sl.timer != nil {
		sl.timer.Stop()
	}

	f.seq++
	seq := f.seq
	sl.seq = seq
	sl.pending = value
	sl.hasPending = true
	sl.timer = f.afterFunc(f.wait, func() {
		f.fire(key, seq)
	})
}

// Pending reports whether key has a scheduled, waiting or running call.
func (f *Funnel[K, V]) Pending(key K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	sl, ok := f.slots[key]
	return ok && (sl.hasPending || sl.running || sl.hasQueued)
}

// InFlight reports whether a call for key is running or waiting for the
// previous one.
func (f *Funnel[K, V]) InFlight(key K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	sl, ok := f.slots[key]
	return ok && (sl.running || sl.hasQueued)
}

// Flush fires every scheduled call now instead of at the end of its window.
func (f *Funnel[K, V]) Flush() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for key, sl := range f.slots {
		if !sl.hasPending {
			continue
		}
		if sl.timer != nil {
			sl.timer.Stop()
		}
		f.seq++
		sl.seq = f.seq
		f.dispatchLocked(key, sl)
	}
}

// Wait blocks until no call is running or waiting, or ctx is done. Scheduled
// calls whose window has not passed are not waited for; see [Funnel.Flush].
func (f *Funnel[K, V]) Wait(ctx context.Context) error {
	f.mu.Lock()
	if f.inflight == 0 {
		f.mu.Unlock()
		return nil
	}
	idle := f.idle
	f.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *Funnel[K, V]) fire(key K, seq uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sl, ok := f.slots[key]
	if !ok || sl.seq != seq || !sl.hasPending {
		return
	}
	f.dispatchLocked(key, sl)
}

func (f *Funnel[K, V]) dispatchLocked(key K, sl *slot[V]) {
	value := sl.pending
	var zero V
	sl.pending, sl.hasPending, sl.timer = zero, false, nil

	if sl.running {
		sl.queued, sl.hasQueued = value, true
		return
	}

	sl.running = true
	if f.inflight == 0 {
		f.idle = make(chan struct{})
	}
	f.inflight++

	go f.run(key, sl, value)
}

func (f *Funnel[K, V]) run(key K, sl *slot[V], value V) {
	for {
		f.call(key, value)

		f.mu.Lock()
		if sl.hasQueued {
			var zero V
			value = sl.queued
			sl.queued, sl.hasQueued = zero, false
			f.mu.Unlock()
			continue
		}

		sl.running = false
		if !sl.hasPending && f.slots[key] == sl {
			delete(f.slots, key)
		}
		f.inflight--
		if f.inflight == 0 {
			close(f.idle)
		}
		f.mu.Unlock()
		return
	}
}
