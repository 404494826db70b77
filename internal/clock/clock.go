// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package clock abstracts delayed callbacks so that components which debounce
// or evict on a timer can be driven deterministically in tests.
package clock

import (
	"sort"
	"sync"
	"time"
)

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	// Stop prevents the callback from firing. It reports whether the call
	// stopped the timer, false if it had already fired or been stopped.
	Stop() bool
}

// AfterFunc schedules f to run once after d.
type AfterFunc func(d time.Duration, f func()) Timer

// Real schedules f on the runtime timer via [time.AfterFunc].
func Real(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Manual is a virtual clock. Callbacks fire only from [Manual.Advance], on the
// calling goroutine, in deadline order.
type Manual struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers []*manualTimer
}

type manualTimer struct {
	clock    *Manual
	deadline time.Duration
	seq      int
	f        func()
	done     bool
}

func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc is an [AfterFunc] bound to the manual clock.
func (m *Manual) AfterFunc(d time.Duration, f func()) Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	t := &manualTimer{clock: m, deadline: m.now + d, seq: m.seq, f: f}
	m.timers = append(m.timers, t)
	return t
}

// Now returns the virtual time elapsed since the clock was created.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d, firing every timer that becomes due,
// including timers scheduled by callbacks fired during the advance.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		next := m.nextDueLocked(target)
		if next == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		next.done = true
		m.now = next.deadline
		m.mu.Unlock()

		next.f()
	}
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.compactLocked()
	return len(m.timers)
}

func (m *Manual) nextDueLocked(target time.Duration) *manualTimer {
	m.compactLocked()
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].deadline == m.timers[j].deadline {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].deadline < m.timers[j].deadline
	})

	if len(m.timers) == 0 || m.timers[0].deadline > target {
		return nil
	}
	return m.timers[0]
}

func (m *Manual) compactLocked() {
	live := m.timers[:0]
	for _, t := range m.timers {
		if !t.done {
			live = append(live, t)
		}
	}
	m.timers = live
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.done {
		return false
	}
	t.done = true
	return true
}
