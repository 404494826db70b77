// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import "sync"

// Subscription is one consumer's interest in a key.
type Subscription[T any] struct {
	store   *Store[T]
	key     string
	updates chan Snapshot[T]

	once sync.Once
	mu   sync.Mutex
	stop func() bool
}

// Key returns the subscribed key.
func (s *Subscription[T]) Key() string {
	return s.key
}

// Updates delivers the latest snapshot whenever it changes. Only the newest
// undelivered snapshot is kept, so a slow reader never blocks the store. The
// channel is closed when the subscription or the store is closed.
func (s *Subscription[T]) Updates() <-chan Snapshot[T] {
	return s.updates
}

// Close unsubscribes. In-flight calls for the key are not cancelled.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		stop := s.stop
		s.mu.Unlock()
		if stop != nil {
			stop()
		}
		s.store.unsubscribe(s)
	})
}

func (s *Subscription[T]) setStop(stop func() bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stop = stop
}
