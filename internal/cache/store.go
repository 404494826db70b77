// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/MKhiriev/go-panel-client/internal/clock"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/singleflight"
)

// Fetcher loads the authoritative list of the collection identified by key.
type Fetcher[T any] func(ctx context.Context, key string) ([]T, error)

type entry[T any] struct {
	snap Snapshot[T]

	// gen is the generation of snap. lastWriteGen is the generation produced
	// by the most recent optimistic write.
	gen          uint64
	lastWriteGen uint64

	// writes are the optimistic writes not yet covered by an authoritative
	// list, oldest first.
	writes []pendingWrite[T]

	refs       int
	subs       map[*Subscription[T]]struct{}
	evictTimer clock.Timer
}

type pendingWrite[T any] struct {
	gen       uint64
	transform func(items []T) []T
	confirmed bool
}

// saveQueue serializes snapshot saves of one key; only the newest waiting
// payload is written.
type saveQueue struct {
	payload []byte
	running bool
}

// Store is the local cache of one kind of collection, for example the
// allocation lists of game servers. It is safe for concurrent use.
type Store[T any] struct {
	name  string
	fetch Fetcher[T]
	opts  options

	mu      sync.Mutex
	entries map[string]*entry[T]
	saves   map[string]*saveQueue
	closed  bool

	group singleflight.Group

	// ctx bounds fetches and persistence. It outlives the callers of
	// Revalidate and is cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	logger *logger.Logger
}

// New creates a store named name. The name identifies the collection kind in
// logs and in persisted snapshots.
func New[T any](name string, fetch Fetcher[T], log *logger.Logger, opts ...Option) *Store[T] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Store[T]{
		name:    name,
		fetch:   fetch,
		opts:    o,
		entries: make(map[string]*entry[T]),
		saves:   make(map[string]*saveQueue),
		ctx:     ctx,
		cancel:  cancel,
		logger:  log.WithComponent("cache." + name),
	}
}

// Read returns the current snapshot of key without blocking on I/O.
func (s *Store[T]) Read(key string) Snapshot[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return Snapshot[T]{Key: key, Status: StatusEmpty}
	}
	return e.snap
}

// Subscribe registers interest in key. The first subscription after the key
// became idle creates the entry if needed and starts a revalidation in the
// background. The subscription is closed when ctx is done or when
// [Subscription.Close] is called.
func (s *Store[T]) Subscribe(ctx context.Context, key string) (*Subscription[T], error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrStoreClosed
	}

	e, created := s.entryLocked(key)
	if e.evictTimer != nil {
		e.evictTimer.Stop()
		e.evictTimer = nil
	}
	e.refs++
	first := e.refs == 1

	sub := &Subscription[T]{
		store:   s,
		key:     key,
		updates: make(chan Snapshot[T], 1),
	}
	e.subs[sub] = struct{}{}
	sub.updates <- e.snap

	if first {
		s.wg.Add(1)
	}
	s.mu.Unlock()

	sub.setStop(context.AfterFunc(ctx, sub.Close))

	if first {
		go func() {
			defer s.wg.Done()
			if created {
				s.seed(key, e)
			}
			if _, err := s.Revalidate(s.ctx, key); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn().Err(err).Str("key", key).Msg("initial revalidation failed")
			}
		}()
	}

	return sub, nil
}

// OptimisticWrite applies transform to a copy of the cached items and
// publishes the result as a new pending generation before returning. It does
// not contact the source of truth. It returns false when key has no entry.
func (s *Store[T]) OptimisticWrite(key string, transform func(items []T) []T) (Snapshot[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Snapshot[T]{Key: key}, false
	}
	e, ok := s.entries[key]
	if !ok {
		return Snapshot[T]{Key: key, Status: StatusEmpty}, false
	}

	items := transform(slices.Clone(e.snap.Items))
	e.gen++
	e.lastWriteGen = e.gen
	e.writes = append(e.writes, pendingWrite[T]{gen: e.gen, transform: transform})
	e.snap = Snapshot[T]{
		Key:        key,
		Status:     StatusPending,
		Generation: e.gen,
		Items:      items,
	}
	s.notifyLocked(e)

	return e.snap, true
}

// Confirm marks the optimistic writes of generations gens as accepted by the
// source of truth. Once every outstanding write of key is confirmed, the
// cached items are the authoritative list and the snapshot is committed.
//
// It reports whether any of gens was still outstanding. False means a
// revalidation has already replaced those writes.
func (s *Store[T]) Confirm(key string, gens ...uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	e, ok := s.entries[key]
	if !ok {
		return false
	}

	set := make(map[uint64]struct{}, len(gens))
	for _, gen := range gens {
		set[gen] = struct{}{}
	}

	found := false
	for i := range e.writes {
		if _, ok := set[e.writes[i].gen]; ok {
			e.writes[i].confirmed = true
			found = true
		}
	}
	if !found || !allConfirmed(e.writes) {
		return found
	}

	e.writes = nil
	e.snap.Status = StatusCommitted
	s.notifyLocked(e)
	s.persistLocked(key, e.snap.Items)
	return true
}

// Revalidate fetches the authoritative list of key and replaces the cached
// snapshot with it. Concurrent calls for the same key share one fetch.
//
// A fetch that lands after an optimistic write made during its flight is
// discarded and re-issued up to the configured number of times. The last
// attempt is never discarded: its list becomes the new base and the writes
// made during its flight are applied on top of it again, so neither the
// authoritative list nor the newer edits are lost. A failed fetch keeps the
// previous snapshot, records the error on it and returns the error.
//
// ctx only bounds the wait; a fetch that is already running completes and is
// applied even if ctx is cancelled. Revalidating a key without an entry
// creates one that is evicted like an unsubscribed entry.
func (s *Store[T]) Revalidate(ctx context.Context, key string) ([]T, error) {
	var (
		items   []T
		attempt uint
	)
	attempts := uint(s.opts.staleRetries) + 1

	err := retry.Do(
		func() error {
			attempt++
			got, err := s.revalidateOnce(ctx, key, attempt == attempts)
			if err != nil {
				return err
			}
			items = got
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(s.opts.staleRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return errors.Is(err, errStaleRevalidation)
		}),
		retry.OnRetry(func(attempt uint, err error) {
			s.logger.Debug().Str("key", key).Uint("attempt", attempt+1).Msg("stale revalidation discarded, re-issuing")
		}),
	)
	if err != nil {
		return nil, err
	}

	return items, nil
}

type fetchResult[T any] struct {
	items []T
}

// revalidateOnce joins or starts one fetch. Rebasing fetches run in their own
// flight so that a caller on its last attempt never receives a discard.
func (s *Store[T]) revalidateOnce(ctx context.Context, key string, rebase bool) ([]T, error) {
	flight := key
	if rebase {
		flight += "\x00rebase"
	}
	ch := s.group.DoChan(flight, func() (any, error) {
		return s.fetchAndCommit(key, rebase)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(fetchResult[T]).items, nil
	}
}

// fetchAndCommit runs one fetch and applies its result under the generation
// check. It is shared by every caller joining the same flight, so the check
// uses the generation observed when the fetch actually started.
func (s *Store[T]) fetchAndCommit(key string, rebase bool) (fetchResult[T], error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return fetchResult[T]{}, ErrStoreClosed
	}
	e, created := s.entryLocked(key)
	if created {
		s.scheduleEvictLocked(key, e)
	}
	observed := e.gen
	s.mu.Unlock()

	items, fetchErr := s.fetch(s.ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return fetchResult[T]{}, ErrStoreClosed
	}

	current := s.entries[key] == e

	if fetchErr != nil {
		fetchErr = fmt.Errorf("fetch %s %s: %w", s.name, key, fetchErr)
		if current {
			e.snap.Err = fetchErr
			if e.snap.Status == StatusLoading && e.snap.Items == nil {
				e.snap.Status = StatusEmpty
			}
			s.notifyLocked(e)
		}
		return fetchResult[T]{}, fetchErr
	}

	if items == nil {
		items = []T{}
	}

	if !current {
		// evicted while in flight
		return fetchResult[T]{items: items}, nil
	}

	if e.lastWriteGen > observed {
		if !rebase {
			s.logger.Debug().
				Str("key", key).
				Uint64("observed_gen", observed).
				Uint64("last_write_gen", e.lastWriteGen).
				Msg("discarding stale revalidation")
			return fetchResult[T]{}, errStaleRevalidation
		}
		return fetchResult[T]{items: s.rebaseLocked(key, e, observed, items)}, nil
	}

	e.gen++
	e.writes = nil
	e.snap = Snapshot[T]{
		Key:        key,
		Status:     StatusCommitted,
		Generation: e.gen,
		Items:      items,
	}
	s.notifyLocked(e)
	s.persistLocked(key, items)

	return fetchResult[T]{items: items}, nil
}

// rebaseLocked replaces the base of e with the authoritative items and
// re-applies the writes made after generation observed.
func (s *Store[T]) rebaseLocked(key string, e *entry[T], observed uint64, items []T) []T {
	var newer []pendingWrite[T]
	for _, w := range e.writes {
		if w.gen > observed {
			newer = append(newer, w)
		}
	}

	view := slices.Clone(items)
	for _, w := range newer {
		view = w.transform(view)
	}

	status := StatusPending
	if allConfirmed(newer) {
		status, newer = StatusCommitted, nil
	}

	e.gen++
	e.writes = newer
	e.snap = Snapshot[T]{
		Key:        key,
		Status:     status,
		Generation: e.gen,
		Items:      view,
	}
	s.notifyLocked(e)
	s.persistLocked(key, items)

	s.logger.Debug().
		Str("key", key).
		Uint64("observed_gen", observed).
		Int("replayed", len(newer)).
		Msg("revalidation rebased under newer optimistic writes")

	return view
}

func allConfirmed[T any](writes []pendingWrite[T]) bool {
	for _, w := range writes {
		if !w.confirmed {
			return false
		}
	}
	return true
}

// Keys returns the keys of live entries in lexical order.
func (s *Store[T]) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]string, 0, len(s.entries))
	for key := range s.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Name returns the collection kind the store was created with.
func (s *Store[T]) Name() string {
	return s.name
}

// Close tears the store down: subscriptions are closed, entries dropped and
// in-flight fetches cancelled. Close waits for background work to stop.
func (s *Store[T]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for _, e := range s.entries {
		if e.evictTimer != nil {
			e.evictTimer.Stop()
		}
		for sub := range e.subs {
			close(sub.updates)
		}
		e.subs = nil
	}
	s.entries = make(map[string]*entry[T])
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Store[T]) entryLocked(key string) (*entry[T], bool) {
	if e, ok := s.entries[key]; ok {
		return e, false
	}

	e := &entry[T]{
		snap: Snapshot[T]{Key: key, Status: StatusLoading},
		subs: make(map[*Subscription[T]]struct{}),
	}
	s.entries[key] = e
	return e, true
}

func (s *Store[T]) unsubscribe(sub *Subscription[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	e, ok := s.entries[sub.key]
	if !ok {
		return
	}
	if _, ok = e.subs[sub]; !ok {
		return
	}

	delete(e.subs, sub)
	close(sub.updates)
	e.refs--
	if e.refs == 0 {
		s.scheduleEvictLocked(sub.key, e)
	}
}

func (s *Store[T]) scheduleEvictLocked(key string, e *entry[T]) {
	if s.opts.evictAfter == 0 {
		s.evictLocked(key, e)
		return
	}

	e.evictTimer = s.opts.afterFunc(s.opts.evictAfter, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.evictLocked(key, e)
	})
}

func (s *Store[T]) evictLocked(key string, e *entry[T]) {
	if s.closed || s.entries[key] != e || e.refs > 0 {
		return
	}
	delete(s.entries, key)
	s.logger.Debug().Str("key", key).Msg("entry evicted")
}

// notifyLocked hands the current snapshot to every subscriber, replacing an
// undelivered older one.
func (s *Store[T]) notifyLocked(e *entry[T]) {
	for sub := range e.subs {
		select {
		case <-sub.updates:
		default:
		}
		select {
		case sub.updates <- e.snap:
		default:
		}
	}
}

func (s *Store[T]) seed(key string, e *entry[T]) {
	if s.opts.persister == nil {
		return
	}

	payload, ok, err := s.opts.persister.LoadSnapshot(s.ctx, s.name, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("load persisted snapshot")
		return
	}
	if !ok {
		return
	}

	var items []T
	if err = json.Unmarshal(payload, &items); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("decode persisted snapshot")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.entries[key] != e || e.gen != 0 {
		return
	}
	if items == nil {
		items = []T{}
	}
	e.snap.Items = items
	s.notifyLocked(e)
}

func (s *Store[T]) persistLocked(key string, items []T) {
	if s.opts.persister == nil {
		return
	}

	payload, err := json.Marshal(items)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("encode snapshot")
		return
	}

	q, ok := s.saves[key]
	if !ok {
		q = &saveQueue{}
		s.saves[key] = q
	}
	q.payload = payload
	if q.running {
		return
	}

	q.running = true
	s.wg.Add(1)
	go s.drainSaves(key, q)
}

func (s *Store[T]) drainSaves(key string, q *saveQueue) {
	defer s.wg.Done()

	for {
		s.mu.Lock()
		payload := q.payload
		if payload == nil {
			q.running = false
			delete(s.saves, key)
			s.mu.Unlock()
			return
		}
		q.payload = nil
		s.mu.Unlock()

		if err := s.opts.persister.SaveSnapshot(context.WithoutCancel(s.ctx), s.name, key, payload); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("save snapshot")
		}
	}
}
