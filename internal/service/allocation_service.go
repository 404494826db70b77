// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/app"
	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/clock"
	"github.com/MKhiriev/go-panel-client/internal/debounce"
	"github.com/MKhiriev/go-panel-client/internal/flash"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/internal/validators"
	"github.com/MKhiriev/go-panel-client/models"
	"github.com/rs/zerolog"
)

// DefaultNotesDebounce is the quiescence window of notes edits.
const DefaultNotesDebounce = 750 * time.Millisecond

// notesField identifies one debounced notes field.
type notesField struct {
	Server string
	ID     int64
}

// notesEdit is the latest typed value of a field and the cache generation
// that made it visible.
type notesEdit struct {
	Text string
	Gen  uint64
}

// AllocationOptions tunes an [AllocationService].
type AllocationOptions struct {
	// NotesDebounce is the quiescence window of notes edits. Zero selects
	// [DefaultNotesDebounce].
	NotesDebounce time.Duration
	// AfterFunc replaces the debounce timer. Nil selects the runtime timer.
	AfterFunc clock.AfterFunc
}

type allocationService struct {
	panel     adapter.PanelAdapter
	store     *cache.Store[models.Allocation]
	flashes   *flash.Store
	validator validators.Validator
	ids       *utils.UUIDGenerator

	notes *debounce.Funnel[notesField, notesEdit]

	// ctx is the lifetime of remote calls. It is independent of any view.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
	// primary holds the in-flight set-primary mutation per server/allocation.
	primary map[string]*Mutation
	// notesGens are the unsaved notes writes per field.
	notesGens map[notesField][]uint64
	// busy counts remote calls in flight per server.
	busy map[string]int

	logger *logger.Logger
}

// NewAllocationService creates the allocation coordinator over store, whose
// fetcher must read from the same panel.
func NewAllocationService(
	panel adapter.PanelAdapter,
	store *cache.Store[models.Allocation],
	flashes *flash.Store,
	opts AllocationOptions,
	log *logger.Logger,
) AllocationService {
	if opts.NotesDebounce <= 0 {
		opts.NotesDebounce = DefaultNotesDebounce
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &allocationService{
		panel:     panel,
		store:     store,
		flashes:   flashes,
		validator: validators.NewPanelValidator(),
		ids:       utils.NewUUIDGenerator(),
		primary:   make(map[string]*Mutation),
		notesGens: make(map[notesField][]uint64),
		busy:      make(map[string]int),
		ctx:       ctx,
		cancel:    cancel,
		logger:    log.WithComponent("allocations"),
	}
	s.notes = debounce.New(opts.NotesDebounce, s.saveNotes, debounce.WithAfterFunc(opts.AfterFunc))

	return s
}

func (s *allocationService) Subscribe(ctx context.Context, server string) (*cache.Subscription[models.Allocation], error) {
	return s.store.Subscribe(ctx, server)
}

func (s *allocationService) Read(server string) cache.Snapshot[models.Allocation] {
	return s.store.Read(server)
}

func (s *allocationService) Refresh(ctx context.Context, server string) error {
	_, err := s.store.Revalidate(ctx, server)
	return err
}

func (s *allocationService) SetPrimary(server string, id int64) *Mutation {
	flight := server + "/" + strconv.FormatInt(id, 10)

	s.mu.Lock()
	if m, ok := s.primary[flight]; ok {
		// the same request is already on its way
		s.mu.Unlock()
		return m
	}

	m := newMutation(s.ids.Generate())
	if s.closed {
		s.mu.Unlock()
		m.finish(ErrServiceClosed)
		return m
	}

	s.flashes.Clear(TopicNetwork)
	if !hasAllocation(s.store.Read(server).Items, id) {
		s.mu.Unlock()
		s.flashes.AddError(TopicNetwork, app.MsgAllocationGone)
		m.finish(fmt.Errorf("set primary %d: %w", id, ErrAllocationNotFound))
		return m
	}

	s.wg.Add(1)
	s.busy[server]++
	s.primary[flight] = m
	s.mu.Unlock()

	log := s.logger.With().
		Str("mutation_id", m.ID).
		Str("server", server).
		Int64("allocation_id", id).
		Logger()

	snap, _ := s.store.OptimisticWrite(server, func(items []models.Allocation) []models.Allocation {
		for i := range items {
			items[i].IsDefault = items[i].ID == id
		}
		return items
	})
	log.Debug().Uint64("gen", snap.Generation).Msg("primary allocation written optimistically")

	go func() {
		err := s.applyPrimary(server, id, snap.Generation, log)

		s.mu.Lock()
		delete(s.primary, flight)
		s.mu.Unlock()
		s.end(server)

		m.finish(err)
	}()

	return m
}

// applyPrimary runs the remote call of a set-primary and its follow-up. A
// success whose optimistic write was already replaced by a revalidation
// started before the panel applied it revalidates again; a failure posts the
// error and revalidates.
func (s *allocationService) applyPrimary(server string, id int64, gen uint64, log zerolog.Logger) error {
	err := s.panel.SetPrimaryAllocation(s.ctx, server, id)
	if err == nil {
		if !s.store.Confirm(server, gen) {
			log.Debug().Msg("primary write already replaced, revalidating")
			if _, rerr := s.store.Revalidate(s.ctx, server); rerr != nil {
				log.Warn().Err(rerr).Msg("revalidation after set primary failed")
			}
		}
		return nil
	}

	log.Warn().Err(err).Msg("set primary allocation failed, revalidating")
	s.flashes.ClearAndAddError(TopicNetwork, err)
	if _, rerr := s.store.Revalidate(s.ctx, server); rerr != nil {
		log.Error().Err(rerr).Msg("compensating revalidation failed")
	}
	return fmt.Errorf("set primary %d: %w", id, err)
}

func (s *allocationService) UpdateNotes(server string, id int64, notes string) error {
	if err := s.validator.Validate(s.ctx, models.UpdateNotesRequest{Notes: notes}); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrServiceClosed
	}
	if !hasAllocation(s.store.Read(server).Items, id) {
		return fmt.Errorf("update notes %d: %w", id, ErrAllocationNotFound)
	}

	snap, _ := s.store.OptimisticWrite(server, func(items []models.Allocation) []models.Allocation {
		for i := range items {
			if items[i].ID == id {
				text := notes
				items[i].Notes = &text
			}
		}
		return items
	})

	field := notesField{Server: server, ID: id}
	s.notesGens[field] = append(s.notesGens[field], snap.Generation)
	s.notes.Submit(field, notesEdit{Text: notes, Gen: snap.Generation})
	return nil
}

func (s *allocationService) NotesSaving(server string, id int64) bool {
	return s.notes.InFlight(notesField{Server: server, ID: id})
}

func (s *allocationService) Saving(server string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy[server] > 0
}

// saveNotes is the debounced remote call. Failures are reported only.
func (s *allocationService) saveNotes(field notesField, edit notesEdit) {
	log := s.logger.With().
		Str("mutation_id", s.ids.Generate()).
		Str("server", field.Server).
		Int64("allocation_id", field.ID).
		Logger()

	s.track(field.Server, 1)
	s.flashes.Clear(TopicNetwork)
	err := s.panel.SetAllocationNotes(s.ctx, field.Server, field.ID, edit.Text)
	saved := s.takeNotesGens(field, edit.Gen)
	s.track(field.Server, -1)
	if err != nil {
		log.Warn().Err(err).Msg("save notes failed")
		s.flashes.ClearAndAddError(TopicNetwork, err)
		return
	}

	s.store.Confirm(field.Server, saved...)
	log.Debug().Msg("notes saved")
}

// takeNotesGens removes and returns the writes of field up to gen. Later
// keystrokes stay tracked for the next save.
func (s *allocationService) takeNotesGens(field notesField, gen uint64) []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	gens := s.notesGens[field]
	n := 0
	for n < len(gens) && gens[n] <= gen {
		n++
	}
	taken := slices.Clone(gens[:n])
	if n == len(gens) {
		delete(s.notesGens, field)
	} else {
		s.notesGens[field] = gens[n:]
	}
	return taken
}

func (s *allocationService) Delete(server string, id int64) *Mutation {
	mutationID := s.ids.Generate()
	log := s.logger.With().
		Str("mutation_id", mutationID).
		Str("server", server).
		Int64("allocation_id", id).
		Logger()

	alloc, found := findAllocation(s.store.Read(server).Items, id)
	switch {
	case !found:
		return failedMutation(mutationID, fmt.Errorf("delete %d: %w", id, ErrAllocationNotFound))
	case alloc.IsDefault:
		s.flashes.ClearAndAddError(TopicNetwork, ErrPrimaryAllocation)
		return failedMutation(mutationID, ErrPrimaryAllocation)
	}

	if !s.begin(server) {
		return failedMutation(mutationID, ErrServiceClosed)
	}

	m := newMutation(mutationID)
	s.flashes.Clear(TopicNetwork)

	go func() {
		if err := s.panel.DeleteAllocation(s.ctx, server, id); err != nil {
			log.Warn().Err(err).Msg("delete allocation failed")
			s.flashes.ClearAndAddError(TopicNetwork, err)
			s.end(server)
			m.finish(fmt.Errorf("delete %d: %w", id, err))
			return
		}

		snap, _ := s.store.OptimisticWrite(server, func(items []models.Allocation) []models.Allocation {
			kept := items[:0]
			for _, item := range items {
				if item.ID != id {
					kept = append(kept, item)
				}
			}
			return kept
		})
		s.store.Confirm(server, snap.Generation)
		log.Info().Msg("allocation deleted")
		s.end(server)
		m.finish(nil)
	}()

	return m
}

func (s *allocationService) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.notes.Flush()
	if err := s.notes.Wait(ctx); err != nil {
		return fmt.Errorf("wait notes saves: %w", err)
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait mutations: %w", ctx.Err())
	}
}

// begin registers an in-flight mutation unless the service is closed.
func (s *allocationService) begin(server string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	s.busy[server]++
	return true
}

func (s *allocationService) end(server string) {
	s.track(server, -1)
	s.wg.Done()
}

func (s *allocationService) track(server string, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.busy[server] += delta
	if s.busy[server] <= 0 {
		delete(s.busy, server)
	}
}

func findAllocation(items []models.Allocation, id int64) (models.Allocation, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}
	return models.Allocation{}, false
}

func hasAllocation(items []models.Allocation, id int64) bool {
	_, ok := findAllocation(items, id)
	return ok
}
