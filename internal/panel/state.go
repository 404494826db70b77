// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package panel

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/validators"
	"github.com/MKhiriev/go-panel-client/models"
)

// Op names an operation failures can be injected into.
type Op string

const (
	OpListAllocations Op = "list_allocations"
	OpSetPrimary      Op = "set_primary"
	OpSetNotes        Op = "set_notes"
	OpDeleteAlloc     Op = "delete_allocation"
	OpListSchedules   Op = "list_schedules"
	OpSaveSchedule    Op = "save_schedule"
)

type server struct {
	allocations []models.Allocation
	schedules   []models.Schedule
}

// State is the authoritative data of the stub panel. It is safe for
// concurrent use.
type State struct {
	mu       sync.Mutex
	servers  map[string]*server
	failures map[Op][]Failure
	nextID   int64
	now      func() time.Time

	validator validators.Validator
	logger    *logger.Logger
}

func NewState(log *logger.Logger) *State {
	return &State{
		servers:   make(map[string]*server),
		failures:  make(map[Op][]Failure),
		nextID:    100,
		now:       time.Now,
		validator: validators.NewPanelValidator(),
		logger:    log.WithComponent("panel"),
	}
}

// AddServer registers a server with the given data, replacing any previous
// one with the same UUID.
func (s *State) AddServer(uuid string, allocations []models.Allocation, schedules []models.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.servers[uuid] = &server{
		allocations: slices.Clone(allocations),
		schedules:   slices.Clone(schedules),
	}
}

// SeedDemo registers uuid with a small set of allocations and schedules.
func (s *State) SeedDemo(uuid string) {
	lobby := "lobby"
	alias := "play.example.com"
	now := s.now().UTC()
	next := now.Add(5 * time.Minute)

	s.AddServer(uuid,
		[]models.Allocation{
			{ID: 1, IP: "10.0.0.15", Alias: &alias, Port: 25565, IsDefault: true},
			{ID: 2, IP: "10.0.0.15", Port: 25566, Notes: &lobby},
			{ID: 3, IP: "10.0.0.15", Port: 25567},
		},
		[]models.Schedule{
			{
				ID:             1,
				Name:           "Nightly restart",
				Cron:           models.ScheduleCron{Minute: "0", Hour: "4", DayOfMonth: "*", Month: "*", DayOfWeek: "*"},
				IsActive:       true,
				OnlyWhenOnline: true,
				NextRunAt:      &next,
				CreatedAt:      &now,
				UpdatedAt:      &now,
			},
		},
	)
}

// FailNext makes the next call of op fail with f. Failures queue up.
func (s *State) FailNext(op Op, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[op] = append(s.failures[op], f)
}

func (s *State) Allocations(_ context.Context, uuid string) ([]models.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpListAllocations, uuid)
	if err != nil {
		return nil, err
	}
	return slices.Clone(srv.allocations), nil
}

// SetPrimary makes id the only primary allocation of the server.
func (s *State) SetPrimary(_ context.Context, uuid string, id int64) (models.Allocation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpSetPrimary, uuid)
	if err != nil {
		return models.Allocation{}, err
	}
	i := indexOfAllocation(srv.allocations, id)
	if i < 0 {
		return models.Allocation{}, ErrAllocationNotFound
	}

	for j := range srv.allocations {
		srv.allocations[j].IsDefault = j == i
	}
	s.logger.Debug().Str("server", uuid).Int64("allocation_id", id).Msg("primary allocation changed")

	return srv.allocations[i], nil
}

// SetNotes replaces the notes of allocation id. Empty notes clear them.
func (s *State) SetNotes(ctx context.Context, uuid string, id int64, notes string) (models.Allocation, error) {
	if err := s.validator.Validate(ctx, models.UpdateNotesRequest{Notes: notes}); err != nil {
		return models.Allocation{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpSetNotes, uuid)
	if err != nil {
		return models.Allocation{}, err
	}
	i := indexOfAllocation(srv.allocations, id)
	if i < 0 {
		return models.Allocation{}, ErrAllocationNotFound
	}

	if notes == "" {
		srv.allocations[i].Notes = nil
	} else {
		srv.allocations[i].Notes = &notes
	}

	return srv.allocations[i], nil
}

// DeleteAllocation removes a non-primary allocation.
func (s *State) DeleteAllocation(_ context.Context, uuid string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpDeleteAlloc, uuid)
	if err != nil {
		return err
	}
	i := indexOfAllocation(srv.allocations, id)
	if i < 0 {
		return ErrAllocationNotFound
	}
	if srv.allocations[i].IsDefault {
		return ErrPrimaryAllocation
	}

	srv.allocations = slices.Delete(srv.allocations, i, i+1)
	return nil
}

func (s *State) Schedules(_ context.Context, uuid string) ([]models.Schedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpListSchedules, uuid)
	if err != nil {
		return nil, err
	}
	return slices.Clone(srv.schedules), nil
}

// SaveSchedule creates the schedule when in.ID is zero and updates it
// otherwise.
func (s *State) SaveSchedule(ctx context.Context, uuid string, in models.ScheduleInput) (models.Schedule, error) {
	if err := s.validator.Validate(ctx, in); err != nil {
		return models.Schedule{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	srv, err := s.serverLocked(OpSaveSchedule, uuid)
	if err != nil {
		return models.Schedule{}, err
	}

	now := s.now().UTC()
	if in.IsNew() {
		s.nextID++
		created := models.Schedule{
			ID:             s.nextID,
			Name:           in.Name,
			Cron:           in.Cron,
			IsActive:       in.IsActive,
			OnlyWhenOnline: in.OnlyWhenOnline,
			CreatedAt:      &now,
			UpdatedAt:      &now,
		}
		srv.schedules = append(srv.schedules, created)
		return created, nil
	}

	for i := range srv.schedules {
		if srv.schedules[i].ID != in.ID {
			continue
		}
		srv.schedules[i].Name = in.Name
		srv.schedules[i].Cron = in.Cron
		srv.schedules[i].IsActive = in.IsActive
		srv.schedules[i].OnlyWhenOnline = in.OnlyWhenOnline
		srv.schedules[i].UpdatedAt = &now
		return srv.schedules[i], nil
	}

	return models.Schedule{}, fmt.Errorf("schedule %d: %w", in.ID, ErrScheduleNotFound)
}

// serverLocked consumes a queued failure of op, then looks the server up.
func (s *State) serverLocked(op Op, uuid string) (*server, error) {
	if queued := s.failures[op]; len(queued) > 0 {
		s.failures[op] = queued[1:]
		s.logger.Info().Str("op", string(op)).Int("status", queued[0].Status).Msg("injected failure")
		return nil, queued[0]
	}

	srv, ok := s.servers[uuid]
	if !ok {
		return nil, ErrServerNotFound
	}
	return srv, nil
}

func indexOfAllocation(items []models.Allocation, id int64) int {
	return slices.IndexFunc(items, func(a models.Allocation) bool { return a.ID == id })
}
