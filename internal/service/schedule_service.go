// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/flash"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/validators"
	"github.com/MKhiriev/go-panel-client/models"
)

type scheduleService struct {
	panel     adapter.PanelAdapter
	store     *cache.Store[models.Schedule]
	flashes   *flash.Store
	validator validators.Validator

	logger *logger.Logger
}

func NewScheduleService(
	panel adapter.PanelAdapter,
	store *cache.Store[models.Schedule],
	flashes *flash.Store,
	log *logger.Logger,
) ScheduleService {
	return &scheduleService{
		panel:     panel,
		store:     store,
		flashes:   flashes,
		validator: validators.NewPanelValidator(),
		logger:    log.WithComponent("schedules"),
	}
}

func (s *scheduleService) Subscribe(ctx context.Context, server string) (*cache.Subscription[models.Schedule], error) {
	return s.store.Subscribe(ctx, server)
}

func (s *scheduleService) Read(server string) cache.Snapshot[models.Schedule] {
	return s.store.Read(server)
}

func (s *scheduleService) Refresh(ctx context.Context, server string) error {
	_, err := s.store.Revalidate(ctx, server)
	return err
}

func (s *scheduleService) Save(ctx context.Context, server string, in models.ScheduleInput) (models.Schedule, error) {
	s.flashes.Clear(TopicScheduleEdit)

	if err := s.validator.Validate(ctx, in); err != nil {
		s.flashes.ClearAndAddError(TopicScheduleEdit, err)
		return models.Schedule{}, err
	}

	saved, err := s.panel.SaveSchedule(ctx, server, in)
	if err != nil {
		s.logger.Warn().Err(err).Str("server", server).Int64("schedule_id", in.ID).Msg("save schedule failed")
		s.flashes.ClearAndAddError(TopicScheduleEdit, err)
		return models.Schedule{}, fmt.Errorf("save schedule: %w", err)
	}

	snap, _ := s.store.OptimisticWrite(server, func(items []models.Schedule) []models.Schedule {
		return upsertSchedule(items, saved)
	})
	// the panel returned the stored schedule, so the write is already confirmed
	s.store.Confirm(server, snap.Generation)
	s.logger.Info().Str("server", server).Int64("schedule_id", saved.ID).Bool("created", in.IsNew()).Msg("schedule saved")

	return saved, nil
}

// upsertSchedule replaces the schedule with the same ID or appends it.
func upsertSchedule(items []models.Schedule, schedule models.Schedule) []models.Schedule {
	for i := range items {
		if items[i].ID == schedule.ID {
			items[i] = schedule
			return items
		}
	}
	return append(items, schedule)
}
