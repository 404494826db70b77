// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/go-panel-client/internal/adapter"
	"github.com/MKhiriev/go-panel-client/internal/cache"
	"github.com/MKhiriev/go-panel-client/internal/clock"
	"github.com/MKhiriev/go-panel-client/internal/config"
	"github.com/MKhiriev/go-panel-client/internal/flash"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/models"
)

// Collection names of the cache stores, also used as persistence namespaces.
const (
	CollectionAllocations = "allocations"
	CollectionSchedules   = "schedules"
)

// ClientServices owns the per-session cache stores, the flash store and the
// services built on them.
type ClientServices struct {
	Flashes           *flash.Store
	AllocationService AllocationService
	ScheduleService   ScheduleService

	Allocations *cache.Store[models.Allocation]
	Schedules   *cache.Store[models.Schedule]
}

// ClientServicesOption tunes [NewClientServices].
type ClientServicesOption func(*clientServicesOptions)

type clientServicesOptions struct {
	persister cache.Persister
	afterFunc clock.AfterFunc
}

// WithPersister saves committed snapshots through p.
func WithPersister(p cache.Persister) ClientServicesOption {
	return func(o *clientServicesOptions) {
		o.persister = p
	}
}

// WithAfterFunc replaces the timer of debouncing and eviction.
func WithAfterFunc(f clock.AfterFunc) ClientServicesOption {
	return func(o *clientServicesOptions) {
		o.afterFunc = f
	}
}

func NewClientServices(
	panel adapter.PanelAdapter,
	cacheCfg config.ClientCache,
	workersCfg config.ClientWorkers,
	log *logger.Logger,
	opts ...ClientServicesOption,
) *ClientServices {
	var o clientServicesOptions
	for _, opt := range opts {
		opt(&o)
	}

	storeOpts := []cache.Option{
		cache.WithEvictAfter(cacheCfg.EvictAfter),
		cache.WithStaleRetries(cacheCfg.StaleRetries),
		cache.WithAfterFunc(o.afterFunc),
	}
	if o.persister != nil {
		storeOpts = append(storeOpts, cache.WithPersister(o.persister))
	}

	flashes := flash.New(log)
	allocations := cache.New[models.Allocation](CollectionAllocations, panel.GetAllocations, log, storeOpts...)
	schedules := cache.New[models.Schedule](CollectionSchedules, panel.GetSchedules, log, storeOpts...)

	return &ClientServices{
		Flashes: flashes,
		AllocationService: NewAllocationService(panel, allocations, flashes, AllocationOptions{
			NotesDebounce: workersCfg.NotesDebounce,
			AfterFunc:     o.afterFunc,
		}, log),
		ScheduleService: NewScheduleService(panel, schedules, flashes, log),
		Allocations:     allocations,
		Schedules:       schedules,
	}
}

// Close settles pending edits and tears the cache stores down.
func (s *ClientServices) Close(ctx context.Context) error {
	err := s.AllocationService.Close(ctx)
	s.Allocations.Close()
	s.Schedules.Close()
	return err
}
