// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"github.com/google/uuid"
)

// validate checks source-independent invariants of the merged config. Client
// and stub specific requirements are checked on their own views.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RetryCount < 0 || cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}
	if cfg.Cache.StaleRetries < 0 || cfg.Cache.EvictAfter < 0 {
		return ErrInvalidCacheConfigs
	}
	if cfg.Workers.NotesDebounce < 0 || cfg.Workers.RevalidateInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.App.APIKey == "" {
		return ErrInvalidAppConfigs
	}
	if _, err := uuid.Parse(cfg.App.ServerUUID); err != nil {
		return ErrInvalidAppConfigs
	}

	if cfg.Workers.NotesDebounce <= 0 || cfg.Workers.RevalidateInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	if cfg.Cache.EvictAfter < 0 || cfg.Cache.StaleRetries < 0 {
		return ErrInvalidCacheConfigs
	}

	return nil
}

func (cfg *StubConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.Latency < 0 || cfg.RateLimit < 0 {
		return ErrInvalidServerConfigs
	}
	if _, err := uuid.Parse(cfg.ServerUUID); err != nil {
		return ErrInvalidAppConfigs
	}

	return nil
}
