// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when required configuration groups are
// incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid panel API settings
	// (for example, missing address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidAppConfigs indicates missing credentials or a server UUID
	// that does not parse.
	ErrInvalidAppConfigs = errors.New("invalid app configuration")
	// ErrInvalidWorkerConfigs indicates invalid background timings
	// (for example, a zero debounce window).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
	// ErrInvalidCacheConfigs indicates invalid cache tuning.
	ErrInvalidCacheConfigs = errors.New("invalid cache configuration")
	// ErrInvalidServerConfigs indicates invalid stub server settings.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
