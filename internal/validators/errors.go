// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyScheduleName   = errors.New("a schedule name must be provided")
	ErrScheduleNameTooLong = errors.New("schedule name must not exceed 255 characters")
	ErrEmptyCronField      = errors.New("every cron field must be provided")
	ErrNotesTooLong        = errors.New("notes must not exceed 256 characters")
	ErrInvalidScheduleID   = errors.New("invalid schedule ID")
)
