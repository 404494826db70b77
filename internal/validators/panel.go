// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-panel-client/models"
)

// Field name constants for field-level scoping.
const (
	FieldName  = "name"
	FieldCron  = "cron"
	FieldID    = "id"
	FieldNotes = "notes"
)

const (
	maxScheduleNameLength = 255
	maxNotesLength        = 256
)

// PanelValidator validates form input of the network and schedules pages:
// [models.ScheduleInput] and [models.UpdateNotesRequest].
type PanelValidator struct {
}

func NewPanelValidator() Validator {
	return &PanelValidator{}
}

// Validate dispatches on the dynamic type of obj. Both value and pointer
// forms are accepted. Returns ErrUnsupportedType for any other type.
func (v *PanelValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.ScheduleInput:
		return v.validateScheduleInput(ctx, value, fields...)
	case *models.ScheduleInput:
		return v.validateScheduleInput(ctx, *value, fields...)

	case models.UpdateNotesRequest:
		return v.validateNotes(ctx, value, fields...)
	case *models.UpdateNotesRequest:
		return v.validateNotes(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateScheduleInput checks the schedule form.
//
// Default validated fields: name, cron, id.
func (v *PanelValidator) validateScheduleInput(_ context.Context, in models.ScheduleInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldName, FieldCron, FieldID}
	}

	for _, f := range fields {
		switch f {
		case FieldName:
			name := strings.TrimSpace(in.Name)
			if name == "" {
				return ErrEmptyScheduleName
			}
			if utf8.RuneCountInString(name) > maxScheduleNameLength {
				return ErrScheduleNameTooLong
			}
		case FieldCron:
			cron := map[string]string{
				"minute":       in.Cron.Minute,
				"hour":         in.Cron.Hour,
				"day of month": in.Cron.DayOfMonth,
				"month":        in.Cron.Month,
				"day of week":  in.Cron.DayOfWeek,
			}
			for _, name := range []string{"minute", "hour", "day of month", "month", "day of week"} {
				if strings.TrimSpace(cron[name]) == "" {
					return fmt.Errorf("%w: %s", ErrEmptyCronField, name)
				}
			}
		case FieldID:
			if in.ID < 0 {
				return ErrInvalidScheduleID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *PanelValidator) validateNotes(_ context.Context, req models.UpdateNotesRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldNotes}
	}

	for _, f := range fields {
		switch f {
		case FieldNotes:
			if utf8.RuneCountInString(req.Notes) > maxNotesLength {
				return ErrNotesTooLong
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
