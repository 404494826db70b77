// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ScheduleCron holds the five cron fields of a schedule. Values are opaque
// strings; the panel server is responsible for parsing them.
type ScheduleCron struct {
	DayOfWeek  string `json:"day_of_week"`
	Month      string `json:"month"`
	DayOfMonth string `json:"day_of_month"`
	Hour       string `json:"hour"`
	Minute     string `json:"minute"`
}

// Schedule is a server task schedule as returned by the panel.
type Schedule struct {
	ID             int64        `json:"id"`
	Name           string       `json:"name"`
	Cron           ScheduleCron `json:"cron"`
	IsActive       bool         `json:"is_active"`
	IsProcessing   bool         `json:"is_processing"`
	OnlyWhenOnline bool         `json:"only_when_online"`
	LastRunAt      *time.Time   `json:"last_run_at"`
	NextRunAt      *time.Time   `json:"next_run_at"`
	CreatedAt      *time.Time   `json:"created_at"`
	UpdatedAt      *time.Time   `json:"updated_at"`
}

// ScheduleInput is the editable part of a schedule. ID == 0 means create.
type ScheduleInput struct {
	ID             int64
	Name           string
	Cron           ScheduleCron
	IsActive       bool
	OnlyWhenOnline bool
}

// IsNew reports whether the input describes a schedule not yet stored on the
// server.
func (in ScheduleInput) IsNew() bool {
	return in.ID == 0
}

// DefaultScheduleInput returns the values a new schedule form starts with:
// every five minutes, enabled, only while the server is online.
func DefaultScheduleInput() ScheduleInput {
	return ScheduleInput{
		Cron: ScheduleCron{
			Minute:     "*/5",
			Hour:       "*",
			DayOfMonth: "*",
			Month:      "*",
			DayOfWeek:  "*",
		},
		IsActive:       true,
		OnlyWhenOnline: true,
	}
}

// ScheduleInputFrom pre-fills an edit form from an existing schedule. Empty cron
// fields fall back to the defaults of [DefaultScheduleInput].
func ScheduleInputFrom(s Schedule) ScheduleInput {
	in := DefaultScheduleInput()
	in.ID = s.ID
	in.Name = s.Name
	in.IsActive = s.IsActive
	in.OnlyWhenOnline = s.OnlyWhenOnline

	if s.Cron.Minute != "" {
		in.Cron.Minute = s.Cron.Minute
	}
	if s.Cron.Hour != "" {
		in.Cron.Hour = s.Cron.Hour
	}
	if s.Cron.DayOfMonth != "" {
		in.Cron.DayOfMonth = s.Cron.DayOfMonth
	}
	if s.Cron.Month != "" {
		in.Cron.Month = s.Cron.Month
	}
	if s.Cron.DayOfWeek != "" {
		in.Cron.DayOfWeek = s.Cron.DayOfWeek
	}
	return in
}
