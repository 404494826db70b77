// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// APIObject is the panel's envelope for a single resource:
// {"object":"allocation","attributes":{...}}.
type APIObject[T any] struct {
	Object     string `json:"object"`
	Attributes T      `json:"attributes"`
}

// APIList is the panel's envelope for a list of resources.
type APIList[T any] struct {
	Object string         `json:"object"`
	Data   []APIObject[T] `json:"data"`
}

// Items unwraps the attributes of every element.
func (l APIList[T]) Items() []T {
	items := make([]T, 0, len(l.Data))
	for _, obj := range l.Data {
		items = append(items, obj.Attributes)
	}
	return items
}

// NewAPIList wraps items into a list envelope with the given object name.
func NewAPIList[T any](object string, items []T) APIList[T] {
	data := make([]APIObject[T], 0, len(items))
	for _, item := range items {
		data = append(data, APIObject[T]{Object: object, Attributes: item})
	}
	return APIList[T]{Object: "list", Data: data}
}

// APIErrorDetail is one element of the panel's error envelope.
type APIErrorDetail struct {
	Code   string `json:"code"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// APIErrorResponse is the panel's error envelope:
// {"errors":[{"code":"...","status":"400","detail":"..."}]}.
type APIErrorResponse struct {
	Errors []APIErrorDetail `json:"errors"`
}

// UpdateNotesRequest is the body of the update-notes call.
type UpdateNotesRequest struct {
	Notes string `json:"notes"`
}

// ScheduleRequest is the body of the create/update schedule call.
type ScheduleRequest struct {
	Name           string `json:"name"`
	Minute         string `json:"minute"`
	Hour           string `json:"hour"`
	DayOfMonth     string `json:"day_of_month"`
	Month          string `json:"month"`
	DayOfWeek      string `json:"day_of_week"`
	IsActive       bool   `json:"is_active"`
	OnlyWhenOnline bool   `json:"only_when_online"`
}

// NewScheduleRequest flattens a form input into the request body.
func NewScheduleRequest(in ScheduleInput) ScheduleRequest {
	return ScheduleRequest{
		Name:           in.Name,
		Minute:         in.Cron.Minute,
		Hour:           in.Cron.Hour,
		DayOfMonth:     in.Cron.DayOfMonth,
		Month:          in.Cron.Month,
		DayOfWeek:      in.Cron.DayOfWeek,
		IsActive:       in.IsActive,
		OnlyWhenOnline: in.OnlyWhenOnline,
	}
}
