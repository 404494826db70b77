// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/models"
)

const objectSchedule = "server_schedule"

func (h *Handler) listSchedules(w http.ResponseWriter, r *http.Request) {
	items, err := h.panel.Schedules(r.Context(), chi.URLParam(r, "server"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewAPIList(objectSchedule, items), http.StatusOK)
}

// saveSchedule creates a schedule on /schedules and updates one on
// /schedules/{schedule}.
func (h *Handler) saveSchedule(w http.ResponseWriter, r *http.Request) {
	var in models.ScheduleInput
	status := http.StatusOK

	if chi.URLParam(r, "schedule") != "" {
		id, err := pathID(r, "schedule")
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.ID = id
	} else {
		status = http.StatusCreated
	}

	var req models.ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidBody)
		return
	}
	in.Name = req.Name
	in.Cron = models.ScheduleCron{
		Minute:     req.Minute,
		Hour:       req.Hour,
		DayOfMonth: req.DayOfMonth,
		Month:      req.Month,
		DayOfWeek:  req.DayOfWeek,
	}
	in.IsActive = req.IsActive
	in.OnlyWhenOnline = req.OnlyWhenOnline

	saved, err := h.panel.SaveSchedule(r.Context(), chi.URLParam(r, "server"), in)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIObject[models.Schedule]{Object: objectSchedule, Attributes: saved}, status)
}
