// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/models"
)

const objectAllocation = "allocation"

func (h *Handler) listAllocations(w http.ResponseWriter, r *http.Request) {
	items, err := h.panel.Allocations(r.Context(), chi.URLParam(r, "server"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewAPIList(objectAllocation, items), http.StatusOK)
}

func (h *Handler) setPrimaryAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "allocation")
	if err != nil {
		writeError(w, r, err)
		return
	}

	alloc, err := h.panel.SetPrimary(r.Context(), chi.URLParam(r, "server"), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIObject[models.Allocation]{Object: objectAllocation, Attributes: alloc}, http.StatusOK)
}

func (h *Handler) setAllocationNotes(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "allocation")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.UpdateNotesRequest
	if err = json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, ErrInvalidBody)
		return
	}

	alloc, err := h.panel.SetNotes(r.Context(), chi.URLParam(r, "server"), id, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.APIObject[models.Allocation]{Object: objectAllocation, Attributes: alloc}, http.StatusOK)
}

func (h *Handler) deleteAllocation(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "allocation")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.panel.DeleteAllocation(r.Context(), chi.URLParam(r, "server"), id); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// pathID parses a positive integer path parameter.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
