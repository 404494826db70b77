// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, withGZip)

	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/client/servers/{server}", func(r chi.Router) {
		r.Use(h.auth, h.withRateLimit, h.withLatency)

		r.Get("/network/allocations", h.listAllocations)
		r.Put("/network/allocations/{allocation}/primary", h.setPrimaryAllocation)
		r.Patch("/network/allocations/{allocation}/notes", h.setAllocationNotes)
		r.Delete("/network/allocations/{allocation}", h.deleteAllocation)

		r.Get("/schedules", h.listSchedules)
		r.Post("/schedules", h.saveSchedule)
		r.Post("/schedules/{schedule}", h.saveSchedule)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(methodNotAllowed)

	return router
}
