// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"time"
)

// withLatency delays every response by the configured latency, or until the
// client goes away.
func (h *Handler) withLatency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.latency > 0 {
			t := time.NewTimer(h.latency)
			select {
			case <-t.C:
			case <-r.Context().Done():
				t.Stop()
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
