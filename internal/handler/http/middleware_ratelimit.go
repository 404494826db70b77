// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"math"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-panel-client/internal/app"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/utils"
)

// withRateLimit rejects requests over the configured rate with 429 and a
// Retry-After header. It is a no-op when no limit is configured.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		reservation := h.limiter.Reserve()
		if delay := reservation.Delay(); delay > 0 {
			reservation.Cancel()
			logger.FromRequest(r).Warn().Dur("retry_after", delay).Msg("rate limited")

			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			utils.WriteAPIError(w, http.StatusTooManyRequests, "TooManyRequestsHttpException", app.MsgTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}
