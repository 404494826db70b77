// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-panel-client/internal/app"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/utils"
)

// auth is an HTTP middleware that enforces API key authentication.
//
// When the handler is configured with an API key, the request must carry
// "Authorization: Bearer <key>" with that exact key, otherwise it is rejected
// with 401 in the panel error envelope. Without a configured key every request
// is accepted.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.apiKey == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		key, err := getKeyFromAuthHeader(r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Send()
			utils.WriteAPIError(w, http.StatusUnauthorized, "AuthenticationException", app.MsgUnauthenticated)
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(h.apiKey)) != 1 {
			log.Err(ErrInvalidAPIKey).Send()
			utils.WriteAPIError(w, http.StatusUnauthorized, "AuthenticationException", app.MsgUnauthenticated)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// getKeyFromAuthHeader extracts the key from "Bearer <key>".
func getKeyFromAuthHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, key, ok := strings.Cut(authHeader, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(key) == "" {
		return "", ErrInvalidAuthorizationHeader
	}

	return strings.TrimSpace(key), nil
}
