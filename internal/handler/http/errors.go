// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the authentication middleware when parsing the
// "Authorization" HTTP header.
var (
	// ErrEmptyAuthorizationHeader is returned when the request carries no
	// "Authorization" header at all.
	ErrEmptyAuthorizationHeader = errors.New("empty `Authorization` header")

	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <key>".
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrInvalidAPIKey is returned when the bearer key does not match.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrInvalidID is returned when a path identifier is not a positive
	// integer.
	ErrInvalidID = errors.New("invalid identifier")

	// ErrInvalidBody is returned when the request body cannot be decoded.
	ErrInvalidBody = errors.New("invalid request body")
)
