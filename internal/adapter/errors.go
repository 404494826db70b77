// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-panel-client/internal/app"
)

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("too many requests")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrUnexpectedStatus    = errors.New("unexpected status")
)

// APIError is a normalised non-2xx panel response.
type APIError struct {
	// Status is the HTTP status code.
	Status int
	// Code is the panel error code of the first error in the envelope.
	Code string
	// Detail is the human readable detail of the first error in the envelope.
	Detail string

	sentinel error
}

// NewAPIError builds the error a response with the given status and first
// envelope entry maps to.
func NewAPIError(status int, code, detail string) *APIError {
	return &APIError{Status: status, Code: code, Detail: detail, sentinel: statusSentinel(status)}
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("panel api: http %d: %s", e.Status, e.sentinel)
	}
	return fmt.Sprintf("panel api: http %d: %s: %s", e.Status, e.sentinel, e.Detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// HumanMessage turns any error returned by this package into a message fit
// for the user: the panel's own detail when present, otherwise the status text
// or a generic message.
func HumanMessage(err error) string {
	if err == nil {
		return ""
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Detail != "" {
			return apiErr.Detail
		}
		if text := http.StatusText(apiErr.Status); text != "" {
			return text
		}
		return app.MsgUnexpected
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return app.MsgTimedOut
	}

	return err.Error()
}
