// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-panel-client/internal/app"
	"github.com/MKhiriev/go-panel-client/internal/logger"
	"github.com/MKhiriev/go-panel-client/internal/panel"
	"github.com/MKhiriev/go-panel-client/internal/utils"
	"github.com/MKhiriev/go-panel-client/internal/validators"
)

// apiError is the panel representation of a domain error.
type apiError struct {
	status int
	code   string
	detail string
}

var errorMap = []struct {
	target error
	apiError
}{
	{panel.ErrServerNotFound, apiError{http.StatusNotFound, "NotFoundHttpException", app.MsgServerNotFound}},
	{panel.ErrAllocationNotFound, apiError{http.StatusNotFound, "NotFoundHttpException", app.MsgAllocationNotFound}},
	{panel.ErrScheduleNotFound, apiError{http.StatusNotFound, "NotFoundHttpException", app.MsgScheduleNotFound}},
	{panel.ErrPrimaryAllocation, apiError{http.StatusBadRequest, "DisplayException", app.MsgPrimaryAllocation}},
	{validators.ErrNotesTooLong, apiError{http.StatusUnprocessableEntity, "ValidationException", app.MsgNotesTooLong}},
	{validators.ErrEmptyScheduleName, apiError{http.StatusUnprocessableEntity, "ValidationException", app.MsgNameRequired}},
	{validators.ErrScheduleNameTooLong, apiError{http.StatusUnprocessableEntity, "ValidationException", app.MsgNameTooLong}},
	{validators.ErrEmptyCronField, apiError{http.StatusUnprocessableEntity, "ValidationException", ""}},
	{validators.ErrInvalidScheduleID, apiError{http.StatusUnprocessableEntity, "ValidationException", app.MsgScheduleIDInvalid}},
	{ErrInvalidID, apiError{http.StatusNotFound, "NotFoundHttpException", app.MsgResourceNotFound}},
	{ErrInvalidBody, apiError{http.StatusBadRequest, "BadRequestHttpException", app.MsgInvalidBody}},
}

func apiErrorFrom(err error) apiError {
	var failure panel.Failure
	if errors.As(err, &failure) {
		return apiError{status: failure.Status, code: failure.Code, detail: failure.Detail}
	}

	for _, m := range errorMap {
		if errors.Is(err, m.target) {
			e := m.apiError
			if e.detail == "" {
				e.detail = err.Error()
			}
			return e
		}
	}

	return apiError{status: http.StatusInternalServerError, code: "InternalServerErrorHttpException", detail: app.MsgUnexpected}
}

// writeError logs err with the request logger and writes its panel envelope.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	e := apiErrorFrom(err)
	logger.FromRequest(r).Err(err).Int("status", e.status).Msg("request failed")
	utils.WriteAPIError(w, e.status, e.code, e.detail)
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	utils.WriteAPIError(w, http.StatusNotFound, "NotFoundHttpException", app.MsgResourceNotFound)
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	utils.WriteAPIError(w, http.StatusMethodNotAllowed, "MethodNotAllowedHttpException", "")
}
