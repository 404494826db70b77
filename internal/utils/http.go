// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-panel-client/models"
)

// WriteJSON serializes data to JSON and writes it with statusCode and the
// "application/json" content type.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WriteAPIError writes a single-error panel envelope:
//
//	{"errors":[{"code":"...","status":"404","detail":"..."}]}
func WriteAPIError(w http.ResponseWriter, statusCode int, code, detail string) (int, error) {
	return WriteJSON(w, models.APIErrorResponse{Errors: []models.APIErrorDetail{{
		Code:   code,
		Status: strconv.Itoa(statusCode),
		Detail: detail,
	}}}, statusCode)
}
