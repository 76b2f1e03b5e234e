// Pollenboard - Generative Media Studio and Community Feed
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/pollenboard

package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/pollenboard/internal/logging"
	"github.com/tomtom215/pollenboard/internal/validation"
)

// ErrorResponse is the JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error" example:"Failed to fetch feed"`
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Debug().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends {"error": message}. Callers pass a fixed message;
// internal error detail never reaches the client.
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Cache-Control", "no-store")
	respondJSON(w, status, ErrorResponse{Error: message})
}

// validateRequest validates a struct using go-playground/validator and
// returns the client-facing message, or "" when valid.
func validateRequest(v interface{}) string {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return ""
	}
	return validationErr.ToAPIError().Message
}

// getPositiveIntParam returns the query parameter as a positive integer, or
// defaultValue when it is missing, unparsable or not positive.
func getPositiveIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || intValue < 1 {
		return defaultValue
	}
	return intValue
}

// getBoolParam treats "true" and "1" as true and anything else as false.
func getBoolParam(r *http.Request, key string) bool {
	switch r.URL.Query().Get(key) {
	case "true", "1":
		return true
	default:
		return false
	}
}
