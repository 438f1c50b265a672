// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorBody is the error envelope returned by all failing endpoints.
// Details carries itemized validation failures when present.
type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

// RespondJSON writes data as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes it as a JSON error envelope.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("request failed", "status", status, "error", err)
	RespondJSON(w, status, ErrorBody{Error: err.Error()})
}

// RespondValidation writes a 400 envelope carrying every collected violation.
func RespondValidation(w http.ResponseWriter, logger *slog.Logger, details []string) {
	logger.Error("validation failed", "details", details)
	RespondJSON(w, http.StatusBadRequest, ErrorBody{
		Error:   "Validation failed",
		Details: details,
	})
}
