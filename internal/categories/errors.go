package categories

import (
	"errors"
	"net/http"
)

// Domain errors for category operations.
var (
	ErrNotFound  = errors.New("category not found")
	ErrEmptyName = errors.New("name cannot be empty")
	ErrInvalidID = errors.New("invalid category ID")
)

// MapHTTPStatus maps category domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrEmptyName) || errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
