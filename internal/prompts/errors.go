package prompts

import (
	"errors"
	"net/http"
)

// Domain errors for prompt operations. ErrCategoryMissing surfaces a
// foreign key violation when a prompt references a category that no
// longer exists; it maps to a server error, matching the create/update
// persistence-failure contract.
var (
	ErrNotFound        = errors.New("prompt not found")
	ErrInvalidID       = errors.New("invalid prompt ID")
	ErrCategoryMissing = errors.New("referenced category does not exist")
)

// MapHTTPStatus maps prompt domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
