// Package prompts implements the prompt domain for Promptdeck.
// It provides types, data access, and HTTP handlers for managing
// stored prompt snippets and their category assignments.
package prompts

import (
	"time"

	"github.com/google/uuid"
)

// Prompt represents a stored prompt snippet. CategoryID is nil for
// uncategorized prompts. CreatedAt is immutable; UpdatedAt is refreshed
// on every successful update.
type Prompt struct {
	ID         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	CategoryID *uuid.UUID `json:"categoryId"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	IsFavorite bool       `json:"isFavorite"`
}

// DeleteResult is the response body for successful deletes.
type DeleteResult struct {
	Success bool `json:"success"`
}
