// Package categories implements the category domain for Promptdeck.
// Categories are named tags grouping prompts, with optional display
// color and icon tokens.
package categories

import "github.com/google/uuid"

// Category represents a named prompt grouping. Color and Icon are
// free-form display tokens owned by the presentation layer.
type Category struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color *string   `json:"color"`
	Icon  *string   `json:"icon"`
}

// CreateCommand carries the data needed to create a new category.
type CreateCommand struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// UpdateCommand carries a partial field replacement for an existing
// category. Nil fields are left untouched.
type UpdateCommand struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
	Icon  *string `json:"icon"`
}

// DeleteResult is the response body for successful deletes.
type DeleteResult struct {
	Success bool `json:"success"`
}
