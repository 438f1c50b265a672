package prompts

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// CreateCommand carries the data needed to create a new prompt.
// The server assigns ID, CreatedAt, and UpdatedAt.
type CreateCommand struct {
	Title      string
	Content    string
	CategoryID *uuid.UUID
	IsFavorite bool
}

// UpdateCommand carries a partial field replacement for an existing prompt.
// Nil fields are left untouched. SetCategory distinguishes an explicit
// "categoryId": null (clear the assignment) from an absent key.
type UpdateCommand struct {
	Title       *string
	Content     *string
	CategoryID  *uuid.UUID
	SetCategory bool
	IsFavorite  *bool
}

// ParseCreate decodes and validates a create request body. All violations
// are collected and returned together; the command is only usable when the
// returned slice is empty.
func ParseCreate(data []byte) (CreateCommand, []string) {
	var cmd CreateCommand

	fields, details := decodeFields(data)
	if details != nil {
		return cmd, details
	}

	if title := requireText(fields, "title", "Title", &details); title != nil {
		cmd.Title = *title
	}
	if content := requireText(fields, "content", "Content", &details); content != nil {
		cmd.Content = *content
	}

	id, set := parseCategory(fields, &details)
	if set {
		cmd.CategoryID = id
	}

	if fav := parseFavorite(fields, &details); fav != nil {
		cmd.IsFavorite = *fav
	}

	return cmd, details
}

// ParseUpdate decodes and validates an update request body. Absent fields
// stay nil in the command. All violations are collected, not fail-fast.
func ParseUpdate(data []byte) (UpdateCommand, []string) {
	var cmd UpdateCommand

	fields, details := decodeFields(data)
	if details != nil {
		return cmd, details
	}

	cmd.Title = optionalText(fields, "title", "Title", &details)
	cmd.Content = optionalText(fields, "content", "Content", &details)
	cmd.CategoryID, cmd.SetCategory = parseCategory(fields, &details)
	cmd.IsFavorite = parseFavorite(fields, &details)

	return cmd, details
}

func decodeFields(data []byte) (map[string]json.RawMessage, []string) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, []string{"Invalid JSON body"}
	}
	return fields, nil
}

func requireText(fields map[string]json.RawMessage, key, label string, details *[]string) *string {
	raw, ok := fields[key]
	if !ok {
		*details = append(*details, label+" is required")
		return nil
	}
	return textValue(raw, label, details)
}

func optionalText(fields map[string]json.RawMessage, key, label string, details *[]string) *string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	return textValue(raw, label, details)
}

func textValue(raw json.RawMessage, label string, details *[]string) *string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		*details = append(*details, label+" must be a string")
		return nil
	}
	if strings.TrimSpace(s) == "" {
		*details = append(*details, label+" cannot be empty")
		return nil
	}
	return &s
}

func parseCategory(fields map[string]json.RawMessage, details *[]string) (*uuid.UUID, bool) {
	raw, ok := fields["categoryId"]
	if !ok {
		return nil, false
	}

	var s *string
	if err := json.Unmarshal(raw, &s); err != nil {
		*details = append(*details, "Invalid categoryId format")
		return nil, false
	}
	if s == nil {
		return nil, true
	}

	id, err := uuid.Parse(*s)
	if err != nil {
		*details = append(*details, "Invalid categoryId format")
		return nil, false
	}
	return &id, true
}

func parseFavorite(fields map[string]json.RawMessage, details *[]string) *bool {
	raw, ok := fields["isFavorite"]
	if !ok {
		return nil
	}

	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		*details = append(*details, "isFavorite must be a boolean")
		return nil
	}
	return &b
}
