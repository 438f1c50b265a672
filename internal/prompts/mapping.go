package prompts

import (
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/promptdeck/promptdeck/pkg/query"
	"github.com/promptdeck/promptdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "prompts", "p").
	Project("id", "ID").
	Project("title", "Title").
	Project("content", "Content").
	Project("category_id", "CategoryID").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt").
	Project("is_favorite", "IsFavorite")

// Newest first. GET /prompts guarantees this ordering.
var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for prompt searches.
// Nil fields are ignored. Uncategorized matches prompts with no category
// and takes precedence over CategoryID when both are set.
type Filters struct {
	CategoryID    *uuid.UUID `json:"categoryId,omitempty"`
	IsFavorite    *bool      `json:"isFavorite,omitempty"`
	Uncategorized bool       `json:"uncategorized,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	if f.Uncategorized {
		return b.
			WhereNullable("CategoryID", nil).
			WhereEquals("IsFavorite", f.IsFavorite)
	}
	return b.
		WhereEquals("CategoryID", f.CategoryID).
		WhereEquals("IsFavorite", f.IsFavorite)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if c := values.Get("categoryId"); c != "" {
		if id, err := uuid.Parse(c); err == nil {
			f.CategoryID = &id
		}
	}

	if fav := values.Get("isFavorite"); fav != "" {
		if v, err := strconv.ParseBool(fav); err == nil {
			f.IsFavorite = &v
		}
	}

	if u := values.Get("uncategorized"); u != "" {
		if v, err := strconv.ParseBool(u); err == nil {
			f.Uncategorized = v
		}
	}

	return f
}

func scanPrompt(s repository.Scanner) (Prompt, error) {
	var (
		p   Prompt
		cat uuid.NullUUID
	)

	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Content,
		&cat,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.IsFavorite,
	)
	if cat.Valid {
		p.CategoryID = &cat.UUID
	}
	return p, err
}
