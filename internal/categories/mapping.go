package categories

import (
	"github.com/promptdeck/promptdeck/pkg/query"
	"github.com/promptdeck/promptdeck/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "categories", "c").
	Project("id", "ID").
	Project("name", "Name").
	Project("color", "Color").
	Project("icon", "Icon")

var defaultSort = query.SortField{
	Field: "Name",
}

func scanCategory(s repository.Scanner) (Category, error) {
	var c Category
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Color,
		&c.Icon,
	)
	return c, err
}
