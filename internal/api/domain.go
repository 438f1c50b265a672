package api

import (
	"github.com/promptdeck/promptdeck/internal/categories"
	"github.com/promptdeck/promptdeck/internal/prompts"
)

// Domain holds the business systems exposed through the API.
type Domain struct {
	Categories categories.System
	Prompts    prompts.System
}

// NewDomain wires the domain systems against the runtime's database.
func NewDomain(rt *Runtime) *Domain {
	conn := rt.Database.Connection()

	return &Domain{
		Categories: categories.New(conn, rt.Logger),
		Prompts:    prompts.New(conn, rt.Logger, rt.Pagination),
	}
}
