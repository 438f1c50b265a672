package api

import (
	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/internal/infrastructure"
	"github.com/promptdeck/promptdeck/pkg/pagination"
)

// Runtime bundles shared infrastructure with API-level settings.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

// NewRuntime creates a Runtime from infrastructure and API config.
func NewRuntime(infra *infrastructure.Infrastructure, cfg *config.APIConfig) *Runtime {
	return &Runtime{
		Infrastructure: infra,
		Pagination:     cfg.Pagination,
	}
}
