// Package api assembles the HTTP API module: domain handlers, middleware,
// and the OpenAPI document.
package api

import (
	"fmt"
	"net/http"

	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/pkg/middleware"
	"github.com/promptdeck/promptdeck/pkg/module"
	"github.com/promptdeck/promptdeck/pkg/openapi"
	"github.com/promptdeck/promptdeck/pkg/routes"
)

// NewModule builds the API module mounted at cfg.BasePath with request
// logging, CORS, and body size limiting applied to every route.
func NewModule(rt *Runtime, domain *Domain, cfg *config.APIConfig, version string) (*module.Module, error) {
	mux := http.NewServeMux()

	routes.Register(
		mux,
		domain.Categories.Handler().Routes(),
		domain.Prompts.Handler().Routes(),
	)

	spec := BuildSpec(cfg, version)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.BasePath, mux)
	m.Use(middleware.Logger(rt.Logger.With("module", "api")))
	m.Use(middleware.CORS(&cfg.CORS))
	m.Use(middleware.MaxBody(cfg.MaxBodySizeBytes()))

	return m, nil
}
