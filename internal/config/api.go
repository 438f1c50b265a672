package config

import (
	"fmt"
	"os"

	"github.com/promptdeck/promptdeck/pkg/formatting"
	"github.com/promptdeck/promptdeck/pkg/middleware"
	"github.com/promptdeck/promptdeck/pkg/openapi"
	"github.com/promptdeck/promptdeck/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "PROMPTDECK_CORS_ENABLED",
	Origins:          "PROMPTDECK_CORS_ORIGINS",
	AllowedMethods:   "PROMPTDECK_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "PROMPTDECK_CORS_ALLOWED_HEADERS",
	AllowCredentials: "PROMPTDECK_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "PROMPTDECK_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "PROMPTDECK_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "PROMPTDECK_PAGINATION_MAX_PAGE_SIZE",
}

var docsEnv = &openapi.ConfigEnv{
	Title:       "PROMPTDECK_DOCS_TITLE",
	Description: "PROMPTDECK_DOCS_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and docs settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	Docs        openapi.Config        `toml:"docs"`
}

// MaxBodySizeBytes returns the request body cap in bytes, with a 1MB fallback.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and docs configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.Docs.Finalize(docsEnv); err != nil {
		return fmt.Errorf("docs: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxBodySize != "" {
		c.MaxBodySize = overlay.MaxBodySize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.Docs.Merge(&overlay.Docs)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("PROMPTDECK_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("PROMPTDECK_API_MAX_BODY_SIZE"); v != "" {
		c.MaxBodySize = v
	}
}
