// Package infrastructure wires shared service subsystems: lifecycle
// coordination, logging, and the database connection.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/promptdeck/promptdeck/internal/config"
	"github.com/promptdeck/promptdeck/pkg/database"
	"github.com/promptdeck/promptdeck/pkg/lifecycle"
)

// Infrastructure holds the shared subsystems used across modules.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
}

// New constructs the infrastructure from config. Subsystems are created but
// not started; call Start to register lifecycle hooks.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	lc := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("create database: %w", err)
	}

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Database:  db,
	}, nil
}

// Start registers each subsystem with the lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("start database: %w", err)
	}
	return nil
}
