package database_test

import (
	"testing"
	"time"

	"github.com/promptdeck/promptdeck/pkg/database"
)

func TestConfigFinalizeDefaults(t *testing.T) {
	cfg := database.Config{
		Name: "promptdeck",
		User: "promptdeck",
	}

	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "localhost" {
		t.Errorf("host: got %s, want localhost", cfg.Host)
	}
	if cfg.Port != 5432 {
		t.Errorf("port: got %d, want 5432", cfg.Port)
	}
	if cfg.SSLMode != "disable" {
		t.Errorf("ssl_mode: got %s, want disable", cfg.SSLMode)
	}
	if cfg.MaxOpenConns != 25 {
		t.Errorf("max_open_conns: got %d, want 25", cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns != 5 {
		t.Errorf("max_idle_conns: got %d, want 5", cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetimeDuration() != 15*time.Minute {
		t.Errorf("conn_max_lifetime: got %s, want 15m", cfg.ConnMaxLifetime)
	}
	if cfg.ConnTimeoutDuration() != 5*time.Second {
		t.Errorf("conn_timeout: got %s, want 5s", cfg.ConnTimeout)
	}
}

func TestConfigFinalizeEnv(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "db.internal")
	t.Setenv("TEST_DB_PORT", "5433")
	t.Setenv("TEST_DB_PASSWORD", "secret")

	env := &database.Env{
		Host:     "TEST_DB_HOST",
		Port:     "TEST_DB_PORT",
		Password: "TEST_DB_PASSWORD",
	}

	cfg := database.Config{
		Name: "promptdeck",
		User: "promptdeck",
	}

	if err := cfg.Finalize(env); err != nil {
		t.Fatalf("finalize failed: %v", err)
	}

	if cfg.Host != "db.internal" {
		t.Errorf("host: got %s, want db.internal", cfg.Host)
	}
	if cfg.Port != 5433 {
		t.Errorf("port: got %d, want 5433", cfg.Port)
	}
	if cfg.Password != "secret" {
		t.Errorf("password: got %s, want secret", cfg.Password)
	}
}

func TestConfigFinalizeValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  database.Config
	}{
		{"missing name", database.Config{User: "promptdeck"}},
		{"missing user", database.Config{Name: "promptdeck"}},
		{
			"bad lifetime",
			database.Config{Name: "promptdeck", User: "promptdeck", ConnMaxLifetime: "forever"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestConfigMerge(t *testing.T) {
	base := database.Config{
		Host: "localhost",
		Port: 5432,
		Name: "promptdeck",
		User: "promptdeck",
	}

	overlay := database.Config{
		Host:     "db.prod.internal",
		Password: "prodsecret",
		SSLMode:  "require",
	}

	base.Merge(&overlay)

	if base.Host != "db.prod.internal" {
		t.Errorf("host: got %s, want db.prod.internal", base.Host)
	}
	if base.Port != 5432 {
		t.Errorf("port: got %d, want 5432", base.Port)
	}
	if base.SSLMode != "require" {
		t.Errorf("ssl_mode: got %s, want require", base.SSLMode)
	}
}

func TestConfigDsn(t *testing.T) {
	cfg := database.Config{
		Host:     "localhost",
		Port:     5432,
		Name:     "promptdeck",
		User:     "promptdeck",
		Password: "promptdeck",
		SSLMode:  "disable",
	}

	want := "host=localhost port=5432 dbname=promptdeck user=promptdeck password=promptdeck sslmode=disable"
	if got := cfg.Dsn(); got != want {
		t.Errorf("dsn:\n got %s\nwant %s", got, want)
	}
}
