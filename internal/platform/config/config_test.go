package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Fatalf("expected default addr :8080, got %s", cfg.Addr)
	}
	if cfg.MigrationsDir != "migrations" {
		t.Fatalf("unexpected migrations dir %s", cfg.MigrationsDir)
	}
	if cfg.ReconcileInterval != time.Minute {
		t.Fatalf("unexpected reconcile interval %s", cfg.ReconcileInterval)
	}
	if cfg.ReconcileBatchSize != 100 {
		t.Fatalf("unexpected batch size %d", cfg.ReconcileBatchSize)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/hr")
	t.Setenv("RECONCILE_INTERVAL", "30s")
	t.Setenv("RECONCILE_BATCH_SIZE", "25")
	t.Setenv("RUN_MIGRATIONS", "false")

	cfg := Load()
	if cfg.Addr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Addr)
	}
	if cfg.DatabaseURL != "postgres://localhost/hr" {
		t.Fatalf("unexpected database url %s", cfg.DatabaseURL)
	}
	if cfg.ReconcileInterval != 30*time.Second {
		t.Fatalf("unexpected interval %s", cfg.ReconcileInterval)
	}
	if cfg.ReconcileBatchSize != 25 {
		t.Fatalf("unexpected batch size %d", cfg.ReconcileBatchSize)
	}
	if cfg.RunMigrations {
		t.Fatal("expected migrations disabled")
	}
}

func TestValidate(t *testing.T) {
	cfg := Load()
	cfg.DatabaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected missing DATABASE_URL to fail")
	}

	cfg.DatabaseURL = "postgres://localhost/hr"
	cfg.ReconcileEnabled = true
	cfg.ReconcileInterval = time.Millisecond
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected sub-second interval to fail")
	}

	cfg.ReconcileInterval = time.Minute
	cfg.ReconcileBatchSize = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected zero batch size to fail")
	}

	cfg.ReconcileBatchSize = 50
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
