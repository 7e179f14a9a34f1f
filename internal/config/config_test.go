package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("expected :8080, got %q", cfg.Addr())
	}
	if cfg.Analytics.Retention != 8760*time.Hour {
		t.Fatalf("expected one year retention, got %v", cfg.Analytics.Retention)
	}
	if cfg.Admin.Enabled() {
		t.Fatal("expected admin disabled without password")
	}
}

func TestParseDatabasePath(t *testing.T) {
	tests := map[string]struct {
		value   *string
		path    string
		enabled bool
	}{
		"unset":  {nil, DefaultDatabasePath, true},
		"empty":  {ptr(""), "", false},
		"custom": {ptr("/tmp/site.db"), "/tmp/site.db", true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if tt.value != nil {
				t.Setenv("DATABASE_PATH", *tt.value)
			} else {
				unsetEnv(t, "DATABASE_PATH")
			}
			cfg, err := Parse()
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if cfg.Analytics.DatabasePath != tt.path {
				t.Fatalf("expected path %q, got %q", tt.path, cfg.Analytics.DatabasePath)
			}
			if cfg.Analytics.Enabled() != tt.enabled {
				t.Fatalf("expected enabled=%v, got %v", tt.enabled, cfg.Analytics.Enabled())
			}
		})
	}
}

func ptr(s string) *string { return &s }

// unsetEnv removes key for the duration of the test and restores it after.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	if err := os.Unsetenv(key); err != nil {
		t.Fatalf("unset %s: %v", key, err)
	}
}

func TestParseOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYTICS_ENABLED", "false")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("VISITOR_RETENTION", "720h")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Port != "9090" {
		t.Fatalf("expected 9090, got %q", cfg.Port)
	}
	if cfg.Analytics.Enabled() {
		t.Fatal("expected analytics disabled")
	}
	if !cfg.Admin.Enabled() {
		t.Fatal("expected admin enabled")
	}
	if cfg.Analytics.Retention != 720*time.Hour {
		t.Fatalf("expected 720h, got %v", cfg.Analytics.Retention)
	}
}

func TestParseEnvError(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseValidationError(t *testing.T) {
	t.Setenv("GIN_MODE", "loud")

	_, err := Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "GIN_MODE") {
		t.Fatalf("expected GIN_MODE in error, got %v", err)
	}
}
