// Package config loads server settings from the environment and an optional
// .env file.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every setting the site reads at startup.
type Config struct {
	Port            string        `env:"PORT" envDefault:"8080"`
	GinMode         string        `env:"GIN_MODE" envDefault:"release"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"./static"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	Logging   LoggingConfig
	Analytics AnalyticsConfig
	SMTP      SMTPConfig
	Admin     AdminConfig
}

type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	File  string `env:"LOG_FILE"`
}

// DefaultDatabasePath is used when DATABASE_PATH is unset. Setting it to an
// empty value disables analytics.
const DefaultDatabasePath = "data/portfolio.db"

// AnalyticsConfig controls visit tracking.
type AnalyticsConfig struct {
	Enable       bool          `env:"ANALYTICS_ENABLED" envDefault:"true"`
	DatabasePath string        `env:"DATABASE_PATH"`
	Retention    time.Duration `env:"VISITOR_RETENTION" envDefault:"8760h"`
}

func (a AnalyticsConfig) Enabled() bool {
	return a.Enable && strings.TrimSpace(a.DatabasePath) != ""
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     string `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASS"`
	To       string `env:"TO_EMAIL"`
}

// AdminConfig guards the dashboard. An empty Password disables admin routes.
type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" envDefault:"admin"`
	Password string `env:"ADMIN_PASSWORD"`
}

func (a AdminConfig) Enabled() bool { return a.Password != "" }

// Load reads .env (if present) and then the process environment. Values
// already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return Parse()
}

// Parse reads the process environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if _, ok := os.LookupEnv("DATABASE_PATH"); !ok {
		cfg.Analytics.DatabasePath = DefaultDatabasePath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	switch c.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("GIN_MODE must be debug, release or test, got %q", c.GinMode)
	}
	if c.Analytics.Retention < 0 {
		return fmt.Errorf("VISITOR_RETENTION must not be negative")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string { return ":" + c.Port }
