package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type AuditBackend string

const (
	AuditMemory   AuditBackend = "memory"
	AuditPostgres AuditBackend = "postgres"
)

type Config struct {
	App struct {
		Name     string `envconfig:"APP_NAME" default:"Betawi"`
		Port     int    `envconfig:"PORT" default:"8080"`
		SeedDemo bool   `envconfig:"SEED_DEMO" default:"true"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"betawi"`
	}

	Server struct {
		Timeout     time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		CORSOrigins []string      `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	}

	Audit struct {
		Backend AuditBackend `envconfig:"AUDIT_BACKEND" default:"memory"`
	}

	Auth struct {
		Secret string        `envconfig:"JWT_SECRET" default:"change-me"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"12h"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Audit.Backend {
	case AuditMemory, AuditPostgres:
	default:
		return nil, fmt.Errorf("unknown AUDIT_BACKEND %q", cfg.Audit.Backend)
	}

	return &cfg, nil
}
