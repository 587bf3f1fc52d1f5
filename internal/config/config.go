package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config - application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Tracing  TracingConfig
}

// ServerConfig - HTTP server settings
type ServerConfig struct {
	Port            string        `envconfig:"PORT" default:":8080"`
	AllowedOrigins  []string      `envconfig:"CORS_ALLOWED_ORIGINS"` // empty means every origin
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// DatabaseConfig - storage settings
type DatabaseConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"sqlite3"`
	DSN             string        `envconfig:"DB_DSN" default:"file:leave_manager.db?_foreign_keys=on&_busy_timeout=5000"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
}

// TracingConfig - OpenTelemetry export settings. Tracing is off without an endpoint.
type TracingConfig struct {
	Endpoint    string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" default:"leave-manager"`
	Environment string `envconfig:"ENV" default:"dev"`
}

// Supported database drivers.
const (
	DriverSQLite = "sqlite3"
	DriverMySQL  = "mysql"
)

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	return FromEnv()
}

// FromEnv decodes the configuration from the process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if cfg.Server.Port == "" {
		return nil, errors.New("server port must be set")
	}
	switch cfg.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
	if cfg.Database.DSN == "" {
		return nil, errors.New("database DSN must be set")
	}
	return cfg, nil
}
