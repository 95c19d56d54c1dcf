package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// Supported values for Config.DBDriver
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`

	// Storage
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	DatabaseURL string `envconfig:"DATABASE_URL"`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"./data/fanfic.db"`
	TablePrefix string `envconfig:"TABLE_PREFIX"` // Derived from Environment when empty

	// Auth
	SupabaseURL     string `envconfig:"SUPABASE_URL"`
	SupabaseJWKSURL string `ignored:"true"` // Constructed from SupabaseURL + /auth/v1/.well-known/jwks.json
	JWTSecret       string `envconfig:"JWT_SECRET"` // HS256 shared secret, takes precedence over JWKS

	CORSOrigins string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`

	// Logging
	LogDir      string `envconfig:"LOG_DIR"`
	LogMaxFiles int    `envconfig:"LOG_MAX_FILES" default:"10"`

	// Debug flags
	DebugFlag string `envconfig:"DEBUG"` // "true"/"false"; empty means true outside prod
	Debug     bool   `ignored:"true"`
}

// Load reads configuration from the environment and fills derived fields.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if cfg.TablePrefix == "" {
		cfg.TablePrefix = getTablePrefix(cfg.Environment)
	}
	if cfg.SupabaseURL != "" {
		cfg.SupabaseJWKSURL = strings.TrimRight(cfg.SupabaseURL, "/") + "/auth/v1/.well-known/jwks.json"
	}
	cfg.Debug = cfg.DebugFlag == "true" || (cfg.DebugFlag == "" && cfg.Environment != "prod")

	return &cfg, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	var problems []string

	switch c.Environment {
	case "dev", "test", "prod":
	default:
		problems = append(problems, fmt.Sprintf("ENVIRONMENT must be one of dev, test, prod (got %q)", c.Environment))
	}

	switch c.DBDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required for the postgres driver")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			problems = append(problems, "SQLITE_PATH is required for the sqlite driver")
		}
	default:
		problems = append(problems, fmt.Sprintf("unsupported DB_DRIVER: %q", c.DBDriver))
	}

	if c.LogMaxFiles < 1 {
		problems = append(problems, "LOG_MAX_FILES must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// HasAuth reports whether any token verification source is configured.
func (c *Config) HasAuth() bool {
	return c.JWTSecret != "" || c.SupabaseJWKSURL != ""
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}
