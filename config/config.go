package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// AuthMode selects which auth provider implementation the service uses.
type AuthMode string

const (
	// AuthModeRemote talks to an external GoTrue-compatible provider.
	AuthModeRemote AuthMode = "remote"
	// AuthModeLocal runs the in-process provider. Meant for development
	// and tests.
	AuthModeLocal AuthMode = "local"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	// Empty MONGO_URI switches the service to the in-memory store.
	MongoURI string `env:"MONGO_URI"`
	MongoDB  string `env:"MONGO_DB" envDefault:"vraag_en_aanbod"`

	AuthMode      AuthMode `env:"AUTH_MODE" envDefault:"local"`
	AuthBaseURL   string   `env:"AUTH_BASE_URL"`
	AuthJWTSecret string   `env:"AUTH_JWT_SECRET" envDefault:"dev-secret"`

	SeedAdminEmail    string `env:"SEED_ADMIN_EMAIL" envDefault:"beheer@school.nl"`
	SeedAdminName     string `env:"SEED_ADMIN_NAME" envDefault:"Beheerder"`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:"changeme123"`

	// SWEEP_INTERVAL of 0 disables the background deadline sweep.
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1h"`

	// Rate limit applied to the public admin-request form, per client IP.
	RequestRatePerSecond float64 `env:"ADMIN_REQUEST_RATE" envDefault:"1"`
	RequestBurst         int     `env:"ADMIN_REQUEST_BURST" envDefault:"5"`

	LogFile string `env:"LOG_FILE" envDefault:"logs/board.log"`
}

// Load reads an optional .env file and parses the environment into a
// Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %v", err)
	}
	if cfg.AuthMode == AuthModeRemote && cfg.AuthBaseURL == "" {
		return Config{}, fmt.Errorf("AUTH_BASE_URL is required when AUTH_MODE=remote")
	}
	return cfg, nil
}
