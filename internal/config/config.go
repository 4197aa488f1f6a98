// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Save backends understood by the save package.
const (
	BackendYAML   = "yaml"
	BackendSQLite = "sqlite"
)

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible runs.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"DEADZONE_SEED" envDefault:"0"`

	PlayerName    string `env:"DEADZONE_PLAYER" envDefault:"Survivor"`
	StartLocation string `env:"DEADZONE_START_LOCATION" envDefault:"loc_ruined_city"`

	SaveBackend string `env:"DEADZONE_SAVE_BACKEND" envDefault:"yaml"`
	SaveDir     string `env:"DEADZONE_SAVE_DIR" envDefault:".saves"`
	SQLitePath  string `env:"DEADZONE_SQLITE_PATH" envDefault:"deadzone.db"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	// LogFile receives log output while the terminal UI owns stdout. Empty means stderr.
	LogFile string `env:"DEADZONE_LOG_FILE" envDefault:"deadzone.log"`

	TelemetryEnabled bool    `env:"DEADZONE_TELEMETRY" envDefault:"false"`
	TelemetryRatio   float64 `env:"DEADZONE_TELEMETRY_RATIO" envDefault:"1"`
	HoneycombAPIKey  string  `env:"HONEYCOMB_DEADZONE_API_KEY"`
	HoneycombDataset string  `env:"HONEYCOMB_DEADZONE_DATASET" envDefault:"deadzone"`
}

// ParseEnv parses environment variables into the target struct.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads a Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c Config) Validate() error {
	switch c.SaveBackend {
	case BackendYAML, BackendSQLite:
	default:
		return fmt.Errorf("unknown save backend %q", c.SaveBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.PlayerName == "" {
		return fmt.Errorf("player name must not be empty")
	}
	return nil
}
