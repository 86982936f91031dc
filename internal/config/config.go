// Package config provides centralized configuration management.
// All runtime settings load here; the rest of the codebase references
// these values instead of reading the environment directly.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// SimConfig holds match simulation settings.
type SimConfig struct {
	// Seed of 0 means the server derives a seed per match.
	Seed           int64  `env:"SIM_SEED" envDefault:"0"`
	HalfDurationMs uint64 `env:"SIM_HALF_DURATION_MS" envDefault:"2700000"`

	// ObserveEveryTicks is how often live snapshots are emitted to
	// websocket viewers; 25 ticks is four snapshots per virtual second.
	ObserveEveryTicks int `env:"SIM_OBSERVE_EVERY_TICKS" envDefault:"25"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port        int      `env:"PORT" envDefault:"3000"`
	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:","`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"10"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" envDefault:"20"`
}

// StoreConfig holds persistence settings.
type StoreConfig struct {
	// Path is the sqlite database file; ":memory:" keeps results in memory.
	Path string `env:"DB_PATH" envDefault:"football.db"`
}

// DebugConfig holds the internal observability server settings.
type DebugConfig struct {
	Enabled bool `env:"DEBUG_SERVER_ENABLED" envDefault:"true"`
	// ListenAddr should stay on localhost; pprof must never face the internet.
	ListenAddr string `env:"DEBUG_LISTEN_ADDR" envDefault:"127.0.0.1:6060"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`
}

// AppConfig holds the complete application configuration.
type AppConfig struct {
	Sim    SimConfig
	Server ServerConfig
	Store  StoreConfig
	Debug  DebugConfig
	Log    LogConfig
}

// Load parses the full configuration from the environment.
func Load() (AppConfig, error) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
