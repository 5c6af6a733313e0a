// apps/go-server/internal/config/config.go
//
// Server configuration read from the environment.
// main loads a .env file first (godotenv), then calls Load.

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Leaderboard backends.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds every tunable of the server.
type Config struct {
	Port     string `env:"PORT"      envDefault:"5175"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	Backend        string `env:"LEADERBOARD_BACKEND" envDefault:"sqlite"`
	DBPath         string `env:"DB_PATH"             envDefault:"./data/memorypairs.db"`
	RedisAddr      string `env:"REDIS_ADDR"          envDefault:"localhost:6379"`
	RedisDB        int    `env:"REDIS_DB"            envDefault:"0"`
	LeaderboardKey string `env:"LEADERBOARD_KEY"     envDefault:"memoryHighScores"`
	LeaderboardLen int    `env:"LEADERBOARD_SIZE"    envDefault:"5"`

	SymbolsFile string `env:"SYMBOLS_FILE"`

	JWTSecret  string        `env:"JWT_SECRET"  envDefault:"dev_secret_change_me"`
	TokenTTL   time.Duration `env:"TOKEN_TTL"   envDefault:"24h"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	ClientOrigin  string        `env:"CLIENT_ORIGIN"  envDefault:"http://localhost:5173"`
	MismatchDelay time.Duration `env:"MISMATCH_DELAY" envDefault:"1s"`
	WinDelay      time.Duration `env:"WIN_DELAY"      envDefault:"500ms"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("LEADERBOARD_BACKEND: unknown backend %q", c.Backend)
	}
	if c.LeaderboardLen <= 0 {
		return fmt.Errorf("LEADERBOARD_SIZE must be positive, got %d", c.LeaderboardLen)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	return nil
}
