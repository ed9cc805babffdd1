// Package config loads server settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds the server settings. Engine balance lives in engine.Config.
type Config struct {
	Addr       string `env:"HOLLOWHEART_ADDR" envDefault:":8080"`
	DBPath     string `env:"HOLLOWHEART_DB" envDefault:"hollowheart.db"`
	PlayerName string `env:"HOLLOWHEART_PLAYER" envDefault:"Soldier"`
	Debug      bool   `env:"HOLLOWHEART_DEBUG" envDefault:"false"`

	// Seed for the simulation RNG. Zero draws one from crypto/rand.
	Seed int64 `env:"HOLLOWHEART_SEED" envDefault:"0"`

	TickInterval     time.Duration `env:"HOLLOWHEART_TICK" envDefault:"100ms"`
	AutosaveInterval time.Duration `env:"HOLLOWHEART_AUTOSAVE" envDefault:"30s"`

	// Empty disables leaderboard submission.
	LeaderboardURL      string        `env:"HOLLOWHEART_LEADERBOARD_URL"`
	LeaderboardCacheTTL time.Duration `env:"HOLLOWHEART_LEADERBOARD_TTL" envDefault:"1m"`
	LeaderboardTimeout  time.Duration `env:"HOLLOWHEART_LEADERBOARD_TIMEOUT" envDefault:"5s"`

	// Channel buffer sizes
	BroadcastBuffer  int `env:"HOLLOWHEART_BROADCAST_BUFFER" envDefault:"256"`
	ClientSendBuffer int `env:"HOLLOWHEART_CLIENT_BUFFER" envDefault:"64"`

	// Narration lines kept in memory for replay.
	LogRetention int `env:"HOLLOWHEART_LOG_RETENTION" envDefault:"500"`
}

// Load reads files (".env" when none are given) into the environment and
// parses Config from it. Missing files are not an error.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

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
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive, got %s", c.TickInterval)
	}
	if c.AutosaveInterval < c.TickInterval {
		return fmt.Errorf("autosave interval %s shorter than tick interval %s", c.AutosaveInterval, c.TickInterval)
	}
	if c.BroadcastBuffer <= 0 || c.ClientSendBuffer <= 0 {
		return errors.New("channel buffers must be positive")
	}
	if c.LogRetention <= 0 {
		return errors.New("log retention must be positive")
	}
	return nil
}
