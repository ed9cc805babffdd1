package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.TickInterval != 100*time.Millisecond {
		t.Errorf("TickInterval = %s, want 100ms", cfg.TickInterval)
	}
	if cfg.LeaderboardURL != "" {
		t.Errorf("leaderboard should be disabled by default")
	}
}

func TestLoadFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	body := "HOLLOWHEART_PLAYER=Ada\nHOLLOWHEART_SEED=42\nHOLLOWHEART_AUTOSAVE=10s\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOLLOWHEART_DEBUG", "true")
	// godotenv does not override variables already set.
	t.Setenv("HOLLOWHEART_PLAYER", "Grace")
	t.Cleanup(func() {
		os.Unsetenv("HOLLOWHEART_SEED")
		os.Unsetenv("HOLLOWHEART_AUTOSAVE")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PlayerName != "Grace" {
		t.Errorf("PlayerName = %q, want Grace", cfg.PlayerName)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if !cfg.Debug {
		t.Errorf("Debug should be true")
	}
	if cfg.AutosaveInterval != 10*time.Second {
		t.Errorf("AutosaveInterval = %s, want 10s", cfg.AutosaveInterval)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"zero tick", func(c *Config) { c.TickInterval = 0 }},
		{"autosave below tick", func(c *Config) { c.AutosaveInterval = time.Millisecond }},
		{"no buffer", func(c *Config) { c.ClientSendBuffer = 0 }},
		{"no retention", func(c *Config) { c.LogRetention = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{
				TickInterval:     100 * time.Millisecond,
				AutosaveInterval: time.Second,
				BroadcastBuffer:  1,
				ClientSendBuffer: 1,
				LogRetention:     1,
			}
			tc.mut(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
