package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables recognised by ApplyEnv.
const (
	EnvConfigPath = "ARENA_CONFIG"
	EnvBind       = "ARENA_BIND"
	EnvLogLevel   = "ARENA_LOG_LEVEL"
	EnvTickRate   = "ARENA_TICK_RATE"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are not an error; existing variables win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ConfigPath returns the TOML path from the environment, or def.
func ConfigPath(def string) string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return def
}

// ApplyEnv overrides selected settings from the environment.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBind); v != "" {
		cfg.Network.BindAddress = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv(EnvTickRate); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTickRate, err)
		}
		if d <= 0 {
			return fmt.Errorf("%s: must be positive, got %s", EnvTickRate, d)
		}
		cfg.Network.TickRate = d
	}
	return nil
}
