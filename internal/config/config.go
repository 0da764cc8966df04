// Package config reads settings from the environment and an optional .env file.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/abatilo/tick/internal/recurrence"
)

const (
	defaultDirName  = ".tick"
	defaultLogLevel = "warn"
	maxProjections  = 366
)

// Config holds tick's runtime settings.
type Config struct {
	// Home is the directory holding accounts, the session and per-user task files.
	Home string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogJSON switches the log handler to JSON.
	LogJSON bool
	// Projections is how many future occurrences list shows per repeating task.
	Projections int
}

// Load reads .env (if present) and then the environment.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, falling back to defaults for unset or invalid values.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Home:        strings.TrimSpace(getenv("TICK_HOME")),
		LogLevel:    getString(getenv, "TICK_LOG_LEVEL", defaultLogLevel),
		LogJSON:     getBool(getenv, "TICK_LOG_JSON"),
		Projections: recurrence.DefaultCount,
	}

	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Home = filepath.Join(home, defaultDirName)
	}

	if n := getInt(getenv, "TICK_PROJECTIONS"); n > 0 && n <= maxProjections {
		cfg.Projections = n
	}

	return cfg, nil
}

func getString(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(getenv func(string) string, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(getenv(key)))
	return err == nil && v
}

func getInt(getenv func(string) string, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
	if err != nil {
		return 0
	}
	return v
}
