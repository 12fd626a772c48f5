package server

import (
	"os"
	"strconv"
)

// Config holds the HTTP server settings, read from the environment.
type Config struct {
	Port       string
	ContentDir string
	Mode       string
	Cores      int
}

// ConfigFromEnv reads PORT, CONTENT_DIR, GIN_MODE and SERVER_CORES with
// defaults for local development.
func ConfigFromEnv() Config {
	cfg := Config{
		Port:       os.Getenv("PORT"),
		ContentDir: os.Getenv("CONTENT_DIR"),
		Mode:       os.Getenv("GIN_MODE"),
		Cores:      8,
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.ContentDir == "" {
		cfg.ContentDir = "content"
	}
	if v := os.Getenv("SERVER_CORES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Cores = n
		}
	}
	return cfg
}

// Addr returns the listen address.
func (c Config) Addr() string { return ":" + c.Port }
