// Package config loads environment configuration for the client.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joeshaw/envdecode"
)

type Config struct {
	APIBaseURL     string        `env:"SHOPLIST_API_URL,default=http://localhost:3000" description:"base URL of the shopping-list backend"`
	DataDir        string        `env:"SHOPLIST_DATA_DIR" description:"directory for the local store; defaults to ~/.shoplist"`
	LogLevel       string        `env:"SHOPLIST_LOG_LEVEL,default=info" description:"debug, info, warn or error"`
	RequestTimeout time.Duration `env:"SHOPLIST_REQUEST_TIMEOUT,default=15s" description:"per-request HTTP timeout"`
}

// Load decodes the environment and fills in the data directory
// default, creating it if needed.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := envdecode.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}

	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".shoplist")
	}
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	return cfg, nil
}

// DBPath returns the local store's database path.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "shoplist.db")
}

// KeyPath returns the sealing key file path.
func (c *Config) KeyPath() string {
	return filepath.Join(c.DataDir, "storage.key")
}
