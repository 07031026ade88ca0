package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the GophNotes CLI.
//
// Fields:
//   - ServerURL: base URL of the backend HTTP API.
//   - DatabaseDSN: local SQLite file caching the access token.
//   - RequestTimeout: upper bound for a single API call.
type Config struct {
	ServerURL      string
	DatabaseDSN    string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:5000"
	c.DatabaseDSN = "notes.db"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, os.Args[1:])
	parseFlags(cfg, os.Args[1:])
	return cfg
}
