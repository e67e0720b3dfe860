// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the babysteps client.
//
// Fields:
//   - ServerBaseURL: base URL of the babysteps API server.
//   - LocalDBPath: path of the sqlite file holding durable client state.
//   - PollInterval: how often the live poller re-fetches the today view.
type Config struct {
	ServerBaseURL string
	LocalDBPath   string
	PollInterval  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080"
	c.LocalDBPath = "babysteps.db"
	c.PollInterval = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
