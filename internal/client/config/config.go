package config

import "time"

// Config holds runtime settings for the usermgr CLI.
//
// Fields:
//   - ServerBaseURL: base URL of the User Management API.
//   - RequestTimeout: per-request HTTP timeout.
//   - AutoLoginDelay: compensating wait between registration and the
//     automatic login (read-after-write consistency on the server side).
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabaseDSN: path of the local SQLite database (session + list cache).
//   - LogLevel: debug | info | warn | error.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	AutoLoginDelay      time.Duration
	OnlineCheckInterval time.Duration
	DatabaseDSN         string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.AutoLoginDelay = 500 * time.Millisecond
	c.OnlineCheckInterval = 3 * time.Second
	c.DatabaseDSN = "usermgr.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
