package config

import (
	"os"
	"time"
)

// Toggle persistence modes for immunization and milestone checklists.
const (
	PersistenceNone   = "none"
	PersistenceLocal  = "local"
	PersistenceRemote = "remote"
)

// Config holds runtime settings for the babycare client.
//
// Fields:
//   - ServerBaseURL: base URL of the REST backend, e.g. "https://api.example.org/api".
//   - RequestTimeout: fixed timeout applied by the gateway to every request.
//   - DatabasePath: SQLite file holding the token store and local snapshots.
//   - BabyID: baby profile the growth log is scoped to; learned from the
//     backend user profile after login when empty.
//   - OnlineCheckInterval: how often the CLI probes backend reachability.
//   - TogglePersistence: none | local | remote, see the Persistence* constants.
//   - LogLevel: debug | info | warn | error.
//   - InitialTab: growth | vaccines | milestones, shown after landing on the
//     main screen; empty opens nothing.
type Config struct {
	ServerBaseURL       string
	RequestTimeout      time.Duration
	DatabasePath        string
	BabyID              string
	OnlineCheckInterval time.Duration
	TogglePersistence   string
	LogLevel            string
	InitialTab          string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "babycare.db"
	c.BabyID = ""
	c.OnlineCheckInterval = 5 * time.Second
	c.TogglePersistence = PersistenceNone
	c.LogLevel = "info"
	c.InitialTab = ""
}

// LoadConfig builds a Config from os.Args, see LoadConfigFrom.
func LoadConfig() *Config {
	return LoadConfigFrom(os.Args[1:])
}

// LoadConfigFrom constructs a Config, applies defaults, then overlays values
// from the environment (and an optional dotenv file), a JSON/YAML file and
// finally command-line flags. Later sources take precedence.
func LoadConfigFrom(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, args)
	parseFile(cfg, args)
	parseFlags(cfg, args)
	cfg.fixDurations()
	return cfg
}

// fixDurations restores defaults for durations that must be positive: a zero
// RequestTimeout disables the gateway timeout and a zero OnlineCheckInterval
// cannot drive a ticker.
func (c *Config) fixDurations() {
	var d Config
	d.LoadDefaults()
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.OnlineCheckInterval <= 0 {
		c.OnlineCheckInterval = d.OnlineCheckInterval
	}
}
