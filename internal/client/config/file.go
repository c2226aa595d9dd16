package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/babycare/internal/flagx"
	"github.com/dmitrijs2005/babycare/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is a DTO used exclusively for file unmarshalling. Empty fields
// leave the current Config value untouched.
type FileConfig struct {
	ServerBaseURL       string          `json:"server_base_url" yaml:"server_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath        string          `json:"database_path" yaml:"database_path"`
	BabyID              string          `json:"baby_id" yaml:"baby_id"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	TogglePersistence   string          `json:"toggle_persistence" yaml:"toggle_persistence"`
	LogLevel            string          `json:"log_level" yaml:"log_level"`
	InitialTab          string          `json:"initial_tab" yaml:"initial_tab"`
}

// parseFile overlays Config with values loaded from the file passed via -c or
// -config. Files ending in .yaml or .yml are decoded as YAML, everything else
// as JSON. Panics on read or decode errors.
func parseFile(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		panic(err)
	}

	fc.apply(cfg)
}

func (fc *FileConfig) apply(cfg *Config) {
	if fc.ServerBaseURL != "" {
		cfg.ServerBaseURL = fc.ServerBaseURL
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.BabyID != "" {
		cfg.BabyID = fc.BabyID
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.TogglePersistence != "" {
		cfg.TogglePersistence = strings.ToLower(fc.TogglePersistence)
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.InitialTab != "" {
		cfg.InitialTab = strings.ToLower(fc.InitialTab)
	}
}
