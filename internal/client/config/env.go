package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/dmitrijs2005/babycare/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "BABYCARE_"

// defaultEnvFile is read when no -e/-env-file flag is given and the file exists.
var defaultEnvFile = ".env"

// parseEnv overlays Config with BABYCARE_* variables. Values from the dotenv
// file are used only for keys missing in the process environment. Unparseable
// durations keep the previous value.
func parseEnv(cfg *Config, args []string) {
	fileValues := map[string]string{}

	path := flagx.EnvFileFlag(args)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	values, err := godotenv.Read(path)
	switch {
	case err == nil:
		fileValues = values
	case explicit || !errors.Is(err, fs.ErrNotExist):
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := fileValues[envPrefix+key]
		return v, ok
	}

	if v, ok := lookup("SERVER_BASE_URL"); ok && v != "" {
		cfg.ServerBaseURL = v
	}
	if v, ok := lookup("DATABASE_PATH"); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := lookup("BABY_ID"); ok {
		cfg.BabyID = v
	}
	if v, ok := lookup("TOGGLE_PERSISTENCE"); ok && v != "" {
		cfg.TogglePersistence = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := lookup("INITIAL_TAB"); ok {
		cfg.InitialTab = strings.ToLower(v)
	}
	cfg.RequestTimeout = envDuration(lookup, "REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.OnlineCheckInterval = envDuration(lookup, "ONLINE_CHECK_INTERVAL", cfg.OnlineCheckInterval)
}
