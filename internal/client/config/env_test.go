package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_ProcessEnvironment(t *testing.T) {
	t.Setenv("BABYCARE_SERVER_BASE_URL", "http://env-host/api")
	t.Setenv("BABYCARE_REQUEST_TIMEOUT", "4s")
	t.Setenv("BABYCARE_ONLINE_CHECK_INTERVAL", "not-a-duration")
	t.Setenv("BABYCARE_TOGGLE_PERSISTENCE", "LOCAL")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, nil)

	assert.Equal(t, "http://env-host/api", cfg.ServerBaseURL)
	assert.Equal(t, 4*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.OnlineCheckInterval, "invalid duration keeps previous value")
	assert.Equal(t, PersistenceLocal, cfg.TogglePersistence)
}

func TestParseEnv_DotenvFileIsOverriddenByEnvironment(t *testing.T) {
	path := writeTempFile(t, "test.env", "BABYCARE_BABY_ID=file-baby\nBABYCARE_DATABASE_PATH=/data/file.db\n")
	t.Setenv("BABYCARE_DATABASE_PATH", "/data/env.db")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg, []string{"-e", path})

	assert.Equal(t, "file-baby", cfg.BabyID)
	assert.Equal(t, "/data/env.db", cfg.DatabasePath)
}

func TestParseEnv_MissingExplicitFilePanics(t *testing.T) {
	require.Panics(t, func() {
		parseEnv(&Config{}, []string{"-env-file", filepath.Join(t.TempDir(), "absent.env")})
	})
}

func TestParseEnv_MissingDefaultFileIsIgnored(t *testing.T) {
	orig := defaultEnvFile
	defaultEnvFile = filepath.Join(t.TempDir(), ".env")
	t.Cleanup(func() { defaultEnvFile = orig })

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseEnv(cfg, nil) })
	assert.Equal(t, "babycare.db", cfg.DatabasePath)
}
