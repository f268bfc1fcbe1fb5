package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"OMDB_BASE_URL", "OMDB_TIMEOUT_SECONDS", "OMDB_REQUESTS_PER_SECOND", "OMDB_API_KEY",
	"SETTINGS_BACKEND", "SETTINGS_FILE",
	"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_DB", "REDIS_SETTINGS_KEY",
	"LOG_LEVEL", "LOG_FILE",
}

// clearEnv blanks every key so values from the developer's shell do not leak
// into assertions. t.Setenv restores them afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configKeys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.omdbapi.com/", cfg.OMDb.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OMDb.Timeout)
	assert.Equal(t, 5, cfg.OMDb.RequestsPerSecond)
	assert.Empty(t, cfg.OMDb.APIKey)
	assert.Equal(t, SettingsBackendFile, cfg.Settings.Backend)
	assert.Equal(t, "config.json", cfg.Settings.File)
	assert.Equal(t, "moviepicker:settings", cfg.Redis.Key)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OMDB_API_KEY", "  abc ")
	t.Setenv("OMDB_TIMEOUT_SECONDS", "3")
	t.Setenv("SETTINGS_BACKEND", "Redis")
	t.Setenv("REDIS_PORT", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", cfg.OMDb.APIKey)
	assert.Equal(t, 3*time.Second, cfg.OMDb.Timeout)
	assert.Equal(t, SettingsBackendRedis, cfg.Settings.Backend)
	assert.Equal(t, 6379, cfg.Redis.Port, "unparseable numbers fall back to the default")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "picker.env")
	require.NoError(t, os.WriteFile(path, []byte("SETTINGS_FILE=/tmp/picker.json\nLOG_LEVEL=debug\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SETTINGS_FILE")
		_ = os.Unsetenv("LOG_LEVEL")
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/picker.json", cfg.Settings.File)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("SETTINGS_BACKEND", "sqlite")
	_, err := Load()
	assert.ErrorContains(t, err, "SETTINGS_BACKEND")

	clearEnv(t)
	t.Setenv("OMDB_REQUESTS_PER_SECOND", "-1")
	_, err = Load()
	assert.ErrorContains(t, err, "OMDB_REQUESTS_PER_SECOND")
}
