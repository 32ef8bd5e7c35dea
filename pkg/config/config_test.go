package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, 4, cfg.Webhooks.Workers)
	assert.Equal(t, 2*time.Second, cfg.Webhooks.TimeoutDuration())
	assert.Equal(t, 500*time.Millisecond, cfg.Webhooks.InitialBackoffDuration())
	assert.Equal(t, 30*time.Second, cfg.CLI.RequestTimeoutDuration())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFrom_CreatesDefaultFile(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("API_KEY", "")
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Database.URL, cfg.Database.URL)

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadFrom_MergesDefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
port = 9090

[webhooks]
max_attempts = 2
`), 0644))

	t.Setenv("DATABASE_URL", "file:admin.db")
	t.Setenv("DATABASE_DRIVER", "sqlite")
	t.Setenv("API_KEY", "secret-key")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.API.Port)
	assert.Equal(t, "0.0.0.0", cfg.API.Host, "missing keys keep defaults")
	assert.Equal(t, 2, cfg.Webhooks.MaxAttempts)
	assert.Equal(t, 256, cfg.Webhooks.QueueSize)
	assert.Equal(t, "file:admin.db", cfg.Database.URL)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "secret-key", cfg.CLI.APIKey)
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[api\nport = "), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("API_KEY", "")

	cfg := DefaultConfig()
	cfg.CLI.APIKey = "abc"
	require.NoError(t, SaveTo(cfg, path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "abc", loaded.CLI.APIKey)
}

func TestConfig_Set(t *testing.T) {
	cfg := DefaultConfig()

	require.NoError(t, cfg.Set("cli.base_url", "http://admin.local"))
	require.NoError(t, cfg.Set("api.port", "9000"))
	require.NoError(t, cfg.Set("webhooks.max_backoff", "1000"))

	assert.Equal(t, "http://admin.local", cfg.CLI.BaseURL)
	assert.Equal(t, 9000, cfg.API.Port)
	assert.Equal(t, time.Second, cfg.Webhooks.MaxBackoffDuration())

	assert.Error(t, cfg.Set("api.port", "eighty"))
	assert.Error(t, cfg.Set("nope.key", "x"))
	assert.Error(t, cfg.Set("api.nope", "x"))
	assert.Error(t, cfg.Set("api", "x"))
}
