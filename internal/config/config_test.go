package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "AED", cfg.Ingest.Currency)
	assert.Equal(t, filepath.Join("data", "bnitrack.db"), cfg.Storage.DatabasePath())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("BNI_SERVER_PORT", "9090")
	t.Setenv("BNI_SERVER_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("BNI_LOGGING_LEVEL", "debug")
	t.Setenv("BNI_INGEST_CURRENCY", "USD")
	t.Setenv("BNI_SECURITY_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("BNI_SECURITY_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "USD", cfg.Ingest.Currency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.AllowedOrigins)
	assert.False(t, cfg.Security.RateLimit.Enabled)

	// Untouched fields keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoadFromYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
server:
  port: 9001
storage:
  data_dir: /var/lib/bnitrack
ingest:
  currency: USD
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("BNI_CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "/var/lib/bnitrack", cfg.Storage.DataDir)
	assert.Equal(t, "USD", cfg.Ingest.Currency)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9001\n"), 0o644))
	t.Setenv("BNI_CONFIG_FILE", path)
	t.Setenv("BNI_SERVER_PORT", "9002")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9002, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "invalid server port",
		},
		{
			name:    "zero read timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = 0 },
			wantErr: "read timeout",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "unknown log format",
		},
		{
			name:    "empty data dir",
			mutate:  func(c *Config) { c.Storage.DataDir = "" },
			wantErr: "data directory",
		},
		{
			name:    "non-positive upload cap",
			mutate:  func(c *Config) { c.Ingest.MaxUploadBytes = 0 },
			wantErr: "max upload size",
		},
		{
			name:    "no allowed origins",
			mutate:  func(c *Config) { c.Security.AllowedOrigins = nil },
			wantErr: "allowed origin",
		},
		{
			name:    "rate limit enabled without rps",
			mutate:  func(c *Config) { c.Security.RateLimit.RPS = 0 },
			wantErr: "rate limit rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabasePathAbsolute(t *testing.T) {
	s := StorageConfig{DataDir: "data", DatabaseFile: "/srv/bni/tracker.db"}
	assert.Equal(t, "/srv/bni/tracker.db", s.DatabasePath())
}

func TestEnsureDataDir(t *testing.T) {
	cfg := Default()
	cfg.Storage.DataDir = filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, cfg.EnsureDataDir())
	info, err := os.Stat(cfg.Storage.DataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
