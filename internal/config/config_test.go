package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_PATH", "PORT", "LOG_LEVEL", "LOG_PRETTY", "DEV_MODE", "CHART_TITLE",
	"DATA_SOURCE", "ROW_POLICY", "RELOAD_SCHEDULE", "FETCH_TIMEOUT_SECONDS",
	"CHART_WIDTH", "CHART_HEIGHT", "AWS_REGION", "AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY", "S3_ENDPOINT", "SNAPSHOT_BASE_URL", "SNAPSHOT_TIMEOUT_SECONDS",
}

// clearEnv blanks every key Load reads; blank values count as unset
func clearEnv(t *testing.T) {
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/mock_stock_data.csv", cfg.DataSource)
	assert.Equal(t, "strict", cfg.RowPolicy)
	assert.Empty(t, cfg.ReloadSchedule)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 600, cfg.ChartWidth)
	assert.Equal(t, 600, cfg.ChartHeight)
	assert.False(t, cfg.DevMode)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("DATA_SOURCE", "s3://prices/daily.csv")
	t.Setenv("ROW_POLICY", "skip")
	t.Setenv("RELOAD_SCHEDULE", "0 */15 * * * *")
	t.Setenv("AWS_REGION", "eu-west-1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, "s3://prices/daily.csv", cfg.DataSource)
	assert.Equal(t, "skip", cfg.RowPolicy)
	assert.Equal(t, "0 */15 * * * *", cfg.ReloadSchedule)
	assert.Equal(t, "eu-west-1", cfg.S3.Region)
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8001, cfg.Port)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "stockchart.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 7000
data_source: sqlite://data/history.db
reload_schedule: "@every 1h"
chart_width: 800
s3:
  endpoint: http://localhost:9000
`), 0644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("PORT", "7100") // env wins over the file

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, "sqlite://data/history.db", cfg.DataSource)
	assert.Equal(t, "@every 1h", cfg.ReloadSchedule)
	assert.Equal(t, 800, cfg.ChartWidth)
	assert.Equal(t, 600, cfg.ChartHeight)
	assert.Equal(t, "http://localhost:9000", cfg.S3.Endpoint)
}

func TestLoad_MissingYAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"bad port", func(c *Config) { c.Port = 0 }, "invalid port"},
		{"no source", func(c *Config) { c.DataSource = "" }, "DATA_SOURCE"},
		{"bad policy", func(c *Config) { c.RowPolicy = "lenient" }, "invalid row policy"},
		{"bad timeout", func(c *Config) { c.FetchTimeoutSeconds = 0 }, "fetch timeout"},
		{"tiny chart", func(c *Config) { c.ChartWidth = 50 }, "too small"},
		{"bad schedule", func(c *Config) { c.ReloadSchedule = "every day" }, "invalid reload schedule"},
		{"five field cron rejected", func(c *Config) { c.ReloadSchedule = "*/5 * * * *" }, "invalid reload schedule"},
		{"seconds cron", func(c *Config) { c.ReloadSchedule = "30 0 * * * *" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
