// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v2"
)

// Config holds application configuration
type Config struct {
	Port                int            `yaml:"port"`
	LogLevel            string         `yaml:"log_level"`
	LogPretty           bool           `yaml:"log_pretty"`
	DevMode             bool           `yaml:"dev_mode"`
	Title               string         `yaml:"title"`
	DataSource          string         `yaml:"data_source"`     // path, file://, http(s)://, s3:// or sqlite:// locator
	RowPolicy           string         `yaml:"row_policy"`      // strict or skip
	ReloadSchedule      string         `yaml:"reload_schedule"` // cron with seconds; empty disables
	FetchTimeoutSeconds int            `yaml:"fetch_timeout_seconds"`
	ChartWidth          int            `yaml:"chart_width"`
	ChartHeight         int            `yaml:"chart_height"`
	S3                  S3Config       `yaml:"s3"`
	Snapshot            SnapshotConfig `yaml:"snapshot"`
}

// S3Config holds credentials for s3:// data sources. Empty keys fall back to
// the default AWS credential chain.
type S3Config struct {
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"` // S3-compatible stores (MinIO etc.)
}

// SnapshotConfig holds defaults for the snapshot tool
type SnapshotConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// cronParser matches the scheduler's seconds-enabled cron
var cronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func defaults() *Config {
	return &Config{
		Port:                8001,
		LogLevel:            "info",
		Title:               "Stock Prices",
		DataSource:          "data/mock_stock_data.csv",
		RowPolicy:           "strict",
		FetchTimeoutSeconds: 30,
		ChartWidth:          600,
		ChartHeight:         600,
		Snapshot: SnapshotConfig{
			BaseURL:        "http://localhost:8001",
			TimeoutSeconds: 30,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file named by
// CONFIG_PATH, then environment variables (highest precedence)
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnvAsInt("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogPretty = getEnvAsBool("LOG_PRETTY", c.LogPretty)
	c.DevMode = getEnvAsBool("DEV_MODE", c.DevMode)
	c.Title = getEnv("CHART_TITLE", c.Title)
	c.DataSource = getEnv("DATA_SOURCE", c.DataSource)
	c.RowPolicy = getEnv("ROW_POLICY", c.RowPolicy)
	c.ReloadSchedule = getEnv("RELOAD_SCHEDULE", c.ReloadSchedule)
	c.FetchTimeoutSeconds = getEnvAsInt("FETCH_TIMEOUT_SECONDS", c.FetchTimeoutSeconds)
	c.ChartWidth = getEnvAsInt("CHART_WIDTH", c.ChartWidth)
	c.ChartHeight = getEnvAsInt("CHART_HEIGHT", c.ChartHeight)
	c.S3.Region = getEnv("AWS_REGION", c.S3.Region)
	c.S3.AccessKeyID = getEnv("AWS_ACCESS_KEY_ID", c.S3.AccessKeyID)
	c.S3.SecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", c.S3.SecretAccessKey)
	c.S3.Endpoint = getEnv("S3_ENDPOINT", c.S3.Endpoint)
	c.Snapshot.BaseURL = getEnv("SNAPSHOT_BASE_URL", c.Snapshot.BaseURL)
	c.Snapshot.TimeoutSeconds = getEnvAsInt("SNAPSHOT_TIMEOUT_SECONDS", c.Snapshot.TimeoutSeconds)
}

// Validate checks if required configuration is present and consistent
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.DataSource == "" {
		return fmt.Errorf("DATA_SOURCE is required")
	}
	switch c.RowPolicy {
	case "", "strict", "skip":
	default:
		return fmt.Errorf("invalid row policy %q (must be strict or skip)", c.RowPolicy)
	}
	if c.FetchTimeoutSeconds <= 0 {
		return fmt.Errorf("fetch timeout must be positive, got %d", c.FetchTimeoutSeconds)
	}
	// Plot area must keep at least one pixel inside the default margins
	if c.ChartWidth <= 70 || c.ChartHeight <= 50 {
		return fmt.Errorf("chart size %dx%d too small", c.ChartWidth, c.ChartHeight)
	}
	if c.ReloadSchedule != "" {
		if _, err := cronParser.Parse(c.ReloadSchedule); err != nil {
			return fmt.Errorf("invalid reload schedule %q: %w", c.ReloadSchedule, err)
		}
	}
	return nil
}

// FetchTimeout returns the dataset load timeout
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
