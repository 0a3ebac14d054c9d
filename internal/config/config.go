package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Data    DataConfig    `yaml:"data" envconfig:"DATA"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig contains the default directories used by the secondary CLIs.
// The transform command itself receives its four locations as positional
// arguments and only consults config for logging.
type DataConfig struct {
	RawDir       string `yaml:"raw_dir" envconfig:"RAW_DIR"`
	ReportsDir   string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	WarehouseDir string `yaml:"warehouse_dir" envconfig:"WAREHOUSE_DIR"`
}

// defaultConfig is the base layer; file values overwrite it and environment
// variables overwrite both.
func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: "logs/orderetl.log",
		},
		Data: DataConfig{
			RawDir:       "data/raw",
			ReportsDir:   "data/reports",
			WarehouseDir: "data/warehouse",
		},
	}
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables take precedence over file values.
func Load() (*Config, error) {
	cfg := defaultConfig()

	// Overlay the config file if one exists
	configFile := getConfigFilePath()
	if _, err := os.Stat(configFile); err == nil {
		if err := loadFromFile(configFile, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Environment variables overwrite file values
	if err := envconfig.Process("ORDERETL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile overlays configuration from a YAML file onto cfg. Keys absent
// from the file leave the existing values untouched.
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// getConfigFilePath returns the config file location, honoring the
// ORDERETL_CONFIG_FILE override.
func getConfigFilePath() string {
	if path := os.Getenv("ORDERETL_CONFIG_FILE"); path != "" {
		return path
	}
	return "config.yaml"
}

// validate checks configuration values
func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output: %s", c.Logging.Output)
	}

	if c.Logging.Output != "console" && c.Logging.FilePath == "" {
		return fmt.Errorf("logging file_path is required for output %q", c.Logging.Output)
	}

	return nil
}
