package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the Postgres connection string
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	// SnapshotDir is where cycle snapshots are written (default "history")
	SnapshotDir string `yaml:"snapshotDir,omitempty"`

	// DistributionDefaults maps garden code -> crop name -> default
	// target percentage, used only during initial allocation before any
	// distribution profile exists
	DistributionDefaults map[string]map[string]float64 `yaml:"distributionDefaults,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from crop_rotation_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.SnapshotDir == "" {
		cfg.SnapshotDir = "history"
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the
// distribution defaults are sane percentages
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for gardenCode, crops := range cfg.DistributionDefaults {
		for cropName, pct := range crops {
			if pct < 0 || pct > 100 {
				return fmt.Errorf("invalid default percentage %.1f for crop %q in garden %q", pct, cropName, gardenCode)
			}
		}
	}

	return nil
}

// findConfigFile searches for crop_rotation_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "crop_rotation_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homePath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homePath); err == nil {
		return homePath, nil
	}

	return "", fmt.Errorf("config file %s not found in current or home directory", configFileName)
}
