package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/silverbirch/bunking/pkg/core/solver"
)

// SolverConfig carries the assignment engine defaults.
type SolverConfig struct {
	DefaultTier string `yaml:"defaultTier,omitempty" validate:"omitempty,oneof=quick standard thorough deep"`
}

// ServerConfig carries the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr,omitempty"`
}

// Config represents the application configuration
type Config struct {
	// DatabaseURL is the postgres connection string. The BUNKING_DATABASE_URL
	// environment variable overrides it.
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	Solver SolverConfig `yaml:"solver,omitempty"`
	Server ServerConfig `yaml:"server,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// DefaultTier returns the configured solver tier, falling back to standard.
func (c *Config) DefaultTier() solver.Tier {
	if c.Solver.DefaultTier == "" {
		return solver.TierStandard
	}
	return solver.Tier(c.Solver.DefaultTier)
}

// ServerAddr returns the configured listen address, falling back to :8080.
func (c *Config) ServerAddr() string {
	if c.Server.Addr == "" {
		return ":8080"
	}
	return c.Server.Addr
}

// LoadWithEnv loads and validates the configuration for an environment. It
// looks for bunking_config.<env>.yaml in the current directory first, then
// in the user's home directory.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
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

	if url := os.Getenv("BUNKING_DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Solver.DefaultTier != "" {
		if _, err := solver.ParseTier(cfg.Solver.DefaultTier); err != nil {
			return fmt.Errorf("invalid solver.defaultTier: %w", err)
		}
	}

	return nil
}

// findConfigFile searches for the environment's config file in the current
// directory and the home directory.
func findConfigFile(env string) (string, error) {
	configFileName := fmt.Sprintf("bunking_config.%s.yaml", env)

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", configFileName)
}
