// Package config loads the redfa configuration file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// ErrConfigValidation is returned when configuration validation fails
var ErrConfigValidation = errors.New("configuration validation failed")

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "redfa.yaml"

// Config represents the redfa configuration
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

// CompileConfig holds compilation limits
type CompileConfig struct {
	MaxDFAStates uint32 `yaml:"max_dfa_states"`
}

// SearchConfig holds text search settings
type SearchConfig struct {
	// MaxLiterals is the largest finite language used as a literal prefilter.
	// Zero or negative disables the prefilter. Zero in the file (or an absent
	// key) means the default.
	MaxLiterals int `yaml:"max_literals"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxBodyBytes   int64    `yaml:"max_body_bytes"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Compile: CompileConfig{MaxDFAStates: 10_000},
		Search:  SearchConfig{MaxLiterals: 64},
		Server: ServerConfig{
			Addr:           "127.0.0.1:5001",
			AllowedOrigins: []string{"*"},
			MaxBodyBytes:   64 << 10,
		},
		Log: LogConfig{Level: "info", Format: "text"},
	}
}

// Load loads configuration from the specified file.
//
// A .env file in the working directory is loaded into the environment first.
// A missing file yields the defaults. Unknown keys are rejected. ${VAR}
// and $VAR references in string values are expanded from the environment.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		config := Default()
		expandConfigEnvVars(config)
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&config)
	expandConfigEnvVars(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyDefaults(config *Config) {
	defaults := Default()

	if config.Compile.MaxDFAStates == 0 {
		config.Compile.MaxDFAStates = defaults.Compile.MaxDFAStates
	}
	if config.Search.MaxLiterals == 0 {
		config.Search.MaxLiterals = defaults.Search.MaxLiterals
	}
	if config.Server.Addr == "" {
		config.Server.Addr = defaults.Server.Addr
	}
	if config.Server.AllowedOrigins == nil {
		config.Server.AllowedOrigins = defaults.Server.AllowedOrigins
	}
	if config.Server.MaxBodyBytes == 0 {
		config.Server.MaxBodyBytes = defaults.Server.MaxBodyBytes
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}
	if config.Log.Format == "" {
		config.Log.Format = defaults.Log.Format
	}
}

func validate(config *Config) error {
	if _, err := config.Log.SlogLevel(); err != nil {
		return fmt.Errorf("%w: %w", ErrConfigValidation, err)
	}

	switch config.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: invalid log format '%s': must be one of text, json", ErrConfigValidation, config.Log.Format)
	}

	if config.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: server.max_body_bytes must be >= 0", ErrConfigValidation)
	}

	return nil
}

// SlogLevel parses Level ("debug", "info", "warn" or "error").
func (c LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return 0, fmt.Errorf("invalid log level '%s': %w", c.Level, err)
	}
	return level, nil
}

// loadEnvFiles loads .env files if they exist
func loadEnvFiles() error {
	if fileExists(".env") {
		if err := godotenv.Load(".env"); err != nil {
			return fmt.Errorf("failed to load .env file: %w", err)
		}
	}
	return nil
}

// expandEnvVars expands environment variables in the format ${VAR} or $VAR
func expandEnvVars(s string) string {
	return os.Expand(s, os.Getenv)
}

func expandConfigEnvVars(config *Config) {
	config.Server.Addr = expandEnvVars(config.Server.Addr)
	for i, origin := range config.Server.AllowedOrigins {
		config.Server.AllowedOrigins[i] = expandEnvVars(origin)
	}
	config.Log.Level = expandEnvVars(config.Log.Level)
	config.Log.Format = expandEnvVars(config.Log.Format)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
