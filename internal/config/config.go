// Package config loads process settings for the formschema tools from the
// environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

var (
	ErrParsingConfig = errors.New("config: failed to parse environment")
	ErrInvalidConfig = errors.New("config: invalid value")
)

// Config holds settings shared by the CLI and services. Command line flags
// take precedence over these values.
type Config struct {
	// LogLevel is a zap level name: debug, info, warn, error.
	LogLevel string `env:"FORMSCHEMA_LOG_LEVEL" envDefault:"info"`
	// LogFormat is "console" or "json".
	LogFormat string `env:"FORMSCHEMA_LOG_FORMAT" envDefault:"console"`
	// MaxDepth limits nesting of decoded data documents.
	MaxDepth int `env:"FORMSCHEMA_MAX_DEPTH" envDefault:"256"`
	// PatternDescriptions is a YAML file mapping patterns to descriptions.
	PatternDescriptions string `env:"FORMSCHEMA_PATTERN_DESCRIPTIONS"`
}

// Load reads the given .env files, or ./.env when none are named, and then
// parses the environment. Variables already set in the environment win over
// the files. A missing default .env is not an error; a missing named file is.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		if len(files) > 0 || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load env files: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express. LogFormat must already be
// lower case, which Load guarantees.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return fmt.Errorf("%w: FORMSCHEMA_LOG_LEVEL: %w", ErrInvalidConfig, err)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: FORMSCHEMA_LOG_FORMAT must be console or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}
