// Package config loads the optional cubo.yaml used by the cubo command.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/cubo/logging"
)

// DefaultFile is the config file looked up when no path is given.
const DefaultFile = "cubo.yaml"

// Config represents the optional cubo.yaml configuration.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Resolver ResolverConfig `yaml:"resolver"`
	S3       S3Config       `yaml:"s3"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// ResolverConfig contains resolution settings.
type ResolverConfig struct {
	// Root is the base directory for relative local paths.
	Root string `yaml:"root,omitempty"`
	// Timeout bounds each HTTP fetch; zero means no timeout.
	Timeout time.Duration `yaml:"timeout,omitempty"`
	// Strict reports resolution failures instead of using empty data.
	Strict    bool   `yaml:"strict,omitempty"`
	UserAgent string `yaml:"user_agent,omitempty"`
}

// S3Config enables the s3 scheme when Region is set.
type S3Config struct {
	Region       string `yaml:"region,omitempty"`
	Endpoint     string `yaml:"endpoint,omitempty"`
	UsePathStyle bool   `yaml:"use_path_style,omitempty"`
	Anonymous    bool   `yaml:"anonymous,omitempty"`
	MaxSize      int64  `yaml:"max_size,omitempty"`
}

// Load reads the config file at path. A missing file yields the defaults
// unless required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", path, err)
	}

	return cfg, nil
}

// Default returns the configuration used without a config file.
func Default() *Config {
	return &Config{Log: LogConfig{Level: "warn", Format: "text"}}
}

// Validate checks enumerated fields.
func (c *Config) Validate() error {
	if _, err := logging.ParseLogLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "", "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	if c.Resolver.Timeout < 0 {
		return fmt.Errorf("negative resolver timeout %s", c.Resolver.Timeout)
	}
	return nil
}

// Logger builds the configured logger writing to stderr.
func (c *Config) Logger() *logging.CuboLogger {
	level, _ := logging.ParseLogLevel(c.Log.Level)
	return logging.NewSlogLogger(level, c.Log.Format, false).WithComponent("cli")
}
