// Package config loads the optional user configuration file. Everything in
// it has a flag equivalent; flags always win.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user's defaults.
type Config struct {
	// Format is the default output format: human, json, tsv, or custom.
	Format string `yaml:"format"`
	// CustomFormat is the format string used when Format is custom.
	CustomFormat string `yaml:"custom_format"`
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogPretty switches stderr logging from JSON lines to the
	// human-readable console writer.
	LogPretty bool `yaml:"log_pretty"`
}

func defaults() *Config {
	return &Config{Format: "human"}
}

// DefaultPath returns the conventional config location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lswt", "config.yaml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return defaults(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	switch cfg.Format {
	case "", "human", "json", "tsv", "custom":
	default:
		return nil, fmt.Errorf("config file %s: unknown format %q", path, cfg.Format)
	}
	return cfg, nil
}
