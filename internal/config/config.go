// Package config loads the optional generator configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. CLI flags override these values.
type Config struct {
	// Out is the directory typings packages are written under.
	Out string `yaml:"out"`

	// CacheDir holds fetched discovery documents. Empty disables caching.
	CacheDir string `yaml:"cacheDir"`

	// APIs restricts generation to the named APIs. Empty means every
	// preferred API in the directory.
	APIs []string `yaml:"apis"`

	// MaxLineLength is the comment word-wrap budget.
	MaxLineLength int `yaml:"maxLineLength"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Out:           "types",
		MaxLineLength: 200,
	}
}

// Load reads the YAML config at path. A missing file yields the defaults;
// a present but unreadable or invalid file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Out == "" {
		cfg.Out = Default().Out
	}
	if cfg.MaxLineLength <= 0 {
		cfg.MaxLineLength = Default().MaxLineLength
	}
	return cfg, nil
}
