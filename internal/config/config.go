// Package config loads the optional YAML configuration file. Everything
// has a sensible default, so a missing file is not an error.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"weekplan/internal/store"
)

// Config is the on-disk configuration.
type Config struct {
	// DBPath overrides the default database location.
	DBPath string `yaml:"db_path"`
	// Theme selects the color palette, "dark" or "light".
	Theme string `yaml:"theme"`
	// LogFile, when set, enables debug logging to the given file.
	LogFile string `yaml:"log_file"`
}

// DefaultPath returns ~/.config/weekplan/config.yaml
func DefaultPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "weekplan", "config.yaml"), nil
}

func defaults() (Config, error) {
	dbPath, err := store.DefaultDBPath()
	if err != nil {
		return Config{}, err
	}
	return Config{DBPath: dbPath, Theme: "dark"}, nil
}

// Load reads the config file at path, filling unset fields with defaults.
// A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg, err := defaults()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if file.DBPath != "" {
		cfg.DBPath = file.DBPath
	}
	if file.Theme != "" {
		cfg.Theme = file.Theme
	}
	cfg.LogFile = file.LogFile

	if cfg.Theme != "dark" && cfg.Theme != "light" {
		return Config{}, fmt.Errorf("unknown theme %q", cfg.Theme)
	}
	return cfg, nil
}

// Save writes the config back out, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
