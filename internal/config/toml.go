// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Lists ListsConfig `toml:"lists"`
	App   AppConfig   `toml:"app"`
}

// ListsConfig maps item list locations.
type ListsConfig struct {
	Dir          *string `toml:"dir"`
	Applications *string `toml:"applications"`
	Targets      *string `toml:"targets"`
	Objects      *string `toml:"objects"`
	Actions      *string `toml:"actions"`
}

// AppConfig maps application settings.
type AppConfig struct {
	SaveDir  *string `toml:"save-dir"`
	History  *bool   `toml:"history"`
	LogLevel *string `toml:"log-level"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
