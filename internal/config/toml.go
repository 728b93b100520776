// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig maps database settings.
type StorageConfig struct {
	Path *string `toml:"path"`
}

// LogConfig maps log sink settings.
type LogConfig struct {
	File  *string `toml:"file"`
	Level *string `toml:"level"`
}

// Overrides returns the file values as an override layer.
func (c FileConfig) Overrides() Overrides {
	return Overrides{
		DBPath:   c.Storage.Path,
		LogFile:  c.Log.File,
		LogLevel: c.Log.Level,
	}
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
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
