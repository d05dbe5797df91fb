// Package config handles loading chatindex configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds generation and serve defaults. Command-line flags override
// anything set here.
type Config struct {
	Output OutputConfig `toml:"output"`
	Server ServerConfig `toml:"server"`
}

// OutputConfig holds index generation defaults.
type OutputConfig struct {
	File string `toml:"file"` // default index page filename
	Lang string `toml:"lang"` // default interface language
}

// ServerConfig holds serve-mode configuration.
type ServerConfig struct {
	Port int `toml:"port"`
}

// DefaultPath returns the default config file location.
// Respects the CHATINDEX_CONFIG environment variable.
func DefaultPath() string {
	if p := os.Getenv("CHATINDEX_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".chatindex", "config.toml")
}

// Load reads the configuration from path, or from the default location
// when path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	cfg := &Config{
		Output: OutputConfig{
			File: "index.html",
			Lang: "fr",
		},
		Server: ServerConfig{
			Port: 8080,
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
