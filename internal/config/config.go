// Package config loads the tool configuration and gathers credentials.
// Everything here is handed to commands as explicit values; nothing keeps
// package-level state.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/Timbertighe/Junos-Scripts/internal/jtac"
	"github.com/Timbertighe/Junos-Scripts/internal/junos"
)

// Config is the on-disk configuration. Every field is optional; commands
// prompt for credentials they cannot find here.
type Config struct {
	Device Device `toml:"device"`
	FTP    FTP    `toml:"ftp"`
	JTAC   JTAC   `toml:"jtac"`
}

// Device holds default Junos login details.
type Device struct {
	Username string `toml:"username"`
	Password string `toml:"password"`
	Port     uint16 `toml:"port"`
}

// FTP holds the default support-bundle upload target.
type FTP struct {
	Host     string `toml:"host"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

// JTAC points at the suggested-releases article.
type JTAC struct {
	URL string `toml:"url"`
}

// DefaultPath is the config file location used when --config is not given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".junos-scripts", "config.toml")
}

// Load reads a TOML config file. A missing file is not an error: commands
// fall back to prompting.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.applyDefaults()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Device.Port == 0 {
		c.Device.Port = junos.DefaultPort
	}
	if c.JTAC.URL == "" {
		c.JTAC.URL = jtac.DefaultURL
	}
}
