// Package config handles loading and saving client configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/tidwall/sjson"
)

const (
	appName        = "vela"
	configFileName = "vela.json"

	// DefaultServerURL is the chat backend used when none is configured.
	DefaultServerURL = "http://localhost:8000"
)

// Config is the client configuration.
type Config struct {
	// Server is the chat backend base URL (http or https). The REST
	// gateway appends /api and the connection manager derives the
	// ws/wss endpoint from it.
	Server string `json:"server,omitempty"`

	// Identity is the identity service base URL. Empty means the chat
	// backend host also issues credentials.
	Identity string `json:"identity,omitempty"`

	Options *Options `json:"options,omitempty"`
}

// Options holds optional behavior tweaks.
type Options struct {
	Debug   bool   `json:"debug,omitempty"`
	DataDir string `json:"data_dir,omitempty"`
}

// NewConfig creates an empty configuration.
func NewConfig() *Config {
	return &Config{Options: &Options{}}
}

// IdentityURL returns the identity service base, falling back to the server.
func (c *Config) IdentityURL() string {
	if c.Identity != "" {
		return c.Identity
	}
	return c.Server
}

// DataDir returns the data directory path from configuration.
func (c *Config) DataDir() string {
	if c.Options != nil && c.Options.DataDir != "" {
		return c.Options.DataDir
	}
	return filepath.Join(xdg.DataHome, appName)
}

// GlobalConfigPath returns the path to the global configuration file.
func GlobalConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// SetField updates a single field in the config file using JSON path
// notation. Uses sjson for surgical updates - only the specified field
// is modified, everything else in the file is left as-is.
func SetField(key string, value any) error {
	configPath := GlobalConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			data = []byte("{}")
		} else {
			return fmt.Errorf("reading config file: %w", err)
		}
	}

	newData, err := sjson.Set(string(data), key, value)
	if err != nil {
		return fmt.Errorf("setting config field %q: %w", key, err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(newData), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
