package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Address and Port locate the remote session to record from.
	Address string `json:"address" yaml:"address"`
	Port    int    `json:"port" yaml:"port"`

	// DialTimeoutMs bounds the wait for the session channel to come up.
	DialTimeoutMs int `json:"dialTimeoutMs" yaml:"dialTimeoutMs"`
}

// Default returns built-in defaults matching the reference server setup.
func Default() Config {
	return Config{
		Address:       "localhost",
		Port:          38801,
		DialTimeoutMs: 10000,
	}
}

// Load reads configuration from a JSON or YAML file (by extension). If
// path is empty, it returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}

// Target returns the host:port dial target.
func (c Config) Target() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
