package config

import (
	"os"
	"strconv"
)

// FromEnv overlays NREC_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("NREC_ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := os.Getenv("NREC_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("NREC_DIAL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.DialTimeoutMs = n
		}
	}
}
