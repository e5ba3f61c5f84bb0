// Package config provides loading and environment overlay for the
// recording tools' configuration. It exposes a Default() baseline, file
// loading in JSON or YAML, and an NREC_* environment overlay.
//
// Example:
//
//	cfg := config.Default()
//	if fileCfg, err := config.Load("~/.config/nrec.yaml"); err == nil {
//	    cfg = fileCfg
//	}
//	config.FromEnv(&cfg)
package config
