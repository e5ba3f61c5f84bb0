// Package log provides the structured logging facade used across the
// recording tools.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Internally it is backed by Go's
// standard library slog via a custom handler that routes records through a
// formatter/output pipeline, so callers keep one consistent output format
// while remaining compatible with the slog ecosystem.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.WithComponent("recorder")
//	l.Info("capture started", log.Str("address", addr))
//
// # Interop
//
// RedirectStdLog points the standard library's default logger at a Logger,
// which keeps output from third-party packages in the same format.
package log
