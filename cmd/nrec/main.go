package main

import (
	"os"

	"github.com/spf13/cobra"

	readercmd "github.com/IRL2/nanover-utils/internal/cmd/reader"
	recordercmd "github.com/IRL2/nanover-utils/internal/cmd/recorder"
	logpkg "github.com/IRL2/nanover-utils/pkg/log"
)

func main() {
	// Respect NREC_LOG_LEVEL / NREC_LOG_FORMAT for CLI output
	level := os.Getenv("NREC_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	var formatter logpkg.Formatter = &logpkg.TextFormatter{}
	if os.Getenv("NREC_LOG_FORMAT") == "json" {
		formatter = &logpkg.JSONFormatter{}
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(formatter),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by gRPC internals) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "nrec",
		Short: "NanoVer recording CLI",
		Long:  "nrec records live NanoVer sessions to disk and reads the recordings back.",
	}

	rootCmd.AddCommand(readercmd.NewCommand())
	rootCmd.AddCommand(recordercmd.NewCommand(logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
