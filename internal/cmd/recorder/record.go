package recorder

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/IRL2/nanover-utils/internal/capture"
	"github.com/IRL2/nanover-utils/internal/cmd/recorder/transports"
	"github.com/IRL2/nanover-utils/internal/config"
	"github.com/IRL2/nanover-utils/pkg/id"
	"github.com/IRL2/nanover-utils/pkg/log"
)

var sessions = id.NewGenerator()

// NewCommand constructs the `record` command.
func NewCommand(logger log.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <outfile_stem>",
		Short: "Record a live session into <stem>.state and <stem>.traj",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(cfgPath)
			if err != nil {
				return err
			}
			config.FromEnv(&cfg)
			if cmd.Flags().Changed("address") {
				cfg.Address, _ = cmd.Flags().GetString("address")
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
			}
			return run(cmd.Context(), logger, cfg, args[0])
		},
	}
	cmd.Flags().String("address", config.Default().Address, "Server address")
	cmd.Flags().Int("port", config.Default().Port, "Server port")
	cmd.Flags().String("config", "", "Config file (JSON or YAML)")
	return cmd
}

func run(ctx context.Context, logger log.Logger, cfg config.Config, stem string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger = logger.WithComponent("recorder").
		With(log.Str("session", sessions.Next().String()))

	dialCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.DialTimeoutMs)*time.Millisecond)
	defer cancel()
	session, err := transports.Dial(dialCtx, cfg.Target())
	if err != nil {
		return fmt.Errorf("connect to %s: %w", cfg.Target(), err)
	}
	defer func() { _ = session.Close() }()

	statePath := stem + ".state"
	trajPath := stem + ".traj"
	stateFile, err := os.Create(statePath)
	if err != nil {
		return err
	}
	trajFile, err := os.Create(trajPath)
	if err != nil {
		_ = stateFile.Close()
		return err
	}

	logger.Info("recording",
		log.Str("address", cfg.Target()),
		log.Str("state", statePath),
		log.Str("trajectory", trajPath))

	err = capture.Record(ctx, session, stateFile, trajFile, capture.Options{Logger: logger})

	// close only after the last in-flight frame write has completed
	if cerr := stateFile.Close(); err == nil {
		err = cerr
	}
	if cerr := trajFile.Close(); err == nil {
		err = cerr
	}
	return err
}
