package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/taskvault/taskvault/cmd/taskvault/opts"
	"github.com/taskvault/taskvault/pkg/audit"
	"github.com/taskvault/taskvault/pkg/config"
	"github.com/taskvault/taskvault/pkg/fsio"
	"github.com/taskvault/taskvault/pkg/render"
	"github.com/taskvault/taskvault/pkg/store"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile string
	actor      string
	debug      bool
)

// newRootOpts creates a new rootOpts with initialized dependencies
func newRootOpts(ctx context.Context) (*opts.RootOpts, error) {
	// Create user logger
	userLogger := opts.NewUserLogger(ctx)

	// Load config
	cfg, err := config.Load(ctx, configFile)
	if err != nil {
		return nil, errors.Errorf("loading config: %w", err)
	}

	// Create store with its audit log
	files := fsio.NewOS()
	auditLog := audit.New(cfg.AuditPath, files)
	st := store.New(cfg.DataPath, auditLog, files)
	if err := st.Open(ctx); err != nil {
		return nil, errors.Errorf("opening store: %w", err)
	}

	resolvedActor := cfg.Actor
	if actor != "" {
		resolvedActor = actor
	}

	return &opts.RootOpts{
		Config:     cfg,
		Store:      st,
		Renderer:   render.New(os.Stdout),
		UserLogger: userLogger,
		Actor:      resolvedActor,
	}, nil
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".taskvault.yaml", "config file path")
	cmd.PersistentFlags().StringVarP(&actor, "actor", "a", "", "identity recorded in audit entries")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	}
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
