// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/appctx"
	"github.com/vulntor/hostkit/pkg/config"
	"github.com/vulntor/hostkit/pkg/logging"
	"github.com/vulntor/hostkit/pkg/paths"
	"github.com/vulntor/hostkit/pkg/services"
	"github.com/vulntor/hostkit/pkg/version"
)

const cliExecutable = "hostkit"

// verbosityLevels maps repeated -v flags to log levels.
var verbosityLevels = []string{"", "info", "debug", "trace"}

// NewCommand constructs the top-level hostkit CLI command, wiring global
// flags, configuration loading and the shared services bundle.
func NewCommand() *cobra.Command {
	var (
		configFile     string
		outputMode     string
		verbosityCount int
		logCloser      io.Closer
	)

	cmd := &cobra.Command{
		Use:     cliExecutable,
		Short:   "Hostkit exercises the hosting abstractions from the command line",
		Version: version.Info(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := format.ValidateMode(outputMode); err != nil {
				return err
			}

			// An explicit --config must exist; the per-user default may not.
			explicit := configFile != ""
			path := configFile
			if !explicit {
				path = paths.DefaultConfigFile()
			}

			mgr := config.NewManager()
			if err := mgr.LoadWithSources(config.DefaultSources(path, explicit, cmd.Flags())); err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			cfg := mgr.Get()

			if verbosityCount > 0 {
				cfg.Log.Level = verbosityLevels[min(verbosityCount, len(verbosityLevels)-1)]
			}
			closer, err := logging.Configure(logging.Options{
				Level:   cfg.Log.Level,
				Format:  cfg.Log.Format,
				File:    cfg.Log.File,
				NoColor: cfg.Log.NoColor,
			})
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}
			logCloser = closer

			svc := services.New(cfg, mgr, log.Logger)

			ctx := appctx.WithConfig(cmd.Context(), mgr)
			ctx = appctx.WithServices(ctx, svc)

			cmd.SetContext(ctx)
			if root := cmd.Root(); root != nil && root != cmd {
				root.SetContext(ctx)
			}

			log.Debug().
				Str("config", path).
				Str("environment", cfg.Host.Environment).
				Msg("hostkit ready")
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	cmd.SilenceUsage = true
	cmd.SetVersionTemplate("{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&configFile, "config", "c", "", "Configuration file path")
	flags.StringVarP(&outputMode, "output", "o", string(format.ModeTable), "Output format: table, json or yaml")
	flags.BoolP("quiet", "q", false, "Suppress summary messages")
	flags.Bool("no-color", false, "Disable colored output")
	flags.CountVarP(&verbosityCount, "verbosity", "v", "Increase logging verbosity (repeatable)")

	config.BindFlags(flags)

	cmd.AddGroup(&cobra.Group{ID: "host", Title: "Host Commands"})
	cmd.AddGroup(&cobra.Group{ID: "values", Title: "Value Commands"})

	cmd.AddCommand(newEnvCommand())
	cmd.AddCommand(newDBCommand())
	cmd.AddCommand(newDirsCommand())
	cmd.AddCommand(newSlugCommand())
	cmd.AddCommand(newGUIDCommand())
	cmd.AddCommand(newNowCommand())
	cmd.AddCommand(newDaysInMonthCommand())
	cmd.AddCommand(newDurationCommand())
	cmd.AddCommand(newVersionCommand(cliExecutable))

	return cmd
}

// servicesFrom returns the bundle installed by the root pre-run hook.
func servicesFrom(cmd *cobra.Command) (*services.Services, error) {
	svc, ok := appctx.Services(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("services not initialized")
	}
	return svc, nil
}

// configFrom returns the manager installed by the root pre-run hook.
func configFrom(cmd *cobra.Command) (*config.Manager, error) {
	mgr, ok := appctx.Config(cmd.Context())
	if !ok {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return mgr, nil
}
