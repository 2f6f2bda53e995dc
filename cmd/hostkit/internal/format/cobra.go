// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package format

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Options are the output settings carried by the root command's flags.
type Options struct {
	Mode  OutputMode
	Quiet bool
	Color bool
}

// OptionsFromFlags reads --output, --quiet and --no-color from flags. A flag
// that is not registered keeps its default: table output, summaries shown,
// and color only when the terminal supports it.
func OptionsFromFlags(flags *pflag.FlagSet) Options {
	opts := Options{Mode: ModeTable, Color: !color.NoColor}
	if mode, err := flags.GetString("output"); err == nil {
		opts.Mode = ParseMode(mode)
	}
	if quiet, err := flags.GetBool("quiet"); err == nil {
		opts.Quiet = quiet
	}
	if noColor, err := flags.GetBool("no-color"); err == nil && noColor {
		opts.Color = false
	}
	return opts
}

// FromCommand builds a Formatter that writes to cmd's output streams.
func FromCommand(cmd *cobra.Command) Formatter {
	opts := OptionsFromFlags(cmd.Flags())
	return New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.Mode, opts.Quiet, opts.Color)
}
