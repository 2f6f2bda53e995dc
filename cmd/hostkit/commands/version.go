// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/envinfo"
	v "github.com/vulntor/hostkit/pkg/version"
)

// releaseCheck is the result of version --check.
type releaseCheck struct {
	Current string `json:"current" yaml:"current"`
	Release string `json:"release" yaml:"release"`
	Newer   bool   `json:"newer" yaml:"newer"`
}

func newVersionCommand(cliExecutable string) *cobra.Command {
	var (
		short bool
		check string
	)

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Example: `  hostkit version
  hostkit version --check 1.4.0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if check != "" {
				return runReleaseCheck(cmd, check)
			}

			info := v.Get()
			out := cmd.OutOrStdout()

			f := format.FromCommand(cmd)
			if f.Mode() != format.ModeTable {
				if short {
					return f.PrintData(map[string]string{"version": info.Version})
				}
				return f.PrintData(info)
			}

			if _, err := fmt.Fprintf(out, "%s version: %s\n", cliExecutable, info.Version); err != nil {
				return err
			}
			if short {
				return nil
			}
			if info.Semantic != "" {
				if _, err := fmt.Fprintf(out, "Semantic Version: %s\n", info.Semantic); err != nil {
					return err
				}
			}
			rt := envinfo.CurrentRuntime()
			_, err := fmt.Fprintf(out, "Commit: %s\nBuild Date: %s\nGo Version: %s\nPlatform: %s/%s\n",
				info.Commit, info.BuildDate, rt.Framework, runtime.GOOS, runtime.GOARCH)
			return err
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print only the version number")
	cmd.Flags().StringVar(&check, "check", "", "Report whether this release version is newer than the running one")

	return cmd
}

func runReleaseCheck(cmd *cobra.Command, release string) error {
	newer, err := v.IsNewer(release)
	if err != nil {
		return err
	}

	f := format.FromCommand(cmd)
	if f.Mode() != format.ModeTable {
		return f.PrintData(releaseCheck{Current: v.Version, Release: release, Newer: newer})
	}
	msg := fmt.Sprintf("%s is up to date (latest known: %s)", v.Version, release)
	if newer {
		msg = fmt.Sprintf("%s is newer than %s", release, v.Version)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), msg)
	return err
}
