// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
)

func newSlugCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "slug <text>...",
		Short:   "Turn text into a URL slug",
		Example: `  hostkit slug "Hello, World!"`,
		GroupID: "values",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}

			input := strings.Join(args, " ")
			s, err := svc.Slugs.GenerateSlug(input)
			if err != nil {
				return err
			}

			f := format.FromCommand(cmd)
			if f.Mode() != format.ModeTable {
				return f.PrintData(map[string]string{"input": input, "slug": s})
			}
			_, err = cmd.OutOrStdout().Write([]byte(s + "\n"))
			return err
		},
	}
}
