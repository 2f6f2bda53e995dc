// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/guid"
)

func newGUIDCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "guid",
		Short:   "Create and parse GUIDs",
		GroupID: "values",
	}

	cmd.AddCommand(newGUIDNewCommand())
	cmd.AddCommand(newGUIDParseCommand())

	return cmd
}

func newGUIDNewCommand() *cobra.Command {
	var (
		count  int
		layout string
		empty  bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate random GUIDs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("count must be at least 1, got %d", count)
			}
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}

			ids := make([]string, 0, count)
			for range count {
				id := svc.GUIDs.New()
				if empty {
					id = svc.GUIDs.Empty()
				}
				s, err := svc.GUIDs.Format(id, guid.Format(layout))
				if err != nil {
					return err
				}
				ids = append(ids, s)
			}

			f := format.FromCommand(cmd)
			if f.Mode() != format.ModeTable {
				return f.PrintData(ids)
			}
			for _, s := range ids {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), s); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of GUIDs to generate")
	cmd.Flags().StringVarP(&layout, "format", "f", string(guid.FormatD), "Output format: N, D, B, P or X")
	cmd.Flags().BoolVar(&empty, "empty", false, "Print the all-zero GUID instead")

	return cmd
}

func newGUIDParseCommand() *cobra.Command {
	var exact string

	cmd := &cobra.Command{
		Use:   "parse <guid>",
		Short: "Parse a GUID and print it in every format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}

			var id uuid.UUID
			if exact != "" {
				id, err = svc.GUIDs.ParseExact(args[0], guid.Format(exact))
			} else {
				id, err = svc.GUIDs.Parse(args[0])
			}
			if err != nil {
				return err
			}

			headers := []string{"Format", "Value"}
			rows := make([][]string, 0, len(guid.Formats))
			for _, layout := range guid.Formats {
				s, err := svc.GUIDs.Format(id, layout)
				if err != nil {
					return err
				}
				rows = append(rows, []string{string(layout), s})
			}
			return format.FromCommand(cmd).PrintTable(headers, rows)
		},
	}

	cmd.Flags().StringVar(&exact, "exact", "", "Accept only this input format: N, D, B, P or X")

	return cmd
}
