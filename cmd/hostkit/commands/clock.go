// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/clock"
)

func newNowCommand() *cobra.Command {
	var zones []string

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time",
		Long: `Print the current local time, today's date and UTC time. Each --zone
adds a row for that zone; both IANA names and Windows-style ids such as
"Eastern Standard Time" are accepted.`,
		GroupID: "values",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}
			c := svc.Clock

			rows := [][]string{
				{"Local", c.Now().Format(time.RFC3339Nano)},
				{"Today", c.Today().Format(time.DateOnly)},
				{"UTC", c.UTCNow().Format(time.RFC3339Nano)},
			}
			for _, zone := range zones {
				t, err := clock.InZone(c, zone)
				if err != nil {
					return err
				}
				rows = append(rows, []string{zone, t.Format(time.RFC3339Nano)})
			}
			return format.FromCommand(cmd).PrintTable([]string{"Clock", "Time"}, rows)
		},
	}

	cmd.Flags().StringArrayVarP(&zones, "zone", "z", nil, "Also print the time in this zone (repeatable)")

	return cmd
}

func newDaysInMonthCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "days-in-month <year> <month>",
		Short:   "Print the number of days in a month",
		Example: `  hostkit days-in-month 2024 2`,
		GroupID: "values",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("year %q: %w", args[0], err)
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("month %q: %w", args[1], err)
			}

			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}
			days, err := svc.Clock.DaysInMonth(year, time.Month(month))
			if err != nil {
				return err
			}

			f := format.FromCommand(cmd)
			if f.Mode() != format.ModeTable {
				return f.PrintData(map[string]int{"year": year, "month": month, "days": days})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), days)
			return err
		},
	}
}
