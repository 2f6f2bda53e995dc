// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/duration"
)

// durationView is the printable form of a duration.
type durationView struct {
	Span    string  `display:"Span" json:"span" yaml:"span"`
	Go      string  `display:"Go" json:"go" yaml:"go"`
	Ticks   int64   `display:"Ticks" json:"ticks" yaml:"ticks"`
	Seconds float64 `display:"Total Seconds" json:"seconds" yaml:"seconds"`
}

func newDurationCommand() *cobra.Command {
	var unit string

	cmd := &cobra.Command{
		Use:   "duration <value>",
		Short: "Parse or build a duration",
		Long: `Parse a duration written as a span ([-][d.]hh:mm[:ss[.fffffff]]) or in Go
syntax (1h30m). With --unit the value is a number of that unit instead.`,
		Example: `  hostkit duration 1.02:03:04.5
  hostkit duration 90m
  hostkit duration --unit days 1.5`,
		GroupID: "values",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}

			var d time.Duration
			if unit == "" {
				d, err = svc.Durations.Parse(args[0])
			} else {
				d, err = fromUnit(svc.Durations, unit, args[0])
			}
			if err != nil {
				return err
			}

			return format.FromCommand(cmd).PrintFields(durationView{
				Span:    duration.Format(d),
				Go:      d.String(),
				Ticks:   int64(d / duration.Tick),
				Seconds: d.Seconds(),
			})
		},
	}

	cmd.Flags().StringVarP(&unit, "unit", "u", "", "Treat the value as a number of: ms, seconds, minutes, hours, days or ticks")

	return cmd
}

func fromUnit(p duration.Provider, unit, value string) (time.Duration, error) {
	if u := strings.ToLower(unit); u == "ticks" || u == "tick" {
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("ticks %q: %w", value, err)
		}
		return p.FromTicks(n), nil
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s %q: %w", unit, value, err)
	}
	switch strings.ToLower(unit) {
	case "ms", "millisecond", "milliseconds":
		return p.FromMilliseconds(v), nil
	case "s", "second", "seconds":
		return p.FromSeconds(v), nil
	case "m", "minute", "minutes":
		return p.FromMinutes(v), nil
	case "h", "hour", "hours":
		return p.FromHours(v), nil
	case "d", "day", "days":
		return p.FromDays(v), nil
	default:
		return 0, fmt.Errorf("unknown unit %q", unit)
	}
}
