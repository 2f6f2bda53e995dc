// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/dbenv"
	"github.com/vulntor/hostkit/pkg/display"
)

func newEnvCommand() *cobra.Command {
	var names []string

	cmd := &cobra.Command{
		Use:   "env",
		Short: "Describe the running application and its databases",
		Long: `Describe the running application: host settings, Go runtime, operating
system and one entry per connection string. Without --connection every
configured connection string is described.`,
		GroupID: "host",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}
			if len(names) == 0 {
				mgr, err := configFrom(cmd)
				if err != nil {
					return err
				}
				names = mgr.ConnectionStringNames()
			}

			current := svc.Environment.Current(names)

			f := format.FromCommand(cmd)
			if f.Mode() != format.ModeTable {
				return f.PrintData(current)
			}
			if err := f.PrintTitle("Environment"); err != nil {
				return err
			}
			if err := f.PrintFields(current); err != nil {
				return err
			}
			if len(current.Databases) == 0 {
				return f.PrintSummary("No connection strings configured")
			}
			if err := f.PrintTitle("\nDatabases"); err != nil {
				return err
			}
			return printDatabases(f, current.Databases)
		},
	}

	cmd.Flags().StringSliceVarP(&names, "connection", "d", nil, "Connection string names to describe (repeatable)")

	return cmd
}

func newDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db <name> [connection-string]",
		Short: "Extract the server and database from a connection string",
		Long: `Extract the server and database from a connection string. With one
argument the string is looked up in configuration by name; with two the
second argument is parsed directly.`,
		GroupID: "host",
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := servicesFrom(cmd)
			if err != nil {
				return err
			}

			name := args[0]
			var conn string
			if len(args) == 2 {
				conn = args[1]
			} else {
				mgr, err := configFrom(cmd)
				if err != nil {
					return err
				}
				conn = mgr.ConnectionString(name)
				if conn == "" {
					return fmt.Errorf("connection string %q is not configured", name)
				}
			}

			db := svc.Databases.CreateFromConnectionString(name, conn)
			return format.FromCommand(cmd).PrintFields(db)
		},
	}

	return cmd
}

func printDatabases(f format.Formatter, dbs []dbenv.DatabaseEnvironment) error {
	headers := make([]string, 0, 3)
	for _, field := range []string{"ConnectionStringName", "ServerName", "DatabaseName"} {
		label, err := display.Name(dbenv.DatabaseEnvironment{}, field)
		if err != nil {
			return err
		}
		headers = append(headers, label)
	}

	rows := make([][]string, 0, len(dbs))
	for _, db := range dbs {
		rows = append(rows, []string{db.ConnectionStringName, db.ServerName, db.DatabaseName})
	}
	return f.PrintTable(headers, rows)
}
