// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package dbenv extracts the server and database names from connection
// strings so they can be shown on diagnostics pages.
package dbenv

import (
	"net/url"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

// DatabaseEnvironment describes one configured database connection.
type DatabaseEnvironment struct {
	ConnectionStringName string `display:"Connection Name" json:"connection_string_name" yaml:"connection_string_name"`
	DatabaseName         string `display:"Database Name" json:"database_name" yaml:"database_name"`
	ServerName           string `display:"Server" json:"server_name" yaml:"server_name"`
}

// Factory builds a DatabaseEnvironment from a named connection string.
type Factory interface {
	CreateFromConnectionString(keyName, connectionString string) DatabaseEnvironment
}

// ConnStringFactory is the default Factory.
type ConnStringFactory struct {
	logger zerolog.Logger
}

// NewFactory returns the default Factory.
func NewFactory(logger zerolog.Logger) *ConnStringFactory {
	return &ConnStringFactory{logger: logger.With().Str("component", "dbenv").Logger()}
}

// CreateFromConnectionString reads the server and database names from a
// "key=value;key=value" connection string.
//
// Segments are split on ";" and then on "="; a segment without exactly one
// "=" is ignored. Keys match case-insensitively: "server" and "data source"
// set the server name, "database" and "initial catalog" set the database
// name. The last matching segment wins. Keys and values are not trimmed.
//
// PostgreSQL URLs (postgres:// or postgresql://) are read with pgconn; a URL
// it rejects is treated as key/value text. Only names written in the URL
// itself are reported: values pgconn would fill in from PGHOST, PGDATABASE,
// service files or built-in defaults are left empty. A multi-host URL reports
// its hosts joined with ",".
func (f *ConnStringFactory) CreateFromConnectionString(keyName, connectionString string) DatabaseEnvironment {
	env := DatabaseEnvironment{ConnectionStringName: keyName}

	if isPostgresURL(connectionString) {
		cfg, err := pgconn.ParseConfig(connectionString)
		if err == nil {
			err = fillFromURL(&env, connectionString, cfg)
		}
		if err == nil {
			return env
		}
		f.logger.Debug().Err(err).Str("name", keyName).Msg("PostgreSQL URL rejected, reading as key/value pairs")
	}

	for _, segment := range strings.Split(connectionString, ";") {
		parts := strings.Split(segment, "=")
		if len(parts) != 2 {
			continue
		}
		switch strings.ToLower(parts[0]) {
		case "server", "data source":
			env.ServerName = parts[1]
		case "database", "initial catalog":
			env.DatabaseName = parts[1]
		}
	}
	return env
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// fillFromURL copies the host and database from cfg, but only when the URL
// spells them out.
func fillFromURL(env *DatabaseEnvironment, connectionString string, cfg *pgconn.Config) error {
	u, err := url.Parse(connectionString)
	if err != nil {
		return err
	}
	query := u.Query()

	if u.Host != "" || query.Has("host") {
		env.ServerName = strings.Join(hosts(cfg), ",")
	}
	if strings.TrimPrefix(u.Path, "/") != "" || query.Has("dbname") {
		env.DatabaseName = cfg.Database
	}
	return nil
}

// hosts lists the primary host and every fallback host once, in order.
// pgconn repeats a host for each TLS mode it will try.
func hosts(cfg *pgconn.Config) []string {
	out := []string{cfg.Host}
	for _, fb := range cfg.Fallbacks {
		if fb.Host != "" && !slices.Contains(out, fb.Host) {
			out = append(out, fb.Host)
		}
	}
	return out
}
