// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package services wires one default implementation of every hostkit
// provider. Applications build a Services value once at startup and hand
// its fields to the code that needs them; tests substitute fakes through
// the With options.
package services

import (
	"github.com/rs/zerolog"

	"github.com/vulntor/hostkit/pkg/clock"
	"github.com/vulntor/hostkit/pkg/config"
	"github.com/vulntor/hostkit/pkg/dbenv"
	"github.com/vulntor/hostkit/pkg/duration"
	"github.com/vulntor/hostkit/pkg/envinfo"
	"github.com/vulntor/hostkit/pkg/filesys"
	"github.com/vulntor/hostkit/pkg/guid"
	"github.com/vulntor/hostkit/pkg/paths"
	"github.com/vulntor/hostkit/pkg/slug"
)

// Services holds the providers an application depends on. Every default is
// stateless, so sharing one value is equivalent to creating one per use.
type Services struct {
	Clock       clock.Clock
	ServerClock clock.ServerClock
	Durations   duration.Provider
	GUIDs       guid.Provider
	Paths       paths.Provider
	Files       filesys.FileProvider
	Directories filesys.DirectoryProvider
	Slugs       slug.Generator
	Databases   dbenv.Factory
	Environment envinfo.Provider
}

// Option replaces a default provider.
type Option func(*Services)

func WithClock(c clock.Clock) Option                     { return func(s *Services) { s.Clock = c } }
func WithServerClock(c clock.ServerClock) Option         { return func(s *Services) { s.ServerClock = c } }
func WithDurations(p duration.Provider) Option           { return func(s *Services) { s.Durations = p } }
func WithGUIDs(p guid.Provider) Option                   { return func(s *Services) { s.GUIDs = p } }
func WithPaths(p paths.Provider) Option                  { return func(s *Services) { s.Paths = p } }
func WithFiles(p filesys.FileProvider) Option            { return func(s *Services) { s.Files = p } }
func WithDirectories(p filesys.DirectoryProvider) Option { return func(s *Services) { s.Directories = p } }
func WithSlugs(g slug.Generator) Option                  { return func(s *Services) { s.Slugs = g } }
func WithDatabases(f dbenv.Factory) Option               { return func(s *Services) { s.Databases = f } }
func WithEnvironment(p envinfo.Provider) Option          { return func(s *Services) { s.Environment = p } }

// New builds the default providers for cfg. conns resolves connection
// strings for the environment service; nil resolves every name to "".
func New(cfg config.Config, conns envinfo.ConnectionStrings, logger zerolog.Logger, opts ...Option) *Services {
	s := &Services{}
	for _, opt := range opts {
		opt(s)
	}

	sys := clock.NewSystem()
	if s.Clock == nil {
		s.Clock = sys
	}
	if s.ServerClock == nil {
		s.ServerClock = sys
	}
	if s.Durations == nil {
		s.Durations = duration.NewSystem()
	}
	if s.GUIDs == nil {
		s.GUIDs = guid.NewSystem()
	}
	if s.Paths == nil {
		s.Paths = paths.NewSystem()
	}
	if s.Files == nil {
		s.Files = filesys.NewFiles(logger)
	}
	if s.Directories == nil {
		s.Directories = filesys.NewDirectories(logger)
	}
	if s.Slugs == nil {
		s.Slugs = slug.NewURLGenerator()
	}
	if s.Databases == nil {
		s.Databases = dbenv.NewFactory(logger)
	}
	if s.Environment == nil {
		s.Environment = envinfo.NewService(HostEnvironment(cfg), conns, s.Databases, logger)
	}

	logger.Debug().
		Str("component", "services").
		Str("application", cfg.Host.Application).
		Str("environment", cfg.Host.Environment).
		Msg("Services registered")
	return s
}

// HostEnvironment maps the host section of cfg to envinfo's model.
func HostEnvironment(cfg config.Config) envinfo.HostEnvironment {
	return envinfo.HostEnvironment{
		ApplicationName: cfg.Host.Application,
		ContentRootPath: cfg.Host.ContentRoot,
		WebRootPath:     cfg.Host.WebRoot,
		EnvironmentName: cfg.Host.Environment,
	}
}
