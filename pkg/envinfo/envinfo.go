// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package envinfo reports what a running application knows about its host:
// names and paths, the Go runtime, and the databases it is configured for.
package envinfo

import (
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/vulntor/hostkit/pkg/dbenv"
)

// HostEnvironment holds the values the hosting layer is configured with.
type HostEnvironment struct {
	ApplicationName string
	ContentRootPath string
	WebRootPath     string
	EnvironmentName string
}

// ConnectionStrings resolves a connection string by name. An unknown name
// resolves to "".
type ConnectionStrings interface {
	ConnectionString(name string) string
}

// CurrentEnvironment is a snapshot of the host and runtime.
type CurrentEnvironment struct {
	ApplicationName       string                      `display:"Application Name" json:"application_name" yaml:"application_name"`
	WebRootPath           string                      `display:"WWW Root Path" json:"web_root_path" yaml:"web_root_path"`
	ContentRootPath       string                      `display:"Application Root Path" json:"content_root_path" yaml:"content_root_path"`
	EnvironmentName       string                      `display:"Environment Name" json:"environment_name" yaml:"environment_name"`
	FrameworkDescription  string                      `display:"Framework" json:"framework" yaml:"framework"`
	OSDescription         string                      `display:"OS" json:"os" yaml:"os"`
	ProcessorArchitecture string                      `display:"Processor Architecture" json:"processor_architecture" yaml:"processor_architecture"`
	Databases             []dbenv.DatabaseEnvironment `display:"-" json:"databases" yaml:"databases"`
}

// Runtime describes the process runtime.
type Runtime struct {
	Framework    string
	OS           string
	Architecture string
}

// Provider produces CurrentEnvironment snapshots.
type Provider interface {
	Current(connectionStringKeyNames []string) CurrentEnvironment
}

// Service is the default Provider.
type Service struct {
	host    HostEnvironment
	conns   ConnectionStrings
	factory dbenv.Factory
	runtime func() Runtime
	logger  zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithRuntime replaces the runtime lookup.
func WithRuntime(fn func() Runtime) Option {
	return func(s *Service) { s.runtime = fn }
}

// NewService returns a Service for host. conns may be nil, in which case
// every connection string resolves to "".
func NewService(host HostEnvironment, conns ConnectionStrings, factory dbenv.Factory, logger zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		host:    host,
		conns:   conns,
		factory: factory,
		runtime: CurrentRuntime,
		logger:  logger.With().Str("component", "envinfo").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Current returns a snapshot with one database entry per key name, in the
// order given. A nil list yields no database entries.
func (s *Service) Current(connectionStringKeyNames []string) CurrentEnvironment {
	rt := s.runtime()
	env := CurrentEnvironment{
		ApplicationName:       s.host.ApplicationName,
		WebRootPath:           s.host.WebRootPath,
		ContentRootPath:       s.host.ContentRootPath,
		EnvironmentName:       s.host.EnvironmentName,
		FrameworkDescription:  rt.Framework,
		OSDescription:         rt.OS,
		ProcessorArchitecture: rt.Architecture,
		Databases:             make([]dbenv.DatabaseEnvironment, 0, len(connectionStringKeyNames)),
	}

	for _, name := range connectionStringKeyNames {
		var cs string
		if s.conns != nil {
			cs = s.conns.ConnectionString(name)
		}
		if cs == "" {
			s.logger.Debug().Str("name", name).Msg("No connection string configured")
		}
		env.Databases = append(env.Databases, s.factory.CreateFromConnectionString(name, cs))
	}
	return env
}

// CurrentRuntime describes the running Go runtime.
func CurrentRuntime() Runtime {
	return Runtime{
		Framework:    FrameworkDescription(runtime.Version()),
		OS:           runtime.GOOS,
		Architecture: Architecture(runtime.GOARCH),
	}
}

// FrameworkDescription renders a Go toolchain version such as "go1.25.1"
// as "Go 1.25.1". Versions that are not semantic (devel builds) are
// returned unchanged.
func FrameworkDescription(goVersion string) string {
	raw := strings.TrimPrefix(goVersion, "go")
	v, err := semver.NewVersion(raw)
	if err != nil {
		return goVersion
	}
	return "Go " + v.String()
}

// Architecture maps a GOARCH value to a processor architecture name.
// Unknown values are returned unchanged.
func Architecture(goarch string) string {
	switch goarch {
	case "amd64":
		return "X64"
	case "386":
		return "X86"
	case "arm64":
		return "Arm64"
	case "arm":
		return "Arm"
	case "wasm":
		return "Wasm"
	case "s390x":
		return "S390x"
	case "loong64":
		return "LoongArch64"
	case "ppc64le":
		return "Ppc64le"
	}
	return goarch
}
