// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package version provides version metadata for the application.
package version

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// These variables are typically injected at build time using -ldflags
var (
	// Version holds the current version of hostkit.
	Version = "dev"
	// Commit holds the current version commit of hostkit.
	Commit = "none"
	// BuildDate holds the build date of hostkit.
	BuildDate = "unknown"
)

// Struct returns version information in a structured format.
type Struct struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	BuildDate string `json:"buildDate" yaml:"buildDate"`
	// Semantic is the normalized semantic version, empty for builds whose
	// Version does not parse.
	Semantic string `json:"semantic,omitempty" yaml:"semantic,omitempty"`
}

// Info returns a formatted version string.
func Info() string {
	return fmt.Sprintf("Hostkit %s (commit: %s, date: %s)", Version, Commit, BuildDate)
}

// Get returns version information as a Struct.
func Get() Struct {
	s := Struct{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	}
	if sv, err := Semantic(); err == nil {
		s.Semantic = sv.String()
	}
	return s
}

// Semantic parses Version. Development builds ("dev") do not parse.
func Semantic() (*semver.Version, error) {
	return semver.NewVersion(Version)
}

// IsNewer reports whether release is newer than the running version.
// Pre-releases only count as newer when the running version is itself a
// pre-release.
func IsNewer(release string) (bool, error) {
	current, err := Semantic()
	if err != nil {
		return false, fmt.Errorf("current version %q: %w", Version, err)
	}
	candidate, err := semver.NewVersion(release)
	if err != nil {
		return false, fmt.Errorf("release version %q: %w", release, err)
	}
	if current.Prerelease() == "" && candidate.Prerelease() != "" {
		return false, nil
	}
	return candidate.GreaterThan(current), nil
}
