// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// ConfigSource is one layer of configuration. Manager.LoadWithSources
// loads sources in ascending Priority, so a later layer overrides the keys
// it sets and leaves the rest alone.
//
// The built-in layers are defaults (10), the YAML file (20), HOSTKIT_*
// environment variables (30) and command-line flags (40). A custom source
// can slot in between, e.g. a secrets store at 25.
type ConfigSource interface {
	Name() string
	Priority() int
	Load(k *koanf.Koanf) error
}

// DefaultSource supplies DefaultConfig.
type DefaultSource struct{}

func (s *DefaultSource) Name() string  { return "defaults" }
func (s *DefaultSource) Priority() int { return 10 }

func (s *DefaultSource) Load(k *koanf.Koanf) error {
	if err := k.Load(confmap.Provider(DefaultConfigAsMap(), "."), nil); err != nil {
		return fmt.Errorf("load defaults: %w", err)
	}
	return nil
}

// FileSource reads a YAML file with host, log and connectionstrings
// sections. Connection string names are folded to lower case so the file
// and the environment address the same entry whatever case each uses.
//
// An empty Path is skipped. A missing file is skipped unless Required is
// set, which is how an explicit --config is treated.
type FileSource struct {
	Path     string
	Required bool
}

func (s *FileSource) Name() string  { return "file:" + s.Path }
func (s *FileSource) Priority() int { return 20 }

func (s *FileSource) Load(k *koanf.Koanf) error {
	if s.Path == "" {
		return nil
	}
	if _, err := os.Stat(s.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !s.Required {
			return nil
		}
		return fmt.Errorf("config file: %w", err)
	}

	if err := mergeFolded(k, file.Provider(s.Path), yaml.Parser()); err != nil {
		return fmt.Errorf("read config file %s: %w", s.Path, err)
	}
	return nil
}

// EnvSource reads variables that start with Prefix (EnvPrefix when empty).
// The prefix is dropped, the rest lower-cased and "_" becomes the key
// separator, except inside a connection string name where it is kept:
//
//	HOSTKIT_HOST_ENVIRONMENT          -> host.environment
//	HOSTKIT_CONNECTIONSTRINGS_MAIN    -> connectionstrings.main
//	HOSTKIT_CONNECTIONSTRINGS_AUDIT_DB -> connectionstrings.audit_db
type EnvSource struct {
	Prefix string
}

func (s *EnvSource) Name() string  { return "env" }
func (s *EnvSource) Priority() int { return 30 }

func (s *EnvSource) Load(k *koanf.Koanf) error {
	prefix := s.Prefix
	if prefix == "" {
		prefix = EnvPrefix
	}

	p := env.Provider(prefix, ".", func(name string) string {
		return envKey(strings.TrimPrefix(name, prefix))
	})
	if err := mergeFolded(k, p, nil); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// envKey maps the unprefixed variable name to a koanf key.
func envKey(name string) string {
	name = strings.ToLower(name)
	if rest, ok := strings.CutPrefix(name, connectionStringsKey+"_"); ok {
		if rest == "" {
			return ""
		}
		return connectionStringsKey + "." + rest
	}
	return strings.ReplaceAll(name, "_", ".")
}

// FlagSource reads the flags registered by BindFlags. Flags left at their
// default only fill keys no earlier source set. A true "debug" value,
// whichever layer set it, forces log.level to debug.
type FlagSource struct {
	Flags *pflag.FlagSet
}

func (s *FlagSource) Name() string  { return "flags" }
func (s *FlagSource) Priority() int { return 40 }

func (s *FlagSource) Load(k *koanf.Koanf) error {
	if s.Flags != nil {
		if err := k.Load(posflag.Provider(s.Flags, ".", k), nil); err != nil {
			return fmt.Errorf("read flags: %w", err)
		}
	}
	if k.Bool("debug") {
		return k.Set("log.level", "debug")
	}
	return nil
}

// DefaultSources returns the defaults, file, env and flag layers. With
// requireFile set a missing configPath is an error.
func DefaultSources(configPath string, requireFile bool, flags *pflag.FlagSet) []ConfigSource {
	return []ConfigSource{
		&DefaultSource{},
		&FileSource{Path: configPath, Required: requireFile},
		&EnvSource{Prefix: EnvPrefix},
		&FlagSource{Flags: flags},
	}
}

// mergeFolded loads p into a scratch instance, lower-cases the connection
// string names it produced and merges the result into k.
func mergeFolded(k *koanf.Koanf, p koanf.Provider, parser koanf.Parser) error {
	scratch := koanf.New(".")
	if err := scratch.Load(p, parser); err != nil {
		return err
	}

	if names, ok := scratch.Get(connectionStringsKey).(map[string]interface{}); ok {
		scratch.Delete(connectionStringsKey)
		for name, value := range names {
			if err := scratch.Set(connectionStringsKey+"."+strings.ToLower(name), value); err != nil {
				return err
			}
		}
	}
	return k.Merge(scratch)
}
