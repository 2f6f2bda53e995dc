// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// pkg/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// EnvPrefix is the prefix of environment variables read by EnvSource.
const EnvPrefix = "HOSTKIT_"

const connectionStringsKey = "connectionstrings"

var validate = validator.New()

// ValidationError reports a configuration value that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config value %s: %s", e.Field, e.Reason)
}

// Manager handles loading and accessing application configuration.
type Manager struct {
	koanfInstance *koanf.Koanf
	currentConfig Config
	mu            sync.RWMutex // To protect currentConfig during runtime updates
}

// NewManager creates a new Manager with its own koanf instance.
func NewManager() *Manager {
	return &Manager{
		koanfInstance: koanf.New("."),
		currentConfig: DefaultConfig(),
	}
}

// DefaultConfig returns a new Config struct populated with hardcoded default values.
// These serve as the baseline configuration if no other sources override them.
func DefaultConfig() Config {
	contentRoot, err := os.Getwd()
	if err != nil {
		contentRoot = "."
	}
	return Config{
		Log: LogConfig{
			Level:  "error",
			Format: "text",
			File:   "",
		},
		Host: HostConfig{
			Application: "hostkit",
			ContentRoot: contentRoot,
			WebRoot:     filepath.Join(contentRoot, "wwwroot"),
			Environment: "Production",
		},
		ConnectionStrings: map[string]string{},
	}
}

// DefaultConfigAsMap converts the DefaultConfig struct to a map[string]interface{}
// for Koanf's confmap.Provider.
func DefaultConfigAsMap() map[string]interface{} {
	def := DefaultConfig()
	return map[string]interface{}{
		// Log configuration
		"log.level":   def.Log.Level,
		"log.format":  def.Log.Format,
		"log.file":    def.Log.File,
		"log.nocolor": def.Log.NoColor,

		// Host configuration
		"host.application": def.Host.Application,
		"host.contentroot": def.Host.ContentRoot,
		"host.webroot":     def.Host.WebRoot,
		"host.environment": def.Host.Environment,
	}
}

// Load loads configuration from the default sources:
// defaults -> file -> env -> flags. A missing configFile is skipped.
func (m *Manager) Load(flags *pflag.FlagSet, configFile string) error {
	return m.LoadWithSources(DefaultSources(configFile, false, flags))
}

// LoadWithSources loads the given sources in ascending priority order,
// then unmarshals, normalises and validates the merged result. On error
// the previously loaded configuration is kept.
func (m *Manager) LoadWithSources(sources []ConfigSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ordered := slices.Clone(sources)
	slices.SortStableFunc(ordered, func(a, b ConfigSource) int {
		return a.Priority() - b.Priority()
	})

	k := koanf.New(".")
	for _, src := range ordered {
		if err := src.Load(k); err != nil {
			return fmt.Errorf("config source %s: %w", src.Name(), err)
		}
	}

	var newCfg Config
	if err := k.UnmarshalWithConf("", &newCfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}

	conns, err := normalizeConnectionStrings(k.Get(connectionStringsKey))
	if err != nil {
		return err
	}
	newCfg.ConnectionStrings = conns

	if err := validateConfig(newCfg); err != nil {
		return err
	}

	m.koanfInstance = k
	m.currentConfig = newCfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfgCopy := m.currentConfig
	cfgCopy.ConnectionStrings = make(map[string]string, len(m.currentConfig.ConnectionStrings))
	for name, cs := range m.currentConfig.ConnectionStrings {
		cfgCopy.ConnectionStrings[name] = cs
	}
	return cfgCopy
}

// ConnectionString returns the connection string configured under name.
// Names are matched case-insensitively; an unknown name yields "".
func (m *Manager) ConnectionString(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig.ConnectionStrings[strings.ToLower(name)]
}

// ConnectionStringNames returns the configured connection string names in
// sorted order.
func (m *Manager) ConnectionStringNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.currentConfig.ConnectionStrings))
	for name := range m.currentConfig.ConnectionStrings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Value returns the raw merged value at a dotted key path.
func (m *Manager) Value(key string) interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.koanfInstance.Get(key)
}

// normalizeConnectionStrings lowercases names and coerces values to strings.
func normalizeConnectionStrings(raw interface{}) (map[string]string, error) {
	out := map[string]string{}
	if raw == nil {
		return out, nil
	}
	m, err := cast.ToStringMapStringE(raw)
	if err != nil {
		return nil, &ValidationError{Field: "connectionstrings", Reason: "must be a map of name to connection string"}
	}
	for name, cs := range m {
		out[strings.ToLower(name)] = cs
	}
	return out, nil
}

func validateConfig(cfg Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		reason := fe.Tag()
		if fe.Param() != "" {
			reason += "=" + fe.Param()
		}
		errs = append(errs, &ValidationError{Field: fe.Namespace(), Reason: reason})
	}
	return errors.Join(errs...)
}

// BindFlags defines command-line flags corresponding to configuration settings.
// These flags allow overriding config file / environment variable settings.
func BindFlags(flags *pflag.FlagSet) {
	defaults := DefaultConfig()

	flags.Bool("debug", false, "Enable debug logging")
	flags.String("log.level", defaults.Log.Level, "Log level (trace, debug, info, warn, error)")
	flags.String("log.format", defaults.Log.Format, "Log format (text, json)")
	flags.String("log.file", defaults.Log.File, "Path to log file (leave empty for stderr)")
	flags.Bool("log.nocolor", defaults.Log.NoColor, "Disable colored log output")
	flags.String("host.application", defaults.Host.Application, "Application name")
	flags.String("host.environment", defaults.Host.Environment, "Environment name")
	flags.String("host.contentroot", defaults.Host.ContentRoot, "Application root path")
	flags.String("host.webroot", defaults.Host.WebRoot, "Static web content root path")
}
