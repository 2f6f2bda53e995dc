// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// pkg/config/types.go
package config

// Config is the root configuration structure for hostkit.
// It aggregates all other specific configuration structs.
type Config struct {
	Log               LogConfig         `description:"Logging configuration" koanf:"log"`
	Host              HostConfig        `description:"Hosting environment" koanf:"host"`
	ConnectionStrings map[string]string `description:"Named connection strings" koanf:"connectionstrings"`
}

// LogConfig holds logging related configuration.
type LogConfig struct {
	Level   string `description:"Log level: trace | debug | info | warn | error" koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format  string `description:"Log format: json | text" koanf:"format" validate:"omitempty,oneof=json text"`
	File    string `description:"Log file path" koanf:"file"`
	NoColor bool   `description:"Disable colored console output" koanf:"nocolor"`
}

// HostConfig describes the application as its host sees it.
type HostConfig struct {
	Application string `description:"Application name" koanf:"application" validate:"required"`
	ContentRoot string `description:"Application root path" koanf:"contentroot"`
	WebRoot     string `description:"Static web content root path" koanf:"webroot"`
	Environment string `description:"Environment name, e.g. Development | Staging | Production" koanf:"environment" validate:"required"`
}
