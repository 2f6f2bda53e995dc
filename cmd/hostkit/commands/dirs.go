// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package commands

import (
	"github.com/spf13/cobra"

	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
	"github.com/vulntor/hostkit/pkg/paths"
)

// dirsView lists the per-user locations hostkit reads and writes.
type dirsView struct {
	ConfigFile string `display:"Config File" json:"config_file" yaml:"config_file"`
	ConfigDir  string `display:"Config Directory" json:"config_dir" yaml:"config_dir"`
	DataDir    string `display:"Data Directory" json:"data_dir" yaml:"data_dir"`
	CacheDir   string `display:"Cache Directory" json:"cache_dir" yaml:"cache_dir"`
}

func newDirsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dirs",
		Short: "Print the per-user config, data and cache directories",
		Long: `Print where hostkit looks for its default config file and which data and
cache directories belong to it. XDG_CONFIG_HOME, XDG_DATA_HOME and
XDG_CACHE_HOME are honored; otherwise the platform defaults are used.`,
		GroupID: "host",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return format.FromCommand(cmd).PrintFields(dirsView{
				ConfigFile: paths.DefaultConfigFile(),
				ConfigDir:  paths.ConfigDir(),
				DataDir:    paths.DataDir(),
				CacheDir:   paths.CacheDir(),
			})
		},
	}
}
