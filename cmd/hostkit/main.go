// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/vulntor/hostkit/cmd/hostkit/commands"
	"github.com/vulntor/hostkit/cmd/hostkit/internal/format"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := commands.NewCommand()
	cmd.SilenceErrors = true
	if c, err := cmd.ExecuteContextC(ctx); err != nil {
		_ = format.FromCommand(c).PrintError(err)
		stop()
		os.Exit(1)
	}
}
