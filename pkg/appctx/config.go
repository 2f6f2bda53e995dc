// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package appctx

import (
	"context"

	"github.com/vulntor/hostkit/pkg/config"
	"github.com/vulntor/hostkit/pkg/services"
)

type key string

const (
	configKey   key = "hostkit.config.manager"
	servicesKey key = "hostkit.services"
)

// WithConfig stores the shared config manager on context.
func WithConfig(ctx context.Context, manager *config.Manager) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, configKey, manager)
}

// Config retrieves the shared config manager from context.
func Config(ctx context.Context) (*config.Manager, bool) {
	if ctx == nil {
		return nil, false
	}
	mgr, ok := ctx.Value(configKey).(*config.Manager)
	return mgr, ok && mgr != nil
}

// WithServices stores the provider bundle on context.
func WithServices(ctx context.Context, svc *services.Services) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, servicesKey, svc)
}

// Services retrieves the provider bundle from context.
func Services(ctx context.Context) (*services.Services, bool) {
	if ctx == nil {
		return nil, false
	}
	svc, ok := ctx.Value(servicesKey).(*services.Services)
	return svc, ok && svc != nil
}
