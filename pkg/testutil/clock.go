// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package testutil provides deterministic fakes and assertions for code
// built on hostkit providers.
package testutil

import (
	"sync"
	"time"

	"github.com/vulntor/hostkit/pkg/clock"
)

// ManualClock is a clock that only moves when told to. It satisfies both
// clock.Clock and clock.ServerClock.
type ManualClock struct {
	mu  sync.Mutex
	now time.Time
}

// NewManualClock returns a clock frozen at now.
func NewManualClock(now time.Time) *ManualClock {
	return &ManualClock{now: now}
}

// Set moves the clock to t.
func (c *ManualClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Advance moves the clock forward by d and returns the new time.
func (c *ManualClock) Advance(d time.Duration) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	return c.now
}

// Now returns the current time in its own location.
func (c *ManualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *ManualClock) Today() time.Time                                    { return clock.StartOfDay(c.Now()) }
func (c *ManualClock) UTCNow() time.Time                                   { return c.Now().UTC() }
func (c *ManualClock) DaysInMonth(year int, month time.Month) (int, error) { return clock.DaysInMonth(year, month) }
func (c *ManualClock) CurrentServerTime() time.Time                        { return c.Now() }
func (c *ManualClock) CurrentUTCTime() time.Time                           { return c.UTCNow() }

var (
	_ clock.Clock       = (*ManualClock)(nil)
	_ clock.ServerClock = (*ManualClock)(nil)
)
