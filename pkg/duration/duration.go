// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package duration provides an injectable factory and parser for
// time.Duration values.
package duration

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Tick is the 100-nanosecond unit used by FromTicks and by the fractional
// part of the constant span format.
const Tick = 100 * time.Nanosecond

var (
	// ErrInvalidFormat is returned when a string is not a recognised span.
	ErrInvalidFormat = errors.New("invalid duration format")

	// ErrOverflow is returned when a parsed span does not fit in a time.Duration.
	ErrOverflow = errors.New("duration out of range")
)

// ParseError reports the input that failed to parse.
type ParseError struct {
	Input string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("parse duration %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Provider builds and parses durations.
type Provider interface {
	FromMilliseconds(value float64) time.Duration
	FromSeconds(value float64) time.Duration
	FromMinutes(value float64) time.Duration
	FromHours(value float64) time.Duration
	FromDays(value float64) time.Duration
	FromTicks(value int64) time.Duration

	// Parse reads a span in the constant format ([-][d.]hh:mm[:ss[.fffffff]]
	// or [-]d) or a Go duration string such as "1h30m".
	Parse(s string) (time.Duration, error)

	// TryParse is Parse without the error detail.
	TryParse(s string) (time.Duration, bool)
}

// System is the default Provider.
type System struct{}

// NewSystem returns the default Provider.
func NewSystem() System {
	return System{}
}

func (System) FromMilliseconds(value float64) time.Duration { return fromFloat(value, time.Millisecond) }
func (System) FromSeconds(value float64) time.Duration      { return fromFloat(value, time.Second) }
func (System) FromMinutes(value float64) time.Duration      { return fromFloat(value, time.Minute) }
func (System) FromHours(value float64) time.Duration        { return fromFloat(value, time.Hour) }
func (System) FromDays(value float64) time.Duration         { return fromFloat(value, 24*time.Hour) }

// FromTicks converts 100ns ticks, saturating at the Duration range.
func (System) FromTicks(value int64) time.Duration {
	switch {
	case value > math.MaxInt64/int64(Tick):
		return math.MaxInt64
	case value < math.MinInt64/int64(Tick):
		return math.MinInt64
	}
	return time.Duration(value) * Tick
}

// Parse delegates to the package-level Parse.
func (System) Parse(s string) (time.Duration, error) {
	return Parse(s)
}

// TryParse delegates to the package-level Parse and drops the error.
func (System) TryParse(s string) (time.Duration, bool) {
	d, err := Parse(s)
	if err != nil {
		return 0, false
	}
	return d, true
}

// fromFloat rounds value*unit to the nearest nanosecond. Results outside the
// Duration range saturate, the same way time.Duration.Round does. NaN maps
// to zero.
func fromFloat(value float64, unit time.Duration) time.Duration {
	if math.IsNaN(value) {
		return 0
	}
	ns := math.Round(value * float64(unit))
	switch {
	case ns >= float64(math.MaxInt64):
		return math.MaxInt64
	case ns <= float64(math.MinInt64):
		return math.MinInt64
	}
	return time.Duration(ns)
}

// Parse reads s as a constant-format span and falls back to Go duration
// syntax when s carries unit suffixes.
func Parse(s string) (time.Duration, error) {
	d, err := parseSpan(s)
	if err == nil {
		return d, nil
	}
	if errors.Is(err, ErrOverflow) {
		return 0, &ParseError{Input: s, Err: err}
	}

	trimmed := strings.TrimSpace(s)
	if trimmed != "" && strings.ContainsAny(trimmed, "nsuµmh") {
		if d, castErr := cast.ToDurationE(trimmed); castErr == nil {
			return d, nil
		}
	}
	return 0, &ParseError{Input: s, Err: ErrInvalidFormat}
}
