// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package clock wraps the system clock behind interfaces so that code reading
// the current time can be tested against a fixed or manually advanced clock.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutOfRange is returned when a calendar argument falls outside the
// supported range (years 1..9999, months 1..12).
var ErrOutOfRange = errors.New("calendar value out of range")

// Clock provides the current date and time.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time

	// Today returns midnight of the current local date.
	Today() time.Time

	// UTCNow returns the current time in UTC.
	UTCNow() time.Time

	// DaysInMonth returns the number of days in the given month of the year.
	DaysInMonth(year int, month time.Month) (int, error)
}

// ServerClock is the narrower clock shape used by older callers that only
// distinguish between server-local and UTC time.
type ServerClock interface {
	CurrentServerTime() time.Time
	CurrentUTCTime() time.Time
}

// System implements Clock and ServerClock using the time package.
type System struct{}

// NewSystem returns the system clock.
func NewSystem() System {
	return System{}
}

// Now delegates to [time.Now].
func (System) Now() time.Time {
	return time.Now()
}

// Today returns midnight of the current local date.
func (System) Today() time.Time {
	return StartOfDay(time.Now())
}

// UTCNow returns [time.Now] in UTC.
func (System) UTCNow() time.Time {
	return time.Now().UTC()
}

// DaysInMonth returns the number of days in month of year.
func (System) DaysInMonth(year int, month time.Month) (int, error) {
	return DaysInMonth(year, month)
}

// CurrentServerTime delegates to [time.Now].
func (System) CurrentServerTime() time.Time {
	return time.Now()
}

// CurrentUTCTime returns [time.Now] in UTC.
func (System) CurrentUTCTime() time.Time {
	return time.Now().UTC()
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in month of year using the
// proleptic Gregorian calendar.
func DaysInMonth(year int, month time.Month) (int, error) {
	if year < 1 || year > 9999 {
		return 0, fmt.Errorf("year %d: %w", year, ErrOutOfRange)
	}
	if month < time.January || month > time.December {
		return 0, fmt.Errorf("month %d: %w", int(month), ErrOutOfRange)
	}
	// Day 0 of the next month normalises to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day(), nil
}
