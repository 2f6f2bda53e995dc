// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package clock

import (
	"fmt"
	"time"
	_ "time/tzdata" // zone lookups must not depend on the host tz database
)

// Windows-style time zone identifiers for the North American zones.
const (
	AlaskanStandardTime  = "Alaskan Standard Time"
	AtlanticStandardTime = "Atlantic Standard Time"
	CentralStandardTime  = "Central Standard Time"
	EasternStandardTime  = "Eastern Standard Time"
	HawaiianStandardTime = "Hawaii-Aleutian Standard Time"
	PacificStandardTime  = "Pacific Standard Time"
	MountainStandardTime = "Mountain Standard Time"
)

var zoneAliases = map[string]string{
	AlaskanStandardTime:  "America/Anchorage",
	AtlanticStandardTime: "America/Halifax",
	CentralStandardTime:  "America/Chicago",
	EasternStandardTime:  "America/New_York",
	HawaiianStandardTime: "Pacific/Honolulu",
	PacificStandardTime:  "America/Los_Angeles",
	MountainStandardTime: "America/Denver",
}

// Location resolves a Windows-style zone id (see the constants above) or an
// IANA zone name to a *time.Location.
func Location(id string) (*time.Location, error) {
	name := id
	if alias, ok := zoneAliases[id]; ok {
		name = alias
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", id, err)
	}
	return loc, nil
}

// InZone returns the current time of c in the zone identified by id.
func InZone(c Clock, id string) (time.Time, error) {
	loc, err := Location(id)
	if err != nil {
		return time.Time{}, err
	}
	return c.UTCNow().In(loc), nil
}
