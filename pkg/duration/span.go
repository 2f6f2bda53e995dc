// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package duration

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	day      = 24 * time.Hour
	maxDays  = int64(math.MaxInt64 / int64(day))
	fracSize = 7 // digits of tick precision
)

// parseSpan reads [ws][-]{ d | [d.]hh:mm[:ss[.fffffff]] }[ws].
func parseSpan(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidFormat
	}

	var total time.Duration
	colon := strings.IndexByte(s, ':')
	if colon < 0 {
		days, ok := parseDigits(s, 8)
		if !ok {
			return 0, ErrInvalidFormat
		}
		if days > maxDays {
			return 0, ErrOverflow
		}
		total = time.Duration(days) * day
	} else {
		var days int64
		if dot := strings.IndexByte(s[:colon], '.'); dot >= 0 {
			var ok bool
			if days, ok = parseDigits(s[:dot], 8); !ok {
				return 0, ErrInvalidFormat
			}
			s = s[dot+1:]
		}

		clock, err := parseClock(s)
		if err != nil {
			return 0, err
		}
		if days > maxDays {
			return 0, ErrOverflow
		}
		base := time.Duration(days) * day
		if clock > time.Duration(math.MaxInt64)-base {
			return 0, ErrOverflow
		}
		total = base + clock
	}

	if neg {
		total = -total
	}
	return total, nil
}

// parseClock reads hh:mm[:ss[.fffffff]].
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, ErrInvalidFormat
	}

	hours, ok := parseUnit(parts[0], 23)
	if !ok {
		return 0, ErrInvalidFormat
	}
	minutes, ok := parseUnit(parts[1], 59)
	if !ok {
		return 0, ErrInvalidFormat
	}

	var seconds, frac int64
	if len(parts) == 3 {
		sec := parts[2]
		if dot := strings.IndexByte(sec, '.'); dot >= 0 {
			if frac, ok = parseFraction(sec[dot+1:]); !ok {
				return 0, ErrInvalidFormat
			}
			sec = sec[:dot]
		}
		if seconds, ok = parseUnit(sec, 59); !ok {
			return 0, ErrInvalidFormat
		}
	}

	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(frac)*Tick, nil
}

// parseUnit reads one or two digits no greater than limit.
func parseUnit(s string, limit int64) (int64, bool) {
	v, ok := parseDigits(s, 2)
	if !ok || v > limit {
		return 0, false
	}
	return v, true
}

// parseFraction reads 1..7 digits as a count of ticks.
func parseFraction(s string) (int64, bool) {
	if len(s) == 0 || len(s) > fracSize {
		return 0, false
	}
	v, ok := parseDigits(s+strings.Repeat("0", fracSize-len(s)), fracSize)
	return v, ok
}

// parseDigits reads 1..maxLen ASCII digits.
func parseDigits(s string, maxLen int) (int64, bool) {
	if len(s) == 0 || len(s) > maxLen {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	return v, err == nil
}

// Format renders d in the constant span format [-][d.]hh:mm:ss[.fffffff].
// Precision below one tick is dropped.
func Format(d time.Duration) string {
	var b strings.Builder
	u := uint64(d)
	if d < 0 {
		b.WriteByte('-')
		u = uint64(-d)
	}
	ticks := u / uint64(Tick)

	const (
		ticksPerSecond = uint64(time.Second / Tick)
		ticksPerDay    = uint64(day / Tick)
	)
	days := ticks / ticksPerDay
	rem := ticks % ticksPerDay
	secs := rem / ticksPerSecond
	frac := rem % ticksPerSecond

	if days > 0 {
		b.WriteString(strconv.FormatUint(days, 10))
		b.WriteByte('.')
	}
	writePadded(&b, secs/3600, 2)
	b.WriteByte(':')
	writePadded(&b, secs/60%60, 2)
	b.WriteByte(':')
	writePadded(&b, secs%60, 2)
	if frac != 0 {
		b.WriteByte('.')
		writePadded(&b, frac, fracSize)
	}
	return b.String()
}

func writePadded(b *strings.Builder, v uint64, width int) {
	s := strconv.FormatUint(v, 10)
	for i := len(s); i < width; i++ {
		b.WriteByte('0')
	}
	b.WriteString(s)
}
