// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package guid wraps github.com/google/uuid behind an injectable Provider and
// adds the N/D/B/P/X text formats used by hosting platforms.
package guid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Format selects a textual representation of a GUID.
type Format string

const (
	// FormatN is 32 hex digits: 00000000000000000000000000000000.
	FormatN Format = "N"
	// FormatD is hyphenated: 00000000-0000-0000-0000-000000000000.
	FormatD Format = "D"
	// FormatB is hyphenated in braces: {00000000-0000-0000-0000-000000000000}.
	FormatB Format = "B"
	// FormatP is hyphenated in parentheses: (00000000-0000-0000-0000-000000000000).
	FormatP Format = "P"
	// FormatX is the hexadecimal struct form:
	// {0x00000000,0x0000,0x0000,{0x00,0x00,0x00,0x00,0x00,0x00,0x00,0x00}}.
	FormatX Format = "X"
)

// Formats lists every supported format in the order Parse tries them.
var Formats = []Format{FormatD, FormatN, FormatB, FormatP, FormatX}

// ErrInvalidFormat is returned when input or a format specifier is not
// recognised.
var ErrInvalidFormat = errors.New("invalid guid format")

// Provider creates, parses and formats GUIDs.
type Provider interface {
	// Empty returns the all-zero GUID.
	Empty() uuid.UUID

	// New returns a random (version 4) GUID.
	New() uuid.UUID

	// Parse accepts any of the supported formats.
	Parse(input string) (uuid.UUID, error)

	// ParseExact accepts only the given format.
	ParseExact(input string, format Format) (uuid.UUID, error)

	TryParse(input string) (uuid.UUID, bool)
	TryParseExact(input string, format Format) (uuid.UUID, bool)

	// Format renders id in the given format. An empty format means FormatD.
	Format(id uuid.UUID, format Format) (string, error)
}

// System is the default Provider.
type System struct{}

// NewSystem returns the default Provider.
func NewSystem() System {
	return System{}
}

// Empty returns [uuid.Nil].
func (System) Empty() uuid.UUID {
	return uuid.Nil
}

// New delegates to [uuid.New].
func (System) New() uuid.UUID {
	return uuid.New()
}

func (System) Parse(input string) (uuid.UUID, error) {
	return Parse(input)
}

func (System) ParseExact(input string, format Format) (uuid.UUID, error) {
	return ParseExact(input, format)
}

func (System) TryParse(input string) (uuid.UUID, bool) {
	id, err := Parse(input)
	return id, err == nil
}

func (System) TryParseExact(input string, format Format) (uuid.UUID, bool) {
	id, err := ParseExact(input, format)
	return id, err == nil
}

func (System) Format(id uuid.UUID, format Format) (string, error) {
	return FormatID(id, format)
}

// Parse reads input in any supported format. Surrounding whitespace is
// ignored.
func Parse(input string) (uuid.UUID, error) {
	trimmed := strings.TrimSpace(input)
	for _, f := range Formats {
		if id, err := ParseExact(trimmed, f); err == nil {
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("parse guid %q: %w", input, ErrInvalidFormat)
}

// ParseExact reads input in exactly the given format.
func ParseExact(input string, format Format) (uuid.UUID, error) {
	f, err := normalize(format)
	if err != nil {
		return uuid.Nil, err
	}

	var id uuid.UUID
	switch f {
	case FormatN:
		if len(input) == 32 {
			id, err = parseHex(input)
		} else {
			err = ErrInvalidFormat
		}
	case FormatD:
		id, err = parseHyphenated(input)
	case FormatB:
		id, err = parseWrapped(input, '{', '}')
	case FormatP:
		id, err = parseWrapped(input, '(', ')')
	case FormatX:
		id, err = parseStruct(input)
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("parse guid %q as %s: %w", input, f, ErrInvalidFormat)
	}
	return id, nil
}

// FormatID renders id in the given format.
func FormatID(id uuid.UUID, format Format) (string, error) {
	if format == "" {
		format = FormatD
	}
	f, err := normalize(format)
	if err != nil {
		return "", err
	}

	switch f {
	case FormatN:
		return strings.ReplaceAll(id.String(), "-", ""), nil
	case FormatB:
		return "{" + id.String() + "}", nil
	case FormatP:
		return "(" + id.String() + ")", nil
	case FormatX:
		return formatStruct(id), nil
	default:
		return id.String(), nil
	}
}

func normalize(format Format) (Format, error) {
	f := Format(strings.ToUpper(string(format)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("format specifier %q: %w", string(format), ErrInvalidFormat)
}

// parseHex reads 32 hex digits. uuid.Parse accepts the bare form directly.
func parseHex(s string) (uuid.UUID, error) {
	for i := 0; i < len(s); i++ {
		if !isHex(s[i]) {
			return uuid.Nil, ErrInvalidFormat
		}
	}
	return uuid.Parse(s)
}

func parseHyphenated(s string) (uuid.UUID, error) {
	if len(s) != 36 {
		return uuid.Nil, ErrInvalidFormat
	}
	return uuid.Parse(s)
}

func parseWrapped(s string, open, closing byte) (uuid.UUID, error) {
	if len(s) != 38 || s[0] != open || s[37] != closing {
		return uuid.Nil, ErrInvalidFormat
	}
	return parseHyphenated(s[1:37])
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
