// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package slug turns arbitrary titles into URL path segments.
package slug

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidInput is returned for empty or whitespace-only input.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError wraps ErrInvalidInput with the rejected argument.
type InvalidInputError struct {
	Field  string
	Reason string
}

// Error implements the error interface.
func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input for %q: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying error.
func (e *InvalidInputError) Unwrap() error {
	return ErrInvalidInput
}

// Is checks if the error matches ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]`)
	dashRuns        = regexp.MustCompile(`-+`)
)

// Generator produces URL slugs.
type Generator interface {
	GenerateSlug(input string) (string, error)
}

// URLGenerator is the default Generator.
type URLGenerator struct{}

// NewURLGenerator returns the default Generator.
func NewURLGenerator() URLGenerator { return URLGenerator{} }

// GenerateSlug maps every character outside [a-zA-Z0-9] to "-", collapses
// dash runs, lowercases and trims dashes from both ends. The result may be
// empty when input has no ASCII letters or digits.
func (URLGenerator) GenerateSlug(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", &InvalidInputError{Field: "input", Reason: "must not be empty or whitespace"}
	}

	s := nonAlphanumeric.ReplaceAllString(input, "-")
	s = dashRuns.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	return strings.Trim(s, "-"), nil
}
