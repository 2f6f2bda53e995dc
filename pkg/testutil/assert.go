// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulntor/hostkit/pkg/display"
)

// AssertDisplayName checks the display label of a model field.
func AssertDisplayName(t testing.TB, model any, field, want string) bool {
	t.Helper()
	got, err := display.Name(model, field)
	require.NoError(t, err)
	return assert.Equal(t, want, got, "display name of %T.%s", model, field)
}

// CreateString returns a string of n repeated 'a' characters, for length
// boundary tests.
func CreateString(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("a", n)
}
