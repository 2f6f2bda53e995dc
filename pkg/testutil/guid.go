// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package testutil

import (
	"encoding/binary"
	"sync"

	"github.com/google/uuid"

	"github.com/vulntor/hostkit/pkg/guid"
)

// SequentialGUIDs is a guid.Provider whose New returns
// 00000000-0000-0000-0000-000000000001, ...-000000000002 and so on.
// Parsing and formatting use the default provider.
type SequentialGUIDs struct {
	guid.System

	mu   sync.Mutex
	next uint64
}

// NewSequentialGUIDs returns a provider whose first New result is the GUID
// numbered start.
func NewSequentialGUIDs(start uint64) *SequentialGUIDs {
	return &SequentialGUIDs{next: start}
}

// New returns the next GUID in sequence.
func (g *SequentialGUIDs) New() uuid.UUID {
	g.mu.Lock()
	defer g.mu.Unlock()

	var id uuid.UUID
	binary.BigEndian.PutUint64(id[8:], g.next)
	g.next++
	return id
}

var _ guid.Provider = (*SequentialGUIDs)(nil)
