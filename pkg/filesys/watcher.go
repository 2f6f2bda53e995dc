// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package filesys

import (
	"context"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Op describes a set of changes to a watched entry.
type Op uint32

// Operations reported in an Event.
const (
	OpCreate Op = 1 << iota
	OpWrite
	OpRemove
	OpRename
	OpChmod
)

// Has reports whether o includes every bit of other.
func (o Op) Has(other Op) bool { return o&other == other }

func (o Op) String() string {
	var parts []string
	for _, n := range []struct {
		op   Op
		name string
	}{
		{OpCreate, "CREATE"},
		{OpWrite, "WRITE"},
		{OpRemove, "REMOVE"},
		{OpRename, "RENAME"},
		{OpChmod, "CHMOD"},
	} {
		if o.Has(n.op) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "NONE"
	}
	return strings.Join(parts, "|")
}

// Event is a change to an entry inside a watched directory.
type Event struct {
	Path string
	Op   Op
}

func toOp(op fsnotify.Op) Op {
	var out Op
	if op.Has(fsnotify.Create) {
		out |= OpCreate
	}
	if op.Has(fsnotify.Write) {
		out |= OpWrite
	}
	if op.Has(fsnotify.Remove) {
		out |= OpRemove
	}
	if op.Has(fsnotify.Rename) {
		out |= OpRename
	}
	if op.Has(fsnotify.Chmod) {
		out |= OpChmod
	}
	return out
}

// Watcher forwards filesystem notifications for one directory to a handler.
type Watcher struct {
	// watcher is the fsnotify file watcher
	watcher *fsnotify.Watcher

	logger zerolog.Logger
}

// NewWatcher creates a watcher. Call Start to begin delivering events and
// Close to release it early.
func NewWatcher(logger zerolog.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		watcher: watcher,
		logger:  logger.With().Str("component", "filesys.watcher").Logger(),
	}, nil
}

// Start watches the directory at dir and calls handler for each event.
//
// Start blocks until ctx is canceled, returning ctx.Err(), or until the
// watcher is closed, returning nil. The watcher is closed on return.
// handler runs on the watching goroutine.
func (w *Watcher) Start(ctx context.Context, dir string, handler func(Event)) error {
	defer func() {
		if err := w.watcher.Close(); err != nil {
			w.logger.Warn().Err(err).Msg("Error closing watcher")
		}
		w.logger.Debug().Str("dir", dir).Msg("Stopped watching directory")
	}()

	if err := w.watcher.Add(dir); err != nil {
		return pathError("watch", dir, err)
	}

	w.logger.Debug().Str("dir", dir).Msg("Started watching directory")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			op := toOp(event.Op)
			if op == 0 {
				continue
			}

			w.logger.Debug().
				Str("op", op.String()).
				Str("path", event.Name).
				Msg("Detected change")

			handler(Event{Path: event.Name, Op: op})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
