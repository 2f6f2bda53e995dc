// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package filesys

import (
	"errors"
	"fmt"
	"io/fs"
)

// Common errors returned by file and directory operations.
var (
	// ErrExist is returned when a copy or move target already exists.
	ErrExist = errors.New("destination already exists")

	// ErrNotFile is returned when a file operation is given a directory.
	ErrNotFile = errors.New("not a regular file")

	// ErrNotDirectory is returned when a directory operation is given a file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrLocked is returned by TryLock when another holder owns the lock.
	ErrLocked = errors.New("file is locked")
)

// PathError records the operation and path that failed.
type PathError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// Is lets ErrExist also match fs.ErrExist.
func (e *PathError) Is(target error) bool {
	return target == fs.ErrExist && e.Err == ErrExist
}

func pathError(op, path string, err error) error {
	return &PathError{Op: op, Path: path, Err: err}
}
