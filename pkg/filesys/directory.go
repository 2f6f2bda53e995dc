// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package filesys

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

const dirPerm = 0o755

// SearchOption selects whether listings descend into subdirectories.
type SearchOption int

const (
	// TopDirectoryOnly lists the immediate children of a directory.
	TopDirectoryOnly SearchOption = iota
	// AllDirectories lists every descendant of a directory.
	AllDirectories
)

// entryKind filters listings.
type entryKind int

const (
	kindAll entryKind = iota
	kindFile
	kindDir
)

// DirectoryProvider covers the directory operations an application performs.
type DirectoryProvider interface {
	Create(path string) (fs.FileInfo, error)
	CurrentDirectory() (string, error)
	Delete(path string, recursive bool) error
	DirectoryRoot(path string) (string, error)
	Exists(path string) bool
	LastWriteTime(path string) (time.Time, error)
	LastWriteTimeUTC(path string) (time.Time, error)
	ListDirectories(path, pattern string, opt SearchOption) ([]string, error)
	ListEntries(path, pattern string, opt SearchOption) ([]string, error)
	ListFiles(path, pattern string, opt SearchOption) ([]string, error)
	LogicalDrives() ([]string, error)
	Move(src, dst string) error
	Parent(path string) (string, error)
	SetCurrentDirectory(path string) error
	SetLastAccessTime(path string, t time.Time) error
	SetLastWriteTime(path string, t time.Time) error
	Walk(path, pattern string, opt SearchOption, fn fs.WalkDirFunc) error
	Watch(ctx context.Context, path string, handler func(Event)) error
}

// Directories is the os-backed DirectoryProvider.
type Directories struct {
	logger zerolog.Logger
}

// NewDirectories returns a DirectoryProvider backed by the os package.
func NewDirectories(logger zerolog.Logger) *Directories {
	return &Directories{logger: logger.With().Str("component", "filesys.directories").Logger()}
}

// Create makes path and any missing parents and returns its info.
func (d *Directories) Create(path string) (fs.FileInfo, error) {
	if err := os.MkdirAll(path, dirPerm); err != nil {
		return nil, err
	}
	return os.Stat(path)
}

func (d *Directories) CurrentDirectory() (string, error) {
	return os.Getwd()
}

// Delete removes the directory at path. Without recursive the directory
// must be empty. A missing directory is an error.
func (d *Directories) Delete(path string, recursive bool) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return pathError("delete", path, ErrNotDirectory)
	}
	if !recursive {
		return os.Remove(path)
	}
	if err := os.RemoveAll(path); err != nil {
		return err
	}
	d.logger.Debug().Str("path", path).Msg("Removed directory tree")
	return nil
}

// DirectoryRoot returns the volume and root separator of path's absolute
// form, e.g. "/" or `C:\`.
func (d *Directories) DirectoryRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.VolumeName(abs) + string(filepath.Separator), nil
}

// Exists reports whether path names an existing directory.
func (d *Directories) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (d *Directories) LastWriteTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().Local(), nil
}

func (d *Directories) LastWriteTimeUTC(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC(), nil
}

func (d *Directories) ListDirectories(path, pattern string, opt SearchOption) ([]string, error) {
	return d.list(path, pattern, opt, kindDir)
}

func (d *Directories) ListEntries(path, pattern string, opt SearchOption) ([]string, error) {
	return d.list(path, pattern, opt, kindAll)
}

func (d *Directories) ListFiles(path, pattern string, opt SearchOption) ([]string, error) {
	return d.list(path, pattern, opt, kindFile)
}

func (d *Directories) list(path, pattern string, opt SearchOption, kind entryKind) ([]string, error) {
	out := []string{}
	err := d.Walk(path, pattern, opt, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch {
		case kind == kindDir && !entry.IsDir():
		case kind == kindFile && entry.IsDir():
		default:
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (d *Directories) LogicalDrives() ([]string, error) {
	return logicalDrives()
}

// Move renames the directory src to dst. dst must not exist.
func (d *Directories) Move(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return pathError("move", src, ErrNotDirectory)
	}
	if _, err := os.Lstat(dst); err == nil {
		return pathError("move", dst, ErrExist)
	}
	if err := os.Rename(src, dst); err != nil {
		return err
	}
	d.logger.Debug().Str("src", src).Str("dst", dst).Msg("Moved directory")
	return nil
}

// Parent returns the absolute parent of path, or "" when path is a root.
func (d *Directories) Parent(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	parent := filepath.Dir(abs)
	if parent == abs {
		return "", nil
	}
	return parent, nil
}

func (d *Directories) SetCurrentDirectory(path string) error {
	return os.Chdir(path)
}

func (d *Directories) SetLastAccessTime(path string, t time.Time) error {
	return os.Chtimes(path, t, time.Time{})
}

func (d *Directories) SetLastWriteTime(path string, t time.Time) error {
	return os.Chtimes(path, time.Time{}, t)
}

// Walk calls fn for every entry below path whose name matches pattern.
// path itself is not visited. Entries are produced lazily in lexical order;
// fn may return fs.SkipDir or fs.SkipAll to prune the walk.
func (d *Directories) Walk(path, pattern string, opt SearchOption, fn fs.WalkDirFunc) error {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return pathError("walk", pattern, err)
	}

	return filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			if p == path {
				return err
			}
			return fn(p, entry, err)
		}
		if p == path {
			return nil
		}

		if matchName(pattern, entry.Name()) {
			if err := fn(p, entry, nil); err != nil {
				return err
			}
		}
		if entry.IsDir() && opt == TopDirectoryOnly {
			return fs.SkipDir
		}
		return nil
	})
}

// Watch reports changes to the entries of the directory at path until ctx
// is done.
func (d *Directories) Watch(ctx context.Context, path string, handler func(Event)) error {
	w, err := NewWatcher(d.logger)
	if err != nil {
		return err
	}
	err = w.Start(ctx, path, handler)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// matchName applies a "*" and "?" pattern to an entry name. The empty
// pattern and "*.*" match every name.
func matchName(pattern, name string) bool {
	switch pattern {
	case "", "*", "*.*":
		return true
	}
	ok, _ := filepath.Match(pattern, name)
	return ok
}
