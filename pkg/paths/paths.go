// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package paths provides an injectable path-manipulation Provider and the
// per-user directories hostkit reads its configuration from.
//
// Provider follows the hosting platform's path rules rather than
// filepath.Clean: paths are combined and split without normalisation, an
// extension is the text from the last '.' after the last separator, and a
// trailing '.' is not an extension.
package paths

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Provider manipulates path strings and exposes temp-file helpers.
type Provider interface {
	ChangeExtension(path, extension string) string
	Combine(paths ...string) string
	DirectoryName(path string) string
	Extension(path string) string
	FileName(path string) string
	FileNameWithoutExtension(path string) string
	FullPath(path string) (string, error)
	InvalidFileNameChars() []rune
	InvalidPathChars() []rune
	PathRoot(path string) string
	RandomFileName() string
	TempFileName() (string, error)
	TempPath() string
	HasExtension(path string) bool
	IsPathFullyQualified(path string) bool
	IsPathRooted(path string) bool
}

// System is the default Provider for the running OS.
type System struct{}

// NewSystem returns the default Provider.
func NewSystem() System {
	return System{}
}

// ChangeExtension replaces the extension of path; a missing leading '.' is
// added. An empty extension leaves a trailing '.', so "report.txt" becomes
// "report.".
func (s System) ChangeExtension(path, extension string) string {
	if path == "" {
		return ""
	}
	base := path
	if dot := dotIndex(path); dot >= 0 {
		base = path[:dot]
	}
	if !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return base + extension
}

// Combine joins the non-empty paths with the OS separator. A rooted element
// discards everything before it.
func (s System) Combine(paths ...string) string {
	var out string
	for _, p := range paths {
		if p == "" {
			continue
		}
		if s.IsPathRooted(p) || out == "" {
			out = p
			continue
		}
		if !isSeparator(out[len(out)-1]) {
			out += string(filepath.Separator)
		}
		out += p
	}
	return out
}

// DirectoryName returns path up to its last separator. A root or a bare
// file name has no directory.
func (s System) DirectoryName(path string) string {
	root := s.PathRoot(path)
	if path == "" || path == root {
		return ""
	}
	i := lastSeparator(path)
	if i < 0 {
		return ""
	}
	if i < len(root) {
		return root
	}
	dir := path[:i]
	// Collapse a run of separators that ends the directory part.
	for len(dir) > len(root) && isSeparator(dir[len(dir)-1]) {
		dir = dir[:len(dir)-1]
	}
	return dir
}

func (s System) Extension(path string) string {
	if dot := extensionIndex(path); dot >= 0 {
		return path[dot:]
	}
	return ""
}

func (s System) FileName(path string) string {
	return path[lastSeparator(path)+1:]
}

func (s System) FileNameWithoutExtension(path string) string {
	name := s.FileName(path)
	if dot := extensionIndex(name); dot >= 0 {
		return name[:dot]
	}
	return name
}

// FullPath delegates to [filepath.Abs].
func (s System) FullPath(path string) (string, error) {
	return filepath.Abs(path)
}

func (s System) InvalidFileNameChars() []rune {
	if runtime.GOOS == "windows" {
		chars := controlChars()
		return append(chars, '"', '<', '>', '|', ':', '*', '?', '\\', '/')
	}
	return []rune{0, '/'}
}

func (s System) InvalidPathChars() []rune {
	if runtime.GOOS == "windows" {
		return append(controlChars(), '|')
	}
	return []rune{0}
}

// PathRoot returns the volume and leading separator of path, if any.
func (s System) PathRoot(path string) string {
	vol := filepath.VolumeName(path)
	rest := path[len(vol):]
	if rest != "" && isSeparator(rest[0]) {
		return vol + rest[:1]
	}
	return vol
}

const randomAlphabet = "abcdefghijklmnopqrstuvwxyz012345"

// RandomFileName returns a cryptographically random name of the form
// xxxxxxxx.xxx. No file is created.
func (s System) RandomFileName() string {
	var buf [11]byte
	_, _ = rand.Read(buf[:])
	name := make([]byte, 0, 12)
	for i, b := range buf {
		if i == 8 {
			name = append(name, '.')
		}
		name = append(name, randomAlphabet[b&31])
	}
	return string(name)
}

// TempFileName creates an empty, uniquely named file in the temp directory
// and returns its full path.
func (s System) TempFileName() (string, error) {
	f, err := os.CreateTemp("", "tmp*.tmp")
	if err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return f.Name(), nil
}

// TempPath returns [os.TempDir] with a trailing separator.
func (s System) TempPath() string {
	dir := os.TempDir()
	if dir != "" && !isSeparator(dir[len(dir)-1]) {
		dir += string(filepath.Separator)
	}
	return dir
}

func (s System) HasExtension(path string) bool {
	return extensionIndex(path) >= 0
}

// IsPathFullyQualified reports whether path is absolute and does not depend
// on the current drive or directory.
func (s System) IsPathFullyQualified(path string) bool {
	return filepath.IsAbs(path)
}

// IsPathRooted reports whether path starts with a separator or a volume.
func (s System) IsPathRooted(path string) bool {
	if path == "" {
		return false
	}
	return isSeparator(path[0]) || filepath.VolumeName(path) != ""
}

// extensionIndex returns the index of the '.' that starts the extension of
// path, or -1. A '.' in the final position does not start an extension.
func extensionIndex(path string) int {
	dot := dotIndex(path)
	if dot == len(path)-1 {
		return -1
	}
	return dot
}

// dotIndex returns the index of the last '.' in the final path element.
func dotIndex(path string) int {
	for i := len(path) - 1; i >= 0; i-- {
		c := path[i]
		if c == '.' {
			return i
		}
		if isSeparator(c) || (c == ':' && runtime.GOOS == "windows") {
			return -1
		}
	}
	return -1
}

func lastSeparator(path string) int {
	for i := len(path) - 1; i >= 0; i-- {
		if isSeparator(path[i]) {
			return i
		}
	}
	if vol := filepath.VolumeName(path); vol != "" {
		return len(vol) - 1
	}
	return -1
}

func isSeparator(c byte) bool {
	return os.IsPathSeparator(c)
}

func controlChars() []rune {
	chars := make([]rune, 0, 41)
	for c := rune(0); c < 32; c++ {
		chars = append(chars, c)
	}
	return chars
}
