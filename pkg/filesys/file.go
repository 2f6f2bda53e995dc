// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package filesys puts file and directory operations behind interfaces so
// code that touches the disk can be tested against a fake.
//
// The default implementations forward to the os package and report the
// platform's errors unchanged, wrapped in *PathError only where hostkit adds
// a rule of its own (copy and move targets, non-regular files).
package filesys

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"golang.org/x/text/encoding"
)

const (
	filePerm       = 0o644
	lockRetryDelay = 50 * time.Millisecond
)

// rename is swapped out in tests to fail a single step of Replace.
var rename = os.Rename

// Unlocker releases an advisory lock.
type Unlocker interface {
	Unlock() error
}

// FileProvider covers the file operations an application performs.
type FileProvider interface {
	AppendAllLines(path string, lines []string) error
	AppendAllText(path, contents string) error
	AppendAllTextEncoded(path, contents string, enc encoding.Encoding) error
	AppendText(path string) (*TextWriter, error)
	Copy(src, dst string, overwrite bool) error
	Create(path string) (*os.File, error)
	CreateText(path string) (*TextWriter, error)
	Delete(path string) error
	Exists(path string) bool
	LastWriteTime(path string) (time.Time, error)
	LastWriteTimeUTC(path string) (time.Time, error)
	Lock(ctx context.Context, path string) (Unlocker, error)
	Mode(path string) (fs.FileMode, error)
	Move(src, dst string) error
	Open(path string, flag int, perm fs.FileMode) (*os.File, error)
	OpenRead(path string) (*os.File, error)
	OpenText(path string) (*TextReader, error)
	OpenWrite(path string) (*os.File, error)
	ReadAllBytes(path string) ([]byte, error)
	ReadAllLines(path string) ([]string, error)
	ReadAllText(path string) (string, error)
	ReadAllTextEncoded(path string, enc encoding.Encoding) (string, error)
	ReadLines(path string, fn func(line string) error) error
	Replace(src, dst, backup string) error
	SetLastAccessTime(path string, t time.Time) error
	SetLastWriteTime(path string, t time.Time) error
	SetMode(path string, mode fs.FileMode) error
	TryLock(path string) (Unlocker, error)
	WriteAllBytes(path string, data []byte) error
	WriteAllLines(path string, lines []string) error
	WriteAllText(path, contents string) error
	WriteAllTextEncoded(path, contents string, enc encoding.Encoding) error
}

// Files is the os-backed FileProvider.
type Files struct {
	logger zerolog.Logger
}

// NewFiles returns a FileProvider backed by the os package.
func NewFiles(logger zerolog.Logger) *Files {
	return &Files{logger: logger.With().Str("component", "filesys.files").Logger()}
}

func (f *Files) AppendAllLines(path string, lines []string) error {
	return f.appendBytes(path, joinLines(lines))
}

func (f *Files) AppendAllText(path, contents string) error {
	return f.appendBytes(path, []byte(contents))
}

func (f *Files) AppendAllTextEncoded(path, contents string, enc encoding.Encoding) error {
	data, err := encodeText(contents, enc)
	if err != nil {
		return err
	}
	return f.appendBytes(path, data)
}

func (f *Files) appendBytes(path string, data []byte) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return err
	}
	_, err = file.Write(data)
	return errors.Join(err, file.Close())
}

func (f *Files) AppendText(path string) (*TextWriter, error) {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return nil, err
	}
	return &TextWriter{Writer: newWriter(file), file: file}, nil
}

// Copy copies the contents and permission bits of src to dst. Without
// overwrite an existing dst fails with ErrExist.
func (f *Files) Copy(src, dst string, overwrite bool) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return pathError("copy", src, ErrNotFile)
	}

	flag := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flag = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	out, err := os.OpenFile(dst, flag, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return pathError("copy", dst, ErrExist)
		}
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	f.logger.Debug().Str("src", src).Str("dst", dst).Int64("bytes", info.Size()).Msg("Copied file")
	return nil
}

func (f *Files) Create(path string) (*os.File, error) {
	return os.Create(path)
}

func (f *Files) CreateText(path string) (*TextWriter, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &TextWriter{Writer: newWriter(file), file: file}, nil
}

// Delete removes the file at path. A missing file is not an error.
func (f *Files) Delete(path string) error {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return pathError("delete", path, ErrNotFile)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Exists reports whether path names an existing regular file. Errors,
// directories and the empty path all report false.
func (f *Files) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (f *Files) LastWriteTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().Local(), nil
}

func (f *Files) LastWriteTimeUTC(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime().UTC(), nil
}

// Lock takes an exclusive advisory lock on path, creating the file if
// needed, and retries until the lock is held or ctx is done.
func (f *Files) Lock(ctx context.Context, path string) (Unlocker, error) {
	fl := flock.New(path)
	ok, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pathError("lock", path, ctx.Err())
	}
	return fl, nil
}

func (f *Files) Mode(path string) (fs.FileMode, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Mode(), nil
}

// Move renames src to dst. dst must not exist. Moves across devices fall
// back to copy and delete.
func (f *Files) Move(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return pathError("move", src, ErrNotFile)
	}
	if _, err := os.Lstat(dst); err == nil {
		return pathError("move", dst, ErrExist)
	}

	err = rename(src, dst)
	if errors.Is(err, syscall.EXDEV) {
		if err := f.Copy(src, dst, false); err != nil {
			return err
		}
		err = os.Remove(src)
	}
	if err != nil {
		return err
	}

	f.logger.Debug().Str("src", src).Str("dst", dst).Msg("Moved file")
	return nil
}

func (f *Files) Open(path string, flag int, perm fs.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

func (f *Files) OpenRead(path string) (*os.File, error) {
	return os.Open(path)
}

func (f *Files) OpenText(path string) (*TextReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return &TextReader{Reader: newReader(decodeText(file, nil)), file: file}, nil
}

// OpenWrite opens path for writing, creating it if missing. Existing
// contents are kept.
func (f *Files) OpenWrite(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE, filePerm)
}

func (f *Files) ReadAllBytes(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// ReadAllLines returns the lines of path without their terminators. A
// trailing newline does not produce an empty last line.
func (f *Files) ReadAllLines(path string) ([]string, error) {
	lines := []string{}
	err := f.ReadLines(path, func(line string) error {
		lines = append(lines, line)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// ReadAllText reads path as UTF-8, honouring a UTF-8 or UTF-16 byte order
// mark when present.
func (f *Files) ReadAllText(path string) (string, error) {
	return f.ReadAllTextEncoded(path, nil)
}

func (f *Files) ReadAllTextEncoded(path string, enc encoding.Encoding) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(decodeText(file, enc))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLines calls fn for each line of path in order. Reading stops at the
// first error fn returns.
func (f *Files) ReadLines(path string, fn func(line string) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return scanLines(decodeText(file, nil), fn)
}

// Replace moves src over dst. When backup is set the previous dst is kept
// there, replacing any earlier backup. Both src and dst must be regular
// files. If src cannot be moved into place the backup is renamed back so
// dst is left as it was.
func (f *Files) Replace(src, dst, backup string) error {
	for _, path := range []string{src, dst} {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return pathError("replace", path, ErrNotFile)
		}
	}

	if backup != "" {
		if err := rename(dst, backup); err != nil {
			return err
		}
	}
	if err := rename(src, dst); err != nil {
		if backup == "" {
			return err
		}
		if rerr := rename(backup, dst); rerr != nil {
			f.logger.Error().Err(rerr).Str("dst", dst).Str("backup", backup).Msg("Failed to restore file from backup")
			return errors.Join(err, pathError("restore", dst, rerr))
		}
		f.logger.Debug().Str("dst", dst).Str("backup", backup).Msg("Restored file from backup")
		return err
	}

	f.logger.Debug().Str("src", src).Str("dst", dst).Str("backup", backup).Msg("Replaced file")
	return nil
}

// SetLastAccessTime sets the access time of path and leaves the
// modification time untouched.
func (f *Files) SetLastAccessTime(path string, t time.Time) error {
	return os.Chtimes(path, t, time.Time{})
}

// SetLastWriteTime sets the modification time of path and leaves the
// access time untouched.
func (f *Files) SetLastWriteTime(path string, t time.Time) error {
	return os.Chtimes(path, time.Time{}, t)
}

func (f *Files) SetMode(path string, mode fs.FileMode) error {
	return os.Chmod(path, mode)
}

// TryLock makes one attempt at an exclusive advisory lock on path. It
// returns ErrLocked when the lock is held elsewhere.
func (f *Files) TryLock(path string) (Unlocker, error) {
	fl := flock.New(path)
	ok, err := fl.TryLock()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pathError("lock", path, ErrLocked)
	}
	return fl, nil
}

func (f *Files) WriteAllBytes(path string, data []byte) error {
	return os.WriteFile(path, data, filePerm)
}

func (f *Files) WriteAllLines(path string, lines []string) error {
	return os.WriteFile(path, joinLines(lines), filePerm)
}

func (f *Files) WriteAllText(path, contents string) error {
	return os.WriteFile(path, []byte(contents), filePerm)
}

func (f *Files) WriteAllTextEncoded(path, contents string, enc encoding.Encoding) error {
	data, err := encodeText(contents, enc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, filePerm)
}

// joinLines terminates every line with "\n".
func joinLines(lines []string) []byte {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
