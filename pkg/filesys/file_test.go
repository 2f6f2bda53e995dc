package filesys

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func newTestFiles() *Files {
	return NewFiles(zerolog.Nop())
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
}

func TestFiles_TextRoundTrip(t *testing.T) {
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "notes.txt")

	require.NoError(t, f.WriteAllText(path, "hello"))
	require.NoError(t, f.AppendAllText(path, ", world"))

	got, err := f.ReadAllText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello, world", got)

	data, err := f.ReadAllBytes(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello, world"), data)
}

func TestFiles_AppendCreatesMissingFile(t *testing.T) {
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "new.log")

	require.NoError(t, f.AppendAllLines(path, []string{"one"}))
	require.NoError(t, f.AppendAllLines(path, []string{"two", "three"}))

	lines, err := f.ReadAllLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, lines)
}

func TestFiles_Lines(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()

	t.Run("WriteAllLinesTerminatesEachLine", func(t *testing.T) {
		path := filepath.Join(dir, "lines.txt")
		require.NoError(t, f.WriteAllLines(path, []string{"a", "b"}))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a\nb\n", string(raw))
	})

	t.Run("ReadAllLinesHandlesCRLF", func(t *testing.T) {
		path := filepath.Join(dir, "crlf.txt")
		writeFile(t, path, "a\r\nb\r\n\r\nc")

		lines, err := f.ReadAllLines(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "", "c"}, lines)
	})

	t.Run("EmptyFileHasNoLines", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		writeFile(t, path, "")

		lines, err := f.ReadAllLines(path)
		require.NoError(t, err)
		assert.Empty(t, lines)
		assert.NotNil(t, lines)
	})

	t.Run("ReadLinesStopsOnError", func(t *testing.T) {
		path := filepath.Join(dir, "stop.txt")
		writeFile(t, path, "1\n2\n3\n")
		stop := errors.New("stop")

		var seen []string
		err := f.ReadLines(path, func(line string) error {
			seen = append(seen, line)
			if line == "2" {
				return stop
			}
			return nil
		})
		assert.ErrorIs(t, err, stop)
		assert.Equal(t, []string{"1", "2"}, seen)
	})
}

func TestFiles_ReadAllTextHonoursBOM(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()

	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{"NoBOM", []byte("plain"), "plain"},
		{"UTF8BOM", []byte("\xef\xbb\xbfutf8"), "utf8"},
		{"UTF16LE", []byte{0xff, 0xfe, 'h', 0, 'i', 0}, "hi"},
		{"UTF16BE", []byte{0xfe, 0xff, 0, 'h', 0, 'i'}, "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			require.NoError(t, os.WriteFile(path, tt.raw, 0o644))

			got, err := f.ReadAllText(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFiles_Encoded(t *testing.T) {
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "latin1.txt")

	require.NoError(t, f.WriteAllTextEncoded(path, "café", charmap.ISO8859_1))
	require.NoError(t, f.AppendAllTextEncoded(path, " été", charmap.ISO8859_1))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\xe9 \xe9t\xe9"), raw)

	got, err := f.ReadAllTextEncoded(path, charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "café été", got)
}

func TestFiles_Streams(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.txt")

	w, err := f.CreateText(path)
	require.NoError(t, err)
	_, err = w.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = f.AppendText(path)
	require.NoError(t, err)
	_, err = w.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := f.OpenText(path)
	require.NoError(t, err)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "first\n", line)
	require.NoError(t, r.Close())

	out, err := f.OpenWrite(path)
	require.NoError(t, err)
	_, err = out.WriteString("FIRST")
	require.NoError(t, err)
	require.NoError(t, out.Close())

	in, err := f.OpenRead(path)
	require.NoError(t, err)
	data, err := io.ReadAll(in)
	require.NoError(t, err)
	require.NoError(t, in.Close())
	assert.Equal(t, "FIRST\nsecond\n", string(data), "OpenWrite keeps existing contents")

	created, err := f.Create(filepath.Join(dir, "blank.bin"))
	require.NoError(t, err)
	require.NoError(t, created.Close())
	assert.True(t, f.Exists(created.Name()))

	opened, err := f.Open(filepath.Join(dir, "excl.bin"), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	require.NoError(t, err)
	require.NoError(t, opened.Close())
	_, err = f.Open(filepath.Join(dir, "excl.bin"), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	assert.ErrorIs(t, err, fs.ErrExist)
}

func TestFiles_Exists(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	path := filepath.Join(dir, "here.txt")
	writeFile(t, path, "x")

	assert.True(t, f.Exists(path))
	assert.False(t, f.Exists(filepath.Join(dir, "missing.txt")))
	assert.False(t, f.Exists(dir), "directories are not files")
	assert.False(t, f.Exists(""))
}

func TestFiles_Copy(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	writeFile(t, src, "payload")

	require.NoError(t, f.Copy(src, dst, false))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(got))

	err = f.Copy(src, dst, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExist)
	assert.ErrorIs(t, err, fs.ErrExist)

	writeFile(t, src, "v2")
	require.NoError(t, f.Copy(src, dst, true))
	got, err = os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(got))

	err = f.Copy(dir, filepath.Join(dir, "other"), false)
	assert.ErrorIs(t, err, ErrNotFile)

	err = f.Copy(filepath.Join(dir, "missing"), dst, true)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFiles_Delete(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	path := filepath.Join(dir, "gone.txt")
	writeFile(t, path, "x")

	require.NoError(t, f.Delete(path))
	assert.NoFileExists(t, path)

	assert.NoError(t, f.Delete(path), "missing file is not an error")
	assert.ErrorIs(t, f.Delete(dir), ErrNotFile)
}

func TestFiles_Move(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "moved")

	require.NoError(t, f.Move(src, dst))
	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "moved", string(got))

	writeFile(t, src, "again")
	err = f.Move(src, dst)
	assert.ErrorIs(t, err, ErrExist)
	assert.FileExists(t, src, "failed move leaves source in place")
}

func TestFiles_Replace(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	src := filepath.Join(dir, "new.conf")
	dst := filepath.Join(dir, "app.conf")
	backup := filepath.Join(dir, "app.conf.bak")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	require.NoError(t, f.Replace(src, dst, backup))
	assert.NoFileExists(t, src)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	got, err = os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))

	t.Run("WithoutBackup", func(t *testing.T) {
		writeFile(t, src, "newer")
		require.NoError(t, f.Replace(src, dst, ""))
		got, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "newer", string(got))
	})

	t.Run("MissingDestination", func(t *testing.T) {
		writeFile(t, src, "x")
		err := f.Replace(src, filepath.Join(dir, "absent"), "")
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.FileExists(t, src)
	})
}

func TestFiles_Replace_RejectsNonRegularFiles(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	file := filepath.Join(dir, "app.conf")
	sub := filepath.Join(dir, "conf.d")
	backup := filepath.Join(dir, "app.conf.bak")
	writeFile(t, file, "old")
	require.NoError(t, os.Mkdir(sub, 0o755))

	tests := []struct {
		name     string
		src, dst string
		badPath  string
	}{
		{name: "directory source", src: sub, dst: file, badPath: sub},
		{name: "directory destination", src: file, dst: sub, badPath: sub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.Replace(tt.src, tt.dst, backup)
			require.ErrorIs(t, err, ErrNotFile)

			var pe *PathError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "replace", pe.Op)
			assert.Equal(t, tt.badPath, pe.Path)

			got, err := os.ReadFile(file)
			require.NoError(t, err)
			assert.Equal(t, "old", string(got))
			assert.DirExists(t, sub)
			assert.NoFileExists(t, backup)
		})
	}
}

func TestFiles_Replace_RestoresBackupWhenMoveFails(t *testing.T) {
	f := newTestFiles()
	dir := t.TempDir()
	src := filepath.Join(dir, "new.conf")
	dst := filepath.Join(dir, "app.conf")
	backup := filepath.Join(dir, "app.conf.bak")
	writeFile(t, src, "new")
	writeFile(t, dst, "old")

	failure := errors.New("device busy")
	orig := rename
	t.Cleanup(func() { rename = orig })
	rename = func(from, to string) error {
		if from == src {
			return failure
		}
		return orig(from, to)
	}

	err := f.Replace(src, dst, backup)
	require.ErrorIs(t, err, failure)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "old", string(got))
	assert.NoFileExists(t, backup)
	assert.FileExists(t, src)
}

func TestFiles_Times(t *testing.T) {
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "stamp.txt")
	writeFile(t, path, "x")

	when := time.Date(2020, time.March, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, f.SetLastWriteTime(path, when))

	utc, err := f.LastWriteTimeUTC(path)
	require.NoError(t, err)
	assert.True(t, when.Equal(utc), "got %v", utc)
	assert.Equal(t, time.UTC, utc.Location())

	local, err := f.LastWriteTime(path)
	require.NoError(t, err)
	assert.True(t, when.Equal(local))
	assert.Equal(t, time.Local, local.Location())

	require.NoError(t, f.SetLastAccessTime(path, when.Add(48*time.Hour)))
	after, err := f.LastWriteTimeUTC(path)
	require.NoError(t, err)
	assert.True(t, when.Equal(after), "setting access time keeps modification time")

	_, err = f.LastWriteTime(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestFiles_Mode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not portable")
	}
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "script.sh")
	writeFile(t, path, "#!/bin/sh\n")

	require.NoError(t, f.SetMode(path, 0o750))
	mode, err := f.Mode(path)
	require.NoError(t, err)
	assert.Equal(t, fs.FileMode(0o750), mode.Perm())
	assert.True(t, mode.IsRegular())
}

func TestFiles_Lock(t *testing.T) {
	f := newTestFiles()
	path := filepath.Join(t.TempDir(), "app.lock")

	held, err := f.Lock(context.Background(), path)
	require.NoError(t, err)

	_, err = f.TryLock(path)
	assert.ErrorIs(t, err, ErrLocked)

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	_, err = f.Lock(ctx, path)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, held.Unlock())

	again, err := f.TryLock(path)
	require.NoError(t, err)
	require.NoError(t, again.Unlock())
}
