// Copyright 2025 Hostkit Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");

package filesys

import (
	"bufio"
	"errors"
	"io"
	"os"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineSize bounds a single line read by ReadLines and ReadAllLines.
const maxLineSize = 16 << 20

// TextReader is a buffered, BOM-aware reader over an open file.
type TextReader struct {
	*bufio.Reader
	file *os.File
}

// Close closes the underlying file.
func (r *TextReader) Close() error {
	return r.file.Close()
}

// TextWriter is a buffered writer over an open file.
type TextWriter struct {
	*bufio.Writer
	file *os.File
}

// Close flushes pending output and closes the underlying file.
func (w *TextWriter) Close() error {
	return errors.Join(w.Flush(), w.file.Close())
}

// bomDecoder decodes UTF-8 by default and switches to UTF-16 when the input
// starts with a UTF-16 byte order mark. Any leading BOM is dropped.
func bomDecoder() transform.Transformer {
	return unicode.BOMOverride(unicode.UTF8.NewDecoder())
}

func decodeText(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == nil {
		return transform.NewReader(r, bomDecoder())
	}
	return enc.NewDecoder().Reader(r)
}

func encodeText(s string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

func scanLines(r io.Reader, fn func(line string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func newReader(r io.Reader) *bufio.Reader {
	return bufio.NewReader(r)
}

func newWriter(w io.Writer) *bufio.Writer {
	return bufio.NewWriter(w)
}
