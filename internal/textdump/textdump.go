// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package textdump prints the beginning of text files for a quick look.
package textdump

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/maruel/appinspect"
)

// DefaultLimit is the number of characters displayed when a Section has no
// Limit.
const DefaultLimit = 1000

// Ellipsis is appended to truncated content.
const Ellipsis = "..."

var errInvalidUTF8 = errors.New("invalid UTF-8 text")

// ReadFile returns the content of a text file.
//
// It never fails: on error the returned string describes the failure as
// "Error reading <path>: <cause>".
func ReadFile(path string) string {
	content, err := readFile(path)
	if err != nil {
		slog.Debug("textdump", "msg", "failed to read", "path", path, "err", err)
		return fmt.Sprintf("Error reading %s: %v", path, cause(err))
	}
	return content
}

func readFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(content) {
		return "", errInvalidUTF8
	}
	return string(content), nil
}

// cause strips the operation and path that os errors repeat.
func cause(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

// Truncate returns s cut to limit characters followed by Ellipsis, or s
// itself when it is short enough.
//
// A limit of 0 or less means DefaultLimit.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(s) <= limit {
		// Fast path: a string never has more runes than bytes.
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + Ellipsis
		}
		n++
	}
	return s
}

// Dump writes the section header followed by the truncated file content.
//
// Only errors from w are returned.
func Dump(w io.Writer, sec *appinspect.Section) error {
	content := Truncate(ReadFile(sec.Path), sec.Limit)
	_, err := fmt.Fprintf(w, "%s\n%s\n", sec.Header(), content)
	return err
}

// DumpAll dumps every section in order with appinspect.Separator in between.
func DumpAll(w io.Writer, secs []appinspect.Section) error {
	for i := range secs {
		if i != 0 {
			if _, err := io.WriteString(w, appinspect.Separator); err != nil {
				return err
			}
		}
		if err := Dump(w, &secs[i]); err != nil {
			return err
		}
	}
	return nil
}
