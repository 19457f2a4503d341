// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package textdump

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/maruel/appinspect"
)

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	hello := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(hello, []byte("hello"), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	binary := filepath.Join(dir, "binary.bin")
	if err := os.WriteFile(binary, []byte{0xff, 0xfe, 0x00}, 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if got := ReadFile(hello); got != "hello" {
		t.Errorf("Expected content: %q, got: %q", "hello", got)
	}

	missing := filepath.Join(dir, "missing.txt")
	want := "Error reading " + missing + ": "
	got := ReadFile(missing)
	if !strings.HasPrefix(got, want) {
		t.Errorf("Expected prefix %q, got: %q", want, got)
	}
	if strings.Count(got, missing) != 1 {
		t.Errorf("Path should appear once: %q", got)
	}

	if got := ReadFile(binary); got != "Error reading "+binary+": invalid UTF-8 text" {
		t.Errorf("Unexpected result for invalid UTF-8: %q", got)
	}

	if got := ReadFile(dir); !strings.HasPrefix(got, "Error reading "+dir+": ") {
		t.Errorf("Reading a directory should fail, got: %q", got)
	}
}

func TestReadFileRelative(t *testing.T) {
	t.Chdir(t.TempDir())
	got := ReadFile("missing.txt")
	if want := "Error reading missing.txt: "; !strings.HasPrefix(got, want) || len(got) == len(want) {
		t.Errorf("Expected %q followed by a cause, got: %q", want, got)
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 1001)
	exact := strings.Repeat("b", 1000)
	// 600 runes, 1200 bytes.
	wide := strings.Repeat("é", 600)
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short", "hello", 1000, "hello"},
		{"empty", "", 1000, ""},
		{"exact", exact, 1000, exact},
		{"long", long, 1000, long[:1000] + Ellipsis},
		{"default", long, 0, long[:1000] + Ellipsis},
		{"negative", exact, -1, exact},
		{"small", "abcdef", 3, "abc..."},
		{"runes under limit", wide, 1000, wide},
		{"runes over limit", wide, 500, strings.Repeat("é", 500) + Ellipsis},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.limit); got != tc.want {
				t.Errorf("Truncate(%d chars, %d) = %d chars, want %d chars", len(tc.in), tc.limit, len(got), len(tc.want))
			}
		})
	}
}

func TestDumpAll(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(a, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	b := filepath.Join(dir, "b.txt")
	if err := os.WriteFile(b, []byte("0123456789"), 0o644); err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(dir, "missing.txt")
	secs := []appinspect.Section{
		{Title: "A", Path: a},
		{Title: "B", Path: b, Limit: 4},
		{Title: "C", Path: missing},
	}
	var buf bytes.Buffer
	if err := DumpAll(&buf, secs); err != nil {
		t.Fatal(err)
	}
	sep := appinspect.Separator
	want := "=== A ===\nhello\n" + sep +
		"=== B ===\n0123...\n" + sep +
		"=== C ===\nError reading " + missing + ": "
	if got := buf.String(); !strings.HasPrefix(got, want) {
		t.Errorf("Unexpected output.\nExpected prefix:\n%s\nGot:\n%s", want, got)
	}

	// Idempotence.
	var again bytes.Buffer
	if err := DumpAll(&again, secs); err != nil {
		t.Fatal(err)
	}
	if again.String() != buf.String() {
		t.Error("Second dump differs from the first one")
	}
}
