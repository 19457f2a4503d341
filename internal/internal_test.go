// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package internal

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	level := &slog.LevelVar{}
	logger := slog.New(NewHandler(&buf, level, true))

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug record leaked at info level: %q", buf.String())
	}

	logger.Info("examine", "path", "a.txt", "err", "", "count", int64(0))
	got := buf.String()
	if !strings.Contains(got, "examine") || !strings.Contains(got, "path=a.txt") {
		t.Errorf("unexpected record: %q", got)
	}
	if strings.Contains(got, "err=") || strings.Contains(got, "count=") {
		t.Errorf("zero values should be dropped: %q", got)
	}

	buf.Reset()
	level.Set(slog.LevelDebug)
	logger.Debug("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug record missing after level change: %q", buf.String())
	}
}
