// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package internal is internal stuff.
package internal

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// InitLog sets the default slog logger to a tint handler on stderr.
//
// Output on stdout is reserved for the inspected content.
func InitLog(verbose bool) *slog.LevelVar {
	level := &slog.LevelVar{}
	level.Set(slog.LevelInfo)
	if verbose {
		level.Set(slog.LevelDebug)
	}
	slog.SetDefault(slog.New(NewHandler(colorable.NewColorable(os.Stderr), level, !isatty.IsTerminal(os.Stderr.Fd()))))
	return level
}

// NewHandler returns a tint handler writing to w that skips zero values.
func NewHandler(w io.Writer, level slog.Leveler, noColor bool) slog.Handler {
	return tint.NewHandler(w, &tint.Options{
		Level:       level,
		TimeFormat:  "15:04:05.000", // Like time.TimeOnly plus milliseconds.
		NoColor:     noColor,
		ReplaceAttr: skipZero,
	})
}

func skipZero(groups []string, a slog.Attr) slog.Attr {
	val := a.Value.Any()
	skip := false
	switch t := val.(type) {
	case string:
		skip = t == ""
	case bool:
		skip = !t
	case uint64:
		skip = t == 0
	case int64:
		skip = t == 0
	case float64:
		skip = t == 0
	case time.Time:
		skip = t.IsZero()
	case time.Duration:
		skip = t == 0
	case nil:
		skip = true
	}
	if skip {
		return slog.Attr{}
	}
	return a
}
