// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// examine-app prints the beginning of the key source files of the
// create-anything scaffold.
//
// Run it from the directory containing create-anything/.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/maruel/appinspect"
	"github.com/maruel/appinspect/internal"
	"github.com/maruel/appinspect/internal/textdump"
	"github.com/maruel/appinspect/internal/watch"
)

func dump(w io.Writer) error {
	return textdump.DumpAll(w, appinspect.Sources)
}

func mainImpl() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer cancel()
	verbose := flag.Bool("v", false, "Enable verbose logging")
	watchFlag := flag.Bool("watch", false, "Print the files again every time one of them changes")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unknown arguments")
	}
	internal.InitLog(*verbose)

	if err := dump(os.Stdout); err != nil {
		return err
	}
	if !*watchFlag {
		return nil
	}
	return watchSources(ctx, os.Stdout)
}

// watchSources prints the sources to w again every time one of them changes,
// until ctx is canceled or printing fails.
func watchSources(ctx context.Context, w io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	paths := make([]string, 0, len(appinspect.Sources))
	for _, s := range appinspect.Sources {
		paths = append(paths, s.Path)
	}
	slog.InfoContext(ctx, "examine-app", "msg", "watching for changes", "files", len(paths))
	// errPrint is only touched by the callback, which never runs concurrently,
	// and read after Files returned.
	var errPrint error
	err := watch.Files(ctx, paths, func() {
		slog.DebugContext(ctx, "examine-app", "msg", "change detected")
		_, err := io.WriteString(w, appinspect.Separator)
		if err == nil {
			err = dump(w)
		}
		if err != nil {
			slog.ErrorContext(ctx, "examine-app", "msg", "failed to print", "err", err)
			errPrint = err
			cancel()
		}
	})
	if errPrint != nil {
		return errPrint
	}
	return err
}

func main() {
	if err := mainImpl(); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "examine-app: %s\n", err)
		os.Exit(1)
	}
}
