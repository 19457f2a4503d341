// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// read-package-json prints the package.json files of the create-anything
// scaffold.
//
// Run it from the directory containing create-anything/. A manifest that can't
// be read or parsed aborts the run.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/maruel/appinspect"
	"github.com/maruel/appinspect/internal"
	"github.com/maruel/appinspect/internal/manifest"
)

func printManifests(w io.Writer, secs []appinspect.Section) error {
	for i := range secs {
		if i != 0 {
			if _, err := io.WriteString(w, appinspect.Separator); err != nil {
				return err
			}
		}
		d, err := manifest.Load(secs[i].Path)
		if err != nil {
			return err
		}
		slog.Debug("read-package-json", "path", secs[i].Path)
		if _, err = fmt.Fprintln(w, secs[i].Header()); err != nil {
			return err
		}
		if _, err = d.WriteTo(w); err != nil {
			return err
		}
	}
	return nil
}

func mainImpl() error {
	verbose := flag.Bool("v", false, "Enable verbose logging")
	flag.Parse()
	if flag.NArg() != 0 {
		return errors.New("unknown arguments")
	}
	internal.InitLog(*verbose)
	return printManifests(os.Stdout, appinspect.Manifests)
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "read-package-json: %s\n", err)
		os.Exit(1)
	}
}
