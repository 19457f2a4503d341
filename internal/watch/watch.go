// Copyright 2025 Marc-Antoine Ruel and Félix Lachapelle. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package watch calls back when one of a set of files changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// Settle is how long to wait for more events before calling back.
const Settle = 100 * time.Millisecond

// Files calls onChange every time one of paths is written, created, removed or
// renamed, until ctx is canceled.
//
// The parent directories are watched instead of the files themselves so that
// files that do not exist yet, or that are replaced atomically, are tracked.
// A parent directory that does not exist yet is picked up once it is created,
// through its nearest existing ancestor. Calls to onChange never overlap.
func Files(ctx context.Context, paths []string, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	w := watcher{w: fw, pending: map[string]struct{}{}}
	wanted := make(map[string]struct{}, len(paths))
	dirs := map[string]struct{}{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		wanted[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		w.add(ctx, d)
	}
	if len(fw.WatchList()) == 0 {
		return errors.New("no directory to watch")
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case err, ok := <-fw.Errors:
				if !ok {
					return nil
				}
				slog.WarnContext(ctx, "watch", "err", err)
			}
		}
	})
	eg.Go(func() error {
		// settle is nil while no change is pending.
		var settle <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return nil
			case ev, ok := <-fw.Events:
				if !ok {
					return nil
				}
				if ev.Has(fsnotify.Create) && w.retry(ctx) {
					// Files may have been written before the directory was watched.
					settle = time.After(Settle)
				}
				if _, ok := wanted[filepath.Clean(ev.Name)]; !ok {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
					continue
				}
				slog.DebugContext(ctx, "watch", "event", ev.Op.String(), "path", ev.Name)
				settle = time.After(Settle)
			case <-settle:
				settle = nil
				onChange()
			}
		}
	})
	return eg.Wait()
}

// watcher tracks the directories that could not be watched yet.
//
// It is only used by one goroutine at a time.
type watcher struct {
	w       *fsnotify.Watcher
	pending map[string]struct{}
}

// add watches dir. When dir does not exist, its nearest existing ancestor is
// watched instead and dir is kept pending.
func (w *watcher) add(ctx context.Context, dir string) bool {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		if _, ok := w.pending[dir]; !ok {
			slog.InfoContext(ctx, "watch", "msg", "waiting for directory", "dir", dir)
		}
		w.pending[dir] = struct{}{}
		w.addAncestor(ctx, dir)
		return false
	}
	delete(w.pending, dir)
	if err := w.w.Add(dir); err != nil {
		slog.WarnContext(ctx, "watch", "msg", "can't watch directory", "dir", dir, "err", err)
		return false
	}
	return true
}

func (w *watcher) addAncestor(ctx context.Context, dir string) {
	for a := filepath.Dir(dir); ; {
		if _, err := os.Stat(a); err == nil {
			if err = w.w.Add(a); err != nil {
				slog.WarnContext(ctx, "watch", "msg", "can't watch directory", "dir", a, "err", err)
			}
			return
		}
		parent := filepath.Dir(a)
		if parent == a {
			return
		}
		a = parent
	}
}

// retry tries the pending directories again. It returns true if one of them
// is now watched.
func (w *watcher) retry(ctx context.Context) bool {
	found := false
	for d := range w.pending {
		if w.add(ctx, d) {
			slog.DebugContext(ctx, "watch", "msg", "directory appeared", "dir", d)
			found = true
		}
	}
	return found
}
