// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package watch reports debounced file changes below a directory tree.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period before a batch of changes is emitted.
const DefaultDebounce = 150 * time.Millisecond

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithExtensions restricts reported files to the given extensions
// (without dots).
func WithExtensions(exts ...string) Option {
	return func(w *Watcher) {
		w.exts = exts
	}
}

// WithLogger sets the logger for watcher diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// Watcher watches a directory tree and emits batches of changed files,
// relative to the root, slash-separated and sorted.
type Watcher struct {
	root     string
	debounce time.Duration
	exts     []string
	log      *slog.Logger

	fw      *fsnotify.Watcher
	changes chan []string
	stop    sync.Once
}

// New creates a watcher for root and every directory below it.
func New(root string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create watcher: %w", err)
	}
	w := &Watcher{
		root:     root,
		debounce: DefaultDebounce,
		log:      slog.New(slog.DiscardHandler),
		fw:       fw,
		changes:  make(chan []string, 1),
	}
	for _, opt := range opts {
		opt(w)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			w.log.Debug("watch: adding directory", "path", path)
			return fw.Add(path)
		}
		return nil
	})
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch: add %s: %w", root, err)
	}
	return w, nil
}

// Changes returns the channel of change batches. It is closed when the
// watcher stops.
func (w *Watcher) Changes() <-chan []string { return w.changes }

// Start runs the event loop until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close stops watching.
func (w *Watcher) Close() error {
	var err error
	w.stop.Do(func() { err = w.fw.Close() })
	return err
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.changes)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := make(map[string]struct{})

	for {
		select {
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			rel, keep := w.relevant(ev)
			if !keep {
				continue
			}
			if ev.Has(fsnotify.Create) {
				w.addIfDir(ev.Name)
			}
			w.log.Debug("watch: change", "file", rel, "op", ev.Op.String())
			pending[rel] = struct{}{}
			timer.Reset(w.debounce)

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch: watcher error", "err", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			batch := make([]string, 0, len(pending))
			for p := range pending {
				batch = append(batch, p)
			}
			slices.Sort(batch)
			clear(pending)
			select {
			case w.changes <- batch:
			case <-ctx.Done():
				_ = w.Close()
				return
			}

		case <-ctx.Done():
			_ = w.Close()
			return
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) (string, bool) {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return "", false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if len(w.exts) > 0 {
		ext := strings.TrimPrefix(filepath.Ext(rel), ".")
		if !slices.Contains(w.exts, ext) {
			// New directories still need to be watched.
			if ev.Has(fsnotify.Create) {
				w.addIfDir(ev.Name)
			}
			return "", false
		}
	}
	return rel, true
}

func (w *Watcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.fw.Add(path); err != nil {
		w.log.Warn("watch: add directory", "path", path, "err", err)
	}
}
