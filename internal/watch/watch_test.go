// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package watch

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"
)

func TestWatcherReportsChangedFiles(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "shaders", "blur")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	w, err := New(root, WithDebounce(20*time.Millisecond), WithExtensions("frag", "vert"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	write := func(name, data string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("blur.frag", "a")
	write("notes.txt", "ignored")
	write("blur.frag", "b")

	select {
	case batch := <-w.Changes():
		if !slices.Contains(batch, "shaders/blur/blur.frag") {
			t.Errorf("batch = %v, want shaders/blur/blur.frag", batch)
		}
		if slices.Contains(batch, "shaders/blur/notes.txt") {
			t.Errorf("batch = %v contains a filtered extension", batch)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change batch within 5s")
	}
}

func TestWatcherClosesChangesOnCancel(t *testing.T) {
	w, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	w.Start(ctx)
	cancel()

	select {
	case _, ok := <-w.Changes():
		if ok {
			t.Error("unexpected batch after cancel")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Changes() not closed after cancel")
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestNewMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("New() on a missing root error = nil")
	}
}
