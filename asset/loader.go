// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds the number of loads running at once.
const DefaultConcurrency = 4

// LoaderOption configures a Loader.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	concurrency int
}

// WithConcurrency sets the maximum number of concurrent loads.
// Values below 1 are ignored.
func WithConcurrency(n int) LoaderOption {
	return func(o *loaderOptions) {
		if n >= 1 {
			o.concurrency = n
		}
	}
}

// Loader reads and decodes resources below a root file system.
//
// Start methods (Bytes, Text, Image, Font) are meant to be called from a
// single goroutine; they may block while the concurrency limit is reached.
// Wait may be called from the same goroutine once all loads are started.
type Loader struct {
	fsys    fs.FS
	group   errgroup.Group
	pending atomic.Int64
}

// NewLoader returns a loader reading from fsys.
func NewLoader(fsys fs.FS, opts ...LoaderOption) *Loader {
	o := loaderOptions{concurrency: DefaultConcurrency}
	for _, opt := range opts {
		opt(&o)
	}
	l := &Loader{fsys: fsys}
	l.group.SetLimit(o.concurrency)
	return l
}

// NewDirLoader returns a loader rooted at an OS directory.
func NewDirLoader(dir string, opts ...LoaderOption) *Loader {
	return NewLoader(os.DirFS(dir), opts...)
}

// FS returns the root file system.
func (l *Loader) FS() fs.FS { return l.fsys }

// Pending returns the number of loads that have not completed.
func (l *Loader) Pending() int { return int(l.pending.Load()) }

// Wait blocks until every load started so far has completed, or ctx is
// done. Individual load failures are reported by their futures, not here.
func (l *Loader) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = l.group.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReadFile synchronously reads a resource of kind k.
func (l *Loader) ReadFile(k Kind, name string) ([]byte, error) {
	if err := k.Validate(name); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(l.fsys, k.Resolve(name))
	if err != nil {
		return nil, fmt.Errorf("asset: read %s %q: %w", k, name, err)
	}
	return data, nil
}

// Bytes loads the raw content of a resource.
func (l *Loader) Bytes(k Kind, name string) *Future[[]byte] {
	return start(l, k, name, func(b []byte) ([]byte, error) { return b, nil })
}

// Text loads a resource as UTF-8 text.
func (l *Loader) Text(k Kind, name string) *Future[string] {
	return start(l, k, name, decodeText)
}

// Image loads and decodes an image below images/.
func (l *Loader) Image(name string) *Future[*Image] {
	return start(l, KindImage, name, decodeImage)
}

// Font loads and parses a font below fonts/.
func (l *Loader) Font(name string) *Future[*Font] {
	return start(l, KindFont, name, decodeFont)
}

func start[T any](l *Loader, k Kind, name string, decode func([]byte) (T, error)) *Future[T] {
	if err := k.Validate(name); err != nil {
		return Failed[T](err)
	}

	f := newFuture[T]()
	l.pending.Add(1)
	l.group.Go(func() error {
		defer l.pending.Add(-1)

		data, err := l.ReadFile(k, name)
		if err != nil {
			var zero T
			f.complete(zero, err)
			return nil
		}
		v, err := decode(data)
		if err != nil {
			err = fmt.Errorf("asset: decode %s %q: %w", k, name, err)
		}
		f.complete(v, err)
		return nil
	})
	return f
}
