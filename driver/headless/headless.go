// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless runs a sketch without a window, for tests, batch
// rendering and CI.
//
// Frames advance by a fixed step by default. Setup still synchronizes the
// clock with the sketch's time source, so virtual time is reproducible
// only when that source is fixed (sketch.WithTimeSource):
//
//	d := headless.New(
//	    headless.Frames(120),
//	    headless.Events(10, sketch.Event{Kind: sketch.MousePressed, X: 20, Y: 20}),
//	    headless.SavePNG("out.png"),
//	)
//	err := s.Start(ctx, d)
package headless

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/sketch"
)

// DefaultStep is the fixed frame delta, one 60 Hz frame.
const DefaultStep = time.Second / 60

// Driver renders a fixed number of frames offscreen.
type Driver struct {
	frames   int
	step     time.Duration
	realtime bool
	script   map[int][]sketch.Event
	out      string
	onFrame  func(frame int, s *sketch.Sketch) error
}

// Option configures a Driver.
type Option func(*Driver)

// Frames sets the number of frames to render. Zero or less renders until
// ctx is done.
func Frames(n int) Option {
	return func(d *Driver) { d.frames = n }
}

// Step sets the real delta reported for every frame.
func Step(step time.Duration) Option {
	return func(d *Driver) {
		if step > 0 {
			d.step = step
		}
	}
}

// Realtime paces frames with a ticker at the step rate and measures deltas
// with the sketch's time source instead of reporting the fixed step.
func Realtime() Option {
	return func(d *Driver) { d.realtime = true }
}

// Events dispatches evs before frame n, counting from 1.
func Events(n int, evs ...sketch.Event) Option {
	return func(d *Driver) {
		d.script[n] = append(d.script[n], evs...)
	}
}

// SavePNG writes the primary surface to path after the last frame.
func SavePNG(path string) Option {
	return func(d *Driver) { d.out = path }
}

// OnFrame calls fn after every frame. A non-nil error stops the run.
func OnFrame(fn func(frame int, s *sketch.Sketch) error) Option {
	return func(d *Driver) { d.onFrame = fn }
}

// New returns a headless driver.
func New(opts ...Option) *Driver {
	d := &Driver{
		frames: 1,
		step:   DefaultStep,
		script: make(map[int][]sketch.Event),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run preloads and sets up s, then renders frames until the frame count
// is reached or ctx is done.
func (d *Driver) Run(ctx context.Context, s *sketch.Sketch) error {
	if err := s.Preload(ctx); err != nil {
		return err
	}
	if err := s.Setup(nil); err != nil {
		return err
	}

	var tick <-chan time.Time
	if d.realtime {
		t := time.NewTicker(d.step)
		defer t.Stop()
		tick = t.C
	}

	for n := 1; d.frames <= 0 || n <= d.frames; n++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				return d.finish(s, ctx.Err())
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return d.finish(s, err)
		}

		for _, e := range d.script[n] {
			s.Input().Dispatch(e)
		}
		var err error
		if d.realtime {
			err = s.Tick()
		} else {
			err = s.Frame(d.step)
		}
		if err != nil {
			return err
		}
		if d.onFrame != nil {
			if err := d.onFrame(n, s); err != nil {
				return d.finish(s, err)
			}
		}
	}
	return d.finish(s, nil)
}

// finish saves the output, if any, and returns err.
func (d *Driver) finish(s *sketch.Sketch, err error) error {
	if d.out == "" || s.Primary() == nil {
		return err
	}
	if serr := s.Primary().SavePNG(d.out); serr != nil && err == nil {
		return fmt.Errorf("headless: save %s: %w", d.out, serr)
	}
	s.Logger().Debug("headless: saved frame", "path", d.out, "frames", s.FrameCount())
	return err
}
