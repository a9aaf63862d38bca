// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package window runs a sketch in a native gogpu window.
//
// The sketch's primary surface is the gg context of a ggcanvas.Canvas,
// which is uploaded and drawn into the window every frame:
//
//	gg.Context (sketch) → ggcanvas.Canvas → gogpu.Context (GPU) → Window
package window

import (
	"context"
	"fmt"

	"github.com/gogpu/gg"
	_ "github.com/gogpu/gg/gpu" // Register GPU accelerator
	"github.com/gogpu/gg/integration/ggcanvas"
	"github.com/gogpu/gogpu"

	"github.com/gogpu/sketch"
)

// Driver opens a window sized to the sketch and renders a frame per
// redraw.
type Driver struct {
	title      string
	continuous bool
}

// Option configures a Driver.
type Option func(*Driver)

// Title sets the window title.
func Title(title string) Option {
	return func(d *Driver) { d.title = title }
}

// OnDemand renders only on input instead of continuously.
func OnDemand() Option {
	return func(d *Driver) { d.continuous = false }
}

// New returns a window driver.
func New(opts ...Option) *Driver {
	d := &Driver{title: "sketch", continuous: true}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run preloads s, opens the window and renders until the window is
// closed. Setup runs on the first redraw, once the GPU device exists.
// When ctx is done no further frames are rendered.
func (d *Driver) Run(ctx context.Context, s *sketch.Sketch) error {
	if err := s.Preload(ctx); err != nil {
		return err
	}
	log := s.Logger()

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(d.title).
		WithSize(s.Width(), s.Height()).
		WithContinuousRender(d.continuous))

	var (
		canvas *ggcanvas.Canvas
		runErr error
	)
	app.OnDraw(func(dc *gogpu.Context) {
		if runErr != nil || ctx.Err() != nil {
			return
		}
		if canvas == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				return
			}
			c, err := ggcanvas.New(provider, s.Width(), s.Height())
			if err != nil {
				runErr = fmt.Errorf("window: create canvas: %w", err)
				log.Error("window: create canvas", "err", err)
				return
			}
			canvas = c
			if err := s.Setup(canvas.Context()); err != nil {
				runErr = err
				return
			}
			log.Info("window: started", "backend", dc.Backend(), "width", s.Width(), "height", s.Height())
		}

		if err := canvas.Draw(func(*gg.Context) {
			if err := s.Tick(); err != nil {
				runErr = err
			}
		}); err != nil {
			log.Error("window: draw", "err", err)
			return
		}
		if err := canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
			log.Debug("window: render", "frame", s.FrameCount(), "err", err)
		}
	})

	bindInput(app.EventSource(), s)

	app.OnClose(func() {
		gg.CloseAccelerator()
	})

	if err := app.Run(); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}
