// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package fbdev runs a sketch on the Linux framebuffer console.
//
// Every frame the primary surface is scaled with nearest-neighbor sampling
// onto the framebuffer, composited over black. Input is not read; use a
// window driver for interactive sketches.
package fbdev

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/sketch"
)

// DefaultDevice is the framebuffer opened by default.
const DefaultDevice = "/dev/fb0"

// DefaultFPS is the default frame rate.
const DefaultFPS = 30

// Driver renders frames to a framebuffer device at a fixed rate.
type Driver struct {
	device string
	fps    int
	frames int
	target draw.Image
}

// Option configures a Driver.
type Option func(*Driver)

// Device sets the framebuffer device path.
func Device(path string) Option {
	return func(d *Driver) { d.device = path }
}

// FPS sets the frame rate.
func FPS(fps int) Option {
	return func(d *Driver) {
		if fps > 0 {
			d.fps = fps
		}
	}
}

// Frames stops the run after n frames. Zero runs until ctx is done.
func Frames(n int) Option {
	return func(d *Driver) { d.frames = n }
}

// Target renders into img instead of opening a device.
func Target(img draw.Image) Option {
	return func(d *Driver) { d.target = img }
}

// New returns a framebuffer driver.
func New(opts ...Option) *Driver {
	d := &Driver{device: DefaultDevice, fps: DefaultFPS}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run opens the framebuffer, preloads and sets up s, then renders until
// ctx is done or the frame limit is reached.
func (d *Driver) Run(ctx context.Context, s *sketch.Sketch) error {
	log := s.Logger()
	dst, closeDev := d.target, func() error { return nil }
	if dst == nil {
		dev, closer, err := open(d.device)
		if err != nil {
			return fmt.Errorf("fbdev: open %s: %w", d.device, err)
		}
		dst, closeDev = dev, closer
	}
	defer func() {
		if err := closeDev(); err != nil {
			log.Warn("fbdev: close", "err", err)
		}
	}()
	b := dst.Bounds()
	log.Info("fbdev: framebuffer open", "device", d.device, "width", b.Dx(), "height", b.Dy())

	if err := s.Preload(ctx); err != nil {
		return err
	}
	if err := s.Setup(nil); err != nil {
		return err
	}

	ticker := time.NewTicker(time.Second / time.Duration(d.fps))
	defer ticker.Stop()
	buf := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for n := 1; d.frames <= 0 || n <= d.frames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		if err := s.Tick(); err != nil {
			return err
		}
		blit(dst, buf, s.Primary().Image())
	}
	return nil
}

// blit scales src over black into buf, then copies buf onto dst.
func blit(dst draw.Image, buf *image.RGBA, src image.Image) {
	draw.Draw(buf, buf.Bounds(), image.Black, image.Point{}, draw.Src)
	xdraw.NearestNeighbor.Scale(buf, buf.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	draw.Draw(dst, dst.Bounds(), buf, image.Point{}, draw.Src)
}
