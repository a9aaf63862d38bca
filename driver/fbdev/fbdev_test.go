// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package fbdev

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"testing/fstest"

	"github.com/gogpu/sketch"
)

func TestRunScalesPrimaryOntoTarget(t *testing.T) {
	s, err := sketch.New(
		sketch.WithSize(8, 8),
		sketch.WithFS(fstest.MapFS{}),
		sketch.WithDefaultFont(""),
		sketch.WithDraw(func(s *sketch.Sketch) {
			dc := s.Content()
			dc.SetRGB(1, 0, 0)
			dc.DrawRectangle(0, 0, 4, 8)
			_ = dc.Fill()
		}),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	dst := image.NewRGBA(image.Rect(0, 0, 16, 16))
	if err := s.Start(context.Background(), New(Target(dst), FPS(500), Frames(2))); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.FrameCount() != 2 {
		t.Errorf("FrameCount() = %d, want 2", s.FrameCount())
	}
	if got := dst.RGBAAt(2, 8); got.R < 250 || got.G > 5 || got.A != 255 {
		t.Errorf("left half = %v, want red", got)
	}
	if got := dst.RGBAAt(13, 8); got != (color.RGBA{A: 255}) {
		t.Errorf("right half = %v, want opaque black", got)
	}
}

func TestBlitComposesOverBlack(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.SetRGBA(0, 0, color.RGBA{G: 255, A: 255})
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	blit(dst, image.NewRGBA(dst.Bounds()), src)

	for _, p := range []image.Point{{0, 0}, {1, 1}} {
		if got := dst.RGBAAt(p.X, p.Y); got != (color.RGBA{G: 255, A: 255}) {
			t.Errorf("dst%v = %v, want green", p, got)
		}
	}
	if got := dst.RGBAAt(3, 3); got.A != 255 || got.G != 0 {
		t.Errorf("dst(3,3) = %v, want opaque black", got)
	}
}

func TestRunHonorsContext(t *testing.T) {
	s, err := sketch.New(sketch.WithSize(4, 4), sketch.WithFS(fstest.MapFS{}), sketch.WithDefaultFont(""))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = s.Start(ctx, New(Target(image.NewRGBA(image.Rect(0, 0, 4, 4)))))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Start() error = %v, want context.Canceled", err)
	}
}
