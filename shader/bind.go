// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gg"
	xdraw "golang.org/x/image/draw"
)

// Bind errors.
var (
	// ErrNoCPUStage is returned by Bind for programs without a CPU stage.
	ErrNoCPUStage = errors.New("shader: program has no CPU stage")

	// ErrKernelPanic is returned by Bind when a CPU stage panics.
	ErrKernelPanic = errors.New("shader: CPU stage panicked")

	// ErrNilOutput is returned by Bind when a filter returns no image.
	ErrNilOutput = errors.New("shader: filter returned nil image")
)

// FilterFunc is the CPU stage of a filter program. It receives a copy of
// the layer framebuffer and returns the filtered image. Returning src itself
// is allowed.
type FilterFunc func(src *image.RGBA, u *Uniforms) *image.RGBA

// BrushFunc is the CPU stage of a standard program: the color of the
// fragment at (x, y) in device pixels.
type BrushFunc func(x, y float64, u *Uniforms) gg.RGBA

// PixelFilter builds a FilterFunc from a per-pixel function. fn receives
// the pixel coordinates and the framebuffer color at that pixel.
func PixelFilter(fn func(x, y int, c gg.RGBA, u *Uniforms) gg.RGBA) FilterFunc {
	return func(src *image.RGBA, u *Uniforms) *image.RGBA {
		b := src.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				i := src.PixOffset(x, y)
				px := src.Pix[i : i+4 : i+4]
				c := fn(x-b.Min.X, y-b.Min.Y, gg.RGBA{
					R: float64(px[0]) / 255,
					G: float64(px[1]) / 255,
					B: float64(px[2]) / 255,
					A: float64(px[3]) / 255,
				}, u)
				px[0] = unit8(c.R)
				px[1] = unit8(c.G)
				px[2] = unit8(c.B)
				px[3] = unit8(c.A)
			}
		}
		return src
	}
}

func unit8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}

// Bind attaches p to dc for the rest of the frame.
//
// A filter program runs immediately over the current contents of dc.
// A standard program becomes the fill brush of dc, so every later fill on dc
// is colored by it. u is snapshotted; later changes are not observed until
// the next Bind.
//
// Bind never panics: a panicking CPU stage is reported as ErrKernelPanic.
func Bind(dc *gg.Context, p *Program, u *Uniforms) (err error) {
	if p == nil {
		return errors.New("shader: bind nil program")
	}
	if !p.HasCPUStage() {
		return fmt.Errorf("%w: %q", ErrNoCPUStage, p.name)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %q: %v", ErrKernelPanic, p.name, r)
		}
	}()

	snapshot := u.Clone()
	if p.filter {
		return runFilter(dc, p, snapshot)
	}

	brush := p.brushFn
	dc.SetFillBrush(gg.NewCustomBrush(func(x, y float64) gg.RGBA {
		return brush(x, y, snapshot)
	}).WithName(p.name))
	return nil
}

func runFilter(dc *gg.Context, p *Program, u *Uniforms) error {
	// Pending GPU shapes must land in the pixmap before it is sampled.
	_ = dc.FlushGPU()

	pm := dc.ResizeTarget()
	src := pm.ToImage()
	out := p.filterFn(src, u)
	if out == nil {
		return fmt.Errorf("%w: %q", ErrNilOutput, p.name)
	}

	if out.Bounds().Size() != src.Bounds().Size() {
		fitted := image.NewRGBA(src.Bounds())
		xdraw.ApproxBiLinear.Scale(fitted, fitted.Bounds(), out, out.Bounds(), xdraw.Src, nil)
		out = fitted
	}

	data := pm.Data()
	rowLen := pm.Width() * 4
	ob := out.Bounds()
	for y := 0; y < pm.Height(); y++ {
		off := out.PixOffset(ob.Min.X, ob.Min.Y+y)
		copy(data[y*rowLen:(y+1)*rowLen], out.Pix[off:off+rowLen])
	}
	return nil
}
