// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/gogpu/gg"
)

func solidBrush(r, g, b float64) BrushFunc {
	return func(_, _ float64, _ *Uniforms) gg.RGBA {
		return gg.RGB(r, g, b)
	}
}

func mustBuild(t *testing.T, d Descriptor) *Program {
	t.Helper()
	if d.Fragment == "" {
		d.Fragment = testFragment
	}
	if !d.Filter && d.Vertex == "" {
		d.Vertex = testVertex
	}
	p, err := Build(&recordingCompiler{}, d)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return p
}

func near(a, b float64) bool { return math.Abs(a-b) < 0.02 }

func TestBindFilterRewritesFramebuffer(t *testing.T) {
	dc := gg.NewContext(8, 8)
	dc.ClearWithColor(gg.RGB(1, 0, 0))

	p := mustBuild(t, Descriptor{Name: "swap", Filter: true, FilterFunc: PixelFilter(
		func(_, _ int, c gg.RGBA, _ *Uniforms) gg.RGBA {
			return gg.RGBA{R: c.B, G: c.G, B: c.R, A: c.A}
		})})

	if err := Bind(dc, p, nil); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	got := dc.ResizeTarget().GetPixel(3, 3)
	if !near(got.R, 0) || !near(got.B, 1) || !near(got.A, 1) {
		t.Errorf("pixel after filter = %+v, want blue", got)
	}
}

func TestBindFilterSeesUniformSnapshot(t *testing.T) {
	dc := gg.NewContext(4, 4)
	var u Uniforms
	u.Set("uLevel", 0.5)

	var seen float64
	p := mustBuild(t, Descriptor{Filter: true, FilterFunc: func(src *image.RGBA, u *Uniforms) *image.RGBA {
		seen = u.Float("uLevel")
		return src
	}})
	if err := Bind(dc, p, &u); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if seen != 0.5 {
		t.Errorf("uLevel seen by filter = %v, want 0.5", seen)
	}
}

func TestBindFilterScalesMismatchedOutput(t *testing.T) {
	dc := gg.NewContext(6, 6)
	p := mustBuild(t, Descriptor{Filter: true, FilterFunc: func(_ *image.RGBA, _ *Uniforms) *image.RGBA {
		out := image.NewRGBA(image.Rect(0, 0, 2, 2))
		for i := range out.Pix {
			out.Pix[i] = 255
		}
		return out
	}})
	if err := Bind(dc, p, nil); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	got := dc.ResizeTarget().GetPixel(5, 5)
	if !near(got.R, 1) || !near(got.A, 1) {
		t.Errorf("pixel after scaled filter = %+v, want white", got)
	}
}

func TestBindStandardSetsBrush(t *testing.T) {
	dc := gg.NewContext(4, 4)
	var u Uniforms
	u.Set("uGreen", 1.0)
	p := mustBuild(t, Descriptor{Name: "green", BrushFunc: func(_, _ float64, u *Uniforms) gg.RGBA {
		return gg.RGB(0, u.Float("uGreen"), 0)
	}})

	if err := Bind(dc, p, &u); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	u.Set("uGreen", 0.0)

	brush, ok := dc.FillBrush().(gg.CustomBrush)
	if !ok {
		t.Fatalf("FillBrush() = %T, want gg.CustomBrush", dc.FillBrush())
	}
	if brush.Name != "green" {
		t.Errorf("brush name = %q, want %q", brush.Name, "green")
	}
	if c := brush.ColorAt(1, 1); !near(c.G, 1) {
		t.Errorf("brush color = %+v, want the uniform value captured at bind", c)
	}
}

func TestBindErrors(t *testing.T) {
	dc := gg.NewContext(4, 4)

	noCPU := mustBuild(t, Descriptor{Name: "gpu-only", Filter: true})
	if err := Bind(dc, noCPU, nil); !errors.Is(err, ErrNoCPUStage) {
		t.Errorf("Bind(no CPU stage) error = %v, want ErrNoCPUStage", err)
	}

	panicking := mustBuild(t, Descriptor{Name: "boom", Filter: true, FilterFunc: func(*image.RGBA, *Uniforms) *image.RGBA {
		panic("index out of range")
	}})
	if err := Bind(dc, panicking, nil); !errors.Is(err, ErrKernelPanic) {
		t.Errorf("Bind(panicking) error = %v, want ErrKernelPanic", err)
	}

	nilOut := mustBuild(t, Descriptor{Filter: true, FilterFunc: func(*image.RGBA, *Uniforms) *image.RGBA { return nil }})
	if err := Bind(dc, nilOut, nil); !errors.Is(err, ErrNilOutput) {
		t.Errorf("Bind(nil output) error = %v, want ErrNilOutput", err)
	}

	if err := Bind(dc, nil, nil); err == nil {
		t.Error("Bind(nil program) error = nil")
	}
}

func TestBuiltinInvert(t *testing.T) {
	dc := gg.NewContext(4, 4)
	dc.ClearWithColor(gg.RGB(1, 1, 1))
	p := mustBuild(t, Descriptor{Filter: true, FilterFunc: Invert()})
	if err := Bind(dc, p, nil); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	got := dc.ResizeTarget().GetPixel(2, 2)
	if !near(got.R, 0) || !near(got.G, 0) || !near(got.B, 0) {
		t.Errorf("inverted white = %+v, want black", got)
	}
}

func TestBuiltinBlurZeroRadiusIsIdentity(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Pix[0] = 200
	var u Uniforms
	u.Set("uRadius", 0)
	if out := Blur(3)(src, &u); out != src {
		t.Error("Blur with uRadius=0 should return src unchanged")
	}
}

func TestUniforms(t *testing.T) {
	var u Uniforms
	u.Set("f32", float32(1.5))
	u.Set("int", 3)
	u.Set("vec2", [2]float64{1, 2})
	u.Set("flag", true)
	u.Set("text", "nope")

	if got := u.Float("f32"); got != 1.5 {
		t.Errorf("Float(f32) = %v, want 1.5", got)
	}
	if got := u.Float("int"); got != 3 {
		t.Errorf("Float(int) = %v, want 3", got)
	}
	if got := u.Float("text"); got != 0 {
		t.Errorf("Float(text) = %v, want 0", got)
	}
	if got := u.Vec2("vec2"); got != [2]float64{1, 2} {
		t.Errorf("Vec2() = %v", got)
	}
	if !u.Bool("flag") {
		t.Error("Bool(flag) = false")
	}

	snap := u.Clone()
	u.Set("int", 4)
	if got := snap.Float("int"); got != 3 {
		t.Errorf("snapshot changed after Set: %v", got)
	}

	var nilU *Uniforms
	if nilU.Len() != 0 || nilU.Float("x") != 0 {
		t.Error("nil Uniforms should read as empty")
	}
}
