// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/effect"
)

// PassthroughFragment is a minimal WGSL filter fragment stage. It pairs with
// the built-in CPU filters, which do the actual work on the software engine.
const PassthroughFragment = `@group(0) @binding(0) var src_tex: texture_2d<f32>;
@group(0) @binding(1) var src_smp: sampler;

@fragment
fn fs_main(@location(0) uv: vec2<f32>) -> @location(0) vec4<f32> {
    return textureSample(src_tex, src_smp, uv);
}
`

// Invert returns a filter that inverts the color channels.
func Invert() FilterFunc {
	return func(src *image.RGBA, _ *Uniforms) *image.RGBA {
		return effect.Invert(src)
	}
}

// Grayscale returns a filter that converts the framebuffer to gray.
// The result is opaque.
func Grayscale() FilterFunc {
	return func(src *image.RGBA, _ *Uniforms) *image.RGBA {
		return clone.AsRGBA(effect.Grayscale(src))
	}
}

// Blur returns a gaussian blur filter. If the uniform "uRadius" is set it
// overrides radius.
func Blur(radius float64) FilterFunc {
	return func(src *image.RGBA, u *Uniforms) *image.RGBA {
		r := radius
		if _, ok := u.Get("uRadius"); ok {
			r = u.Float("uRadius")
		}
		if r <= 0 {
			return src
		}
		return blur.Gaussian(src, r)
	}
}

// Brightness returns a filter that shifts brightness by change, in [-1, 1].
func Brightness(change float64) FilterFunc {
	return func(src *image.RGBA, _ *Uniforms) *image.RGBA {
		return adjust.Brightness(src, change)
	}
}
