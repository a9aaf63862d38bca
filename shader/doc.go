// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shader builds shader programs for sketch layers.
//
// A Program pairs WGSL sources, compiled to SPIR-V through a [Compiler]
// (by default [NagaCompiler], backed by github.com/gogpu/naga), with an
// optional CPU stage that the software gg engine can execute:
//
//   - Filter programs have a fragment stage only. Their CPU stage is a
//     [FilterFunc] that receives the current framebuffer of the layer and
//     returns the filtered image.
//   - Standard programs have vertex and fragment stages. Their CPU stage is a
//     [BrushFunc] that colors every subsequent fill on the layer, in the same
//     way a bound GPU shader colors subsequent geometry.
//
// [Bind] attaches a program to a gg.Context. A program without a CPU stage
// compiles fine but cannot be bound to a software context; Bind reports
// [ErrNoCPUStage] so the caller can log and skip it.
//
// # Built-in filters
//
// [Invert], [Grayscale], [Blur] and [Brightness] are ready-made filter
// stages implemented with github.com/anthonynsimon/bild.
package shader
