// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"fmt"
	"strings"
)

// Build errors.
var (
	// ErrMissingFragment is returned when a program has no fragment source.
	ErrMissingFragment = errors.New("shader: missing fragment source")

	// ErrMissingVertex is returned when a standard program has no vertex source.
	ErrMissingVertex = errors.New("shader: missing vertex source")

	// ErrNoEntryPoint is returned when a stage source declares no entry point
	// for its stage.
	ErrNoEntryPoint = errors.New("shader: no entry point")
)

// Descriptor describes a program to build.
type Descriptor struct {
	// Name identifies the program in logs and errors.
	Name string

	// Filter selects a fragment-only program that samples the framebuffer.
	Filter bool

	// Vertex is the WGSL vertex source. Ignored for filter programs.
	Vertex string

	// Fragment is the WGSL fragment source.
	Fragment string

	// FilterFunc is the CPU stage of a filter program.
	FilterFunc FilterFunc

	// BrushFunc is the CPU stage of a standard program.
	BrushFunc BrushFunc
}

// Program is a compiled shader program. It is immutable once built.
type Program struct {
	name     string
	filter   bool
	vertex   []uint32
	fragment []uint32

	filterFn FilterFunc
	brushFn  BrushFunc
}

// Build validates and compiles a descriptor.
// A nil compiler selects NagaCompiler.
func Build(c Compiler, d Descriptor) (*Program, error) {
	if c == nil {
		c = NagaCompiler{}
	}
	if strings.TrimSpace(d.Fragment) == "" {
		return nil, fmt.Errorf("%w (program %q)", ErrMissingFragment, d.Name)
	}
	if !d.Filter && strings.TrimSpace(d.Vertex) == "" {
		return nil, fmt.Errorf("%w (program %q)", ErrMissingVertex, d.Name)
	}

	p := &Program{
		name:     d.Name,
		filter:   d.Filter,
		filterFn: d.FilterFunc,
		brushFn:  d.BrushFunc,
	}

	var err error
	if p.fragment, err = compileStage(c, d.Name, StageFragment, d.Fragment); err != nil {
		return nil, err
	}
	if d.Filter {
		return p, nil
	}
	if p.vertex, err = compileStage(c, d.Name, StageVertex, d.Vertex); err != nil {
		return nil, err
	}
	return p, nil
}

func compileStage(c Compiler, name string, stage Stage, source string) ([]uint32, error) {
	if !strings.Contains(source, stage.entryAttribute()) {
		return nil, fmt.Errorf("%w: %s source of %q has no %s function", ErrNoEntryPoint, stage, name, stage.entryAttribute())
	}
	words, err := c.Compile(stage, source)
	if err != nil {
		return nil, fmt.Errorf("program %q: %w", name, err)
	}
	return words, nil
}

// Name returns the program name.
func (p *Program) Name() string { return p.name }

// IsFilter reports whether p is a fragment-only filter program.
func (p *Program) IsFilter() bool { return p.filter }

// SPIRV returns the compiled words of a stage, or nil if the program has no
// such stage. The slice must not be modified.
func (p *Program) SPIRV(stage Stage) []uint32 {
	if stage == StageVertex {
		return p.vertex
	}
	return p.fragment
}

// HasCPUStage reports whether p can be bound to a software gg context.
func (p *Program) HasCPUStage() bool {
	if p.filter {
		return p.filterFn != nil
	}
	return p.brushFn != nil
}
