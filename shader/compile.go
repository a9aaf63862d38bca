// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"fmt"

	"github.com/gogpu/naga"
)

// Stage identifies a programmable pipeline stage.
type Stage uint8

const (
	// StageVertex is the vertex stage.
	StageVertex Stage = iota

	// StageFragment is the fragment stage.
	StageFragment
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", uint8(s))
	}
}

// entryAttribute returns the WGSL attribute that marks an entry point
// for the stage.
func (s Stage) entryAttribute() string {
	if s == StageVertex {
		return "@vertex"
	}
	return "@fragment"
}

// Compiler turns the WGSL source of one stage into SPIR-V words.
type Compiler interface {
	Compile(stage Stage, source string) ([]uint32, error)
}

// NagaCompiler compiles WGSL with the pure Go naga compiler.
type NagaCompiler struct{}

// Compile implements Compiler.
func (NagaCompiler) Compile(stage Stage, source string) ([]uint32, error) {
	spirvBytes, err := naga.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("shader: compile %s stage: %w", stage, err)
	}
	if len(spirvBytes)%4 != 0 {
		return nil, fmt.Errorf("shader: compile %s stage: SPIR-V length %d is not word aligned", stage, len(spirvBytes))
	}
	return spirvWords(spirvBytes), nil
}

// spirvWords converts little-endian SPIR-V bytes into 32-bit words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
