// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"errors"
	"testing"
)

const (
	testVertex = `@vertex
fn vs_main(@location(0) position: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(position, 0.0, 1.0);
}
`
	testFragment = `@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
`
)

// recordingCompiler returns a fixed word per stage and records calls.
type recordingCompiler struct {
	calls []Stage
	fail  Stage
	err   error
}

func (c *recordingCompiler) Compile(stage Stage, _ string) ([]uint32, error) {
	c.calls = append(c.calls, stage)
	if c.err != nil && stage == c.fail {
		return nil, c.err
	}
	return []uint32{uint32(stage) + 1}, nil
}

func TestBuildFilterCompilesFragmentOnly(t *testing.T) {
	c := &recordingCompiler{}
	p, err := Build(c, Descriptor{Name: "f", Filter: true, Fragment: testFragment, Vertex: "ignored"})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if !p.IsFilter() {
		t.Error("IsFilter() = false, want true")
	}
	if len(c.calls) != 1 || c.calls[0] != StageFragment {
		t.Errorf("compiled stages = %v, want [fragment]", c.calls)
	}
	if p.SPIRV(StageVertex) != nil {
		t.Error("filter program should have no vertex words")
	}
}

func TestBuildStandardCompilesBothStages(t *testing.T) {
	c := &recordingCompiler{}
	p, err := Build(c, Descriptor{Name: "s", Vertex: testVertex, Fragment: testFragment})
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if got := p.SPIRV(StageVertex); len(got) != 1 || got[0] != 1 {
		t.Errorf("vertex words = %v, want [1]", got)
	}
	if got := p.SPIRV(StageFragment); len(got) != 1 || got[0] != 2 {
		t.Errorf("fragment words = %v, want [2]", got)
	}
}

func TestBuildErrors(t *testing.T) {
	compileErr := errors.New("bad token")
	tests := []struct {
		name string
		c    *recordingCompiler
		d    Descriptor
		want error
	}{
		{"missing fragment", &recordingCompiler{}, Descriptor{Filter: true}, ErrMissingFragment},
		{"blank fragment", &recordingCompiler{}, Descriptor{Filter: true, Fragment: "  \n"}, ErrMissingFragment},
		{"missing vertex", &recordingCompiler{}, Descriptor{Fragment: testFragment}, ErrMissingVertex},
		{"fragment without entry", &recordingCompiler{}, Descriptor{Filter: true, Fragment: "fn f() {}"}, ErrNoEntryPoint},
		{"vertex without entry", &recordingCompiler{}, Descriptor{Vertex: testFragment, Fragment: testFragment}, ErrNoEntryPoint},
		{"compile failure", &recordingCompiler{fail: StageFragment, err: compileErr}, Descriptor{Filter: true, Fragment: testFragment}, compileErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.c, tt.d)
			if !errors.Is(err, tt.want) {
				t.Errorf("Build() error = %v, want %v", err, tt.want)
			}
			if p != nil {
				t.Error("Build() returned a program on error")
			}
		})
	}
}

func TestHasCPUStage(t *testing.T) {
	c := &recordingCompiler{}
	filter, _ := Build(c, Descriptor{Filter: true, Fragment: testFragment, FilterFunc: Invert()})
	if !filter.HasCPUStage() {
		t.Error("filter with FilterFunc: HasCPUStage() = false")
	}
	bare, _ := Build(c, Descriptor{Filter: true, Fragment: testFragment, BrushFunc: solidBrush(1, 0, 0)})
	if bare.HasCPUStage() {
		t.Error("filter with only BrushFunc: HasCPUStage() = true")
	}
	std, _ := Build(c, Descriptor{Vertex: testVertex, Fragment: testFragment, BrushFunc: solidBrush(1, 0, 0)})
	if !std.HasCPUStage() {
		t.Error("standard with BrushFunc: HasCPUStage() = false")
	}
}

func TestNagaCompilerProducesSPIRV(t *testing.T) {
	words, err := NagaCompiler{}.Compile(StageFragment, testFragment)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if len(words) == 0 {
		t.Fatal("Compile() returned no words")
	}
	const spirvMagic = 0x07230203
	if words[0] != spirvMagic {
		t.Errorf("first word = %#x, want SPIR-V magic %#x", words[0], spirvMagic)
	}
}

func TestNagaCompilerRejectsGarbage(t *testing.T) {
	if _, err := (NagaCompiler{}).Compile(StageFragment, "@fragment this is not wgsl"); err == nil {
		t.Error("Compile() of garbage returned nil error")
	}
}

func TestSpirvWords(t *testing.T) {
	got := spirvWords([]byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00})
	want := []uint32{0x07230203, 1}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("spirvWords() = %#x, want %#x", got, want)
	}
}

func TestStageString(t *testing.T) {
	if StageVertex.String() != "vertex" || StageFragment.String() != "fragment" {
		t.Errorf("unexpected stage names %q, %q", StageVertex, StageFragment)
	}
	if got := Stage(9).String(); got != "Stage(9)" {
		t.Errorf("Stage(9).String() = %q", got)
	}
}
