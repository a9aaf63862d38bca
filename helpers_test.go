package sketch

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketch/shader"
)

const (
	testVertex = `@vertex
fn vs_main(@location(0) p: vec2<f32>) -> @builtin(position) vec4<f32> {
    return vec4<f32>(p, 0.0, 1.0);
}
`
	testFragment = `@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(1.0);
}
`
	brokenFragment = `@fragment
fn fs_main() -> @location(0) vec4<f32> {
    SYNTAX ERROR
}
`
)

var errSyntax = errors.New("syntax error")

// fakeCompiler rejects sources containing "SYNTAX ERROR" and records every
// source it compiles.
type fakeCompiler struct {
	mu      sync.Mutex
	sources []string
}

func (c *fakeCompiler) Compile(stage shader.Stage, source string) ([]uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources = append(c.sources, source)
	if strings.Contains(source, "SYNTAX ERROR") {
		return nil, errSyntax
	}
	return []uint32{0x07230203, uint32(stage)}, nil
}

func (c *fakeCompiler) compiled() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.sources...)
}

// captureHandler records log records.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

// count returns the number of records at level whose message contains msg.
func (h *captureHandler) count(level slog.Level, msg string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if r.Level == level && strings.Contains(r.Message, msg) {
			n++
		}
	}
	return n
}

// fakeTime is a manually advanced time source.
type fakeTime struct {
	now time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *fakeTime) Now() time.Time          { return f.now }
func (f *fakeTime) advance(d time.Duration) { f.now = f.now.Add(d) }

type testEnv struct {
	fs       fstest.MapFS
	compiler *fakeCompiler
	log      *captureHandler
	clock    *fakeTime
}

// newTestSketch creates a sketch over an in-memory resources tree with a
// fake compiler and a captured logger. The sketch is closed on cleanup.
func newTestSketch(t *testing.T, opts ...Option) (*Sketch, *testEnv) {
	t.Helper()
	env := &testEnv{
		fs:       fstest.MapFS{},
		compiler: &fakeCompiler{},
		log:      &captureHandler{},
		clock:    newFakeTime(),
	}
	base := []Option{
		WithSize(16, 16),
		WithFS(env.fs),
		WithDefaultFont(""),
		WithCompiler(env.compiler),
		WithLogger(slog.New(env.log)),
		WithTimeSource(env.clock.Now),
	}
	s, err := New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, env
}

func mustSetup(t *testing.T, s *Sketch) {
	t.Helper()
	if err := s.Setup(nil); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
}

func mustFrame(t *testing.T, s *Sketch) {
	t.Helper()
	if err := s.Frame(16 * time.Millisecond); err != nil {
		t.Fatalf("Frame() error = %v", err)
	}
}

// fill paints the whole surface of dc with an opaque color.
func fill(dc *gg.Context, r, g, b float64) {
	dc.Push()
	dc.Identity()
	dc.SetRGB(r, g, b)
	dc.DrawRectangle(0, 0, float64(dc.Width()), float64(dc.Height()))
	_ = dc.Fill()
	dc.Pop()
}

// solidFilter replaces every pixel with an opaque color.
func solidFilter(r, g, b float64) shader.FilterFunc {
	return shader.PixelFilter(func(_, _ int, _ gg.RGBA, _ *shader.Uniforms) gg.RGBA {
		return gg.RGB(r, g, b)
	})
}

func pixel(dc *gg.Context, x, y int) gg.RGBA {
	return dc.ResizeTarget().GetPixel(x, y)
}

func isColor(c gg.RGBA, r, g, b float64) bool {
	const eps = 0.02
	return math.Abs(c.R-r) < eps && math.Abs(c.G-g) < eps && math.Abs(c.B-b) < eps && math.Abs(c.A-1) < eps
}
