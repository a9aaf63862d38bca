package sketch

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketch/asset"
	"github.com/gogpu/sketch/internal/watch"
)

type state uint8

const (
	stateConstructed state = iota
	statePreloading
	stateSetup
	stateRunning
	stateClosed
)

func (st state) String() string {
	switch st {
	case stateConstructed:
		return "constructed"
	case statePreloading:
		return "preloading"
	case stateSetup:
		return "setup"
	case stateRunning:
		return "running"
	case stateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", uint8(st))
	}
}

// active is the open sketch. Only one sketch may be open per process.
var active atomic.Pointer[Sketch]

// Sketch owns the lifecycle of a drawing: preload, setup, then one Frame
// call per rendered frame.
//
// Every method must be called from the goroutine driving the sketch.
type Sketch struct {
	opts     options
	state    state
	started  atomic.Bool
	settings DrawSettings

	afterPreload bool
	afterSetup   bool
	preloadQueue []func()
	setupQueue   []func()

	clock      *Clock
	input      *Input
	loader     *asset.Loader
	assets     []reporter
	font       *Font
	registry   registry
	frameCount int
	lastTick   time.Time

	primary    *gg.Context
	ownPrimary bool
	content    *gg.Context
	overlay    *gg.Context

	watcher   *watch.Watcher
	stopWatch context.CancelFunc
}

// New creates a sketch. It fails with ErrSketchActive while another sketch
// is open; the open sketch is not affected.
func New(opts ...Option) (*Sketch, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	s := &Sketch{opts: o, settings: o.settings, input: newInput()}
	if !active.CompareAndSwap(nil, s) {
		s.logger().Warn("sketch: refusing to create a second sketch", "err", ErrSketchActive)
		return nil, ErrSketchActive
	}

	start := o.now()
	s.clock = NewClock(func() time.Duration { return o.now().Sub(start) })
	s.clock.SetTimeScale(o.timeScale)
	s.loader = asset.NewLoader(o.resources(), asset.WithConcurrency(o.concurrency))
	if o.defaultFont != "" {
		// A bad default font path is logged by LoadFont; the sketch still works.
		s.font, _ = s.LoadFont(o.defaultFont)
	}
	return s, nil
}

// Close releases the layers and stops hot reload. The sketch cannot be
// used afterwards and a new one may be created.
func (s *Sketch) Close() error {
	if s.state == stateClosed {
		return nil
	}
	s.state = stateClosed
	active.CompareAndSwap(s, nil)

	var errs []error
	if s.watcher != nil {
		s.stopWatch()
		errs = append(errs, s.watcher.Close())
		s.watcher = nil
	}
	for _, dc := range []*gg.Context{s.content, s.overlay} {
		if dc != nil {
			errs = append(errs, dc.Close())
		}
	}
	if s.ownPrimary && s.primary != nil {
		errs = append(errs, s.primary.Close())
	}
	s.logger().Info("sketch: closed", "frames", s.frameCount)
	return errors.Join(errs...)
}

// Start runs the sketch on driver d. A sketch can be started once.
func (s *Sketch) Start(ctx context.Context, d Driver) error {
	if s.state == stateClosed {
		return ErrClosed
	}
	if !s.started.CompareAndSwap(false, true) {
		s.logger().Warn("sketch: start refused", "err", ErrAlreadyStarted)
		return ErrAlreadyStarted
	}
	return d.Run(ctx, s)
}

// OnPreload adds a preload callback. Callbacks run in the order added.
func (s *Sketch) OnPreload(fn func(*Sketch)) error {
	if fn == nil {
		return nil
	}
	if s.state != stateConstructed {
		s.logger().Warn("sketch: preload callback refused", "err", ErrAfterPreload)
		return ErrAfterPreload
	}
	s.opts.preload = append(s.opts.preload, fn)
	return nil
}

// OnSetup adds a setup callback. Callbacks run in the order added.
func (s *Sketch) OnSetup(fn func(*Sketch)) error {
	if fn == nil {
		return nil
	}
	if s.afterSetup || s.state == stateClosed {
		s.logger().Warn("sketch: setup callback refused", "err", ErrAfterSetup)
		return ErrAfterSetup
	}
	s.opts.setup = append(s.opts.setup, fn)
	return nil
}

// OnDraw replaces the draw callback.
func (s *Sketch) OnDraw(fn func(*Sketch)) { s.opts.draw = fn }

// beforePreload runs fn when preload starts, or now if preload is running.
func (s *Sketch) beforePreload(fn func()) {
	switch {
	case s.state == stateConstructed:
		s.preloadQueue = append(s.preloadQueue, fn)
	case s.state == statePreloading && !s.afterPreload:
		fn()
	}
}

// Preload starts every registered load, runs the preload callbacks and
// waits for all loads to finish, unless async preload is enabled.
// Load failures are logged, not returned; ctx bounds the wait.
func (s *Sketch) Preload(ctx context.Context) error {
	switch s.state {
	case stateConstructed:
	case stateClosed:
		return ErrClosed
	default:
		return fmt.Errorf("%w: preload while %s", ErrPhase, s.state)
	}
	log := s.logger()
	s.state = statePreloading
	log.Info("sketch: preload", "loads", len(s.preloadQueue))

	queue := s.preloadQueue
	s.preloadQueue = nil
	for _, fn := range queue {
		fn()
	}
	for _, fn := range s.opts.preload {
		fn(s)
	}
	s.afterPreload = true

	if s.opts.asyncPreload {
		log.Debug("sketch: preload not awaited", "pending", s.loader.Pending())
		return nil
	}
	if err := s.loader.Wait(ctx); err != nil {
		return fmt.Errorf("sketch: preload: %w", err)
	}
	for _, a := range s.assets {
		a.reportFailure()
	}
	log.Info("sketch: preload complete")
	return nil
}

// Setup creates the layers, runs the setup callbacks, compiles shaders in
// registration order and routes them to their layers.
//
// primary is the surface frames are composited onto; nil creates one of
// the configured size. Setup runs Preload first if it has not run.
func (s *Sketch) Setup(primary *gg.Context) error {
	switch s.state {
	case stateConstructed:
		if err := s.Preload(context.Background()); err != nil {
			return err
		}
	case statePreloading:
	case stateClosed:
		return ErrClosed
	default:
		return fmt.Errorf("%w: setup while %s", ErrPhase, s.state)
	}
	s.state = stateSetup

	if primary == nil {
		primary = gg.NewContext(s.opts.width, s.opts.height)
		s.ownPrimary = true
	}
	s.primary = primary
	w, h := primary.Width(), primary.Height()
	s.content = gg.NewContext(w, h)
	s.overlay = gg.NewContext(w, h)
	s.clock.Synchronize()
	s.afterSetup = true

	for _, fn := range s.opts.setup {
		fn(s)
	}
	queue := s.setupQueue
	s.setupQueue = nil
	for _, fn := range queue {
		fn()
	}
	s.registry.classify()

	if s.opts.hotReload {
		s.startHotReload()
	}
	s.lastTick = s.opts.now()
	s.state = stateRunning
	s.logger().Info("sketch: setup complete", "width", w, "height", h, "shaders", s.registry.len())
	return nil
}

// Frame renders one frame. realDelta is the real time since the previous
// frame as reported by the driver.
//
// Shader and asset failures are logged and never returned; Frame only
// fails when called before Setup or after Close.
func (s *Sketch) Frame(realDelta time.Duration) error {
	switch s.state {
	case stateRunning:
	case stateClosed:
		return ErrClosed
	default:
		return ErrNotSetUp
	}
	s.frameCount++
	s.drainReload()

	s.clock.Update(realDelta)
	s.input.beginFrame()

	first := s.frameCount == 1
	s.resetOrigin(s.content, first)
	s.resetOrigin(s.overlay, first)

	if s.opts.draw != nil {
		s.opts.draw(s)
	}

	if s.settings.AutoClear {
		s.primary.Clear()
	}
	if s.registry.hasGlobal() {
		s.primary.Push()
		s.primary.Identity()
		s.primary.DrawRectangle(0, 0, float64(s.primary.Width()), float64(s.primary.Height()))
		if err := s.primary.Fill(); err != nil {
			s.logger().Debug("sketch: global shader target", "err", err)
		}
		s.primary.Pop()
	}
	s.primary.Identity()

	s.registry.applyAll(LayerContent, s.content)
	s.registry.applyAll(LayerOverlay, s.overlay)

	if s.settings.DrawContent {
		s.composite(s.content)
	}
	if s.settings.DrawOverlay {
		s.composite(s.overlay)
	}

	s.registry.applyAll(LayerPrimary, s.primary)
	return nil
}

// Tick renders one frame using the time source to measure the delta.
func (s *Sketch) Tick() error {
	now := s.opts.now()
	delta := now.Sub(s.lastTick)
	s.lastTick = now
	return s.Frame(delta)
}

// resetOrigin undoes the previous frame's transform on dc and applies the
// configured origin.
func (s *Sketch) resetOrigin(dc *gg.Context, first bool) {
	if !first {
		dc.Pop()
	}
	dc.Push()
	dc.Identity()
	if s.opts.origin == OriginCenter {
		dc.Translate(float64(dc.Width())/2, float64(dc.Height())/2)
	}
}

func (s *Sketch) composite(layer *gg.Context) {
	_ = layer.FlushGPU()
	s.primary.DrawImage(gg.ImageBufFromImage(layer.Image()), 0, 0)
}

// layer returns the surface of l.
func (s *Sketch) layer(l Layer) *gg.Context {
	switch l {
	case LayerPrimary:
		return s.primary
	case LayerContent:
		return s.content
	case LayerOverlay:
		return s.overlay
	default:
		panic(fmt.Sprintf("sketch: unknown layer %d", l))
	}
}

// Primary returns the primary surface. Nil before Setup.
func (s *Sketch) Primary() *gg.Context { return s.primary }

// Content returns the content layer. Nil before Setup.
func (s *Sketch) Content() *gg.Context { return s.content }

// Overlay returns the overlay layer. Nil before Setup.
func (s *Sketch) Overlay() *gg.Context { return s.overlay }

// Surface returns the surface of layer l.
func (s *Sketch) Surface(l Layer) (*gg.Context, error) {
	if !l.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLayer, uint8(l))
	}
	return s.layer(l), nil
}

// Width returns the canvas width.
func (s *Sketch) Width() int {
	if s.primary != nil {
		return s.primary.Width()
	}
	return s.opts.width
}

// Height returns the canvas height.
func (s *Sketch) Height() int {
	if s.primary != nil {
		return s.primary.Height()
	}
	return s.opts.height
}

// Clock returns the sketch clock.
func (s *Sketch) Clock() *Clock { return s.clock }

// Input returns the input state and listeners.
func (s *Sketch) Input() *Input { return s.input }

// DrawSettings returns the current draw settings.
func (s *Sketch) DrawSettings() DrawSettings { return s.settings }

// SetDrawSettings replaces the draw settings from the next frame on.
func (s *Sketch) SetDrawSettings(ds DrawSettings) { s.settings = ds }

// Font returns the default font, or nil if disabled.
func (s *Sketch) Font() *Font { return s.font }

// FrameCount returns the number of frames rendered.
func (s *Sketch) FrameCount() int { return s.frameCount }

// Millis returns virtual time in milliseconds.
func (s *Sketch) Millis() float64 { return s.clock.Millis() }

// DeltaTime returns the scaled delta of the current frame.
func (s *Sketch) DeltaTime() time.Duration { return s.clock.DeltaTime() }

// Loader returns the asset loader.
func (s *Sketch) Loader() *asset.Loader { return s.loader }
