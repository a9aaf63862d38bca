package sketch

import (
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/sketch/asset"
	"github.com/gogpu/sketch/shader"
)

// Default canvas size.
const (
	DefaultWidth  = 800
	DefaultHeight = 800
)

// Origin selects the coordinate origin of the offscreen layers at the start
// of every frame.
type Origin uint8

const (
	// OriginTopLeft puts (0, 0) at the top-left corner.
	OriginTopLeft Origin = iota

	// OriginCenter puts (0, 0) at the center of the layer.
	OriginCenter
)

// Option configures a Sketch during creation.
//
// Example:
//
//	s, err := sketch.New(
//	    sketch.WithSize(640, 480),
//	    sketch.WithResources("./res"),
//	    sketch.WithDraw(func(s *sketch.Sketch) { ... }),
//	)
type Option func(*options)

type options struct {
	width, height int
	resDir        string
	fsys          fs.FS
	defaultFont   string
	now           func() time.Time
	origin        Origin
	logger        *slog.Logger
	compiler      shader.Compiler
	asyncPreload  bool
	hotReload     bool
	concurrency   int
	timeScale     float64
	settings      DrawSettings

	preload []func(*Sketch)
	setup   []func(*Sketch)
	draw    func(*Sketch)
}

func defaultOptions() options {
	return options{
		width:       DefaultWidth,
		height:      DefaultHeight,
		resDir:      asset.DefaultRoot,
		defaultFont: DefaultFont,
		now:         time.Now,
		concurrency: asset.DefaultConcurrency,
		timeScale:   1,
		settings:    DefaultDrawSettings(),
	}
}

// resources returns the file system assets are loaded from.
func (o *options) resources() fs.FS {
	if o.fsys != nil {
		return o.fsys
	}
	return os.DirFS(o.resDir)
}

// WithSize sets the canvas size used when Setup creates the primary
// surface. Non-positive values are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithResources sets the resources directory. Default is ./res.
func WithResources(dir string) Option {
	return func(o *options) {
		o.resDir = dir
		o.fsys = nil
	}
}

// WithFS loads resources from fsys instead of a directory. Hot reload is
// unavailable for such sketches.
func WithFS(fsys fs.FS) Option {
	return func(o *options) {
		o.fsys = fsys
	}
}

// WithDefaultFont sets the font loaded automatically, relative to fonts/.
// An empty path disables it.
func WithDefaultFont(path string) Option {
	return func(o *options) {
		o.defaultFont = path
	}
}

// WithTimeSource sets the real-time source of the clock and of Tick.
func WithTimeSource(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOrigin sets the origin of the offscreen layers.
func WithOrigin(origin Origin) Option {
	return func(o *options) {
		o.origin = origin
	}
}

// WithLogger sets the logger of this sketch, overriding the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCompiler sets the shader compiler. Default is shader.NagaCompiler.
func WithCompiler(c shader.Compiler) Option {
	return func(o *options) {
		o.compiler = c
	}
}

// WithAsyncPreload makes Preload return without waiting for loads.
// Assets then become usable whenever they finish; shader sources not
// loaded by setup fail.
func WithAsyncPreload(async bool) Option {
	return func(o *options) {
		o.asyncPreload = async
	}
}

// WithHotReload recompiles file shaders when their files change. It needs
// a resources directory, not an fs.FS.
func WithHotReload(enabled bool) Option {
	return func(o *options) {
		o.hotReload = enabled
	}
}

// WithTimeScale sets the initial clock scale.
func WithTimeScale(scale float64) Option {
	return func(o *options) {
		o.timeScale = scale
	}
}

// WithLoadConcurrency bounds concurrent asset loads.
func WithLoadConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithDrawSettings sets the initial draw settings.
func WithDrawSettings(ds DrawSettings) Option {
	return func(o *options) {
		o.settings = ds
	}
}

// WithPreload adds a preload callback.
func WithPreload(fn func(*Sketch)) Option {
	return func(o *options) {
		if fn != nil {
			o.preload = append(o.preload, fn)
		}
	}
}

// WithSetup adds a setup callback.
func WithSetup(fn func(*Sketch)) Option {
	return func(o *options) {
		if fn != nil {
			o.setup = append(o.setup, fn)
		}
	}
}

// WithDraw sets the per-frame draw callback.
func WithDraw(fn func(*Sketch)) Option {
	return func(o *options) {
		o.draw = fn
	}
}
