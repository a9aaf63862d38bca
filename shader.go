package sketch

import (
	"errors"
	"fmt"
	"path"

	"github.com/gogpu/gg"

	"github.com/gogpu/sketch/asset"
	"github.com/gogpu/sketch/shader"
)

// Allowed extensions for shader stage files.
var (
	fragmentExtensions = []string{"frag", "wgsl"}
	vertexExtensions   = []string{"vert", "wgsl"}
)

// Source is shader source code, given inline or as a file below the
// shaders/ directory of the resources root.
type Source struct {
	text string
	path string
}

// FromText returns an inline source.
func FromText(src string) Source { return Source{text: src} }

// FromFile returns a source loaded during preload from shaders/<path>.
func FromFile(path string) Source { return Source{path: path} }

// IsFile reports whether the source is loaded from a file.
func (s Source) IsFile() bool { return s.path != "" }

// Path returns the file path of a file source.
func (s Source) Path() string { return s.path }

// IsZero reports whether no source was given.
func (s Source) IsZero() bool { return s.text == "" && s.path == "" }

// ShaderPaths returns the conventional vertex and fragment file sources of
// the shader called name: <name>/<name>.vert and <name>/<name>.frag.
func ShaderPaths(name string) (vert, frag Source) {
	return FromFile(path.Join(name, name+".vert")), FromFile(path.Join(name, name+".frag"))
}

// ShaderOption configures a shader at registration.
type ShaderOption func(*Shader)

// WithFilter sets the CPU stage of a filter shader.
func WithFilter(fn shader.FilterFunc) ShaderOption {
	return func(sh *Shader) { sh.filterFn = fn }
}

// WithBrush sets the CPU stage of a standard shader.
func WithBrush(fn shader.BrushFunc) ShaderOption {
	return func(sh *Shader) { sh.brushFn = fn }
}

// Manual disables automatic application. The shader is only bound by
// explicit calls to Apply.
func Manual() ShaderOption {
	return func(sh *Shader) { sh.autoApply = false }
}

// Named sets the name used in logs.
func Named(name string) ShaderOption {
	return func(sh *Shader) { sh.name = name }
}

// Uniform sets an initial uniform value.
func Uniform(name string, value any) ShaderOption {
	return func(sh *Shader) { sh.uniforms.Set(name, value) }
}

// Shader is a shader registered with a sketch.
//
// Its layer is fixed at registration. The program is compiled during setup;
// if that fails the shader stays inert and Err reports why.
type Shader struct {
	sk     *Sketch
	name   string
	layer  Layer
	filter bool

	vert, frag       Source
	vertText         *asset.Future[string]
	fragText         *asset.Future[string]
	filterFn         shader.FilterFunc
	brushFn          shader.BrushFunc
	autoApply        bool
	uniforms         shader.Uniforms
	program          *shader.Program
	err              error
	bindFailedLogged bool
}

// NewShader registers a standard shader with vertex and fragment stages.
func (s *Sketch) NewShader(layer Layer, vert, frag Source, opts ...ShaderOption) (*Shader, error) {
	return s.register(&Shader{layer: layer, vert: vert, frag: frag}, opts)
}

// NewFilterShader registers a fragment-only shader that samples the
// current contents of its layer.
func (s *Sketch) NewFilterShader(layer Layer, frag Source, opts ...ShaderOption) (*Shader, error) {
	return s.register(&Shader{layer: layer, frag: frag, filter: true}, opts)
}

func (s *Sketch) register(sh *Shader, opts []ShaderOption) (*Shader, error) {
	sh.sk = s
	sh.autoApply = true
	for _, opt := range opts {
		opt(sh)
	}
	if sh.name == "" {
		sh.name = fmt.Sprintf("%s#%d", sh.layer, s.registry.len())
	}
	log := s.logger().With("shader", sh.name)

	if err := s.checkRegistration(sh); err != nil {
		log.Warn("sketch: shader refused", "err", err)
		return nil, err
	}

	if sh.frag.IsFile() {
		s.beforePreload(func() { sh.fragText = s.loader.Text(asset.KindShader, sh.frag.path) })
	}
	if !sh.filter && sh.vert.IsFile() {
		s.beforePreload(func() { sh.vertText = s.loader.Text(asset.KindShader, sh.vert.path) })
	}
	s.registry.add(sh)
	s.setupQueue = append(s.setupQueue, sh.compile)
	log.Debug("sketch: shader registered", "layer", sh.layer, "filter", sh.filter)
	return sh, nil
}

func (s *Sketch) checkRegistration(sh *Shader) error {
	switch {
	case s.state == stateClosed:
		return ErrClosed
	case !sh.layer.valid():
		return fmt.Errorf("%w: %d", ErrUnknownLayer, uint8(sh.layer))
	case s.afterSetup:
		return ErrAfterSetup
	case (sh.frag.IsFile() || (!sh.filter && sh.vert.IsFile())) && s.afterPreload:
		return ErrAfterPreload
	}
	if sh.frag.IsFile() {
		if err := asset.ValidatePath("fragment path", sh.frag.path, fragmentExtensions...); err != nil {
			return err
		}
	}
	if !sh.filter && sh.vert.IsFile() {
		if err := asset.ValidatePath("vertex path", sh.vert.path, vertexExtensions...); err != nil {
			return err
		}
	}
	return nil
}

// sourceReader returns the text of a shader source.
type sourceReader func(src Source, loaded *asset.Future[string]) (string, error)

// resolve returns the text of src, reading a file source from its future.
func resolve(src Source, f *asset.Future[string]) (string, error) {
	if !src.IsFile() {
		return src.text, nil
	}
	if f == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingSource, src.path)
	}
	text, err := f.Result()
	if errors.Is(err, asset.ErrPending) {
		return "", fmt.Errorf("%w: %s still loading", ErrMissingSource, src.path)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMissingSource, err)
	}
	return text, nil
}

func (sh *Shader) descriptor(read sourceReader) (shader.Descriptor, error) {
	d := shader.Descriptor{
		Name:       sh.name,
		Filter:     sh.filter,
		FilterFunc: sh.filterFn,
		BrushFunc:  sh.brushFn,
	}
	var err error
	if d.Fragment, err = read(sh.frag, sh.fragText); err != nil {
		return d, err
	}
	if !sh.filter {
		if d.Vertex, err = read(sh.vert, sh.vertText); err != nil {
			return d, err
		}
	}
	return d, nil
}

// compile builds the program. Failures are logged and leave the shader
// inert; they never stop other shaders.
func (sh *Shader) compile() {
	log := sh.sk.logger().With("shader", sh.name)
	d, err := sh.descriptor(resolve)
	if err == nil {
		sh.program, err = shader.Build(sh.sk.opts.compiler, d)
	}
	if err != nil {
		sh.err = err
		log.Error("sketch: shader failed to compile", "err", err)
		return
	}
	log.Debug("sketch: shader compiled", "layer", sh.layer)
}

// bind attaches the shader to dc. A failure is logged at error level the
// first time and at debug level afterwards.
func (sh *Shader) bind(dc *gg.Context) bool {
	if sh.program == nil {
		return false
	}
	if err := shader.Bind(dc, sh.program, &sh.uniforms); err != nil {
		log := sh.sk.logger()
		if !sh.bindFailedLogged {
			sh.bindFailedLogged = true
			log.Error("sketch: shader failed to apply", "shader", sh.name, "err", err)
		} else {
			log.Debug("sketch: shader failed to apply", "shader", sh.name, "err", err)
		}
		return false
	}
	return true
}

// Name returns the shader name.
func (sh *Shader) Name() string { return sh.name }

// Layer returns the layer the shader applies to.
func (sh *Shader) Layer() Layer { return sh.layer }

// IsFilter reports whether the shader is a filter shader.
func (sh *Shader) IsFilter() bool { return sh.filter }

// AutoApply reports whether the shader is applied every frame.
func (sh *Shader) AutoApply() bool { return sh.autoApply }

// SetAutoApply enables or disables per-frame application.
func (sh *Shader) SetAutoApply(v bool) { sh.autoApply = v }

// SetUniform sets a uniform read by the CPU stage on the next bind.
func (sh *Shader) SetUniform(name string, value any) { sh.uniforms.Set(name, value) }

// Uniform returns a uniform value.
func (sh *Shader) Uniform(name string) (any, bool) { return sh.uniforms.Get(name) }

// Program returns the compiled program, or nil.
func (sh *Shader) Program() *shader.Program { return sh.program }

// Err returns the compile error, if any.
func (sh *Shader) Err() error { return sh.err }

// Ready reports whether the shader compiled.
func (sh *Shader) Ready() bool { return sh.program != nil }

// Apply binds the shader to its layer immediately. It is meant for manual
// shaders, from the draw callback.
func (sh *Shader) Apply() error {
	if sh.sk.state != stateRunning {
		return ErrNotSetUp
	}
	if sh.program == nil {
		if sh.err != nil {
			return fmt.Errorf("%w: %w", ErrNotCompiled, sh.err)
		}
		return ErrNotCompiled
	}
	return shader.Bind(sh.sk.layer(sh.layer), sh.program, &sh.uniforms)
}
