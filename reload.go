package sketch

import (
	"context"
	"path"
	"path/filepath"

	"github.com/gogpu/sketch/asset"
	"github.com/gogpu/sketch/internal/watch"
	"github.com/gogpu/sketch/shader"
)

// startHotReload watches the shaders directory. Failure to watch is logged
// and leaves hot reload off.
func (s *Sketch) startHotReload() {
	log := s.logger()
	if s.opts.fsys != nil {
		log.Warn("sketch: hot reload needs a resources directory, not an fs.FS")
		return
	}
	dir := filepath.Join(s.opts.resDir, asset.KindShader.Dir())
	w, err := watch.New(dir,
		watch.WithExtensions(asset.KindShader.Extensions()...),
		watch.WithLogger(log),
	)
	if err != nil {
		log.Warn("sketch: hot reload disabled", "err", err)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.watcher, s.stopWatch = w, cancel
	w.Start(ctx)
	log.Info("sketch: hot reload enabled", "dir", dir)
}

// drainReload recompiles shaders whose files changed since the last frame.
func (s *Sketch) drainReload() {
	if s.watcher == nil {
		return
	}
	for {
		select {
		case batch, ok := <-s.watcher.Changes():
			if !ok {
				s.watcher = nil
				return
			}
			s.reloadChanged(batch)
		default:
			return
		}
	}
}

func (s *Sketch) reloadChanged(files []string) {
	changed := make(map[string]bool, len(files))
	for _, f := range files {
		changed[path.Clean(f)] = true
	}
	s.registry.each(func(sh *Shader) {
		hit := sh.frag.IsFile() && changed[path.Clean(sh.frag.path)]
		if !sh.filter && sh.vert.IsFile() && changed[path.Clean(sh.vert.path)] {
			hit = true
		}
		if hit {
			s.reload(sh)
		}
	})
}

// reload rebuilds sh from its files. On failure the previous program stays.
func (s *Sketch) reload(sh *Shader) {
	log := s.logger().With("shader", sh.name)
	d, err := sh.descriptor(func(src Source, _ *asset.Future[string]) (string, error) {
		if !src.IsFile() {
			return src.text, nil
		}
		b, err := s.loader.ReadFile(asset.KindShader, src.path)
		return string(b), err
	})
	var p *shader.Program
	if err == nil {
		p, err = shader.Build(s.opts.compiler, d)
	}
	if err != nil {
		log.Error("sketch: shader reload failed, keeping previous program", "err", err)
		return
	}
	sh.program, sh.err = p, nil
	sh.bindFailedLogged = false
	log.Info("sketch: shader reloaded")
}
