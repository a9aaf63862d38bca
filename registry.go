package sketch

import (
	"fmt"

	"github.com/gogpu/gg"
)

// registry holds shaders in registration order. At the end of setup they
// are split into the global bucket (primary layer) and the per-context
// bucket (content and overlay layers).
type registry struct {
	pending    []*Shader
	global     []*Shader
	perContext []*Shader
	classified bool
}

func (r *registry) len() int {
	return len(r.pending) + len(r.global) + len(r.perContext)
}

func (r *registry) add(sh *Shader) {
	r.pending = append(r.pending, sh)
}

// classify routes pending shaders into their buckets. It runs once.
func (r *registry) classify() {
	if r.classified {
		return
	}
	for _, sh := range r.pending {
		switch sh.layer {
		case LayerPrimary:
			r.global = append(r.global, sh)
		case LayerContent, LayerOverlay:
			r.perContext = append(r.perContext, sh)
		default:
			panic(fmt.Sprintf("sketch: classify shader %q: unknown layer %d", sh.name, sh.layer))
		}
	}
	r.pending = nil
	r.classified = true
}

// hasGlobal reports whether any primary shader is registered.
func (r *registry) hasGlobal() bool {
	return len(r.global) > 0
}

func (r *registry) bucket(layer Layer) []*Shader {
	switch layer {
	case LayerPrimary:
		return r.global
	case LayerContent, LayerOverlay:
		return r.perContext
	default:
		panic(fmt.Sprintf("sketch: apply: unknown layer %d", layer))
	}
}

// applyAll binds every auto-applied shader of layer to dc, in registration
// order. It returns the number of shaders bound.
func (r *registry) applyAll(layer Layer, dc *gg.Context) int {
	n := 0
	for _, sh := range r.bucket(layer) {
		if sh.layer != layer || !sh.autoApply {
			continue
		}
		if sh.bind(dc) {
			n++
		}
	}
	return n
}

// each calls fn for every shader in registration order within buckets.
func (r *registry) each(fn func(*Shader)) {
	for _, b := range [][]*Shader{r.pending, r.global, r.perContext} {
		for _, sh := range b {
			fn(sh)
		}
	}
}
