// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package asset loads sketch resources (fonts, images, shader sources) from
// a resources directory.
//
// Loads are asynchronous. Each load returns a [Future] that completes once
// the resource is decoded or has failed; a [Loader] can be awaited as a
// whole, which gives the preload phase a deterministic barrier.
//
// Resources are looked up below a root with one subdirectory per kind:
//
//	res/
//	  fonts/Roboto/Roboto-Regular.ttf
//	  images/photo.png
//	  shaders/blur/blur.frag
//
// Every path is checked against the extension allow-list of its kind before
// any I/O happens.
package asset

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
)

// DefaultRoot is the conventional resources directory.
const DefaultRoot = "./res"

// ErrEmptyPath is returned for an empty resource path.
var ErrEmptyPath = errors.New("asset: empty path")

// Kind is a category of resource.
type Kind uint8

const (
	// KindFont is a TrueType or OpenType font under fonts/.
	KindFont Kind = iota

	// KindImage is a raster image under images/.
	KindImage

	// KindShader is a WGSL shader stage under shaders/.
	KindShader
)

var kindExtensions = [...][]string{
	KindFont:   {"ttf", "otf"},
	KindImage:  {"png", "jpg", "jpeg", "gif", "webp", "bmp", "tif", "tiff"},
	KindShader: {"frag", "vert", "wgsl"},
}

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindImage:
		return "image"
	case KindShader:
		return "shader"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Dir returns the subdirectory of the resources root holding this kind.
func (k Kind) Dir() string {
	return k.String() + "s"
}

// Extensions returns the allowed file extensions, without dots.
func (k Kind) Extensions() []string {
	if int(k) >= len(kindExtensions) {
		return nil
	}
	return slices.Clone(kindExtensions[k])
}

// Resolve returns the slash-separated path of name below the resources root.
func (k Kind) Resolve(name string) string {
	return path.Join(k.Dir(), name)
}

// PathError describes a resource path that failed validation.
type PathError struct {
	Field   string   // what the path was for, e.g. "font path"
	Path    string   // the offending path
	Ext     string   // extension found, without dot
	Allowed []string // accepted extensions
	Err     error    // underlying cause, if not an extension mismatch
}

func (e *PathError) Error() string {
	where := ""
	if e.Field != "" {
		where = fmt.Sprintf(" at %q", e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("asset: invalid path%s: %v (full path: %s)", where, e.Err, e.Path)
	}
	return fmt.Sprintf("asset: wrong file extension%s, provided %q, expected any of [%s] (full path: %s)",
		where, e.Ext, strings.Join(e.Allowed, ", "), e.Path)
}

func (e *PathError) Unwrap() error { return e.Err }

// Extension returns the extension of the last path element, without dot.
// A name without a dot has no extension.
func Extension(p string) string {
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}

// ValidatePath checks that p is a usable fs path whose extension is one of
// allowed. An empty allowed list accepts any extension.
func ValidatePath(field, p string, allowed ...string) error {
	if p == "" {
		return &PathError{Field: field, Path: p, Err: ErrEmptyPath}
	}
	if clean := path.Clean(p); !fs.ValidPath(clean) {
		return &PathError{Field: field, Path: p, Err: fs.ErrInvalid}
	}
	if len(allowed) == 0 {
		return nil
	}
	ext := Extension(p)
	if slices.Contains(allowed, ext) {
		return nil
	}
	return &PathError{Field: field, Path: p, Ext: ext, Allowed: allowed}
}

// Validate checks p against the allow-list of k.
func (k Kind) Validate(p string) error {
	return ValidatePath(k.String()+" path", p, k.Extensions()...)
}
