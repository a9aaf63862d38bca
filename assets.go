package sketch

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"github.com/gogpu/sketch/asset"
)

// DefaultFont is the font loaded for every sketch unless overridden with
// WithDefaultFont.
const DefaultFont = "Roboto/Roboto-Regular.ttf"

// handle is the shared state of an asset handle. The future is nil until
// the preload phase starts the load.
type handle[T any] struct {
	sk       *Sketch
	kind     asset.Kind
	path     string
	future   *asset.Future[T]
	reported bool
}

// get returns the loaded value, reporting a failure once.
func (h *handle[T]) get() (T, bool) {
	var zero T
	if h.future == nil {
		return zero, false
	}
	v, err := h.future.Result()
	if err != nil {
		if err != asset.ErrPending {
			h.report(err)
		}
		return zero, false
	}
	return v, true
}

func (h *handle[T]) report(err error) {
	if h.reported {
		return
	}
	h.reported = true
	h.sk.logger().Error("sketch: asset failed to load", "kind", h.kind, "path", h.path, "err", err)
}

func (h *handle[T]) err() error {
	if h.future == nil {
		return asset.ErrPending
	}
	_, err := h.future.Result()
	return err
}

// Font is a font loaded during preload.
type Font struct {
	handle[*asset.Font]
}

// LoadFont registers a font below fonts/. It must be called before or
// during preload.
func (s *Sketch) LoadFont(path string) (*Font, error) {
	f := &Font{handle[*asset.Font]{sk: s, kind: asset.KindFont, path: path}}
	if err := s.checkAsset(asset.KindFont, path); err != nil {
		return nil, err
	}
	s.beforePreload(func() { f.future = s.loader.Font(path) })
	s.assets = append(s.assets, &f.handle)
	return f, nil
}

// Ready reports whether the font loaded.
func (f *Font) Ready() bool {
	_, ok := f.get()
	return ok
}

// Err returns the load error, asset.ErrPending while loading.
func (f *Font) Err() error { return f.err() }

// Face returns a face at size points, or nil if the font is not loaded.
func (f *Font) Face(size float64) text.Face {
	v, ok := f.get()
	if !ok {
		return nil
	}
	return v.Face(size)
}

// Family returns the font family name, or "" if not loaded.
func (f *Font) Family() string {
	v, ok := f.get()
	if !ok {
		return ""
	}
	return v.Family
}

// Use makes the font current on dc at size points. It reports whether the
// font was loaded.
func (f *Font) Use(dc *gg.Context, size float64) bool {
	face := f.Face(size)
	if face == nil {
		return false
	}
	dc.SetFont(face)
	return true
}

// Image is an image loaded during preload.
type Image struct {
	handle[*asset.Image]
}

// LoadImage registers an image below images/. It must be called before or
// during preload.
func (s *Sketch) LoadImage(path string) (*Image, error) {
	im := &Image{handle[*asset.Image]{sk: s, kind: asset.KindImage, path: path}}
	if err := s.checkAsset(asset.KindImage, path); err != nil {
		return nil, err
	}
	s.beforePreload(func() { im.future = s.loader.Image(path) })
	s.assets = append(s.assets, &im.handle)
	return im, nil
}

// Ready reports whether the image loaded.
func (im *Image) Ready() bool {
	_, ok := im.get()
	return ok
}

// Err returns the load error, asset.ErrPending while loading.
func (im *Image) Err() error { return im.err() }

// Size returns the image size, or zeros if not loaded.
func (im *Image) Size() (w, h int) {
	v, ok := im.get()
	if !ok {
		return 0, 0
	}
	return v.Width, v.Height
}

// Buf returns the image buffer, or nil if not loaded.
func (im *Image) Buf() *gg.ImageBuf {
	v, ok := im.get()
	if !ok {
		return nil
	}
	return v.Buf
}

// Draw draws the image on dc at (x, y). It reports whether the image was
// loaded.
func (im *Image) Draw(dc *gg.Context, x, y float64) bool {
	buf := im.Buf()
	if buf == nil {
		return false
	}
	dc.DrawImage(buf, x, y)
	return true
}

// reporter is implemented by asset handles.
type reporter interface {
	reportFailure()
}

func (h *handle[T]) reportFailure() {
	if h.future == nil || !h.future.Ready() {
		return
	}
	if _, err := h.future.Result(); err != nil {
		h.report(err)
	}
}

func (s *Sketch) checkAsset(k asset.Kind, path string) error {
	err := k.Validate(path)
	switch {
	case s.state == stateClosed:
		err = ErrClosed
	case s.afterPreload:
		err = ErrAfterPreload
	}
	if err != nil {
		s.logger().Warn("sketch: asset refused", "kind", k, "path", path, "err", err)
	}
	return err
}
