package sketch

import (
	"fmt"
	"strings"
)

// Layer selects the surface a shader is applied to.
type Layer uint8

const (
	// LayerPrimary is the user-visible surface. Primary shaders run last,
	// after both offscreen layers are composited, and see the final frame.
	LayerPrimary Layer = iota

	// LayerContent is the lower offscreen layer.
	LayerContent

	// LayerOverlay is the upper offscreen layer, composited above content.
	LayerOverlay
)

func (l Layer) String() string {
	switch l {
	case LayerPrimary:
		return "primary"
	case LayerContent:
		return "content"
	case LayerOverlay:
		return "overlay"
	default:
		return fmt.Sprintf("Layer(%d)", uint8(l))
	}
}

func (l Layer) valid() bool { return l <= LayerOverlay }

// ParseLayer parses a layer name as returned by Layer.String.
func ParseLayer(s string) (Layer, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary", "global", "canvas":
		return LayerPrimary, nil
	case "content", "graphics":
		return LayerContent, nil
	case "overlay", "ui":
		return LayerOverlay, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, s)
}
