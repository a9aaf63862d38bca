package sketch

// DrawSettings controls compositing of each frame.
type DrawSettings struct {
	// DrawContent composites the content layer onto the primary surface.
	DrawContent bool

	// DrawOverlay composites the overlay layer above the content layer.
	DrawOverlay bool

	// AutoClear clears the primary surface before compositing.
	AutoClear bool
}

// DefaultDrawSettings composites both layers without clearing.
func DefaultDrawSettings() DrawSettings {
	return DrawSettings{DrawContent: true, DrawOverlay: true}
}
