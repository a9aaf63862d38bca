package sketch

import (
	"errors"
	"fmt"
)

// Usage errors. They are returned to the caller and logged; the object the
// call was about stays inert.
var (
	// ErrSketchActive is returned by New while another sketch is open.
	ErrSketchActive = errors.New("sketch: another sketch is already active")

	// ErrAfterPreload is returned when a file-backed resource is registered
	// after the preload phase.
	ErrAfterPreload = errors.New("sketch: resource registered after preload")

	// ErrAfterSetup is returned when a shader is registered after setup.
	ErrAfterSetup = errors.New("sketch: shader registered after setup")

	// ErrNotSetUp is returned by Frame and Apply before Setup has run.
	ErrNotSetUp = errors.New("sketch: not set up")

	// ErrAlreadyStarted is returned by Start when the sketch already runs.
	ErrAlreadyStarted = errors.New("sketch: already started")

	// ErrPhase is returned when a lifecycle phase is entered out of order.
	ErrPhase = errors.New("sketch: lifecycle phase out of order")

	// ErrClosed is returned by operations on a closed sketch.
	ErrClosed = errors.New("sketch: closed")

	// ErrUnknownLayer is returned for a layer value outside the three
	// known layers.
	ErrUnknownLayer = errors.New("sketch: unknown layer")

	// ErrMissingSource is recorded on a shader whose file source had not
	// loaded by setup.
	ErrMissingSource = errors.New("sketch: shader source not loaded")

	// ErrNotCompiled is returned by Shader.Apply for shaders without a
	// compiled program.
	ErrNotCompiled = errors.New("sketch: shader not compiled")

	// ErrUnknownEvent is returned when subscribing to an unknown event kind.
	ErrUnknownEvent = errors.New("sketch: unknown event kind")
)

// ConfigError reports an invalid configuration field.
type ConfigError struct {
	Field string
	Value any
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("sketch: config %s = %v: %s", e.Field, e.Value, e.Msg)
}
