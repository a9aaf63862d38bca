package sketch

import (
	"fmt"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// EventKind identifies an input event.
type EventKind uint8

// Input event kinds.
const (
	MouseDragged EventKind = iota
	MouseMoved
	MousePressed
	MouseReleased
	MouseClicked
	MouseWheel
	KeyPressed
	KeyReleased
	KeyTyped
	TouchStarted
	TouchMoved
	TouchEnded
	WindowResized

	numEventKinds
)

var eventKindNames = [...]string{
	MouseDragged:  "mouseDragged",
	MouseMoved:    "mouseMoved",
	MousePressed:  "mousePressed",
	MouseReleased: "mouseReleased",
	MouseClicked:  "mouseClicked",
	MouseWheel:    "mouseWheel",
	KeyPressed:    "keyPressed",
	KeyReleased:   "keyReleased",
	KeyTyped:      "keyTyped",
	TouchStarted:  "touchStarted",
	TouchMoved:    "touchMoved",
	TouchEnded:    "touchEnded",
	WindowResized: "windowResized",
}

func (k EventKind) String() string {
	if k < numEventKinds {
		return eventKindNames[k]
	}
	return fmt.Sprintf("EventKind(%d)", uint8(k))
}

// MouseButton is a mouse button.
type MouseButton uint8

// Mouse buttons.
const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Touch is one active touch point.
type Touch struct {
	ID   int
	X, Y float64
}

// Event is an input event delivered by a driver.
type Event struct {
	Kind EventKind

	// Pointer position in canvas and window coordinates.
	X, Y       float64
	WinX, WinY float64
	Button     MouseButton

	// Wheel deltas.
	DeltaX, DeltaY float64

	// Key name (e.g. "a", "Enter") and platform key code.
	Key     string
	KeyCode int

	Touches []Touch

	// New window size for WindowResized.
	Width, Height int
}

// Listener handles an input event.
type Listener func(Event)

// Input tracks pointer and keyboard state and fans events out to
// listeners. It is driven from the sketch goroutine.
type Input struct {
	listeners [numEventKinds][]Listener

	mouseX, mouseY   float64
	pmouseX, pmouseY float64
	winX, winY       float64
	button           MouseButton
	pressed          bool
	touches          []Touch

	key     string
	keyCode int
	keys    map[string]struct{}
	codes   map[int]struct{}
	upper   cases.Caser
}

func newInput() *Input {
	return &Input{
		keys:  make(map[string]struct{}),
		codes: make(map[int]struct{}),
		upper: cases.Upper(language.Und),
	}
}

// On adds a listener for kind. Listeners run in the order they were added.
func (in *Input) On(kind EventKind, l Listener) error {
	if kind >= numEventKinds {
		return fmt.Errorf("%w: %d", ErrUnknownEvent, uint8(kind))
	}
	if l != nil {
		in.listeners[kind] = append(in.listeners[kind], l)
	}
	return nil
}

// Dispatch updates input state from e, then calls the listeners of its kind.
func (in *Input) Dispatch(e Event) {
	if e.Kind >= numEventKinds {
		return
	}
	switch e.Kind {
	case MouseMoved, MouseDragged, MouseClicked:
		in.setPointer(e)
	case MousePressed:
		in.setPointer(e)
		in.pressed = true
		in.button = e.Button
	case MouseReleased:
		in.setPointer(e)
		in.pressed = false
	case KeyPressed:
		in.key, in.keyCode = e.Key, e.KeyCode
		if e.Key != "" {
			in.keys[in.upper.String(e.Key)] = struct{}{}
		}
		in.codes[e.KeyCode] = struct{}{}
	case KeyReleased:
		if e.Key != "" {
			delete(in.keys, in.upper.String(e.Key))
		}
		delete(in.codes, e.KeyCode)
	case TouchStarted, TouchMoved, TouchEnded:
		in.touches = slices.Clone(e.Touches)
		if len(e.Touches) > 0 {
			in.mouseX, in.mouseY = e.Touches[0].X, e.Touches[0].Y
		}
	}
	for _, l := range in.listeners[e.Kind] {
		l(e)
	}
}

func (in *Input) setPointer(e Event) {
	in.mouseX, in.mouseY = e.X, e.Y
	in.winX, in.winY = e.WinX, e.WinY
}

// beginFrame records the previous pointer position.
func (in *Input) beginFrame() {
	in.pmouseX, in.pmouseY = in.mouseX, in.mouseY
}

// MouseX returns the pointer x in canvas coordinates.
func (in *Input) MouseX() float64 { return in.mouseX }

// MouseY returns the pointer y in canvas coordinates.
func (in *Input) MouseY() float64 { return in.mouseY }

// PMouseX returns the pointer x at the previous frame.
func (in *Input) PMouseX() float64 { return in.pmouseX }

// PMouseY returns the pointer y at the previous frame.
func (in *Input) PMouseY() float64 { return in.pmouseY }

// WinMouseX returns the pointer x in window coordinates.
func (in *Input) WinMouseX() float64 { return in.winX }

// WinMouseY returns the pointer y in window coordinates.
func (in *Input) WinMouseY() float64 { return in.winY }

// Touches returns the active touch points.
func (in *Input) Touches() []Touch { return slices.Clone(in.touches) }

// MouseButton returns the last pressed button.
func (in *Input) MouseButton() MouseButton { return in.button }

// MouseIsPressed reports whether a button is held.
func (in *Input) MouseIsPressed() bool { return in.pressed }

// Key returns the name of the last pressed key.
func (in *Input) Key() string { return in.key }

// KeyCode returns the code of the last pressed key.
func (in *Input) KeyCode() int { return in.keyCode }

// KeyDown reports whether the named key is held. Names are compared
// case-insensitively.
func (in *Input) KeyDown(name string) bool {
	_, ok := in.keys[in.upper.String(name)]
	return ok
}

// KeyCodeDown reports whether the key with the given code is held.
func (in *Input) KeyCodeDown(code int) bool {
	_, ok := in.codes[code]
	return ok
}
