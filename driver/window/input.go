// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sketch"
)

// bindInput forwards window events to the sketch input.
func bindInput(src gpucontext.EventSource, s *sketch.Sketch) {
	in := s.Input()
	var pressed bool

	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		name, code := keyName(key)
		in.Dispatch(sketch.Event{Kind: sketch.KeyPressed, Key: name, KeyCode: code})
		if len(name) == 1 {
			in.Dispatch(sketch.Event{Kind: sketch.KeyTyped, Key: name, KeyCode: code})
		}
	})
	src.OnKeyRelease(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		name, code := keyName(key)
		in.Dispatch(sketch.Event{Kind: sketch.KeyReleased, Key: name, KeyCode: code})
	})
	src.OnMouseMove(func(x, y float64) {
		kind := sketch.MouseMoved
		if pressed {
			kind = sketch.MouseDragged
		}
		in.Dispatch(sketch.Event{Kind: kind, X: x, Y: y, WinX: x, WinY: y})
	})
	src.OnMousePress(func(b gpucontext.MouseButton, x, y float64) {
		pressed = true
		in.Dispatch(sketch.Event{Kind: sketch.MousePressed, X: x, Y: y, WinX: x, WinY: y, Button: button(b)})
	})
	src.OnMouseRelease(func(b gpucontext.MouseButton, x, y float64) {
		pressed = false
		e := sketch.Event{Kind: sketch.MouseReleased, X: x, Y: y, WinX: x, WinY: y, Button: button(b)}
		in.Dispatch(e)
		e.Kind = sketch.MouseClicked
		in.Dispatch(e)
	})
	src.OnScroll(func(dx, dy float64) {
		in.Dispatch(sketch.Event{Kind: sketch.MouseWheel, DeltaX: dx, DeltaY: dy, X: in.MouseX(), Y: in.MouseY()})
	})
	src.OnResize(func(w, h int) {
		in.Dispatch(sketch.Event{Kind: sketch.WindowResized, Width: w, Height: h})
	})
}

func button(b gpucontext.MouseButton) sketch.MouseButton {
	switch b {
	case gpucontext.MouseButtonLeft:
		return sketch.ButtonLeft
	case gpucontext.MouseButtonMiddle:
		return sketch.ButtonMiddle
	case gpucontext.MouseButtonRight:
		return sketch.ButtonRight
	}
	return sketch.ButtonNone
}

var namedKeys = map[gpucontext.Key]struct {
	name string
	code int
}{
	gpucontext.KeySpace:     {" ", 32},
	gpucontext.KeyEnter:     {"Enter", 13},
	gpucontext.KeyEscape:    {"Escape", 27},
	gpucontext.KeyTab:       {"Tab", 9},
	gpucontext.KeyBackspace: {"Backspace", 8},
	gpucontext.KeyLeft:      {"ArrowLeft", 37},
	gpucontext.KeyUp:        {"ArrowUp", 38},
	gpucontext.KeyRight:     {"ArrowRight", 39},
	gpucontext.KeyDown:      {"ArrowDown", 40},
}

// keyName returns the browser-style name and key code of key. Letters are
// lower case with upper-case ASCII codes.
func keyName(key gpucontext.Key) (string, int) {
	switch {
	case key >= gpucontext.KeyA && key <= gpucontext.KeyZ:
		off := int(key - gpucontext.KeyA)
		return string(rune('a' + off)), 'A' + off
	case key >= gpucontext.Key0 && key <= gpucontext.Key9:
		off := int(key - gpucontext.Key0)
		return string(rune('0' + off)), '0' + off
	}
	if k, ok := namedKeys[key]; ok {
		return k.name, k.code
	}
	return "", int(key)
}
