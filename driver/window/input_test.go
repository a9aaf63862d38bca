// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package window

import (
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/sketch"
)

func TestKeyName(t *testing.T) {
	tests := []struct {
		key  gpucontext.Key
		name string
		code int
	}{
		{gpucontext.KeyA, "a", 65},
		{gpucontext.KeyZ, "z", 90},
		{gpucontext.Key0, "0", 48},
		{gpucontext.Key9, "9", 57},
		{gpucontext.KeySpace, " ", 32},
		{gpucontext.KeyEnter, "Enter", 13},
		{gpucontext.KeyDown, "ArrowDown", 40},
	}
	for _, tt := range tests {
		name, code := keyName(tt.key)
		if name != tt.name || code != tt.code {
			t.Errorf("keyName(%v) = %q, %d, want %q, %d", tt.key, name, code, tt.name, tt.code)
		}
	}
}

func TestButton(t *testing.T) {
	if button(gpucontext.MouseButtonLeft) != sketch.ButtonLeft ||
		button(gpucontext.MouseButtonMiddle) != sketch.ButtonMiddle ||
		button(gpucontext.MouseButtonRight) != sketch.ButtonRight {
		t.Error("button mapping mismatch")
	}
}
