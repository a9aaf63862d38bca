// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux

package fbdev

import (
	"errors"
	"image/draw"
)

func open(string) (draw.Image, func() error, error) {
	return nil, nil, errors.New("framebuffer devices are only supported on linux")
}
