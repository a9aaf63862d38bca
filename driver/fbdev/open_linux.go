// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux

package fbdev

import (
	"image/draw"

	fb "github.com/gonutz/framebuffer"
)

func open(path string) (draw.Image, func() error, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return dev, func() error {
		dev.Close()
		return nil
	}, nil
}
