// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package asset

import (
	"bytes"
	"errors"
	"image"
	"unicode/utf8"

	// Decoders registered with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/go-text/typesetting/font"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/h2non/filetype"
)

var (
	// ErrContentMismatch is returned when file content does not match the
	// kind implied by its extension.
	ErrContentMismatch = errors.New("asset: content does not match file kind")

	// ErrNotText is returned for shader sources that are not valid UTF-8.
	ErrNotText = errors.New("asset: content is not UTF-8 text")
)

// Image is a decoded raster image ready to be drawn.
type Image struct {
	Buf    *gg.ImageBuf
	Width  int
	Height int
	Format string // decoder name, e.g. "png"
}

// Font is a parsed font.
type Font struct {
	Source *text.FontSource
	Family string
}

// Face returns a face of the font at size points.
func (f *Font) Face(size float64) text.Face {
	return f.Source.Face(size)
}

func decodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}

// DecodeImage decodes image bytes after checking their signature.
func DecodeImage(data []byte) (*Image, error) {
	return decodeImage(data)
}

func decodeImage(data []byte) (*Image, error) {
	if !filetype.IsImage(data) {
		return nil, ErrContentMismatch
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Image{
		Buf:    gg.ImageBufFromImage(img),
		Width:  b.Dx(),
		Height: b.Dy(),
		Format: format,
	}, nil
}

// DecodeFont parses font bytes after checking their signature.
func DecodeFont(data []byte) (*Font, error) {
	return decodeFont(data)
}

func decodeFont(data []byte) (*Font, error) {
	if !filetype.IsFont(data) {
		return nil, ErrContentMismatch
	}
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, err
	}
	f := &Font{Source: src, Family: src.Name()}
	if face, err := font.ParseTTF(bytes.NewReader(data)); err == nil {
		if family := face.Describe().Family; family != "" {
			f.Family = family
		}
	}
	return f, nil
}
