// Copyright 2026 The elgato-streamdeck Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamdeck

import (
	"bytes"
	"image"
	"image/jpeg"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// jpegQuality is the fixed quality used for every JPEG the package encodes.
const jpegQuality = 90

// ConvertImage converts an image into the wire format expected for key
// images on the given device family. Families without key displays yield an
// empty buffer.
func ConvertImage(k Kind, img image.Image) ([]byte, error) {
	return ConvertImageWithFormat(k.KeyImageFormat(), img)
}

// ConvertImageWithFormat converts an image into the wire format described by
// f: resize to the exact target size with nearest-neighbor filtering, rotate,
// mirror, then encode.
func ConvertImageWithFormat(f ImageFormat, img image.Image) ([]byte, error) {
	if img == nil {
		return nil, wrapErr(ErrImageInvalid)
	}
	if f.Mode == ImageModeNone {
		return nil, nil
	}
	if f.Size.X <= 0 || f.Size.Y <= 0 {
		return nil, wrapErr(ErrImageInvalid)
	}

	scaled := image.NewRGBA(image.Rectangle{Max: f.Size})
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	final := mirrorImage(rotateImage(scaled, f.Rotation), f.Mirror)

	buf := bytes.Buffer{}
	switch f.Mode {
	case ImageModeBMP:
		if err := bmp.Encode(&buf, final); err != nil {
			return nil, wrapErr(err)
		}
	case ImageModeJPEG:
		if err := jpeg.Encode(&buf, final, &jpeg.Options{Quality: jpegQuality}); err != nil {
			return nil, wrapErr(err)
		}
	default:
		return nil, wrapErr(ErrImageInvalid)
	}
	return buf.Bytes(), nil
}

// generateBlankImage produces the wire format of an all-black key image. Its
// output is invariant per kind, so sessions cache it.
func generateBlankImage(k Kind) ([]byte, error) {
	return ConvertImage(k, image.NewRGBA(image.Rectangle{Max: k.KeyImageFormat().Size}))
}

func rotateImage(src *image.RGBA, rot ImageRotation) *image.RGBA {
	if rot == ImageRotation0 {
		return src
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	var dst *image.RGBA
	if rot == ImageRotation180 {
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := src.RGBAAt(x, y)
			switch rot {
			case ImageRotation90:
				dst.SetRGBA(h-1-y, x, c)
			case ImageRotation180:
				dst.SetRGBA(w-1-x, h-1-y, c)
			case ImageRotation270:
				dst.SetRGBA(y, w-1-x, c)
			}
		}
	}
	return dst
}

func mirrorImage(src *image.RGBA, mirror ImageMirroring) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	dst := image.NewRGBA(b)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			xd := x
			yd := y
			if mirror == ImageMirroringX || mirror == ImageMirroringBoth {
				xd = w - 1 - x
			}
			if mirror == ImageMirroringY || mirror == ImageMirroringBoth {
				yd = h - 1 - y
			}
			c := src.RGBAAt(x, y)
			c.A = 0xff
			dst.SetRGBA(xd, yd, c)
		}
	}
	return dst
}

// ImageRect is a pre-encoded image region for LCD strip/screen writes.
type ImageRect struct {
	W    uint16
	H    uint16
	Data []byte
}

// NewImageRect encodes an image into an LCD region buffer at the image's own
// dimensions.
func NewImageRect(img image.Image) (*ImageRect, error) {
	if img == nil {
		return nil, wrapErr(ErrImageInvalid)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, wrapErr(ErrImageInvalid)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Copy(rgba, image.Point{}, img, b, draw.Src, nil)
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 0xff
	}

	buf := bytes.Buffer{}
	if err := jpeg.Encode(&buf, rgba, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, wrapErr(err)
	}
	return &ImageRect{
		W:    uint16(b.Dx()),
		H:    uint16(b.Dy()),
		Data: buf.Bytes(),
	}, nil
}
