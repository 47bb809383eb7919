// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package teximage reads texture sub-rectangles back to client memory
// regardless of driver capabilities.
//
// When the driver has a direct sub-image read, [SubImage] is a single
// indirection through the dispatch table. Without it, the requested mip
// level is attached to a transient framebuffer and the region is read
// from there; on embedded profiles that cannot read floating-point
// framebuffers, float texels additionally take a bit-cast detour through
// an unsigned-integer staging texture. Whichever path runs, the returned
// image's format and size exactly match the request — only the byte
// contents are computed differently.
package teximage

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/driver"
)

// Sentinel errors for teximage.
var (
	// ErrLevelOutOfRange is returned when the requested mip level does
	// not exist on the texture.
	ErrLevelOutOfRange = errors.New("teximage: mip level out of range")

	// ErrRectOutOfRange is returned when the requested rectangle falls
	// outside the mip level.
	ErrRectOutOfRange = errors.New("teximage: rectangle out of range")

	// ErrNotFloat is returned by Image.Float32s on non-float images.
	ErrNotFloat = errors.New("teximage: image is not 32-bit float")
)

// Image is a client-memory pixel rectangle read back from a texture.
type Image struct {
	// Format is the texel format, always equal to the source texture's.
	Format driver.PixelFormat

	// Size is the rectangle size in pixels.
	Size image.Point

	// Pix holds Size.X*Size.Y texels, tightly packed row by row.
	Pix []byte
}

// SubImage reads a sub-rectangle of one mip level of the texture.
//
// On failure the returned image is nil and the destination contents are
// unspecified; one diagnostic line goes to the gpudev logger. The error
// of a non-renderable source format names both the format and the
// concrete framebuffer completeness failure.
func SubImage(dev *gpudev.Device, tex *gpudev.Texture, level int, rect image.Rectangle) (*Image, error) {
	if level < 0 || level >= tex.Levels() {
		return nil, fmt.Errorf("%w: level %d of %d", ErrLevelOutOfRange, level, tex.Levels())
	}
	if size := tex.LevelSize(level); rect.Min.X < 0 || rect.Min.Y < 0 ||
		rect.Max.X > size.X || rect.Max.Y > size.Y || rect.Empty() {
		return nil, fmt.Errorf("%w: %v outside level size %v", ErrRectOutOfRange, rect, size)
	}

	format := tex.Format()
	pix, err := dev.Table().ReadTextureSub(dev.Driver(), tex.ID(), level, rect, format)
	if err != nil {
		err = fmt.Errorf("teximage: sub-image read: %w", err)
		gpudev.Logger().Warn("teximage: sub-image read failed",
			slog.String("format", format.String()),
			slog.Int("level", level),
			slog.Any("error", err))
		return nil, err
	}
	return &Image{Format: format, Size: rect.Size(), Pix: pix}, nil
}

// SubImageToBuffer reads a sub-rectangle of one mip level into a GPU
// buffer at the given byte offset. The buffer-backed variant of
// [SubImage]; the pixel bytes written are identical.
func SubImageToBuffer(dev *gpudev.Device, tex *gpudev.Texture, level int, rect image.Rectangle, buf *gpudev.Buffer, offset int) error {
	img, err := SubImage(dev, tex, level, rect)
	if err != nil {
		return err
	}
	if err := buf.Write(offset, img.Pix); err != nil {
		return fmt.Errorf("teximage: buffer write-back: %w", err)
	}
	return nil
}

// Float32s reinterprets the image bytes as float32 values without any
// conversion. Valid only for 32-bit float formats; the bit pattern is
// preserved exactly even for NaNs and denormals, which is what makes the
// uint readback detour lossless.
func (m *Image) Float32s() ([]float32, error) {
	if !m.Format.IsFloat() || m.Format.BytesPerPixel() != 4*m.Format.Channels() {
		return nil, fmt.Errorf("%w: %s", ErrNotFloat, m.Format)
	}
	return DecodeFloats(m.Pix), nil
}
