// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
)

// ErrSubImageUploadUnsupported is returned by [Texture.UploadSub] when
// the driver has no partial-upload path. Callers that keep a client-side
// copy fall back to uploading the whole level.
var ErrSubImageUploadUnsupported = errors.New("gpudev: partial texture upload not supported")

// Texture is a thin wrapper around a native texture, owned through a
// move-only [Handle].
type Texture struct {
	device *Device
	handle Handle[driver.TextureID]
	desc   driver.TextureDescriptor
}

// NewTexture creates a texture and takes ownership of it. A zero Levels
// in the descriptor means one mip level.
func NewTexture(dev *Device, desc driver.TextureDescriptor) (*Texture, error) {
	if desc.Levels == 0 {
		desc.Levels = 1
	}
	id, err := dev.Driver().CreateTexture(desc)
	if err != nil {
		return nil, fmt.Errorf("gpudev: texture creation failed: %w", err)
	}
	return &Texture{
		device: dev,
		handle: Own(id, dev.Driver().DestroyTexture),
		desc:   desc,
	}, nil
}

// WrapTexture adopts an externally created texture. By default the
// wrapper is non-owning; pass DestroyOnDestruction to transfer ownership.
func WrapTexture(dev *Device, id driver.TextureID, desc driver.TextureDescriptor, flags Flags) *Texture {
	if desc.Levels == 0 {
		desc.Levels = 1
	}
	return &Texture{
		device: dev,
		handle: Wrap(id, dev.Driver().DestroyTexture, flags),
		desc:   desc,
	}
}

// ID returns the native texture identifier.
func (t *Texture) ID() driver.TextureID { return t.handle.Native() }

// Format returns the texel format.
func (t *Texture) Format() driver.PixelFormat { return t.desc.Format }

// Levels returns the mip level count.
func (t *Texture) Levels() int { return t.desc.Levels }

// Size returns the level 0 dimensions in pixels.
func (t *Texture) Size() image.Point {
	return image.Pt(t.desc.Width, t.desc.Height)
}

// LevelSize returns the dimensions of the given mip level, halving and
// rounding down per level with a floor of one pixel.
func (t *Texture) LevelSize(level int) image.Point {
	w, h := t.desc.Width>>level, t.desc.Height>>level
	return image.Pt(max(w, 1), max(h, 1))
}

// Upload replaces the full contents of one mip level.
func (t *Texture) Upload(level int, pix []byte) error {
	return t.device.Driver().WriteTexture(t.handle.Native(), level, pix)
}

// UploadSub replaces a sub-rectangle of one mip level. Returns
// [ErrSubImageUploadUnsupported] when the driver lacks partial uploads;
// the caller decides whether to re-upload the whole level instead.
func (t *Texture) UploadSub(level int, rect image.Rectangle, pix []byte) error {
	if !t.device.Caps().Supports(caps.ExtSubImageUpload) {
		return ErrSubImageUploadUnsupported
	}
	return t.device.Driver().WriteTextureSub(t.handle.Native(), level, rect, pix)
}

// Release returns the native texture and gives up ownership.
func (t *Texture) Release() driver.TextureID { return t.handle.Release() }

// Destroy releases the texture if owned. Safe to call multiple times.
func (t *Texture) Destroy() { t.handle.Destroy() }
