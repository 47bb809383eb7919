// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"
	"image"

	"github.com/gogpu/gpudev/driver"
)

// Framebuffer is a thin wrapper around a native framebuffer object.
type Framebuffer struct {
	device *Device
	handle Handle[driver.FramebufferID]
}

// NewFramebuffer creates an empty framebuffer and takes ownership of it.
func NewFramebuffer(dev *Device) (*Framebuffer, error) {
	id, err := dev.Driver().CreateFramebuffer()
	if err != nil {
		return nil, fmt.Errorf("gpudev: framebuffer creation failed: %w", err)
	}
	return &Framebuffer{
		device: dev,
		handle: Own(id, dev.Driver().DestroyFramebuffer),
	}, nil
}

// WrapFramebuffer adopts an externally created framebuffer.
func WrapFramebuffer(dev *Device, id driver.FramebufferID, flags Flags) *Framebuffer {
	return &Framebuffer{
		device: dev,
		handle: Wrap(id, dev.Driver().DestroyFramebuffer, flags),
	}
}

// ID returns the native framebuffer identifier.
func (f *Framebuffer) ID() driver.FramebufferID { return f.handle.Native() }

// Attach binds one mip level of a texture as color attachment 0.
func (f *Framebuffer) Attach(tex *Texture, level int) error {
	return f.device.Driver().AttachTexture(f.handle.Native(), tex.ID(), level)
}

// Status returns the completeness status.
func (f *Framebuffer) Status() driver.FramebufferStatus {
	return f.device.Driver().FramebufferStatus(f.handle.Native())
}

// Read reads a pixel rectangle from color attachment 0.
func (f *Framebuffer) Read(rect image.Rectangle) ([]byte, error) {
	return f.device.Driver().ReadFramebuffer(f.handle.Native(), rect)
}

// Release returns the native framebuffer and gives up ownership.
func (f *Framebuffer) Release() driver.FramebufferID { return f.handle.Release() }

// Destroy releases the framebuffer if owned. Safe to call multiple times.
func (f *Framebuffer) Destroy() { f.handle.Destroy() }
