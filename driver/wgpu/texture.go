// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"image"

	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/wgpu/hal"
)

// texture is a mip chain of storage buffers, one per level, each holding
// the level's texels in row-major order.
type texture struct {
	desc   driver.TextureDescriptor
	levels []hal.Buffer
}

func (t *texture) destroy(device hal.Device) {
	for _, buf := range t.levels {
		if buf != nil {
			device.DestroyBuffer(buf)
		}
	}
	t.levels = nil
}

// levelSize returns a mip level's dimensions, halving per level with a
// floor of one texel.
func (t *texture) levelSize(level int) (w, h int) {
	w, h = t.desc.Width>>level, t.desc.Height>>level
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// framebuffer records a single color attachment; the HAL has no
// framebuffer objects, so completeness is evaluated here.
type framebuffer struct {
	tex   driver.TextureID
	level int
	bound bool
}

// CreateTexture creates a buffer-backed texture.
func (d *Driver) CreateTexture(desc driver.TextureDescriptor) (driver.TextureID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if desc.Levels <= 0 {
		desc.Levels = 1
	}
	bpp := desc.Format.BytesPerPixel()
	if bpp == 0 {
		return 0, fmt.Errorf("wgpu: texture format %s has no storage", desc.Format)
	}

	t := &texture{desc: desc}
	for level := 0; level < desc.Levels; level++ {
		w, h := t.levelSize(level)
		buf, err := d.newStorageBuffer(desc.Label, uint64(w*h*bpp))
		if err != nil {
			t.destroy(d.device)
			return 0, fmt.Errorf("wgpu: create texture level %d: %w", level, err)
		}
		t.levels = append(t.levels, buf)
	}

	id := driver.TextureID(d.allocID())
	d.textures[id] = t
	return id, nil
}

// DestroyTexture releases a texture and its level buffers.
func (d *Driver) DestroyTexture(id driver.TextureID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.textures[id]; ok {
		t.destroy(d.device)
		delete(d.textures, id)
	}
}

// WriteTexture replaces the full contents of one mip level.
func (d *Driver) WriteTexture(id driver.TextureID, level int, pix []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return ErrUnknownObject
	}
	d.queue.WriteBuffer(t.levels[level], 0, pix)
	return nil
}

// WriteTextureSub replaces a sub-rectangle of one mip level, writing one
// row at a time at its row-major offset.
func (d *Driver) WriteTextureSub(id driver.TextureID, level int, rect image.Rectangle, pix []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return ErrUnknownObject
	}
	w, _ := t.levelSize(level)
	bpp := t.desc.Format.BytesPerPixel()
	rowBytes := rect.Dx() * bpp
	for y := 0; y < rect.Dy(); y++ {
		offset := ((rect.Min.Y+y)*w + rect.Min.X) * bpp
		d.queue.WriteBuffer(t.levels[level], uint64(offset), pix[y*rowBytes:(y+1)*rowBytes])
	}
	return nil
}

// ReadTextureSub reads a sub-rectangle of one mip level as one staged
// copy of all its rows.
func (d *Driver) ReadTextureSub(id driver.TextureID, level int, rect image.Rectangle) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.readTextureSubLocked(id, level, rect)
}

func (d *Driver) readTextureSubLocked(id driver.TextureID, level int, rect image.Rectangle) ([]byte, error) {
	t, ok := d.textures[id]
	if !ok || level < 0 || level >= len(t.levels) {
		return nil, ErrUnknownObject
	}
	w, _ := t.levelSize(level)
	bpp := t.desc.Format.BytesPerPixel()
	rowBytes := uint64(rect.Dx() * bpp)

	copies := make([]hal.BufferCopy, rect.Dy())
	for y := range copies {
		offset := ((rect.Min.Y+y)*w + rect.Min.X) * bpp
		copies[y] = hal.BufferCopy{SrcOffset: uint64(offset), Size: rowBytes}
	}
	return d.readback(t.levels[level], copies)
}

// CreateFramebuffer creates an empty framebuffer record.
func (d *Driver) CreateFramebuffer() (driver.FramebufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := driver.FramebufferID(d.allocID())
	d.framebuffers[id] = &framebuffer{}
	return id, nil
}

// DestroyFramebuffer releases a framebuffer record. Attachments are
// untouched.
func (d *Driver) DestroyFramebuffer(id driver.FramebufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.framebuffers, id)
}

// AttachTexture sets one mip level of a texture as color attachment 0.
func (d *Driver) AttachTexture(fb driver.FramebufferID, tex driver.TextureID, level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.framebuffers[fb]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.textures[tex]
	if !ok || level < 0 || level >= len(t.levels) {
		return ErrUnknownObject
	}
	f.tex, f.level, f.bound = tex, level, true
	return nil
}

// FramebufferStatus evaluates completeness: an attachment must be bound
// and its format renderable.
func (d *Driver) FramebufferStatus(fb driver.FramebufferID) driver.FramebufferStatus {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.framebuffers[fb]
	if !ok || !f.bound {
		return driver.FramebufferIncompleteMissingAttachment
	}
	t, ok := d.textures[f.tex]
	if !ok {
		return driver.FramebufferIncompleteMissingAttachment
	}
	if !t.desc.Format.Renderable() {
		return driver.FramebufferIncompleteAttachment
	}
	return driver.FramebufferComplete
}

// ReadFramebuffer reads a pixel rectangle from color attachment 0.
func (d *Driver) ReadFramebuffer(fb driver.FramebufferID, rect image.Rectangle) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	f, ok := d.framebuffers[fb]
	if !ok || !f.bound {
		return nil, ErrUnknownObject
	}
	return d.readTextureSubLocked(f.tex, f.level, rect)
}

// CopyImage copies a pixel rectangle between same-format textures at
// level 0.
func (d *Driver) CopyImage(src, dst driver.TextureID, rect image.Rectangle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.textures[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}
	bpp := s.desc.Format.BytesPerPixel()
	srcW, _ := s.levelSize(0)
	dstW, _ := t.levelSize(0)
	rowBytes := uint64(rect.Dx() * bpp)

	copies := make([]hal.BufferCopy, rect.Dy())
	for y := range copies {
		copies[y] = hal.BufferCopy{
			SrcOffset: uint64(((rect.Min.Y+y)*srcW + rect.Min.X) * bpp),
			DstOffset: uint64(((rect.Min.Y+y)*dstW + rect.Min.X) * bpp),
			Size:      rowBytes,
		}
	}
	return d.submit("gpudev_copy_image", func(encoder hal.CommandEncoder) error {
		encoder.CopyBufferToBuffer(s.levels[0], t.levels[0], copies)
		return nil
	})
}

// CopyImage2 is the extended entry point; the HAL has a single copy
// path, so both variants encode identically.
func (d *Driver) CopyImage2(src, dst driver.TextureID, rect image.Rectangle) error {
	return d.CopyImage(src, dst, rect)
}
