// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
)

// Cache errors.
var (
	// ErrCacheFull is returned when no atlas space is left for a glyph.
	ErrCacheFull = errors.New("text: glyph cache full")

	// ErrGlyphTooLarge is returned for glyphs bigger than the atlas.
	ErrGlyphTooLarge = errors.New("text: glyph larger than cache texture")
)

// GlyphCacheConfig holds configuration for GlyphCache.
type GlyphCacheConfig struct {
	// Size is the square atlas texture edge in pixels.
	// Default: 1024
	Size int

	// Padding is the empty border around each glyph in pixels, keeping
	// linear filtering from bleeding neighbors.
	// Default: 1
	Padding int
}

// DefaultGlyphCacheConfig returns the default cache configuration.
func DefaultGlyphCacheConfig() GlyphCacheConfig {
	return GlyphCacheConfig{Size: 1024, Padding: 1}
}

// Region is a glyph's placement in the atlas.
type Region struct {
	// Rect is the glyph's pixel rectangle in the atlas.
	Rect image.Rectangle
}

// GlyphCache packs glyph coverage bitmaps into one single-channel atlas
// texture owned through the device's handle machinery.
//
// The pixel format comes from the capability snapshot: the plain R8
// format when the texture-rg extension is present, the legacy luminance
// format otherwise. A client-side copy of the atlas is kept so that
// drivers without partial uploads can re-upload the whole texture — a
// bandwidth-for-correctness policy, not a bug.
type GlyphCache struct {
	device  *gpudev.Device
	texture *gpudev.Texture
	config  GlyphCacheConfig

	pix     []byte
	entries map[GlyphID]Region

	// shelf-packing cursor
	cursorX, cursorY, rowHeight int
}

// NewGlyphCache creates a glyph cache with default configuration.
func NewGlyphCache(dev *gpudev.Device) (*GlyphCache, error) {
	return NewGlyphCacheWithConfig(dev, DefaultGlyphCacheConfig())
}

// NewGlyphCacheWithConfig creates a glyph cache with the given
// configuration. Zero config values fall back to defaults.
func NewGlyphCacheWithConfig(dev *gpudev.Device, config GlyphCacheConfig) (*GlyphCache, error) {
	if config.Size <= 0 {
		config.Size = 1024
	}
	if config.Padding < 0 {
		config.Padding = 1
	}

	format := driver.PixelFormatLuminance
	if dev.Caps().Supports(caps.ExtTextureRG) {
		format = driver.PixelFormatR8Unorm
	}
	gpudev.Logger().Debug("text: glyph cache format selected",
		slog.String("format", format.String()))

	tex, err := gpudev.NewTexture(dev, driver.TextureDescriptor{
		Label:  "glyph-cache",
		Width:  config.Size,
		Height: config.Size,
		Format: format,
	})
	if err != nil {
		return nil, fmt.Errorf("text: glyph cache texture creation failed: %w", err)
	}

	return &GlyphCache{
		device:  dev,
		texture: tex,
		config:  config,
		pix:     make([]byte, config.Size*config.Size),
		entries: make(map[GlyphID]Region),
	}, nil
}

// Format returns the selected atlas pixel format.
func (c *GlyphCache) Format() driver.PixelFormat { return c.texture.Format() }

// Texture returns the atlas texture.
func (c *GlyphCache) Texture() *gpudev.Texture { return c.texture }

// Len returns the number of cached glyphs.
func (c *GlyphCache) Len() int { return len(c.entries) }

// Get returns a cached glyph's atlas region.
func (c *GlyphCache) Get(id GlyphID) (Region, bool) {
	r, ok := c.entries[id]
	return r, ok
}

// Put packs a glyph coverage bitmap into the atlas and uploads it. The
// bitmap holds size.X*size.Y single-channel bytes.
func (c *GlyphCache) Put(id GlyphID, size image.Point, bitmap []byte) (Region, error) {
	if r, ok := c.entries[id]; ok {
		return r, nil
	}
	if size.X > c.config.Size || size.Y > c.config.Size {
		return Region{}, fmt.Errorf("%w: %v in %d", ErrGlyphTooLarge, size, c.config.Size)
	}
	if len(bitmap) < size.X*size.Y {
		return Region{}, fmt.Errorf("text: glyph bitmap holds %d bytes, need %d", len(bitmap), size.X*size.Y)
	}

	rect, err := c.pack(size)
	if err != nil {
		return Region{}, err
	}
	for y := 0; y < size.Y; y++ {
		dst := (rect.Min.Y+y)*c.config.Size + rect.Min.X
		copy(c.pix[dst:dst+size.X], bitmap[y*size.X:])
	}
	if err := c.upload(rect); err != nil {
		return Region{}, err
	}

	r := Region{Rect: rect}
	c.entries[id] = r
	return r, nil
}

// pack places a glyph with shelf packing: left to right along the
// current row, new row when full.
func (c *GlyphCache) pack(size image.Point) (image.Rectangle, error) {
	pad := c.config.Padding
	w, h := size.X+pad, size.Y+pad
	if c.cursorX+w > c.config.Size {
		c.cursorX = 0
		c.cursorY += c.rowHeight
		c.rowHeight = 0
	}
	if c.cursorY+h > c.config.Size {
		return image.Rectangle{}, fmt.Errorf("%w: %d glyphs cached", ErrCacheFull, len(c.entries))
	}
	rect := image.Rect(c.cursorX, c.cursorY, c.cursorX+size.X, c.cursorY+size.Y)
	c.cursorX += w
	if h > c.rowHeight {
		c.rowHeight = h
	}
	return rect, nil
}

// upload pushes the changed region to the GPU, falling back to a whole
// atlas upload on drivers without partial uploads.
func (c *GlyphCache) upload(rect image.Rectangle) error {
	sub := make([]byte, rect.Dx()*rect.Dy())
	for y := 0; y < rect.Dy(); y++ {
		src := (rect.Min.Y+y)*c.config.Size + rect.Min.X
		copy(sub[y*rect.Dx():], c.pix[src:src+rect.Dx()])
	}
	err := c.texture.UploadSub(0, rect, sub)
	if errors.Is(err, gpudev.ErrSubImageUploadUnsupported) {
		gpudev.Logger().Debug("text: partial upload unavailable, re-uploading whole glyph cache",
			slog.Int("size", c.config.Size))
		return c.texture.Upload(0, c.pix)
	}
	return err
}

// Destroy releases the atlas texture. Safe to call multiple times.
func (c *GlyphCache) Destroy() { c.texture.Destroy() }
