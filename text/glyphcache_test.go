// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gpudev/internal/drivertest"
)

func newTextDevice(t *testing.T, opts ...drivertest.Option) (*gpudev.Device, *drivertest.Driver) {
	t.Helper()
	drv := drivertest.New(opts...)
	dev, err := gpudev.NewDevice(drv)
	if err != nil {
		t.Fatalf("NewDevice() = %v", err)
	}
	return dev, drv
}

func solidBitmap(size image.Point) []byte {
	pix := make([]byte, size.X*size.Y)
	for i := range pix {
		pix[i] = 0xff
	}
	return pix
}

func TestGlyphCacheFormatSelection(t *testing.T) {
	tests := []struct {
		name string
		opts []drivertest.Option
		want driver.PixelFormat
	}{
		{"legacy luminance without texture-rg", nil, driver.PixelFormatLuminance},
		{
			"r8 with texture-rg",
			[]drivertest.Option{drivertest.WithExtensions(string(caps.ExtTextureRG))},
			driver.PixelFormatR8Unorm,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev, _ := newTextDevice(t, tt.opts...)
			cache, err := NewGlyphCache(dev)
			if err != nil {
				t.Fatalf("NewGlyphCache() = %v", err)
			}
			defer cache.Destroy()
			if got := cache.Format(); got != tt.want {
				t.Errorf("Format() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGlyphCachePutGet(t *testing.T) {
	dev, _ := newTextDevice(t)
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 64})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	defer cache.Destroy()

	size := image.Pt(8, 8)
	region, err := cache.Put(42, size, solidBitmap(size))
	if err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if region.Rect.Size() != size {
		t.Errorf("region size = %v, want %v", region.Rect.Size(), size)
	}
	got, ok := cache.Get(42)
	if !ok || got != region {
		t.Errorf("Get() = %v, %v, want %v, true", got, ok, region)
	}
	if _, ok := cache.Get(43); ok {
		t.Error("Get() found a glyph that was never cached")
	}
}

func TestGlyphCachePutDedup(t *testing.T) {
	dev, drv := newTextDevice(t, drivertest.WithExtensions(string(caps.ExtSubImageUpload)))
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 64})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	defer cache.Destroy()

	size := image.Pt(4, 4)
	first, err := cache.Put(7, size, solidBitmap(size))
	if err != nil {
		t.Fatalf("Put() = %v", err)
	}
	second, err := cache.Put(7, size, solidBitmap(size))
	if err != nil {
		t.Fatalf("second Put() = %v", err)
	}
	if first != second {
		t.Errorf("second Put() = %v, want cached %v", second, first)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if drv.Calls["WriteTextureSub"] != 1 {
		t.Errorf("uploads = %d for deduplicated glyph, want 1", drv.Calls["WriteTextureSub"])
	}
}

func TestGlyphCacheRejectsOversizedGlyph(t *testing.T) {
	dev, _ := newTextDevice(t)
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 16})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	defer cache.Destroy()

	size := image.Pt(17, 4)
	if _, err := cache.Put(1, size, solidBitmap(size)); !errors.Is(err, ErrGlyphTooLarge) {
		t.Errorf("Put() = %v, want ErrGlyphTooLarge", err)
	}
}

func TestGlyphCacheFull(t *testing.T) {
	dev, _ := newTextDevice(t)
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 16})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	defer cache.Destroy()

	// 8x8 glyphs plus padding: two per shelf row, the atlas holds three
	// before running out of rows.
	size := image.Pt(8, 8)
	var full bool
	for id := GlyphID(0); id < 8; id++ {
		if _, err := cache.Put(id, size, solidBitmap(size)); err != nil {
			if !errors.Is(err, ErrCacheFull) {
				t.Fatalf("Put(%d) = %v, want ErrCacheFull", id, err)
			}
			full = true
			break
		}
	}
	if !full {
		t.Error("cache never reported full")
	}
}

func TestGlyphCacheWholeUploadFallback(t *testing.T) {
	// Without the partial-upload extension the cache re-uploads the whole
	// atlas from its client-side copy.
	dev, drv := newTextDevice(t)
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 32})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	defer cache.Destroy()

	size := image.Pt(4, 4)
	if _, err := cache.Put(1, size, solidBitmap(size)); err != nil {
		t.Fatalf("Put() = %v", err)
	}
	if drv.Calls["WriteTexture"] != 1 {
		t.Errorf("WriteTexture calls = %d, want 1 whole-atlas upload", drv.Calls["WriteTexture"])
	}
	if drv.Calls["WriteTextureSub"] != 0 {
		t.Errorf("WriteTextureSub calls = %d without the extension, want 0", drv.Calls["WriteTextureSub"])
	}
}
