// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpudev/internal/drivertest"
)

// stubRasterize returns a solid 4x4 coverage square for every glyph, so
// renderer tests exercise the quad bookkeeping without a real rasterizer.
func stubRasterize(*Face, GlyphID) ([]byte, image.Point, error) {
	size := image.Pt(4, 4)
	return solidBitmap(size), size, nil
}

func newTestRenderer(t *testing.T, config RendererConfig) (*Renderer, *drivertest.Driver) {
	t.Helper()
	dev, drv := newTextDevice(t)
	cache, err := NewGlyphCacheWithConfig(dev, GlyphCacheConfig{Size: 256})
	if err != nil {
		t.Fatalf("NewGlyphCacheWithConfig() = %v", err)
	}
	t.Cleanup(cache.Destroy)

	r, err := NewRenderer(dev, cache, newTestFace(t), stubRasterize, config)
	if err != nil {
		t.Fatalf("NewRenderer() = %v", err)
	}
	t.Cleanup(r.Destroy)
	return r, drv
}

// fill appends n quads for one pre-cached glyph, bypassing shaping.
func fill(t *testing.T, r *Renderer, n int) {
	t.Helper()
	if _, ok := r.cache.Get(1); !ok {
		size := image.Pt(4, 4)
		if _, err := r.cache.Put(1, size, solidBitmap(size)); err != nil {
			t.Fatalf("Put() = %v", err)
		}
	}
	for range n {
		if err := r.appendGlyph(ShapedGlyph{ID: 1, XAdvance: 5}); err != nil {
			t.Fatalf("appendGlyph() = %v", err)
		}
	}
}

func TestRendererRender(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	if err := r.Render("Hello"); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	if r.GlyphCount() != 5 {
		t.Errorf("GlyphCount() = %d, want 5", r.GlyphCount())
	}
	if got := r.IndexType(); got != IndexTypeUnsigned16 {
		t.Errorf("IndexType() = %v, want the Unsigned16 baseline", got)
	}
	runs := r.Runs()
	if len(runs) != 1 || runs[0] != (Run{Start: 0, End: 5, Direction: DirectionLTR}) {
		t.Errorf("Runs() = %v, want one LTR run covering all glyphs", runs)
	}
	if r.VertexBuffer() == nil || r.IndexBuffer() == nil {
		t.Fatal("GPU buffers missing after Render")
	}
	if r.penX <= 0 {
		t.Errorf("penX = %v after rendering, want positive advance", r.penX)
	}
}

func TestRendererPenAdvancesAcrossCalls(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	if err := r.Render("ab"); err != nil {
		t.Fatalf("Render() = %v", err)
	}
	mid := r.penX
	if err := r.Render("cd"); err != nil {
		t.Fatalf("second Render() = %v", err)
	}
	if r.penX <= mid {
		t.Errorf("penX = %v after second render, want beyond %v", r.penX, mid)
	}
	if got := len(r.Runs()); got != 2 {
		t.Errorf("Runs() = %d, want 2", got)
	}
}

func TestRendererAutoWiden(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	// 16384 glyphs is the last count the 16-bit type can address
	// (largest vertex index 4N-1 = 65535).
	fill(t, r, IndexTypeUnsigned16.MaxGlyphs())
	if got := r.IndexType(); got != IndexTypeUnsigned16 {
		t.Fatalf("IndexType() = %v at the 16-bit limit, want Unsigned16", got)
	}

	// One more glyph forces the switch.
	fill(t, r, 1)
	if got := r.IndexType(); got != IndexTypeUnsigned32 {
		t.Errorf("IndexType() = %v past the limit, want Unsigned32", got)
	}
	// The index buffer was regenerated whole at the new element width.
	if want := r.Capacity() * 6 * IndexTypeUnsigned32.Bytes(); r.IndexBuffer().Size() != want {
		t.Errorf("index buffer size = %d, want %d", r.IndexBuffer().Size(), want)
	}
}

func TestRendererReserveWidensUpFront(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	if err := r.Reserve(20000, 4); err != nil {
		t.Fatalf("Reserve() = %v", err)
	}
	if got := r.IndexType(); got != IndexTypeUnsigned32 {
		t.Errorf("IndexType() = %v after reserving 20000 glyphs, want Unsigned32", got)
	}
	if r.Capacity() != 20000 {
		t.Errorf("Capacity() = %d, want 20000", r.Capacity())
	}
	// Shrinking reserves are no-ops.
	if err := r.Reserve(10, 0); err != nil {
		t.Fatalf("shrinking Reserve() = %v", err)
	}
	if r.Capacity() != 20000 {
		t.Errorf("Capacity() = %d after shrinking Reserve, want 20000", r.Capacity())
	}
}

func TestRendererSetIndexTypeNarrow(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	// 5 glyphs: largest vertex index 19, fits even the 8-bit type.
	fill(t, r, 5)
	if err := r.SetIndexType(IndexTypeUnsigned8); err != nil {
		t.Fatalf("SetIndexType(Unsigned8) = %v", err)
	}
	if got := r.IndexType(); got != IndexTypeUnsigned8 {
		t.Errorf("IndexType() = %v, want Unsigned8", got)
	}
	if r.Capacity() > IndexTypeUnsigned8.MaxGlyphs() {
		t.Errorf("Capacity() = %d above the 8-bit glyph limit %d",
			r.Capacity(), IndexTypeUnsigned8.MaxGlyphs())
	}
	if want := r.Capacity() * 6; r.IndexBuffer().Size() != want {
		t.Errorf("index buffer size = %d, want %d", r.IndexBuffer().Size(), want)
	}
}

func TestRendererSetIndexTypeNarrowRejected(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	// 65 glyphs: largest vertex index 259, beyond the 8-bit type.
	fill(t, r, 65)
	err := r.SetIndexType(IndexTypeUnsigned8)
	if !errors.Is(err, ErrContentTooWide) {
		t.Fatalf("SetIndexType(Unsigned8) = %v, want ErrContentTooWide", err)
	}
	if got := r.IndexType(); got != IndexTypeUnsigned16 {
		t.Errorf("IndexType() = %v after rejected narrowing, want unchanged Unsigned16", got)
	}
}

func TestRendererClearKeepsWidenedType(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	if err := r.Reserve(20000, 0); err != nil {
		t.Fatalf("Reserve() = %v", err)
	}
	fill(t, r, 3)

	r.Clear()
	if r.GlyphCount() != 0 {
		t.Errorf("GlyphCount() = %d after Clear, want 0", r.GlyphCount())
	}
	if got := r.IndexType(); got != IndexTypeUnsigned32 {
		t.Errorf("IndexType() = %v after Clear, want the widened Unsigned32", got)
	}
	if r.Capacity() != 20000 {
		t.Errorf("Capacity() = %d after Clear, want kept 20000", r.Capacity())
	}
	if r.penX != 0 || r.penY != 0 {
		t.Errorf("pen = (%v, %v) after Clear, want origin", r.penX, r.penY)
	}
}

func TestRendererResetKeepsWidenedType(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{})

	if err := r.Reserve(20000, 0); err != nil {
		t.Fatalf("Reserve() = %v", err)
	}

	r.Reset()
	if r.VertexBuffer() != nil || r.IndexBuffer() != nil {
		t.Error("GPU buffers survived Reset")
	}
	if r.Capacity() != 0 {
		t.Errorf("Capacity() = %d after Reset, want 0", r.Capacity())
	}
	// Even a full Reset keeps the widened type; only SetIndexType narrows.
	if got := r.IndexType(); got != IndexTypeUnsigned32 {
		t.Errorf("IndexType() = %v after Reset, want Unsigned32", got)
	}

	// The renderer is usable again after a Reset.
	if err := r.Render("hi"); err != nil {
		t.Fatalf("Render() after Reset = %v", err)
	}
	if r.GlyphCount() != 2 {
		t.Errorf("GlyphCount() = %d, want 2", r.GlyphCount())
	}
}

func TestRendererInitialCapacity(t *testing.T) {
	r, _ := newTestRenderer(t, RendererConfig{GlyphCapacity: 32, RunCapacity: 4})

	if r.Capacity() != 32 {
		t.Errorf("Capacity() = %d, want 32", r.Capacity())
	}
	if r.IndexBuffer() == nil {
		t.Fatal("index buffer not preallocated")
	}
	if want := 32 * 6 * IndexTypeUnsigned16.Bytes(); r.IndexBuffer().Size() != want {
		t.Errorf("index buffer size = %d, want %d", r.IndexBuffer().Size(), want)
	}
}
