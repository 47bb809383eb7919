// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"

	"github.com/gogpu/gpudev"
)

// ErrContentTooWide is returned by SetIndexType when the requested type
// cannot address the glyphs already rendered.
var ErrContentTooWide = errors.New("text: index type cannot address current content")

// RasterizeFunc produces a single-channel coverage bitmap for a glyph.
// Typically backed by a font plugin; tests use a stub.
type RasterizeFunc func(face *Face, glyph GlyphID) (bitmap []byte, size image.Point, err error)

// Run is a contiguous range of rendered glyphs sharing one direction.
type Run struct {
	// Start and End delimit the glyph range, half-open.
	Start, End int

	// Direction is the run's resolved visual direction.
	Direction Direction
}

// RendererConfig holds configuration for Renderer.
type RendererConfig struct {
	// GlyphCapacity preallocates quad storage for this many glyphs.
	GlyphCapacity int

	// RunCapacity preallocates run bookkeeping.
	RunCapacity int

	// BaseDirection seeds bidi resolution. Default LTR.
	BaseDirection Direction
}

// Renderer accumulates glyph quads into GPU vertex and index buffers.
//
// Every glyph contributes 4 vertices and 6 indices. The index buffer
// element type starts at the 16-bit baseline and widens automatically
// whenever the largest vertex index (4N-1 for N glyphs) would overflow
// the current type; on a switch the whole index sequence is regenerated
// at the new width and re-uploaded, never patched in place. The type is
// never narrowed automatically — content shrinking (Clear, Reset) keeps
// the widened type, and only an explicit SetIndexType can go back down.
//
// A Renderer belongs to its device's submission goroutine.
type Renderer struct {
	device    *gpudev.Device
	cache     *GlyphCache
	shaper    *Shaper
	face      *Face
	rasterize RasterizeFunc

	indexType     IndexType
	glyphCount    int
	glyphCapacity int
	runs          []Run

	vertices     []float32 // 4 vertices * (x,y,u,v) per glyph, client copy
	vertexBuffer *gpudev.Buffer
	indexBuffer  *gpudev.Buffer

	penX, penY float64
	baseDir    Direction
}

// floatsPerGlyph is 4 vertices of (x, y, u, v) each.
const floatsPerGlyph = 16

// NewRenderer creates a renderer drawing from the cache with the face.
func NewRenderer(dev *gpudev.Device, cache *GlyphCache, face *Face, rasterize RasterizeFunc, config RendererConfig) (*Renderer, error) {
	r := &Renderer{
		device:    dev,
		cache:     cache,
		shaper:    NewShaper(),
		face:      face,
		rasterize: rasterize,
		indexType: IndexTypeUnsigned16,
		baseDir:   config.BaseDirection,
	}
	if config.RunCapacity > 0 {
		r.runs = make([]Run, 0, config.RunCapacity)
	}
	if config.GlyphCapacity > 0 {
		if err := r.Reserve(config.GlyphCapacity, config.RunCapacity); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// IndexType returns the current index buffer element type.
func (r *Renderer) IndexType() IndexType { return r.indexType }

// GlyphCount returns the number of rendered glyphs.
func (r *Renderer) GlyphCount() int { return r.glyphCount }

// Capacity returns the reserved glyph capacity.
func (r *Renderer) Capacity() int { return r.glyphCapacity }

// Runs returns the rendered runs in append order.
func (r *Renderer) Runs() []Run {
	out := make([]Run, len(r.runs))
	copy(out, r.runs)
	return out
}

// IndexBuffer returns the GPU index buffer, or nil before any reserve or
// render.
func (r *Renderer) IndexBuffer() *gpudev.Buffer { return r.indexBuffer }

// VertexBuffer returns the GPU vertex buffer, or nil before any reserve
// or render.
func (r *Renderer) VertexBuffer() *gpudev.Buffer { return r.vertexBuffer }

// Reserve ensures capacity for at least glyphCapacity glyphs and
// runCapacity runs, growing (and possibly widening) the GPU buffers up
// front so later appends don't reallocate.
func (r *Renderer) Reserve(glyphCapacity, runCapacity int) error {
	if runCapacity > cap(r.runs) {
		runs := make([]Run, len(r.runs), runCapacity)
		copy(runs, r.runs)
		r.runs = runs
	}
	if glyphCapacity <= r.glyphCapacity {
		return nil
	}
	return r.grow(glyphCapacity)
}

// Render shapes the text and appends one quad per glyph, splitting mixed
// bidirectional content into runs first. The pen advances across calls;
// Clear resets it.
func (r *Renderer) Render(s string) error {
	for _, run := range splitBidiRuns(s, r.baseDir) {
		start := r.glyphCount
		for _, g := range r.shaper.Shape(run.text, r.face, run.dir) {
			if err := r.appendGlyph(g); err != nil {
				return err
			}
		}
		r.runs = append(r.runs, Run{Start: start, End: r.glyphCount, Direction: run.dir})
	}
	return r.uploadVertices()
}

// SetIndexType switches the index buffer to at least the given element
// type. Widening is always allowed; narrowing succeeds only while the
// current content still fits the requested type.
func (r *Renderer) SetIndexType(atLeast IndexType) error {
	needed := IndexTypeUnsigned8
	if r.glyphCount > 0 {
		needed = indexTypeFor(4*r.glyphCount - 1)
	}
	if atLeast < needed {
		return fmt.Errorf("%w: %d glyphs need %s", ErrContentTooWide, r.glyphCount, needed)
	}
	if atLeast == r.indexType {
		return nil
	}
	r.indexType = atLeast
	if r.glyphCapacity > atLeast.MaxGlyphs() {
		r.glyphCapacity = atLeast.MaxGlyphs()
	}
	if r.glyphCapacity == 0 {
		return nil
	}
	return r.recreateIndexBuffer()
}

// Clear drops all rendered content and resets the pen, keeping the
// currently selected index type and the reserved capacity.
func (r *Renderer) Clear() {
	r.glyphCount = 0
	r.runs = r.runs[:0]
	r.vertices = r.vertices[:0]
	r.penX, r.penY = 0, 0
}

// Reset is Clear plus releasing the GPU buffers and reserved capacity.
// The index type survives even a Reset; only SetIndexType narrows it.
func (r *Renderer) Reset() {
	r.Clear()
	if r.vertexBuffer != nil {
		r.vertexBuffer.Destroy()
		r.vertexBuffer = nil
	}
	if r.indexBuffer != nil {
		r.indexBuffer.Destroy()
		r.indexBuffer = nil
	}
	r.glyphCapacity = 0
}

// Destroy releases all GPU resources. Safe to call multiple times.
func (r *Renderer) Destroy() { r.Reset() }

func (r *Renderer) appendGlyph(g ShapedGlyph) error {
	if r.glyphCount+1 > r.glyphCapacity {
		if err := r.grow(max(r.glyphCount+1, max(r.glyphCapacity*2, 16))); err != nil {
			return err
		}
	}

	region, ok := r.cache.Get(g.ID)
	if !ok {
		bitmap, size, err := r.rasterize(r.face, g.ID)
		if err != nil {
			return fmt.Errorf("text: rasterizing glyph %d failed: %w", g.ID, err)
		}
		if region, err = r.cache.Put(g.ID, size, bitmap); err != nil {
			return err
		}
	}

	x := float32(r.penX + g.X)
	y := float32(r.penY + g.Y)
	w := float32(region.Rect.Dx())
	h := float32(region.Rect.Dy())
	atlas := float32(r.cache.config.Size)
	u0 := float32(region.Rect.Min.X) / atlas
	v0 := float32(region.Rect.Min.Y) / atlas
	u1 := float32(region.Rect.Max.X) / atlas
	v1 := float32(region.Rect.Max.Y) / atlas

	r.vertices = append(r.vertices,
		x, y, u0, v0,
		x+w, y, u1, v0,
		x, y+h, u0, v1,
		x+w, y+h, u1, v1,
	)
	r.glyphCount++
	r.penX += g.XAdvance
	r.penY += g.YAdvance
	return nil
}

// grow raises the glyph capacity, widening the index type first when the
// new capacity's largest vertex index would overflow it, then recreates
// both GPU buffers at the new sizes.
func (r *Renderer) grow(glyphCapacity int) error {
	if widened := indexTypeFor(4*glyphCapacity - 1); widened > r.indexType {
		gpudev.Logger().Debug("text: widening glyph index type",
			slog.String("from", r.indexType.String()),
			slog.String("to", widened.String()),
			slog.Int("glyphs", glyphCapacity))
		r.indexType = widened
	}
	r.glyphCapacity = glyphCapacity

	if err := r.recreateIndexBuffer(); err != nil {
		return err
	}

	if r.vertexBuffer != nil {
		r.vertexBuffer.Destroy()
		r.vertexBuffer = nil
	}
	vb, err := gpudev.NewBuffer(r.device, r.glyphCapacity*floatsPerGlyph*4)
	if err != nil {
		return fmt.Errorf("text: vertex buffer creation failed: %w", err)
	}
	r.vertexBuffer = vb
	return r.uploadVertices()
}

// recreateIndexBuffer regenerates the full index sequence for the
// current capacity at the current element type and uploads it whole,
// replacing the GPU-side buffer.
func (r *Renderer) recreateIndexBuffer() error {
	if r.indexBuffer != nil {
		r.indexBuffer.Destroy()
		r.indexBuffer = nil
	}
	data := quadIndices(r.glyphCapacity, r.indexType)
	ib, err := gpudev.NewBuffer(r.device, len(data))
	if err != nil {
		return fmt.Errorf("text: index buffer creation failed: %w", err)
	}
	if err := ib.Write(0, data); err != nil {
		ib.Destroy()
		return fmt.Errorf("text: index buffer upload failed: %w", err)
	}
	r.indexBuffer = ib
	return nil
}

func (r *Renderer) uploadVertices() error {
	if r.vertexBuffer == nil || len(r.vertices) == 0 {
		return nil
	}
	data := make([]byte, 4*len(r.vertices))
	for i, v := range r.vertices {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return r.vertexBuffer.Write(0, data)
}
