// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package text renders shaped glyph runs through the gpudev dispatch
// core.
//
// The renderer keeps one quad (4 vertices, 6 indices) per glyph and
// stores the index buffer at the smallest element width that can address
// the current content, widening from the 16-bit baseline automatically
// as glyphs accumulate. The glyph cache allocates its atlas texture
// through the device's handle machinery and picks its pixel format from
// the capability snapshot.
//
// Shaping uses go-text/typesetting's HarfBuzz implementation; mixed
// bidirectional text is split into runs first. Rasterization of glyph
// bitmaps is supplied by the caller (typically a font plugin), keeping
// this package free of any rasterizer dependency.
package text
