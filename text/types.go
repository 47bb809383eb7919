// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

// GlyphID is the glyph index within a font.
type GlyphID uint16

// Direction is the visual direction of a text run.
type Direction uint8

const (
	// DirectionLTR is left-to-right text.
	DirectionLTR Direction = iota

	// DirectionRTL is right-to-left text.
	DirectionRTL
)

// String returns the direction name.
func (d Direction) String() string {
	if d == DirectionRTL {
		return "RTL"
	}
	return "LTR"
}

// ShapedGlyph is one positioned glyph produced by shaping.
type ShapedGlyph struct {
	// ID is the glyph index within the face's font.
	ID GlyphID

	// X and Y are the pen-relative position including shaping offsets.
	X, Y float64

	// XAdvance and YAdvance move the pen after this glyph.
	XAdvance, YAdvance float64

	// Cluster is the rune index in the source text this glyph maps to.
	Cluster int
}
