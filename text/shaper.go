// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// ErrEmptyFontData is returned when face construction gets no font bytes.
var ErrEmptyFontData = errors.New("text: empty font data")

// Face is a font at a fixed pixel size.
//
// The parsed font.Font is read-only and safe to share; the lightweight
// per-shape font.Face instances are created on demand because they are
// not safe for concurrent use.
type Face struct {
	font *font.Font
	size float64
}

// NewFace parses TTF/OTF font data.
func NewFace(data []byte, size float64) (*Face, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	f, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("text: font parse failed: %w", err)
	}
	return &Face{font: f.Font, size: size}, nil
}

// Size returns the font size in pixels per em.
func (f *Face) Size() float64 { return f.size }

// Shaper converts text into positioned glyphs using go-text's HarfBuzz
// implementation.
//
// HarfbuzzShaper instances have internal mutable state and are pooled;
// the Shaper itself is safe for sequential reuse across faces.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a Shaper.
func NewShaper() *Shaper {
	return &Shaper{
		pool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
}

// Shape shapes one single-direction run of text with the face.
func (s *Shaper) Shape(text string, face *Face, dir Direction) []ShapedGlyph {
	if text == "" || face == nil {
		return nil
	}
	runes := []rune(text)

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: mapDirection(dir),
		Face:      font.NewFace(face.font),
		Size:      floatToFixed(face.size),
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.pool.Get().(*shaping.HarfbuzzShaper)
	output := hb.Shape(input)
	s.pool.Put(hb)

	return convertGlyphs(output.Glyphs)
}

// mapDirection converts to go-text's direction type.
func mapDirection(d Direction) di.Direction {
	if d == DirectionRTL {
		return di.DirectionRTL
	}
	return di.DirectionLTR
}

// detectScript returns the script of the first non-space rune, a
// sufficient heuristic because input is already split into
// single-direction runs.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}

// convertGlyphs flattens go-text output glyphs into pen-relative
// positions.
func convertGlyphs(glyphs []shaping.Glyph) []ShapedGlyph {
	if len(glyphs) == 0 {
		return nil
	}
	result := make([]ShapedGlyph, len(glyphs))
	var x float64
	for i, g := range glyphs {
		adv := fixedToFloat(g.Advance)
		result[i] = ShapedGlyph{
			ID:       GlyphID(uint16(g.GlyphID)), //nolint:gosec // glyph IDs are 16-bit in practice
			X:        x + fixedToFloat(g.XOffset),
			Y:        fixedToFloat(g.YOffset),
			XAdvance: adv,
			Cluster:  g.TextIndex(),
		}
		x += adv
	}
	return result
}

// floatToFixed converts a pixel size to 26.6 fixed point.
func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

// fixedToFloat converts 26.6 fixed point to float64.
func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64.0
}
