// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"encoding/binary"
	"fmt"
	"math"
)

// IndexType is the element width of a glyph index buffer.
type IndexType uint8

const (
	// IndexTypeUnsigned8 holds indices up to 255.
	IndexTypeUnsigned8 IndexType = iota

	// IndexTypeUnsigned16 holds indices up to 65535. The renderer's
	// baseline type.
	IndexTypeUnsigned16

	// IndexTypeUnsigned32 holds all practically occurring indices.
	IndexTypeUnsigned32
)

// String returns the type name.
func (t IndexType) String() string {
	switch t {
	case IndexTypeUnsigned8:
		return "Unsigned8"
	case IndexTypeUnsigned16:
		return "Unsigned16"
	case IndexTypeUnsigned32:
		return "Unsigned32"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(t))
	}
}

// Bytes returns the element width in bytes.
func (t IndexType) Bytes() int {
	switch t {
	case IndexTypeUnsigned8:
		return 1
	case IndexTypeUnsigned16:
		return 2
	default:
		return 4
	}
}

// MaxIndex returns the largest representable index value.
func (t IndexType) MaxIndex() int {
	switch t {
	case IndexTypeUnsigned8:
		return math.MaxUint8
	case IndexTypeUnsigned16:
		return math.MaxUint16
	default:
		return math.MaxUint32
	}
}

// MaxGlyphs returns how many glyph quads the type can address: the
// largest vertex index of N glyphs is 4N-1.
func (t IndexType) MaxGlyphs() int {
	return (t.MaxIndex() + 1) / 4
}

// indexTypeFor returns the smallest type that can represent maxIndex.
func indexTypeFor(maxIndex int) IndexType {
	switch {
	case maxIndex <= math.MaxUint8:
		return IndexTypeUnsigned8
	case maxIndex <= math.MaxUint16:
		return IndexTypeUnsigned16
	default:
		return IndexTypeUnsigned32
	}
}

// quadIndices generates the index sequence for glyph quads at the given
// element width: 0,1,2,2,1,3 for the first quad, then shifted by four
// per glyph. Serialized little-endian, ready for upload.
func quadIndices(glyphs int, t IndexType) []byte {
	const perQuad = 6
	out := make([]byte, glyphs*perQuad*t.Bytes())
	pattern := [perQuad]int{0, 1, 2, 2, 1, 3}
	for g := 0; g < glyphs; g++ {
		base := 4 * g
		for i, p := range pattern {
			idx := base + p
			off := (g*perQuad + i) * t.Bytes()
			switch t {
			case IndexTypeUnsigned8:
				out[off] = byte(idx)
			case IndexTypeUnsigned16:
				binary.LittleEndian.PutUint16(out[off:], uint16(idx))
			default:
				binary.LittleEndian.PutUint32(out[off:], uint32(idx))
			}
		}
	}
	return out
}
