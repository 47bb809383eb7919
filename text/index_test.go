// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package text

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestIndexTypeProperties(t *testing.T) {
	tests := []struct {
		typ       IndexType
		bytes     int
		maxIndex  int
		maxGlyphs int
	}{
		{IndexTypeUnsigned8, 1, math.MaxUint8, 64},
		{IndexTypeUnsigned16, 2, math.MaxUint16, 16384},
		{IndexTypeUnsigned32, 4, math.MaxUint32, (math.MaxUint32 + 1) / 4},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := tt.typ.Bytes(); got != tt.bytes {
				t.Errorf("Bytes() = %d, want %d", got, tt.bytes)
			}
			if got := tt.typ.MaxIndex(); got != tt.maxIndex {
				t.Errorf("MaxIndex() = %d, want %d", got, tt.maxIndex)
			}
			if got := tt.typ.MaxGlyphs(); got != tt.maxGlyphs {
				t.Errorf("MaxGlyphs() = %d, want %d", got, tt.maxGlyphs)
			}
		})
	}
}

func TestIndexTypeFor(t *testing.T) {
	tests := []struct {
		maxIndex int
		want     IndexType
	}{
		{0, IndexTypeUnsigned8},
		{255, IndexTypeUnsigned8},
		{256, IndexTypeUnsigned16},
		{65535, IndexTypeUnsigned16},
		{65536, IndexTypeUnsigned32},
		{math.MaxUint32, IndexTypeUnsigned32},
	}
	for _, tt := range tests {
		if got := indexTypeFor(tt.maxIndex); got != tt.want {
			t.Errorf("indexTypeFor(%d) = %v, want %v", tt.maxIndex, got, tt.want)
		}
	}
}

func TestIndexTypeForMonotonic(t *testing.T) {
	// A larger maximum index can never select a narrower type.
	prev := indexTypeFor(0)
	for maxIndex := 1; maxIndex <= 1<<17; maxIndex++ {
		cur := indexTypeFor(maxIndex)
		if cur < prev {
			t.Fatalf("indexTypeFor(%d) = %v narrower than indexTypeFor(%d) = %v",
				maxIndex, cur, maxIndex-1, prev)
		}
		prev = cur
	}
}

func TestQuadIndicesSequence(t *testing.T) {
	want := []uint32{
		0, 1, 2, 2, 1, 3,
		4, 5, 6, 6, 5, 7,
		8, 9, 10, 10, 9, 11,
		12, 13, 14, 14, 13, 15,
		16, 17, 18, 18, 17, 19,
	}

	data := quadIndices(5, IndexTypeUnsigned32)
	if len(data) != len(want)*4 {
		t.Fatalf("quadIndices() = %d bytes, want %d", len(data), len(want)*4)
	}
	for i, w := range want {
		if got := binary.LittleEndian.Uint32(data[4*i:]); got != w {
			t.Errorf("index %d = %d, want %d", i, got, w)
		}
	}
}

func TestQuadIndicesSameValuesAtEveryWidth(t *testing.T) {
	const glyphs = 10
	wide := quadIndices(glyphs, IndexTypeUnsigned32)

	u8 := quadIndices(glyphs, IndexTypeUnsigned8)
	u16 := quadIndices(glyphs, IndexTypeUnsigned16)
	for i := 0; i < glyphs*6; i++ {
		want := binary.LittleEndian.Uint32(wide[4*i:])
		if got := uint32(u8[i]); got != want {
			t.Errorf("u8 index %d = %d, want %d", i, got, want)
		}
		if got := uint32(binary.LittleEndian.Uint16(u16[2*i:])); got != want {
			t.Errorf("u16 index %d = %d, want %d", i, got, want)
		}
	}
}
