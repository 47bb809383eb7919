// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package teximage

import (
	"encoding/binary"
	"math"
)

// EncodeFloats packs float32 values into little-endian bytes, preserving
// the exact bit pattern of every value.
func EncodeFloats(values []float32) []byte {
	out := make([]byte, 4*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(v))
	}
	return out
}

// DecodeFloats reinterprets little-endian bytes as float32 values. The
// inverse of [EncodeFloats]; a pure bit copy, never a value conversion.
// Trailing bytes short of a full value are ignored.
func DecodeFloats(pix []byte) []float32 {
	out := make([]float32, len(pix)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(pix[4*i:]))
	}
	return out
}
