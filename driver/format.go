// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PixelFormat is the texel format of a texture or readback image.
//
// The set is deliberately small: it covers the formats the middleware
// itself allocates (glyph caches, distance fields, readback staging) plus
// the packed shared-exponent format that exists to exercise the
// non-renderable error path.
type PixelFormat uint8

const (
	// PixelFormatUndefined is the zero value, used for "no attachment".
	PixelFormatUndefined PixelFormat = iota

	// PixelFormatR8Unorm is single-channel 8-bit normalized.
	PixelFormatR8Unorm

	// PixelFormatLuminance is the legacy single-channel format used when
	// the texture-rg extension is absent. Same texel width as R8.
	PixelFormatLuminance

	// PixelFormatRG8Unorm is two-channel 8-bit normalized.
	PixelFormatRG8Unorm

	// PixelFormatRGBA8Unorm is four-channel 8-bit normalized.
	PixelFormatRGBA8Unorm

	// PixelFormatR32Float is single-channel 32-bit float.
	PixelFormatR32Float

	// PixelFormatRG32Float is two-channel 32-bit float.
	PixelFormatRG32Float

	// PixelFormatRGB32Float is three-channel 32-bit float.
	PixelFormatRGB32Float

	// PixelFormatRGBA32Float is four-channel 32-bit float.
	PixelFormatRGBA32Float

	// PixelFormatR32Uint is single-channel 32-bit unsigned integer.
	PixelFormatR32Uint

	// PixelFormatRG32Uint is two-channel 32-bit unsigned integer.
	PixelFormatRG32Uint

	// PixelFormatRGB32Uint is three-channel 32-bit unsigned integer.
	PixelFormatRGB32Uint

	// PixelFormatRGBA32Uint is four-channel 32-bit unsigned integer.
	PixelFormatRGBA32Uint

	// PixelFormatRGB9E5Float is the packed shared-exponent HDR format.
	// It can be sampled but never rendered to, so it is not
	// framebuffer-readable on any driver.
	PixelFormatRGB9E5Float

	// PixelFormatDepth24Stencil8 is the combined depth/stencil format.
	PixelFormatDepth24Stencil8
)

// String returns a human-readable format name.
func (f PixelFormat) String() string {
	switch f {
	case PixelFormatUndefined:
		return "Undefined"
	case PixelFormatR8Unorm:
		return "R8Unorm"
	case PixelFormatLuminance:
		return "Luminance"
	case PixelFormatRG8Unorm:
		return "RG8Unorm"
	case PixelFormatRGBA8Unorm:
		return "RGBA8Unorm"
	case PixelFormatR32Float:
		return "R32Float"
	case PixelFormatRG32Float:
		return "RG32Float"
	case PixelFormatRGB32Float:
		return "RGB32Float"
	case PixelFormatRGBA32Float:
		return "RGBA32Float"
	case PixelFormatR32Uint:
		return "R32Uint"
	case PixelFormatRG32Uint:
		return "RG32Uint"
	case PixelFormatRGB32Uint:
		return "RGB32Uint"
	case PixelFormatRGBA32Uint:
		return "RGBA32Uint"
	case PixelFormatRGB9E5Float:
		return "RGB9E5Float"
	case PixelFormatDepth24Stencil8:
		return "Depth24Stencil8"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(f))
	}
}

// Channels returns the number of color channels.
func (f PixelFormat) Channels() int {
	switch f {
	case PixelFormatR8Unorm, PixelFormatLuminance, PixelFormatR32Float, PixelFormatR32Uint:
		return 1
	case PixelFormatRG8Unorm, PixelFormatRG32Float, PixelFormatRG32Uint:
		return 2
	case PixelFormatRGB32Float, PixelFormatRGB32Uint, PixelFormatRGB9E5Float:
		return 3
	case PixelFormatRGBA8Unorm, PixelFormatRGBA32Float, PixelFormatRGBA32Uint:
		return 4
	default:
		return 0
	}
}

// BytesPerPixel returns the texel width in bytes.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatR8Unorm, PixelFormatLuminance:
		return 1
	case PixelFormatRG8Unorm:
		return 2
	case PixelFormatRGBA8Unorm, PixelFormatR32Float, PixelFormatR32Uint,
		PixelFormatRGB9E5Float, PixelFormatDepth24Stencil8:
		return 4
	case PixelFormatRG32Float, PixelFormatRG32Uint:
		return 8
	case PixelFormatRGB32Float, PixelFormatRGB32Uint:
		return 12
	case PixelFormatRGBA32Float, PixelFormatRGBA32Uint:
		return 16
	default:
		return 0
	}
}

// IsFloat reports whether the format stores floating-point texels.
func (f PixelFormat) IsFloat() bool {
	switch f {
	case PixelFormatR32Float, PixelFormatRG32Float, PixelFormatRGB32Float,
		PixelFormatRGBA32Float, PixelFormatRGB9E5Float:
		return true
	}
	return false
}

// Renderable reports whether the format can be attached to a framebuffer
// as a color target. Non-renderable formats cannot take the framebuffer
// readback path at all.
func (f PixelFormat) Renderable() bool {
	switch f {
	case PixelFormatUndefined, PixelFormatRGB9E5Float, PixelFormatLuminance,
		PixelFormatDepth24Stencil8:
		return false
	}
	return true
}

// UintSibling returns the unsigned-integer format with the same channel
// count and texel width as a 32-bit float format, used by the
// bit-reinterpretation readback path. Returns PixelFormatUndefined when
// the format has no uint sibling.
func (f PixelFormat) UintSibling() PixelFormat {
	switch f {
	case PixelFormatR32Float:
		return PixelFormatR32Uint
	case PixelFormatRG32Float:
		return PixelFormatRG32Uint
	case PixelFormatRGB32Float:
		return PixelFormatRGB32Uint
	case PixelFormatRGBA32Float:
		return PixelFormatRGBA32Uint
	default:
		return PixelFormatUndefined
	}
}

// ToWGPUFormat converts to the wgpu texture format used by the hal-backed
// driver adapter. Formats without a wgpu equivalent (the legacy luminance
// alias) map to their closest match; unconvertible formats return
// gputypes.TextureFormatUndefined.
func (f PixelFormat) ToWGPUFormat() gputypes.TextureFormat {
	switch f {
	case PixelFormatR8Unorm, PixelFormatLuminance:
		return gputypes.TextureFormatR8Unorm
	case PixelFormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	case PixelFormatDepth24Stencil8:
		return gputypes.TextureFormatDepth24PlusStencil8
	default:
		return gputypes.TextureFormatUndefined
	}
}
