// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package caps

import "github.com/gogpu/gpudev/driver"

// Extension is the canonical name of an optional driver capability.
type Extension string

// Extensions the dispatch builder understands. The KHR-prefixed names are
// checked before vendor-specific ones when both provide the same
// functionality.
const (
	// ExtGetTextureSubImage allows reading an arbitrary sub-rectangle of
	// a texture without a framebuffer round trip.
	ExtGetTextureSubImage Extension = "ARB_get_texture_sub_image"

	// ExtCreateRenderPass2 provides the extended render pass creation and
	// begin/next/end entry points.
	ExtCreateRenderPass2 Extension = "KHR_create_renderpass2"

	// ExtCopyCommands2 provides the extended buffer/image copy entry
	// points.
	ExtCopyCommands2 Extension = "KHR_copy_commands2"

	// ExtBindMemory2 provides the batched memory-bind entry point.
	ExtBindMemory2 Extension = "KHR_bind_memory2"

	// ExtGetMemoryRequirements2 provides the extended memory-requirements
	// query.
	ExtGetMemoryRequirements2 Extension = "KHR_get_memory_requirements2"

	// ExtRobustness provides the graphics-reset status query.
	ExtRobustness Extension = "EXT_robustness"

	// ExtTextureRG provides single- and two-channel texture formats,
	// preferred over the legacy luminance format for glyph caches.
	ExtTextureRG Extension = "EXT_texture_rg"

	// ExtSubImageUpload allows partial texture uploads. Without it,
	// consumers re-upload the whole resource.
	ExtSubImageUpload Extension = "EXT_unpack_subimage"

	// ExtParallelShaderCompile allows background shader compilation
	// split into a submit step and a blocking finalize step.
	ExtParallelShaderCompile Extension = "KHR_parallel_shader_compile"
)

// DefaultInterest is the extension set probed when a device is created
// without an explicit list. It covers every extension the dispatch
// builder consults.
func DefaultInterest() []Extension {
	return []Extension{
		ExtGetTextureSubImage,
		ExtCreateRenderPass2,
		ExtCopyCommands2,
		ExtBindMemory2,
		ExtGetMemoryRequirements2,
		ExtRobustness,
		ExtTextureRG,
		ExtSubImageUpload,
		ExtParallelShaderCompile,
	}
}

// Snapshot is the cached result of probing a driver's capabilities.
//
// A Snapshot is created once per device by [Probe], is immutable
// afterwards, and is safe to read from any number of call sites within
// the device's owning goroutine. Repeated capability checks never re-hit
// the driver.
type Snapshot struct {
	version    driver.Version
	profile    driver.Profile
	driverName string
	supported  map[Extension]bool
	detected   []Extension
}

// Version returns the negotiated API version.
func (s *Snapshot) Version() driver.Version { return s.version }

// Profile returns the platform profile.
func (s *Snapshot) Profile() driver.Profile { return s.profile }

// DriverName returns the raw driver identification string, used to match
// known-buggy driver workarounds.
func (s *Snapshot) DriverName() string { return s.driverName }

// Supports reports whether the extension was detected during probing.
// Extensions outside the probed interest set report false.
func (s *Snapshot) Supports(ext Extension) bool { return s.supported[ext] }

// IsVersionSupported reports whether the negotiated version is at least v.
func (s *Snapshot) IsVersionSupported(v driver.Version) bool {
	return s.version.AtLeast(v)
}

// Detected returns the probed extensions that are present, in probe
// order, for reporting which extensions are in active use.
func (s *Snapshot) Detected() []Extension {
	out := make([]Extension, len(s.detected))
	copy(out, s.detected)
	return out
}
