// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package driver

import (
	"fmt"
	"image"
)

// Version is the negotiated API version of a driver.
//
// The middleware never interprets the version beyond ordering; the
// concrete meaning of each (major, minor) pair belongs to the backing
// API (Vulkan-style numbering in the wgpu adapter).
type Version struct {
	Major int
	Minor int
}

// AtLeast reports whether v is the same or a newer version than other.
func (v Version) AtLeast(other Version) bool {
	if v.Major != other.Major {
		return v.Major > other.Major
	}
	return v.Minor >= other.Minor
}

// String returns the version in "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Profile identifies the platform profile a driver runs under.
//
// The profile folds what would otherwise be a build-time platform matrix
// (desktop / embedded / web) into a single runtime value that is consulted
// at the same points extension support is.
type Profile uint8

const (
	// ProfileDesktop is a full desktop driver.
	ProfileDesktop Profile = iota

	// ProfileES is an embedded (GLES-class) driver. Embedded profiles do
	// not guarantee floating-point framebuffer reads.
	ProfileES

	// ProfileWeb is a browser-hosted driver with the same read
	// restrictions as ProfileES.
	ProfileWeb
)

// String returns a human-readable profile name.
func (p Profile) String() string {
	switch p {
	case ProfileDesktop:
		return "Desktop"
	case ProfileES:
		return "ES"
	case ProfileWeb:
		return "Web"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(p))
	}
}

// FloatReadGuaranteed reports whether framebuffer reads of floating-point
// data are guaranteed to work on this profile. Embedded and web profiles
// only guarantee unsigned-integer reads; float data must be bit-cast
// through a uint texture first.
func (p Profile) FloatReadGuaranteed() bool {
	return p == ProfileDesktop
}

// Object identifiers. Zero is the sentinel "no object" value for every
// kind; drivers never return zero from a successful creation call.
type (
	// TextureID identifies a native texture object.
	TextureID uint64

	// FramebufferID identifies a native framebuffer object.
	FramebufferID uint64

	// BufferID identifies a native buffer object.
	BufferID uint64

	// MemoryID identifies a native device-memory allocation.
	MemoryID uint64

	// RenderPassID identifies a native render pass object.
	RenderPassID uint64

	// ShaderID identifies a native shader program object.
	ShaderID uint64
)

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Label is an optional debug label for the texture.
	Label string

	// Width is the texture width in pixels.
	Width int

	// Height is the texture height in pixels.
	Height int

	// Levels is the number of mip levels. Zero means 1.
	Levels int

	// Format is the texture pixel format.
	Format PixelFormat
}

// RenderPassInfo describes parameters for creating a render pass.
//
// Only the attachment formats matter to this layer; load/store operations
// and subpass dependencies are fixed-function defaults chosen by the
// driver.
type RenderPassInfo struct {
	// Label is an optional debug label.
	Label string

	// ColorFormats are the color attachment formats, in attachment order.
	ColorFormats []PixelFormat

	// DepthFormat is the depth attachment format, or PixelFormatUndefined
	// for no depth attachment.
	DepthFormat PixelFormat

	// Subpasses is the subpass count. Zero means 1.
	Subpasses int
}

// MemoryRequirements describes the memory needs of a buffer as reported
// by the driver.
type MemoryRequirements struct {
	// Size is the required allocation size in bytes. May be larger than
	// the requested buffer size due to alignment padding.
	Size int

	// Alignment is the required allocation alignment in bytes.
	Alignment int
}

// FramebufferStatus is the result of a framebuffer completeness check.
type FramebufferStatus uint32

const (
	// FramebufferComplete means the framebuffer is usable.
	FramebufferComplete FramebufferStatus = iota

	// FramebufferIncompleteAttachment means an attachment is not
	// renderable in its current format.
	FramebufferIncompleteAttachment

	// FramebufferIncompleteMissingAttachment means no attachment is bound.
	FramebufferIncompleteMissingAttachment

	// FramebufferUnsupported means the attachment combination is not
	// supported by the implementation.
	FramebufferUnsupported
)

// String returns the canonical status token.
func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "Complete"
	case FramebufferIncompleteAttachment:
		return "IncompleteAttachment"
	case FramebufferIncompleteMissingAttachment:
		return "IncompleteMissingAttachment"
	case FramebufferUnsupported:
		return "Unsupported"
	default:
		return fmt.Sprintf("Unknown(%d)", uint32(s))
	}
}

// ResetStatus is the result of a graphics-reset query on drivers with a
// robustness extension.
type ResetStatus uint8

const (
	// ResetStatusNone means no reset occurred.
	ResetStatusNone ResetStatus = iota

	// ResetStatusGuilty means this context caused a device reset.
	ResetStatusGuilty

	// ResetStatusInnocent means another context caused a device reset.
	ResetStatusInnocent

	// ResetStatusUnknown means a reset of unknown origin occurred.
	ResetStatusUnknown
)

// Driver is the boundary to the native graphics API.
//
// The middleware treats a Driver as an opaque capability-query and
// command-submission service: it never looks behind the IDs it gets back.
// All calls are synchronous from the caller's point of view and are only
// safe from a single goroutine per driver, matching how the underlying
// APIs are used.
//
// Creation calls return an error on failure; destruction calls never fail,
// consistent with native destroy entry points being defined as always
// succeeding.
type Driver interface {
	// Name returns the driver identification string (vendor and renderer),
	// used to match known-buggy driver workarounds.
	Name() string

	// Version returns the negotiated API version. A failing version query
	// is unrecoverable: without it no capability snapshot can be built.
	Version() (Version, error)

	// Profile returns the platform profile.
	Profile() Profile

	// IsExtensionSupported reports whether the named extension is present.
	IsExtensionSupported(name string) bool

	// CreateTexture creates a texture. The descriptor's format must be
	// supported by the driver.
	CreateTexture(desc TextureDescriptor) (TextureID, error)

	// DestroyTexture releases a texture.
	DestroyTexture(id TextureID)

	// WriteTexture replaces the full contents of one mip level.
	WriteTexture(id TextureID, level int, pix []byte) error

	// WriteTextureSub replaces a sub-rectangle of one mip level. Only
	// valid when the sub-image-upload extension is present.
	WriteTextureSub(id TextureID, level int, rect image.Rectangle, pix []byte) error

	// ReadTextureSub reads a sub-rectangle of one mip level directly.
	// Only valid when the get-texture-sub-image extension is present.
	ReadTextureSub(id TextureID, level int, rect image.Rectangle) ([]byte, error)

	// CreateFramebuffer creates an empty framebuffer.
	CreateFramebuffer() (FramebufferID, error)

	// DestroyFramebuffer releases a framebuffer.
	DestroyFramebuffer(id FramebufferID)

	// AttachTexture attaches one mip level of a texture as the
	// framebuffer's color attachment 0.
	AttachTexture(fb FramebufferID, tex TextureID, level int) error

	// FramebufferStatus returns the completeness status of a framebuffer.
	FramebufferStatus(fb FramebufferID) FramebufferStatus

	// ReadFramebuffer reads a pixel rectangle from the framebuffer's
	// color attachment 0.
	ReadFramebuffer(fb FramebufferID, rect image.Rectangle) ([]byte, error)

	// CreateBuffer creates a buffer of the given byte size. The buffer
	// has no memory bound until BindBufferMemory succeeds.
	CreateBuffer(size int) (BufferID, error)

	// DestroyBuffer releases a buffer.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data at a byte offset into a buffer.
	WriteBuffer(id BufferID, offset int, data []byte) error

	// ReadBuffer reads size bytes at a byte offset from a buffer. May
	// stall until the device is idle.
	ReadBuffer(id BufferID, offset, size int) ([]byte, error)

	// BufferMemoryRequirements queries the memory needs of a buffer
	// through the baseline entry point.
	BufferMemoryRequirements(id BufferID) (MemoryRequirements, error)

	// BufferMemoryRequirements2 is the extended-query variant. Only valid
	// when the get-memory-requirements2 extension or a new enough core
	// version is present.
	BufferMemoryRequirements2(id BufferID) (MemoryRequirements, error)

	// AllocateMemory allocates device memory.
	AllocateMemory(size int) (MemoryID, error)

	// FreeMemory releases a device-memory allocation.
	FreeMemory(id MemoryID)

	// BindBufferMemory binds memory to a buffer through the baseline
	// entry point.
	BindBufferMemory(buf BufferID, mem MemoryID, offset int) error

	// BindBufferMemory2 is the batched-bind variant. Only valid when the
	// bind-memory2 extension or a new enough core version is present.
	BindBufferMemory2(buf BufferID, mem MemoryID, offset int) error

	// CreateRenderPass creates a render pass through the baseline entry
	// point.
	CreateRenderPass(info RenderPassInfo) (RenderPassID, error)

	// CreateRenderPass2 creates a render pass through the extended entry
	// point. Only valid when the create-renderpass2 extension or a new
	// enough core version is present.
	CreateRenderPass2(info RenderPassInfo) (RenderPassID, error)

	// DestroyRenderPass releases a render pass.
	DestroyRenderPass(id RenderPassID)

	// BeginRenderPass begins a render pass instance on the framebuffer.
	BeginRenderPass(rp RenderPassID, fb FramebufferID) error

	// BeginRenderPass2 is the extended-begin variant.
	BeginRenderPass2(rp RenderPassID, fb FramebufferID) error

	// NextSubpass advances to the next subpass.
	NextSubpass() error

	// NextSubpass2 is the extended variant.
	NextSubpass2() error

	// EndRenderPass ends the current render pass instance.
	EndRenderPass() error

	// EndRenderPass2 is the extended variant.
	EndRenderPass2() error

	// CopyBuffer copies a byte range between buffers through the baseline
	// entry point.
	CopyBuffer(src, dst BufferID, srcOffset, dstOffset, size int) error

	// CopyBuffer2 is the extended-copy variant. Only valid when the
	// copy-commands2 extension or a new enough core version is present.
	CopyBuffer2(src, dst BufferID, srcOffset, dstOffset, size int) error

	// CopyImage copies a pixel rectangle between same-format textures
	// through the baseline entry point.
	CopyImage(src, dst TextureID, rect image.Rectangle) error

	// CopyImage2 is the extended-copy variant.
	CopyImage2(src, dst TextureID, rect image.Rectangle) error

	// CompileShader compiles and links a shader program, blocking until
	// the driver reports completion.
	CompileShader(source []byte) (ShaderID, error)

	// SubmitCompile starts a background compile and returns immediately.
	// The program is not usable until WaitShader returns. Only valid when
	// the parallel-shader-compile extension is present; without it,
	// callers fall back to CompileShader.
	SubmitCompile(source []byte) (ShaderID, error)

	// WaitShader blocks until a program submitted with SubmitCompile has
	// finished compiling and linking, and returns the link result.
	WaitShader(id ShaderID) error

	// DestroyShader releases a shader program.
	DestroyShader(id ShaderID)

	// ClearDepth clears the depth attachment using the double-precision
	// entry point. Desktop profiles only.
	ClearDepth(depth float64) error

	// ClearDepthFloat clears the depth attachment using the
	// single-precision entry point. Available everywhere.
	ClearDepthFloat(depth float32) error

	// GraphicsResetStatus queries whether the device was reset. Only
	// valid when the robustness extension is present.
	GraphicsResetStatus() ResetStatus

	// ReinterpretFloatPass runs a fullscreen pass that bit-casts each
	// texel in rect of the given mip level of the float texture src into
	// the rect-sized unsigned-integer texture dst (floatBitsToUint, no
	// value conversion). Source and destination texel widths must match.
	ReinterpretFloatPass(src TextureID, level int, rect image.Rectangle, dst TextureID) error

	// DistanceFieldPass runs a fullscreen pass computing a signed
	// distance field of src into the smaller dst, searching radius texels
	// around each output sample.
	DistanceFieldPass(src, dst TextureID, radius int) error
}
