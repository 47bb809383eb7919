// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import (
	"image"

	"github.com/gogpu/gpudev/driver"
)

// Slot function signatures. Every slot takes the driver explicitly; there
// is no implicit current-device state anywhere in the middleware.
type (
	// CreateRenderPassFunc creates a render pass through whichever entry
	// point the builder selected.
	CreateRenderPassFunc func(drv driver.Driver, info driver.RenderPassInfo) (driver.RenderPassID, error)

	// BeginRenderPassFunc begins a render pass instance.
	BeginRenderPassFunc func(drv driver.Driver, rp driver.RenderPassID, fb driver.FramebufferID) error

	// SubpassControlFunc advances or ends a render pass instance.
	SubpassControlFunc func(drv driver.Driver) error

	// BindBufferMemoryFunc binds device memory to a buffer.
	BindBufferMemoryFunc func(drv driver.Driver, buf driver.BufferID, mem driver.MemoryID, offset int) error

	// BufferMemoryRequirementsFunc queries the memory needs of a buffer.
	BufferMemoryRequirementsFunc func(drv driver.Driver, buf driver.BufferID) (driver.MemoryRequirements, error)

	// CopyBufferFunc copies a byte range between buffers.
	CopyBufferFunc func(drv driver.Driver, src, dst driver.BufferID, srcOffset, dstOffset, size int) error

	// CopyImageFunc copies a pixel rectangle between textures.
	CopyImageFunc func(drv driver.Driver, src, dst driver.TextureID, rect image.Rectangle) error

	// ReadTextureSubFunc reads a sub-rectangle of one mip level of a
	// texture into client memory.
	ReadTextureSubFunc func(drv driver.Driver, tex driver.TextureID, level int, rect image.Rectangle, format driver.PixelFormat) ([]byte, error)

	// ClearDepthFunc clears the depth attachment.
	ClearDepthFunc func(drv driver.Driver, depth float64) error

	// GraphicsResetStatusFunc queries whether the device was reset.
	GraphicsResetStatusFunc func(drv driver.Driver) driver.ResetStatus
)

// CreateRenderPassKind tags the selected render pass creation path.
type CreateRenderPassKind uint8

const (
	// CreateRenderPassCore12 uses the extended entry point gated on core
	// version 1.2.
	CreateRenderPassCore12 CreateRenderPassKind = iota

	// CreateRenderPassKHR uses the extended entry point gated on the
	// create-renderpass2 extension.
	CreateRenderPassKHR

	// CreateRenderPassCompat uses the baseline entry point.
	CreateRenderPassCompat
)

// String returns the tag name.
func (k CreateRenderPassKind) String() string {
	return [...]string{"Core12", "KHR", "Compat"}[k]
}

// RenderPassControlKind tags the selected begin/next/end path. The three
// control slots always use the same variant as each other.
type RenderPassControlKind uint8

const (
	// RenderPassControl2 uses the extended begin/next/end entry points.
	RenderPassControl2 RenderPassControlKind = iota

	// RenderPassControlBasic uses the baseline entry points.
	RenderPassControlBasic
)

// String returns the tag name.
func (k RenderPassControlKind) String() string {
	return [...]string{"Control2", "Basic"}[k]
}

// BindBufferMemoryKind tags the selected memory-bind path.
type BindBufferMemoryKind uint8

const (
	// BindBufferMemory2 uses the batched entry point (core 1.1 or the
	// bind-memory2 extension).
	BindBufferMemory2 BindBufferMemoryKind = iota

	// BindBufferMemorySingle uses the baseline entry point.
	BindBufferMemorySingle
)

// String returns the tag name.
func (k BindBufferMemoryKind) String() string {
	return [...]string{"Bind2", "Single"}[k]
}

// MemoryRequirementsKind tags the selected memory-requirements query.
type MemoryRequirementsKind uint8

const (
	// MemoryRequirements2 uses the extended query (core 1.1 or the
	// get-memory-requirements2 extension).
	MemoryRequirements2 MemoryRequirementsKind = iota

	// MemoryRequirementsBasic uses the baseline query.
	MemoryRequirementsBasic
)

// String returns the tag name.
func (k MemoryRequirementsKind) String() string {
	return [...]string{"Requirements2", "Basic"}[k]
}

// CopyKind tags the selected buffer/image copy path.
type CopyKind uint8

const (
	// CopyCommands2 uses the extended copy entry points (core 1.3 or the
	// copy-commands2 extension).
	CopyCommands2 CopyKind = iota

	// CopyBasic uses the baseline copy entry points.
	CopyBasic

	// CopyImagePatched is the workaround-substituted image copy used on
	// drivers whose extended copy mishandles the extent. Only ever set on
	// the image copy slot.
	CopyImagePatched
)

// String returns the tag name.
func (k CopyKind) String() string {
	return [...]string{"Commands2", "Basic", "Patched"}[k]
}

// ReadTextureSubKind tags the selected texture sub-image read path.
type ReadTextureSubKind uint8

const (
	// ReadTextureSubDirect delegates to the native sub-image read.
	ReadTextureSubDirect ReadTextureSubKind = iota

	// ReadTextureSubFramebuffer emulates the read by attaching the mip
	// level to a transient framebuffer.
	ReadTextureSubFramebuffer
)

// String returns the tag name.
func (k ReadTextureSubKind) String() string {
	return [...]string{"Direct", "Framebuffer"}[k]
}

// ClearDepthKind tags the selected depth clear entry point.
type ClearDepthKind uint8

const (
	// ClearDepthDouble uses the double-precision entry point.
	ClearDepthDouble ClearDepthKind = iota

	// ClearDepthFloat uses the single-precision entry point required on
	// embedded and web profiles.
	ClearDepthFloat
)

// String returns the tag name.
func (k ClearDepthKind) String() string {
	return [...]string{"Double", "Float"}[k]
}

// ResetStatusKind tags the selected graphics-reset query.
type ResetStatusKind uint8

const (
	// ResetStatusRobustness queries through the robustness extension.
	ResetStatusRobustness ResetStatusKind = iota

	// ResetStatusNoOp always reports no reset; used when no robustness
	// query exists.
	ResetStatusNoOp
)

// String returns the tag name.
func (k ResetStatusKind) String() string {
	return [...]string{"Robustness", "NoOp"}[k]
}

// Table maps every multi-implementation operation to the concrete
// implementation selected for one device.
//
// A Table is built exactly once per device by [Build] and never mutated
// afterwards, so consumers can call through it without any locking under
// the single-submission-goroutine model. No slot is ever nil after Build.
// Each slot carries a Kind tag so the selection can be asserted without a
// live GPU (function values are not comparable in Go).
type Table struct {
	CreateRenderPass     CreateRenderPassFunc
	CreateRenderPassKind CreateRenderPassKind

	BeginRenderPass       BeginRenderPassFunc
	NextSubpass           SubpassControlFunc
	EndRenderPass         SubpassControlFunc
	RenderPassControlKind RenderPassControlKind

	BindBufferMemory     BindBufferMemoryFunc
	BindBufferMemoryKind BindBufferMemoryKind

	BufferMemoryRequirements BufferMemoryRequirementsFunc
	MemoryRequirementsKind   MemoryRequirementsKind

	CopyBuffer     CopyBufferFunc
	CopyBufferKind CopyKind

	CopyImage     CopyImageFunc
	CopyImageKind CopyKind

	ReadTextureSub     ReadTextureSubFunc
	ReadTextureSubKind ReadTextureSubKind

	ClearDepth     ClearDepthFunc
	ClearDepthKind ClearDepthKind

	GraphicsResetStatus     GraphicsResetStatusFunc
	GraphicsResetStatusKind ResetStatusKind

	// EncounteredWorkarounds lists the names of driver workarounds that
	// were substituted into the table, for diagnostics.
	EncounteredWorkarounds []string
}
