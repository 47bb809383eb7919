// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dispatch

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
)

// ErrNotFramebufferReadable is returned by the framebuffer-emulated
// sub-image read when the source texture format cannot be attached as a
// color target at all.
var ErrNotFramebufferReadable = errors.New("texture format not framebuffer-readable")

// Core version gates for version-provided functionality.
var (
	verRenderPass2  = driver.Version{Major: 1, Minor: 2}
	verMemory2      = driver.Version{Major: 1, Minor: 1}
	verCopyCommands = driver.Version{Major: 1, Minor: 3}
)

// Build populates a dispatch table from a capability snapshot.
//
// Build is a pure function of (snapshot, disabled-workaround set): it
// makes no driver calls and the same inputs always select the same slot
// implementations. For every slot the newest core-version path is checked
// first, then KHR extensions, then vendor extensions, then the baseline
// fallback that works everywhere. Known-buggy drivers get a patched
// implementation substituted last; every substitution is recorded in
// [Table.EncounteredWorkarounds].
func Build(snap *caps.Snapshot, disabled WorkaroundSet) *Table {
	t := &Table{}

	switch {
	case snap.IsVersionSupported(verRenderPass2):
		t.CreateRenderPass = createRenderPass2
		t.CreateRenderPassKind = CreateRenderPassCore12
	case snap.Supports(caps.ExtCreateRenderPass2):
		t.CreateRenderPass = createRenderPass2
		t.CreateRenderPassKind = CreateRenderPassKHR
	default:
		t.CreateRenderPass = createRenderPassBasic
		t.CreateRenderPassKind = CreateRenderPassCompat
	}

	// Begin/next/end follow the creation path: the extended control entry
	// points exist exactly when the extended creation one does.
	if t.CreateRenderPassKind == CreateRenderPassCompat {
		t.BeginRenderPass = beginRenderPassBasic
		t.NextSubpass = nextSubpassBasic
		t.EndRenderPass = endRenderPassBasic
		t.RenderPassControlKind = RenderPassControlBasic
	} else {
		t.BeginRenderPass = beginRenderPass2
		t.NextSubpass = nextSubpass2
		t.EndRenderPass = endRenderPass2
		t.RenderPassControlKind = RenderPassControl2
	}

	if snap.IsVersionSupported(verMemory2) || snap.Supports(caps.ExtBindMemory2) {
		t.BindBufferMemory = bindBufferMemory2
		t.BindBufferMemoryKind = BindBufferMemory2
	} else {
		t.BindBufferMemory = bindBufferMemorySingle
		t.BindBufferMemoryKind = BindBufferMemorySingle
	}

	if snap.IsVersionSupported(verMemory2) || snap.Supports(caps.ExtGetMemoryRequirements2) {
		t.BufferMemoryRequirements = bufferMemoryRequirements2
		t.MemoryRequirementsKind = MemoryRequirements2
	} else {
		t.BufferMemoryRequirements = bufferMemoryRequirementsBasic
		t.MemoryRequirementsKind = MemoryRequirementsBasic
	}

	if snap.IsVersionSupported(verCopyCommands) || snap.Supports(caps.ExtCopyCommands2) {
		t.CopyBuffer = copyBuffer2
		t.CopyBufferKind = CopyCommands2
		t.CopyImage = copyImage2
		t.CopyImageKind = CopyCommands2
	} else {
		t.CopyBuffer = copyBufferBasic
		t.CopyBufferKind = CopyBasic
		t.CopyImage = copyImageBasic
		t.CopyImageKind = CopyBasic
	}

	if snap.Supports(caps.ExtGetTextureSubImage) {
		t.ReadTextureSub = readTextureSubDirect
		t.ReadTextureSubKind = ReadTextureSubDirect
	} else {
		t.ReadTextureSub = readTextureSubEmulated(snap.Profile())
		t.ReadTextureSubKind = ReadTextureSubFramebuffer
	}

	if snap.Profile() == driver.ProfileDesktop {
		t.ClearDepth = clearDepthDouble
		t.ClearDepthKind = ClearDepthDouble
	} else {
		t.ClearDepth = clearDepthFloat
		t.ClearDepthKind = ClearDepthFloat
	}

	if snap.Supports(caps.ExtRobustness) {
		t.GraphicsResetStatus = graphicsResetStatusRobustness
		t.GraphicsResetStatusKind = ResetStatusRobustness
	} else {
		t.GraphicsResetStatus = graphicsResetStatusNoOp
		t.GraphicsResetStatusKind = ResetStatusNoOp
	}

	applyWorkarounds(t, snap.DriverName(), disabled)
	return t
}

func createRenderPass2(drv driver.Driver, info driver.RenderPassInfo) (driver.RenderPassID, error) {
	return drv.CreateRenderPass2(info)
}

func createRenderPassBasic(drv driver.Driver, info driver.RenderPassInfo) (driver.RenderPassID, error) {
	return drv.CreateRenderPass(info)
}

func beginRenderPass2(drv driver.Driver, rp driver.RenderPassID, fb driver.FramebufferID) error {
	return drv.BeginRenderPass2(rp, fb)
}

func beginRenderPassBasic(drv driver.Driver, rp driver.RenderPassID, fb driver.FramebufferID) error {
	return drv.BeginRenderPass(rp, fb)
}

func nextSubpass2(drv driver.Driver) error { return drv.NextSubpass2() }

func nextSubpassBasic(drv driver.Driver) error { return drv.NextSubpass() }

func endRenderPass2(drv driver.Driver) error { return drv.EndRenderPass2() }

func endRenderPassBasic(drv driver.Driver) error { return drv.EndRenderPass() }

func bindBufferMemory2(drv driver.Driver, buf driver.BufferID, mem driver.MemoryID, offset int) error {
	return drv.BindBufferMemory2(buf, mem, offset)
}

func bindBufferMemorySingle(drv driver.Driver, buf driver.BufferID, mem driver.MemoryID, offset int) error {
	return drv.BindBufferMemory(buf, mem, offset)
}

func bufferMemoryRequirements2(drv driver.Driver, buf driver.BufferID) (driver.MemoryRequirements, error) {
	return drv.BufferMemoryRequirements2(buf)
}

func bufferMemoryRequirementsBasic(drv driver.Driver, buf driver.BufferID) (driver.MemoryRequirements, error) {
	return drv.BufferMemoryRequirements(buf)
}

func copyBuffer2(drv driver.Driver, src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	return drv.CopyBuffer2(src, dst, srcOffset, dstOffset, size)
}

func copyBufferBasic(drv driver.Driver, src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	return drv.CopyBuffer(src, dst, srcOffset, dstOffset, size)
}

func copyImage2(drv driver.Driver, src, dst driver.TextureID, rect image.Rectangle) error {
	return drv.CopyImage2(src, dst, rect)
}

func copyImageBasic(drv driver.Driver, src, dst driver.TextureID, rect image.Rectangle) error {
	return drv.CopyImage(src, dst, rect)
}

func readTextureSubDirect(drv driver.Driver, tex driver.TextureID, level int, rect image.Rectangle, _ driver.PixelFormat) ([]byte, error) {
	return drv.ReadTextureSub(tex, level, rect)
}

// readTextureSubEmulated builds the framebuffer fallback for drivers
// without a direct sub-image read. The mip level is attached to a
// transient framebuffer, the requested region is read back, and the
// framebuffer is destroyed again. On profiles that do not guarantee
// floating-point framebuffer reads, float formats take an extra hop: the
// texels are bit-cast into a same-size unsigned-integer texture on the
// GPU, that texture is read back instead, and the raw bytes already are
// the original float bit pattern.
func readTextureSubEmulated(profile driver.Profile) ReadTextureSubFunc {
	return func(drv driver.Driver, tex driver.TextureID, level int, rect image.Rectangle, format driver.PixelFormat) ([]byte, error) {
		if format.IsFloat() && !profile.FloatReadGuaranteed() {
			if uintFormat := format.UintSibling(); uintFormat != driver.PixelFormatUndefined {
				return readTextureSubReinterpreted(drv, tex, level, rect, uintFormat)
			}
		}

		fb, err := drv.CreateFramebuffer()
		if err != nil {
			return nil, fmt.Errorf("transient framebuffer creation failed: %w", err)
		}
		defer drv.DestroyFramebuffer(fb)

		if err := drv.AttachTexture(fb, tex, level); err != nil {
			return nil, fmt.Errorf("attaching level %d failed: %w", level, err)
		}
		if status := drv.FramebufferStatus(fb); status != driver.FramebufferComplete {
			return nil, fmt.Errorf("%w: %s (framebuffer %s)", ErrNotFramebufferReadable, format, status)
		}
		return drv.ReadFramebuffer(fb, rect)
	}
}

func readTextureSubReinterpreted(drv driver.Driver, tex driver.TextureID, level int, rect image.Rectangle, uintFormat driver.PixelFormat) ([]byte, error) {
	staging, err := drv.CreateTexture(driver.TextureDescriptor{
		Label:  "gpudev-reinterpret-staging",
		Width:  rect.Dx(),
		Height: rect.Dy(),
		Format: uintFormat,
	})
	if err != nil {
		return nil, fmt.Errorf("reinterpret staging texture creation failed: %w", err)
	}
	defer drv.DestroyTexture(staging)

	if err := drv.ReinterpretFloatPass(tex, level, rect, staging); err != nil {
		return nil, fmt.Errorf("float reinterpret pass failed: %w", err)
	}

	fb, err := drv.CreateFramebuffer()
	if err != nil {
		return nil, fmt.Errorf("transient framebuffer creation failed: %w", err)
	}
	defer drv.DestroyFramebuffer(fb)

	if err := drv.AttachTexture(fb, staging, 0); err != nil {
		return nil, fmt.Errorf("attaching reinterpret staging failed: %w", err)
	}
	if status := drv.FramebufferStatus(fb); status != driver.FramebufferComplete {
		return nil, fmt.Errorf("%w: %s (framebuffer %s)", ErrNotFramebufferReadable, uintFormat, status)
	}

	// The bytes read from the uint staging texture already carry the
	// original float bit pattern; no value conversion happens anywhere.
	return drv.ReadFramebuffer(fb, image.Rect(0, 0, rect.Dx(), rect.Dy()))
}

func clearDepthDouble(drv driver.Driver, depth float64) error {
	return drv.ClearDepth(depth)
}

func clearDepthFloat(drv driver.Driver, depth float64) error {
	return drv.ClearDepthFloat(float32(depth))
}

func graphicsResetStatusRobustness(drv driver.Driver) driver.ResetStatus {
	return drv.GraphicsResetStatus()
}

func graphicsResetStatusNoOp(driver.Driver) driver.ResetStatus {
	return driver.ResetStatusNone
}
