// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
)

// RenderPass is a thin wrapper around a native render pass.
//
// Render passes have three possible creation paths (core 1.2, the
// create-renderpass2 extension, baseline); the dispatch table fixed the
// choice at device creation and NewRenderPass just calls through it.
type RenderPass struct {
	device *Device
	handle Handle[driver.RenderPassID]
}

// NewRenderPass creates a render pass through the selected creation path
// and takes ownership of it. A zero Subpasses in the info means one.
func NewRenderPass(dev *Device, info driver.RenderPassInfo) (*RenderPass, error) {
	if info.Subpasses == 0 {
		info.Subpasses = 1
	}
	id, err := dev.Table().CreateRenderPass(dev.Driver(), info)
	if err != nil {
		return nil, fmt.Errorf("gpudev: render pass creation failed: %w", err)
	}
	return &RenderPass{
		device: dev,
		handle: Own(id, dev.Driver().DestroyRenderPass),
	}, nil
}

// WrapRenderPass adopts an externally created render pass.
func WrapRenderPass(dev *Device, id driver.RenderPassID, flags Flags) *RenderPass {
	return &RenderPass{
		device: dev,
		handle: Wrap(id, dev.Driver().DestroyRenderPass, flags),
	}
}

// ID returns the native render pass identifier.
func (r *RenderPass) ID() driver.RenderPassID { return r.handle.Native() }

// Begin begins a render pass instance on the framebuffer.
func (r *RenderPass) Begin(fb *Framebuffer) error {
	return r.device.Table().BeginRenderPass(r.device.Driver(), r.handle.Native(), fb.ID())
}

// Next advances to the next subpass.
func (r *RenderPass) Next() error {
	return r.device.Table().NextSubpass(r.device.Driver())
}

// End ends the current render pass instance.
func (r *RenderPass) End() error {
	return r.device.Table().EndRenderPass(r.device.Driver())
}

// Release returns the native render pass and gives up ownership.
func (r *RenderPass) Release() driver.RenderPassID { return r.handle.Release() }

// Destroy releases the render pass if owned. Safe to call multiple times.
func (r *RenderPass) Destroy() { r.handle.Destroy() }
