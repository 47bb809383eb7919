// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
)

// renderPass records attachment formats and subpass count; the HAL is
// renderpass-less, so the object exists to validate begin/next/end
// sequencing against.
type renderPass struct {
	info driver.RenderPassInfo
}

// passInstance is an in-flight render pass.
type passInstance struct {
	rp      driver.RenderPassID
	fb      driver.FramebufferID
	subpass int
}

// CreateRenderPass creates a render pass through the baseline entry
// point.
func (d *Driver) CreateRenderPass(info driver.RenderPassInfo) (driver.RenderPassID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if info.Subpasses <= 0 {
		info.Subpasses = 1
	}
	for _, f := range info.ColorFormats {
		if !f.Renderable() {
			return 0, fmt.Errorf("wgpu: color attachment format %s is not renderable", f)
		}
	}
	id := driver.RenderPassID(d.allocID())
	d.renderPasses[id] = &renderPass{info: info}
	return id, nil
}

// CreateRenderPass2 is the extended entry point; identical validation,
// identical object.
func (d *Driver) CreateRenderPass2(info driver.RenderPassInfo) (driver.RenderPassID, error) {
	return d.CreateRenderPass(info)
}

// DestroyRenderPass releases a render pass.
func (d *Driver) DestroyRenderPass(id driver.RenderPassID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.renderPasses, id)
}

// BeginRenderPass begins a render pass instance on the framebuffer.
func (d *Driver) BeginRenderPass(rp driver.RenderPassID, fb driver.FramebufferID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.renderPasses[rp]; !ok {
		return ErrUnknownObject
	}
	if _, ok := d.framebuffers[fb]; !ok {
		return ErrUnknownObject
	}
	if d.activePass != nil {
		return fmt.Errorf("wgpu: render pass already in progress")
	}
	d.activePass = &passInstance{rp: rp, fb: fb}
	return nil
}

// BeginRenderPass2 is the extended-begin variant.
func (d *Driver) BeginRenderPass2(rp driver.RenderPassID, fb driver.FramebufferID) error {
	return d.BeginRenderPass(rp, fb)
}

// NextSubpass advances to the next subpass.
func (d *Driver) NextSubpass() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activePass == nil {
		return ErrNoPass
	}
	pass := d.renderPasses[d.activePass.rp]
	if d.activePass.subpass+1 >= pass.info.Subpasses {
		return fmt.Errorf("wgpu: no subpass after %d of %d", d.activePass.subpass, pass.info.Subpasses)
	}
	d.activePass.subpass++
	return nil
}

// NextSubpass2 is the extended variant.
func (d *Driver) NextSubpass2() error { return d.NextSubpass() }

// EndRenderPass ends the current render pass instance.
func (d *Driver) EndRenderPass() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.activePass == nil {
		return ErrNoPass
	}
	d.activePass = nil
	return nil
}

// EndRenderPass2 is the extended variant.
func (d *Driver) EndRenderPass2() error { return d.EndRenderPass() }

// ClearDepth sets the depth clear value through the double-precision
// entry point.
func (d *Driver) ClearDepth(depth float64) error {
	return d.ClearDepthFloat(float32(depth))
}

// ClearDepthFloat sets the depth clear value applied when the next pass
// begins.
func (d *Driver) ClearDepthFloat(depth float32) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.clearDepth = depth
	return nil
}
