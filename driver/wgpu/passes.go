// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

//go:embed shaders/reinterpret.wgsl
var reinterpretShaderWGSL string

//go:embed shaders/distancefield.wgsl
var distanceFieldShaderWGSL string

// computePipeline is one compiled compute pass with its fixed
// params/src/dst bind group layout.
type computePipeline struct {
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

func (p *computePipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyComputePipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.pipeLayout != nil {
		device.DestroyPipelineLayout(p.pipeLayout)
		p.pipeLayout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.module != nil {
		device.DestroyShaderModule(p.module)
		p.module = nil
	}
}

// pipelineCache lazily builds the emulation pass pipelines on first use.
type pipelineCache struct {
	reinterpret   *computePipeline
	distanceField *computePipeline
}

func (c *pipelineCache) destroy(device hal.Device) {
	if c.reinterpret != nil {
		c.reinterpret.destroy(device)
		c.reinterpret = nil
	}
	if c.distanceField != nil {
		c.distanceField.destroy(device)
		c.distanceField = nil
	}
}

// buildComputePipeline compiles WGSL and assembles the uniform +
// read-only storage + storage layout every emulation pass shares.
func (d *Driver) buildComputePipeline(label, source string) (*computePipeline, error) {
	p := &computePipeline{}

	module, err := d.compileModule([]byte(source))
	if err != nil {
		return nil, err
	}
	p.module = module

	p.bindLayout, err = d.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: label + "_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
			{Binding: 1, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage}},
			{Binding: 2, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage}},
		},
	})
	if err != nil {
		p.destroy(d.device)
		return nil, fmt.Errorf("wgpu: create %s bind group layout: %w", label, err)
	}

	p.pipeLayout, err = d.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: label + "_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{p.bindLayout},
	})
	if err != nil {
		p.destroy(d.device)
		return nil, fmt.Errorf("wgpu: create %s pipeline layout: %w", label, err)
	}

	p.pipeline, err = d.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: label + "_pipeline", Layout: p.pipeLayout,
		Compute: hal.ComputeState{Module: p.module, EntryPoint: "main"},
	})
	if err != nil {
		p.destroy(d.device)
		return nil, fmt.Errorf("wgpu: create %s compute pipeline: %w", label, err)
	}
	return p, nil
}

// dispatchPass uploads params, binds params/src/dst and dispatches the
// pipeline over groupsX x groupsY workgroups. Caller holds d.mu.
func (d *Driver) dispatchPass(p *computePipeline, label string, params []byte, src, dst hal.Buffer, groupsX, groupsY uint32) error {
	paramsBuf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_params", Size: uint64(len(params)),
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create %s params buffer: %w", label, err)
	}
	defer d.device.DestroyBuffer(paramsBuf)
	d.queue.WriteBuffer(paramsBuf, 0, params)

	bindGroup, err := d.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: label + "_bind", Layout: p.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{Buffer: paramsBuf.NativeHandle(), Offset: 0, Size: uint64(len(params))}},
			{Binding: 1, Resource: gputypes.BufferBinding{Buffer: src.NativeHandle(), Offset: 0}},
			{Binding: 2, Resource: gputypes.BufferBinding{Buffer: dst.NativeHandle(), Offset: 0}},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create %s bind group: %w", label, err)
	}
	defer d.device.DestroyBindGroup(bindGroup)

	return d.submit(label, func(encoder hal.CommandEncoder) error {
		pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: label})
		pass.SetPipeline(p.pipeline)
		pass.SetBindGroup(0, bindGroup, nil)
		pass.Dispatch(groupsX, groupsY, 1)
		pass.End()
		return nil
	})
}

// reinterpretParams matches the Params struct in reinterpret.wgsl.
type reinterpretParams struct {
	SrcRowWords uint32
	DstRowWords uint32
	SrcXWords   uint32
	SrcY        uint32
	WidthWords  uint32
	Height      uint32
	Pad         [2]uint32
}

// distanceFieldParams matches the Params struct in distancefield.wgsl.
type distanceFieldParams struct {
	SrcWidth  uint32
	SrcHeight uint32
	DstWidth  uint32
	DstHeight uint32
	Ratio     uint32
	Radius    int32
	Pad       [2]uint32
}

// ReinterpretFloatPass bit-casts rect of the float texture src at the
// given level into the rect-sized uint texture dst.
func (d *Driver) ReinterpretFloatPass(src driver.TextureID, level int, rect image.Rectangle, dst driver.TextureID) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.textures[src]
	if !ok || level < 0 || level >= len(s.levels) {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}
	channels := s.desc.Format.Channels()
	if t.desc.Format.Channels() != channels {
		return fmt.Errorf("wgpu: reinterpret channel mismatch: %s vs %s", s.desc.Format, t.desc.Format)
	}

	if d.pipelines.reinterpret == nil {
		p, err := d.buildComputePipeline("gpudev_reinterpret", reinterpretShaderWGSL)
		if err != nil {
			return err
		}
		d.pipelines.reinterpret = p
	}

	srcW, _ := s.levelSize(level)
	params := reinterpretParams{
		SrcRowWords: uint32(srcW * channels),
		DstRowWords: uint32(rect.Dx() * channels),
		SrcXWords:   uint32(rect.Min.X * channels),
		SrcY:        uint32(rect.Min.Y),
		WidthWords:  uint32(rect.Dx() * channels),
		Height:      uint32(rect.Dy()),
	}
	return d.dispatchPass(d.pipelines.reinterpret, "gpudev_reinterpret",
		structBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)),
		s.levels[level], t.levels[0],
		(params.WidthWords+7)/8, (params.Height+7)/8)
}

// DistanceFieldPass computes a signed distance field of src into the
// smaller dst, searching radius input texels around each output sample.
func (d *Driver) DistanceFieldPass(src, dst driver.TextureID, radius int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.textures[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.textures[dst]
	if !ok {
		return ErrUnknownObject
	}

	if d.pipelines.distanceField == nil {
		p, err := d.buildComputePipeline("gpudev_distance_field", distanceFieldShaderWGSL)
		if err != nil {
			return err
		}
		d.pipelines.distanceField = p
	}

	srcW, srcH := s.levelSize(0)
	dstW, dstH := t.levelSize(0)
	// The shader ORs bytes into place; start from zero.
	d.queue.WriteBuffer(t.levels[0], 0, make([]byte, dstW*dstH*t.desc.Format.BytesPerPixel()))

	params := distanceFieldParams{
		SrcWidth:  uint32(srcW),
		SrcHeight: uint32(srcH),
		DstWidth:  uint32(dstW),
		DstHeight: uint32(dstH),
		Ratio:     uint32(srcW / dstW),
		Radius:    int32(radius),
	}
	return d.dispatchPass(d.pipelines.distanceField, "gpudev_distance_field",
		structBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)),
		s.levels[0], t.levels[0],
		(params.DstWidth+7)/8, (params.DstHeight+7)/8)
}

func structBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // fixed-layout param structs
}
