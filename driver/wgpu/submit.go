// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// gpuTimeout bounds every fence wait. A pass that takes longer than this
// indicates a hung device, not a slow one.
const gpuTimeout = 5 * time.Second

// submit runs encode against a fresh command encoder, submits the result
// and blocks until the fence signals. Caller holds d.mu.
func (d *Driver) submit(label string, encode func(hal.CommandEncoder) error) error {
	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}
	if err := encode(encoder); err != nil {
		return err
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	fence, err := d.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer d.device.DestroyFence(fence)
	if err := d.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit: %w", err)
	}
	ok, err := d.device.Wait(fence, 1, gpuTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wgpu: wait for GPU: ok=%v err=%w", ok, err)
	}
	return nil
}

// readback copies the byte ranges out of src through a MapRead staging
// buffer and returns them packed in copy order. Caller holds d.mu.
func (d *Driver) readback(src hal.Buffer, copies []hal.BufferCopy) ([]byte, error) {
	var total uint64
	for i := range copies {
		copies[i].DstOffset = total
		total += copies[i].Size
	}
	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "gpudev_staging", Size: total,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	err = d.submit("gpudev_readback", func(encoder hal.CommandEncoder) error {
		encoder.CopyBufferToBuffer(src, staging, copies)
		return nil
	})
	if err != nil {
		return nil, err
	}

	data := make([]byte, total)
	if err := d.queue.ReadBuffer(staging, 0, data); err != nil {
		return nil, fmt.Errorf("wgpu: readback: %w", err)
	}
	return data, nil
}

// newStorageBuffer creates a storage buffer reachable by compute passes
// and both copy directions.
func (d *Driver) newStorageBuffer(label string, size uint64) (hal.Buffer, error) {
	return d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label, Size: size,
		Usage: gputypes.BufferUsageStorage |
			gputypes.BufferUsageCopySrc |
			gputypes.BufferUsageCopyDst,
	})
}
