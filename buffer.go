// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
)

// Buffer is a thin wrapper around a native buffer with its backing
// device-memory allocation.
//
// Creation goes through the dispatch table: the memory-requirements
// query and the memory bind each have two possible entry points, and the
// selected one was fixed at device creation.
type Buffer struct {
	device *Device
	handle Handle[driver.BufferID]
	memory Handle[driver.MemoryID]
	size   int
}

// NewBuffer creates a buffer of the given byte size, allocates memory
// per the driver's reported requirements and binds it.
func NewBuffer(dev *Device, size int) (*Buffer, error) {
	drv := dev.Driver()
	id, err := drv.CreateBuffer(size)
	if err != nil {
		return nil, fmt.Errorf("gpudev: buffer creation failed: %w", err)
	}
	handle := Own(id, drv.DestroyBuffer)

	req, err := dev.Table().BufferMemoryRequirements(drv, id)
	if err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("gpudev: buffer memory requirements query failed: %w", err)
	}
	mem, err := drv.AllocateMemory(req.Size)
	if err != nil {
		handle.Destroy()
		return nil, fmt.Errorf("gpudev: buffer memory allocation failed: %w", err)
	}
	memory := Own(mem, drv.FreeMemory)

	if err := dev.Table().BindBufferMemory(drv, id, mem, 0); err != nil {
		handle.Destroy()
		memory.Destroy()
		return nil, fmt.Errorf("gpudev: buffer memory bind failed: %w", err)
	}

	return &Buffer{device: dev, handle: handle, memory: memory, size: size}, nil
}

// WrapBuffer adopts an externally created, already-bound buffer. The
// wrapper never owns backing memory in this case.
func WrapBuffer(dev *Device, id driver.BufferID, size int, flags Flags) *Buffer {
	return &Buffer{
		device: dev,
		handle: Wrap(id, dev.Driver().DestroyBuffer, flags),
		size:   size,
	}
}

// ID returns the native buffer identifier.
func (b *Buffer) ID() driver.BufferID { return b.handle.Native() }

// Size returns the buffer size in bytes as requested at creation.
func (b *Buffer) Size() int { return b.size }

// Write writes data at a byte offset.
func (b *Buffer) Write(offset int, data []byte) error {
	return b.device.Driver().WriteBuffer(b.handle.Native(), offset, data)
}

// Read reads size bytes at a byte offset. May stall until the device is
// idle.
func (b *Buffer) Read(offset, size int) ([]byte, error) {
	return b.device.Driver().ReadBuffer(b.handle.Native(), offset, size)
}

// CopyTo copies a byte range into dst through the dispatch table's
// selected copy path.
func (b *Buffer) CopyTo(dst *Buffer, srcOffset, dstOffset, size int) error {
	return b.device.Table().CopyBuffer(b.device.Driver(), b.handle.Native(), dst.handle.Native(), srcOffset, dstOffset, size)
}

// Release returns the native buffer and gives up ownership of it. The
// backing memory stays owned and is freed on Destroy.
func (b *Buffer) Release() driver.BufferID { return b.handle.Release() }

// Destroy releases the buffer and its memory if owned, buffer first.
// Safe to call multiple times.
func (b *Buffer) Destroy() {
	b.handle.Destroy()
	b.memory.Destroy()
}
