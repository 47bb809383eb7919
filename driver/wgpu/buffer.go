// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/wgpu/hal"
)

// Alignment the HAL requires: 4 bytes for queue writes, 256 bytes for
// buffer copies.
const (
	writeAlign = 4
	copyAlign  = 256
)

// buffer defers HAL buffer creation to BindBufferMemory: the driver
// boundary separates buffer objects from their memory, the HAL does not,
// so the real allocation happens when the two are joined.
type buffer struct {
	size int
	hal  hal.Buffer // nil until memory is bound
}

func (b *buffer) destroy(device hal.Device) {
	if b.hal != nil {
		device.DestroyBuffer(b.hal)
		b.hal = nil
	}
}

// memory is an allocation record; the HAL allocates real memory together
// with the buffer it backs.
type memory struct {
	size int
}

// CreateBuffer records a buffer of the given byte size. No device
// resources exist until BindBufferMemory.
func (d *Driver) CreateBuffer(size int) (driver.BufferID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if size <= 0 {
		return 0, fmt.Errorf("wgpu: invalid buffer size %d", size)
	}
	id := driver.BufferID(d.allocID())
	d.buffers[id] = &buffer{size: size}
	return id, nil
}

// DestroyBuffer releases a buffer and its HAL backing, if bound.
func (d *Driver) DestroyBuffer(id driver.BufferID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if b, ok := d.buffers[id]; ok {
		b.destroy(d.device)
		delete(d.buffers, id)
	}
}

// WriteBuffer writes data at a byte offset into a bound buffer.
func (d *Driver) WriteBuffer(id driver.BufferID, offset int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return ErrUnknownObject
	}
	if b.hal == nil {
		return ErrUnboundBuffer
	}
	d.queue.WriteBuffer(b.hal, uint64(offset), data)
	return nil
}

// ReadBuffer reads size bytes at a byte offset from a bound buffer,
// staging through a MapRead buffer.
func (d *Driver) ReadBuffer(id driver.BufferID, offset, size int) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return nil, ErrUnknownObject
	}
	if b.hal == nil {
		return nil, ErrUnboundBuffer
	}
	return d.readback(b.hal, []hal.BufferCopy{
		{SrcOffset: uint64(offset), Size: uint64(size)},
	})
}

// BufferMemoryRequirements reports the baseline requirement: size padded
// to write alignment.
func (d *Driver) BufferMemoryRequirements(id driver.BufferID) (driver.MemoryRequirements, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return driver.MemoryRequirements{}, ErrUnknownObject
	}
	return driver.MemoryRequirements{
		Size:      alignUp(b.size, writeAlign),
		Alignment: writeAlign,
	}, nil
}

// BufferMemoryRequirements2 reports the extended requirement: size padded
// to copy alignment so the buffer can serve as a copy source without
// per-copy fixups.
func (d *Driver) BufferMemoryRequirements2(id driver.BufferID) (driver.MemoryRequirements, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[id]
	if !ok {
		return driver.MemoryRequirements{}, ErrUnknownObject
	}
	return driver.MemoryRequirements{
		Size:      alignUp(b.size, copyAlign),
		Alignment: copyAlign,
	}, nil
}

// AllocateMemory records a device-memory allocation.
func (d *Driver) AllocateMemory(size int) (driver.MemoryID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if size <= 0 {
		return 0, fmt.Errorf("wgpu: invalid allocation size %d", size)
	}
	id := driver.MemoryID(d.allocID())
	d.memories[id] = &memory{size: size}
	return id, nil
}

// FreeMemory releases a device-memory record.
func (d *Driver) FreeMemory(id driver.MemoryID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.memories, id)
}

// BindBufferMemory joins a buffer and an allocation, creating the HAL
// buffer at that point.
func (d *Driver) BindBufferMemory(buf driver.BufferID, mem driver.MemoryID, offset int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	b, ok := d.buffers[buf]
	if !ok {
		return ErrUnknownObject
	}
	m, ok := d.memories[mem]
	if !ok {
		return ErrUnknownObject
	}
	if offset+b.size > m.size {
		return fmt.Errorf("wgpu: binding %d bytes at offset %d exceeds allocation of %d", b.size, offset, m.size)
	}
	if b.hal != nil {
		d.device.DestroyBuffer(b.hal)
	}
	halBuf, err := d.newStorageBuffer("gpudev_buffer", uint64(b.size))
	if err != nil {
		return fmt.Errorf("wgpu: bind buffer memory: %w", err)
	}
	b.hal = halBuf
	return nil
}

// BindBufferMemory2 is the batched-bind entry point; a single bind
// degenerates to the baseline path.
func (d *Driver) BindBufferMemory2(buf driver.BufferID, mem driver.MemoryID, offset int) error {
	return d.BindBufferMemory(buf, mem, offset)
}

// CopyBuffer copies a byte range between bound buffers.
func (d *Driver) CopyBuffer(src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	s, ok := d.buffers[src]
	if !ok {
		return ErrUnknownObject
	}
	t, ok := d.buffers[dst]
	if !ok {
		return ErrUnknownObject
	}
	if s.hal == nil || t.hal == nil {
		return ErrUnboundBuffer
	}
	return d.submit("gpudev_copy_buffer", func(encoder hal.CommandEncoder) error {
		encoder.CopyBufferToBuffer(s.hal, t.hal, []hal.BufferCopy{
			{SrcOffset: uint64(srcOffset), DstOffset: uint64(dstOffset), Size: uint64(size)},
		})
		return nil
	})
}

// CopyBuffer2 is the extended entry point; both variants encode
// identically on the HAL.
func (d *Driver) CopyBuffer2(src, dst driver.BufferID, srcOffset, dstOffset, size int) error {
	return d.CopyBuffer(src, dst, srcOffset, dstOffset, size)
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
