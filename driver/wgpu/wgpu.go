// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

// Package wgpu adapts a gogpu/wgpu HAL device to the driver.Driver
// boundary.
//
// Textures are backed by storage buffers rather than HAL texture objects
// so that every read and write path goes through the same buffer-copy
// machinery, and the emulation passes (float reinterpretation, distance
// field) run as compute dispatches over those buffers.
//
// The adapter either opens its own Vulkan instance or shares a device
// handed in by a host through the HalDevice()/HalQueue() provider
// convention.
package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// Adapter errors.
var (
	// ErrNoGPU is returned when no usable GPU adapter is found.
	ErrNoGPU = errors.New("wgpu: no GPU adapter available")

	// ErrUnknownObject is returned for an ID the adapter never issued or
	// already destroyed.
	ErrUnknownObject = errors.New("wgpu: unknown object")

	// ErrUnboundBuffer is returned when data access hits a buffer that
	// has no memory bound yet.
	ErrUnboundBuffer = errors.New("wgpu: buffer has no memory bound")

	// ErrNoPass is returned for subpass and end calls outside a render
	// pass instance.
	ErrNoPass = errors.New("wgpu: no render pass in progress")
)

// adapterVersion is the API version the adapter reports. The HAL rides
// on Vulkan 1.3 class drivers.
var adapterVersion = driver.Version{Major: 1, Minor: 3}

// supportedExtensions is what the buffer-backed adapter can honestly
// provide. Robustness is absent: the HAL surfaces device loss as errors,
// not as a queryable reset status.
var supportedExtensions = map[string]bool{
	"ARB_get_texture_sub_image":    true,
	"EXT_unpack_subimage":          true,
	"EXT_texture_rg":               true,
	"KHR_parallel_shader_compile":  true,
	"KHR_create_renderpass2":       true,
	"KHR_copy_commands2":           true,
	"KHR_bind_memory2":             true,
	"KHR_get_memory_requirements2": true,
}

// Driver implements driver.Driver over hal.Device and hal.Queue.
type Driver struct {
	mu sync.Mutex

	instance hal.Instance // nil when the device is shared
	device   hal.Device
	queue    hal.Queue

	name           string
	externalDevice bool

	nextID       uint64
	textures     map[driver.TextureID]*texture
	framebuffers map[driver.FramebufferID]*framebuffer
	buffers      map[driver.BufferID]*buffer
	memories     map[driver.MemoryID]*memory
	renderPasses map[driver.RenderPassID]*renderPass
	shaders      map[driver.ShaderID]*shader

	activePass *passInstance
	clearDepth float32

	pipelines pipelineCache
}

var _ driver.Driver = (*Driver)(nil)

// New opens the adapter's own Vulkan instance, picking a discrete or
// integrated GPU when one is present.
func New() (*Driver, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, fmt.Errorf("%w: vulkan backend not registered", ErrNoGPU)
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, ErrNoGPU
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	d := newDriver(openDev.Device, openDev.Queue, selected.Info.Name)
	d.instance = instance
	return d, nil
}

// NewFromProvider shares a device owned by a host exposing the
// HalDevice()/HalQueue() convention. The host keeps ownership; Close
// will not destroy the device.
func NewFromProvider(provider any, name string) (*Driver, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpu: provider HalQueue is not hal.Queue")
	}
	if name == "" {
		name = "wgpu shared device"
	}
	d := newDriver(device, queue, name)
	d.externalDevice = true
	return d, nil
}

// NewFromContext shares the device of a gpucontext host. The provider's
// device and queue must be HAL-backed; window-system providers that
// wrap other APIs are rejected.
func NewFromContext(provider gpucontext.DeviceProvider, name string) (*Driver, error) {
	device, ok := provider.Device().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("wgpu: context device is not HAL-backed")
	}
	queue, ok := provider.Queue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpu: context queue is not HAL-backed")
	}
	if name == "" {
		name = "wgpu shared device"
	}
	d := newDriver(device, queue, name)
	d.externalDevice = true
	return d, nil
}

func newDriver(device hal.Device, queue hal.Queue, name string) *Driver {
	return &Driver{
		device:       device,
		queue:        queue,
		name:         name,
		textures:     make(map[driver.TextureID]*texture),
		framebuffers: make(map[driver.FramebufferID]*framebuffer),
		buffers:      make(map[driver.BufferID]*buffer),
		memories:     make(map[driver.MemoryID]*memory),
		renderPasses: make(map[driver.RenderPassID]*renderPass),
		shaders:      make(map[driver.ShaderID]*shader),
	}
}

// Close releases all adapter-owned resources. A shared device is left
// alone; only objects the adapter created on it are destroyed.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.pipelines.destroy(d.device)
	for id, t := range d.textures {
		t.destroy(d.device)
		delete(d.textures, id)
	}
	for id, b := range d.buffers {
		b.destroy(d.device)
		delete(d.buffers, id)
	}
	for id, s := range d.shaders {
		s.destroy(d.device)
		delete(d.shaders, id)
	}
	d.framebuffers = make(map[driver.FramebufferID]*framebuffer)
	d.memories = make(map[driver.MemoryID]*memory)
	d.renderPasses = make(map[driver.RenderPassID]*renderPass)

	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.queue = nil
	d.instance = nil
}

// Name returns the adapter's device name.
func (d *Driver) Name() string { return d.name }

// Version returns the API version the HAL rides on.
func (d *Driver) Version() (driver.Version, error) {
	if d.device == nil {
		return driver.Version{}, errors.New("wgpu: device closed")
	}
	return adapterVersion, nil
}

// Profile returns ProfileDesktop; the Vulkan HAL is a desktop driver.
func (d *Driver) Profile() driver.Profile { return driver.ProfileDesktop }

// IsExtensionSupported reports whether the adapter provides the named
// extension.
func (d *Driver) IsExtensionSupported(name string) bool {
	return supportedExtensions[name]
}

// GraphicsResetStatus always reports no reset; the robustness extension
// is not advertised.
func (d *Driver) GraphicsResetStatus() driver.ResetStatus {
	return driver.ResetStatusNone
}

// allocID issues the next object ID. Caller holds d.mu.
func (d *Driver) allocID() uint64 {
	d.nextID++
	return d.nextID
}
