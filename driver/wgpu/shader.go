// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package wgpu

import (
	"fmt"

	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// shader is a compiled module, possibly still compiling in the
// background after SubmitCompile.
type shader struct {
	module hal.ShaderModule
	done   chan struct{} // nil for blocking compiles
	err    error
}

func (s *shader) destroy(device hal.Device) {
	if s.done != nil {
		<-s.done
	}
	if s.module != nil {
		device.DestroyShaderModule(s.module)
		s.module = nil
	}
}

// compileModule compiles WGSL source through naga to SPIR-V and creates
// the HAL module.
func (d *Driver) compileModule(source []byte) (hal.ShaderModule, error) {
	spirvBytes, err := naga.Compile(string(source))
	if err != nil {
		return nil, fmt.Errorf("wgpu: shader compilation failed: %w", err)
	}
	words := spirvWords(spirvBytes)
	module, err := d.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "gpudev_shader",
		Source: hal.ShaderSource{SPIRV: words},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create shader module: %w", err)
	}
	return module, nil
}

// CompileShader compiles and links a shader, blocking until done.
func (d *Driver) CompileShader(source []byte) (driver.ShaderID, error) {
	module, err := d.compileModule(source)
	if err != nil {
		return 0, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	id := driver.ShaderID(d.allocID())
	d.shaders[id] = &shader{module: module}
	return id, nil
}

// SubmitCompile starts a background compile and returns immediately; the
// result is picked up by WaitShader.
func (d *Driver) SubmitCompile(source []byte) (driver.ShaderID, error) {
	d.mu.Lock()
	id := driver.ShaderID(d.allocID())
	s := &shader{done: make(chan struct{})}
	d.shaders[id] = s
	d.mu.Unlock()

	src := make([]byte, len(source))
	copy(src, source)
	go func() {
		defer close(s.done)
		s.module, s.err = d.compileModule(src)
	}()
	return id, nil
}

// WaitShader blocks until a submitted compile finishes and returns the
// link result.
func (d *Driver) WaitShader(id driver.ShaderID) error {
	d.mu.Lock()
	s, ok := d.shaders[id]
	d.mu.Unlock()
	if !ok {
		return ErrUnknownObject
	}
	if s.done != nil {
		<-s.done
	}
	return s.err
}

// DestroyShader releases a shader, waiting out a background compile
// first.
func (d *Driver) DestroyShader(id driver.ShaderID) {
	d.mu.Lock()
	s, ok := d.shaders[id]
	if ok {
		delete(d.shaders, id)
	}
	d.mu.Unlock()
	if ok {
		s.destroy(d.device)
	}
}

// spirvWords reassembles little-endian SPIR-V bytes into words.
func spirvWords(b []byte) []uint32 {
	words := make([]uint32, len(b)/4)
	for i := range words {
		words[i] = uint32(b[i*4]) |
			uint32(b[i*4+1])<<8 |
			uint32(b[i*4+2])<<16 |
			uint32(b[i*4+3])<<24
	}
	return words
}
