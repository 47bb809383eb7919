// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
)

// Shader is a thin wrapper around a native shader program with an
// optional two-phase compile lifecycle.
//
// On drivers with the parallel-shader-compile extension, NewShaderAsync
// starts the compile in the driver's background thread and returns
// immediately; Wait blocks until the driver reports completion. Without
// the extension the compile happens synchronously up front and Wait
// returns at once. No other operation in gpudev is asynchronous.
type Shader struct {
	device  *Device
	handle  Handle[driver.ShaderID]
	pending bool
}

// NewShader compiles and links a shader program, blocking until done.
func NewShader(dev *Device, source []byte) (*Shader, error) {
	id, err := dev.Driver().CompileShader(source)
	if err != nil {
		return nil, fmt.Errorf("gpudev: shader compilation failed: %w", err)
	}
	return &Shader{device: dev, handle: Own(id, dev.Driver().DestroyShader)}, nil
}

// NewShaderAsync starts compiling a shader program without waiting for
// the result. The program must not be used before Wait returns nil.
// Falls back to a synchronous compile when the driver cannot compile in
// the background.
func NewShaderAsync(dev *Device, source []byte) (*Shader, error) {
	if !dev.Caps().Supports(caps.ExtParallelShaderCompile) {
		return NewShader(dev, source)
	}
	id, err := dev.Driver().SubmitCompile(source)
	if err != nil {
		return nil, fmt.Errorf("gpudev: shader compile submission failed: %w", err)
	}
	return &Shader{
		device:  dev,
		handle:  Own(id, dev.Driver().DestroyShader),
		pending: true,
	}, nil
}

// Wait blocks until a background compile has finished and returns the
// link result. Idempotent; a no-op for synchronously compiled shaders.
func (s *Shader) Wait() error {
	if !s.pending {
		return nil
	}
	s.pending = false
	if err := s.device.Driver().WaitShader(s.handle.Native()); err != nil {
		return fmt.Errorf("gpudev: shader link failed: %w", err)
	}
	return nil
}

// ID returns the native shader identifier.
func (s *Shader) ID() driver.ShaderID { return s.handle.Native() }

// Release returns the native shader and gives up ownership.
func (s *Shader) Release() driver.ShaderID { return s.handle.Release() }

// Destroy releases the shader if owned. Safe to call multiple times.
func (s *Shader) Destroy() { s.handle.Destroy() }
