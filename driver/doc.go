// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package driver defines the boundary between the gpudev middleware and
// the native graphics API.
//
// Everything above this package (capability probing, dispatch-table
// construction, readback emulation, glyph rendering) talks to the GPU
// exclusively through the [Driver] interface, so the whole middleware can
// be exercised against a synthetic driver without touching real hardware.
// The production adapter over gogpu/wgpu lives in driver/wgpu.
package driver
