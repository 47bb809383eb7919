// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/dispatch"
	"github.com/gogpu/gpudev/driver"
)

// Option configures device creation.
type Option func(*deviceOptions)

type deviceOptions struct {
	interest []caps.Extension
	disabled []string
}

// WithExtensionsOfInterest overrides the extension set probed at device
// creation. The default is [caps.DefaultInterest].
func WithExtensionsOfInterest(exts ...caps.Extension) Option {
	return func(o *deviceOptions) { o.interest = exts }
}

// WithDisabledWorkarounds prevents the named driver workarounds from
// being applied even when the driver matches.
func WithDisabledWorkarounds(names ...string) Option {
	return func(o *deviceOptions) { o.disabled = names }
}

// Device binds a driver, its capability snapshot and the dispatch table
// built from it.
//
// A Device and every object created from it belong to one goroutine.
// gpudev receives the driver from the host application and never owns
// it; Destroy only severs the device's references.
type Device struct {
	drv   driver.Driver
	caps  *caps.Snapshot
	table *dispatch.Table
}

// NewDevice probes the driver's capabilities and builds the dispatch
// table, in that order. The snapshot and table never change for the
// lifetime of the device.
func NewDevice(drv driver.Driver, opts ...Option) (*Device, error) {
	var o deviceOptions
	for _, opt := range opts {
		opt(&o)
	}
	interest := o.interest
	if interest == nil {
		interest = caps.DefaultInterest()
	}

	snapshot, err := caps.Probe(drv, interest)
	if err != nil {
		return nil, fmt.Errorf("gpudev: device creation failed: %w", err)
	}
	table := dispatch.Build(snapshot, dispatch.DisableWorkarounds(o.disabled...))

	log := Logger()
	log.Info("gpudev: device created",
		slog.String("driver", snapshot.DriverName()),
		slog.String("version", snapshot.Version().String()),
		slog.String("profile", snapshot.Profile().String()))
	for _, ext := range snapshot.Detected() {
		log.Debug("gpudev: using extension", slog.String("extension", string(ext)))
	}
	for _, w := range table.EncounteredWorkarounds {
		log.Warn("gpudev: applying driver workaround", slog.String("workaround", w))
	}

	return &Device{drv: drv, caps: snapshot, table: table}, nil
}

// Driver returns the underlying driver.
func (d *Device) Driver() driver.Driver { return d.drv }

// Caps returns the immutable capability snapshot.
func (d *Device) Caps() *caps.Snapshot { return d.caps }

// Table returns the immutable dispatch table.
func (d *Device) Table() *dispatch.Table { return d.table }

// ClearDepth clears the depth attachment through whichever precision
// entry point the dispatch table selected for this profile.
func (d *Device) ClearDepth(depth float64) error {
	return d.table.ClearDepth(d.drv, depth)
}

// GraphicsResetStatus reports whether the device was reset. Without a
// robustness query this always returns [driver.ResetStatusNone].
func (d *Device) GraphicsResetStatus() driver.ResetStatus {
	return d.table.GraphicsResetStatus(d.drv)
}

// Destroy severs the device's references. The driver itself belongs to
// the host application and is not touched.
func (d *Device) Destroy() {
	d.drv = nil
	d.caps = nil
	d.table = nil
}
