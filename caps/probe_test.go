// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package caps_test

import (
	"errors"
	"testing"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gpudev/internal/drivertest"
)

func TestProbeSnapshot(t *testing.T) {
	drv := drivertest.New(
		drivertest.WithName("Test Vendor Renderer 1.0"),
		drivertest.WithVersion(1, 1),
		drivertest.WithProfile(driver.ProfileES),
		drivertest.WithExtensions(
			string(caps.ExtTextureRG),
			string(caps.ExtRobustness),
		),
	)

	snap, err := caps.Probe(drv, caps.DefaultInterest())
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}

	if got := snap.Version(); got != (driver.Version{Major: 1, Minor: 1}) {
		t.Errorf("Version() = %v, want 1.1", got)
	}
	if got := snap.Profile(); got != driver.ProfileES {
		t.Errorf("Profile() = %v, want ES", got)
	}
	if got := snap.DriverName(); got != "Test Vendor Renderer 1.0" {
		t.Errorf("DriverName() = %q", got)
	}
	if !snap.Supports(caps.ExtTextureRG) {
		t.Error("Supports(texture_rg) = false, want true")
	}
	if snap.Supports(caps.ExtGetTextureSubImage) {
		t.Error("Supports(get_texture_sub_image) = true, want false")
	}
	if got := snap.Detected(); len(got) != 2 {
		t.Errorf("Detected() = %v, want 2 extensions", got)
	}
}

func TestProbeQueriesDriverOnce(t *testing.T) {
	drv := drivertest.New(drivertest.WithExtensions(string(caps.ExtTextureRG)))

	snap, err := caps.Probe(drv, caps.DefaultInterest())
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}

	queries := drv.Calls["IsExtensionSupported"]
	if queries != len(caps.DefaultInterest()) {
		t.Errorf("IsExtensionSupported queried %d times, want %d", queries, len(caps.DefaultInterest()))
	}

	// Snapshot reads must not re-hit the driver.
	for range 10 {
		snap.Supports(caps.ExtTextureRG)
		snap.Supports(caps.ExtRobustness)
	}
	if drv.Calls["IsExtensionSupported"] != queries {
		t.Error("Supports() re-queried the driver")
	}
}

func TestProbeVersionFailureFatal(t *testing.T) {
	queryErr := errors.New("device lost")
	drv := drivertest.New(drivertest.WithVersionError(queryErr))

	_, err := caps.Probe(drv, caps.DefaultInterest())
	if err == nil {
		t.Fatal("Probe() = nil error, want failure")
	}
	if !errors.Is(err, queryErr) {
		t.Errorf("Probe() error = %v, want wrapped %v", err, queryErr)
	}
	// No extension probing after a failed version query.
	if drv.Calls["IsExtensionSupported"] != 0 {
		t.Errorf("IsExtensionSupported queried %d times after fatal version failure, want 0",
			drv.Calls["IsExtensionSupported"])
	}
}

func TestProbeOutsideInterestSet(t *testing.T) {
	drv := drivertest.New(drivertest.WithExtensions(
		string(caps.ExtTextureRG),
		string(caps.ExtRobustness),
	))

	// Probe only for texture_rg; robustness stays invisible even though
	// the driver has it.
	snap, err := caps.Probe(drv, []caps.Extension{caps.ExtTextureRG})
	if err != nil {
		t.Fatalf("Probe() = %v", err)
	}
	if !snap.Supports(caps.ExtTextureRG) {
		t.Error("Supports(texture_rg) = false, want true")
	}
	if snap.Supports(caps.ExtRobustness) {
		t.Error("Supports(robustness) = true outside interest set, want false")
	}
}

func TestVersionAtLeast(t *testing.T) {
	tests := []struct {
		v, other driver.Version
		want     bool
	}{
		{driver.Version{Major: 1, Minor: 2}, driver.Version{Major: 1, Minor: 2}, true},
		{driver.Version{Major: 1, Minor: 3}, driver.Version{Major: 1, Minor: 2}, true},
		{driver.Version{Major: 2, Minor: 0}, driver.Version{Major: 1, Minor: 9}, true},
		{driver.Version{Major: 1, Minor: 1}, driver.Version{Major: 1, Minor: 2}, false},
		{driver.Version{Major: 0, Minor: 9}, driver.Version{Major: 1, Minor: 0}, false},
	}
	for _, tt := range tests {
		if got := tt.v.AtLeast(tt.other); got != tt.want {
			t.Errorf("%v.AtLeast(%v) = %v, want %v", tt.v, tt.other, got, tt.want)
		}
	}
}
