// Package gpudev provides a thin capability-dispatch and
// resource-lifecycle middleware over native graphics drivers.
//
// # Overview
//
// gpudev sits between an application and a graphics API. At device
// creation it probes which API version and extensions the driver
// actually offers, then binds the cheapest available implementation of
// every multi-path operation (render pass creation, memory binding,
// buffer/image copies, texture readback) into a per-device dispatch
// table. Callers see one consistent API; the capability branching
// happens exactly once, not per call.
//
// # Quick Start
//
//	import "github.com/gogpu/gpudev"
//
//	dev, err := gpudev.NewDevice(drv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer dev.Destroy()
//
//	tex, err := gpudev.NewTexture(dev, driver.TextureDescriptor{
//	    Width: 256, Height: 256, Format: driver.PixelFormatRGBA8Unorm,
//	})
//
// # Architecture
//
// The library is organized into:
//   - driver: the opaque boundary to the native API, plus the wgpu-backed
//     production adapter in driver/wgpu
//   - caps: the one-shot capability prober and immutable snapshot
//   - dispatch: the per-device table of selected implementations
//   - gpudev (this package): device, move-only object handles, thin
//     object wrappers
//   - teximage: texture sub-image readback with framebuffer emulation
//   - text: glyph cache and quad renderer with automatic index widening
//   - distancefield: signed-distance-field generation
//
// # Threading
//
// A device and everything created from it belong to a single
// command-submission goroutine, matching how the underlying APIs are
// used. The capability snapshot and dispatch table are immutable after
// construction and need no locking.
package gpudev

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0-alpha.1"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0

	// VersionPrerelease is the prerelease identifier
	VersionPrerelease = "alpha.1"
)
