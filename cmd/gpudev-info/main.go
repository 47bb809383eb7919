//go:build !nogpu

// Command gpudev-info probes a graphics driver and reports the
// capability snapshot and the dispatch table built from it.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/driver"
	wgpudriver "github.com/gogpu/gpudev/driver/wgpu"
	"github.com/gogpu/gpudev/internal/drivertest"
)

func main() {
	var (
		fake    = flag.Bool("fake", false, "probe the synthetic in-memory driver instead of the GPU")
		disable = flag.String("disable", "", "comma-separated workaround names to disable")
		verbose = flag.Bool("v", false, "log probe and dispatch decisions")
	)
	flag.Parse()

	if *verbose {
		gpudev.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	var drv driver.Driver
	if *fake {
		drv = drivertest.New(
			drivertest.WithName("drivertest synthetic"),
			drivertest.WithVersion(1, 1),
			drivertest.WithExtensions("EXT_texture_rg", "KHR_copy_commands2"),
		)
	} else {
		real, err := wgpudriver.New()
		if err != nil {
			log.Fatalf("opening GPU driver: %v", err)
		}
		defer real.Close()
		drv = real
	}

	var opts []gpudev.Option
	if *disable != "" {
		opts = append(opts, gpudev.WithDisabledWorkarounds(strings.Split(*disable, ",")...))
	}
	dev, err := gpudev.NewDevice(drv, opts...)
	if err != nil {
		log.Fatalf("creating device: %v", err)
	}
	defer dev.Destroy()

	snap := dev.Caps()
	fmt.Printf("driver:  %s\n", snap.DriverName())
	fmt.Printf("version: %s\n", snap.Version())
	fmt.Printf("profile: %s\n", snap.Profile())
	fmt.Println("extensions:")
	for _, ext := range snap.Detected() {
		fmt.Printf("  %s\n", ext)
	}

	t := dev.Table()
	fmt.Println("dispatch:")
	fmt.Printf("  create render pass:   %s\n", t.CreateRenderPassKind)
	fmt.Printf("  render pass control:  %s\n", t.RenderPassControlKind)
	fmt.Printf("  bind buffer memory:   %s\n", t.BindBufferMemoryKind)
	fmt.Printf("  memory requirements:  %s\n", t.MemoryRequirementsKind)
	fmt.Printf("  copy buffer:          %s\n", t.CopyBufferKind)
	fmt.Printf("  copy image:           %s\n", t.CopyImageKind)
	fmt.Printf("  read texture sub:     %s\n", t.ReadTextureSubKind)
	fmt.Printf("  clear depth:          %s\n", t.ClearDepthKind)
	fmt.Printf("  graphics reset query: %s\n", t.GraphicsResetStatusKind)
	if len(t.EncounteredWorkarounds) > 0 {
		fmt.Println("workarounds:")
		for _, w := range t.EncounteredWorkarounds {
			fmt.Printf("  %s\n", w)
		}
	}
}
