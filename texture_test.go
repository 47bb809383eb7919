// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpudev

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpudev/caps"
	"github.com/gogpu/gpudev/driver"
	"github.com/gogpu/gpudev/internal/drivertest"
)

func newTestDevice(t *testing.T, opts ...drivertest.Option) (*Device, *drivertest.Driver) {
	t.Helper()
	drv := drivertest.New(opts...)
	dev, err := NewDevice(drv)
	if err != nil {
		t.Fatalf("NewDevice() = %v", err)
	}
	return dev, drv
}

func TestTextureLifecycle(t *testing.T) {
	dev, drv := newTestDevice(t)

	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 8, Height: 8, Format: driver.PixelFormatRGBA8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	if tex.Levels() != 1 {
		t.Errorf("Levels() = %d, want 1 for zero descriptor levels", tex.Levels())
	}
	if !drv.TextureExists(tex.ID()) {
		t.Fatal("texture not created on driver")
	}

	id := tex.ID()
	tex.Destroy()
	if drv.TextureExists(id) {
		t.Error("texture still alive after Destroy")
	}
	// Idempotent.
	tex.Destroy()
	if drv.Calls["DestroyTexture"] != 1 {
		t.Errorf("DestroyTexture called %d times, want 1", drv.Calls["DestroyTexture"])
	}
}

func TestTextureReleaseDisowns(t *testing.T) {
	dev, drv := newTestDevice(t)

	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 4, Height: 4, Format: driver.PixelFormatR8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}

	id := tex.Release()
	tex.Destroy()
	if !drv.TextureExists(id) {
		t.Error("released texture destroyed by wrapper")
	}
	dev.Driver().DestroyTexture(id)
}

func TestTextureLevelSize(t *testing.T) {
	dev, _ := newTestDevice(t)
	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 16, Height: 8, Levels: 5, Format: driver.PixelFormatR8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	defer tex.Destroy()

	tests := []struct {
		level int
		want  image.Point
	}{
		{0, image.Pt(16, 8)},
		{1, image.Pt(8, 4)},
		{3, image.Pt(2, 1)},
		{4, image.Pt(1, 1)},
	}
	for _, tt := range tests {
		if got := tex.LevelSize(tt.level); got != tt.want {
			t.Errorf("LevelSize(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestTextureUploadSubWithoutExtension(t *testing.T) {
	dev, drv := newTestDevice(t)
	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 4, Height: 4, Format: driver.PixelFormatR8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	defer tex.Destroy()

	err = tex.UploadSub(0, image.Rect(0, 0, 2, 2), make([]byte, 4))
	if !errors.Is(err, ErrSubImageUploadUnsupported) {
		t.Errorf("UploadSub() = %v, want ErrSubImageUploadUnsupported", err)
	}
	if drv.Calls["WriteTextureSub"] != 0 {
		t.Error("driver WriteTextureSub reached without the extension")
	}
}

func TestTextureUploadSubWithExtension(t *testing.T) {
	dev, drv := newTestDevice(t, drivertest.WithExtensions(string(caps.ExtSubImageUpload)))
	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 4, Height: 4, Format: driver.PixelFormatR8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	defer tex.Destroy()

	if err := tex.UploadSub(0, image.Rect(1, 1, 3, 3), []byte{1, 2, 3, 4}); err != nil {
		t.Fatalf("UploadSub() = %v", err)
	}
	if drv.Calls["WriteTextureSub"] != 1 {
		t.Errorf("WriteTextureSub called %d times, want 1", drv.Calls["WriteTextureSub"])
	}
}

func TestFramebufferStatusTokens(t *testing.T) {
	dev, _ := newTestDevice(t)

	fb, err := NewFramebuffer(dev)
	if err != nil {
		t.Fatalf("NewFramebuffer() = %v", err)
	}
	defer fb.Destroy()

	if got := fb.Status(); got != driver.FramebufferIncompleteMissingAttachment {
		t.Errorf("empty framebuffer Status() = %v, want IncompleteMissingAttachment", got)
	}

	tex, err := NewTexture(dev, driver.TextureDescriptor{
		Width: 4, Height: 4, Format: driver.PixelFormatRGBA8Unorm,
	})
	if err != nil {
		t.Fatalf("NewTexture() = %v", err)
	}
	defer tex.Destroy()

	if err := fb.Attach(tex, 0); err != nil {
		t.Fatalf("Attach() = %v", err)
	}
	if got := fb.Status(); got != driver.FramebufferComplete {
		t.Errorf("Status() = %v, want Complete", got)
	}
}
