// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package distancefield turns high-resolution binary coverage textures
// into low-resolution signed distance fields on the GPU.
//
// The input is a large black-and-white texture (glyph or icon coverage at
// print resolution), the output a much smaller single-channel texture
// where each texel stores the signed distance to the nearest edge,
// remapped so 0.5 sits exactly on the contour. The conversion is a single
// fullscreen driver pass searching a fixed radius around each output
// sample.
//
// The input size must be an even integer multiple of the output size so
// output samples land on input texel centers; Generate rejects anything
// else before touching the GPU.
package distancefield

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpudev"
)

// Validation errors.
var (
	// ErrInvalidRadius is returned for a non-positive search radius.
	ErrInvalidRadius = errors.New("distancefield: radius must be positive")

	// ErrSizeRatio is returned when the input size is not an even
	// integer multiple of the output size.
	ErrSizeRatio = errors.New("distancefield: input size not an even multiple of output size")
)

// GeneratorConfig holds configuration for Generator.
type GeneratorConfig struct {
	// Radius is the search distance around each output sample in input
	// texels. Distances saturate at the radius, so it bounds both the
	// pass cost and the usable field range.
	// Default: 12
	Radius int
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{Radius: 12}
}

// Generator produces signed distance fields from coverage textures.
//
// A Generator is stateless apart from its configuration and may be
// reused for any number of conversions on the same device.
type Generator struct {
	device *gpudev.Device
	config GeneratorConfig
}

// NewGenerator creates a generator with default configuration.
func NewGenerator(dev *gpudev.Device) (*Generator, error) {
	return NewGeneratorWithConfig(dev, DefaultGeneratorConfig())
}

// NewGeneratorWithConfig creates a generator with the given
// configuration. Zero config values fall back to defaults.
func NewGeneratorWithConfig(dev *gpudev.Device, config GeneratorConfig) (*Generator, error) {
	if config.Radius == 0 {
		config.Radius = 12
	}
	if config.Radius < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, config.Radius)
	}
	return &Generator{device: dev, config: config}, nil
}

// Radius returns the configured search radius in input texels.
func (g *Generator) Radius() int { return g.config.Radius }

// Generate runs the distance-field pass from the coverage texture src
// into dst. The sizes of both textures must satisfy CheckSizeRatio; the
// destination contents are unspecified when an error is returned.
func (g *Generator) Generate(src, dst *gpudev.Texture) error {
	if err := CheckSizeRatio(src.Size(), dst.Size()); err != nil {
		return err
	}
	gpudev.Logger().Debug("distancefield: generating",
		slog.String("input", formatSize(src.Size())),
		slog.String("output", formatSize(dst.Size())),
		slog.Int("radius", g.config.Radius))
	if err := g.device.Driver().DistanceFieldPass(src.ID(), dst.ID(), g.config.Radius); err != nil {
		return fmt.Errorf("distancefield: pass failed: %w", err)
	}
	return nil
}

// CheckSizeRatio reports whether the input size can be downsampled to the
// output size: each input dimension must be the matching output dimension
// times the same even integer. Odd ratios would place output samples
// between input texel centers and skew every distance in the field.
func CheckSizeRatio(input, output image.Point) error {
	if output.X <= 0 || output.Y <= 0 ||
		input.X%output.X != 0 || input.Y%output.Y != 0 {
		return ratioError(input, output)
	}
	ratio := input.X / output.X
	if input.Y/output.Y != ratio || ratio%2 != 0 {
		return ratioError(input, output)
	}
	return nil
}

func ratioError(input, output image.Point) error {
	return fmt.Errorf("%w: input %s, output %s",
		ErrSizeRatio, formatSize(input), formatSize(output))
}

// formatSize renders a size as {X, Y}.
func formatSize(p image.Point) string {
	return fmt.Sprintf("{%d, %d}", p.X, p.Y)
}
