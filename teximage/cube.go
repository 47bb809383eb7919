// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package teximage

import (
	"fmt"
	"image"

	"github.com/gogpu/gpudev"
	"github.com/gogpu/gpudev/driver"
)

// CubeFace identifies one face of a cube map.
type CubeFace uint8

const (
	CubeFacePositiveX CubeFace = iota
	CubeFaceNegativeX
	CubeFacePositiveY
	CubeFaceNegativeY
	CubeFacePositiveZ
	CubeFaceNegativeZ
)

// String returns the face name.
func (f CubeFace) String() string {
	names := [...]string{"+X", "-X", "+Y", "-Y", "+Z", "-Z"}
	if int(f) < len(names) {
		return names[f]
	}
	return fmt.Sprintf("Unknown(%d)", uint8(f))
}

// Cube is a cube map held as six square face textures. The middleware
// manages faces individually so the readback machinery is identical to
// the 2D case.
type Cube struct {
	faces [6]*gpudev.Texture
}

// NewCube creates a cube map with square faces of the given edge size.
func NewCube(dev *gpudev.Device, size int, format driver.PixelFormat) (*Cube, error) {
	c := &Cube{}
	for i := range c.faces {
		tex, err := gpudev.NewTexture(dev, driver.TextureDescriptor{
			Label:  fmt.Sprintf("cube-face-%s", CubeFace(i)),
			Width:  size,
			Height: size,
			Format: format,
		})
		if err != nil {
			for _, f := range c.faces[:i] {
				f.Destroy()
			}
			return nil, fmt.Errorf("teximage: cube face %s creation failed: %w", CubeFace(i), err)
		}
		c.faces[i] = tex
	}
	return c, nil
}

// Face returns the texture backing one face.
func (c *Cube) Face(f CubeFace) *gpudev.Texture { return c.faces[f] }

// Destroy releases all six faces. Safe to call multiple times.
func (c *Cube) Destroy() {
	for _, f := range c.faces {
		if f != nil {
			f.Destroy()
		}
	}
}

// CubeSubImage reads a sub-rectangle of one mip level of one cube face.
// The cube-map variant of [SubImage], with identical path selection and
// failure behavior.
func CubeSubImage(dev *gpudev.Device, cube *Cube, face CubeFace, level int, rect image.Rectangle) (*Image, error) {
	return SubImage(dev, cube.Face(face), level, rect)
}
