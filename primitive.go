package csg

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg/internal/d3"
)

// Box is an axis aligned rectangular prism spanning from the origin to
// Size. Zero components are legal; the resulting solid is degenerate but
// well formed (callers composing Minkowski sums must avoid zero-volume
// operands themselves).
type Box struct {
	Size r3.Vec
}

// NewBox returns a box solid. Panics with ErrInvalidDimension if any
// component of size is negative.
func NewBox(size r3.Vec) *Box {
	if d3.LTZero(size) {
		failf(ErrInvalidDimension, "box size %v < 0", size)
	}
	return &Box{Size: size}
}

func (s *Box) Bounds() r3.Box { return r3.Box{Max: s.Size} }
func (s *Box) isSolid()       {}

// Cylinder is a right circular cylinder with its axis along z, standing
// on the z=0 plane: it spans z in [0, Height].
type Cylinder struct {
	Radius float64
	Height float64
}

// NewCylinder returns a cylinder solid. Panics with ErrInvalidDimension
// if radius or height is negative.
func NewCylinder(radius, height float64) *Cylinder {
	if radius < 0 {
		failf(ErrInvalidDimension, "cylinder radius %g < 0", radius)
	}
	if height < 0 {
		failf(ErrInvalidDimension, "cylinder height %g < 0", height)
	}
	return &Cylinder{Radius: radius, Height: height}
}

func (s *Cylinder) Bounds() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: -s.Radius, Y: -s.Radius},
		Max: r3.Vec{X: s.Radius, Y: s.Radius, Z: s.Height},
	}
}
func (s *Cylinder) isSolid() {}

// Sphere is a ball centered on the origin.
type Sphere struct {
	Radius float64
}

// NewSphere returns a sphere solid. Panics with ErrInvalidDimension if
// radius is negative.
func NewSphere(radius float64) *Sphere {
	if radius < 0 {
		failf(ErrInvalidDimension, "sphere radius %g < 0", radius)
	}
	return &Sphere{Radius: radius}
}

func (s *Sphere) Bounds() r3.Box {
	d := d3.Elem(s.Radius)
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}
func (s *Sphere) isSolid() {}
