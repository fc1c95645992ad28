package csg

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg/internal/d3"
)

// Translate is a solid displaced by Offset. The child is wrapped, never
// modified.
type Translate struct {
	Offset r3.Vec
	Solid  Solid
}

// NewTranslate returns s displaced by offset. Panics with
// ErrInvalidParameter if s is nil.
func NewTranslate(s Solid, offset r3.Vec) *Translate {
	if s == nil {
		failf(ErrInvalidParameter, "nil solid argument to NewTranslate")
	}
	return &Translate{Offset: offset, Solid: s}
}

func (s *Translate) Bounds() r3.Box {
	return r3.Box(d3.Box(s.Solid.Bounds()).Translate(s.Offset))
}
func (s *Translate) isSolid() {}

// Rotate is a solid rotated about the origin by the Euler angles in
// Angles (radians), applied about the x axis first, then y, then z.
type Rotate struct {
	Angles r3.Vec
	Solid  Solid
}

// NewRotate returns s rotated about the origin by angles (radians,
// x-then-y-then-z order). Panics with ErrInvalidParameter if s is nil.
func NewRotate(s Solid, angles r3.Vec) *Rotate {
	if s == nil {
		failf(ErrInvalidParameter, "nil solid argument to NewRotate")
	}
	return &Rotate{Angles: angles, Solid: s}
}

// Apply rotates v by the node's angles.
func (s *Rotate) Apply(v r3.Vec) r3.Vec {
	v = r3.NewRotation(s.Angles.X, r3.Vec{X: 1}).Rotate(v)
	v = r3.NewRotation(s.Angles.Y, r3.Vec{Y: 1}).Rotate(v)
	return r3.NewRotation(s.Angles.Z, r3.Vec{Z: 1}).Rotate(v)
}

// Invert applies the inverse rotation to v.
func (s *Rotate) Invert(v r3.Vec) r3.Vec {
	v = r3.NewRotation(-s.Angles.Z, r3.Vec{Z: 1}).Rotate(v)
	v = r3.NewRotation(-s.Angles.Y, r3.Vec{Y: 1}).Rotate(v)
	return r3.NewRotation(-s.Angles.X, r3.Vec{X: 1}).Rotate(v)
}

func (s *Rotate) Bounds() r3.Box {
	verts := d3.Box(s.Solid.Bounds()).Vertices()
	bb := d3.Box{Min: s.Apply(verts[0]), Max: s.Apply(verts[0])}
	for _, v := range verts[1:] {
		bb = bb.Include(s.Apply(v))
	}
	return r3.Box(bb)
}
func (s *Rotate) isSolid() {}
