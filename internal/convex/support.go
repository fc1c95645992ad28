// Package convex computes signed distances to convex sets described by
// support maps. It backs the eval package's lowering of hull and
// Minkowski-sum nodes: hulls maximize over child supports, Minkowski
// sums add them, and a GJK query turns the combined support map into a
// distance.
package convex

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Support describes a convex set by its support map: Support(d) returns
// a point of the set with maximal dot product with d. The direction d is
// non-zero but need not be normalized.
type Support interface {
	Support(d r3.Vec) r3.Vec
}

// Box spans from the origin to Size.
type Box struct {
	Size r3.Vec
}

func (b Box) Support(d r3.Vec) r3.Vec {
	var v r3.Vec
	if d.X > 0 {
		v.X = b.Size.X
	}
	if d.Y > 0 {
		v.Y = b.Size.Y
	}
	if d.Z > 0 {
		v.Z = b.Size.Z
	}
	return v
}

// Cylinder has its axis along z and stands on the z=0 plane.
type Cylinder struct {
	Radius float64
	Height float64
}

func (c Cylinder) Support(d r3.Vec) r3.Vec {
	var v r3.Vec
	if d.Z > 0 {
		v.Z = c.Height
	}
	n := math.Hypot(d.X, d.Y)
	if n > 0 {
		v.X = c.Radius * d.X / n
		v.Y = c.Radius * d.Y / n
	}
	return v
}

// Ball is centered on the origin.
type Ball struct {
	Radius float64
}

func (b Ball) Support(d r3.Vec) r3.Vec {
	n := r3.Norm(d)
	if n == 0 {
		return r3.Vec{Z: b.Radius}
	}
	return r3.Scale(b.Radius/n, d)
}

// CutBall is a ball centered on the origin intersected with the
// halfspace x·N <= C, with N unit and |C| < Radius. It represents the
// hemispherical rounding primitive of the half-round fillet.
type CutBall struct {
	Radius float64
	N      r3.Vec
	C      float64
}

func (b CutBall) Support(d r3.Vec) r3.Vec {
	p := Ball{Radius: b.Radius}.Support(d)
	if r3.Dot(p, b.N) <= b.C {
		return p
	}
	// The support lies on the cut circle x·N = C.
	t := r3.Sub(d, r3.Scale(r3.Dot(d, b.N), b.N))
	tn := r3.Norm(t)
	if tn == 0 {
		return r3.Scale(b.C, b.N)
	}
	rim := math.Sqrt(b.Radius*b.Radius - b.C*b.C)
	return r3.Add(r3.Scale(b.C, b.N), r3.Scale(rim/tn, t))
}

// Translated displaces a convex set by Offset.
type Translated struct {
	Offset r3.Vec
	Set    Support
}

func (t Translated) Support(d r3.Vec) r3.Vec {
	return r3.Add(t.Offset, t.Set.Support(d))
}

// Rotated applies a rotation to a convex set. Forward rotates a point of
// the set, Inverse is its inverse rotation.
type Rotated struct {
	Forward func(r3.Vec) r3.Vec
	Inverse func(r3.Vec) r3.Vec
	Set     Support
}

func (r Rotated) Support(d r3.Vec) r3.Vec {
	return r.Forward(r.Set.Support(r.Inverse(d)))
}

// HullOf is the convex hull of its members.
type HullOf []Support

func (h HullOf) Support(d r3.Vec) r3.Vec {
	best := h[0].Support(d)
	score := r3.Dot(best, d)
	for _, s := range h[1:] {
		p := s.Support(d)
		if sc := r3.Dot(p, d); sc > score {
			best, score = p, sc
		}
	}
	return best
}

// SumOf is the Minkowski sum of its members.
type SumOf []Support

func (m SumOf) Support(d r3.Vec) r3.Vec {
	var v r3.Vec
	for _, s := range m {
		v = r3.Add(v, s.Support(d))
	}
	return v
}
