package csg

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg/internal/d3"
)

// checkChildren panics unless all solids are non-nil and there are at
// least min of them.
func checkChildren(op string, min int, solids []Solid) {
	if len(solids) < min {
		failf(ErrInvalidArity, "%s requires at least %d solids, got %d", op, min, len(solids))
	}
	for i, s := range solids {
		if s == nil {
			failf(ErrInvalidParameter, "nil solid argument (%d) to %s", i, op)
		}
	}
}

// extendAll returns the box enclosing the bounds of all solids.
func extendAll(solids []Solid) r3.Box {
	bb := d3.Box(solids[0].Bounds())
	for _, s := range solids[1:] {
		bb = bb.Extend(d3.Box(s.Bounds()))
	}
	return r3.Box(bb)
}

// Union is the boolean union of its children.
type Union struct {
	Solids []Solid
}

// NewUnion returns the union of two or more solids.
func NewUnion(solids ...Solid) *Union {
	checkChildren("union", 2, solids)
	return &Union{Solids: solids}
}

func (s *Union) Bounds() r3.Box { return extendAll(s.Solids) }
func (s *Union) isSolid()       {}

// Difference is the first child with the remaining children cut away.
// Order matters: Solid is the positive body.
type Difference struct {
	Solid Solid
	Cuts  []Solid
}

// NewDifference returns base with cuts removed. With no cuts the base is
// returned unchanged (identity). Panics with ErrInvalidParameter on a
// nil base or cut.
func NewDifference(base Solid, cuts ...Solid) Solid {
	if base == nil {
		failf(ErrInvalidParameter, "nil base argument to NewDifference")
	}
	if len(cuts) == 0 {
		return base
	}
	for i, s := range cuts {
		if s == nil {
			failf(ErrInvalidParameter, "nil cut argument (%d) to NewDifference", i)
		}
	}
	return &Difference{Solid: base, Cuts: cuts}
}

// Bounds returns the base bounds, shrunk by any cut that fills its own
// bounding box and slices the base from one side (a planar box cut, as
// the half-round hemisphere construction uses). Other cuts cannot
// tighten the box and are ignored, leaving a conservative bound.
func (s *Difference) Bounds() r3.Box {
	bb := s.Solid.Bounds()
	for _, c := range s.Cuts {
		if boxFilling(c) {
			bb = clipBox(bb, c.Bounds())
		}
	}
	return bb
}
func (s *Difference) isSolid() {}

// boxFilling reports whether s occupies its bounding box exactly.
func boxFilling(s Solid) bool {
	switch n := s.(type) {
	case *Box:
		return true
	case *Translate:
		return boxFilling(n.Solid)
	}
	return false
}

// clipBox shrinks base by a cut region equal to its bounds, when the
// cut spans base completely on two axes and removes a slab from one
// side of the third.
func clipBox(base, cut r3.Box) r3.Box {
	bmin := [3]float64{base.Min.X, base.Min.Y, base.Min.Z}
	bmax := [3]float64{base.Max.X, base.Max.Y, base.Max.Z}
	cmin := [3]float64{cut.Min.X, cut.Min.Y, cut.Min.Z}
	cmax := [3]float64{cut.Max.X, cut.Max.Y, cut.Max.Z}
	for a := 0; a < 3; a++ {
		covered := true
		for b := 0; b < 3; b++ {
			if b != a && (cmin[b] > bmin[b] || cmax[b] < bmax[b]) {
				covered = false
			}
		}
		if !covered {
			continue
		}
		if cmin[a] <= bmin[a] && cmax[a] > bmin[a] && cmax[a] < bmax[a] {
			bmin[a] = cmax[a]
		}
		if cmax[a] >= bmax[a] && cmin[a] < bmax[a] && cmin[a] > bmin[a] {
			bmax[a] = cmin[a]
		}
	}
	return r3.Box{
		Min: r3.Vec{X: bmin[0], Y: bmin[1], Z: bmin[2]},
		Max: r3.Vec{X: bmax[0], Y: bmax[1], Z: bmax[2]},
	}
}

// Intersection is the boolean intersection of its children.
type Intersection struct {
	Solids []Solid
}

// NewIntersection returns the intersection of two or more solids.
func NewIntersection(solids ...Solid) *Intersection {
	checkChildren("intersection", 2, solids)
	return &Intersection{Solids: solids}
}

// Bounds intersects the child bounds. The result is conservative for
// non-overlapping children (a degenerate box, never inverted).
func (s *Intersection) Bounds() r3.Box {
	bb := s.Solids[0].Bounds()
	for _, c := range s.Solids[1:] {
		cb := c.Bounds()
		bb.Min = d3.MaxElem(bb.Min, cb.Min)
		bb.Max = d3.MinElem(bb.Max, cb.Max)
	}
	bb.Max = d3.MaxElem(bb.Max, bb.Min)
	return bb
}
func (s *Intersection) isSolid() {}

// Hull is the convex hull of the union of its children.
type Hull struct {
	Solids []Solid
}

// NewHull returns the convex hull of two or more solids.
func NewHull(solids ...Solid) *Hull {
	checkChildren("hull", 2, solids)
	return &Hull{Solids: solids}
}

func (s *Hull) Bounds() r3.Box { return extendAll(s.Solids) }
func (s *Hull) isSolid()       {}

// Minkowski is the Minkowski sum of its children, applied pairwise left
// to right. A zero-volume operand makes the sum degenerate; callers are
// responsible for avoiding one (the form3 fillet constructions never
// build a Minkowski node with a zero rounding radius).
type Minkowski struct {
	Solids []Solid
}

// NewMinkowski returns the Minkowski sum of two or more solids.
func NewMinkowski(solids ...Solid) *Minkowski {
	checkChildren("minkowski", 2, solids)
	return &Minkowski{Solids: solids}
}

// Bounds sums the child bounds component-wise; exact for the Minkowski
// sum.
func (s *Minkowski) Bounds() r3.Box {
	bb := s.Solids[0].Bounds()
	for _, c := range s.Solids[1:] {
		cb := c.Bounds()
		bb.Min = r3.Add(bb.Min, cb.Min)
		bb.Max = r3.Add(bb.Max, cb.Max)
	}
	return bb
}
func (s *Minkowski) isSolid() {}
