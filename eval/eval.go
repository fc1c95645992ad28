// Package eval lowers a csg.Solid tree to a signed distance field. The
// boolean operators use the usual min/max combinations, so their
// distances are exact on the surface and a bound elsewhere. Hull and
// Minkowski nodes have no min/max form; they are lowered through convex
// support maps (see internal/convex), which requires every child of
// such a node to be convex.
package eval

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
	"github.com/deckforge/csg/internal/convex"
	"github.com/deckforge/csg/internal/d2"
	"github.com/deckforge/csg/internal/d3"
)

// SDF3 is the interface of a 3D signed distance field: negative inside
// the solid, zero on its surface.
type SDF3 interface {
	// Evaluate returns the minimum distance to the solid's surface,
	// negated for points inside it.
	Evaluate(p r3.Vec) float64
	// Bounds returns a box containing the zero level set.
	Bounds() r3.Box
}

// ErrNonConvex reports a hull or Minkowski sum whose child cannot be
// expressed as a convex support map.
var ErrNonConvex = errors.New("eval: solid is not convex")

// Lower converts a solid description to a signed distance field.
func Lower(s csg.Solid) (SDF3, error) {
	switch n := s.(type) {
	case *csg.Box:
		return &box3{half: r3.Scale(0.5, n.Size)}, nil

	case *csg.Cylinder:
		return &cylinder3{r: n.Radius, h: n.Height}, nil

	case *csg.Sphere:
		return &sphere3{r: n.Radius}, nil

	case *csg.Translate:
		child, err := Lower(n.Solid)
		if err != nil {
			return nil, err
		}
		return &translate3{off: n.Offset, s: child}, nil

	case *csg.Rotate:
		child, err := Lower(n.Solid)
		if err != nil {
			return nil, err
		}
		return &rotate3{node: n, s: child, bb: n.Bounds()}, nil

	case *csg.Union:
		children, err := lowerAll(n.Solids)
		if err != nil {
			return nil, err
		}
		return &union3{s: children, bb: n.Bounds()}, nil

	case *csg.Difference:
		base, err := Lower(n.Solid)
		if err != nil {
			return nil, err
		}
		cuts, err := lowerAll(n.Cuts)
		if err != nil {
			return nil, err
		}
		return &difference3{base: base, cuts: cuts}, nil

	case *csg.Intersection:
		children, err := lowerAll(n.Solids)
		if err != nil {
			return nil, err
		}
		return &intersection3{s: children, bb: n.Bounds()}, nil

	case *csg.Hull:
		members := make([]convex.Support, 0, len(n.Solids))
		for _, c := range flattenUnions(n.Solids) {
			sup, err := buildSupport(c)
			if err != nil {
				return nil, err
			}
			members = append(members, sup)
		}
		return &convex3{sup: convex.HullOf(members), bb: n.Bounds()}, nil

	case *csg.Minkowski:
		operands := make(convex.SumOf, len(n.Solids))
		for i, c := range n.Solids {
			sup, err := buildSupport(c)
			if err != nil {
				return nil, err
			}
			operands[i] = sup
		}
		return &convex3{sup: operands, bb: n.Bounds()}, nil
	}
	return nil, fmt.Errorf("eval: unknown solid %T", s)
}

func lowerAll(solids []csg.Solid) ([]SDF3, error) {
	out := make([]SDF3, len(solids))
	for i, s := range solids {
		child, err := Lower(s)
		if err != nil {
			return nil, err
		}
		out[i] = child
	}
	return out, nil
}

// flattenUnions replaces union members by their children. The hull of a
// union is the hull of the union's members, so this is exact and lets
// hulls take non-convex unions of convex parts.
func flattenUnions(solids []csg.Solid) []csg.Solid {
	out := make([]csg.Solid, 0, len(solids))
	for _, s := range solids {
		if u, ok := s.(*csg.Union); ok {
			out = append(out, flattenUnions(u.Solids)...)
			continue
		}
		out = append(out, s)
	}
	return out
}

// buildSupport expresses a convex solid as a support map. Primitives,
// translations and rotations map directly; hulls maximize and Minkowski
// sums add. A sphere with a single planar box cut (the hemisphere of the
// half-round fillet) maps to a cut ball. Anything else is rejected with
// ErrNonConvex.
func buildSupport(s csg.Solid) (convex.Support, error) {
	switch n := s.(type) {
	case *csg.Box:
		return convex.Box{Size: n.Size}, nil
	case *csg.Cylinder:
		return convex.Cylinder{Radius: n.Radius, Height: n.Height}, nil
	case *csg.Sphere:
		return convex.Ball{Radius: n.Radius}, nil
	case *csg.Translate:
		sup, err := buildSupport(n.Solid)
		if err != nil {
			return nil, err
		}
		return convex.Translated{Offset: n.Offset, Set: sup}, nil
	case *csg.Rotate:
		sup, err := buildSupport(n.Solid)
		if err != nil {
			return nil, err
		}
		return convex.Rotated{Forward: n.Apply, Inverse: n.Invert, Set: sup}, nil
	case *csg.Hull:
		members := make(convex.HullOf, 0, len(n.Solids))
		for _, c := range flattenUnions(n.Solids) {
			sup, err := buildSupport(c)
			if err != nil {
				return nil, err
			}
			members = append(members, sup)
		}
		return members, nil
	case *csg.Minkowski:
		operands := make(convex.SumOf, len(n.Solids))
		for i, c := range n.Solids {
			sup, err := buildSupport(c)
			if err != nil {
				return nil, err
			}
			operands[i] = sup
		}
		return operands, nil
	case *csg.Difference:
		if cb, ok := cutBall(n); ok {
			return cb, nil
		}
		return nil, fmt.Errorf("%w: difference is only convex as a planar sphere cut", ErrNonConvex)
	}
	return nil, fmt.Errorf("%w: %T", ErrNonConvex, s)
}

// cutBall recognizes Difference(Sphere, box) where the box cut acts as a
// halfspace: it covers the sphere completely on two axes and truncates
// it from one side on the third.
func cutBall(n *csg.Difference) (convex.CutBall, bool) {
	ball, ok := n.Solid.(*csg.Sphere)
	if !ok || len(n.Cuts) != 1 {
		return convex.CutBall{}, false
	}
	cut := n.Cuts[0]
	if !boxLike(cut) {
		return convex.CutBall{}, false
	}
	r := ball.Radius
	cb := cut.Bounds()
	cmin := [3]float64{cb.Min.X, cb.Min.Y, cb.Min.Z}
	cmax := [3]float64{cb.Max.X, cb.Max.Y, cb.Max.Z}
	axes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	for a := 0; a < 3; a++ {
		covered := true
		for b := 0; b < 3; b++ {
			if b != a && (cmin[b] > -r || cmax[b] < r) {
				covered = false
			}
		}
		if !covered {
			continue
		}
		// Cut from below: remaining set is x_a >= cmax[a].
		if cmin[a] <= -r && cmax[a] > -r && cmax[a] < r {
			return convex.CutBall{Radius: r, N: r3.Scale(-1, axes[a]), C: -cmax[a]}, true
		}
		// Cut from above: remaining set is x_a <= cmin[a].
		if cmax[a] >= r && cmin[a] > -r && cmin[a] < r {
			return convex.CutBall{Radius: r, N: axes[a], C: cmin[a]}, true
		}
	}
	return convex.CutBall{}, false
}

func boxLike(s csg.Solid) bool {
	switch n := s.(type) {
	case *csg.Box:
		return true
	case *csg.Translate:
		return boxLike(n.Solid)
	}
	return false
}

type box3 struct {
	half r3.Vec
}

func (s *box3) Evaluate(p r3.Vec) float64 {
	return sdfBox3d(r3.Sub(p, s.half), s.half)
}

func (s *box3) Bounds() r3.Box {
	return r3.Box{Max: r3.Scale(2, s.half)}
}

type cylinder3 struct {
	r, h float64
}

func (s *cylinder3) Evaluate(p r3.Vec) float64 {
	return sdfBox2d(
		r2.Vec{X: math.Hypot(p.X, p.Y), Y: p.Z - s.h/2},
		r2.Vec{X: s.r, Y: s.h / 2},
	)
}

func (s *cylinder3) Bounds() r3.Box {
	return r3.Box{
		Min: r3.Vec{X: -s.r, Y: -s.r},
		Max: r3.Vec{X: s.r, Y: s.r, Z: s.h},
	}
}

type sphere3 struct {
	r float64
}

func (s *sphere3) Evaluate(p r3.Vec) float64 { return r3.Norm(p) - s.r }

func (s *sphere3) Bounds() r3.Box {
	d := d3.Elem(s.r)
	return r3.Box{Min: r3.Scale(-1, d), Max: d}
}

type translate3 struct {
	off r3.Vec
	s   SDF3
}

func (s *translate3) Evaluate(p r3.Vec) float64 {
	return s.s.Evaluate(r3.Sub(p, s.off))
}

func (s *translate3) Bounds() r3.Box {
	return r3.Box(d3.Box(s.s.Bounds()).Translate(s.off))
}

type rotate3 struct {
	node *csg.Rotate
	s    SDF3
	bb   r3.Box
}

func (s *rotate3) Evaluate(p r3.Vec) float64 {
	return s.s.Evaluate(s.node.Invert(p))
}

func (s *rotate3) Bounds() r3.Box { return s.bb }

type union3 struct {
	s  []SDF3
	bb r3.Box
}

func (s *union3) Evaluate(p r3.Vec) float64 {
	d := s.s[0].Evaluate(p)
	for _, c := range s.s[1:] {
		d = math.Min(d, c.Evaluate(p))
	}
	return d
}

func (s *union3) Bounds() r3.Box { return s.bb }

type difference3 struct {
	base SDF3
	cuts []SDF3
}

func (s *difference3) Evaluate(p r3.Vec) float64 {
	d := s.base.Evaluate(p)
	for _, c := range s.cuts {
		d = math.Max(d, -c.Evaluate(p))
	}
	return d
}

func (s *difference3) Bounds() r3.Box { return s.base.Bounds() }

type intersection3 struct {
	s  []SDF3
	bb r3.Box
}

func (s *intersection3) Evaluate(p r3.Vec) float64 {
	d := s.s[0].Evaluate(p)
	for _, c := range s.s[1:] {
		d = math.Max(d, c.Evaluate(p))
	}
	return d
}

func (s *intersection3) Bounds() r3.Box { return s.bb }

// convex3 evaluates a hull or Minkowski sum through its support map.
type convex3 struct {
	sup convex.Support
	bb  r3.Box
}

func (s *convex3) Evaluate(p r3.Vec) float64 {
	return convex.SignedDistance(s.sup, p)
}

func (s *convex3) Bounds() r3.Box { return s.bb }

// sdfBox3d returns the signed distance to a box of half-dimensions s
// centered on the origin.
func sdfBox3d(p, s r3.Vec) float64 {
	d := r3.Sub(d3.AbsElem(p), s)
	switch {
	case d.X > 0 && d.Y > 0 && d.Z > 0:
		return r3.Norm(d)
	case d.X > 0 && d.Y > 0:
		return math.Hypot(d.X, d.Y)
	case d.X > 0 && d.Z > 0:
		return math.Hypot(d.X, d.Z)
	case d.Y > 0 && d.Z > 0:
		return math.Hypot(d.Y, d.Z)
	case d.X > 0:
		return d.X
	case d.Y > 0:
		return d.Y
	case d.Z > 0:
		return d.Z
	}
	return math.Max(d.X, math.Max(d.Y, d.Z))
}

// sdfBox2d returns the signed distance to a 2D box of half-dimensions s
// centered on the origin.
func sdfBox2d(p, s r2.Vec) float64 {
	d := r2.Sub(d2.AbsElem(p), s)
	switch {
	case d.X > 0 && d.Y > 0:
		return math.Hypot(d.X, d.Y)
	case d.X > 0:
		return d.X
	case d.Y > 0:
		return d.Y
	}
	return math.Max(d.X, d.Y)
}
