package eval_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
	"github.com/deckforge/csg/eval"
	"github.com/deckforge/csg/form3"
	"github.com/deckforge/csg/obj3"
)

func lower(t *testing.T, s csg.Solid) eval.SDF3 {
	t.Helper()
	field, err := eval.Lower(s)
	if err != nil {
		t.Fatal(err)
	}
	return field
}

func TestPrimitiveFields(t *testing.T) {
	const tol = 1e-12
	for _, test := range []struct {
		name string
		s    csg.Solid
		p    r3.Vec
		want float64
	}{
		{"box face", csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2}), r3.Vec{X: 5, Y: 1, Z: 1}, 3},
		{"box inside", csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2}), r3.Vec{X: 1, Y: 1, Z: 0.5}, -0.5},
		{"box corner", csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2}), r3.Vec{X: 5, Y: 6, Z: 1}, 5},
		{"sphere outside", csg.NewSphere(2), r3.Vec{X: 3, Y: 4}, 3},
		{"sphere inside", csg.NewSphere(2), r3.Vec{X: 1}, -1},
		{"cylinder side", csg.NewCylinder(1, 4), r3.Vec{X: 3, Z: 2}, 2},
		{"cylinder top", csg.NewCylinder(1, 4), r3.Vec{Z: 7}, 3},
		{"cylinder rim", csg.NewCylinder(1, 4), r3.Vec{X: 4, Z: 8}, 5},
		{"cylinder inside", csg.NewCylinder(1, 4), r3.Vec{X: 0.5, Z: 2}, -0.5},
	} {
		field := lower(t, test.s)
		if got := field.Evaluate(test.p); math.Abs(got-test.want) > tol {
			t.Errorf("%s: got %g, want %g", test.name, got, test.want)
		}
	}
}

func TestTransformFields(t *testing.T) {
	const tol = 1e-9
	moved := csg.NewTranslate(csg.NewSphere(1), r3.Vec{X: 10})
	field := lower(t, moved)
	if got := field.Evaluate(r3.Vec{X: 13}); math.Abs(got-2) > tol {
		t.Errorf("translated sphere: got %g, want 2", got)
	}

	// A box rotated 90 degrees about z occupies [-1,0]x[0,2].
	rot := csg.NewRotate(csg.NewBox(r3.Vec{X: 2, Y: 1, Z: 1}), r3.Vec{Z: csg.DtoR(90)})
	field = lower(t, rot)
	if got := field.Evaluate(r3.Vec{X: -0.5, Y: 5, Z: 0.5}); math.Abs(got-3) > tol {
		t.Errorf("rotated box: got %g, want 3", got)
	}
}

func TestBooleanFields(t *testing.T) {
	const tol = 1e-12
	a := csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2})
	b := csg.NewTranslate(csg.NewBox(r3.Vec{X: 2, Y: 2, Z: 2}), r3.Vec{X: 1})

	union := lower(t, csg.NewUnion(a, b))
	if got := union.Evaluate(r3.Vec{X: 4, Y: 1, Z: 1}); math.Abs(got-1) > tol {
		t.Errorf("union: got %g, want 1", got)
	}

	// Cutting b out of a leaves the slab x in [0,1].
	diff := lower(t, csg.NewDifference(a, b))
	if got := diff.Evaluate(r3.Vec{X: 0.75, Y: 1, Z: 1}); math.Abs(got-(-0.25)) > tol {
		t.Errorf("difference interior: got %g, want -0.25", got)
	}
	if got := diff.Evaluate(r3.Vec{X: 1.5, Y: 1, Z: 1}); math.Abs(got-0.5) > tol {
		t.Errorf("difference in cut region: got %g, want 0.5", got)
	}

	inter := lower(t, csg.NewIntersection(a, b))
	if got := inter.Evaluate(r3.Vec{X: 0.5, Y: 1, Z: 1}); math.Abs(got-0.5) > tol {
		t.Errorf("intersection outside: got %g, want 0.5", got)
	}
	if got := inter.Evaluate(r3.Vec{X: 1.75, Y: 1, Z: 1}); math.Abs(got-(-0.25)) > tol {
		t.Errorf("intersection inside: got %g, want -0.25", got)
	}
}

// The filleted boss is a Minkowski sum: flat faces and the corner arcs
// must both be exact on the outside.
func TestFilletedBossField(t *testing.T) {
	const tol = 1e-7
	boss, err := obj3.FilletedBoss(20, 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	field := lower(t, boss)
	if got := field.Evaluate(r3.Vec{X: 25, Y: 10, Z: 5}); math.Abs(got-5) > tol {
		t.Errorf("face distance: got %g, want 5", got)
	}
	// Distance to the corner arc centered at (3,3) with radius 3.
	want := math.Sqrt(50) - 3
	if got := field.Evaluate(r3.Vec{X: -2, Y: -2, Z: 5}); math.Abs(got-want) > tol {
		t.Errorf("corner distance: got %g, want %g", got, want)
	}
	// On-surface check at the middle of a flat face.
	if got := field.Evaluate(r3.Vec{X: 20, Y: 10, Z: 5}); math.Abs(got) > tol {
		t.Errorf("surface distance: got %g, want 0", got)
	}
}

// The half-round prism carries a hemisphere (a sphere with a planar box
// cut) through the Minkowski lowering.
func TestHalfRoundPrismField(t *testing.T) {
	const tol = 1e-7
	s, err := form3.HalfRoundPrism(r3.Vec{X: 20, Y: 20, Z: 10}, 3)
	if err != nil {
		t.Fatal(err)
	}
	field := lower(t, s)
	// The top face is flat above the core cross section.
	if got := field.Evaluate(r3.Vec{X: 10, Y: 10, Z: 15}); math.Abs(got-5) > tol {
		t.Errorf("top distance: got %g, want 5", got)
	}
	// The bottom face stays square on z=0.
	if got := field.Evaluate(r3.Vec{X: 10, Y: 10, Z: -4}); math.Abs(got-4) > tol {
		t.Errorf("bottom distance: got %g, want 4", got)
	}
}

func TestHullField(t *testing.T) {
	const tol = 1e-7
	// Hull of two unit spheres 4 apart: a capsule.
	h := csg.NewHull(
		csg.NewSphere(1),
		csg.NewTranslate(csg.NewSphere(1), r3.Vec{X: 4}),
	)
	field := lower(t, h)
	if got := field.Evaluate(r3.Vec{X: 2, Y: 3}); math.Abs(got-2) > tol {
		t.Errorf("capsule side: got %g, want 2", got)
	}
	if got := field.Evaluate(r3.Vec{X: 8}); math.Abs(got-3) > tol {
		t.Errorf("capsule cap: got %g, want 3", got)
	}
}

// A union inside a hull is legal: the hull of a union is the hull of the
// union's members.
func TestHullOfUnion(t *testing.T) {
	h := csg.NewHull(
		csg.NewUnion(csg.NewSphere(1), csg.NewTranslate(csg.NewSphere(1), r3.Vec{X: 4})),
		csg.NewTranslate(csg.NewSphere(1), r3.Vec{Y: 4}),
	)
	if _, err := eval.Lower(h); err != nil {
		t.Fatalf("hull of union: %v", err)
	}
}

func TestNonConvexRejected(t *testing.T) {
	ring := csg.NewDifference(csg.NewCylinder(5, 2), csg.NewCylinder(3, 2))
	m := csg.NewMinkowski(ring, csg.NewSphere(1))
	if _, err := eval.Lower(m); !errors.Is(err, eval.ErrNonConvex) {
		t.Errorf("minkowski of ring: got %v, want ErrNonConvex", err)
	}
	h := csg.NewHull(ring, csg.NewSphere(1))
	if _, err := eval.Lower(h); !errors.Is(err, eval.ErrNonConvex) {
		t.Errorf("hull of ring: got %v, want ErrNonConvex", err)
	}
}

func TestLoweredBoundsMatchTree(t *testing.T) {
	const tol = 1e-12
	boss, err := obj3.FilletedBoss(20, 10, 3)
	if err != nil {
		t.Fatal(err)
	}
	field := lower(t, boss)
	want := boss.Bounds()
	got := field.Bounds()
	if math.Abs(got.Min.X-want.Min.X) > tol || math.Abs(got.Max.X-want.Max.X) > tol ||
		math.Abs(got.Min.Z-want.Min.Z) > tol || math.Abs(got.Max.Z-want.Max.Z) > tol {
		t.Errorf("lowered bounds %+v, want %+v", got, want)
	}
}
