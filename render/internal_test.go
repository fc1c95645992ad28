package render

import (
	"bytes"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

// A tetrahedron with one vertex inside yields exactly one triangle with
// its vertices on the zero crossings of the cut edges.
func TestMarchTetrahedronSingle(t *testing.T) {
	const tol = 1e-12
	p := [4]r3.Vec{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
	}
	v := [4]float64{-1, 1, 1, 1}
	var dst [maxTrianglesPerCell]Triangle3
	n := marchTetrahedron(dst[:], p, v)
	if n != 1 {
		t.Fatalf("got %d triangles, want 1", n)
	}
	for _, vert := range dst[0].V {
		// Crossings lie at the midpoint of each edge from the origin.
		if math.Abs(r3.Norm(vert)-0.5) > tol {
			t.Errorf("vertex %+v not at edge midpoint", vert)
		}
	}
	// The normal must point away from the inside vertex at the origin.
	c := r3.Scale(1./3., r3.Add(dst[0].V[0], r3.Add(dst[0].V[1], dst[0].V[2])))
	if r3.Dot(dst[0].Normal(), c) < 0 {
		t.Error("triangle winds toward the solid")
	}
}

func TestMarchTetrahedronQuad(t *testing.T) {
	p := [4]r3.Vec{
		{},
		{X: 1},
		{Y: 1},
		{Z: 1},
	}
	v := [4]float64{-1, -1, 1, 1}
	var dst [maxTrianglesPerCell]Triangle3
	if n := marchTetrahedron(dst[:], p, v); n != 2 {
		t.Fatalf("got %d triangles, want 2", n)
	}
}

func TestMarchTetrahedronNoCrossing(t *testing.T) {
	p := [4]r3.Vec{{}, {X: 1}, {Y: 1}, {Z: 1}}
	var dst [maxTrianglesPerCell]Triangle3
	if n := marchTetrahedron(dst[:], p, [4]float64{1, 1, 1, 1}); n != 0 {
		t.Errorf("all-outside: got %d triangles, want 0", n)
	}
	if n := marchTetrahedron(dst[:], p, [4]float64{-1, -1, -1, -1}); n != 0 {
		t.Errorf("all-inside: got %d triangles, want 0", n)
	}
}

func TestSTLTriangleRoundTrip(t *testing.T) {
	want := Triangle3{V: [3]r3.Vec{
		{X: 1, Y: 2, Z: 3},
		{X: 4, Y: 5, Z: 6},
		{X: 4, Y: 2, Z: 9},
	}}
	var b bytes.Buffer
	if err := WriteSTL(&b, []Triangle3{want}); err != nil {
		t.Fatal(err)
	}
	got, err := readBinarySTL(&b)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("read %d triangles, want 1", len(got))
	}
	for i := range want.V {
		if got[0].V[i] != want.V[i] {
			t.Errorf("vertex %d: got %+v, want %+v", i, got[0].V[i], want.V[i])
		}
	}
}

func TestReadBinarySTLBadHeader(t *testing.T) {
	var empty [84]byte
	if _, err := readBinarySTL(bytes.NewReader(empty[:])); err == nil {
		t.Error("expected error on zero triangle count")
	}
}
