package render

import "gonum.org/v1/gonum/spatial/r3"

// Marching tetrahedra: each leaf cell splits into the 6 tetrahedra
// sharing the main diagonal, and each tetrahedron contributes at most 2
// triangles, so a cell never emits more than 12.
const maxTrianglesPerCell = 12

// cellTetrahedra lists the 6 tetrahedra of a cube in cellCornerOffsets
// indices. All share the 0-6 diagonal.
var cellTetrahedra = [6][4]int{
	{0, 1, 2, 6},
	{0, 2, 3, 6},
	{0, 3, 7, 6},
	{0, 7, 4, 6},
	{0, 4, 5, 6},
	{0, 5, 1, 6},
}

// tetraToTriangles polygonizes one leaf cell into dst and returns the
// number of triangles written. dst must have room for
// maxTrianglesPerCell triangles.
func tetraToTriangles(dst []Triangle3, corners [8]r3.Vec, values [8]float64) (n int) {
	for _, t := range cellTetrahedra {
		p := [4]r3.Vec{corners[t[0]], corners[t[1]], corners[t[2]], corners[t[3]]}
		v := [4]float64{values[t[0]], values[t[1]], values[t[2]], values[t[3]]}
		n += marchTetrahedron(dst[n:], p, v)
	}
	return n
}

// marchTetrahedron emits the surface crossing one tetrahedron: nothing,
// one triangle, or a quad split in two. A vertex with negative distance
// is inside the solid.
func marchTetrahedron(dst []Triangle3, p [4]r3.Vec, v [4]float64) int {
	var in, out []int
	for i := range v {
		if v[i] < 0 {
			in = append(in, i)
		} else {
			out = append(out, i)
		}
	}
	switch len(in) {
	case 0, 4:
		return 0
	case 1, 3:
		// One vertex is separated from the other three: a single
		// triangle cuts the three edges at that vertex.
		apex := in[0]
		rest := out
		if len(in) == 3 {
			apex = out[0]
			rest = in
		}
		tri := Triangle3{V: [3]r3.Vec{
			cut(p[apex], p[rest[0]], v[apex], v[rest[0]]),
			cut(p[apex], p[rest[1]], v[apex], v[rest[1]]),
			cut(p[apex], p[rest[2]], v[apex], v[rest[2]]),
		}}
		dst[0] = orient(tri, outwardOf(p, v))
		return 1
	}
	// Two in, two out: the surface is a quad cutting the four edges
	// between the pairs.
	a, b := in[0], in[1]
	c, d := out[0], out[1]
	e1 := cut(p[a], p[c], v[a], v[c])
	e2 := cut(p[a], p[d], v[a], v[d])
	e3 := cut(p[b], p[d], v[b], v[d])
	e4 := cut(p[b], p[c], v[b], v[c])
	ow := outwardOf(p, v)
	dst[0] = orient(Triangle3{V: [3]r3.Vec{e1, e2, e3}}, ow)
	dst[1] = orient(Triangle3{V: [3]r3.Vec{e1, e3, e4}}, ow)
	return 2
}

// cut interpolates the zero crossing on the edge p1-p2.
func cut(p1, p2 r3.Vec, v1, v2 float64) r3.Vec {
	t := v1 / (v1 - v2)
	return r3.Add(p1, r3.Scale(t, r3.Sub(p2, p1)))
}

// outwardOf returns a direction from the inside vertices of the
// tetrahedron toward the outside ones.
func outwardOf(p [4]r3.Vec, v [4]float64) r3.Vec {
	var inC, outC r3.Vec
	var ni, no float64
	for i := range v {
		if v[i] < 0 {
			inC = r3.Add(inC, p[i])
			ni++
		} else {
			outC = r3.Add(outC, p[i])
			no++
		}
	}
	return r3.Sub(r3.Scale(1/no, outC), r3.Scale(1/ni, inC))
}

// orient flips the triangle winding if needed so its normal points along
// outward.
func orient(t Triangle3, outward r3.Vec) Triangle3 {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	if r3.Dot(r3.Cross(e1, e2), outward) < 0 {
		t.V[1], t.V[2] = t.V[2], t.V[1]
	}
	return t
}
