package convex

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// gjkTol is the relative termination tolerance of the GJK loop.
	gjkTol     = 1e-10
	gjkMaxIter = 64
	// zeroTol2 is the squared norm below which the current iterate is
	// treated as the origin (query point inside the set).
	zeroTol2 = 1e-18
)

// Distance returns the euclidean distance from point p to the convex
// set s. inside reports containment, in which case the distance is 0.
// The query runs GJK on the set translated so p is the origin; for
// exterior points the result is exact to gjkTol.
func Distance(s Support, p r3.Vec) (dist float64, inside bool) {
	support := func(d r3.Vec) r3.Vec { return r3.Sub(s.Support(d), p) }
	v := support(r3.Vec{X: 1})
	simplex := []r3.Vec{v}
	for iter := 0; iter < gjkMaxIter; iter++ {
		vn2 := r3.Norm2(v)
		if vn2 < zeroTol2 {
			return 0, true
		}
		w := support(r3.Scale(-1, v))
		// No point of the set is closer in direction -v: converged.
		if vn2-r3.Dot(v, w) <= gjkTol*vn2 {
			return math.Sqrt(vn2), false
		}
		simplex = append(simplex, w)
		v, simplex = closestToOrigin(simplex)
		if len(simplex) == 4 {
			// Origin inside a full tetrahedron.
			return 0, true
		}
	}
	return r3.Norm(v), false
}

// interiorDirs is the 26 direction set of face, edge and corner normals
// of a cube, used to bound interior distances by supporting hyperplanes.
var interiorDirs = func() []r3.Vec {
	var dirs []r3.Vec
	for x := -1.; x <= 1; x++ {
		for y := -1.; y <= 1; y++ {
			for z := -1.; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				dirs = append(dirs, r3.Unit(r3.Vec{X: x, Y: y, Z: z}))
			}
		}
	}
	return dirs
}()

// SignedDistance returns the signed distance from p to the convex set:
// negative inside. Exterior distances are exact (GJK); interior
// distances are the best supporting-hyperplane bound over the 26 cube
// directions, which is exact for axis-aligned faces and otherwise at
// most deeper than the true distance. The surface zero crossing is
// therefore positioned by the exact exterior side.
func SignedDistance(s Support, p r3.Vec) float64 {
	d, inside := Distance(s, p)
	if !inside {
		return d
	}
	sd := math.Inf(-1)
	for _, u := range interiorDirs {
		if v := r3.Dot(p, u) - r3.Dot(s.Support(u), u); v > sd {
			sd = v
		}
	}
	if sd > 0 {
		sd = 0
	}
	return sd
}

// closestToOrigin returns the point of the simplex hull closest to the
// origin and the smallest sub-simplex supporting it.
func closestToOrigin(w []r3.Vec) (r3.Vec, []r3.Vec) {
	switch len(w) {
	case 1:
		return w[0], w
	case 2:
		return closestSegment(w[0], w[1])
	case 3:
		return closestTriangle(w[0], w[1], w[2])
	case 4:
		return closestTetrahedron(w[0], w[1], w[2], w[3])
	}
	panic("simplex of more than 4 vertices")
}

func closestSegment(a, b r3.Vec) (r3.Vec, []r3.Vec) {
	ab := r3.Sub(b, a)
	t := -r3.Dot(a, ab)
	if t <= 0 {
		return a, []r3.Vec{a}
	}
	den := r3.Norm2(ab)
	if t >= den {
		return b, []r3.Vec{b}
	}
	return r3.Add(a, r3.Scale(t/den, ab)), []r3.Vec{a, b}
}

// closestTriangle is the standard voronoi-region point-triangle query
// with the query point at the origin.
func closestTriangle(a, b, c r3.Vec) (r3.Vec, []r3.Vec) {
	ab := r3.Sub(b, a)
	ac := r3.Sub(c, a)
	ap := r3.Scale(-1, a)
	d1 := r3.Dot(ab, ap)
	d2 := r3.Dot(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a, []r3.Vec{a}
	}
	bp := r3.Scale(-1, b)
	d3 := r3.Dot(ab, bp)
	d4 := r3.Dot(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b, []r3.Vec{b}
	}
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return r3.Add(a, r3.Scale(v, ab)), []r3.Vec{a, b}
	}
	cp := r3.Scale(-1, c)
	d5 := r3.Dot(ab, cp)
	d6 := r3.Dot(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c, []r3.Vec{c}
	}
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return r3.Add(a, r3.Scale(w, ac)), []r3.Vec{a, c}
	}
	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return r3.Add(b, r3.Scale(w, r3.Sub(c, b))), []r3.Vec{b, c}
	}
	den := 1 / (va + vb + vc)
	v := vb * den
	w := vc * den
	return r3.Add(a, r3.Add(r3.Scale(v, ab), r3.Scale(w, ac))), []r3.Vec{a, b, c}
}

func closestTetrahedron(a, b, c, d r3.Vec) (r3.Vec, []r3.Vec) {
	inside := true
	best := r3.Vec{}
	bestN2 := math.Inf(1)
	var bestW []r3.Vec
	faces := [4][4]r3.Vec{
		{a, b, c, d},
		{a, c, d, b},
		{a, d, b, c},
		{b, d, c, a},
	}
	for _, f := range faces {
		if !originOutsidePlane(f[0], f[1], f[2], f[3]) {
			continue
		}
		inside = false
		v, w := closestTriangle(f[0], f[1], f[2])
		if n2 := r3.Norm2(v); n2 < bestN2 {
			best, bestN2, bestW = v, n2, w
		}
	}
	if inside {
		return r3.Vec{}, []r3.Vec{a, b, c, d}
	}
	return best, bestW
}

// originOutsidePlane reports whether the origin lies on the opposite
// side of plane abc from point d.
func originOutsidePlane(a, b, c, d r3.Vec) bool {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	signO := r3.Dot(r3.Scale(-1, a), n)
	signD := r3.Dot(r3.Sub(d, a), n)
	return signO*signD < 0
}
