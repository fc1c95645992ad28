package render

import (
	"io"
	"math"
	"sync"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg/eval"
	"github.com/deckforge/csg/internal/d3"
)

// octree renders a distance field with octree space sampling: cubes
// whose center distance exceeds the half diagonal contain no surface and
// are discarded whole, the rest subdivide down to the leaf resolution
// where marching tetrahedra emit triangles.
type octree struct {
	dc        dc3
	todo      []cell
	unwritten triangle3Buffer
}

// v3i is an integer grid coordinate of the octree lattice.
type v3i [3]int

func (a v3i) Add(b v3i) v3i {
	return v3i{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func (a v3i) AddScalar(s int) v3i {
	return v3i{a[0] + s, a[1] + s, a[2] + s}
}

type cell struct {
	v3i       // origin of cell as lattice integers
	n    uint // level of cell, size = 1 << n
}

// NewOctreeRenderer returns a marching tetrahedra Renderer over s using
// octree cell sampling. meshCells is the number of leaf cells along the
// longest axis of the model's bounding box.
//
// The todo slice leaks processed cells until rendering completes; for
// the model sizes this package targets that is cheaper than maintaining
// a ring buffer.
func NewOctreeRenderer(s eval.SDF3, meshCells int) *octree {
	if meshCells < 2 {
		panic("meshCells must be 2 or larger")
	}
	// Scale the bounding box about the center so the box boundary is not
	// on the object surface.
	bb := d3.Box(s.Bounds()).ScaleAboutCenter(1.01)
	longAxis := d3.Max(bb.Size())
	// The leaf cell spans 2 lattice units so corners can be addressed at
	// half resolution.
	resolution := 0.5 * longAxis / float64(meshCells)

	levels := uint(math.Ceil(math.Log2(longAxis/resolution))) + 1

	cells := make([]cell, 1, 1024)
	cells[0] = cell{v3i{}, levels - 1} // start at the top level
	return &octree{
		dc:        *newDc3(s, bb.Min, resolution, levels),
		unwritten: triangle3Buffer{buf: make([]Triangle3, 0, 1024)},
		todo:      cells,
	}
}

// ReadTriangles writes triangles rendered from the model into dst. It
// returns the number of triangles written and io.EOF once the model is
// exhausted.
func (oc *octree) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	if oc.unwritten.Len() > 0 {
		n += oc.unwritten.Read(dst[n:])
		if n == len(dst) {
			return n, nil
		}
	}
	if len(oc.todo) == 0 && oc.unwritten.Len() == 0 {
		return n, io.EOF
	}
	n += oc.readTriangles(dst[n:])
	return n, nil
}

func (oc *octree) readTriangles(dst []Triangle3) (n int) {
	cellsProcessed := 0
	var newCells []cell
	for _, c := range oc.todo {
		if n == len(dst) {
			break
		}
		if n+maxTrianglesPerCell > len(dst) {
			// Not enough room left for a worst-case leaf; process into
			// the spill buffer instead.
			var tmp [maxTrianglesPerCell]Triangle3
			tri, cells := oc.processCell(tmp[:], c)
			oc.unwritten.Write(tmp[:tri])
			newCells = append(newCells, cells...)
			cellsProcessed++
			break
		}
		tri, cells := oc.processCell(dst[n:], c)
		newCells = append(newCells, cells...)
		cellsProcessed++
		n += tri
	}
	oc.todo = append(oc.todo, newCells...)
	oc.todo = oc.todo[cellsProcessed:]
	return n
}

// processCell emits triangles for a leaf cell, or subdivides an interior
// cell into its non-empty children.
func (oc *octree) processCell(dst []Triangle3, c cell) (writtenTriangles int, newCells []cell) {
	if c.n == 1 {
		// Leaf at the required resolution.
		var corners [8]r3.Vec
		var values [8]float64
		for i, off := range cellCornerOffsets {
			corners[i], values[i] = oc.dc.Evaluate(c.Add(off))
		}
		return tetraToTriangles(dst, corners, values), nil
	}
	n := c.n - 1
	s := 1 << n
	subCells := [8]cell{
		{c.Add(v3i{0, 0, 0}), n},
		{c.Add(v3i{s, 0, 0}), n},
		{c.Add(v3i{s, s, 0}), n},
		{c.Add(v3i{0, s, 0}), n},
		{c.Add(v3i{0, 0, s}), n},
		{c.Add(v3i{s, 0, s}), n},
		{c.Add(v3i{s, s, s}), n},
		{c.Add(v3i{0, s, s}), n},
	}
	for _, candidate := range subCells {
		if !oc.dc.IsEmpty(&candidate) {
			newCells = append(newCells, candidate)
		}
	}
	return 0, newCells
}

// cellCornerOffsets orders the leaf corners bottom face first,
// counterclockwise from the cell origin.
var cellCornerOffsets = [8]v3i{
	{0, 0, 0},
	{2, 0, 0},
	{2, 2, 0},
	{0, 2, 0},
	{0, 0, 2},
	{2, 0, 2},
	{2, 2, 2},
	{0, 2, 2},
}

// dc3 caches distance evaluations on the octree lattice. Corner samples
// are shared between up to 8 cells, so roughly 2/3 of lookups hit.
type dc3 struct {
	mu         sync.Mutex
	cache      map[v3i]float64
	origin     r3.Vec    // origin of the overall bounding cube
	resolution float64   // size of smallest octree cell
	hdiag      []float64 // lookup table of cell half diagonals
	s          eval.SDF3
}

func newDc3(s eval.SDF3, origin r3.Vec, resolution float64, n uint) *dc3 {
	if n >= 64 {
		panic("level count must be less than word size for hdiag generation")
	}
	dc := dc3{
		origin:     origin,
		resolution: resolution,
		hdiag:      make([]float64, n),
		s:          s,
		cache:      make(map[v3i]float64),
	}
	for i := range dc.hdiag {
		side := float64(int(1)<<uint(i)) * dc.resolution
		dc.hdiag[i] = 0.5 * math.Sqrt(3*side*side)
	}
	return &dc
}

// Evaluate returns the lattice point's position and distance, reading
// through the cache.
func (dc *dc3) Evaluate(vi v3i) (r3.Vec, float64) {
	v := r3.Add(dc.origin, r3.Scale(dc.resolution, r3.Vec{
		X: float64(vi[0]),
		Y: float64(vi[1]),
		Z: float64(vi[2]),
	}))
	dist, found := dc.read(vi)
	if found {
		return v, dist
	}
	dist = dc.s.Evaluate(v)
	dc.write(vi, dist)
	return v, dist
}

// IsEmpty returns true if the cell contains no surface: the distance at
// its center exceeds its half diagonal.
func (dc *dc3) IsEmpty(c *cell) bool {
	s := 1 << (c.n - 1) // half side
	_, d := dc.Evaluate(c.AddScalar(s))
	return math.Abs(d) >= dc.hdiag[c.n]
}

func (dc *dc3) read(vi v3i) (float64, bool) {
	dc.mu.Lock()
	dist, found := dc.cache[vi]
	dc.mu.Unlock()
	return dist, found
}

func (dc *dc3) write(vi v3i, dist float64) {
	dc.mu.Lock()
	dc.cache[vi] = dist
	dc.mu.Unlock()
}
