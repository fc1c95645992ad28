// Package render triangulates the distance fields of the eval package
// into triangle meshes and writes them out as binary STL. Rendering is
// streamed: a Renderer yields triangles in chunks so models need not fit
// in memory at once.
package render

import (
	"io"

	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a triangle in 3D space with vertices in counterclockwise
// order when viewed from outside the solid.
type Triangle3 struct {
	V [3]r3.Vec
}

// Normal returns the triangle's unit normal.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t.V[1], t.V[0])
	e2 := r3.Sub(t.V[2], t.V[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Renderer is a stream of rendered triangles. ReadTriangles follows the
// io.Reader contract: it fills t, returns the number of triangles
// written and io.EOF once the model is exhausted.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the slice
// read. It does not return io.EOF.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		if err != nil {
			break
		}
		result = append(result, buf[:nt]...)
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }
