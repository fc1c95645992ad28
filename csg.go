// Package csg describes solids as immutable trees of constructive solid
// geometry operations: box/cylinder/sphere primitives composed by union,
// difference, intersection, convex hull and Minkowski sum, with translate
// and rotate wrappers. A tree is built bottom-up by pure constructors and
// handed to a consumer (see the eval and render packages) that lowers it
// to a distance field or a triangle mesh.
//
// Constructors panic on invalid geometry with errors wrapping
// ErrInvalidDimension, ErrInvalidArity or ErrInvalidParameter. The form3
// and obj3 packages recover these panics into returned errors.
//
// The local origin convention is OpenSCAD-like: a box spans from the
// origin to its size vector, a cylinder stands on the z=0 plane with its
// axis through the origin, a sphere is centered on the origin.
package csg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Solid is a node in an immutable constructive solid geometry tree.
// The set of implementations is closed; consumers switch over the
// exported node types of this package.
type Solid interface {
	// Bounds returns an axis aligned bounding box that completely
	// contains the solid. Bounds of primitives, translations, unions,
	// hulls and Minkowski sums are exact. Difference bounds clip the
	// base box by planar box cuts and are otherwise conservative;
	// intersection bounds are conservative.
	Bounds() r3.Box

	isSolid()
}

var (
	// ErrInvalidDimension reports a length, width, radius or height that
	// must be positive (or non-negative) and is not.
	ErrInvalidDimension = errors.New("csg: invalid dimension")
	// ErrInvalidArity reports an operator invoked with fewer children
	// than it requires.
	ErrInvalidArity = errors.New("csg: invalid arity")
	// ErrInvalidParameter reports a caller-supplied parameter that is
	// out of range, or a nil solid argument.
	ErrInvalidParameter = errors.New("csg: invalid parameter")
)

// failf panics with an error wrapping sentinel. Constructors in this
// package report all validation failures through it.
func failf(sentinel error, format string, args ...interface{}) {
	args = append([]interface{}{sentinel}, args...)
	panic(fmt.Errorf("%w: "+format, args...))
}

// DtoR converts degrees to radians.
func DtoR(degrees float64) float64 {
	return (math.Pi / 180) * degrees
}

// RtoD converts radians to degrees.
func RtoD(radians float64) float64 {
	return (180 / math.Pi) * radians
}
