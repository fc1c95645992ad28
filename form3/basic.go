package form3

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
)

// Box returns a box solid spanning from the origin to size.
func Box(size r3.Vec) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return csg.NewBox(size), err
}

// Cylinder returns a right cylinder standing on the z=0 plane.
func Cylinder(radius, height float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return csg.NewCylinder(radius, height), err
}

// Sphere returns a sphere centered on the origin.
func Sphere(radius float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return csg.NewSphere(radius), err
}
