package form3

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
)

// PlateParams defines a filleted plate such as an enclosure lid face.
type PlateParams struct {
	Size   r3.Vec  // overall width, depth, thickness
	Fillet float64 // vertical edge radius, must be positive
	// Chamfer is the size of a 45 degree chamfer around the top face
	// edge. Zero disables it.
	Chamfer float64
	// RabbetDepth and RabbetInset describe a stepped band grown below
	// the z=0 plane for the seam between two printed parts. The band
	// wall is inset from the plate wall by RabbetInset. A zero depth
	// disables the band.
	RabbetDepth float64
	RabbetInset float64
}

// Plate returns a filleted, optionally chamfered plate with an optional
// rabbet band. The plate proper is a single hull of corner cylinders: 4
// for a plain fillet, 8 when a chamfer traces the fillet+chamfer
// profile. The rabbet band is a second hull unioned below the plate, so
// the plate spans z in [-RabbetDepth, Size.Z].
func Plate(k PlateParams) (s csg.Solid, err error) {
	defer recoverErr(&err)
	if k.Fillet <= 0 {
		panic(fmt.Errorf("%w: plate fillet %g <= 0", csg.ErrInvalidParameter, k.Fillet))
	}
	if k.Chamfer < 0 || k.Chamfer >= k.Fillet || k.Chamfer >= k.Size.Z {
		panic(fmt.Errorf("%w: plate chamfer %g outside [0, min(fillet, thickness))", csg.ErrInvalidParameter, k.Chamfer))
	}
	corners := Corners(k.Size.X, k.Size.Y, k.Fillet)

	wall := k.Size.Z - k.Chamfer
	if wall <= 0 {
		panic(fmt.Errorf("%w: plate thickness %g not greater than chamfer", csg.ErrInvalidDimension, k.Size.Z))
	}
	pins := make([]csg.Solid, 0, 8)
	for _, c := range corners {
		pins = append(pins, cornerPin(c.X, c.Y, k.Fillet, 0, wall))
	}
	if k.Chamfer > 0 {
		// A thin inset pin at the top of each corner; hulling it with
		// the full-radius pins slopes the last Chamfer of wall at 45
		// degrees.
		for _, c := range corners {
			pins = append(pins, cornerPin(c.X, c.Y, k.Fillet-k.Chamfer, k.Size.Z-RoundSliver, RoundSliver))
		}
	}
	plate := csg.NewHull(pins...)

	if k.RabbetDepth <= 0 {
		return plate, err
	}
	if k.RabbetInset <= 0 || k.RabbetInset >= k.Fillet {
		panic(fmt.Errorf("%w: rabbet inset %g outside (0, fillet)", csg.ErrInvalidParameter, k.RabbetInset))
	}
	band := make([]csg.Solid, 0, 4)
	for _, c := range corners {
		band = append(band, cornerPin(c.X, c.Y, k.Fillet-k.RabbetInset, -k.RabbetDepth, k.RabbetDepth))
	}
	return csg.NewUnion(plate, csg.NewHull(band...)), err
}

// cornerPin is a corner cylinder of radius r spanning z in [z0, z0+h],
// centered at (x, y).
func cornerPin(x, y, r, z0, h float64) csg.Solid {
	return csg.NewTranslate(csg.NewCylinder(r, h), r3.Vec{X: x, Y: y, Z: z0})
}
