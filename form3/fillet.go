// Package form3 builds filleted and chamfered prismatic solids from the
// csg primitives. The rounding technique is a Minkowski sum of a
// dimension-reduced core box with a short rounding primitive; the
// reduction exactly cancels the growth of the sum so the bounding box of
// the result equals the requested size for any positive radius.
package form3

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
)

// RoundSliver is the height of the auxiliary rounding cylinder used by
// the Minkowski fillet. It must be positive to keep the sum
// non-degenerate and is subtracted from the core height so the final
// height is exact.
const RoundSliver = 0.01

// FilletedPrism returns a prism of the given size whose vertical edges
// are rounded to radius round. Three faces of the result lie on the
// coordinate planes. round == 0 returns a plain box; a Minkowski node is
// never constructed with a zero rounding radius.
func FilletedPrism(size r3.Vec, round float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return filletedPrism(size, round), err
}

func filletedPrism(size r3.Vec, round float64) csg.Solid {
	if round < 0 {
		panic(fmt.Errorf("%w: fillet radius %g < 0", csg.ErrInvalidParameter, round))
	}
	if round == 0 {
		return csg.NewBox(size)
	}
	core := r3.Vec{X: size.X - 2*round, Y: size.Y - 2*round, Z: size.Z - RoundSliver}
	if core.X <= 0 || core.Y <= 0 {
		panic(fmt.Errorf("%w: fillet radius %g too large for cross section %gx%g",
			csg.ErrInvalidDimension, round, size.X, size.Y))
	}
	if core.Z <= 0 {
		panic(fmt.Errorf("%w: height %g not greater than rounding sliver", csg.ErrInvalidDimension, size.Z))
	}
	// The translate anchors three faces of the sum on the coordinate
	// planes; it is a placement convenience, not required by the sum.
	rounder := csg.NewTranslate(csg.NewCylinder(round, RoundSliver), r3.Vec{X: round, Y: round})
	return csg.NewMinkowski(csg.NewBox(core), rounder)
}

// HalfRoundPrism returns a prism like FilletedPrism whose top face is
// additionally rounded by radius round (a half-round blend); the bottom
// face stays square on the z=0 plane. The rounding primitive is the
// upper half of a ball, built as a sphere with its lower half cut away.
func HalfRoundPrism(size r3.Vec, round float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	if round < 0 {
		panic(fmt.Errorf("%w: round radius %g < 0", csg.ErrInvalidParameter, round))
	}
	if round == 0 {
		return csg.NewBox(size), err
	}
	core := r3.Vec{X: size.X - 2*round, Y: size.Y - 2*round, Z: size.Z - round}
	if core.X <= 0 || core.Y <= 0 || core.Z <= 0 {
		panic(fmt.Errorf("%w: round radius %g too large for size %v", csg.ErrInvalidDimension, round, size))
	}
	hemi := csg.NewDifference(
		csg.NewSphere(round),
		csg.NewTranslate(
			csg.NewBox(r3.Vec{X: 2 * round, Y: 2 * round, Z: round}),
			r3.Vec{X: -round, Y: -round, Z: -round},
		),
	)
	rounder := csg.NewTranslate(hemi, r3.Vec{X: round, Y: round})
	return csg.NewMinkowski(csg.NewBox(core), rounder), err
}
