package obj3

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
)

// Negatives are solids meant to be subtracted from a boss or plate.
// When bossWidth is positive the negative is centered on the axis of a
// square boss of that width, i.e. at (bossWidth/2, bossWidth/2);
// with bossWidth == 0 the axis passes through the origin.

// ClearanceNegative returns a cylinder for a hole the screw passes
// through freely: the nominal diameter inflated by cfg.Clearance.
func ClearanceNegative(cfg Config, diameter, length, bossWidth float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return holeNegative(cfg, diameter+cfg.Clearance, length, bossWidth), err
}

// InterferenceNegative returns a cylinder for a hole the screw forms
// threads into: the nominal diameter inflated by cfg.Interference
// (usually shrunk, as the allowance is negative).
func InterferenceNegative(cfg Config, diameter, length, bossWidth float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	return holeNegative(cfg, diameter+cfg.Interference, length, bossWidth), err
}

func holeNegative(cfg Config, diameter, length, bossWidth float64) csg.Solid {
	cfg.validate()
	if diameter <= 0 {
		panic(fmt.Errorf("%w: hole diameter %g <= 0 after allowance", csg.ErrInvalidDimension, diameter))
	}
	if bossWidth < 0 {
		panic(fmt.Errorf("%w: boss width %g < 0", csg.ErrInvalidParameter, bossWidth))
	}
	hole := csg.NewCylinder(diameter/2, length)
	if bossWidth == 0 {
		return hole
	}
	c := bossWidth / 2
	return csg.NewTranslate(hole, r3.Vec{X: c, Y: c})
}

// ScrewHeadRecessNegative returns the negative for a counter-bored screw
// head recess: a cylinder sized for the head (inflated by
// cfg.Clearance) topped by two bridging layers, each one print layer
// thick. The layers let the recess print with the pilot hole facing the
// build plate without support material: the first spans the recess with
// a headDiameter by pilotDiameter strip rounded to the recess wall, the
// second closes it down to a pilotDiameter square. pilotDiameter == 0 is
// legal and produces a plain recess with no bridging layers.
func ScrewHeadRecessNegative(cfg Config, headDiameter, headHeight, pilotDiameter, bossWidth float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	cfg.validate()
	if headDiameter <= 0 || headHeight <= 0 {
		panic(fmt.Errorf("%w: screw head %gx%g not positive", csg.ErrInvalidParameter, headDiameter, headHeight))
	}
	if pilotDiameter < 0 {
		panic(fmt.Errorf("%w: pilot diameter %g < 0", csg.ErrInvalidParameter, pilotDiameter))
	}
	if bossWidth < 0 {
		panic(fmt.Errorf("%w: boss width %g < 0", csg.ErrInvalidParameter, bossWidth))
	}
	var cx, cy float64
	if bossWidth > 0 {
		cx, cy = bossWidth/2, bossWidth/2
	}
	d := headDiameter + cfg.Clearance
	recess := csg.NewTranslate(csg.NewCylinder(d/2, headHeight), r3.Vec{X: cx, Y: cy})
	if pilotDiameter == 0 || cfg.LayerHeight == 0 {
		return recess, err
	}

	lh := cfg.LayerHeight
	// First bridging layer: a strip across the full recess, as wide as
	// the pilot hole, clipped to the recess's circular wall.
	strip := csg.NewTranslate(
		csg.NewBox(r3.Vec{X: d, Y: pilotDiameter, Z: lh}),
		r3.Vec{X: cx - d/2, Y: cy - pilotDiameter/2, Z: headHeight},
	)
	wall := csg.NewTranslate(csg.NewCylinder(d/2, lh), r3.Vec{X: cx, Y: cy, Z: headHeight})
	bridge1 := csg.NewIntersection(strip, wall)
	// Second bridging layer: a square slab over the pilot hole.
	bridge2 := csg.NewTranslate(
		csg.NewBox(r3.Vec{X: pilotDiameter, Y: pilotDiameter, Z: lh}),
		r3.Vec{X: cx - pilotDiameter/2, Y: cy - pilotDiameter/2, Z: headHeight + lh},
	)
	return csg.NewUnion(recess, bridge1, bridge2), err
}
