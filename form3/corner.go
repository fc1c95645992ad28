package form3

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/deckforge/csg"
)

// Corners returns the centers of the four vertical fillet arcs of a
// w by d cross section with corner radius round, in clockwise order
// starting at the minimum-x/minimum-y corner:
//  (round, round), (round, d-round), (w-round, d-round), (w-round, round)
// The obj3 corner placement re-derives these corners; the ordering is
// load bearing and must not change.
//
// Unlike the generators in this package, Corners is a must-style helper:
// it panics with an error wrapping csg.ErrInvalidDimension when the
// radius does not fit the cross section. The generators call it inside
// their recover scope, so their callers see a returned error.
func Corners(w, d, round float64) [4]r2.Vec {
	if round < 0 || 2*round > w || 2*round > d {
		panic(fmt.Errorf("%w: corner radius %g does not fit %gx%g", csg.ErrInvalidDimension, round, w, d))
	}
	return [4]r2.Vec{
		{X: round, Y: round},
		{X: round, Y: d - round},
		{X: w - round, Y: d - round},
		{X: w - round, Y: round},
	}
}
