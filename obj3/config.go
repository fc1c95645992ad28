// Package obj3 is a catalog of parametric screw mounting features for
// printed parts: filleted bosses, clearance and interference hole
// negatives, and screw head recesses shaped for support-free printing.
// Every generator is a pure function from explicit dimensions and an
// immutable Config to a csg.Solid; nothing is read from ambient state.
package obj3

import (
	"fmt"

	"github.com/deckforge/csg"
)

// Config holds the printing-process allowances the generators apply to
// nominal dimensions. Pass it by value into every call; a Config is
// never mutated.
type Config struct {
	// LayerHeight is the printed layer thickness. It sets the thickness
	// of each bridging layer of a screw head recess.
	LayerHeight float64
	// Clearance is added to a nominal screw diameter so the screw can
	// pass through without engaging.
	Clearance float64
	// Interference is added to a nominal screw diameter for a
	// thread-forming hole. Usually negative or zero.
	Interference float64
}

// DefaultConfig is tuned for a 0.4mm nozzle FDM printer at 0.2mm layers
// with typical metric machine screws.
var DefaultConfig = Config{
	LayerHeight:  0.2,
	Clearance:    0.4,
	Interference: -0.1,
}

func (c Config) validate() {
	if c.LayerHeight < 0 {
		panic(fmt.Errorf("%w: layer height %g < 0", csg.ErrInvalidParameter, c.LayerHeight))
	}
}
