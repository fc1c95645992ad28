package obj3

import (
	"fmt"
	"runtime/debug"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
	"github.com/deckforge/csg/form3"
)

// catalogErr carries a constructor panic surfaced by a generator.
type catalogErr struct {
	panicObj interface{}
	stack    string
}

func (e *catalogErr) Error() string {
	return fmt.Sprintf("%s", e.panicObj)
}

func (e *catalogErr) Unwrap() error {
	if err, ok := e.panicObj.(error); ok {
		return err
	}
	return nil
}

func recoverErr(err *error) {
	if a := recover(); a != nil {
		*err = &catalogErr{panicObj: a, stack: string(debug.Stack())}
	}
}

// FilletedBoss returns a square screw boss of the given cross-section
// width and height whose vertical edges are rounded to radius round.
// The boss corner sits on the origin. round == 0 returns a plain box.
func FilletedBoss(width, length, round float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	s, err = form3.FilletedPrism(r3.Vec{X: width, Y: width, Z: length}, round)
	if err != nil {
		return nil, err
	}
	return s, err
}
