package form3

import (
	"fmt"
	"runtime/debug"
)

// shapeErr carries a panic raised by the csg constructors along with the
// stack at the point of the panic.
type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

// Unwrap exposes the panic object when it is an error so that callers
// can match the csg sentinels with errors.Is.
func (s *shapeErr) Unwrap() error {
	if err, ok := s.panicObj.(error); ok {
		return err
	}
	return nil
}

// recoverErr converts a constructor panic into a returned error. Use as
//  defer recoverErr(&err)
func recoverErr(err *error) {
	if a := recover(); a != nil {
		*err = &shapeErr{
			panicObj: a,
			stack:    string(debug.Stack()),
		}
	}
}
