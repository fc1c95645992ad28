package obj3

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
)

// CornerArray places a feature at all four corners of a width by depth
// rectangle. The feature is authored relative to corner 0 (the origin
// corner, extending into +x/+y); copy i is rotated about the vertical
// axis by -90 degrees times i and translated to the absolute corner
//  (0,0), (0,depth), (width,depth), (width,0)
// in that order. Reusing one asymmetric feature definition at all four
// corners depends on exactly this convention: rotation, not mirroring,
// and the same clockwise corner order form3.Corners uses.
func CornerArray(feature csg.Solid, width, depth float64) (s csg.Solid, err error) {
	defer recoverErr(&err)
	if feature == nil {
		panic(fmt.Errorf("%w: nil feature argument to CornerArray", csg.ErrInvalidParameter))
	}
	if width <= 0 || depth <= 0 {
		panic(fmt.Errorf("%w: corner array %gx%g not positive", csg.ErrInvalidDimension, width, depth))
	}
	corners := [4]r3.Vec{
		{},
		{Y: depth},
		{X: width, Y: depth},
		{X: width},
	}
	placed := make([]csg.Solid, 4)
	for i, c := range corners {
		rotated := csg.NewRotate(feature, r3.Vec{Z: csg.DtoR(-90 * float64(i))})
		placed[i] = csg.NewTranslate(rotated, c)
	}
	return csg.NewUnion(placed...), err
}
