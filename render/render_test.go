package render_test

import (
	"math"
	"os"
	"testing"

	sdfx "github.com/deadsy/sdfx/sdf"
	sdfxrender "github.com/deadsy/sdfx/render"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
	"github.com/deckforge/csg/eval"
	"github.com/deckforge/csg/internal/d3"
	"github.com/deckforge/csg/obj3"
	"github.com/deckforge/csg/render"
)

const benchQuality = 300

func lowerOrFatal(t testing.TB, s csg.Solid) eval.SDF3 {
	field, err := eval.Lower(s)
	if err != nil {
		t.Fatal(err)
	}
	return field
}

func TestOctreeRenderBoss(t *testing.T) {
	boss, err := obj3.FilletedBoss(10, 9.4, 3)
	if err != nil {
		t.Fatal(err)
	}
	field := lowerOrFatal(t, boss)
	model, err := render.RenderAll(render.NewOctreeRenderer(field, 64))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("rendered no triangles")
	}
	// All vertices stay within the slightly inflated sampling box.
	bb := d3.Box(boss.Bounds()).ScaleAboutCenter(1.05)
	for _, tri := range model {
		for _, v := range tri.V {
			if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z) {
				t.Fatalf("NaN vertex %+v", v)
			}
			if !bb.Contains(v) {
				t.Fatalf("vertex %+v outside bounds %+v", v, bb)
			}
		}
	}
}

// The mesh of a convex solid must have all triangle normals pointing
// away from an interior point.
func TestOctreeNormalsOutward(t *testing.T) {
	field := lowerOrFatal(t, csg.NewSphere(2))
	model, err := render.RenderAll(render.NewOctreeRenderer(field, 32))
	if err != nil {
		t.Fatal(err)
	}
	if len(model) == 0 {
		t.Fatal("rendered no triangles")
	}
	inward := 0
	for _, tri := range model {
		c := r3.Scale(1./3., r3.Add(tri.V[0], r3.Add(tri.V[1], tri.V[2])))
		if r3.Dot(tri.Normal(), c) < 0 {
			inward++
		}
	}
	if inward > 0 {
		t.Errorf("%d of %d sphere triangles wind inward", inward, len(model))
	}
}

func TestKDSDFRoundTrip(t *testing.T) {
	const tol = 0.3
	field := lowerOrFatal(t, csg.NewSphere(2))
	model, err := render.RenderAll(render.NewOctreeRenderer(field, 64))
	if err != nil {
		t.Fatal(err)
	}
	kd := render.NewKDSDF(model)
	bb := kd.Bounds()
	if bb.Max.X < 1.5 || bb.Min.X > -1.5 {
		t.Errorf("kd bounds %+v do not cover the sphere", bb)
	}
	// The mesh field is approximate; check sign and coarse magnitude.
	if got := kd.Evaluate(r3.Vec{X: 4}); got < 2-tol {
		t.Errorf("outside distance %g, want about 2", got)
	}
	if got := kd.Evaluate(r3.Vec{}); got > tol {
		t.Errorf("center distance %g, want <= 0", got)
	}
}

func BenchmarkBoss(b *testing.B) {
	const output = "our_boss.stl"
	boss, err := obj3.FilletedBoss(10, 9.4, 3)
	if err != nil {
		b.Fatal(err)
	}
	field := lowerOrFatal(b, boss)
	for i := 0; i < b.N; i++ {
		render.CreateSTL(output, render.NewOctreeRenderer(field, benchQuality))
	}
	os.Remove(output)
}

func BenchmarkSDFXBoss(b *testing.B) {
	stdout := os.Stdout
	defer func() {
		os.Stdout = stdout // pesky sdfx prints out stuff
	}()
	os.Stdout, _ = os.Open(os.DevNull)
	const output = "sdfx_boss.stl"
	object, err := sdfx.Box3D(sdfx.V3{X: 10, Y: 10, Z: 9.4}, 3)
	if err != nil {
		b.Fatal(err)
	}
	for i := 0; i < b.N; i++ {
		sdfxrender.ToSTL(object, benchQuality, output, &sdfxrender.MarchingCubesOctree{})
	}
	os.Remove(output)
}
