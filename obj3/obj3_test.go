package obj3_test

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/deckforge/csg"
	"github.com/deckforge/csg/obj3"
)

func boxApproxEqual(a, b r3.Box, tol float64) bool {
	return math.Abs(a.Min.X-b.Min.X) <= tol && math.Abs(a.Min.Y-b.Min.Y) <= tol &&
		math.Abs(a.Min.Z-b.Min.Z) <= tol && math.Abs(a.Max.X-b.Max.X) <= tol &&
		math.Abs(a.Max.Y-b.Max.Y) <= tol && math.Abs(a.Max.Z-b.Max.Z) <= tol
}

func TestFilletedBossBounds(t *testing.T) {
	const tol = 1e-12
	s, err := obj3.FilletedBoss(10, 9.4, 3)
	if err != nil {
		t.Fatal(err)
	}
	want := r3.Box{Max: r3.Vec{X: 10, Y: 10, Z: 9.4}}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("boss bounds %+v, want %+v", got, want)
	}
}

func TestFilletedBossErrors(t *testing.T) {
	if _, err := obj3.FilletedBoss(10, 9.4, 5); !errors.Is(err, csg.ErrInvalidDimension) {
		t.Errorf("oversized fillet: got %v, want ErrInvalidDimension", err)
	}
	if _, err := obj3.FilletedBoss(10, 9.4, -1); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("negative fillet: got %v, want ErrInvalidParameter", err)
	}
}

// A 3mm clearance hole through a 10mm boss must be centered on the boss
// axis with the clearance allowance applied to the diameter.
func TestClearanceNegative(t *testing.T) {
	const tol = 1e-12
	s, err := obj3.ClearanceNegative(obj3.DefaultConfig, 3, 20, 10)
	if err != nil {
		t.Fatal(err)
	}
	r := (3 + obj3.DefaultConfig.Clearance) / 2
	want := r3.Box{
		Min: r3.Vec{X: 5 - r, Y: 5 - r},
		Max: r3.Vec{X: 5 + r, Y: 5 + r, Z: 20},
	}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("clearance bounds %+v, want %+v", got, want)
	}
}

func TestInterferenceNegative(t *testing.T) {
	const tol = 1e-12
	s, err := obj3.InterferenceNegative(obj3.DefaultConfig, 3, 14, 0)
	if err != nil {
		t.Fatal(err)
	}
	// Negative interference shrinks the hole below nominal.
	r := (3 + obj3.DefaultConfig.Interference) / 2
	want := r3.Box{
		Min: r3.Vec{X: -r, Y: -r},
		Max: r3.Vec{X: r, Y: r, Z: 14},
	}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("interference bounds %+v, want %+v", got, want)
	}
}

func TestHoleNegativeErrors(t *testing.T) {
	// Interference can eat the whole diameter.
	cfg := obj3.Config{Interference: -3}
	if _, err := obj3.InterferenceNegative(cfg, 3, 10, 0); !errors.Is(err, csg.ErrInvalidDimension) {
		t.Errorf("vanishing diameter: got %v, want ErrInvalidDimension", err)
	}
	if _, err := obj3.ClearanceNegative(obj3.DefaultConfig, 3, 10, -1); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("negative boss width: got %v, want ErrInvalidParameter", err)
	}
}

func TestScrewHeadRecessNegative(t *testing.T) {
	const tol = 1e-12
	cfg := obj3.DefaultConfig
	s, err := obj3.ScrewHeadRecessNegative(cfg, 6, 3, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Recess plus two bridging layers.
	r := (6 + cfg.Clearance) / 2
	want := r3.Box{
		Min: r3.Vec{X: 5 - r, Y: 5 - r},
		Max: r3.Vec{X: 5 + r, Y: 5 + r, Z: 3 + 2*cfg.LayerHeight},
	}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("recess bounds %+v, want %+v", got, want)
	}
	u, ok := s.(*csg.Union)
	if !ok {
		t.Fatalf("bridged recess should be a union, got %T", s)
	}
	if len(u.Solids) != 3 {
		t.Errorf("bridged recess has %d parts, want recess + 2 bridge layers", len(u.Solids))
	}
}

func TestScrewHeadRecessNoPilot(t *testing.T) {
	const tol = 1e-12
	cfg := obj3.DefaultConfig
	s, err := obj3.ScrewHeadRecessNegative(cfg, 6, 3, 0, 10)
	if err != nil {
		t.Fatal(err)
	}
	// No pilot hole, no bridging layers: a plain recess.
	if _, ok := s.(*csg.Union); ok {
		t.Error("recess without pilot should not carry bridging layers")
	}
	r := (6 + cfg.Clearance) / 2
	want := r3.Box{
		Min: r3.Vec{X: 5 - r, Y: 5 - r},
		Max: r3.Vec{X: 5 + r, Y: 5 + r, Z: 3},
	}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("plain recess bounds %+v, want %+v", got, want)
	}
}

func TestScrewHeadRecessErrors(t *testing.T) {
	cfg := obj3.DefaultConfig
	if _, err := obj3.ScrewHeadRecessNegative(cfg, 0, 3, 3, 10); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("zero head: got %v, want ErrInvalidParameter", err)
	}
	if _, err := obj3.ScrewHeadRecessNegative(cfg, 6, 3, -1, 10); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("negative pilot: got %v, want ErrInvalidParameter", err)
	}
	bad := obj3.Config{LayerHeight: -0.2}
	if _, err := obj3.ScrewHeadRecessNegative(bad, 6, 3, 3, 10); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("negative layer height: got %v, want ErrInvalidParameter", err)
	}
}

func TestCornerArrayBounds(t *testing.T) {
	const tol = 1e-9
	feature := csg.NewBox(r3.Vec{X: 10, Y: 10, Z: 5})
	s, err := obj3.CornerArray(feature, 170, 80)
	if err != nil {
		t.Fatal(err)
	}
	// The rotation convention keeps each copy inside the rectangle.
	want := r3.Box{Max: r3.Vec{X: 170, Y: 80, Z: 5}}
	if got := s.Bounds(); !boxApproxEqual(got, want, tol) {
		t.Errorf("corner array bounds %+v, want %+v", got, want)
	}
}

// An asymmetric feature must be rotated, not mirrored: the long side of
// an off-axis tab points along +x at corner 0 and along -y at corner 1.
func TestCornerArrayRotates(t *testing.T) {
	const tol = 1e-9
	feature := csg.NewBox(r3.Vec{X: 20, Y: 5, Z: 5})
	s, err := obj3.CornerArray(feature, 100, 50)
	if err != nil {
		t.Fatal(err)
	}
	u, ok := s.(*csg.Union)
	if !ok {
		t.Fatalf("corner array should be a union, got %T", s)
	}
	if len(u.Solids) != 4 {
		t.Fatalf("corner array has %d copies, want 4", len(u.Solids))
	}
	got := u.Solids[1].Bounds()
	want := r3.Box{
		Min: r3.Vec{Y: 50 - 20},
		Max: r3.Vec{X: 5, Y: 50, Z: 5},
	}
	if !boxApproxEqual(got, want, tol) {
		t.Errorf("corner 1 copy bounds %+v, want %+v", got, want)
	}
}

func TestCornerArrayErrors(t *testing.T) {
	feature := csg.NewBox(r3.Vec{X: 1, Y: 1, Z: 1})
	if _, err := obj3.CornerArray(nil, 10, 10); !errors.Is(err, csg.ErrInvalidParameter) {
		t.Errorf("nil feature: got %v, want ErrInvalidParameter", err)
	}
	if _, err := obj3.CornerArray(feature, -10, 10); !errors.Is(err, csg.ErrInvalidDimension) {
		t.Errorf("negative width: got %v, want ErrInvalidDimension", err)
	}
}
