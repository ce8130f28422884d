package terrain

import (
	"math"
	"testing"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

const tol = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestFlat(t *testing.T) {
	f := Flat{
		Elevation: 42,
		Extent: sdf.Box3{
			Min: v3.Vec{X: -10, Y: -10},
			Max: v3.Vec{X: 10, Y: 10},
		},
	}

	if z, ok := f.ElevationAt(0, 0); !ok || z != 42 {
		t.Errorf("ElevationAt(0,0) = %g, %v; want 42, true", z, ok)
	}
	if z, ok := f.ElevationAt(10, -10); !ok || z != 42 {
		t.Errorf("ElevationAt at extent corner = %g, %v; want 42, true", z, ok)
	}
	if _, ok := f.ElevationAt(11, 0); ok {
		t.Error("ElevationAt outside extent should report ok=false")
	}

	b := f.Bounds()
	if b.Min.Z != 42 || b.Max.Z != 42 {
		t.Errorf("Bounds Z = [%g, %g], want [42, 42]", b.Min.Z, b.Max.Z)
	}
}

func TestGridBilinear(t *testing.T) {
	// Two rows along +X: height climbs from 0 to 1 across one 10-unit cell.
	g, err := NewGrid(0, 0, 10, [][]float64{
		{0, 0},
		{1, 1},
	})
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}

	tests := []struct {
		x, y, want float64
	}{
		{0, 0, 0},
		{10, 0, 1},
		{5, 5, 0.5},
		{2.5, 10, 0.25},
		{10, 10, 1},
	}
	for _, tc := range tests {
		z, ok := g.ElevationAt(tc.x, tc.y)
		if !ok {
			t.Errorf("ElevationAt(%g, %g) not covered", tc.x, tc.y)
			continue
		}
		if !near(z, tc.want, tol) {
			t.Errorf("ElevationAt(%g, %g) = %g, want %g", tc.x, tc.y, z, tc.want)
		}
	}

	if _, ok := g.ElevationAt(-0.1, 5); ok {
		t.Error("ElevationAt before origin should report ok=false")
	}
	if _, ok := g.ElevationAt(5, 10.1); ok {
		t.Error("ElevationAt past far edge should report ok=false")
	}

	b := g.Bounds()
	want := sdf.Box3{
		Min: v3.Vec{X: 0, Y: 0, Z: 0},
		Max: v3.Vec{X: 10, Y: 10, Z: 1},
	}
	if b != want {
		t.Errorf("Bounds = %+v, want %+v", b, want)
	}
}

func TestGridRejectsBadInput(t *testing.T) {
	if _, err := NewGrid(0, 0, 0, [][]float64{{0, 0}, {0, 0}}); err == nil {
		t.Error("zero cell size should be rejected")
	}
	if _, err := NewGrid(0, 0, 10, [][]float64{{0, 0}}); err == nil {
		t.Error("single-row grid should be rejected")
	}
	if _, err := NewGrid(0, 0, 10, [][]float64{{0, 0}, {0, 0, 0}}); err == nil {
		t.Error("ragged grid should be rejected")
	}
}

func TestTINElevation(t *testing.T) {
	// A 10x10 patch split along the diagonal, both halves on the plane z = x.
	tin, err := NewTIN([]render.Triangle3{
		{v3.Vec{X: 0, Y: 0, Z: 0}, v3.Vec{X: 10, Y: 0, Z: 10}, v3.Vec{X: 0, Y: 10, Z: 0}},
		{v3.Vec{X: 10, Y: 0, Z: 10}, v3.Vec{X: 10, Y: 10, Z: 10}, v3.Vec{X: 0, Y: 10, Z: 0}},
	})
	if err != nil {
		t.Fatalf("NewTIN: %v", err)
	}

	tests := []struct {
		x, y, want float64
	}{
		{0, 0, 0},
		{10, 10, 10},
		{5, 0, 5},
		{2, 2, 2}, // interior of the first triangle, plane z = x
		{8, 9, 8}, // interior of the second
		{5, 5, 5}, // on the shared diagonal
	}
	for _, tc := range tests {
		z, ok := tin.ElevationAt(tc.x, tc.y)
		if !ok {
			t.Errorf("ElevationAt(%g, %g) found no triangle", tc.x, tc.y)
			continue
		}
		if !near(z, tc.want, 1e-6) {
			t.Errorf("ElevationAt(%g, %g) = %g, want %g", tc.x, tc.y, z, tc.want)
		}
	}

	if _, ok := tin.ElevationAt(20, 20); ok {
		t.Error("ElevationAt outside the TIN should report ok=false")
	}

	b := tin.Bounds()
	if b.Min.X != 0 || b.Max.X != 10 || b.Min.Z != 0 || b.Max.Z != 10 {
		t.Errorf("Bounds = %+v", b)
	}
}

func TestTINRejectsDegenerate(t *testing.T) {
	if _, err := NewTIN(nil); err == nil {
		t.Error("empty triangle list should be rejected")
	}
	// Colinear in plan view.
	_, err := NewTIN([]render.Triangle3{
		{v3.Vec{X: 0, Y: 0}, v3.Vec{X: 5, Y: 5}, v3.Vec{X: 10, Y: 10}},
	})
	if err == nil {
		t.Error("plan-degenerate triangle should be rejected")
	}
}
