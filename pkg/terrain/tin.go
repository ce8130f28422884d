package terrain

import (
	"errors"
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/dhconnelly/rtreego"
)

// pointQueryTol is the half-extent of the degenerate rect used for
// R-tree point queries.
const pointQueryTol = 1e-9

// barycentricTol tolerates points marginally outside a triangle edge,
// so queries on shared edges do not fall through the surface.
const barycentricTol = 1e-9

// TIN is a triangulated irregular network terrain. Triangles are
// indexed in plan (XY) by an R-tree; elevation queries locate the
// containing triangle and interpolate barycentrically.
type TIN struct {
	tree   *rtreego.Rtree
	bounds sdf.Box3
}

// tinTriangle adapts a triangle to the R-tree Spatial interface.
type tinTriangle struct {
	tri  sdf.Triangle3
	rect rtreego.Rect
}

func (t *tinTriangle) Bounds() rtreego.Rect { return t.rect }

// NewTIN builds a TIN terrain from a triangle soup. Triangles that are
// degenerate in plan view are rejected.
func NewTIN(triangles []sdf.Triangle3) (*TIN, error) {
	if len(triangles) == 0 {
		return nil, errors.New("tin needs at least one triangle")
	}

	tree := rtreego.NewTree(2, 25, 50)
	bounds := sdf.Box3{
		Min: v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}

	for i, tri := range triangles {
		if planArea2(tri) < 1e-12 {
			return nil, fmt.Errorf("triangle %d is degenerate in plan view", i)
		}
		minX := math.Min(tri[0].X, math.Min(tri[1].X, tri[2].X))
		minY := math.Min(tri[0].Y, math.Min(tri[1].Y, tri[2].Y))
		maxX := math.Max(tri[0].X, math.Max(tri[1].X, tri[2].X))
		maxY := math.Max(tri[0].Y, math.Max(tri[1].Y, tri[2].Y))

		rect, err := rtreego.NewRect(
			rtreego.Point{minX, minY},
			[]float64{math.Max(maxX-minX, pointQueryTol), math.Max(maxY-minY, pointQueryTol)},
		)
		if err != nil {
			return nil, fmt.Errorf("triangle %d: %w", i, err)
		}
		tree.Insert(&tinTriangle{tri: tri, rect: rect})

		for _, v := range tri {
			bounds.Min.X = math.Min(bounds.Min.X, v.X)
			bounds.Min.Y = math.Min(bounds.Min.Y, v.Y)
			bounds.Min.Z = math.Min(bounds.Min.Z, v.Z)
			bounds.Max.X = math.Max(bounds.Max.X, v.X)
			bounds.Max.Y = math.Max(bounds.Max.Y, v.Y)
			bounds.Max.Z = math.Max(bounds.Max.Z, v.Z)
		}
	}

	return &TIN{tree: tree, bounds: bounds}, nil
}

// ElevationAt locates the triangle containing (x, y) in plan and
// interpolates its surface elevation.
func (t *TIN) ElevationAt(x, y float64) (float64, bool) {
	hits := t.tree.SearchIntersect(rtreego.Point{x, y}.ToRect(pointQueryTol))
	for _, hit := range hits {
		tri := hit.(*tinTriangle).tri
		if z, ok := surfaceZ(tri, x, y); ok {
			return z, true
		}
	}
	return 0, false
}

// Bounds returns the volume enclosing all triangles.
func (t *TIN) Bounds() sdf.Box3 { return t.bounds }

// planArea2 is twice the signed plan-view area of a triangle.
func planArea2(tri sdf.Triangle3) float64 {
	return math.Abs((tri[1].X-tri[0].X)*(tri[2].Y-tri[0].Y) - (tri[2].X-tri[0].X)*(tri[1].Y-tri[0].Y))
}

// surfaceZ returns the barycentric elevation of (x, y) on tri, or
// ok=false when the point lies outside the triangle in plan view.
func surfaceZ(tri sdf.Triangle3, x, y float64) (float64, bool) {
	d := (tri[1].Y-tri[2].Y)*(tri[0].X-tri[2].X) + (tri[2].X-tri[1].X)*(tri[0].Y-tri[2].Y)
	if d == 0 {
		return 0, false
	}
	w0 := ((tri[1].Y-tri[2].Y)*(x-tri[2].X) + (tri[2].X-tri[1].X)*(y-tri[2].Y)) / d
	w1 := ((tri[2].Y-tri[0].Y)*(x-tri[2].X) + (tri[0].X-tri[2].X)*(y-tri[2].Y)) / d
	w2 := 1 - w0 - w1
	if w0 < -barycentricTol || w1 < -barycentricTol || w2 < -barycentricTol {
		return 0, false
	}
	return w0*tri[0].Z + w1*tri[1].Z + w2*tri[2].Z, true
}
