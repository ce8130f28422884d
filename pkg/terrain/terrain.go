// Package terrain defines the terrain collaborator interface used by
// corridor generation, plus in-memory backends. Implementations are
// expected to be fast, synchronous accessors; corridor generation does
// not batch or cache lookups.
package terrain

import (
	"github.com/deadsy/sdfx/sdf"
)

// Terrain exposes ground elevation by plan position. ElevationAt
// returns ok=false outside the covered extent; callers treat that the
// same as having no terrain at all for the point in question.
type Terrain interface {
	ElevationAt(x, y float64) (elev float64, ok bool)
	Bounds() sdf.Box3
}

// Flat is a constant-elevation terrain covering the given plan extent.
// Useful for tests and for early design stages with no survey data.
type Flat struct {
	Elevation float64
	Extent    sdf.Box3
}

// ElevationAt returns the constant elevation inside the extent.
func (f Flat) ElevationAt(x, y float64) (float64, bool) {
	if x < f.Extent.Min.X || x > f.Extent.Max.X || y < f.Extent.Min.Y || y > f.Extent.Max.Y {
		return 0, false
	}
	return f.Elevation, true
}

// Bounds returns the covered volume.
func (f Flat) Bounds() sdf.Box3 {
	b := f.Extent
	b.Min.Z = f.Elevation
	b.Max.Z = f.Elevation
	return b
}
