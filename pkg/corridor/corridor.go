// Package corridor turns a road design into explicit 3-D geometry: a
// centerline polyline, per-layer ruled-surface triangle meshes, and a
// station-indexed collection of cross-sections. Generation is a pure
// function of its inputs apart from terrain elevation lookups; each
// call produces an independent immutable result.
package corridor

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/terrain"
)

// Daylight slope ratios (horizontal run per unit of height). Fill
// slopes fall outward from the hinge, cut slopes rise into the ground;
// the asymmetry is standard earthworks practice.
const (
	fillSlopeRatio = 2.0
	cutSlopeRatio  = 3.0
)

// minDaylightRun is the horizontal distance below which no daylight
// point is emitted; the hinge already sits on the terrain surface.
const minDaylightRun = 1e-9

// stationEqualTol treats two stations within this distance as the same
// sample, so the appended terminal station never duplicates the last
// interval sample.
const stationEqualTol = 1e-9

// SectionPoint is one 3-D point of an instantiated cross-section.
type SectionPoint struct {
	Position    v3.Vec
	Offset      float64 // signed transverse distance from centerline
	Height      float64 // superelevation-adjusted height above the grade line
	Code        string
	Layer       design.Layer
	TerrainElev float64 // sampled ground elevation under the point
	HasTerrain  bool
}

// CrossSection is the template instantiated at one station. It is
// owned by the corridor result and never mutated after creation.
type CrossSection struct {
	Station float64
	Center  v3.Vec
	Bearing float64
	Grade   float64
	Super   design.SuperSample
	Points  []SectionPoint
}

// Corridor is the immutable result of Generate.
type Corridor struct {
	Centerline []v3.Vec
	Surfaces   map[design.Layer]*Mesh
	Sections   []*CrossSection // ordered by station

	bounds    sdf.Box3
	structure design.PavementStructure
}

// Generate builds the full corridor model from a road design and an
// optional terrain. A nil terrain skips daylighting and terrain
// attachment; that is a degraded mode, not an error. A station not
// covered by the alignment or an empty profile aborts the whole build.
func Generate(d *design.RoadDesign, terr terrain.Terrain) (*Corridor, error) {
	start := d.Sampling.Start
	end := d.Sampling.End
	if end <= start {
		end = d.EndStation()
	}
	interval := d.Sampling.Interval
	if interval <= 0 {
		interval = design.DefaultSampleInterval
	}
	if end <= start {
		return nil, fmt.Errorf("empty station range [%g, %g]", start, end)
	}

	c := &Corridor{
		Surfaces:  make(map[design.Layer]*Mesh),
		structure: d.Structure,
		bounds:    emptyBox(),
	}

	for _, station := range sampleStations(start, end, interval) {
		sec, err := buildSection(d, terr, station)
		if err != nil {
			return nil, fmt.Errorf("station %g: %w", station, err)
		}
		c.Sections = append(c.Sections, sec)
		c.Centerline = append(c.Centerline, sec.Center)
		for _, p := range sec.Points {
			c.bounds = extendBox(c.bounds, p.Position)
		}
	}

	buildSurfaces(c)
	return c, nil
}

// sampleStations returns start, start+interval, ... up to end. When
// the last generated sample falls short of end, end is appended so the
// terminal cross-section always exists.
func sampleStations(start, end, interval float64) []float64 {
	var stations []float64
	for i := 0; ; i++ {
		st := start + float64(i)*interval
		if st > end {
			break
		}
		stations = append(stations, st)
	}
	if len(stations) == 0 || stations[len(stations)-1] < end-stationEqualTol {
		stations = append(stations, end)
	}
	return stations
}

// buildSection instantiates the template at one station.
func buildSection(d *design.RoadDesign, terr terrain.Terrain, station float64) (*CrossSection, error) {
	pose, err := design.Evaluate(d.Elements, station)
	if err != nil {
		return nil, err
	}
	prof, err := design.EvaluateProfile(d.Profile, station)
	if err != nil {
		return nil, err
	}
	super := design.EvaluateSuperelevation(d.Super, station)

	sin, cos := math.Sincos(pose.Bearing)
	normal := v2.Vec{X: -sin, Y: cos} // unit transverse, to the right of travel
	center := v3.Vec{X: pose.Position.X, Y: pose.Position.Y, Z: prof.Elevation}

	sec := &CrossSection{
		Station: station,
		Center:  center,
		Bearing: pose.Bearing,
		Grade:   prof.Grade,
		Super:   super,
	}

	cl := SectionPoint{
		Position: center,
		Code:     design.CodeCenterline,
		Layer:    design.LayerPavement,
	}
	attachTerrain(&cl, terr)
	sec.Points = append(sec.Points, cl)

	for _, tp := range d.Template.Points {
		adj := tp.Height
		switch {
		case tp.Offset < 0:
			adj += tp.Offset * super.LeftSlope
		case tp.Offset > 0:
			adj += tp.Offset * super.RightSlope
		}
		plan := pose.Position.Add(normal.MulScalar(tp.Offset))
		pt := SectionPoint{
			Position: v3.Vec{X: plan.X, Y: plan.Y, Z: prof.Elevation + adj},
			Offset:   tp.Offset,
			Height:   adj,
			Code:     tp.Code,
			Layer:    tp.Layer,
		}
		attachTerrain(&pt, terr)

		// Daylight points precede their hinge in the point list.
		if pt.HasTerrain && design.IsHingeCode(pt.Code) {
			if dl, ok := daylightPoint(center, normal, pt); ok {
				sec.Points = append(sec.Points, dl)
			}
		}
		sec.Points = append(sec.Points, pt)
	}

	return sec, nil
}

// attachTerrain samples ground elevation under a point, if terrain is
// available and covers the plan position.
func attachTerrain(p *SectionPoint, terr terrain.Terrain) {
	if terr == nil {
		return
	}
	if elev, ok := terr.ElevationAt(p.Position.X, p.Position.Y); ok {
		p.TerrainElev = elev
		p.HasTerrain = true
	}
}

// daylightPoint projects a hinge point to the terrain with a fixed
// slope ratio: 2:1 when filling (hinge above ground), 3:1 when cutting
// (hinge below ground). This is a single-step approximation using the
// ground elevation sampled beneath the hinge, not an iterative search
// for the true slope/terrain intersection.
func daylightPoint(center v3.Vec, normal v2.Vec, hinge SectionPoint) (SectionPoint, bool) {
	dz := hinge.Position.Z - hinge.TerrainElev
	ratio := fillSlopeRatio
	if dz < 0 {
		ratio = cutSlopeRatio
	}
	run := math.Abs(dz) * ratio
	if run < minDaylightRun {
		return SectionPoint{}, false
	}

	outward := 1.0
	if hinge.Offset < 0 {
		outward = -1
	}
	plan := v2.Vec{X: hinge.Position.X, Y: hinge.Position.Y}.Add(normal.MulScalar(outward * run))

	return SectionPoint{
		Position:    v3.Vec{X: plan.X, Y: plan.Y, Z: hinge.TerrainElev},
		Offset:      hinge.Offset + outward*run,
		Height:      hinge.TerrainElev - center.Z,
		Code:        design.CodeDaylight,
		Layer:       design.LayerSlope,
		TerrainElev: hinge.TerrainElev,
		HasTerrain:  true,
	}, true
}

// emptyBox returns an inverted box that extends to nothing.
func emptyBox() sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: math.Inf(1), Y: math.Inf(1), Z: math.Inf(1)},
		Max: v3.Vec{X: math.Inf(-1), Y: math.Inf(-1), Z: math.Inf(-1)},
	}
}

// extendBox grows a box to include a point.
func extendBox(b sdf.Box3, p v3.Vec) sdf.Box3 {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
	return b
}
