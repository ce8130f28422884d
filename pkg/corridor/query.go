package corridor

import (
	"math"
	"sort"

	"github.com/deadsy/sdfx/sdf"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

// SectionAt returns the cross-section nearest to the given station.
// Sections are station-sorted, so the lookup is a binary search over
// the insertion point followed by a neighbor comparison. When the
// station is exactly halfway between two sections, the lower station
// wins. Returns nil for an empty corridor.
func (c *Corridor) SectionAt(station float64) *CrossSection {
	if len(c.Sections) == 0 {
		return nil
	}
	i := sort.Search(len(c.Sections), func(i int) bool {
		return c.Sections[i].Station >= station
	})
	if i == 0 {
		return c.Sections[0]
	}
	if i == len(c.Sections) {
		return c.Sections[len(c.Sections)-1]
	}
	lo := c.Sections[i-1]
	hi := c.Sections[i]
	if station-lo.Station <= hi.Station-station {
		return lo
	}
	return hi
}

// Bounds returns the axis-aligned box enclosing every produced vertex.
func (c *Corridor) Bounds() sdf.Box3 {
	return c.bounds
}

// VolumeResult is the earthwork and material quantity estimate over a
// station range, computed with the average-end-area method.
type VolumeResult struct {
	StationStart   float64
	StationEnd     float64
	CutVolume      float64
	FillVolume     float64
	PavementVolume float64
	BaseVolume     float64
	SubbaseVolume  float64
}

// Volumes estimates quantities between two stations. The volume of
// each adjacent section pair is the mean of its two end areas times
// the station delta. Cut and fill areas come from the sampled terrain
// under the section points; sections without terrain data contribute
// zero cut/fill. Pavement, base and subbase use the pavement band
// width times the design's nominal structure depths. Fewer than two
// sections in range yields a zeroed result.
func (c *Corridor) Volumes(stationFrom, stationTo float64) VolumeResult {
	res := VolumeResult{StationStart: stationFrom, StationEnd: stationTo}
	if stationTo < stationFrom {
		return res
	}

	var inRange []*CrossSection
	for _, sec := range c.Sections {
		if sec.Station >= stationFrom && sec.Station <= stationTo {
			inRange = append(inRange, sec)
		}
	}
	if len(inRange) < 2 {
		return res
	}

	prev := sectionEndAreas(inRange[0], c.structure)
	for i := 1; i < len(inRange); i++ {
		cur := sectionEndAreas(inRange[i], c.structure)
		dl := inRange[i].Station - inRange[i-1].Station
		res.CutVolume += (prev.cut + cur.cut) / 2 * dl
		res.FillVolume += (prev.fill + cur.fill) / 2 * dl
		res.PavementVolume += (prev.pavement + cur.pavement) / 2 * dl
		res.BaseVolume += (prev.base + cur.base) / 2 * dl
		res.SubbaseVolume += (prev.subbase + cur.subbase) / 2 * dl
		prev = cur
	}
	return res
}

type endAreas struct {
	cut, fill               float64
	pavement, base, subbase float64
}

// sectionEndAreas computes one section's end areas. Cut/fill use
// trapezoidal integration of the height difference between terrain and
// section surface over offset; the pavement band areas use the layer's
// transverse extent times the nominal depths.
func sectionEndAreas(sec *CrossSection, st design.PavementStructure) endAreas {
	var a endAreas

	pts := make([]SectionPoint, len(sec.Points))
	copy(pts, sec.Points)
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Offset < pts[j].Offset })

	var pavMin, pavMax float64
	pavSeen := 0
	for i, p := range pts {
		if p.Layer == design.LayerPavement {
			if pavSeen == 0 {
				pavMin, pavMax = p.Offset, p.Offset
			} else {
				pavMin = math.Min(pavMin, p.Offset)
				pavMax = math.Max(pavMax, p.Offset)
			}
			pavSeen++
		}
		if i == 0 {
			continue
		}
		q := pts[i-1]
		if !p.HasTerrain || !q.HasTerrain {
			continue
		}
		dx := p.Offset - q.Offset
		cutA := math.Max(q.TerrainElev-q.Position.Z, 0)
		cutB := math.Max(p.TerrainElev-p.Position.Z, 0)
		fillA := math.Max(q.Position.Z-q.TerrainElev, 0)
		fillB := math.Max(p.Position.Z-p.TerrainElev, 0)
		a.cut += (cutA + cutB) / 2 * dx
		a.fill += (fillA + fillB) / 2 * dx
	}

	if pavSeen >= 2 {
		w := pavMax - pavMin
		a.pavement = w * st.SurfaceDepth
		a.base = w * st.BaseDepth
		a.subbase = w * st.SubbaseDepth
	}
	return a
}
