package corridor

import (
	"sort"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

// buildSurfaces triangulates ruled surfaces between each pair of
// adjacent cross-sections, one mesh per layer across all pairs. A
// layer with fewer than two points on either side of a pair simply
// contributes no surface for that pair.
func buildSurfaces(c *Corridor) {
	for i := 0; i+1 < len(c.Sections); i++ {
		a := c.Sections[i]
		b := c.Sections[i+1]
		for _, layer := range pairLayers(a, b) {
			pa := layerPoints(a, layer)
			pb := layerPoints(b, layer)
			if len(pa) < 2 || len(pb) < 2 {
				continue
			}
			m := c.Surfaces[layer]
			if m == nil {
				m = &Mesh{Layer: string(layer)}
				c.Surfaces[layer] = m
			}
			triangulatePair(m, pa, pb)
		}
	}
	for _, m := range c.Surfaces {
		m.ComputeNormals()
	}
}

// pairLayers returns the distinct layers present in either section,
// in first-seen order so mesh construction is deterministic.
func pairLayers(a, b *CrossSection) []design.Layer {
	seen := make(map[design.Layer]bool)
	var layers []design.Layer
	for _, sec := range []*CrossSection{a, b} {
		for _, p := range sec.Points {
			if !seen[p.Layer] {
				seen[p.Layer] = true
				layers = append(layers, p.Layer)
			}
		}
	}
	return layers
}

// layerPoints returns a section's points on one layer, sorted left to
// right by offset.
func layerPoints(sec *CrossSection, layer design.Layer) []SectionPoint {
	var pts []SectionPoint
	for _, p := range sec.Points {
		if p.Layer == layer {
			pts = append(pts, p)
		}
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Offset < pts[j].Offset })
	return pts
}

// triangulatePair connects two offset-sorted point rows into a ruled
// surface. Equal counts produce n-1 quads split into two triangles
// each; unequal counts use a greedy two-pointer walk that emits quads
// while both rows advance and single triangles once one row is
// exhausted. The walk is a heuristic, not minimal-area triangulation.
func triangulatePair(m *Mesh, a, b []SectionPoint) {
	base := uint32(m.VertexCount())
	for _, p := range a {
		m.AddVertex(p.Position)
	}
	for _, p := range b {
		m.AddVertex(p.Position)
	}

	n := uint32(len(a))
	k := uint32(len(b))

	if n == k {
		for i := uint32(0); i < n-1; i++ {
			m.AddTriangle(base+i, base+i+1, base+n+i)
			m.AddTriangle(base+n+i, base+i+1, base+n+i+1)
		}
		return
	}

	var i, j uint32
	for i < n-1 && j < k-1 {
		m.AddTriangle(base+i, base+i+1, base+n+j)
		m.AddTriangle(base+n+j, base+i+1, base+n+j+1)
		i++
		j++
	}
	for i < n-1 {
		m.AddTriangle(base+i, base+i+1, base+n+j)
		i++
	}
	for j < k-1 {
		m.AddTriangle(base+n+j, base+i, base+n+j+1)
		j++
	}
}
