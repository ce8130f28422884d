package design

import "sort"

// TemplatePoint is one point of the cross-section template. Offset is
// the signed horizontal distance from the centerline (negative = left);
// Height is the vertical offset from the profile grade line before any
// superelevation adjustment.
type TemplatePoint struct {
	Offset float64
	Height float64
	Code   string
	Layer  Layer
}

// Lane is optional descriptive metadata over a template offset range.
type Lane struct {
	Name string
	From float64 // inner offset
	To   float64 // outer offset
}

// Template is the transverse shape of the roadway. Points need not be
// offset-sorted on input, but must be sortable by offset for surface
// triangulation.
type Template struct {
	Points []TemplatePoint
	Lanes  []Lane
}

// SortedByOffset returns a copy of the template points ordered left to
// right. The receiver is not modified.
func (t Template) SortedByOffset() []TemplatePoint {
	pts := make([]TemplatePoint, len(t.Points))
	copy(pts, t.Points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Offset < pts[j].Offset })
	return pts
}

// Width returns the total transverse extent of the template.
func (t Template) Width() float64 {
	if len(t.Points) == 0 {
		return 0
	}
	min, max := t.Points[0].Offset, t.Points[0].Offset
	for _, p := range t.Points[1:] {
		if p.Offset < min {
			min = p.Offset
		}
		if p.Offset > max {
			max = p.Offset
		}
	}
	return max - min
}

// LayerWidth returns the transverse extent covered by points of the
// given layer, or 0 if the layer has fewer than two points.
func (t Template) LayerWidth(layer Layer) float64 {
	first := true
	var min, max float64
	n := 0
	for _, p := range t.Points {
		if p.Layer != layer {
			continue
		}
		n++
		if first {
			min, max = p.Offset, p.Offset
			first = false
			continue
		}
		if p.Offset < min {
			min = p.Offset
		}
		if p.Offset > max {
			max = p.Offset
		}
	}
	if n < 2 {
		return 0
	}
	return max - min
}
