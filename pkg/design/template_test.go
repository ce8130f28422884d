package design

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func crownTemplate() Template {
	return Template{
		Points: []TemplatePoint{
			{Offset: 5, Height: -0.1, Code: "EP", Layer: LayerPavement},
			{Offset: -5, Height: -0.1, Code: "EP", Layer: LayerPavement},
			{Offset: 7, Height: -0.2, Code: "HS", Layer: LayerShoulder},
			{Offset: -7, Height: -0.2, Code: "HS", Layer: LayerShoulder},
		},
		Lanes: []Lane{
			{Name: "WB", From: -5, To: 0},
			{Name: "EB", From: 0, To: 5},
		},
	}
}

func TestSortedByOffset(t *testing.T) {
	tmpl := crownTemplate()
	got := tmpl.SortedByOffset()

	want := []TemplatePoint{
		{Offset: -7, Height: -0.2, Code: "HS", Layer: LayerShoulder},
		{Offset: -5, Height: -0.1, Code: "EP", Layer: LayerPavement},
		{Offset: 5, Height: -0.1, Code: "EP", Layer: LayerPavement},
		{Offset: 7, Height: -0.2, Code: "HS", Layer: LayerShoulder},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("SortedByOffset mismatch (-want +got):\n%s", diff)
	}

	// The receiver keeps its original order.
	if tmpl.Points[0].Offset != 5 {
		t.Errorf("SortedByOffset modified the receiver, first offset = %g", tmpl.Points[0].Offset)
	}
}

func TestTemplateWidth(t *testing.T) {
	tmpl := crownTemplate()
	if w := tmpl.Width(); w != 14 {
		t.Errorf("Width = %g, want 14", w)
	}
	if w := (Template{}).Width(); w != 0 {
		t.Errorf("empty template Width = %g, want 0", w)
	}
}

func TestLayerWidth(t *testing.T) {
	tmpl := crownTemplate()
	if w := tmpl.LayerWidth(LayerPavement); w != 10 {
		t.Errorf("LayerWidth(pavement) = %g, want 10", w)
	}
	if w := tmpl.LayerWidth(LayerShoulder); w != 14 {
		t.Errorf("LayerWidth(shoulder) = %g, want 14", w)
	}
	if w := tmpl.LayerWidth(LayerSlope); w != 0 {
		t.Errorf("LayerWidth(slope, no points) = %g, want 0", w)
	}

	single := Template{Points: []TemplatePoint{{Offset: 3, Layer: LayerSlope}}}
	if w := single.LayerWidth(LayerSlope); w != 0 {
		t.Errorf("LayerWidth with one point = %g, want 0", w)
	}
}
