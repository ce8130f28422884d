package engine

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

const tol = 1e-9

func near(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func evalOK(t *testing.T, source string) *design.RoadDesign {
	t.Helper()
	d, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("Evaluate fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("Evaluate errors: %v", evalErrs)
	}
	if d == nil {
		t.Fatal("Evaluate returned nil design without errors")
	}
	return d
}

func errorsContain(evalErrs []EvalError, substr string) bool {
	for _, e := range evalErrs {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func TestEvaluateEmptySource(t *testing.T) {
	d := evalOK(t, "")
	if len(d.Elements) != 0 || len(d.Profile) != 0 {
		t.Errorf("empty source produced non-empty design: %+v", d)
	}
	if d.Structure != design.DefaultStructure() {
		t.Errorf("empty design structure = %+v, want defaults", d.Structure)
	}

	if d := evalOK(t, "   \n\t  "); len(d.Elements) != 0 {
		t.Errorf("whitespace source produced elements")
	}
}

func TestEvaluateFullDesign(t *testing.T) {
	d := evalOK(t, `
; a short two-element alignment with everything attached
(start :x 100 :y 200 :bearing 90 :station 1000)
(tangent :length 80)
(curve :radius 200 :deflection -30)
(profile-point :station 1000 :elevation 50 :grade 0.01)
(profile-point :station 1300 :elevation 53 :grade 0.01)
(superelevation :station 1000 :left -0.02 :right -0.02)
(template-point :offset -3.6 :height -0.07 :code "EP" :layer :pavement)
(template-point :offset 3.6 :height -0.07 :code "EP" :layer :pavement)
(lane :name "driving" :from -3.6 :to 0)
(sampling :start 1000 :end 1180 :interval 20)
(structure :surface 0.25 :base 0.35 :subbase 0.5)
`)

	if len(d.Elements) != 2 {
		t.Fatalf("element count = %d, want 2", len(d.Elements))
	}

	tan := d.Elements[0]
	if tan.Kind != design.KindTangent {
		t.Errorf("element 0 kind = %s, want tangent", tan.Kind)
	}
	if !near(tan.StartStation, 1000, tol) || !near(tan.EndStation, 1080, tol) {
		t.Errorf("tangent stations = [%g, %g], want [1000, 1080]", tan.StartStation, tan.EndStation)
	}
	if !near(tan.Start.X, 100, tol) || !near(tan.Start.Y, 200, tol) {
		t.Errorf("tangent start = %+v, want (100, 200)", tan.Start)
	}
	// Azimuth 90 degrees points along +Y.
	if !near(tan.End.X, 100, 1e-6) || !near(tan.End.Y, 280, 1e-6) {
		t.Errorf("tangent end = %+v, want (100, 280)", tan.End)
	}

	crv := d.Elements[1]
	if crv.Kind != design.KindCurve {
		t.Fatalf("element 1 kind = %s, want curve", crv.Kind)
	}
	cd := crv.Data.(design.CurveData)
	if cd.Dir != design.DirLeft {
		t.Errorf("curve direction = %s, want left for negative deflection", cd.Dir)
	}
	if !near(cd.Radius, 200, tol) {
		t.Errorf("curve radius = %g, want 200", cd.Radius)
	}
	if !near(cd.CentralAngle, 30*math.Pi/180, 1e-9) {
		t.Errorf("curve central angle = %g, want 30 degrees", cd.CentralAngle)
	}
	if !near(crv.StartStation, 1080, tol) {
		t.Errorf("curve start station = %g, want tangent end 1080", crv.StartStation)
	}

	if len(d.Profile) != 2 || d.Profile[0].Elevation != 50 || d.Profile[1].Grade != 0.01 {
		t.Errorf("profile = %+v", d.Profile)
	}
	if len(d.Super) != 1 || d.Super[0].LeftSlope != -0.02 {
		t.Errorf("superelevation = %+v", d.Super)
	}

	if len(d.Template.Points) != 2 {
		t.Fatalf("template points = %+v", d.Template.Points)
	}
	tp := d.Template.Points[0]
	if tp.Offset != -3.6 || tp.Code != "EP" || tp.Layer != design.LayerPavement {
		t.Errorf("template point = %+v", tp)
	}
	if len(d.Template.Lanes) != 1 || d.Template.Lanes[0].Name != "driving" {
		t.Errorf("lanes = %+v", d.Template.Lanes)
	}

	want := design.Sampling{Start: 1000, End: 1180, Interval: 20}
	if d.Sampling != want {
		t.Errorf("sampling = %+v, want %+v", d.Sampling, want)
	}
	if d.Structure.SurfaceDepth != 0.25 || d.Structure.SubbaseDepth != 0.5 {
		t.Errorf("structure = %+v", d.Structure)
	}
}

func TestEvaluateCurveChainContinuity(t *testing.T) {
	d := evalOK(t, `
(tangent :length 100)
(curve :radius 100 :deflection 90)
(tangent :length 50)
`)
	if len(d.Elements) != 3 {
		t.Fatalf("element count = %d, want 3", len(d.Elements))
	}

	crv := d.Elements[1]
	last := d.Elements[2]
	if !near(last.StartStation, crv.EndStation, tol) {
		t.Errorf("station break: %g vs %g", last.StartStation, crv.EndStation)
	}
	if gap := last.Start.Sub(crv.End).Length(); gap > 1e-9 {
		t.Errorf("point break of %g between curve end and next tangent", gap)
	}
	// After a 90 degree right deflection from azimuth 0 the chain heads
	// along +Y.
	if b := last.Data.(design.TangentData).Bearing; !near(b, math.Pi/2, 1e-9) {
		t.Errorf("final bearing = %g, want pi/2", b)
	}
	if !near(crv.Length(), 100*math.Pi/2, 1e-9) {
		t.Errorf("curve length = %g, want %g", crv.Length(), 100*math.Pi/2)
	}
}

func TestEvaluateSpiralOrientations(t *testing.T) {
	d := evalOK(t, `
(spiral :length 60 :radius 300 :direction :right)
(curve :radius 300 :angle 10 :direction :right)
(spiral :length 60 :radius 300 :direction :right :orientation :exit)
`)
	if len(d.Elements) != 3 {
		t.Fatalf("element count = %d, want 3", len(d.Elements))
	}

	entry := d.Elements[0].Data.(design.SpiralData)
	if !math.IsInf(entry.StartRadius, 1) || entry.EndRadius != 300 {
		t.Errorf("entry spiral radii = (%g, %g)", entry.StartRadius, entry.EndRadius)
	}
	exit := d.Elements[2].Data.(design.SpiralData)
	if exit.StartRadius != 300 || !math.IsInf(exit.EndRadius, 1) {
		t.Errorf("exit spiral radii = (%g, %g)", exit.StartRadius, exit.EndRadius)
	}

	// Symmetric transitions: total deflection is twice the spiral angle
	// plus the arc's central angle.
	wantEnd := 2*entry.TotalTheta + 10*math.Pi/180
	if !near(exit.EndBearing, wantEnd, 1e-9) {
		t.Errorf("chain end bearing = %g, want %g", exit.EndBearing, wantEnd)
	}

	// All three elements remain point-continuous.
	for i := 1; i < 3; i++ {
		if gap := d.Elements[i].Start.Sub(d.Elements[i-1].End).Length(); gap > 1e-9 {
			t.Errorf("gap of %g before element %d", gap, i)
		}
	}
}

func TestEvaluateParseError(t *testing.T) {
	d, evalErrs, err := NewEngine().Evaluate("(tangent :length")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if d != nil {
		t.Error("design should be nil on parse failure")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected eval errors for unbalanced source")
	}
}

func TestEvaluateMissingArgument(t *testing.T) {
	d, evalErrs, err := NewEngine().Evaluate("(tangent)")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if d != nil {
		t.Error("design should be nil when a builtin fails")
	}
	if !errorsContain(evalErrs, "length") {
		t.Errorf("errors %v should mention the missing :length argument", evalErrs)
	}
}

func TestEvaluateBadDirection(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate("(curve :radius 300 :angle 10 :direction :up)")
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if !errorsContain(evalErrs, "left") {
		t.Errorf("errors %v should explain the accepted directions", evalErrs)
	}
}

func TestEvalErrorFormatting(t *testing.T) {
	e := EvalError{Line: 3, Message: "bad token"}
	if e.Error() != "line 3: bad token" {
		t.Errorf("Error() = %q", e.Error())
	}
	e = EvalError{Message: "bad token"}
	if e.Error() != "bad token" {
		t.Errorf("Error() without line = %q", e.Error())
	}
}

func TestParseZygoError(t *testing.T) {
	got := parseZygoError(errors.New("Error on line 7: unexpected token"))
	if len(got) != 1 || got[0].Line != 7 || got[0].Message != "unexpected token" {
		t.Errorf("parseZygoError = %+v", got)
	}

	got = parseZygoError(errors.New("something opaque"))
	if len(got) != 1 || got[0].Line != 0 || got[0].Message != "something opaque" {
		t.Errorf("parseZygoError fallback = %+v", got)
	}
}
