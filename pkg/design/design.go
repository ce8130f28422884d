package design

// DefaultSampleInterval is the station spacing used when the design
// does not specify one, in alignment distance units.
const DefaultSampleInterval = 10.0

// Layer identifies which corridor surface a template point belongs to.
type Layer string

const (
	LayerPavement Layer = "pavement"
	LayerShoulder Layer = "shoulder"
	LayerSlope    Layer = "slope"
)

// Point codes with special meaning during corridor synthesis.
const (
	CodeCenterline = "CL" // synthesized centerline point, offset 0
	CodeHingeSlope = "HS" // hinge between shoulder and slope
	CodeFillSlope  = "FS" // hinge at the top/toe of a fill slope
	CodeDaylight   = "DL" // synthesized slope/terrain daylight point
)

// IsHingeCode reports whether a template point code marks a slope hinge,
// i.e. a point that daylights to terrain during synthesis.
func IsHingeCode(code string) bool {
	return code == CodeHingeSlope || code == CodeFillSlope
}

// ProfilePoint is one breakpoint of the vertical profile.
type ProfilePoint struct {
	Station   float64
	Elevation float64
	Grade     float64 // decimal rate, e.g. 0.02 for 2%
}

// SuperelevationPoint is one breakpoint of the superelevation table.
// Slopes are decimal cross-fall rates by side of the centerline.
type SuperelevationPoint struct {
	Station    float64
	LeftSlope  float64
	RightSlope float64
}

// Sampling controls station sampling for corridor generation.
// A zero End means "end of alignment"; a non-positive Interval means
// DefaultSampleInterval.
type Sampling struct {
	Start    float64
	End      float64
	Interval float64
}

// PavementStructure is the nominal layer thickness used by volume
// estimation. These are design parameters, not geometry.
type PavementStructure struct {
	SurfaceDepth float64
	BaseDepth    float64
	SubbaseDepth float64
}

// DefaultStructure returns typical layer depths in alignment units
// (meters): 200 mm surface, 300 mm base, 450 mm subbase.
func DefaultStructure() PavementStructure {
	return PavementStructure{
		SurfaceDepth: 0.2,
		BaseDepth:    0.3,
		SubbaseDepth: 0.45,
	}
}

// RoadDesign is the complete declarative input to corridor generation.
// It is assembled either directly or by evaluating design source with
// the engine package, and is read-only once handed to the generator.
type RoadDesign struct {
	Elements  []Element
	Profile   []ProfilePoint
	Super     []SuperelevationPoint
	Template  Template
	Sampling  Sampling
	Structure PavementStructure
}

// NewRoadDesign returns an empty design with default structure depths.
func NewRoadDesign() *RoadDesign {
	return &RoadDesign{Structure: DefaultStructure()}
}

// EndStation returns the end station of the last alignment element,
// or 0 for an empty alignment.
func (d *RoadDesign) EndStation() float64 {
	if len(d.Elements) == 0 {
		return 0
	}
	return d.Elements[len(d.Elements)-1].EndStation
}
