package design

import (
	"errors"
	"fmt"
	"math"

	v2 "github.com/deadsy/sdfx/vec/v2"
)

// Coordinates follow the surveying convention: X is northing, Y is
// easting, and bearings are azimuths in radians, positive clockwise
// from north. In this frame a positive deflection is a right turn and
// the transverse normal (-sin b, cos b) points to the right of travel.

// ErrElementNotFound reports that no alignment element covers a station.
var ErrElementNotFound = errors.New("no alignment element covers station")

// ElementKind distinguishes alignment element types.
type ElementKind int

const (
	KindTangent ElementKind = iota
	KindCurve
	KindSpiral
)

func (k ElementKind) String() string {
	switch k {
	case KindTangent:
		return "tangent"
	case KindCurve:
		return "curve"
	case KindSpiral:
		return "spiral"
	default:
		return "unknown"
	}
}

// Direction is the turn direction of a curve or spiral.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

func (d Direction) String() string {
	if d == DirRight {
		return "right"
	}
	return "left"
}

// sign is +1 for right turns and -1 for left turns, matching the
// clockwise-positive bearing convention.
func (d Direction) sign() float64 {
	if d == DirRight {
		return 1
	}
	return -1
}

// Element is one horizontal alignment element. Elements are contiguous
// and non-overlapping: each element's EndStation equals the next
// element's StartStation, and the slice is ordered by station.
type Element struct {
	Kind         ElementKind
	StartStation float64
	EndStation   float64
	Start        v2.Vec
	End          v2.Vec
	Data         ElementData
}

// Length returns the element's arc length along the alignment.
func (e Element) Length() float64 {
	return e.EndStation - e.StartStation
}

// ElementData is the interface for kind-specific element payloads.
type ElementData interface {
	elementData() // marker method restricting implementations to this package
}

// TangentData describes a straight element.
type TangentData struct {
	Bearing float64
}

func (TangentData) elementData() {}

// CurveData describes a constant-radius circular arc.
type CurveData struct {
	Radius       float64
	CentralAngle float64 // positive, radians
	Dir          Direction
	Center       v2.Vec
	PC           v2.Vec // point of curve (arc start)
	PT           v2.Vec // point of tangent (arc end)
	PI           v2.Vec // point of intersection of the two tangents
	Degree       float64 // degree of curve, arc definition, degrees per 100 units
	InBearing    float64
	OutBearing   float64
}

func (CurveData) elementData() {}

// SpiralData describes a clothoid transition. Exactly one of
// StartRadius/EndRadius is finite; the infinite side is the straight
// end of the transition.
type SpiralData struct {
	StartRadius  float64 // +Inf for an entry spiral
	EndRadius    float64 // +Inf for an exit spiral
	A            float64 // clothoid parameter, A^2 = R*L
	TotalTheta   float64 // total bearing change, radians, unsigned
	Dir          Direction
	StartBearing float64
	EndBearing   float64
}

func (SpiralData) elementData() {}

// entry reports whether curvature grows from zero at the start.
func (sp SpiralData) entry() bool {
	return math.IsInf(sp.StartRadius, 1)
}

// Pose is a horizontal position and travel bearing at a station.
type Pose struct {
	Position v2.Vec
	Bearing  float64
}

// Evaluate returns the position and bearing at the given station. The
// first element whose closed station range contains the station wins;
// a boundary station therefore resolves to the earlier element.
func Evaluate(elements []Element, station float64) (Pose, error) {
	for _, e := range elements {
		if station < e.StartStation || station > e.EndStation {
			continue
		}
		s := station - e.StartStation
		switch data := e.Data.(type) {
		case TangentData:
			return evalTangent(e, data, s), nil
		case CurveData:
			return evalCurve(data, s), nil
		case SpiralData:
			return evalSpiral(e, data, s), nil
		default:
			return Pose{}, fmt.Errorf("element at station %g: unsupported data type %T", station, e.Data)
		}
	}
	return Pose{}, fmt.Errorf("station %g: %w", station, ErrElementNotFound)
}

func evalTangent(e Element, t TangentData, s float64) Pose {
	dir := v2.Vec{X: math.Cos(t.Bearing), Y: math.Sin(t.Bearing)}
	return Pose{
		Position: e.Start.Add(dir.MulScalar(s)),
		Bearing:  t.Bearing,
	}
}

func evalCurve(c CurveData, s float64) Pose {
	sign := c.Dir.sign()
	startAngle := math.Atan2(c.PC.Y-c.Center.Y, c.PC.X-c.Center.X)
	angle := startAngle + sign*s/c.Radius
	pos := c.Center.Add(v2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}.MulScalar(c.Radius))
	return Pose{
		Position: pos,
		Bearing:  angle + sign*math.Pi/2,
	}
}

func evalSpiral(e Element, sp SpiralData, s float64) Pose {
	sign := sp.Dir.sign()
	if sp.entry() {
		lx, ly := clothoidLocal(s, sp.A)
		return Pose{
			Position: localToWorld(e.Start, sp.StartBearing, lx, sign*ly),
			Bearing:  sp.StartBearing + sign*clothoidTheta(s, sp.A),
		}
	}
	// Exit spiral: curvature decreases along station. Walk the same
	// series backwards from the flat (end) side, with the turn
	// direction reversed for the reversed traversal.
	u := e.Length() - s
	lx, ly := clothoidLocal(u, sp.A)
	back := sp.EndBearing + math.Pi
	return Pose{
		Position: localToWorld(e.End, back, lx, -sign*ly),
		Bearing:  sp.EndBearing - sign*clothoidTheta(u, sp.A),
	}
}

// clothoidTheta is the spiral angle theta(s) = s^2 / (2 A^2).
func clothoidTheta(s, a float64) float64 {
	return s * s / (2 * a * a)
}

// clothoidLocal evaluates the clothoid in its local frame (x ahead
// along the initial tangent, y toward the curved side) using the
// truncated Fresnel series in theta:
//
//	x/s = 1 - θ²/10 + θ⁴/216 - θ⁶/9360 + θ⁸/685440
//	y/s = θ/3 - θ³/42 + θ⁵/1320 - θ⁷/75600 + θ⁹/6894720
func clothoidLocal(s, a float64) (x, y float64) {
	if s == 0 {
		return 0, 0
	}
	th := clothoidTheta(s, a)
	th2 := th * th
	x = s * (1 - th2/10 + th2*th2/216 - th2*th2*th2/9360 + th2*th2*th2*th2/685440)
	y = s * th * (1.0/3 - th2/42 + th2*th2/1320 - th2*th2*th2/75600 + th2*th2*th2*th2/6894720)
	return x, y
}

// localToWorld rotates a local (ahead, right) offset into world
// coordinates at the given bearing and adds it to origin.
func localToWorld(origin v2.Vec, bearing, ahead, right float64) v2.Vec {
	sin, cos := math.Sincos(bearing)
	return origin.Add(v2.Vec{
		X: ahead*cos - right*sin,
		Y: ahead*sin + right*cos,
	})
}

// NormalizeDeflection folds an angle into (-pi, pi].
func NormalizeDeflection(d float64) float64 {
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// NewTangent constructs a straight element of the given length.
func NewTangent(start v2.Vec, startStation, bearing, length float64) (Element, error) {
	if length <= 0 {
		return Element{}, fmt.Errorf("tangent length must be positive, got %g", length)
	}
	dir := v2.Vec{X: math.Cos(bearing), Y: math.Sin(bearing)}
	return Element{
		Kind:         KindTangent,
		StartStation: startStation,
		EndStation:   startStation + length,
		Start:        start,
		End:          start.Add(dir.MulScalar(length)),
		Data:         TangentData{Bearing: bearing},
	}, nil
}

// NewCircularCurve constructs a circular arc from its start point,
// incoming bearing, radius, unsigned central angle and turn direction.
// All dependent fields (length, center, PC/PT/PI, degree of curve) are
// derived here so they cannot drift apart.
func NewCircularCurve(start v2.Vec, startStation, inBearing, radius, centralAngle float64, dir Direction) (Element, error) {
	if radius <= 0 {
		return Element{}, fmt.Errorf("curve radius must be positive, got %g", radius)
	}
	if centralAngle <= 0 {
		return Element{}, fmt.Errorf("curve central angle must be positive, got %g", centralAngle)
	}
	sign := dir.sign()
	length := radius * centralAngle

	toCenter := inBearing + sign*math.Pi/2
	center := start.Add(v2.Vec{X: math.Cos(toCenter), Y: math.Sin(toCenter)}.MulScalar(radius))

	startAngle := math.Atan2(start.Y-center.Y, start.X-center.X)
	endAngle := startAngle + sign*centralAngle
	pt := center.Add(v2.Vec{X: math.Cos(endAngle), Y: math.Sin(endAngle)}.MulScalar(radius))

	tangentLen := radius * math.Tan(centralAngle/2)
	pi := start.Add(v2.Vec{X: math.Cos(inBearing), Y: math.Sin(inBearing)}.MulScalar(tangentLen))

	return Element{
		Kind:         KindCurve,
		StartStation: startStation,
		EndStation:   startStation + length,
		Start:        start,
		End:          pt,
		Data: CurveData{
			Radius:       radius,
			CentralAngle: centralAngle,
			Dir:          dir,
			Center:       center,
			PC:           start,
			PT:           pt,
			PI:           pi,
			Degree:       (100 / radius) * (180 / math.Pi),
			InBearing:    inBearing,
			OutBearing:   inBearing + sign*centralAngle,
		},
	}, nil
}

// NewCurveBetweenBearings constructs a circular arc connecting an
// incoming and an outgoing bearing. The turn direction is right when
// the deflection (outgoing minus incoming, normalized to (-pi, pi])
// is positive, else left.
func NewCurveBetweenBearings(start v2.Vec, startStation, inBearing, outBearing, radius float64) (Element, error) {
	defl := NormalizeDeflection(outBearing - inBearing)
	if defl == 0 {
		return Element{}, errors.New("curve deflection is zero; use a tangent")
	}
	dir := DirLeft
	if defl > 0 {
		dir = DirRight
	}
	return NewCircularCurve(start, startStation, inBearing, radius, math.Abs(defl), dir)
}

// NewSpiral constructs a clothoid transition. Pass math.Inf(1) (or 0)
// as startRadius for an entry spiral (straight to curved) or as
// endRadius for an exit spiral (curved to straight); exactly one side
// must be finite. The spiral parameter A = sqrt(R*L) uses the finite
// radius.
func NewSpiral(start v2.Vec, startStation, startBearing, length, startRadius, endRadius float64, dir Direction) (Element, error) {
	if length <= 0 {
		return Element{}, fmt.Errorf("spiral length must be positive, got %g", length)
	}
	if startRadius <= 0 {
		startRadius = math.Inf(1)
	}
	if endRadius <= 0 {
		endRadius = math.Inf(1)
	}
	entry := math.IsInf(startRadius, 1)
	exit := math.IsInf(endRadius, 1)
	if entry == exit {
		return Element{}, errors.New("spiral needs exactly one finite radius")
	}

	r := endRadius
	if exit {
		r = startRadius
	}
	a := math.Sqrt(r * length)
	totalTheta := clothoidTheta(length, a) // = length / (2 r)
	sign := dir.sign()
	endBearing := startBearing + sign*totalTheta

	var end v2.Vec
	if entry {
		lx, ly := clothoidLocal(length, a)
		end = localToWorld(start, startBearing, lx, sign*ly)
	} else {
		// Mirrored: the element traced backwards from its end is an
		// entry spiral with the opposite turn direction.
		lx, ly := clothoidLocal(length, a)
		back := endBearing + math.Pi
		// start = end + rot(back) * (lx, -sign*ly)  =>  solve for end.
		offset := localToWorld(v2.Vec{}, back, lx, -sign*ly)
		end = start.Sub(offset)
	}

	return Element{
		Kind:         KindSpiral,
		StartStation: startStation,
		EndStation:   startStation + length,
		Start:        start,
		End:          end,
		Data: SpiralData{
			StartRadius:  startRadius,
			EndRadius:    endRadius,
			A:            a,
			TotalTheta:   totalTheta,
			Dir:          dir,
			StartBearing: startBearing,
			EndBearing:   endBearing,
		},
	}, nil
}
