package engine

import (
	"fmt"
	"math"
	"strings"

	v2 "github.com/deadsy/sdfx/vec/v2"
	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/ron4870/Sample-Road-Design-Web-App/pkg/design"
)

// builder accumulates a RoadDesign during evaluation. Alignment
// elements chain: each new element starts at the previous element's
// end point, bearing and station, so the cursor is the single source
// of geometric continuity.
type builder struct {
	design  *design.RoadDesign
	pos     v2.Vec
	bearing float64 // radians
	station float64
}

func newBuilder() *builder {
	return &builder{design: design.NewRoadDesign()}
}

// push appends an alignment element and advances the cursor.
func (b *builder) push(e design.Element, endBearing float64) {
	b.design.Elements = append(b.design.Elements, e)
	b.pos = e.End
	b.bearing = endBearing
	b.station = e.EndStation
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwArgs is a parsed builtin argument list: keyword arguments plus any
// leading positional values. Keywords carry the kwPrefix marker added
// by preprocessSource.
type kwArgs struct {
	fn         string
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(fn string, args []zygo.Sexp) kwArgs {
	pa := kwArgs{fn: fn, kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); {
		str, ok := args[i].(*zygo.SexpStr)
		if ok && strings.HasPrefix(str.S, kwPrefix) && i+1 < len(args) {
			pa.kw[str.S[len(kwPrefix):]] = args[i+1]
			i += 2
			continue
		}
		pa.positional = append(pa.positional, args[i])
		i++
	}
	return pa
}

// float returns a numeric keyword argument, or def when absent.
func (pa kwArgs) float(name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case *zygo.SexpInt:
		return float64(n.Val), nil
	case *zygo.SexpFloat:
		return n.Val, nil
	}
	return 0, fmt.Errorf("%s: %s: expected number, got %s", pa.fn, name, v.SexpString(nil))
}

// requireFloat returns a numeric keyword argument that must be present.
func (pa kwArgs) requireFloat(name string) (float64, error) {
	if _, ok := pa.kw[name]; !ok {
		return 0, fmt.Errorf("%s: missing required argument :%s", pa.fn, name)
	}
	return pa.float(name, 0)
}

// str returns a string keyword argument, or def when absent. A keyword
// value (:EP) is accepted and unwrapped.
func (pa kwArgs) str(name, def string) (string, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	s, ok := v.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("%s: %s: expected string, got %s", pa.fn, name, v.SexpString(nil))
	}
	return strings.TrimPrefix(s.S, kwPrefix), nil
}

// direction returns a :left/:right keyword argument.
func (pa kwArgs) direction(name string) (design.Direction, error) {
	s, err := pa.str(name, "")
	if err != nil {
		return 0, err
	}
	switch s {
	case "left":
		return design.DirLeft, nil
	case "right":
		return design.DirRight, nil
	case "":
		return 0, fmt.Errorf("%s: missing required argument :%s (:left or :right)", pa.fn, name)
	}
	return 0, fmt.Errorf("%s: %s: expected :left or :right, got %q", pa.fn, name, s)
}

// layer returns a corridor layer keyword argument.
func (pa kwArgs) layer(name string, def design.Layer) (design.Layer, error) {
	s, err := pa.str(name, string(def))
	if err != nil {
		return "", err
	}
	return design.Layer(s), nil
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the road design DSL into a zygomys
// environment. The builtins populate b during evaluation. Angles in
// the DSL are degrees; grades and cross-slopes are decimal rates.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// (start :x 0 :y 0 :bearing 45 :station 0)
	// Sets the alignment origin, initial azimuth (degrees) and start
	// station. Optional; the cursor starts zeroed.
	env.AddFunction("start", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("start", args)
		x, err := pa.float("x", b.pos.X)
		if err != nil {
			return zygo.SexpNull, err
		}
		y, err := pa.float("y", b.pos.Y)
		if err != nil {
			return zygo.SexpNull, err
		}
		deg, err := pa.float("bearing", b.bearing*180/math.Pi)
		if err != nil {
			return zygo.SexpNull, err
		}
		st, err := pa.float("station", b.station)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.pos = v2.Vec{X: x, Y: y}
		b.bearing = radians(deg)
		b.station = st
		return zygo.SexpNull, nil
	})

	// (tangent :length 120)
	env.AddFunction("tangent", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("tangent", args)
		length, err := pa.requireFloat("length")
		if err != nil {
			return zygo.SexpNull, err
		}
		e, err := design.NewTangent(b.pos, b.station, b.bearing, length)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tangent: %w", err)
		}
		b.push(e, b.bearing)
		return zygo.SexpNull, nil
	})

	// (curve :radius 300 :deflection 24)
	// (curve :radius 300 :angle 24 :direction :left)
	// Deflection is signed degrees, positive turning right; the
	// :angle form takes an unsigned central angle plus :direction.
	env.AddFunction("curve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("curve", args)
		radius, err := pa.requireFloat("radius")
		if err != nil {
			return zygo.SexpNull, err
		}

		var e design.Element
		if _, hasDefl := pa.kw["deflection"]; hasDefl {
			defl, err := pa.requireFloat("deflection")
			if err != nil {
				return zygo.SexpNull, err
			}
			e, err = design.NewCurveBetweenBearings(b.pos, b.station, b.bearing, b.bearing+radians(defl), radius)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("curve: %w", err)
			}
		} else {
			angle, err := pa.requireFloat("angle")
			if err != nil {
				return zygo.SexpNull, err
			}
			dir, err := pa.direction("direction")
			if err != nil {
				return zygo.SexpNull, err
			}
			e, err = design.NewCircularCurve(b.pos, b.station, b.bearing, radius, radians(angle), dir)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("curve: %w", err)
			}
		}

		b.push(e, e.Data.(design.CurveData).OutBearing)
		return zygo.SexpNull, nil
	})

	// (spiral :length 60 :radius 300 :direction :right)
	// (spiral :length 60 :radius 300 :direction :right :orientation :exit)
	// Entry spirals run straight-to-curved; :orientation :exit runs
	// curved-to-straight. The radius is the curved end's radius.
	env.AddFunction("spiral", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("spiral", args)
		length, err := pa.requireFloat("length")
		if err != nil {
			return zygo.SexpNull, err
		}
		radius, err := pa.requireFloat("radius")
		if err != nil {
			return zygo.SexpNull, err
		}
		dir, err := pa.direction("direction")
		if err != nil {
			return zygo.SexpNull, err
		}
		orient, err := pa.str("orientation", "entry")
		if err != nil {
			return zygo.SexpNull, err
		}

		startR, endR := math.Inf(1), radius
		switch orient {
		case "entry":
		case "exit":
			startR, endR = radius, math.Inf(1)
		default:
			return zygo.SexpNull, fmt.Errorf("spiral: orientation: expected :entry or :exit, got %q", orient)
		}

		e, err := design.NewSpiral(b.pos, b.station, b.bearing, length, startR, endR, dir)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spiral: %w", err)
		}
		b.push(e, e.Data.(design.SpiralData).EndBearing)
		return zygo.SexpNull, nil
	})

	// (profile-point :station 0 :elevation 100 :grade 0.02)
	env.AddFunction("profile_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("profile-point", args)
		st, err := pa.requireFloat("station")
		if err != nil {
			return zygo.SexpNull, err
		}
		elev, err := pa.requireFloat("elevation")
		if err != nil {
			return zygo.SexpNull, err
		}
		grade, err := pa.float("grade", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Profile = append(b.design.Profile, design.ProfilePoint{
			Station:   st,
			Elevation: elev,
			Grade:     grade,
		})
		return zygo.SexpNull, nil
	})

	// (superelevation :station 150 :left 0.02 :right -0.04)
	env.AddFunction("superelevation", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("superelevation", args)
		st, err := pa.requireFloat("station")
		if err != nil {
			return zygo.SexpNull, err
		}
		left, err := pa.float("left", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		right, err := pa.float("right", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Super = append(b.design.Super, design.SuperelevationPoint{
			Station:    st,
			LeftSlope:  left,
			RightSlope: right,
		})
		return zygo.SexpNull, nil
	})

	// (template-point :offset -4 :height -0.08 :code "EP" :layer :pavement)
	env.AddFunction("template_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("template-point", args)
		offset, err := pa.requireFloat("offset")
		if err != nil {
			return zygo.SexpNull, err
		}
		height, err := pa.float("height", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		code, err := pa.str("code", "")
		if err != nil {
			return zygo.SexpNull, err
		}
		layer, err := pa.layer("layer", design.LayerPavement)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Template.Points = append(b.design.Template.Points, design.TemplatePoint{
			Offset: offset,
			Height: height,
			Code:   code,
			Layer:  layer,
		})
		return zygo.SexpNull, nil
	})

	// (lane :name "driving" :from -3.6 :to 0)
	env.AddFunction("lane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("lane", args)
		laneName, err := pa.str("name", "")
		if err != nil {
			return zygo.SexpNull, err
		}
		from, err := pa.requireFloat("from")
		if err != nil {
			return zygo.SexpNull, err
		}
		to, err := pa.requireFloat("to")
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Template.Lanes = append(b.design.Template.Lanes, design.Lane{
			Name: laneName,
			From: from,
			To:   to,
		})
		return zygo.SexpNull, nil
	})

	// (sampling :start 0 :end 480 :interval 10)
	env.AddFunction("sampling", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("sampling", args)
		start, err := pa.float("start", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		end, err := pa.float("end", 0)
		if err != nil {
			return zygo.SexpNull, err
		}
		interval, err := pa.float("interval", design.DefaultSampleInterval)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Sampling = design.Sampling{Start: start, End: end, Interval: interval}
		return zygo.SexpNull, nil
	})

	// (structure :surface 0.2 :base 0.3 :subbase 0.45)
	env.AddFunction("structure", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs("structure", args)
		def := design.DefaultStructure()
		surface, err := pa.float("surface", def.SurfaceDepth)
		if err != nil {
			return zygo.SexpNull, err
		}
		base, err := pa.float("base", def.BaseDepth)
		if err != nil {
			return zygo.SexpNull, err
		}
		subbase, err := pa.float("subbase", def.SubbaseDepth)
		if err != nil {
			return zygo.SexpNull, err
		}
		b.design.Structure = design.PavementStructure{
			SurfaceDepth: surface,
			BaseDepth:    base,
			SubbaseDepth: subbase,
		}
		return zygo.SexpNull, nil
	})
}
