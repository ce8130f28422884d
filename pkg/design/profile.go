package design

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound reports evaluation of an empty vertical profile.
var ErrProfileNotFound = errors.New("no vertical profile data")

// ProfileSample is the interpolated vertical state at a station.
type ProfileSample struct {
	Elevation float64
	Grade     float64
}

// EvaluateProfile interpolates elevation and grade at a station.
//
// With a single profile point, that point is returned regardless of
// station. With two or more, the bracketing segment interpolates
// linearly; stations beyond the last point extrapolate along the final
// segment (t > 1) rather than clamping, and stations before the first
// point extrapolate the first segment symmetrically.
func EvaluateProfile(profile []ProfilePoint, station float64) (ProfileSample, error) {
	switch len(profile) {
	case 0:
		return ProfileSample{}, fmt.Errorf("station %g: %w", station, ErrProfileNotFound)
	case 1:
		return ProfileSample{Elevation: profile[0].Elevation, Grade: profile[0].Grade}, nil
	}

	seg := len(profile) - 2 // default: final segment, extrapolated
	for i := 0; i+1 < len(profile); i++ {
		if station <= profile[i+1].Station {
			seg = i
			break
		}
	}

	a, b := profile[seg], profile[seg+1]
	span := b.Station - a.Station
	if span == 0 {
		return ProfileSample{Elevation: a.Elevation, Grade: a.Grade}, nil
	}
	t := (station - a.Station) / span
	return ProfileSample{
		Elevation: a.Elevation + t*(b.Elevation-a.Elevation),
		Grade:     a.Grade + t*(b.Grade-a.Grade),
	}, nil
}

// SuperSample is the interpolated cross-slope state at a station.
type SuperSample struct {
	LeftSlope  float64
	RightSlope float64
}

// EvaluateSuperelevation interpolates cross-slope rates at a station.
// Absent data means zero slope everywhere. Beyond the last point the
// values clamp to the last point; the vertical profile extrapolates
// instead, and that asymmetry is deliberate.
func EvaluateSuperelevation(data []SuperelevationPoint, station float64) SuperSample {
	if len(data) == 0 {
		return SuperSample{}
	}
	if station <= data[0].Station {
		return SuperSample{LeftSlope: data[0].LeftSlope, RightSlope: data[0].RightSlope}
	}
	last := data[len(data)-1]
	if station >= last.Station {
		return SuperSample{LeftSlope: last.LeftSlope, RightSlope: last.RightSlope}
	}
	for i := 0; i+1 < len(data); i++ {
		a, b := data[i], data[i+1]
		if station > b.Station {
			continue
		}
		span := b.Station - a.Station
		if span == 0 {
			return SuperSample{LeftSlope: a.LeftSlope, RightSlope: a.RightSlope}
		}
		t := (station - a.Station) / span
		return SuperSample{
			LeftSlope:  a.LeftSlope + t*(b.LeftSlope-a.LeftSlope),
			RightSlope: a.RightSlope + t*(b.RightSlope-a.RightSlope),
		}
	}
	return SuperSample{LeftSlope: last.LeftSlope, RightSlope: last.RightSlope}
}
