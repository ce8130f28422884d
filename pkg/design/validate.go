package design

import (
	"fmt"
	"math"
)

// Severity classifies validation findings.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// ValidationError is a blocking defect in a road design. A design with
// any validation errors must not be handed to corridor generation.
type ValidationError struct {
	Message  string
	Severity Severity
}

func (e ValidationError) Error() string { return e.Message }

// ValidationWarning is an advisory finding; generation may proceed.
type ValidationWarning struct {
	Message string
}

// stationContiguityTol is the allowed station/geometry mismatch between
// consecutive alignment elements.
const stationContiguityTol = 1e-6

// maxReasonableSuper is the cross-slope rate above which a
// superelevation entry is flagged as suspicious (12%).
const maxReasonableSuper = 0.12

// Validate runs all design checks and returns blocking errors and
// advisory warnings separately.
func (d *RoadDesign) Validate() ([]ValidationError, []ValidationWarning) {
	var errs []ValidationError
	var warnings []ValidationWarning

	errs = append(errs, validateAlignment(d.Elements)...)
	errs = append(errs, validateProfile(d.Profile)...)
	errs = append(errs, validateTemplate(d.Template)...)

	warnings = append(warnings, warnSuperelevation(d.Super)...)
	warnings = append(warnings, warnSampling(d)...)
	warnings = append(warnings, warnTemplateOrder(d.Template)...)

	return errs, warnings
}

// validateAlignment checks element ordering, contiguity and per-kind
// geometric sanity.
func validateAlignment(elements []Element) []ValidationError {
	var errs []ValidationError
	if len(elements) == 0 {
		errs = append(errs, ValidationError{
			Message:  "alignment has no elements",
			Severity: SeverityError,
		})
		return errs
	}

	for i, e := range elements {
		if e.EndStation <= e.StartStation {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("element %d (%s): end station %.4f not after start station %.4f", i, e.Kind, e.EndStation, e.StartStation),
				Severity: SeverityError,
			})
		}
		if i > 0 {
			prev := elements[i-1]
			if math.Abs(e.StartStation-prev.EndStation) > stationContiguityTol {
				errs = append(errs, ValidationError{
					Message:  fmt.Sprintf("element %d (%s): start station %.4f does not continue element %d end station %.4f", i, e.Kind, e.StartStation, i-1, prev.EndStation),
					Severity: SeverityError,
				})
			}
			gap := e.Start.Sub(prev.End).Length()
			if gap > stationContiguityTol*100 {
				errs = append(errs, ValidationError{
					Message:  fmt.Sprintf("element %d (%s): start point is %.6f units away from element %d end point", i, e.Kind, gap, i-1),
					Severity: SeverityError,
				})
			}
		}
		if c, ok := e.Data.(CurveData); ok && c.Radius <= 0 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("element %d (curve): radius %.4f must be positive", i, c.Radius),
				Severity: SeverityError,
			})
		}
		if sp, ok := e.Data.(SpiralData); ok && sp.A <= 0 {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("element %d (spiral): parameter A %.4f must be positive", i, sp.A),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateProfile requires at least one point and station ordering.
func validateProfile(profile []ProfilePoint) []ValidationError {
	var errs []ValidationError
	if len(profile) == 0 {
		errs = append(errs, ValidationError{
			Message:  "vertical profile has no points",
			Severity: SeverityError,
		})
		return errs
	}
	for i := 1; i < len(profile); i++ {
		if profile[i].Station < profile[i-1].Station {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("profile point %d: station %.4f before previous station %.4f", i, profile[i].Station, profile[i-1].Station),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateTemplate requires at least two points so a section has width.
func validateTemplate(t Template) []ValidationError {
	var errs []ValidationError
	if len(t.Points) < 2 {
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("template has %d points, need at least 2", len(t.Points)),
			Severity: SeverityError,
		})
	}
	return errs
}

// warnSuperelevation flags unordered entries and implausible rates.
func warnSuperelevation(data []SuperelevationPoint) []ValidationWarning {
	var warnings []ValidationWarning
	for i, p := range data {
		if i > 0 && p.Station < data[i-1].Station {
			warnings = append(warnings, ValidationWarning{
				Message: fmt.Sprintf("superelevation point %d: station %.4f before previous station %.4f", i, p.Station, data[i-1].Station),
			})
		}
		if math.Abs(p.LeftSlope) > maxReasonableSuper || math.Abs(p.RightSlope) > maxReasonableSuper {
			warnings = append(warnings, ValidationWarning{
				Message: fmt.Sprintf("superelevation point %d at station %.1f: rate above %.0f%%", i, p.Station, maxReasonableSuper*100),
			})
		}
	}
	return warnings
}

// warnSampling flags an interval wider than the alignment itself.
func warnSampling(d *RoadDesign) []ValidationWarning {
	if d.Sampling.Interval <= 0 {
		return nil
	}
	span := d.EndStation() - d.Sampling.Start
	if span > 0 && d.Sampling.Interval > span {
		return []ValidationWarning{{
			Message: fmt.Sprintf("sample interval %.1f exceeds alignment span %.1f; only the end stations will be sampled", d.Sampling.Interval, span),
		}}
	}
	return nil
}

// warnTemplateOrder flags templates supplied out of offset order.
func warnTemplateOrder(t Template) []ValidationWarning {
	for i := 1; i < len(t.Points); i++ {
		if t.Points[i].Offset < t.Points[i-1].Offset {
			return []ValidationWarning{{
				Message: fmt.Sprintf("template point %d is left of point %d; points will be sorted by offset for triangulation", i, i-1),
			}}
		}
	}
	return nil
}
