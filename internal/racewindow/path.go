package racewindow

import "github.com/marathonwx/raceday/internal/types"

// BuildPath traces a year's raw series across a fixed viewing window:
// an interpolated value at the window start, every raw sample strictly
// inside the window in ascending hour order, and an interpolated value
// at the window end. Metric derivation and pixel placement belong to
// the caller.
//
// Fewer than 2 resulting points means no curve can be drawn and the
// result is nil. That is a normal outcome, not an error.
func BuildPath(samples []types.WeatherSample, viewStartHour, viewEndHour float64) []Point {
	rs := Resample(samples)
	if len(rs.pts) == 0 {
		return nil
	}

	startTemp, startDew := rs.ValueAt(viewStartHour)
	endTemp, endDew := rs.ValueAt(viewEndHour)

	path := []Point{{Hour: viewStartHour, TempF: startTemp, DewF: startDew}}
	path = append(path, rs.interior(viewStartHour, viewEndHour)...)
	path = append(path, Point{Hour: viewEndHour, TempF: endTemp, DewF: endDew})

	if len(path) < 2 {
		return nil
	}
	return path
}

// CurveSegment is a smoothing hint for the span between two adjacent
// path points. The renderer draws a cubic whose control points sit at
// CtrlHour horizontally, matching each endpoint's derived value
// vertically (horizontal tangents). The curve passes through From and
// To exactly; between them it only approximates a smooth interpolant.
type CurveSegment struct {
	From     Point
	To       Point
	CtrlHour float64
}

// CurveSegments pairs consecutive path points with their midpoint
// control hour. Fewer than 2 points yields nil.
func CurveSegments(path []Point) []CurveSegment {
	if len(path) < 2 {
		return nil
	}
	segs := make([]CurveSegment, 0, len(path)-1)
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		segs = append(segs, CurveSegment{
			From:     from,
			To:       to,
			CtrlHour: from.Hour + (to.Hour-from.Hour)/2,
		})
	}
	return segs
}
