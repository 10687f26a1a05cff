// Package racewindow is the numeric core of raceday: it resamples a
// year's irregular race-day weather series at arbitrary decimal-hour
// instants, summarizes bounded race-duration windows, and builds the
// point sequences behind multi-year overlay curves.
//
// Every operation is pure and total: inputs are never mutated, no
// function returns an error, and malformed upstream data degrades to
// documented defaults instead of aborting rendering.
package racewindow

import (
	"sort"

	"github.com/marathonwx/raceday/internal/types"
)

// Point is a raw series point: a decimal hour paired with the
// Fahrenheit temperature and dew point observed (or interpolated) at
// that instant. Metric and unit derivation is the caller's step.
type Point struct {
	Hour  float64
	TempF float64
	DewF  float64
}

// Empty-series fallback pair. Whether zero is a deliberate "no data"
// sentinel or an unnoticed gap upstream is unresolved; it is kept as a
// named constant pending review rather than silently changed.
const (
	EmptyTempF = 0.0
	EmptyDewF  = 0.0
)

// Resampled is a sample set projected to decimal hours and sorted
// ascending, ready for interpolated lookup. The zero value behaves as
// an empty series.
type Resampled struct {
	pts []Point
}

// Resample projects every sample to a decimal hour and stable-sorts an
// internal copy ascending. The caller's slice is left untouched.
func Resample(samples []types.WeatherSample) Resampled {
	pts := make([]Point, 0, len(samples))
	for _, s := range samples {
		pts = append(pts, Point{Hour: s.Hour(), TempF: s.TempF, DewF: s.DewPointF})
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Hour < pts[j].Hour })
	return Resampled{pts: pts}
}

// ValueAt answers "what was the raw (temp, dew) at hour X" by linear
// interpolation between the bracketing samples. Queries before the
// first sample or after the last clamp to that sample's values; there
// is no extrapolation. An empty series returns the zero fallback pair.
//
// Interpolation operates on the raw components, before metric
// derivation, so both remain available to classification.
func (r Resampled) ValueAt(hour float64) (tempF, dewF float64) {
	n := len(r.pts)
	if n == 0 {
		return EmptyTempF, EmptyDewF
	}

	// First sample at or past the target hour.
	i := sort.Search(n, func(k int) bool { return r.pts[k].Hour >= hour })

	if i == n {
		// Past the last sample: clamp.
		last := r.pts[n-1]
		return last.TempF, last.DewF
	}
	if i == 0 {
		// At or before the first sample: clamp.
		first := r.pts[0]
		return first.TempF, first.DewF
	}

	before, after := r.pts[i-1], r.pts[i]
	span := after.Hour - before.Hour
	if span == 0 {
		// Zero-width bracket: take the later sample rather than divide.
		return after.TempF, after.DewF
	}

	frac := (hour - before.Hour) / span
	tempF = before.TempF + frac*(after.TempF-before.TempF)
	dewF = before.DewF + frac*(after.DewF-before.DewF)
	return tempF, dewF
}

// interior returns the points strictly inside (startHour, endHour), in
// ascending hour order.
func (r Resampled) interior(startHour, endHour float64) []Point {
	var pts []Point
	for _, p := range r.pts {
		if p.Hour > startHour && p.Hour < endHour {
			pts = append(pts, p)
		}
	}
	return pts
}
