package racewindow

import (
	"sort"

	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/pkg/heatstress"
)

// Stop is one gradient stop: the derived display value at a point in
// the window together with the Fahrenheit temp+dew sum it classifies
// under. RawSumF is always Fahrenheit, independent of the display
// unit, because the severity thresholds are physiological constants.
type Stop struct {
	Val      float64
	RawSumF  float64
	Category heatstress.Category
}

// Summary reduces a race window to its derived-value extremes and an
// ordered list of gradient stops.
type Summary struct {
	MinVal float64
	MaxVal float64
	Stops  []Stop
}

// Summarize computes the window summary for [startHour, endHour]:
// interpolated endpoint values, every raw sample strictly inside the
// window, min/max of the derived value across all of them, and the
// stops sorted descending by value for top-to-bottom gradient
// construction (high values draw at the top of an inverted axis).
//
// A degenerate window (startHour == endHour, or one effective point)
// yields MinVal == MaxVal; minimum visual thickness is the rendering
// layer's policy, not this function's.
func Summarize(samples []types.WeatherSample, startHour, endHour float64, m heatstress.Metric, u heatstress.Unit) Summary {
	rs := Resample(samples)

	startTemp, startDew := rs.ValueAt(startHour)
	endTemp, endDew := rs.ValueAt(endHour)

	stops := []Stop{
		makeStop(startTemp, startDew, m, u),
		makeStop(endTemp, endDew, m, u),
	}
	for _, p := range rs.interior(startHour, endHour) {
		stops = append(stops, makeStop(p.TempF, p.DewF, m, u))
	}

	minVal, maxVal := stops[0].Val, stops[0].Val
	for _, s := range stops[1:] {
		if s.Val < minVal {
			minVal = s.Val
		}
		if s.Val > maxVal {
			maxVal = s.Val
		}
	}

	sort.SliceStable(stops, func(i, j int) bool { return stops[i].Val > stops[j].Val })

	return Summary{MinVal: minVal, MaxVal: maxVal, Stops: stops}
}

func makeStop(tempF, dewF float64, m heatstress.Metric, u heatstress.Unit) Stop {
	rawSum := tempF + dewF
	return Stop{
		Val:      heatstress.Derive(tempF, dewF, m, u),
		RawSumF:  rawSum,
		Category: heatstress.Classify(rawSum),
	}
}
