package racewindow

import (
	"math"
	"sort"
	"testing"

	"github.com/marathonwx/raceday/pkg/heatstress"
)

func TestSummarize(t *testing.T) {
	// Window 8:30 -> 9:30: interpolated endpoints (sums 115 and 124)
	// plus the interior 9:00 sample (sum 120).
	sum := Summarize(threeHourSeries(), 8.5, 9.5, heatstress.MetricSum, heatstress.Fahrenheit)

	if math.Abs(sum.MinVal-115) > 1e-9 {
		t.Errorf("MinVal = %v, expected 115", sum.MinVal)
	}
	if math.Abs(sum.MaxVal-124) > 1e-9 {
		t.Errorf("MaxVal = %v, expected 124", sum.MaxVal)
	}
	if len(sum.Stops) != 3 {
		t.Fatalf("expected 3 stops (two endpoints + one interior), got %d", len(sum.Stops))
	}

	// Stops are ordered descending by value for top-to-bottom gradients.
	if !sort.SliceIsSorted(sum.Stops, func(i, j int) bool { return sum.Stops[i].Val > sum.Stops[j].Val }) {
		t.Errorf("stops not sorted descending by value: %+v", sum.Stops)
	}

	// Classification follows the raw Fahrenheit sum at each stop.
	for _, s := range sum.Stops {
		if got := heatstress.Classify(s.RawSumF); got != s.Category {
			t.Errorf("stop %+v carries category %v, expected %v", s, s.Category, got)
		}
	}
	if sum.Stops[0].Category != heatstress.Danger {
		t.Errorf("hottest stop (sum %v) should classify Danger, got %v", sum.Stops[0].RawSumF, sum.Stops[0].Category)
	}
}

func TestSummarizeWindowBoundsAreStrict(t *testing.T) {
	// A sample sitting exactly on a window edge is represented by the
	// interpolated endpoint, not duplicated as an interior point.
	sum := Summarize(threeHourSeries(), 8.0, 10.0, heatstress.MetricSum, heatstress.Fahrenheit)
	if len(sum.Stops) != 3 {
		t.Errorf("expected endpoints + single interior sample = 3 stops, got %d", len(sum.Stops))
	}
}

func TestSummarizeClassificationIsUnitInvariant(t *testing.T) {
	f := Summarize(threeHourSeries(), 8.5, 9.5, heatstress.MetricSum, heatstress.Fahrenheit)
	c := Summarize(threeHourSeries(), 8.5, 9.5, heatstress.MetricSum, heatstress.Celsius)

	if len(f.Stops) != len(c.Stops) {
		t.Fatalf("stop counts differ across units: %d vs %d", len(f.Stops), len(c.Stops))
	}
	for i := range f.Stops {
		if f.Stops[i].Category != c.Stops[i].Category {
			t.Errorf("stop %d category differs across units: %v vs %v", i, f.Stops[i].Category, c.Stops[i].Category)
		}
		if math.Abs(f.Stops[i].RawSumF-c.Stops[i].RawSumF) > 1e-9 {
			t.Errorf("stop %d raw sum differs across units: %v vs %v", i, f.Stops[i].RawSumF, c.Stops[i].RawSumF)
		}
	}
}

func TestSummarizeTempMetric(t *testing.T) {
	sum := Summarize(threeHourSeries(), 8.0, 10.0, heatstress.MetricTemp, heatstress.Fahrenheit)
	if sum.MinVal != 60 || sum.MaxVal != 70 {
		t.Errorf("temp metric extremes = (%v, %v), expected (60, 70)", sum.MinVal, sum.MaxVal)
	}
	// Raw sums still drive classification even under the temp metric.
	for _, s := range sum.Stops {
		if s.RawSumF < 110 || s.RawSumF > 128 {
			t.Errorf("raw sum %v outside expected series range", s.RawSumF)
		}
	}
}

func TestSummarizeDegenerateWindow(t *testing.T) {
	sum := Summarize(threeHourSeries(), 9.0, 9.0, heatstress.MetricSum, heatstress.Fahrenheit)
	if sum.MinVal != sum.MaxVal {
		t.Errorf("degenerate window: MinVal %v != MaxVal %v", sum.MinVal, sum.MaxVal)
	}
	if math.Abs(sum.MinVal-120) > 1e-9 {
		t.Errorf("degenerate window value = %v, expected 120", sum.MinVal)
	}
}

func TestSummarizeEmptySeries(t *testing.T) {
	sum := Summarize(nil, 9.0, 12.0, heatstress.MetricSum, heatstress.Fahrenheit)
	if sum.MinVal != 0 || sum.MaxVal != 0 {
		t.Errorf("empty series summary = (%v, %v), expected zero fallback", sum.MinVal, sum.MaxVal)
	}
	if len(sum.Stops) != 2 {
		t.Errorf("empty series should still carry its two endpoint stops, got %d", len(sum.Stops))
	}
}
