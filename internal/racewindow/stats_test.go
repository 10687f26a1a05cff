package racewindow

import (
	"math"
	"testing"

	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/pkg/heatstress"
	"github.com/marathonwx/raceday/pkg/timecode"
)

func testHistory() []types.YearSeries {
	return []types.YearSeries{
		{
			Year:          2022,
			StartTimeMass: "09:00",
			Samples: []types.WeatherSample{
				{Time: "09:00", TempF: 50, DewPointF: 40},
				{Time: "12:00", TempF: 56, DewPointF: 42},
			},
		},
		{
			Year:          2023,
			StartTimeMass: "09:00",
			Samples: []types.WeatherSample{
				{Time: "09:00", TempF: 64, DewPointF: 56},
				{Time: "12:00", TempF: 74, DewPointF: 60},
			},
		},
		{
			// No samples: skipped entirely.
			Year:          2024,
			StartTimeMass: "09:00",
		},
	}
}

func TestClimatize(t *testing.T) {
	c := Climatize(testHistory(), timecode.ModeMass, 0, 3.0, heatstress.MetricSum, heatstress.Fahrenheit)

	if len(c.Years) != 2 {
		t.Fatalf("expected 2 usable years, got %d", len(c.Years))
	}

	// 2022: start sum 90 (Ideal), max 98. 2023: start sum 120
	// (Caution), max 134.
	if c.Years[0].StartVal != 90 || c.Years[1].StartVal != 120 {
		t.Errorf("start values = (%v, %v), expected (90, 120)", c.Years[0].StartVal, c.Years[1].StartVal)
	}
	if c.Years[0].Category != heatstress.Ideal || c.Years[1].Category != heatstress.Caution {
		t.Errorf("categories = (%v, %v), expected (Ideal, Caution)", c.Years[0].Category, c.Years[1].Category)
	}

	if math.Abs(c.MeanStart-105) > 1e-9 {
		t.Errorf("MeanStart = %v, expected 105", c.MeanStart)
	}
	if math.Abs(c.MeanMax-116) > 1e-9 {
		t.Errorf("MeanMax = %v, expected 116", c.MeanMax)
	}
	if c.WorstYear != 2023 || math.Abs(c.WorstMax-134) > 1e-9 {
		t.Errorf("worst = (%d, %v), expected (2023, 134)", c.WorstYear, c.WorstMax)
	}
	if c.CautionYears != 1 || c.DangerYears != 0 {
		t.Errorf("severity counts = (%d caution, %d danger), expected (1, 0)", c.CautionYears, c.DangerYears)
	}

	// Sample standard deviation of {90, 120} is ~21.213.
	if math.Abs(c.StdDevStart-21.213203435596427) > 1e-6 {
		t.Errorf("StdDevStart = %v, expected ~21.213", c.StdDevStart)
	}
}

func TestClimatizeEmptyHistory(t *testing.T) {
	c := Climatize(nil, timecode.ModeMass, 0, 3.0, heatstress.MetricSum, heatstress.Fahrenheit)
	if len(c.Years) != 0 || c.MeanStart != 0 || c.MeanMax != 0 {
		t.Errorf("empty history should yield a zero climatology, got %+v", c)
	}
}

func TestClimatizeSingleYearHasZeroSpread(t *testing.T) {
	c := Climatize(testHistory()[:1], timecode.ModeMass, 0, 3.0, heatstress.MetricSum, heatstress.Fahrenheit)
	if c.StdDevStart != 0 || c.StdDevMax != 0 {
		t.Errorf("single-year spread should be 0, got (%v, %v)", c.StdDevStart, c.StdDevMax)
	}
	if c.WorstYear != 2022 {
		t.Errorf("WorstYear = %d, expected 2022", c.WorstYear)
	}
}
