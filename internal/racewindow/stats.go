package racewindow

import (
	"gonum.org/v1/gonum/stat"

	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/pkg/heatstress"
	"github.com/marathonwx/raceday/pkg/timecode"
)

// YearStat is one year's contribution to the climatology: the derived
// value at the resolved start hour, the window maximum, and the
// severity at the start.
type YearStat struct {
	Year      int
	StartHour float64
	StartVal  float64
	MaxVal    float64
	Category  heatstress.Category
}

// Climatology aggregates window conditions across all recorded years
// for one race, start mode, and projected finish duration.
type Climatology struct {
	Years        []YearStat
	MeanStart    float64
	StdDevStart  float64
	MeanMax      float64
	StdDevMax    float64
	WorstMax     float64
	WorstYear    int
	CautionYears int
	DangerYears  int
}

// Climatize computes multi-year statistics for a race window. Years
// with no samples are skipped; a history with no usable years yields a
// zero-valued Climatology.
func Climatize(history []types.YearSeries, mode timecode.StartMode, massOffsetMinutes int, durationHours float64, m heatstress.Metric, u heatstress.Unit) Climatology {
	var (
		out    Climatology
		starts []float64
		maxes  []float64
	)

	for _, ys := range history {
		if len(ys.Samples) == 0 {
			continue
		}

		startHour := timecode.StartHour(ys.StartTimes(), mode, massOffsetMinutes)
		sum := Summarize(ys.Samples, startHour, startHour+durationHours, m, u)

		startTemp, startDew := Resample(ys.Samples).ValueAt(startHour)
		rawSum := startTemp + startDew

		ystat := YearStat{
			Year:      ys.Year,
			StartHour: startHour,
			StartVal:  heatstress.Derive(startTemp, startDew, m, u),
			MaxVal:    sum.MaxVal,
			Category:  heatstress.Classify(rawSum),
		}
		out.Years = append(out.Years, ystat)
		starts = append(starts, ystat.StartVal)
		maxes = append(maxes, ystat.MaxVal)

		switch ystat.Category {
		case heatstress.Caution:
			out.CautionYears++
		case heatstress.Danger:
			out.DangerYears++
		}

		if len(maxes) == 1 || ystat.MaxVal > out.WorstMax {
			out.WorstMax = ystat.MaxVal
			out.WorstYear = ys.Year
		}
	}

	if len(starts) == 0 {
		return out
	}

	out.MeanStart = stat.Mean(starts, nil)
	out.MeanMax = stat.Mean(maxes, nil)
	if len(starts) > 1 {
		out.StdDevStart = stat.StdDev(starts, nil)
		out.StdDevMax = stat.StdDev(maxes, nil)
	}
	return out
}
