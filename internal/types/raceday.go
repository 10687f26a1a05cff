// Package types contains the shared race-day weather data model. The
// dataset is constructed once at load time and read-only thereafter;
// no engine component writes back into it.
package types

import "github.com/marathonwx/raceday/pkg/timecode"

// WeatherSample is a single observed reading on race day. Temperature
// and dew point are always stored in Fahrenheit regardless of the
// requested display unit; unit conversion happens only at the
// derivation boundary.
type WeatherSample struct {
	Time       string  `json:"datetime"` // "HH:MM:SS" local clock time
	TempF      float64 `json:"temp"`
	DewPointF  float64 `json:"dew"`
	WindSpeed  float64 `json:"windspeed"`
	Conditions string  `json:"conditions"`
}

// Hour projects the sample's clock time to decimal hours.
func (s WeatherSample) Hour() float64 {
	return timecode.Parse(s.Time)
}

// YearSeries holds one year's race-day record. Samples are not
// guaranteed sorted by time; consumers sort their own copy.
type YearSeries struct {
	Year                int             `json:"year"`
	RaceDate            string          `json:"date"` // YYYY-MM-DD
	StartTimeMass       string          `json:"start_time"`
	StartTimeEliteMen   string          `json:"start_time_elite_men,omitempty"`
	StartTimeEliteWomen string          `json:"start_time_elite_women,omitempty"`
	StartTimeElite      string          `json:"start_time_elite,omitempty"`
	Samples             []WeatherSample `json:"weather"`
}

// StartTimes adapts the series' recorded start fields for resolution
// by timecode.StartHour.
func (ys YearSeries) StartTimes() timecode.StartTimes {
	return timecode.StartTimes{
		Mass:       ys.StartTimeMass,
		EliteMen:   ys.StartTimeEliteMen,
		EliteWomen: ys.StartTimeEliteWomen,
		Elite:      ys.StartTimeElite,
	}
}

// RaceDataset is the full multi-year history for one race. ID is the
// stable race identifier; display behavior keys off it, never off the
// human-facing name string.
type RaceDataset struct {
	ID       string       `json:"id"`
	Race     string       `json:"race"`
	Location string       `json:"location"`
	History  []YearSeries `json:"history"`
}

// SeriesForYear returns the series for a year, or nil if that year is
// not in the history.
func (d *RaceDataset) SeriesForYear(year int) *YearSeries {
	for i := range d.History {
		if d.History[i].Year == year {
			return &d.History[i]
		}
	}
	return nil
}
