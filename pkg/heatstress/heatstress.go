// Package heatstress derives display metrics from raw temperature and
// dew-point pairs and classifies race-day heat stress from the
// Fahrenheit temperature + dew point sum.
package heatstress

import "strings"

// Metric selects the displayed scalar.
type Metric int

const (
	// MetricSum is temperature + dew point, a heat-stress proxy.
	MetricSum Metric = iota
	// MetricTemp is air temperature alone.
	MetricTemp
)

func (m Metric) String() string {
	if m == MetricTemp {
		return "temp"
	}
	return "sum"
}

// ParseMetric maps a query-string metric name to a Metric. Unknown
// values resolve to the sum metric.
func ParseMetric(s string) Metric {
	if strings.EqualFold(strings.TrimSpace(s), "temp") {
		return MetricTemp
	}
	return MetricSum
}

// Unit selects the display unit. Raw data is always Fahrenheit;
// conversion happens only at the derive boundary.
type Unit int

const (
	Fahrenheit Unit = iota
	Celsius
)

func (u Unit) String() string {
	if u == Celsius {
		return "C"
	}
	return "F"
}

// ParseUnit maps a query-string unit name to a Unit. Unknown values
// resolve to Fahrenheit.
func ParseUnit(s string) Unit {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CELSIUS":
		return Celsius
	}
	return Fahrenheit
}

// Origin offsets for Celsius conversion. The sum metric combines two
// Fahrenheit values, so its Celsius origin is 32+32.
const (
	sumOriginF  = 64.0
	tempOriginF = 32.0
)

// Derive converts a raw Fahrenheit (temperature, dew point) pair into
// the display scalar for the given metric and unit. Conversion applies
// to the combined raw value, not per component.
func Derive(tempF, dewF float64, m Metric, u Unit) float64 {
	raw := tempF
	if m == MetricSum {
		raw = tempF + dewF
	}
	if u == Celsius {
		return (raw - origin(m)) * 5.0 / 9.0
	}
	return raw
}

// ToFahrenheit is the inverse of Derive's unit conversion, mapping a
// derived display value back to the Fahrenheit scale of its metric.
func ToFahrenheit(v float64, m Metric, u Unit) float64 {
	if u == Celsius {
		return v*9.0/5.0 + origin(m)
	}
	return v
}

func origin(m Metric) float64 {
	if m == MetricSum {
		return sumOriginF
	}
	return tempOriginF
}

// Category is an ordered heat-stress severity bucket.
type Category int

const (
	Ideal Category = iota
	Caution
	Danger
)

func (c Category) String() string {
	switch c {
	case Caution:
		return "Caution"
	case Danger:
		return "Danger"
	default:
		return "Ideal"
	}
}

// Classify buckets a Fahrenheit temperature + dew point sum. The
// thresholds are physiological and fixed; classification never depends
// on the user's selected metric or unit.
func Classify(rawSumF float64) Category {
	switch {
	case rawSumF < 100:
		return Ideal
	case rawSumF <= 120:
		return Caution
	default:
		return Danger
	}
}

// CategoryColor returns the standard display color for a category.
func CategoryColor(c Category) string {
	switch c {
	case Caution:
		return "#ffb347" // Amber
	case Danger:
		return "#e23d28" // Red
	default:
		return "#4caf50" // Green
	}
}
