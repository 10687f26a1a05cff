// Package timecode converts race clock-time strings to and from decimal
// hours and resolves per-year start hours across start modes.
package timecode

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultStartHour is the decimal hour used when a time string is empty
// or malformed. Elite start fields are frequently absent from source
// data, so this is a documented default rather than an error.
const DefaultStartHour = 9.0

// StartMode selects which field wave's start time to resolve.
type StartMode int

const (
	ModeMass StartMode = iota
	ModeEliteMen
	ModeEliteWomen
)

func (m StartMode) String() string {
	switch m {
	case ModeEliteMen:
		return "elite-men"
	case ModeEliteWomen:
		return "elite-women"
	default:
		return "mass"
	}
}

// ParseMode maps a query-string mode name to a StartMode. Unknown
// values resolve to the mass start.
func ParseMode(s string) StartMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "elite-men", "elitemen", "men":
		return ModeEliteMen
	case "elite-women", "elitewomen", "women":
		return ModeEliteWomen
	default:
		return ModeMass
	}
}

// StartTimes carries a year's recorded start-time strings. Any field
// may be empty; resolution falls back per StartHour.
type StartTimes struct {
	Mass       string
	EliteMen   string
	EliteWomen string
	Elite      string // combined elite start, used when gendered fields are absent
}

// Parse converts an "HH:MM" or "HH:MM:SS" clock string to decimal
// hours. Empty or malformed input returns DefaultStartHour.
func Parse(s string) float64 {
	if s == "" {
		return DefaultStartHour
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return DefaultStartHour
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return DefaultStartHour
	}
	minute, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return DefaultStartHour
	}
	return float64(hour) + float64(minute)/60.0
}

// StartHour resolves the start hour for a mode. Elite modes fall back
// gendered -> combined elite -> mass, taking the first non-empty field.
// The mass start adds massOffsetMinutes to model staggered wave starts.
func StartHour(st StartTimes, mode StartMode, massOffsetMinutes int) float64 {
	switch mode {
	case ModeEliteMen:
		return Parse(firstNonEmpty(st.EliteMen, st.Elite, st.Mass))
	case ModeEliteWomen:
		return Parse(firstNonEmpty(st.EliteWomen, st.Elite, st.Mass))
	default:
		return Parse(st.Mass) + float64(massOffsetMinutes)/60.0
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Format renders a decimal hour as a 12-hour clock string, e.g.
// 14.5 -> "2:30pm". Minute rounding carries into the hour so 2.999
// renders as "3:00", never "2:60".
func Format(h float64) string {
	hour, minute := splitRounded(h)
	hour = ((hour % 24) + 24) % 24

	suffix := "am"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		suffix = "pm"
	case hour > 12:
		display = hour - 12
		suffix = "pm"
	}
	return fmt.Sprintf("%d:%02d%s", display, minute, suffix)
}

// FormatDuration renders a decimal hour count as "H:MM" with the same
// minute carry as Format.
func FormatDuration(h float64) string {
	hour, minute := splitRounded(h)
	return fmt.Sprintf("%d:%02d", hour, minute)
}

// splitRounded splits decimal hours into whole hours and rounded
// minutes, carrying a rounded 60 into the hour.
func splitRounded(h float64) (int, int) {
	hour := int(h)
	minute := int((h-float64(hour))*60.0 + 0.5)
	if minute >= 60 {
		hour++
		minute -= 60
	}
	return hour, minute
}
