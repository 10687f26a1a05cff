package server

// RaceInfo is the race list entry served to the frontend: dataset
// identity plus the configured display metadata.
type RaceInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Flag     string `json:"flag,omitempty"`
	Footnote string `json:"footnote,omitempty"`
	Years    []int  `json:"years"`
}

// StopResponse is one gradient stop of a window summary.
type StopResponse struct {
	Val      float64 `json:"val"`
	RawSumF  float64 `json:"rawSumF"`
	Category string  `json:"category"`
	Color    string  `json:"color"`
}

// WindowResponse is the summary of one year's race window.
type WindowResponse struct {
	RaceID     string         `json:"raceId"`
	Year       int            `json:"year"`
	Mode       string         `json:"mode"`
	Metric     string         `json:"metric"`
	Unit       string         `json:"unit"`
	StartHour  float64        `json:"startHour"`
	EndHour    float64        `json:"endHour"`
	StartClock string         `json:"startClock"`
	EndClock   string         `json:"endClock"`
	Duration   string         `json:"duration"`
	MinVal     float64        `json:"minVal"`
	MaxVal     float64        `json:"maxVal"`
	Stops      []StopResponse `json:"stops"`
}

// PointResponse is one overlay curve point: the raw pair plus the
// derived display value under the requested metric and unit.
type PointResponse struct {
	Hour  float64 `json:"hour"`
	TempF float64 `json:"tempF"`
	DewF  float64 `json:"dewF"`
	Val   float64 `json:"val"`
}

// SegmentResponse is a cubic smoothing hint between adjacent points:
// control points sit at ctrlHour horizontally and match each
// endpoint's value vertically.
type SegmentResponse struct {
	FromHour float64 `json:"fromHour"`
	ToHour   float64 `json:"toHour"`
	CtrlHour float64 `json:"ctrlHour"`
}

// YearPathResponse is one year's overlay curve.
type YearPathResponse struct {
	Year      int               `json:"year"`
	StartHour float64           `json:"startHour"`
	Points    []PointResponse   `json:"points"`
	Segments  []SegmentResponse `json:"segments"`
}

// PathsResponse carries the overlay curves for every recorded year.
type PathsResponse struct {
	RaceID string             `json:"raceId"`
	Mode   string             `json:"mode"`
	Metric string             `json:"metric"`
	Unit   string             `json:"unit"`
	Years  []YearPathResponse `json:"years"`
}

// ClimatologyYearResponse is one year's row of the climatology table.
type ClimatologyYearResponse struct {
	Year       int     `json:"year"`
	StartHour  float64 `json:"startHour"`
	StartClock string  `json:"startClock"`
	StartVal   float64 `json:"startVal"`
	MaxVal     float64 `json:"maxVal"`
	Category   string  `json:"category"`
}

// ClimatologyResponse aggregates window conditions across all years.
type ClimatologyResponse struct {
	RaceID       string                    `json:"raceId"`
	Mode         string                    `json:"mode"`
	Metric       string                    `json:"metric"`
	Unit         string                    `json:"unit"`
	MeanStart    float64                   `json:"meanStart"`
	StdDevStart  float64                   `json:"stdDevStart"`
	MeanMax      float64                   `json:"meanMax"`
	StdDevMax    float64                   `json:"stdDevMax"`
	WorstMax     float64                   `json:"worstMax"`
	WorstYear    int                       `json:"worstYear"`
	CautionYears int                       `json:"cautionYears"`
	DangerYears  int                       `json:"dangerYears"`
	Years        []ClimatologyYearResponse `json:"years"`
}
