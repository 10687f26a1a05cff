package server

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/marathonwx/raceday/internal/racewindow"
	"github.com/marathonwx/raceday/internal/types"
	"github.com/marathonwx/raceday/pkg/heatstress"
	"github.com/marathonwx/raceday/pkg/responseformat"
	"github.com/marathonwx/raceday/pkg/timecode"
)

// DefaultDurationHours is the projected finish duration used when the
// request does not specify one.
const DefaultDurationHours = 4.0

// Handlers contains all HTTP handlers for the REST server
type Handlers struct {
	controller *Controller
	formatter  *responseformat.Formatter
}

// NewHandlers creates a new handlers instance
func NewHandlers(ctrl *Controller) *Handlers {
	return &Handlers{
		controller: ctrl,
		formatter:  responseformat.NewFormatter(),
	}
}

// ListRaces serves the race list with display metadata.
func (h *Handlers) ListRaces(w http.ResponseWriter, req *http.Request) {
	races := h.controller.Dataset.Races()
	out := make([]RaceInfo, 0, len(races))
	for i := range races {
		out = append(out, h.raceInfo(&races[i]))
	}
	h.formatter.WriteResponse(w, req, out)
}

// GetRace serves one race's full multi-year history.
func (h *Handlers) GetRace(w http.ResponseWriter, req *http.Request) {
	race := h.raceFromRequest(w, req)
	if race == nil {
		return
	}
	h.formatter.WriteResponse(w, req, map[string]any{
		"info":    h.raceInfo(race),
		"history": race.History,
	})
}

// GetWindow serves the window summary for one year:
// /api/races/{id}/window?year=2019&mode=mass&duration=3.5&metric=sum&unit=F
func (h *Handlers) GetWindow(w http.ResponseWriter, req *http.Request) {
	race := h.raceFromRequest(w, req)
	if race == nil {
		return
	}

	q := newQueryParams(req)
	year, err := strconv.Atoi(req.URL.Query().Get("year"))
	if err != nil {
		h.formatter.WriteError(w, http.StatusBadRequest, "year is required")
		return
	}
	ys := race.SeriesForYear(year)
	if ys == nil {
		h.formatter.WriteError(w, http.StatusNotFound, "no data for that year")
		return
	}

	startHour := timecode.StartHour(ys.StartTimes(), q.mode, h.massOffset(race.ID, q.mode))
	endHour := startHour + q.duration
	sum := racewindow.Summarize(ys.Samples, startHour, endHour, q.metric, q.unit)

	stops := make([]StopResponse, 0, len(sum.Stops))
	for _, s := range sum.Stops {
		stops = append(stops, StopResponse{
			Val:      s.Val,
			RawSumF:  s.RawSumF,
			Category: s.Category.String(),
			Color:    heatstress.CategoryColor(s.Category),
		})
	}

	h.formatter.WriteResponse(w, req, WindowResponse{
		RaceID:     race.ID,
		Year:       year,
		Mode:       q.mode.String(),
		Metric:     q.metric.String(),
		Unit:       q.unit.String(),
		StartHour:  startHour,
		EndHour:    endHour,
		StartClock: timecode.Format(startHour),
		EndClock:   timecode.Format(endHour),
		Duration:   timecode.FormatDuration(q.duration),
		MinVal:     sum.MinVal,
		MaxVal:     sum.MaxVal,
		Stops:      stops,
	})
}

// GetPaths serves every year's overlay curve for the race:
// /api/races/{id}/paths?mode=mass&duration=3.5&metric=sum&unit=F
func (h *Handlers) GetPaths(w http.ResponseWriter, req *http.Request) {
	race := h.raceFromRequest(w, req)
	if race == nil {
		return
	}
	q := newQueryParams(req)

	out := PathsResponse{
		RaceID: race.ID,
		Mode:   q.mode.String(),
		Metric: q.metric.String(),
		Unit:   q.unit.String(),
	}

	for _, ys := range race.History {
		startHour := timecode.StartHour(ys.StartTimes(), q.mode, h.massOffset(race.ID, q.mode))
		path := racewindow.BuildPath(ys.Samples, startHour, startHour+q.duration)
		if path == nil {
			// Years without enough data draw no curve.
			continue
		}

		points := make([]PointResponse, 0, len(path))
		for _, p := range path {
			points = append(points, PointResponse{
				Hour:  p.Hour,
				TempF: p.TempF,
				DewF:  p.DewF,
				Val:   heatstress.Derive(p.TempF, p.DewF, q.metric, q.unit),
			})
		}

		segs := racewindow.CurveSegments(path)
		segments := make([]SegmentResponse, 0, len(segs))
		for _, s := range segs {
			segments = append(segments, SegmentResponse{
				FromHour: s.From.Hour,
				ToHour:   s.To.Hour,
				CtrlHour: s.CtrlHour,
			})
		}

		out.Years = append(out.Years, YearPathResponse{
			Year:      ys.Year,
			StartHour: startHour,
			Points:    points,
			Segments:  segments,
		})
	}

	h.formatter.WriteResponse(w, req, out)
}

// GetClimatology serves multi-year stats for the race window.
func (h *Handlers) GetClimatology(w http.ResponseWriter, req *http.Request) {
	race := h.raceFromRequest(w, req)
	if race == nil {
		return
	}
	q := newQueryParams(req)

	c := racewindow.Climatize(race.History, q.mode, h.massOffset(race.ID, q.mode), q.duration, q.metric, q.unit)

	years := make([]ClimatologyYearResponse, 0, len(c.Years))
	for _, y := range c.Years {
		years = append(years, ClimatologyYearResponse{
			Year:       y.Year,
			StartHour:  y.StartHour,
			StartClock: timecode.Format(y.StartHour),
			StartVal:   y.StartVal,
			MaxVal:     y.MaxVal,
			Category:   y.Category.String(),
		})
	}

	h.formatter.WriteResponse(w, req, ClimatologyResponse{
		RaceID:       race.ID,
		Mode:         q.mode.String(),
		Metric:       q.metric.String(),
		Unit:         q.unit.String(),
		MeanStart:    c.MeanStart,
		StdDevStart:  c.StdDevStart,
		MeanMax:      c.MeanMax,
		StdDevMax:    c.StdDevMax,
		WorstMax:     c.WorstMax,
		WorstYear:    c.WorstYear,
		CautionYears: c.CautionYears,
		DangerYears:  c.DangerYears,
		Years:        years,
	})
}

// raceFromRequest resolves the {id} route variable, writing a 404 and
// returning nil when the race is unknown.
func (h *Handlers) raceFromRequest(w http.ResponseWriter, req *http.Request) *types.RaceDataset {
	id := mux.Vars(req)["id"]
	race := h.controller.Dataset.Race(id)
	if race == nil {
		h.formatter.WriteError(w, http.StatusNotFound, "unknown race")
	}
	return race
}

// raceInfo merges dataset identity with configured display metadata.
func (h *Handlers) raceInfo(race *types.RaceDataset) RaceInfo {
	info := RaceInfo{
		ID:       race.ID,
		Name:     race.Race,
		Location: race.Location,
		Years:    make([]int, 0, len(race.History)),
	}
	for _, ys := range race.History {
		info.Years = append(info.Years, ys.Year)
	}
	if meta := h.controller.raceMetadata(race.ID); meta != nil {
		if meta.Name != "" {
			info.Name = meta.Name
		}
		info.Flag = meta.Flag
		info.Footnote = meta.Footnote
	}
	return info
}

// massOffset returns the configured wave offset in minutes; it only
// applies to the mass start.
func (h *Handlers) massOffset(raceID string, mode timecode.StartMode) int {
	if mode != timecode.ModeMass {
		return 0
	}
	if meta := h.controller.raceMetadata(raceID); meta != nil {
		return meta.MassOffsetMinutes
	}
	return 0
}

// queryParams are the common display-selection parameters.
type queryParams struct {
	mode     timecode.StartMode
	metric   heatstress.Metric
	unit     heatstress.Unit
	duration float64
}

func newQueryParams(req *http.Request) queryParams {
	q := req.URL.Query()
	p := queryParams{
		mode:     timecode.ParseMode(q.Get("mode")),
		metric:   heatstress.ParseMetric(q.Get("metric")),
		unit:     heatstress.ParseUnit(q.Get("unit")),
		duration: DefaultDurationHours,
	}
	if d, err := strconv.ParseFloat(q.Get("duration"), 64); err == nil && d > 0 {
		p.duration = d
	}
	return p
}
