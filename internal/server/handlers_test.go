package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"go.uber.org/zap"

	"github.com/marathonwx/raceday/internal/dataset"
	"github.com/marathonwx/raceday/pkg/config"
)

const testDatasetJSON = `[
  {
    "id": "boston",
    "race": "Boston Marathon",
    "location": "Boston, MA",
    "history": [
      {
        "year": 2019,
        "date": "2019-04-15",
        "start_time": "09:00",
        "weather": [
          {"datetime": "08:00:00", "temp": 60, "dew": 50, "windspeed": 5, "conditions": "Clear"},
          {"datetime": "09:00:00", "temp": 65, "dew": 55, "windspeed": 6, "conditions": "Clear"},
          {"datetime": "10:00:00", "temp": 70, "dew": 58, "windspeed": 7, "conditions": "Clear"}
        ]
      },
      {
        "year": 2020,
        "date": "2020-04-20",
        "start_time": "09:00",
        "weather": []
      }
    ]
  }
]`

// staticProvider satisfies config.ConfigProvider with fixed data.
type staticProvider struct {
	cfg config.ConfigData
}

func (p *staticProvider) LoadConfig() (*config.ConfigData, error)      { return &p.cfg, nil }
func (p *staticProvider) GetRaces() ([]config.RaceData, error)         { return p.cfg.Races, nil }
func (p *staticProvider) GetServerConfig() (*config.ServerData, error) { return &p.cfg.Server, nil }
func (p *staticProvider) GetFetchConfig() (*config.FetchData, error)   { return &p.cfg.Fetch, nil }
func (p *staticProvider) IsReadOnly() bool                             { return true }
func (p *staticProvider) Close() error                                 { return nil }

func newTestController(t *testing.T) *Controller {
	t.Helper()

	ds, err := dataset.Parse([]byte(testDatasetJSON))
	if err != nil {
		t.Fatalf("failed to parse test dataset: %v", err)
	}

	provider := &staticProvider{cfg: config.ConfigData{
		Races: []config.RaceData{
			{ID: "boston", Name: "Boston Marathon", Location: "Boston, MA", Flag: "🇺🇸", Footnote: "Point-to-point, net downhill."},
		},
	}}

	var wg sync.WaitGroup
	ctrl, err := NewController(context.Background(), &wg, provider, config.ServerData{}, ds, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("failed to create controller: %v", err)
	}
	return ctrl
}

func doRequest(t *testing.T, ctrl *Controller, url string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	rec := httptest.NewRecorder()
	ctrl.setupRouter().ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode response from %s: %v", url, err)
		}
	}
	return rec
}

func TestListRaces(t *testing.T) {
	ctrl := newTestController(t)

	var races []RaceInfo
	rec := doRequest(t, ctrl, "/api/races", &races)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if len(races) != 1 {
		t.Fatalf("expected 1 race, got %d", len(races))
	}
	r := races[0]
	if r.ID != "boston" || r.Flag != "🇺🇸" || r.Footnote == "" {
		t.Errorf("race metadata not merged: %+v", r)
	}
	if len(r.Years) != 2 || r.Years[0] != 2019 {
		t.Errorf("unexpected years: %v", r.Years)
	}
}

func TestGetWindow(t *testing.T) {
	ctrl := newTestController(t)

	var res WindowResponse
	rec := doRequest(t, ctrl, "/api/races/boston/window?year=2019&mode=mass&duration=1", &res)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	if res.StartHour != 9.0 || res.EndHour != 10.0 {
		t.Errorf("window = [%v, %v], expected [9, 10]", res.StartHour, res.EndHour)
	}
	if res.StartClock != "9:00am" || res.EndClock != "10:00am" {
		t.Errorf("clocks = (%q, %q)", res.StartClock, res.EndClock)
	}
	if res.Duration != "1:00" {
		t.Errorf("duration = %q, expected 1:00", res.Duration)
	}
	// 9:00 sum 120 (Caution) to 10:00 sum 128 (Danger).
	if math.Abs(res.MinVal-120) > 1e-9 || math.Abs(res.MaxVal-128) > 1e-9 {
		t.Errorf("extremes = (%v, %v), expected (120, 128)", res.MinVal, res.MaxVal)
	}
	if len(res.Stops) != 2 {
		t.Fatalf("expected 2 stops, got %d", len(res.Stops))
	}
	if res.Stops[0].Category != "Danger" || res.Stops[1].Category != "Caution" {
		t.Errorf("stop categories = (%s, %s)", res.Stops[0].Category, res.Stops[1].Category)
	}
	if res.Stops[0].Color == "" {
		t.Error("stops should carry colors")
	}
}

func TestGetWindowErrors(t *testing.T) {
	ctrl := newTestController(t)

	if rec := doRequest(t, ctrl, "/api/races/boston/window", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("missing year: status = %d, expected 400", rec.Code)
	}
	if rec := doRequest(t, ctrl, "/api/races/boston/window?year=1898", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown year: status = %d, expected 404", rec.Code)
	}
	if rec := doRequest(t, ctrl, "/api/races/nope/window?year=2019", nil); rec.Code != http.StatusNotFound {
		t.Errorf("unknown race: status = %d, expected 404", rec.Code)
	}
}

func TestGetPaths(t *testing.T) {
	ctrl := newTestController(t)

	var res PathsResponse
	rec := doRequest(t, ctrl, "/api/races/boston/paths?duration=1&metric=sum&unit=F", &res)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	// 2020 has no samples, so only 2019 draws a curve.
	if len(res.Years) != 1 || res.Years[0].Year != 2019 {
		t.Fatalf("expected a single 2019 curve, got %+v", res.Years)
	}

	y := res.Years[0]
	if len(y.Points) != 2 {
		t.Fatalf("expected 2 curve points for [9, 10], got %d", len(y.Points))
	}
	if y.Points[0].Val != 120 || y.Points[1].Val != 128 {
		t.Errorf("derived values = (%v, %v), expected (120, 128)", y.Points[0].Val, y.Points[1].Val)
	}
	if len(y.Segments) != 1 || y.Segments[0].CtrlHour != 9.5 {
		t.Errorf("unexpected segments: %+v", y.Segments)
	}
}

func TestGetClimatology(t *testing.T) {
	ctrl := newTestController(t)

	var res ClimatologyResponse
	rec := doRequest(t, ctrl, "/api/races/boston/climatology?duration=1", &res)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if len(res.Years) != 1 {
		t.Fatalf("expected 1 usable year, got %d", len(res.Years))
	}
	if res.Years[0].StartVal != 120 || res.MeanStart != 120 {
		t.Errorf("start stats = (%v, %v), expected (120, 120)", res.Years[0].StartVal, res.MeanStart)
	}
	if res.WorstYear != 2019 || res.WorstMax != 128 {
		t.Errorf("worst = (%d, %v), expected (2019, 128)", res.WorstYear, res.WorstMax)
	}
	if res.CautionYears != 1 {
		t.Errorf("caution years = %d, expected 1", res.CautionYears)
	}
}

func TestMsgpackFormatNegotiation(t *testing.T) {
	ctrl := newTestController(t)

	req := httptest.NewRequest("GET", "/api/races?format=msgpack", nil)
	rec := httptest.NewRecorder()
	ctrl.setupRouter().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-msgpack" {
		t.Errorf("Content-Type = %q, expected application/x-msgpack", ct)
	}
}
