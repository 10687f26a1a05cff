package racewindow

import (
	"math"
	"sort"
	"testing"

	"github.com/marathonwx/raceday/internal/types"
)

func TestBuildPath(t *testing.T) {
	path := BuildPath(threeHourSeries(), 8.5, 9.5)

	if len(path) != 3 {
		t.Fatalf("expected 3 path points (edges + one interior), got %d", len(path))
	}

	// Interpolated leading edge.
	if path[0].Hour != 8.5 || math.Abs(path[0].TempF-62.5) > 1e-9 || math.Abs(path[0].DewF-52.5) > 1e-9 {
		t.Errorf("start point = %+v, expected interpolated (8.5, 62.5, 52.5)", path[0])
	}
	// Raw interior sample.
	if path[1].Hour != 9.0 || path[1].TempF != 65 || path[1].DewF != 55 {
		t.Errorf("interior point = %+v, expected the raw 9:00 sample", path[1])
	}
	// Interpolated trailing edge.
	if path[2].Hour != 9.5 || math.Abs(path[2].TempF-67.5) > 1e-9 || math.Abs(path[2].DewF-56.5) > 1e-9 {
		t.Errorf("end point = %+v, expected interpolated (9.5, 67.5, 56.5)", path[2])
	}

	if !sort.SliceIsSorted(path, func(i, j int) bool { return path[i].Hour < path[j].Hour }) {
		t.Error("path points not ascending by hour")
	}
}

func TestBuildPathClampsBeyondSeries(t *testing.T) {
	// A view window wider than the data clamps the edges to the
	// first/last raw values.
	path := BuildPath(threeHourSeries(), 6.0, 13.0)
	if len(path) != 5 {
		t.Fatalf("expected 5 path points, got %d", len(path))
	}
	if path[0].TempF != 60 || path[len(path)-1].TempF != 70 {
		t.Errorf("edges = (%v, %v), expected clamped (60, 70)", path[0].TempF, path[len(path)-1].TempF)
	}
}

func TestBuildPathEmptySeries(t *testing.T) {
	if path := BuildPath(nil, 8.0, 12.0); path != nil {
		t.Errorf("empty series should yield no curve, got %d points", len(path))
	}
	if path := BuildPath([]types.WeatherSample{}, 8.0, 12.0); path != nil {
		t.Errorf("empty series should yield no curve, got %d points", len(path))
	}
}

func TestCurveSegments(t *testing.T) {
	path := BuildPath(threeHourSeries(), 8.0, 10.0)
	segs := CurveSegments(path)

	if len(segs) != len(path)-1 {
		t.Fatalf("expected %d segments, got %d", len(path)-1, len(segs))
	}
	for i, s := range segs {
		if s.From != path[i] || s.To != path[i+1] {
			t.Errorf("segment %d does not join consecutive path points", i)
		}
		wantCtrl := s.From.Hour + (s.To.Hour-s.From.Hour)/2
		if math.Abs(s.CtrlHour-wantCtrl) > 1e-9 {
			t.Errorf("segment %d control hour = %v, expected midpoint %v", i, s.CtrlHour, wantCtrl)
		}
	}
}

func TestCurveSegmentsDegenerate(t *testing.T) {
	if segs := CurveSegments(nil); segs != nil {
		t.Error("nil path should yield nil segments")
	}
	if segs := CurveSegments([]Point{{Hour: 9}}); segs != nil {
		t.Error("single-point path should yield nil segments")
	}
}
