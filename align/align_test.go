package align

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

func quarterPoints(date string, hour uint8, values ...float64) []types.TimePoint {
	pts := make([]types.TimePoint, 0, len(values))
	for _, v := range values {
		pts = append(pts, types.TimePoint{
			When:  hours.DateHour{Date: date, Hour: hour},
			Value: v,
		})
	}
	return pts
}

func TestHourlySumsConsumption(t *testing.T) {
	// Four quarter-hour samples of 0.5 kWh fold into one hourly point
	// of 2.0 kWh.
	pts := quarterPoints("2025-01-08", 10, 0.5, 0.5, 0.5, 0.5)

	res, err := Hourly(types.SeriesConsumption, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 1 {
		t.Fatalf("expected 1 aligned point, got %d", len(res.Points))
	}
	if !almostEqual(res.Points[0].Value, 2.0) {
		t.Errorf("expected summed energy 2.0, got %f", res.Points[0].Value)
	}
}

func TestHourlyAveragesPrice(t *testing.T) {
	// Four co-located price samples of 100 align to 100, not 400.
	pts := quarterPoints("2025-01-08", 10, 100, 100, 100, 100)

	res, err := Hourly(types.SeriesPrice, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(res.Points[0].Value, 100) {
		t.Errorf("expected mean price 100, got %f", res.Points[0].Value)
	}
}

func TestHourlyDropsOutOfPeriod(t *testing.T) {
	pts := []types.TimePoint{
		{When: hours.DateHour{Date: "2025-01-08", Hour: 10}, Value: 1},
		{When: hours.DateHour{Date: "2025-02-01", Hour: 0}, Value: 1},  // next month
		{When: hours.DateHour{Date: "2024-01-08", Hour: 10}, Value: 1}, // wrong year
	}

	res, err := Hourly(types.SeriesConsumption, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Dropped != 2 {
		t.Errorf("expected 2 dropped samples, got %d", res.Dropped)
	}
	if len(res.Points) != 1 {
		t.Errorf("expected 1 aligned point, got %d", len(res.Points))
	}
}

func TestHourlyEmptyPeriod(t *testing.T) {
	pts := quarterPoints("2025-01-08", 10, 1, 2)

	_, err := Hourly(types.SeriesPrice, pts, 2025, time.June)
	if err == nil {
		t.Fatalf("expected an empty-period error")
	}
	var empty *EmptyAlignmentError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyAlignmentError, got %T", err)
	}
	if empty.Year != 2025 || empty.Month != time.June {
		t.Errorf("error should carry the requested period, got %d-%d", empty.Year, empty.Month)
	}
}

func TestHourlyOrdersGrid(t *testing.T) {
	pts := []types.TimePoint{
		{When: hours.DateHour{Date: "2025-01-02", Hour: 0}, Value: 3},
		{When: hours.DateHour{Date: "2025-01-01", Hour: 23}, Value: 2},
		{When: hours.DateHour{Date: "2025-01-01", Hour: 5}, Value: 1},
	}

	res, err := Hourly(types.SeriesConsumption, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(res.Points); i++ {
		if res.Points[i-1].When.Compare(res.Points[i].When) >= 0 {
			t.Errorf("aligned grid is not strictly increasing at index %d", i)
		}
	}
}

func TestHourlyIdempotent(t *testing.T) {
	pts := quarterPoints("2025-01-08", 10, 0.4, 0.6, 0.5, 0.5)

	first, err := Hourly(types.SeriesConsumption, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Hourly(types.SeriesConsumption, pts, 2025, time.January)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(first.Points) != len(second.Points) {
		t.Fatalf("reruns disagree on point count")
	}
	for i := range first.Points {
		if first.Points[i] != second.Points[i] {
			t.Errorf("reruns disagree at index %d", i)
		}
	}
}

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}
