package aggregate

import (
	"math"
	"testing"

	"github.com/icodeforyou/fasce-go/band"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

// one week of January 2025 starting Monday the 6th (the 6th itself is
// Epifania, a holiday, so the 7th-16th give clean weekdays).
func weekdayPoint(hour uint8, value float64) types.TimePoint {
	return types.TimePoint{When: hours.DateHour{Date: "2025-01-08", Hour: hour}, Value: value}
}

func saturdayPoint(hour uint8, value float64) types.TimePoint {
	return types.TimePoint{When: hours.DateHour{Date: "2025-01-04", Hour: hour}, Value: value}
}

func sundayPoint(hour uint8, value float64) types.TimePoint {
	return types.TimePoint{When: hours.DateHour{Date: "2025-01-05", Hour: hour}, Value: value}
}

func TestComputeMeansPerBand(t *testing.T) {
	cal := holiday.NewCalendar()

	prices := []types.TimePoint{
		weekdayPoint(10, 120), // F1
		weekdayPoint(12, 140), // F1
		weekdayPoint(7, 100),  // F2
		sundayPoint(10, 80),   // F3
	}

	res := Compute(cal, prices, nil)

	f1, _ := res.Row(band.F1)
	if !almostEqual(f1.MeanPrice.Value(), 130) {
		t.Errorf("F1 mean expected 130, got %f", f1.MeanPrice.Value())
	}
	f2, _ := res.Row(band.F2)
	if !almostEqual(f2.MeanPrice.Value(), 100) {
		t.Errorf("F2 mean expected 100, got %f", f2.MeanPrice.Value())
	}
	f3, _ := res.Row(band.F3)
	if !almostEqual(f3.MeanPrice.Value(), 80) {
		t.Errorf("F3 mean expected 80, got %f", f3.MeanPrice.Value())
	}

	// F0 is the whole-period mean, weighted by point counts: (120+140+100+80)/4.
	f0, _ := res.Row(band.F0)
	if !almostEqual(f0.MeanPrice.Value(), 110) {
		t.Errorf("F0 mean expected 110, got %f", f0.MeanPrice.Value())
	}

	// And it is NOT the simple average of the three band means,
	// which would be (130+100+80)/3.
	naive := (130.0 + 100.0 + 80.0) / 3.0
	if almostEqual(f0.MeanPrice.Value(), naive) {
		t.Errorf("F0 mean must be point-weighted, not the average of band means")
	}
}

func TestComputeEnergySumLaw(t *testing.T) {
	cal := holiday.NewCalendar()

	consumption := []types.TimePoint{
		weekdayPoint(10, 2.0),  // F1
		weekdayPoint(20, 1.5),  // F2
		weekdayPoint(2, 1.0),   // F3
		saturdayPoint(10, 0.5), // F2
		sundayPoint(3, 3.0),    // F3
	}

	res := Compute(cal, nil, consumption)

	sum := 0.0
	for _, b := range band.All {
		row, _ := res.Row(b)
		if !row.TotalEnergy.IsValid() {
			t.Fatalf("band %s has no energy total", b)
		}
		sum += row.TotalEnergy.Value()
	}
	f0, _ := res.Row(band.F0)
	if !almostEqual(sum, f0.TotalEnergy.Value()) {
		t.Errorf("band energies sum to %f, F0 total is %f", sum, f0.TotalEnergy.Value())
	}
	if !almostEqual(f0.TotalEnergy.Value(), 8.0) {
		t.Errorf("F0 total energy expected 8.0, got %f", f0.TotalEnergy.Value())
	}
}

func TestComputeEmptyBand(t *testing.T) {
	cal := holiday.NewCalendar()

	// Only Sunday points: F1 and F2 are empty.
	prices := []types.TimePoint{sundayPoint(10, 90)}
	consumption := []types.TimePoint{sundayPoint(10, 1.0)}

	res := Compute(cal, prices, consumption)

	f1, _ := res.Row(band.F1)
	if f1.MeanPrice.IsValid() {
		t.Errorf("empty band must have an absent mean, got %f", f1.MeanPrice.Value())
	}
	if !f1.TotalEnergy.IsValid() || f1.TotalEnergy.Value() != 0 {
		t.Errorf("empty band energy total expected 0")
	}
	if f1.Cost.IsValid() {
		t.Errorf("empty band must not have a cost")
	}
}

func TestComputeCost(t *testing.T) {
	cal := holiday.NewCalendar()

	// 100 EUR/MWh mean with 2 kWh total: cost 0.2 EUR.
	prices := []types.TimePoint{weekdayPoint(10, 100)}
	consumption := []types.TimePoint{weekdayPoint(10, 2.0)}

	res := Compute(cal, prices, consumption)
	f1, _ := res.Row(band.F1)
	if !almostEqual(f1.Cost.Value(), 0.2) {
		t.Errorf("F1 cost expected 0.2, got %f", f1.Cost.Value())
	}
}

func TestMeanPriceKWhView(t *testing.T) {
	cal := holiday.NewCalendar()

	prices := []types.TimePoint{weekdayPoint(10, 132.5)}
	res := Compute(cal, prices, nil)

	f1, _ := res.Row(band.F1)
	if !almostEqual(f1.MeanPriceKWh().Value(), 0.1325) {
		t.Errorf("EUR/kWh view expected 0.1325, got %f", f1.MeanPriceKWh().Value())
	}
	// Canonical unit is untouched.
	if !almostEqual(f1.MeanPrice.Value(), 132.5) {
		t.Errorf("canonical EUR/MWh mean changed")
	}

	f2, _ := res.Row(band.F2)
	if f2.MeanPriceKWh().IsValid() {
		t.Errorf("absent mean must stay absent in the kWh view")
	}
}

func TestComputeIdempotent(t *testing.T) {
	cal := holiday.NewCalendar()

	prices := []types.TimePoint{
		weekdayPoint(10, 120),
		saturdayPoint(10, 100),
		sundayPoint(10, 80),
	}

	first := Compute(cal, prices, nil)
	second := Compute(cal, prices, nil)
	if len(first.Rows) != len(second.Rows) {
		t.Fatalf("reruns disagree on row count")
	}
	for i := range first.Rows {
		a, b := first.Rows[i], second.Rows[i]
		if a.Band != b.Band || a.MeanPrice != b.MeanPrice || a.TotalEnergy != b.TotalEnergy {
			t.Errorf("reruns disagree on band %s", a.Band)
		}
	}
}

func almostEqual(f1 float64, f2 float64) bool {
	return math.Abs(f1-f2) < 1e-9
}
