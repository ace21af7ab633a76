package align

import (
	"fmt"
	"slices"
	"time"

	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

// EmptyAlignmentError signals that no samples remained after filtering
// to the requested period. A "no data for period" condition for the
// caller, not a crash.
type EmptyAlignmentError struct {
	Year  int
	Month time.Month
}

func (e *EmptyAlignmentError) Error() string {
	return fmt.Sprintf("no data points for period %d-%02d", e.Year, int(e.Month))
}

// Result is an hourly-aligned series plus the number of input samples
// that were discarded on the way (outside the requested period).
type Result struct {
	Points  []types.TimePoint
	Dropped int
}

// Hourly folds a series of arbitrary sub-hourly granularity onto an
// hourly grid for one reporting period. Samples sharing a calendar hour
// are averaged for price series and summed for consumption series:
// energy is additive across quarter hours, price is not. Samples outside
// the period are dropped and counted, never an error; an entirely empty
// period is.
func Hourly(kind types.SeriesKind, points []types.TimePoint, year int, month time.Month) (Result, error) {
	sums := make(map[hours.DateHour]float64)
	counts := make(map[hours.DateHour]int)
	dropped := 0

	for _, p := range points {
		if !p.When.InMonth(year, month) {
			dropped++
			continue
		}
		sums[p.When] += p.Value
		counts[p.When]++
	}

	if len(sums) == 0 {
		return Result{Dropped: dropped}, &EmptyAlignmentError{Year: year, Month: month}
	}

	grid := make([]hours.DateHour, 0, len(sums))
	for dh := range sums {
		grid = append(grid, dh)
	}
	slices.SortFunc(grid, hours.DateHour.Compare)

	aligned := make([]types.TimePoint, 0, len(grid))
	for _, dh := range grid {
		v := sums[dh]
		if kind == types.SeriesPrice {
			v /= float64(counts[dh])
		}
		aligned = append(aligned, types.TimePoint{When: dh, Value: v})
	}

	return Result{Points: aligned, Dropped: dropped}, nil
}
