package types

import (
	"github.com/icodeforyou/fasce-go/hours"
)

// SeriesKind tags a series with its semantics. Prices average when folded
// onto an hourly grid, energy sums.
type SeriesKind string

const (
	// SeriesPrice is a day-ahead reference price series in EUR/MWh.
	SeriesPrice SeriesKind = "price"
	// SeriesConsumption is a metered energy series in kWh.
	SeriesConsumption SeriesKind = "consumption"
)

// TimePoint is one timestamped sample of a price or consumption series.
// The hour has already been normalized to the 0-23 interval-start
// convention by the adapter that produced it.
type TimePoint struct {
	When  hours.DateHour
	Value float64
}
