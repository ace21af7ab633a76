package aggregate

import (
	"github.com/icodeforyou/fasce-go/band"
	"github.com/icodeforyou/fasce-go/convert"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/types"
	"github.com/icodeforyou/fasce-go/types/maybe"
)

// Row is the aggregate for one band. MeanPrice stays in EUR/MWh, the
// canonical unit; the EUR/kWh view is derived on demand. A band with no
// price points has an absent mean, never a fabricated zero, while the
// total energy of an empty band is legitimately zero.
type Row struct {
	Band        band.Band
	PricePoints int
	MeanPrice   maybe.Maybe[float64] // EUR/MWh
	TotalEnergy maybe.Maybe[float64] // kWh
	Cost        maybe.Maybe[float64] // EUR
}

// MeanPriceKWh is the EUR/kWh presentation view of the mean price.
func (r Row) MeanPriceKWh() maybe.Maybe[float64] {
	if !r.MeanPrice.IsValid() {
		return maybe.None[float64]()
	}
	return maybe.Some(convert.MWhToKWh(r.MeanPrice.Value()))
}

// Result holds one row per band plus the F0 whole-period row. F0 is the
// aggregate over all points regardless of band; it is not derived from
// the three band rows.
type Result struct {
	Rows []Row
}

// Row returns the aggregate for a band (F0 included).
func (r Result) Row(b band.Band) (Row, bool) {
	for _, row := range r.Rows {
		if row.Band == b {
			return row, true
		}
	}
	return Row{}, false
}

// Partition splits an hourly-aligned series by band for a reporting
// period. Every point lands in exactly one band.
func Partition(cal *holiday.Calendar, points []types.TimePoint) map[band.Band][]types.TimePoint {
	banded := make(map[band.Band][]types.TimePoint)
	for _, p := range points {
		b := band.ForHour(cal, p.When)
		banded[b] = append(banded[b], p)
	}
	return banded
}

// Compute reduces an hourly-aligned price series and/or consumption
// series into per-band aggregates. Either series may be nil; cost is
// only defined where both are present.
func Compute(cal *holiday.Calendar, prices []types.TimePoint, consumption []types.TimePoint) Result {
	bandedPrices := Partition(cal, prices)
	bandedEnergy := Partition(cal, consumption)

	res := Result{Rows: make([]Row, 0, len(band.All)+1)}
	res.Rows = append(res.Rows, computeRow(band.F0, prices, consumption, len(consumption) > 0))
	for _, b := range band.All {
		res.Rows = append(res.Rows, computeRow(b, bandedPrices[b], bandedEnergy[b], len(consumption) > 0))
	}
	return res
}

func computeRow(b band.Band, prices []types.TimePoint, energy []types.TimePoint, haveEnergy bool) Row {
	row := Row{
		Band:        b,
		PricePoints: len(prices),
		MeanPrice:   meanValue(prices),
		TotalEnergy: maybe.None[float64](),
		Cost:        maybe.None[float64](),
	}

	if haveEnergy {
		total := 0.0
		for _, p := range energy {
			total += p.Value
		}
		row.TotalEnergy = maybe.Some(total)
	}

	if row.MeanPrice.IsValid() && row.TotalEnergy.IsValid() {
		// Energy is in kWh, so the price is brought to EUR/kWh first.
		row.Cost = maybe.Some(convert.MWhToKWh(row.MeanPrice.Value()) * row.TotalEnergy.Value())
	}

	return row
}

func meanValue(points []types.TimePoint) maybe.Maybe[float64] {
	if len(points) == 0 {
		return maybe.None[float64]()
	}
	sum := 0.0
	for _, p := range points {
		sum += p.Value
	}
	return maybe.Some(sum / float64(len(points)))
}
