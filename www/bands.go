package www

import (
	"context"
	"errors"
	"time"

	"github.com/icodeforyou/fasce-go/aggregate"
	"github.com/icodeforyou/fasce-go/align"
	"github.com/icodeforyou/fasce-go/band"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/types"
	"github.com/icodeforyou/fasce-go/types/maybe"
)

type bandTemplRow struct {
	Band         band.Band
	PricePoints  int
	MeanPrice    maybe.Maybe[float64] // EUR/MWh
	MeanPriceKWh maybe.Maybe[float64] // EUR/kWh
	TotalEnergy  maybe.Maybe[float64] // kWh
	Cost         maybe.Maybe[float64] // EUR
	IsTotal      bool
}

type bandsTemplData struct {
	Year          int
	Month         time.Month
	Years         []int
	Rows          []bandTemplRow
	PriceDropped  int
	EnergyDropped int
	Empty         bool
	Result        aggregate.Result
}

func bandTemplRows(res aggregate.Result) []bandTemplRow {
	rows := make([]bandTemplRow, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, bandTemplRow{
			Band:         row.Band,
			PricePoints:  row.PricePoints,
			MeanPrice:    row.MeanPrice,
			MeanPriceKWh: row.MeanPriceKWh(),
			TotalEnergy:  row.TotalEnergy,
			Cost:         row.Cost,
			IsTotal:      row.Band == band.F0,
		})
	}
	return rows
}

// computeBands aggregates the stored reference prices, and the metered
// consumption when there is any, for one reporting month.
func computeBands(ctx context.Context, cache pricesAndEnergy, cal *holiday.Calendar, year int, month time.Month) (bandsTemplData, error) {
	data := bandsTemplData{Year: year, Month: month}

	prices, err := cache.Prices(ctx, year)
	if err != nil {
		return data, err
	}
	energy, err := cache.Energy(ctx, year)
	if err != nil {
		return data, err
	}

	priceRes, err := align.Hourly(types.SeriesPrice, prices, year, month)
	if err != nil {
		var empty *align.EmptyAlignmentError
		if errors.As(err, &empty) {
			data.Empty = true
			return data, nil
		}
		return data, err
	}
	data.PriceDropped = priceRes.Dropped

	var energyPoints []types.TimePoint
	if len(energy) > 0 {
		energyRes, err := align.Hourly(types.SeriesConsumption, energy, year, month)
		if err != nil {
			var empty *align.EmptyAlignmentError
			if !errors.As(err, &empty) {
				return data, err
			}
		} else {
			energyPoints = energyRes.Points
			data.EnergyDropped = energyRes.Dropped
		}
	}

	data.Result = aggregate.Compute(cal, priceRes.Points, energyPoints)
	data.Rows = bandTemplRows(data.Result)
	return data, nil
}

// pricesAndEnergy is what the handlers need from the year cache.
type pricesAndEnergy interface {
	Prices(ctx context.Context, year int) ([]types.TimePoint, error)
	Energy(ctx context.Context, year int) ([]types.TimePoint, error)
}
