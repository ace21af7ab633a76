package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icodeforyou/fasce-go/convert"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

// ReferencePriceRow is one hour of the day-ahead reference price (PUN)
// dataset, EUR/MWh.
type ReferencePriceRow struct {
	When  hours.DateHour
	Price float64
}

func (r ReferencePriceRow) TimePoint() types.TimePoint {
	return types.TimePoint{When: r.When, Value: r.Price}
}

func (d *Database) SaveReferencePrices(ctx context.Context, rows []ReferencePriceRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO reference_price (date, hour, price) VALUES (?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET price = excluded.price`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Price, 4))
		if err != nil {
			return fmt.Errorf("saving reference price for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetReferencePricesForYear(ctx context.Context, year int) ([]ReferencePriceRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, price
		FROM reference_price
		WHERE date >= ? AND date <= ?
		ORDER BY date, hour ASC`,
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("fetching reference prices for year %d: %w", year, err)
	}
	defer rows.Close()

	var prices []ReferencePriceRow
	for rows.Next() {
		var rp ReferencePriceRow
		err := rows.Scan(&rp.When.Date, &rp.When.Hour, &rp.Price)
		if err != nil {
			d.logger.Error("error when scanning reference price row", slog.Any("error", err))
			return nil, err
		}
		prices = append(prices, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading reference price rows: %w", err)
	}

	return prices, nil
}

// ReferenceYears lists the years a reference dataset exists for, most
// recent first.
func (d *Database) ReferenceYears(ctx context.Context) ([]int, error) {
	rows, err := d.read.QueryContext(ctx, `
		SELECT DISTINCT substr(date, 1, 4)
		FROM reference_price
		ORDER BY 1 DESC`)
	if err != nil {
		return nil, fmt.Errorf("fetching reference years: %w", err)
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("scanning reference year: %w", err)
		}
		years = append(years, year)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading reference year rows: %w", err)
	}

	return years, nil
}
