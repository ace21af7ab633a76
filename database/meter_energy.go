package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icodeforyou/fasce-go/convert"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

// MeterEnergyRow is one hour of metered consumption in kWh, already
// rolled up from the quarter-hour readings.
type MeterEnergyRow struct {
	When   hours.DateHour
	Energy float64
}

func (r MeterEnergyRow) TimePoint() types.TimePoint {
	return types.TimePoint{When: r.When, Value: r.Energy}
}

func (d *Database) SaveMeterEnergy(ctx context.Context, rows []MeterEnergyRow) error {
	for _, row := range rows {
		_, err := d.write.ExecContext(ctx, `
			INSERT INTO meter_energy (date, hour, energy) VALUES (?, ?, ?)
			ON CONFLICT(date, hour) DO UPDATE SET energy = excluded.energy`,
			row.When.Date,
			row.When.Hour,
			convert.RoundFloat64(row.Energy, 4))
		if err != nil {
			return fmt.Errorf("saving meter energy for %s: %w", row.When, err)
		}
	}
	return nil
}

func (d *Database) GetMeterEnergyForYear(ctx context.Context, year int) ([]MeterEnergyRow, error) {
	rows, err := d.read.QueryContext(ctx, `SELECT
		date, hour, energy
		FROM meter_energy
		WHERE date >= ? AND date <= ?
		ORDER BY date, hour ASC`,
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-12-31", year))
	if err != nil {
		return nil, fmt.Errorf("fetching meter energy for year %d: %w", year, err)
	}
	defer rows.Close()

	var energy []MeterEnergyRow
	for rows.Next() {
		var me MeterEnergyRow
		err := rows.Scan(&me.When.Date, &me.When.Hour, &me.Energy)
		if err != nil {
			d.logger.Error("error when scanning meter energy row", slog.Any("error", err))
			return nil, err
		}
		energy = append(energy, me)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading meter energy rows: %w", err)
	}

	return energy, nil
}
