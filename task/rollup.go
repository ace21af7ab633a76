package task

import (
	"context"
	"log/slog"
	"time"

	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/meter"
)

// NewRollupTask folds completed hours of the quarter-hour meter buffer
// into the meter_energy table. The current hour is still accumulating,
// so only hours strictly before it are drained.
func NewRollupTask(
	logger *slog.Logger,
	db *database.Database,
	cache *database.YearCache,
	buffer *meter.Buffer,
) func() {
	return func() {
		logger.Debug("running rollup task...")

		drained := buffer.DrainBefore(hours.FromNow())
		if len(drained) == 0 {
			logger.Debug("no completed hours to roll up")
			return
		}

		rows := make([]database.MeterEnergyRow, 0, len(drained))
		for dh, total := range drained {
			rows = append(rows, database.MeterEnergyRow{When: dh, Energy: total})
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := db.SaveMeterEnergy(ctx, rows); err != nil {
			logger.Error("rollup task error, saving meter energy", slog.Any("error", err))
			return
		}

		for _, row := range rows {
			cache.Invalidate(row.When.Year())
		}

		logger.Info("rollup task done", slog.Int("noOfHours", len(rows)))
	}
}
