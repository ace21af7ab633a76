package task

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/gme"
	"github.com/icodeforyou/fasce-go/types"
)

// NewRefreshTask re-scans the tariff data directory for GME price
// extracts and upserts them into the reference dataset. Touched years
// are invalidated in the cache and reported through onRefresh so open
// pages can re-render.
func NewRefreshTask(
	logger *slog.Logger,
	db *database.Database,
	cache *database.YearCache,
	onRefresh func(years []int),
	cnfg config.AppConfigTariff,
) func() {
	layout := gme.Layout{
		DateColumn:  cnfg.GetPriceDateColumn(),
		HourColumn:  cnfg.GetPriceHourColumn(),
		ValueColumn: cnfg.GetPriceValueColumn(),
	}

	return func() {
		logger.Debug("running refresh task...")

		dir := filepath.Join(cnfg.DataDir, "prices")
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Warn("can't read price extract directory", slog.String("dir", dir), slog.Any("error", err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		touched := make(map[int]bool)
		files := 0
		dropped := 0

		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(entry.Name()))
			if ext != ".csv" && ext != ".xlsx" {
				continue
			}

			path := filepath.Join(dir, entry.Name())
			res, err := gme.ReadFile(path, types.SeriesPrice, layout)
			if err != nil {
				logger.Error("can't parse price extract", slog.String("file", entry.Name()), slog.Any("error", err))
				continue
			}

			rows := make([]database.ReferencePriceRow, 0, len(res.Points))
			for _, p := range res.Points {
				rows = append(rows, database.ReferencePriceRow{When: p.When, Price: p.Value})
				touched[p.When.Year()] = true
			}
			if err := db.SaveReferencePrices(ctx, rows); err != nil {
				logger.Error("can't save reference prices", slog.String("file", entry.Name()), slog.Any("error", err))
				continue
			}

			files++
			dropped += res.Dropped
		}

		years := make([]int, 0, len(touched))
		for year := range touched {
			cache.Invalidate(year)
			years = append(years, year)
		}
		slices.Sort(years)

		if len(years) > 0 && onRefresh != nil {
			onRefresh(years)
		}

		logger.Info("refresh task done",
			slog.Int("files", files),
			slog.Int("droppedRows", dropped),
			slog.Int("yearsTouched", len(years)))
	}
}
