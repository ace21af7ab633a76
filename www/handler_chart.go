package www

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/convert"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/www/chartjs"
)

func NewChartHandler(
	logger *slog.Logger,
	cache *database.YearCache,
	cal *holiday.Calendar,
	cnfg config.AppConfigTariff,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		fallbackYear := cnfg.Year
		if fallbackYear == 0 {
			fallbackYear = time.Now().Year()
		}
		year, month := periodFromQuery(r.URL, fallbackYear, time.Now().Month())

		data, err := computeBands(r.Context(), cache, cal, year, month)
		if err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		labels := make([]string, len(data.Rows))
		for i, row := range data.Rows {
			labels[i] = string(row.Band)
		}

		title := fmt.Sprintf("%d-%02d", year, int(month))
		chart := chartjs.NewBarChart(title, labels, "Mean price (EUR/MWh)", "Energy (kWh)")
		maxEnergy := 0.0
		for i, row := range data.Rows {
			if row.MeanPrice.IsValid() {
				v := convert.TwoDecimals(row.MeanPrice.Value())
				chart.Data.Datasets[0].Data[i] = &v
			}
			if row.TotalEnergy.IsValid() {
				v := convert.TwoDecimals(row.TotalEnergy.Value())
				chart.Data.Datasets[1].Data[i] = &v
				maxEnergy = max(maxEnergy, v)
			}
		}

		chart.Options.Scales["YAxis1"] = chart.Options.Scales["YAxis1"].
			WithTitle("Mean price (EUR/MWh)")
		energyAxis := chart.Options.Scales["YAxis2"].WithTitle("Energy (kWh)")
		if maxEnergy > 0 {
			maxEnergy = math.Ceil(maxEnergy/2) * 2 // Round up to nearest even number
			energyAxis = energyAxis.WithMinAndMax(0, maxEnergy)
		}
		chart.Options.Scales["YAxis2"] = energyAxis

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode([]chartjs.Chart{chart}); err != nil {
			logger.Error("handling chart request", slog.Any("error", err))
			http.Error(w, "unable to encode chart", http.StatusInternalServerError)
			return
		}
	}
}
