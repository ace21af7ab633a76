package www

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/holiday"
)

func NewBandsHandler(
	logger *slog.Logger,
	db *database.Database,
	cache *database.YearCache,
	cal *holiday.Calendar,
	tm *TemplateManager,
	cnfg config.AppConfigTariff,
	refresh func(),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			w.Header().Set("Content-Type", "text/html")

			years, err := db.ReferenceYears(r.Context())
			if err != nil {
				logger.Error("handling bands request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			year, month := periodFromQuery(r.URL, defaultYear(cnfg, years), time.Now().Month())

			data, err := computeBands(r.Context(), cache, cal, year, month)
			if err != nil {
				logger.Error("handling bands request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			data.Years = years

			if err := tm.ExecuteToWriter("bands.html", data, &w); err != nil {
				logger.Error("handling bands request", slog.Any("error", err))
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}

		case http.MethodPost:
			refresh()
			w.WriteHeader(http.StatusAccepted)

		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}
}

// defaultYear is the configured reporting year, or the most recent year
// present in the reference dataset, or the current year when the
// dataset is still empty. ReferenceYears lists most recent first.
func defaultYear(cnfg config.AppConfigTariff, years []int) int {
	if cnfg.Year != 0 {
		return cnfg.Year
	}
	if len(years) > 0 {
		return years[0]
	}
	return time.Now().Year()
}
