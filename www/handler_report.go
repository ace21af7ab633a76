package www

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/database"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/report"
)

type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatPDF  ReportFormat = "pdf"
)

func NewReportHandler(
	logger *slog.Logger,
	cache *database.YearCache,
	cal *holiday.Calendar,
	cnfg config.AppConfigTariff,
	format ReportFormat,
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
			logger.Error("handling report request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if data.Empty {
			http.Error(w, "no data for the selected period", http.StatusNotFound)
			return
		}

		var document []byte
		switch format {
		case ReportFormatXLSX:
			document, err = report.BuildBandsXLSX(year, month, data.Result)
			w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		case ReportFormatPDF:
			document, err = report.BuildBandsPDF(year, month, data.Result)
			w.Header().Set("Content-Type", "application/pdf")
		default:
			err = errors.New("unknown report format")
		}
		if err != nil {
			logger.Error("handling report request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("bands_%d-%02d.%s", year, int(month), format)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if _, err := w.Write(document); err != nil {
			logger.Error("handling report request", slog.Any("error", err))
		}
	}
}
