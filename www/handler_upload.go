package www

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/icodeforyou/fasce-go/aggregate"
	"github.com/icodeforyou/fasce-go/align"
	"github.com/icodeforyou/fasce-go/config"
	"github.com/icodeforyou/fasce-go/gme"
	"github.com/icodeforyou/fasce-go/holiday"
	"github.com/icodeforyou/fasce-go/types"
)

const maxUploadBytes = 32 << 20

type uploadTemplData struct {
	Year          int
	Month         time.Month
	Rows          []bandTemplRow
	PriceDropped  int
	EnergyDropped int
	Empty         bool
	Error         string
}

// NewUploadHandler lets a user analyze ad hoc extracts without going
// through the stored reference dataset. The price file is required, the
// quarter-hour consumption file is optional.
func NewUploadHandler(
	logger *slog.Logger,
	cal *holiday.Calendar,
	tm *TemplateManager,
	cnfg config.AppConfigTariff,
) http.HandlerFunc {
	priceLayout := gme.Layout{
		DateColumn:  cnfg.GetPriceDateColumn(),
		HourColumn:  cnfg.GetPriceHourColumn(),
		ValueColumn: cnfg.GetPriceValueColumn(),
	}

	renderError := func(w http.ResponseWriter, msg string) {
		data := uploadTemplData{Error: msg}
		if err := tm.ExecuteToWriter("upload_result.html", data, &w); err != nil {
			logger.Error("handling upload request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		w.Header().Set("Content-Type", "text/html")

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			renderError(w, "can't parse upload: "+err.Error())
			return
		}

		year, month := time.Now().Year(), time.Now().Month()
		if v, err := time.Parse("2006-01", r.FormValue("period")); err == nil {
			year, month = v.Year(), v.Month()
		}

		prices, err := parseUpload(r, "prices", types.SeriesPrice, priceLayout)
		if err != nil {
			renderError(w, "price extract: "+err.Error())
			return
		}
		if prices == nil {
			renderError(w, "a price extract is required")
			return
		}

		consumption, err := parseUpload(r, "consumption", types.SeriesConsumption, gme.DefaultConsumptionLayout)
		if err != nil {
			renderError(w, "consumption extract: "+err.Error())
			return
		}

		data := uploadTemplData{Year: year, Month: month}

		priceRes, err := align.Hourly(types.SeriesPrice, prices.Points, year, month)
		if err != nil {
			var empty *align.EmptyAlignmentError
			if errors.As(err, &empty) {
				data.Empty = true
				if err := tm.ExecuteToWriter("upload_result.html", data, &w); err != nil {
					logger.Error("handling upload request", slog.Any("error", err))
				}
				return
			}
			renderError(w, err.Error())
			return
		}
		data.PriceDropped = priceRes.Dropped + prices.Dropped

		var energyPoints []types.TimePoint
		if consumption != nil {
			energyRes, err := align.Hourly(types.SeriesConsumption, consumption.Points, year, month)
			if err != nil {
				var empty *align.EmptyAlignmentError
				if !errors.As(err, &empty) {
					renderError(w, err.Error())
					return
				}
			} else {
				energyPoints = energyRes.Points
				data.EnergyDropped = energyRes.Dropped + consumption.Dropped
			}
		}

		data.Rows = bandTemplRows(aggregate.Compute(cal, priceRes.Points, energyPoints))

		if err := tm.ExecuteToWriter("upload_result.html", data, &w); err != nil {
			logger.Error("handling upload request", slog.Any("error", err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}

// parseUpload reads one uploaded extract. A missing form file is not an
// error, the caller decides whether the field was required.
func parseUpload(r *http.Request, field string, kind types.SeriesKind, layout gme.Layout) (*gme.ParseResult, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	res, err := readUpload(file, header.Filename, kind, layout)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func readUpload(file multipart.File, filename string, kind types.SeriesKind, layout gme.Layout) (gme.ParseResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return gme.ReadXLSX(file, kind, layout)
	case ".csv":
		return gme.ReadCSV(file, kind, layout)
	default:
		return gme.ParseResult{}, errors.New("unsupported extract format, expected .csv or .xlsx")
	}
}
