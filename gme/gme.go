package gme

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/icodeforyou/fasce-go/convert"
	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

// MissingColumnError signals that a required column could not be located
// in the extract's header. Carries the available columns so the caller
// can show them.
type MissingColumnError struct {
	Name      string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found, available columns: %s",
		e.Name, strings.Join(e.Available, ", "))
}

// Layout names the columns of a GME tabular extract. MGP price files
// carry dates as YYYYMMDD with a 1-24 hour-ending column; quarter-hour
// consumption curves use HH:MM-HH:MM interval labels instead.
type Layout struct {
	DateColumn  string
	HourColumn  string
	ValueColumn string
}

// DefaultPriceLayout matches the GME MGP "Prezzi" sheet with the PUN
// national single price column.
var DefaultPriceLayout = Layout{
	DateColumn:  "Data",
	HourColumn:  "Ora",
	ValueColumn: "PUN",
}

// DefaultConsumptionLayout matches quarter-hour load curve exports.
var DefaultConsumptionLayout = Layout{
	DateColumn:  "Data",
	HourColumn:  "Intervallo",
	ValueColumn: "Energia",
}

// ParseResult is the canonical series an extract reduces to, plus the
// number of rows dropped for unparseable cells. Malformed trailing rows
// (totals, footers) are common in these files, so row-level failures
// are counted rather than fatal.
type ParseResult struct {
	Kind    types.SeriesKind
	Points  []types.TimePoint
	Dropped int
}

// ReadFile parses an extract choosing the format by file extension.
func ReadFile(path string, kind types.SeriesKind, layout Layout) (ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ParseResult{}, fmt.Errorf("opening extract: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(f, kind, layout)
	case ".csv":
		return ReadCSV(f, kind, layout)
	default:
		return ParseResult{}, fmt.Errorf("unsupported extract format %q", filepath.Ext(path))
	}
}

// ReadCSV parses a CSV extract. GME files use either a semicolon or a
// comma as field separator, sniffed from the header line.
func ReadCSV(r io.Reader, kind types.SeriesKind, layout Layout) (ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading extract: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sniffSeparator(data)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading csv extract: %w", err)
	}
	if len(records) == 0 {
		return ParseResult{}, fmt.Errorf("csv extract has no header row")
	}

	return parseRows(records[0], records[1:], kind, layout)
}

// ReadXLSX parses the first sheet of an XLSX extract.
func ReadXLSX(r io.Reader, kind types.SeriesKind, layout Layout) (ParseResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ParseResult{}, fmt.Errorf("opening xlsx extract: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return ParseResult{}, fmt.Errorf("xlsx extract has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return ParseResult{}, fmt.Errorf("reading xlsx sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return ParseResult{}, fmt.Errorf("xlsx extract has no header row")
	}

	return parseRows(rows[0], rows[1:], kind, layout)
}

func parseRows(header []string, rows [][]string, kind types.SeriesKind, layout Layout) (ParseResult, error) {
	dateIdx, err := findColumn(header, layout.DateColumn)
	if err != nil {
		return ParseResult{}, err
	}
	hourIdx, err := findColumn(header, layout.HourColumn)
	if err != nil {
		return ParseResult{}, err
	}
	valueIdx, err := findColumn(header, layout.ValueColumn)
	if err != nil {
		return ParseResult{}, err
	}

	res := ParseResult{Kind: kind, Points: make([]types.TimePoint, 0, len(rows))}
	maxIdx := max(dateIdx, hourIdx, valueIdx)

	for _, row := range rows {
		if len(row) <= maxIdx {
			res.Dropped++
			continue
		}

		date, err := hours.ParseDate(row[dateIdx])
		if err != nil {
			res.Dropped++
			continue
		}

		when, err := parseHour(date, row[hourIdx])
		if err != nil {
			res.Dropped++
			continue
		}

		value, err := convert.ParseDecimal(row[valueIdx])
		if err != nil {
			res.Dropped++
			continue
		}

		res.Points = append(res.Points, types.TimePoint{When: when, Value: value})
	}

	return res, nil
}

// parseHour handles both hour conventions: a bare integer is treated as
// 1-24 hour-ending (price extracts), an HH:MM-HH:MM label as the
// quarter-hour interval of a consumption curve.
func parseHour(date string, cell string) (hours.DateHour, error) {
	cell = strings.TrimSpace(cell)
	if strings.Contains(cell, ":") {
		return hours.FromIntervalStart(date, cell)
	}

	hourEnding, err := strconv.Atoi(cell)
	if err != nil {
		return hours.DateHour{}, fmt.Errorf("unparseable hour cell %q", cell)
	}
	return hours.FromHourEnding(date, hourEnding)
}

func findColumn(header []string, name string) (int, error) {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i, nil
		}
	}

	available := make([]string, 0, len(header))
	for _, h := range header {
		if h = strings.TrimSpace(h); h != "" {
			available = append(available, h)
		}
	}
	return 0, &MissingColumnError{Name: name, Available: available}
}

func sniffSeparator(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte("\n"))
	if bytes.Count(line, []byte(";")) > bytes.Count(line, []byte(",")) {
		return ';'
	}
	return ','
}
