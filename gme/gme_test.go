package gme

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/icodeforyou/fasce-go/hours"
	"github.com/icodeforyou/fasce-go/types"
)

func TestReadCSVPriceExtract(t *testing.T) {
	// Semicolon-separated MGP extract with comma decimals and the 1-24
	// hour-ending convention.
	csvData := strings.Join([]string{
		"Data;Ora;PUN",
		"20250108;1;104,52",
		"20250108;2;98,10",
		"20250108;24;120,00",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(csvData), types.SeriesPrice, DefaultPriceLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Dropped != 0 {
		t.Errorf("expected no dropped rows, got %d", res.Dropped)
	}
	if len(res.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(res.Points))
	}

	first := res.Points[0]
	if first.When != (hours.DateHour{Date: "2025-01-08", Hour: 0}) {
		t.Errorf("hour-ending 1 expected hour 0, got %+v", first.When)
	}
	if math.Abs(first.Value-104.52) > 1e-9 {
		t.Errorf("expected comma decimal parsed to 104.52, got %f", first.Value)
	}
	last := res.Points[2]
	if last.When.Hour != 23 {
		t.Errorf("hour-ending 24 expected hour 23, got %d", last.When.Hour)
	}
}

func TestReadCSVConsumptionIntervals(t *testing.T) {
	csvData := strings.Join([]string{
		"Data;Intervallo;Energia",
		"20250108;00:00-00:15;0,5",
		"20250108;00:15-00:30;0,5",
		"20250108;00:30-00:45;0,5",
		"20250108;00:45-01:00;0,5",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(csvData), types.SeriesConsumption, DefaultConsumptionLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 4 {
		t.Fatalf("expected 4 quarter-hour points, got %d", len(res.Points))
	}
	for i, p := range res.Points {
		if p.When.Hour != 0 {
			t.Errorf("quarter %d expected hour 0, got %d", i, p.When.Hour)
		}
	}
}

func TestReadCSVDropsMalformedRows(t *testing.T) {
	csvData := strings.Join([]string{
		"Data;Ora;PUN",
		"20250108;1;104,52",
		"20250108;25;99,0",  // hour-ending out of range
		"Totale;;1220,5",    // footer row
		"20250108;3;n.d.",   // unparseable value
		"20250108;4",        // short row
		"20250108;5;101,33",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(csvData), types.SeriesPrice, DefaultPriceLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 2 {
		t.Errorf("expected 2 good points, got %d", len(res.Points))
	}
	if res.Dropped != 4 {
		t.Errorf("expected 4 dropped rows, got %d", res.Dropped)
	}
}

func TestReadCSVCommaSeparator(t *testing.T) {
	csvData := strings.Join([]string{
		"Data,Ora,PUN",
		"2025-01-08,1,104.52",
	}, "\n")

	res, err := ReadCSV(strings.NewReader(csvData), types.SeriesPrice, DefaultPriceLayout)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(res.Points))
	}
}

func TestReadCSVMissingColumn(t *testing.T) {
	csvData := strings.Join([]string{
		"Data;Ora;MGP",
		"20250108;1;104,52",
	}, "\n")

	_, err := ReadCSV(strings.NewReader(csvData), types.SeriesPrice, DefaultPriceLayout)
	if err == nil {
		t.Fatalf("expected a missing column error")
	}
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnError, got %T", err)
	}
	if missing.Name != "PUN" {
		t.Errorf("expected missing column PUN, got %q", missing.Name)
	}
	if len(missing.Available) != 3 {
		t.Errorf("expected 3 available columns, got %v", missing.Available)
	}
}

func TestFindColumnIsCaseInsensitive(t *testing.T) {
	idx, err := findColumn([]string{" data ", "ORA", "pun"}, "Pun")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx != 2 {
		t.Errorf("expected index 2, got %d", idx)
	}
}
