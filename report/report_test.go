package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/icodeforyou/fasce-go/aggregate"
	"github.com/icodeforyou/fasce-go/band"
	"github.com/icodeforyou/fasce-go/types/maybe"
)

func testResult() aggregate.Result {
	return aggregate.Result{Rows: []aggregate.Row{
		{Band: band.F0, PricePoints: 3, MeanPrice: maybe.Some(120.0), TotalEnergy: maybe.Some(6.0), Cost: maybe.Some(0.72)},
		{Band: band.F1, PricePoints: 1, MeanPrice: maybe.Some(150.0), TotalEnergy: maybe.Some(2.0), Cost: maybe.Some(0.3)},
		{Band: band.F2, PricePoints: 2, MeanPrice: maybe.Some(105.0), TotalEnergy: maybe.Some(4.0), Cost: maybe.Some(0.42)},
		{Band: band.F3, PricePoints: 0, MeanPrice: maybe.None[float64](), TotalEnergy: maybe.Some(0.0), Cost: maybe.None[float64]()},
	}}
}

func TestBuildBandsXLSX(t *testing.T) {
	data, err := BuildBandsXLSX(2025, time.January, testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty workbook")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopening workbook: %v", err)
	}
	defer f.Close()

	period, _ := f.GetCellValue("bands", "B2")
	if period != "2025-01" {
		t.Errorf("expected period 2025-01, got %q", period)
	}
	first, _ := f.GetCellValue("bands", "A5")
	if first != "F0" {
		t.Errorf("expected first row band F0, got %q", first)
	}
	emptyMean, _ := f.GetCellValue("bands", "C8")
	if emptyMean != "" {
		t.Errorf("expected absent mean to leave cell empty, got %q", emptyMean)
	}
}

func TestBuildBandsPDF(t *testing.T) {
	data, err := BuildBandsPDF(2025, time.January, testResult())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("expected a PDF document")
	}
}
