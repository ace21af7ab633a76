package chartjs

import "testing"

func TestNewBarChart(t *testing.T) {
	labels := []string{"F0", "F1", "F2", "F3"}
	chart := NewBarChart("2025-01", labels, "price", "energy")

	if chart.Type != "bar" {
		t.Errorf("expected bar chart, got %q", chart.Type)
	}
	if len(chart.Data.Labels) != 4 {
		t.Errorf("expected 4 labels, got %d", len(chart.Data.Labels))
	}
	for i, ds := range chart.Data.Datasets {
		if len(ds.Data) != len(labels) {
			t.Errorf("dataset %d: expected %d slots, got %d", i, len(labels), len(ds.Data))
		}
	}
	if !chart.Options.Plugins.Title.Display || chart.Options.Plugins.Title.Text != "2025-01" {
		t.Errorf("expected chart title 2025-01, got %+v", chart.Options.Plugins.Title)
	}
}

func TestScaleHelpers(t *testing.T) {
	chart := NewBarChart("", []string{"F1"}, "price", "energy")

	scale := chart.Options.Scales["YAxis2"].WithTitle("Energy (kWh)").WithMinAndMax(0, 8)
	if scale.Title.Text != "Energy (kWh)" {
		t.Errorf("expected axis title, got %q", scale.Title.Text)
	}
	if scale.Min == nil || *scale.Min != 0 {
		t.Errorf("expected min 0, got %v", scale.Min)
	}
	if scale.Max == nil || *scale.Max != 8 {
		t.Errorf("expected max 8, got %v", scale.Max)
	}

	// The original scale is a value, helpers must not mutate it.
	if chart.Options.Scales["YAxis2"].Min != nil {
		t.Error("expected original scale unchanged")
	}
}
