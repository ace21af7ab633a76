package chartjs

const ColorYellow = "#ffc107d4"
const ColorRed = "#f44336d4"

// NewBarChart builds a two axis bar chart, one category per label. The
// first dataset plots against the left axis, the second against the
// right. Axis titles and ranges are set by the caller through WithTitle
// and WithMinAndMax.
func NewBarChart(title string, labels []string, leftLabel, rightLabel string) Chart {
	chart := Chart{
		Type: "bar",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				{
					Label:           leftLabel,
					Data:            make([]*float64, len(labels)),
					BorderWidth:     1,
					BorderColor:     ColorYellow,
					BackgroundColor: ColorYellow,
					YAxisID:         "YAxis1",
				},
				{
					Label:           rightLabel,
					Data:            make([]*float64, len(labels)),
					BorderWidth:     1,
					BorderColor:     ColorRed,
					BackgroundColor: ColorRed,
					YAxisID:         "YAxis2",
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: true},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"YAxis1": {
					Type:     "linear",
					Display:  true,
					Position: "left",
					Title:    ChartScaleTitle{Display: true, Text: "", Color: ColorYellow}},
				"YAxis2": {
					Type:     "linear",
					Display:  true,
					Position: "right",
					Title:    ChartScaleTitle{Display: true, Text: "", Color: ColorRed}},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title.Text = title
	return cs
}

func (cs ChartScale) WithMinAndMax(min, max float64) ChartScale {
	cs.Min = &min
	cs.Max = &max
	return cs
}
