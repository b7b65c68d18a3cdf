package handlers

import (
	"fmt"
	"log/slog"

	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/launches"
)

const (
	OutcomeLabel     = "Launch Outcome"
	PayloadMassLabel = "Payload Mass (kg)"

	pieHole = 0.5
)

// PieInput holds the control values driving the success pie chart.
type PieInput struct {
	Site string
}

// ScatterInput holds the control values driving the payload scatter chart.
type ScatterInput struct {
	Site        string
	PayloadLow  float64
	PayloadHigh float64
}

// SuccessPieChart summarizes launch outcomes for the selected site, or for
// the whole table when every site is selected. A site without launches
// yields a pie with zero-valued slices.
func SuccessPieChart(table *launches.Table, input PieInput) *figure.Pie {
	slog.Info("SuccessPieChart called")
	slog.Debug("SuccessPieChart params", "input", input)

	title := "Total Success Launches by Site"
	if !launches.IsAllSites(input.Site) {
		title = fmt.Sprintf("Success vs. Failed Launches for Site %s", input.Site)
	}

	view := table.Filter(launches.SiteEquals(input.Site))
	success, failure := view.OutcomeCounts()

	slog.Info("SuccessPieChart executed successfully", "rows", view.Len())

	return &figure.Pie{
		Kind:  figure.KindPie,
		Title: title,
		Label: OutcomeLabel,
		Hole:  pieHole,
		Slices: []figure.Slice{
			{Name: launches.Success.String(), Outcome: int(launches.Success), Count: success, Color: figure.SuccessColor},
			{Name: launches.Failure.String(), Outcome: int(launches.Failure), Count: failure, Color: figure.FailureColor},
		},
		Total: view.Len(),
	}
}

// PayloadScatterChart plots payload mass against outcome for the launches of
// the selected site whose payload lies in [PayloadLow, PayloadHigh]. Points
// are grouped by booster version category in order of first appearance.
// An inverted interval yields an empty chart.
func PayloadScatterChart(table *launches.Table, input ScatterInput) *figure.Scatter {
	slog.Info("PayloadScatterChart called")
	slog.Debug("PayloadScatterChart params", "input", input)

	title := "Payload and Launch Success Correlation"
	if !launches.IsAllSites(input.Site) {
		title = fmt.Sprintf("Payload and Launch Success Correlation for Site %s", input.Site)
	}

	view := table.Filter(
		launches.SiteEquals(input.Site),
		launches.PayloadWithin(input.PayloadLow, input.PayloadHigh),
	)

	series := []figure.ScatterSeries{}
	byCategory := make(map[string]int)
	for _, r := range view.Records() {
		i, ok := byCategory[r.BoosterVersionCategory]
		if !ok {
			i = len(series)
			byCategory[r.BoosterVersionCategory] = i
			series = append(series, figure.ScatterSeries{
				Name:  r.BoosterVersionCategory,
				Color: figure.QualitativeColor(i),
			})
		}
		series[i].Points = append(series[i].Points, figure.Point{
			PayloadMassKg: r.PayloadMassKg,
			Outcome:       int(r.Outcome),
			Site:          r.Site,
		})
	}

	slog.Info("PayloadScatterChart executed successfully", "rows", view.Len(), "series", len(series))

	return &figure.Scatter{
		Kind:   figure.KindScatter,
		Title:  title,
		XLabel: PayloadMassLabel,
		YLabel: OutcomeLabel,
		XRange: [2]float64{input.PayloadLow, input.PayloadHigh},
		Series: series,
		Count:  view.Len(),
	}
}
