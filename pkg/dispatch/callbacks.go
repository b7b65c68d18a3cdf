package dispatch

import (
	"context"

	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/figure"
	"github.com/rhobs/launch-dash/pkg/handlers"
	"github.com/rhobs/launch-dash/pkg/launches"
)

// DefaultCallbacks maps each dashboard chart to its handler.
func DefaultCallbacks() []Callback {
	return []Callback{
		{
			Output: controls.SuccessPieChart.ID,
			Inputs: controls.SuccessPieChart.Inputs,
			Handle: successPieChart,
		},
		{
			Output: controls.PayloadScatterChart.ID,
			Inputs: controls.PayloadScatterChart.Inputs,
			Handle: payloadScatterChart,
		},
	}
}

func successPieChart(_ context.Context, table *launches.Table, values controls.Values) (figure.Figure, error) {
	return handlers.SuccessPieChart(table, handlers.PieInput{
		Site: values.GetString(controls.SiteDropdownID, launches.AllSites),
	}), nil
}

func payloadScatterChart(_ context.Context, table *launches.Table, values controls.Values) (figure.Figure, error) {
	minKg, maxKg := table.PayloadBounds()
	payload := values.GetRange(controls.PayloadSliderID, [2]float64{minKg, maxKg})

	return handlers.PayloadScatterChart(table, handlers.ScatterInput{
		Site:        values.GetString(controls.SiteDropdownID, launches.AllSites),
		PayloadLow:  payload[0],
		PayloadHigh: payload[1],
	}), nil
}
