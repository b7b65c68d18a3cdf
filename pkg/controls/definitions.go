package controls

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rhobs/launch-dash/pkg/figure"
)

// Component identifiers shared by the page, the dispatcher and the tools.
const (
	SiteDropdownID        = "site-dropdown"
	PayloadSliderID       = "payload-slider"
	SuccessPieChartID     = "success-pie-chart"
	PayloadScatterChartID = "success-payload-scatter-chart"
)

// MCP parameter names.
const (
	ParamSite       = "site"
	ParamPayloadMin = "payload_min"
	ParamPayloadMax = "payload_max"
)

// All control and output definitions as a single source of truth
var (
	SiteDropdown = ControlDef{
		ID:          SiteDropdownID,
		Type:        ControlTypeDropdown,
		Label:       "Select a Launch Site:",
		Description: "Launch site name, or ALL for every site",
	}

	PayloadSlider = ControlDef{
		ID:          PayloadSliderID,
		Type:        ControlTypeRangeSlider,
		Label:       "Payload range (Kg):",
		Description: "Closed payload mass interval [low, high] in kg",
	}

	SuccessPieChart = OutputDef{
		ID:       SuccessPieChartID,
		Inputs:   []string{SiteDropdownID},
		ToolName: "success_pie_chart",
		Title:    "Launch Success Pie Chart",
		Description: `Summarize successful and failed launches as a donut chart.

Use site ALL for the whole launch table, or a launch site name to restrict the chart to that site.

A site without launches returns a chart with zero counts, not an error.`,
		Params: []ParamDef{
			{
				Name:        ParamSite,
				Type:        ParamTypeString,
				Description: "Launch site name (e.g. 'KSC LC-39A') or 'ALL'. Defaults to ALL.",
			},
		},
		OutputSchema: mcp.WithOutputSchema[figure.Pie](),
	}

	PayloadScatterChart = OutputDef{
		ID:       PayloadScatterChartID,
		Inputs:   []string{SiteDropdownID, PayloadSliderID},
		ToolName: "success_payload_scatter_chart",
		Title:    "Payload vs. Launch Outcome Scatter Chart",
		Description: `Plot payload mass against launch outcome, one series per booster version category.

Only launches whose payload lies in the closed interval [payload_min, payload_max] are plotted.
Omitted bounds default to the lightest and heaviest payload in the table.

An inverted interval (payload_min > payload_max) returns an empty chart.`,
		Params: []ParamDef{
			{
				Name:        ParamSite,
				Type:        ParamTypeString,
				Description: "Launch site name (e.g. 'KSC LC-39A') or 'ALL'. Defaults to ALL.",
			},
			{
				Name:        ParamPayloadMin,
				Type:        ParamTypeNumber,
				Description: "Lower payload bound in kg, inclusive (optional)",
			},
			{
				Name:        ParamPayloadMax,
				Type:        ParamTypeNumber,
				Description: "Upper payload bound in kg, inclusive (optional)",
			},
		},
		OutputSchema: mcp.WithOutputSchema[figure.Scatter](),
	}
)

// AllControls returns every control definition in page order.
func AllControls() []ControlDef {
	return []ControlDef{SiteDropdown, PayloadSlider}
}

// AllOutputs returns every output definition in page order.
func AllOutputs() []OutputDef {
	return []OutputDef{SuccessPieChart, PayloadScatterChart}
}

// LookupControl returns the control with the given ID.
func LookupControl(id string) (ControlDef, bool) {
	for _, c := range AllControls() {
		if c.ID == id {
			return c, true
		}
	}
	return ControlDef{}, false
}
