package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/rhobs/launch-dash/pkg/controls"
	"github.com/rhobs/launch-dash/pkg/launches"
)

// OutputHandler handles a tool call for one dashboard output.
func OutputHandler(opts LaunchDashOptions, def controls.OutputDef) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		values := valuesFromRequest(opts, def, req)

		result, err := opts.Dispatcher.Call(ctx, def.ID, values)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to build %s: %s", def.ToolName, err.Error())), nil
		}

		return result.ToMCPResult()
	}
}

// valuesFromRequest maps tool parameters onto the control values the output reads.
func valuesFromRequest(opts LaunchDashOptions, def controls.OutputDef, req mcp.CallToolRequest) controls.Values {
	values := controls.Values{}
	for _, id := range def.Inputs {
		switch id {
		case controls.SiteDropdownID:
			values[id] = req.GetString(controls.ParamSite, launches.AllSites)
		case controls.PayloadSliderID:
			minKg, maxKg := opts.Dispatcher.Table().PayloadBounds()
			values[id] = []any{
				req.GetFloat(controls.ParamPayloadMin, minKg),
				req.GetFloat(controls.ParamPayloadMax, maxKg),
			}
		}
	}
	return values
}
