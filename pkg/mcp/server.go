package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rhobs/launch-dash/pkg/dispatch"
	"github.com/rhobs/launch-dash/pkg/layout"
)

// LaunchDashOptions contains configuration options for the MCP server
type LaunchDashOptions struct {
	Dispatcher *dispatch.Dispatcher
	Layout     layout.Layout
}

const (
	serverName    = "launch-dash"
	serverVersion = "1.0.0"

	layoutResourceURI = "launch-dash://layout"

	serverInstructions = `You have read-only access to a table of SpaceX launch records through this MCP server.

## TOOLS

- **success_pie_chart**: count successful and failed launches, for all sites (site ALL) or one launch site.
- **success_payload_scatter_chart**: payload mass against launch outcome, optionally restricted to a site and a payload interval in kg.

## RULES

1. Read the launch-dash://layout resource to find the valid launch site names and the payload range of the table.
2. Omit payload_min and payload_max to cover every launch.
3. An empty chart means no launch matched the filters. It is not an error.`
)

func NewMCPServer(opts LaunchDashOptions) (*server.MCPServer, error) {
	if opts.Dispatcher == nil {
		return nil, fmt.Errorf("a dispatcher is required")
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithLogging(),
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions(serverInstructions),
	)

	if err := SetupTools(mcpServer, opts); err != nil {
		return nil, err
	}

	layoutJSON, err := json.Marshal(opts.Layout)
	if err != nil {
		return nil, fmt.Errorf("failed to encode layout: %w", err)
	}

	mcpServer.AddResource(
		mcp.Resource{
			URI:         layoutResourceURI,
			Name:        "Dashboard Layout",
			Description: "Controls of the launch dashboard, including the launch site options and the payload slider range",
			MIMEType:    "application/json",
		},
		func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
			return []mcp.ResourceContents{
				mcp.TextResourceContents{
					URI:      layoutResourceURI,
					MIMEType: "application/json",
					Text:     string(layoutJSON),
				},
			}, nil
		},
	)

	return mcpServer, nil
}

// Handler returns the stateless streamable HTTP transport for mcpServer.
func Handler(mcpServer *server.MCPServer) *server.StreamableHTTPServer {
	return server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)
}
