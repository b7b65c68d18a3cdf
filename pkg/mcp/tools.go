package mcp

import (
	"fmt"
	"slices"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rhobs/launch-dash/pkg/controls"
)

// SetupTools registers one tool per dashboard output.
func SetupTools(mcpServer *server.MCPServer, opts LaunchDashOptions) error {
	registered := opts.Dispatcher.Outputs()

	for _, def := range controls.AllOutputs() {
		if !slices.Contains(registered, def.ID) {
			return fmt.Errorf("output %s has no registered callback", def.ID)
		}
		mcpServer.AddTool(def.ToMCPTool(), OutputHandler(opts, def))
	}

	return nil
}
