package server

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/includenorm/tools"
)

// Version is reported to MCP clients.
const Version = "0.3.0"

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	checkHandler *tools.CheckHandler,
	normalizeHandler *tools.NormalizeHandler,
	inspectHandler *tools.InspectHandler,
	statusHandler *tools.StatusHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "includenorm",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server keeps the #include blocks of a C++ source tree in canonical order.

- Use includes_check after editing headers or sources to see which include blocks are out of order. It never writes.
- Use includes_normalize to rewrite them. Rooted includes ("src/<namespace>/...") are turned into relative paths and duplicates are removed.
- Use includes_inspect to see how the includes of one file are grouped.
- A file without "#pragma once" or with an include that cannot be rewritten aborts the run; nothing is written in that case.`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "includes_check",
		Description: `Report the files whose include block is not normalized, with a unified diff per file. Read-only.

Pattern examples (relative to the source root):
  - "**/*.hpp" - all headers
  - "conf/impl/**" - everything below conf/impl`,
	}, checkHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "includes_normalize",
		Description: "Normalize the include blocks of the source tree in place. Only files whose block changes are written.",
	}, normalizeHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "includes_inspect",
		Description: "Show the include block of one file in normalized order, with the group of each include and any diagnostics.",
	}, inspectHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "includes_status",
		Description: "Show the configuration in effect: source root, namespace, extensions, exclusions.",
	}, statusHandler.Handle)

	return mcpServer
}
