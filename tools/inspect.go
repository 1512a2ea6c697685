package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// InspectArgs defines the input parameters for the includes_inspect tool.
type InspectArgs struct {
	FilePath string `json:"filePath" jsonschema:"File path relative to the source root (e.g. conf/Name.hpp)"`
}

// InspectHandler holds the dependencies for the inspect tool.
type InspectHandler struct {
	Inspect InspectFunc
	Logger  *slog.Logger
}

// Handle processes an includes_inspect request.
func (h *InspectHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args InspectArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("includes_inspect called with empty filePath")
		return errorResult("Error: filePath parameter is required"), nil, nil
	}

	fr, err := h.Inspect(args.FilePath)
	if err != nil {
		h.Logger.Info("includes_inspect failed", "filePath", args.FilePath, "error", err)
		return errorResult(fmt.Sprintf("Cannot inspect %s: %v", args.FilePath, err)), nil, nil
	}

	h.Logger.Info("includes_inspect", "filePath", args.FilePath, "outcome", fr.Outcome.String(), "elapsed", time.Since(start))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatInspection(fr)}},
		IsError: fr.Err != nil,
	}, nil, nil
}
