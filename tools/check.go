package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// CheckArgs defines the input parameters for the includes_check tool.
type CheckArgs struct {
	Pattern string `json:"pattern,omitempty" jsonschema:"Optional glob pattern on paths below the source root (e.g. **/impl/*.hpp)"`
}

// CheckHandler holds the dependencies for the check tool.
type CheckHandler struct {
	Run    RunFunc
	Logger *slog.Logger
}

// Handle processes an includes_check request. Nothing is written.
func (h *CheckHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args CheckArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	results, summary, err := h.Run(ctx, args.Pattern, false)
	if err != nil {
		h.Logger.Warn("includes_check failed", "pattern", args.Pattern, "error", err)
		return errorResult(fmt.Sprintf("Check failed: %v", err)), nil, nil
	}

	h.Logger.Info("includes_check",
		"pattern", args.Pattern,
		"files", summary.Files,
		"pending", len(summary.Pending),
		"elapsed", time.Since(start),
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatCheckResults(results, summary)}},
	}, nil, nil
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
