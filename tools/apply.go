package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NormalizeArgs defines the input parameters for the includes_normalize tool.
type NormalizeArgs struct {
	Pattern string `json:"pattern,omitempty" jsonschema:"Optional glob pattern on paths below the source root (e.g. conf/**)"`
}

// NormalizeHandler holds the dependencies for the normalize tool.
type NormalizeHandler struct {
	Run    RunFunc
	Logger *slog.Logger
}

// Handle processes an includes_normalize request.
func (h *NormalizeHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args NormalizeArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()
	h.Logger.Info("includes_normalize started", "pattern", args.Pattern)

	_, summary, err := h.Run(ctx, args.Pattern, true)
	if err != nil {
		h.Logger.Error("includes_normalize failed", "error", err)
		return errorResult(fmt.Sprintf("Normalize error: %v\nNo files were written.", err)), nil, nil
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	h.Logger.Info("includes_normalize complete",
		"files", summary.Files,
		"written", len(summary.Written),
		"elapsed", elapsed,
	)

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: FormatSummary(summary, elapsed)}},
	}, nil, nil
}
