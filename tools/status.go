package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/includenorm/config"
)

// StatusArgs defines the input parameters for the includes_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	Config    *config.Config
	StartTime time.Time
	Logger    *slog.Logger
}

// Handle processes an includes_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	uptime := time.Since(h.StartTime)

	h.Logger.Info("includes_status", "memory", memStats.Alloc, "uptime", uptime)

	cfg := h.Config
	var builder strings.Builder
	builder.WriteString("=== includenorm Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Project directory: %s\n", cfg.ProjectDir))
	builder.WriteString(fmt.Sprintf("Source root: %s\n", cfg.SourceDir))
	builder.WriteString(fmt.Sprintf("Namespace: %s\n", cfg.Namespace))
	builder.WriteString(fmt.Sprintf("Extensions: %s\n", strings.Join(cfg.Extensions, ", ")))
	builder.WriteString(fmt.Sprintf("Excluded names: %s\n", strings.Join(cfg.ExcludedNames, ", ")))
	if len(cfg.ExcludePatterns) > 0 {
		builder.WriteString(fmt.Sprintf("Exclude patterns: %s\n", strings.Join(cfg.ExcludePatterns, ", ")))
	}
	builder.WriteString(fmt.Sprintf("Block padding: %d\n", cfg.BlockPadding))
	builder.WriteString(fmt.Sprintf("Jobs: %d\n", cfg.Jobs))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(uptime)))
	builder.WriteString(fmt.Sprintf("Memory usage: %s\n", formatFileSize(int64(memStats.Alloc))))

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: builder.String()}},
	}, nil, nil
}
