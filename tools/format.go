package tools

import (
	"fmt"
	"strings"
	"time"

	"github.com/lexandro/includenorm/normalize"
	"github.com/lexandro/includenorm/report"
)

// FormatCheckResults lists the files that would change, each with a unified
// diff of the planned change.
func FormatCheckResults(results []normalize.FileResult, summary normalize.Summary) string {
	if len(summary.Pending) == 0 {
		return fmt.Sprintf("Checked %d files. All include blocks are normalized.", summary.Files)
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Checked %d files, %d would change:\n", summary.Files, len(summary.Pending)))

	for _, fr := range results {
		if fr.Outcome != normalize.OutcomeChanged {
			continue
		}
		builder.WriteString(fmt.Sprintf("\n── %s ──\n", fr.RelativePath))
		diff, err := report.UnifiedDiff(fr.RelativePath, fr.Original, fr.Text)
		if err != nil {
			builder.WriteString(fmt.Sprintf("  (diff unavailable: %v)\n", err))
			continue
		}
		builder.WriteString(diff)
	}
	return builder.String()
}

// FormatSummary describes a completed normalization run.
func FormatSummary(summary normalize.Summary, elapsed time.Duration) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Normalized %d files in %s: %d rewritten, %d unchanged, %d without include block",
		summary.Files, elapsed, len(summary.Written), summary.Unchanged, summary.NoBlock))
	if summary.Skipped > 0 {
		builder.WriteString(fmt.Sprintf(", %d skipped", summary.Skipped))
	}
	builder.WriteString(".\n")
	if summary.Duplicates > 0 {
		builder.WriteString(fmt.Sprintf("Removed %d duplicate includes.\n", summary.Duplicates))
	}
	if summary.Rewrites > 0 {
		builder.WriteString(fmt.Sprintf("Rewrote %d rooted includes.\n", summary.Rewrites))
	}
	for _, rel := range summary.Written {
		builder.WriteString("  ")
		builder.WriteString(rel)
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatInspection shows the planned include block of one file, grouped as
// it would be written, followed by the diagnostics.
func FormatInspection(fr normalize.FileResult) string {
	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("── %s (%s, %s) ──\n", fr.RelativePath, fr.Kind, fr.Outcome))

	if fr.Err != nil {
		builder.WriteString(fmt.Sprintf("error: %v\n", fr.Err))
		return builder.String()
	}

	if len(fr.Includes) > 0 {
		builder.WriteString(fmt.Sprintf("Include block at line %d:\n", fr.Block.Line))
		for i, inc := range fr.Includes {
			if i > 0 && inc.Group != fr.Includes[i-1].Group {
				builder.WriteString("\n")
			}
			builder.WriteString(fmt.Sprintf("  %-40s %s\n", inc.Directive(), inc.Group))
		}
	}

	for _, d := range fr.Diagnostics {
		prefix := "info"
		if d.Severity == normalize.SeverityWarning {
			prefix = "warning"
		}
		if d.Line > 0 {
			builder.WriteString(fmt.Sprintf("%s: line %d: %s\n", prefix, d.Line, d.Message))
		} else {
			builder.WriteString(fmt.Sprintf("%s: %s\n", prefix, d.Message))
		}
	}
	return builder.String()
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	totalSeconds := int(d.Seconds())
	if totalSeconds < 60 {
		return fmt.Sprintf("%ds", totalSeconds)
	}
	totalMinutes := totalSeconds / 60
	if totalMinutes < 60 {
		return fmt.Sprintf("%dm%ds", totalMinutes, totalSeconds%60)
	}
	return fmt.Sprintf("%dh%dm", totalMinutes/60, totalMinutes%60)
}
