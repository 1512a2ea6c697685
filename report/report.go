// Package report prints the user-facing results of a run: the summary, the
// fatal error message and unified diffs of planned changes.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/lexandro/includenorm/normalize"
)

// Printer writes reports to an output and an error stream.
type Printer struct {
	out io.Writer
	err io.Writer

	header  *color.Color
	info    *color.Color
	success *color.Color
	warning *color.Color
	failure *color.Color
	path    *color.Color
}

// NewPrinter creates a printer. Colors follow the fatih/color defaults
// (disabled for NO_COLOR and non-terminal output) unless noColor is set.
func NewPrinter(out io.Writer, errOut io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:     out,
		err:     errOut,
		header:  color.New(color.FgBlue, color.Bold),
		info:    color.New(color.FgCyan),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
		path:    color.New(color.FgYellow),
	}
	if noColor {
		for _, c := range []*color.Color{p.header, p.info, p.success, p.warning, p.failure, p.path} {
			c.DisableColor()
		}
	}
	return p
}

// Fatal prints the message of an error that aborted the run.
func (p *Printer) Fatal(err error) {
	p.failure.Fprintf(p.err, "error: %v\n", err)
	p.failure.Fprintln(p.err, "run aborted")
}

// Summary prints the outcome of a run. In check mode the pending files are
// listed instead of the written ones.
func (p *Printer) Summary(summary normalize.Summary, check bool) {
	p.header.Fprintf(p.out, "%d file(s) scanned\n", summary.Files)

	files := summary.Written
	verb := "Rewrote"
	if check {
		files = summary.Pending
		verb = "Would rewrite"
	}
	if len(files) == 0 {
		p.success.Fprintln(p.out, "All include blocks are normalized.")
	} else {
		p.warning.Fprintf(p.out, "%s %d file(s):\n", verb, len(files))
		for _, rel := range files {
			p.path.Fprintf(p.out, "  - %s\n", rel)
		}
	}

	var details []string
	if summary.Duplicates > 0 {
		details = append(details, fmt.Sprintf("%d duplicate include(s) removed", summary.Duplicates))
	}
	if summary.Rewrites > 0 {
		details = append(details, fmt.Sprintf("%d rooted include(s) rewritten", summary.Rewrites))
	}
	if summary.NoBlock > 0 {
		details = append(details, fmt.Sprintf("%d file(s) without include block", summary.NoBlock))
	}
	if summary.Skipped > 0 {
		details = append(details, fmt.Sprintf("%d binary file(s) skipped", summary.Skipped))
	}
	if len(details) > 0 {
		p.info.Fprintln(p.out, strings.Join(details, ", "))
	}
}

// Diffs prints a unified diff for every changed file.
func (p *Printer) Diffs(results []normalize.FileResult) error {
	for _, fr := range results {
		if fr.Outcome != normalize.OutcomeChanged {
			continue
		}
		diff, err := UnifiedDiff(fr.RelativePath, fr.Original, fr.Text)
		if err != nil {
			return err
		}
		for _, line := range strings.SplitAfter(diff, "\n") {
			switch {
			case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
				p.header.Fprint(p.out, line)
			case strings.HasPrefix(line, "+"):
				p.success.Fprint(p.out, line)
			case strings.HasPrefix(line, "-"):
				p.failure.Fprint(p.out, line)
			case strings.HasPrefix(line, "@@"):
				p.info.Fprint(p.out, line)
			default:
				fmt.Fprint(p.out, line)
			}
		}
	}
	return nil
}

// UnifiedDiff returns the unified diff between two versions of a file.
func UnifiedDiff(relativePath string, before string, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "a/" + relativePath,
		ToFile:   "b/" + relativePath,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diffing %s: %w", relativePath, err)
	}
	return diff, nil
}
