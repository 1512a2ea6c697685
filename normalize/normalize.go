// Package normalize applies the include block normalization to files and
// source trees.
package normalize

import (
	"fmt"

	"github.com/lexandro/includenorm/block"
	"github.com/lexandro/includenorm/include"
	"github.com/lexandro/includenorm/language"
)

// Outcome is the result variant of normalizing one file.
// The runner checks it after every file; OutcomeFatal aborts the run.
type Outcome int

const (
	OutcomeUnchanged Outcome = iota
	OutcomeChanged
	OutcomeNoBlock
	OutcomeSkipped
	OutcomeFatal
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeChanged:
		return "changed"
	case OutcomeNoBlock:
		return "no-block"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFatal:
		return "fatal"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Severity of a per-file diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
)

// Diagnostic is a non-fatal message about one file.
type Diagnostic struct {
	Line     int // 1-based, 0 for file level messages.
	Severity Severity
	Message  string
}

// Options controls the per-file pipeline.
type Options struct {
	Rewriter          *include.Rewriter // Rooted include rewriting; nil disables it.
	ForbiddenPrefixes []string
	BlockPadding      int
}

// Result is the outcome of normalizing the text of one file.
type Result struct {
	Outcome     Outcome
	Original    string
	Text        string // Normalized text; equals Original unless Outcome is OutcomeChanged.
	Block       block.Block
	Includes    []include.Include // Final include order.
	Duplicates  []include.Include
	Rewrites    int
	Diagnostics []Diagnostic
	Err         error // Set for OutcomeFatal.
}

// File normalizes the include block of one file. relativePath is the path of
// the file below the source root, with forward slashes; it anchors the
// rewriting of rooted includes.
func File(text string, kind language.Kind, relativePath string, opts Options) Result {
	result := Result{Original: text, Text: text}

	b, found, err := block.Extract(text, kind)
	if err != nil {
		return result.fatal(err)
	}
	if !found {
		result.Outcome = OutcomeNoBlock
		result.info(0, "no include block found")
		return result
	}
	result.Block = b

	includes := make([]include.Include, 0, len(b.Lines()))
	for i, line := range b.Lines() {
		path, isGlobal, ok := include.ParseDirective(line)
		if !ok {
			continue
		}
		lineNumber := b.Line + i

		if opts.Rewriter != nil {
			rewritten, changed, err := opts.Rewriter.Rewrite(relativePath, path)
			if err != nil {
				return result.fatal(fmt.Errorf("line %d: %w", lineNumber, err))
			}
			if changed {
				result.Rewrites++
				result.info(lineNumber, fmt.Sprintf("rewrote rooted include %q to %q", path, rewritten))
				path = rewritten
			}
		}

		inc, err := include.New(path, isGlobal, opts.ForbiddenPrefixes)
		if err != nil {
			return result.fatal(fmt.Errorf("line %d: %w", lineNumber, err))
		}
		inc.Line = lineNumber
		includes = append(includes, inc)
	}

	composed, ordered, dropped := include.Compose(includes, opts.BlockPadding)
	for _, duplicate := range dropped {
		result.warn(duplicate.Line, "ignored duplicate include statement: "+duplicate.Directive())
	}
	result.Includes = ordered
	result.Duplicates = dropped

	newText := text[:b.Start] + composed + text[b.End:]
	if newText == text {
		result.Outcome = OutcomeUnchanged
		return result
	}
	result.Outcome = OutcomeChanged
	result.Text = newText
	return result
}

func (r Result) fatal(err error) Result {
	r.Outcome = OutcomeFatal
	r.Err = err
	r.Text = r.Original
	return r
}

func (r *Result) info(line int, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Severity: SeverityInfo, Message: message})
}

func (r *Result) warn(line int, message string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Severity: SeverityWarning, Message: message})
}
