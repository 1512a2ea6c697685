package normalize

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/lexandro/includenorm/config"
	"github.com/lexandro/includenorm/ignore"
	"github.com/lexandro/includenorm/include"
	"github.com/lexandro/includenorm/language"
)

// FileResult is the planned normalization of one file on disk.
type FileResult struct {
	Path         string // Absolute path.
	RelativePath string // Path below the source root, forward slashes.
	Kind         language.Kind
	Mode         fs.FileMode
	Result
}

// AbortError stops a run. It carries the file that caused the abort.
type AbortError struct {
	RelativePath string
	Err          error
}

func (e *AbortError) Error() string {
	return fmt.Sprintf("%s: %v", e.RelativePath, e.Err)
}

func (e *AbortError) Unwrap() error {
	return e.Err
}

// Summary aggregates the outcomes of a run.
type Summary struct {
	Files      int
	Changed    int
	Unchanged  int
	NoBlock    int
	Skipped    int
	Duplicates int
	Rewrites   int
	Written    []string // Relative paths written to disk.
	Pending    []string // Relative paths that would change (dry run).
}

// RunOptions controls a single run.
type RunOptions struct {
	DryRun  bool   // Plan only, never write.
	Pattern string // Optional doublestar filter on relative paths.
}

// Runner normalizes the files of a configured source tree.
type Runner struct {
	cfg     *config.Config
	matcher *ignore.Matcher
	logger  *slog.Logger
	options Options
}

// NewRunner creates a runner. cfg must be resolved.
func NewRunner(cfg *config.Config, matcher *ignore.Matcher, logger *slog.Logger) *Runner {
	return &Runner{
		cfg:     cfg,
		matcher: matcher,
		logger:  logger,
		options: Options{
			Rewriter:          include.NewRewriter(cfg.SourceDirName, cfg.Namespace),
			ForbiddenPrefixes: cfg.ForbiddenPrefixes(),
			BlockPadding:      cfg.BlockPadding,
		},
	}
}

// Run collects, plans and, unless DryRun is set, writes the changed files.
// Nothing is written if any file has a fatal problem.
func (r *Runner) Run(ctx context.Context, opts RunOptions) ([]FileResult, Summary, error) {
	paths, err := r.Collect(opts.Pattern)
	if err != nil {
		return nil, Summary{}, err
	}
	return r.RunFiles(ctx, paths, opts.DryRun)
}

// RunFiles plans and applies the given files, as Run does for the whole tree.
// The paths are processed in the collect order.
func (r *Runner) RunFiles(ctx context.Context, paths []string, dryRun bool) ([]FileResult, Summary, error) {
	paths = slices.Clone(paths)
	sortPaths(paths)

	results, err := r.Plan(ctx, paths)
	summary := Summarize(results)
	if err != nil {
		return results, summary, err
	}

	if dryRun {
		for _, fr := range results {
			if fr.Outcome == OutcomeChanged {
				summary.Pending = append(summary.Pending, fr.RelativePath)
			}
		}
		return results, summary, nil
	}

	summary.Written, err = r.Apply(results)
	return results, summary, err
}

// Collect returns the eligible files below the source root, ordered by their
// case-folded full path.
func (r *Runner) Collect(pattern string) ([]string, error) {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}

	root := r.cfg.SourceDir
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && r.matcher.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !r.IsEligible(path) {
			return nil
		}
		if pattern != "" {
			matched, err := doublestar.Match(pattern, r.relativePath(path))
			if err != nil || !matched {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sortPaths(paths)
	return paths, nil
}

// sortPaths orders paths by their case-folded form.
func sortPaths(paths []string) {
	keys := make(map[string]string, len(paths))
	for _, path := range paths {
		keys[path] = include.FoldCase(path)
	}
	slices.SortFunc(paths, func(a, b string) int {
		return cmp.Or(cmp.Compare(keys[a], keys[b]), cmp.Compare(a, b))
	})
}

// IsEligible reports whether a file below the source root is normalized.
func (r *Runner) IsEligible(path string) bool {
	return r.cfg.HasExtension(language.Extension(path)) && !r.matcher.ShouldIgnore(path)
}

// Plan reads and normalizes the files in memory. Diagnostics are logged in
// the order of paths. The first fatal outcome in that order is returned as an
// *AbortError together with the results up to and including that file.
func (r *Runner) Plan(ctx context.Context, paths []string) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	if r.cfg.Jobs <= 1 {
		for i, path := range paths {
			if err := ctx.Err(); err != nil {
				return results[:i], err
			}
			results[i] = r.planFile(path)
			r.logResult(results[i])
			if results[i].Outcome == OutcomeFatal {
				return results[:i+1], abortError(results[i])
			}
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(r.cfg.Jobs, max(len(paths), 1)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// Each goroutine owns results[i].
			results[i] = r.planFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range results {
		r.logResult(results[i])
		if results[i].Outcome == OutcomeFatal {
			return results[:i+1], abortError(results[i])
		}
	}
	return results, nil
}

// Inspect plans a single file given by its path below the source root.
// Nothing is logged or written.
func (r *Runner) Inspect(relativePath string) (FileResult, error) {
	path := filepath.Join(r.cfg.SourceDir, filepath.FromSlash(relativePath))
	if rel := r.relativePath(path); rel == ".." || strings.HasPrefix(rel, "../") {
		return FileResult{}, fmt.Errorf("%s is outside the source root", relativePath)
	}
	if !r.IsEligible(path) {
		return FileResult{}, fmt.Errorf("%s is not normalized (excluded name or extension)", relativePath)
	}
	return r.planFile(path), nil
}

// Apply writes every changed file. It returns the relative paths written.
func (r *Runner) Apply(results []FileResult) ([]string, error) {
	var written []string
	for _, fr := range results {
		if fr.Outcome != OutcomeChanged {
			continue
		}
		r.logger.Debug("overwriting changed file", "path", fr.RelativePath)
		if err := WriteFileAtomic(fr.Path, []byte(fr.Text), fr.Mode); err != nil {
			return written, &AbortError{RelativePath: fr.RelativePath, Err: err}
		}
		written = append(written, fr.RelativePath)
	}
	return written, nil
}

// Summarize counts the outcomes of planned files.
func Summarize(results []FileResult) Summary {
	var summary Summary
	for _, fr := range results {
		summary.Files++
		summary.Duplicates += len(fr.Duplicates)
		summary.Rewrites += fr.Rewrites
		switch fr.Outcome {
		case OutcomeChanged:
			summary.Changed++
		case OutcomeUnchanged:
			summary.Unchanged++
		case OutcomeNoBlock:
			summary.NoBlock++
		case OutcomeSkipped:
			summary.Skipped++
		}
	}
	return summary
}

func (r *Runner) planFile(path string) FileResult {
	fr := FileResult{
		Path:         path,
		RelativePath: r.relativePath(path),
		Kind:         language.DetectKind(path),
	}
	if fr.Kind == language.KindUnknown {
		fr.Kind = language.KindSource
	}

	info, err := os.Stat(path)
	if err != nil {
		fr.Result = Result{}.fatal(fmt.Errorf("reading file: %w", err))
		return fr
	}
	fr.Mode = info.Mode().Perm()

	data, err := os.ReadFile(path)
	if err != nil {
		fr.Result = Result{}.fatal(fmt.Errorf("reading file: %w", err))
		return fr
	}
	if language.IsBinaryContent(data) {
		fr.Result = Result{Outcome: OutcomeSkipped, Original: string(data), Text: string(data)}
		fr.info(0, "binary content, skipped")
		return fr
	}

	fr.Result = File(string(data), fr.Kind, fr.RelativePath, r.options)
	return fr
}

func (r *Runner) logResult(fr FileResult) {
	r.logger.Debug("processing file", "path", fr.RelativePath, "kind", fr.Kind.String())
	for _, d := range fr.Diagnostics {
		attrs := []any{"path", fr.RelativePath}
		if d.Line > 0 {
			attrs = append(attrs, "line", d.Line)
		}
		if d.Severity == SeverityWarning {
			r.logger.Warn(d.Message, attrs...)
		} else {
			r.logger.Debug(d.Message, attrs...)
		}
	}
	if fr.Outcome == OutcomeChanged {
		r.logger.Debug("include block changed", "path", fr.RelativePath, "includes", len(fr.Includes))
	}
}

func (r *Runner) relativePath(path string) string {
	rel, err := filepath.Rel(r.cfg.SourceDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func abortError(fr FileResult) error {
	return &AbortError{RelativePath: fr.RelativePath, Err: fr.Err}
}
