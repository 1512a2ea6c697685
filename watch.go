package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/lexandro/includenorm/config"
	"github.com/lexandro/includenorm/ignore"
	"github.com/lexandro/includenorm/normalize"
	"github.com/lexandro/includenorm/watcher"
)

// watchFilter combines the directory rules of the ignore matcher with the
// file eligibility of the runner.
type watchFilter struct {
	matcher *ignore.Matcher
	runner  *normalize.Runner
}

func (f watchFilter) ShouldIgnoreDir(absolutePath string) bool {
	return f.matcher.ShouldIgnoreDir(absolutePath)
}

func (f watchFilter) IsEligible(absolutePath string) bool {
	return f.runner.IsEligible(absolutePath)
}

// watchTree normalizes changed files until ctx is done.
func watchTree(ctx context.Context, cfg *config.Config, runner *normalize.Runner, matcher *ignore.Matcher, logger *slog.Logger) error {
	fileWatcher, err := watcher.New(watcher.Options{
		Dir:        cfg.SourceDir,
		ExtraFiles: []string{filepath.Join(cfg.ProjectDir, ".gitignore")},
		Filter:     watchFilter{matcher: matcher, runner: runner},
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("starting file watcher: %w", err)
	}
	defer fileWatcher.Close()

	go fileWatcher.Run(ctx)
	logger.Info("watching for changes", "sourceDir", cfg.SourceDir)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil
		case batch := <-fileWatcher.Batches():
			handleWatchBatch(ctx, batch, runner, matcher, logger)
		}
	}
}

// handleWatchBatch normalizes one batch of changed files. A fatal problem
// aborts the batch only.
func handleWatchBatch(ctx context.Context, batch []string, runner *normalize.Runner, matcher *ignore.Matcher, logger *slog.Logger) {
	var files []string
	for _, path := range batch {
		if matcher.IsIgnoreFile(path) {
			matcher.Reload()
			logger.Info("ignore rules reloaded", "path", path)
			continue
		}
		// Files removed again before the batch was emitted are skipped.
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if runner.IsEligible(path) {
			files = append(files, path)
		}
	}
	if len(files) == 0 {
		return
	}

	_, summary, err := runner.RunFiles(ctx, files, false)
	if err != nil {
		logger.Error("normalization of batch aborted", "error", err)
		return
	}
	for _, rel := range summary.Written {
		logger.Info("normalized include block", "path", rel)
	}
	logger.Debug("batch complete", "files", summary.Files, "written", len(summary.Written))
}
