package tools

import (
	"context"

	"github.com/lexandro/includenorm/normalize"
)

// RunFunc plans the source tree and, when apply is set, writes the changed
// files. pattern is an optional doublestar filter on source-relative paths.
// It is provided by main.go so the tools do not depend on the configuration.
type RunFunc func(ctx context.Context, pattern string, apply bool) ([]normalize.FileResult, normalize.Summary, error)

// InspectFunc plans a single file given by its source-relative path.
type InspectFunc func(relativePath string) (normalize.FileResult, error)
