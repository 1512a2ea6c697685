package include

import (
	"errors"
	"fmt"
)

var (
	// ErrForbiddenPath marks an include literal that leaks the project's
	// internal source root or namespace root.
	ErrForbiddenPath = errors.New("include statement with invalid path")

	// ErrUnrewritable marks a rooted include that cannot be reduced to a
	// relative path from the including file.
	ErrUnrewritable = errors.New("rooted include cannot be rewritten")
)

// PathError describes a fatal problem with a single include literal.
type PathError struct {
	Path   string // The include literal as written or after rewriting.
	Reason string // Optional detail.
	Err    error  // ErrForbiddenPath or ErrUnrewritable.
}

func (e *PathError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %s", e.Err, e.Path)
	}
	return fmt.Sprintf("%v: %s (%s)", e.Err, e.Path, e.Reason)
}

func (e *PathError) Unwrap() error {
	return e.Err
}
