package include

import (
	"slices"
	"strings"
)

// Rewriter converts rooted include paths, such as "src/erbsland/conf/Name.hpp",
// into paths relative to the including file. IDE refactorings tend to produce
// these.
type Rewriter struct {
	sentinel string
}

// NewRewriter creates a rewriter for includes rooted at <sourceDirName>/<namespace>/.
func NewRewriter(sourceDirName string, namespace string) *Rewriter {
	return &Rewriter{sentinel: sourceDirName + "/" + namespace + "/"}
}

// Sentinel returns the prefix that marks a rooted include.
func (r *Rewriter) Sentinel() string {
	return r.sentinel
}

// IsRooted reports whether the include literal starts with the sentinel.
func (r *Rewriter) IsRooted(literal string) bool {
	return strings.HasPrefix(literal, r.sentinel)
}

// Rewrite returns the relative form of a rooted include. includingPath is the
// path of the including file relative to the source root, with forward slashes.
// Literals that are not rooted are returned unchanged with rewritten=false.
func (r *Rewriter) Rewrite(includingPath string, literal string) (path string, rewritten bool, err error) {
	if !r.IsRooted(literal) {
		return literal, false, nil
	}
	from := splitSegments(includingPath)
	to := splitSegments(strings.TrimPrefix(literal, r.sentinel))
	if len(from) == 0 || len(to) == 0 {
		return "", false, &PathError{Path: literal, Reason: "empty path", Err: ErrUnrewritable}
	}
	if slices.Contains(from, "..") || slices.Contains(to, "..") {
		return "", false, &PathError{Path: literal, Reason: "outside of the source tree", Err: ErrUnrewritable}
	}
	if slices.Equal(from, to) {
		return "", false, &PathError{Path: literal, Reason: "file includes itself", Err: ErrUnrewritable}
	}

	for len(from) > 0 && len(to) > 0 && from[0] == to[0] {
		from = from[1:]
		to = to[1:]
	}
	if len(to) == 0 {
		return "", false, &PathError{Path: literal, Reason: "target is a directory of the including file", Err: ErrUnrewritable}
	}

	upCount := max(0, len(from)-1)
	return strings.Repeat("../", upCount) + strings.Join(to, "/"), true, nil
}

// splitSegments splits a slash path into its segments, dropping empty and "." parts.
func splitSegments(p string) []string {
	parts := strings.Split(p, "/")
	segments := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		segments = append(segments, part)
	}
	return segments
}
