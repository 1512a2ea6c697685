package include

import (
	"regexp"
	"strings"
)

// directivePattern matches a complete include line. Trailing comments or
// macro includes do not match, which ends the include block before them.
var directivePattern = regexp.MustCompile(`^#include[ \t]+(?:"([^">]+)"|<([^">]+)>)[ \t]*$`)

// Include is one recognized include directive.
// Values are immutable; use New to construct them.
type Include struct {
	Path     string // Path as written, without delimiters.
	IsGlobal bool   // Angle-bracket delimited.
	Group    Group
	SortKey  string
	Line     int // 1-based line in the source file, 0 if unknown.
}

// ParseDirective extracts the path and delimiter style from an include line.
func ParseDirective(line string) (path string, isGlobal bool, ok bool) {
	match := directivePattern.FindStringSubmatch(line)
	if match == nil {
		return "", false, false
	}
	if match[2] != "" {
		return match[2], true, true
	}
	return match[1], false, true
}

// IsDirective reports whether line is a complete include directive.
func IsDirective(line string) bool {
	return directivePattern.MatchString(line)
}

// New validates an include path and derives its group and sort key.
// A path starting with one of the forbidden prefixes yields a *PathError
// wrapping ErrForbiddenPath.
func New(path string, isGlobal bool, forbiddenPrefixes []string) (Include, error) {
	for _, prefix := range forbiddenPrefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return Include{}, &PathError{Path: path, Err: ErrForbiddenPath}
		}
	}
	group, sortKey := Classify(path, isGlobal)
	return Include{
		Path:     path,
		IsGlobal: isGlobal,
		Group:    group,
		SortKey:  sortKey,
	}, nil
}

// Equal reports whether two includes are duplicates of each other.
func (inc Include) Equal(other Include) bool {
	return inc.SortKey == other.SortKey && inc.IsGlobal == other.IsGlobal
}

// Name returns the path with its original delimiters.
func (inc Include) Name() string {
	return delimit(inc.Path, inc.IsGlobal)
}

// Directive returns the include line without a line break.
func (inc Include) Directive() string {
	return "#include " + inc.Name()
}
