package include

import (
	"regexp"

	"golang.org/x/text/cases"
)

// Group is the ordering category of an include. Lower groups are emitted first.
type Group int

const (
	GroupLocal        Group = iota + 1 // "Name.hpp"
	GroupSubdirectory                  // "impl/Name.hpp"
	GroupParent                        // "../Name.hpp"
	GroupAncestor                      // "../../Name.hpp"
	GroupSystemHeader                  // <lib/Name.hpp>, <api.h>
	GroupSystemName                    // <vector>
	GroupOther
)

var groupNames = map[Group]string{
	GroupLocal:        "local",
	GroupSubdirectory: "subdirectory",
	GroupParent:       "parent",
	GroupAncestor:     "ancestor",
	GroupSystemHeader: "system-header",
	GroupSystemName:   "system-name",
	GroupOther:        "other",
}

func (g Group) String() string {
	if name, ok := groupNames[g]; ok {
		return name
	}
	return "invalid"
}

// groupPatterns are matched against the delimited include name, in order.
// The first match wins; GroupOther is the fallback.
var groupPatterns = []struct {
	pattern *regexp.Regexp
	group   Group
}{
	{regexp.MustCompile(`^"[^.][^/]+"`), GroupLocal},
	{regexp.MustCompile(`^"[^./]+/.+"`), GroupSubdirectory},
	{regexp.MustCompile(`^"\.\./[^.].+"`), GroupParent},
	{regexp.MustCompile(`^"\.\./\.\./.+"`), GroupAncestor},
	{regexp.MustCompile(`^<.*\.h(pp)?>`), GroupSystemHeader},
	{regexp.MustCompile(`^<[^.]+>`), GroupSystemName},
}

// Classify returns the ordering group and the sort key for an include path.
// Both are pure functions of (path, isGlobal).
func Classify(path string, isGlobal bool) (Group, string) {
	name := delimit(path, isGlobal)
	group := GroupOther
	for _, entry := range groupPatterns {
		if entry.pattern.MatchString(name) {
			group = entry.group
			break
		}
	}
	return group, foldCase(name)
}

// FoldCase applies full Unicode case folding, as used for sort keys and
// the file processing order.
func FoldCase(s string) string {
	return foldCase(s)
}

func foldCase(s string) string {
	// A Caser is stateful, so every call gets its own.
	return cases.Fold().String(s)
}

func delimit(path string, isGlobal bool) string {
	if isGlobal {
		return "<" + path + ">"
	}
	return `"` + path + `"`
}
