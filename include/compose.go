package include

import (
	"cmp"
	"slices"
	"strings"
)

// Dedupe returns the includes without duplicates, keeping the first occurrence,
// and the dropped duplicates in input order.
func Dedupe(includes []Include) (unique []Include, dropped []Include) {
	unique = make([]Include, 0, len(includes))
	for _, inc := range includes {
		if slices.ContainsFunc(unique, inc.Equal) {
			dropped = append(dropped, inc)
			continue
		}
		unique = append(unique, inc)
	}
	return unique, dropped
}

// Sort orders includes by group, then by their case-folded name.
func Sort(includes []Include) {
	slices.SortStableFunc(includes, func(a, b Include) int {
		if c := cmp.Compare(a.Group, b.Group); c != 0 {
			return c
		}
		return cmp.Compare(a.SortKey, b.SortKey)
	})
}

// Compose deduplicates and sorts the includes and renders them as a block.
// Groups are separated by one blank line and the block is wrapped in padding
// line breaks on both sides. An empty input composes to "".
func Compose(includes []Include, padding int) (block string, ordered []Include, dropped []Include) {
	ordered, dropped = Dedupe(includes)
	if len(ordered) == 0 {
		return "", ordered, dropped
	}
	Sort(ordered)

	pad := strings.Repeat("\n", max(padding, 0))
	var builder strings.Builder
	builder.WriteString(pad)
	var lastGroup Group
	for _, inc := range ordered {
		if lastGroup != 0 && lastGroup != inc.Group {
			builder.WriteString("\n")
		}
		builder.WriteString(inc.Directive())
		builder.WriteString("\n")
		lastGroup = inc.Group
	}
	builder.WriteString(pad)
	return builder.String(), ordered, dropped
}
