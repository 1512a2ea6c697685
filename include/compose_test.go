package include

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustNew(t *testing.T, path string, isGlobal bool) Include {
	t.Helper()
	inc, err := New(path, isGlobal, nil)
	if err != nil {
		t.Fatalf("New(%q): %v", path, err)
	}
	return inc
}

func names(includes []Include) []string {
	result := make([]string, 0, len(includes))
	for _, inc := range includes {
		result = append(result, inc.Name())
	}
	return result
}

func Test_Compose_GroupsSeparatedByBlankLine(t *testing.T) {
	input := []Include{
		mustNew(t, "bar.hpp", false),
		mustNew(t, "vector", true),
		mustNew(t, "foo/baz.hpp", false),
	}
	got, _, dropped := Compose(input, 2)
	want := "\n\n" +
		"#include \"bar.hpp\"\n" +
		"\n" +
		"#include \"foo/baz.hpp\"\n" +
		"\n" +
		"#include <vector>\n" +
		"\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
	}
	if len(dropped) != 0 {
		t.Errorf("expected no duplicates, got %v", names(dropped))
	}
}

func Test_Compose_NoSeparatorWithinGroup(t *testing.T) {
	input := []Include{
		mustNew(t, "string", true),
		mustNew(t, "memory", true),
		mustNew(t, "Map", true),
	}
	got, _, _ := Compose(input, 1)
	want := "\n#include <Map>\n#include <memory>\n#include <string>\n\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Compose() mismatch (-want +got):\n%s", diff)
	}
}

func Test_Compose_DropsDuplicates(t *testing.T) {
	input := []Include{
		mustNew(t, "Name.hpp", false),
		mustNew(t, "vector", true),
		mustNew(t, "Name.hpp", false),
		mustNew(t, "name.hpp", false),
	}
	_, ordered, dropped := Compose(input, 2)
	if diff := cmp.Diff([]string{`"Name.hpp"`, "<vector>"}, names(ordered)); diff != "" {
		t.Errorf("ordered mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{`"Name.hpp"`, `"name.hpp"`}, names(dropped)); diff != "" {
		t.Errorf("dropped mismatch (-want +got):\n%s", diff)
	}
}

func Test_Compose_KeepsSameNameWithDifferentDelimiters(t *testing.T) {
	input := []Include{mustNew(t, "config.hpp", true), mustNew(t, "config.hpp", false)}
	_, ordered, dropped := Compose(input, 0)
	if len(ordered) != 2 || len(dropped) != 0 {
		t.Errorf("expected both includes to survive, got %v dropped %v", names(ordered), names(dropped))
	}
}

func Test_Compose_Empty(t *testing.T) {
	got, ordered, dropped := Compose(nil, 2)
	if got != "" || len(ordered) != 0 || len(dropped) != 0 {
		t.Errorf("expected empty composition, got %q", got)
	}
}

func Test_Sort_GroupOrderIndependentOfInput(t *testing.T) {
	all := []Include{
		mustNew(t, "x.hpp", false),
		mustNew(t, "impl/x.hpp", false),
		mustNew(t, "../x.hpp", false),
		mustNew(t, "../../x.hpp", false),
		mustNew(t, "lib/x.hpp", true),
		mustNew(t, "vector", true),
		mustNew(t, "./x.hpp", false),
	}
	// Reverse the input; the output order must not change.
	reversed := make([]Include, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		reversed = append(reversed, all[i])
	}
	Sort(reversed)
	if diff := cmp.Diff(names(all), names(reversed)); diff != "" {
		t.Errorf("Sort() mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(reversed); i++ {
		if reversed[i-1].Group > reversed[i].Group {
			t.Errorf("group order violated at %d", i)
		}
	}
}
