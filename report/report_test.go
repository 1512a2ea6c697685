package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lexandro/includenorm/normalize"
)

func newTestPrinter() (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, true), &out, &errOut
}

func Test_Printer_Summary_Written(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Summary(normalize.Summary{
		Files:      3,
		Changed:    1,
		Duplicates: 2,
		Written:    []string{"conf/Name.hpp"},
	}, false)

	text := out.String()
	for _, want := range []string{"3 file(s) scanned", "Rewrote 1 file(s):", "  - conf/Name.hpp", "2 duplicate include(s) removed"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}
}

func Test_Printer_Summary_CheckListsPending(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Summary(normalize.Summary{Files: 2, Pending: []string{"a.hpp", "b.cpp"}}, true)

	text := out.String()
	if !strings.Contains(text, "Would rewrite 2 file(s):") {
		t.Errorf("unexpected output:\n%s", text)
	}
}

func Test_Printer_Summary_NothingToDo(t *testing.T) {
	p, out, _ := newTestPrinter()
	p.Summary(normalize.Summary{Files: 5, Unchanged: 5}, false)

	if !strings.Contains(out.String(), "All include blocks are normalized.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func Test_Printer_Fatal(t *testing.T) {
	p, out, errOut := newTestPrinter()
	p.Fatal(errors.New("conf/Name.hpp: missing #pragma once"))

	if out.Len() != 0 {
		t.Errorf("expected nothing on stdout, got %q", out.String())
	}
	if !strings.HasPrefix(errOut.String(), "error: conf/Name.hpp: missing #pragma once\n") {
		t.Errorf("unexpected error output %q", errOut.String())
	}
}

func Test_UnifiedDiff(t *testing.T) {
	before := "#pragma once\n#include <vector>\n#include \"Name.hpp\"\n"
	after := "#pragma once\n#include \"Name.hpp\"\n#include <vector>\n"

	diff, err := UnifiedDiff("conf/Value.hpp", before, after)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"--- a/conf/Value.hpp", "+++ b/conf/Value.hpp", "-#include <vector>", "+#include <vector>"} {
		if !strings.Contains(diff, want) {
			t.Errorf("expected %q in diff:\n%s", want, diff)
		}
	}
}

func Test_UnifiedDiff_Identical(t *testing.T) {
	diff, err := UnifiedDiff("x.hpp", "same\n", "same\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff != "" {
		t.Errorf("expected empty diff, got %q", diff)
	}
}

func Test_Printer_Diffs_OnlyChanged(t *testing.T) {
	p, out, _ := newTestPrinter()
	results := []normalize.FileResult{
		{RelativePath: "same.hpp", Result: normalize.Result{Outcome: normalize.OutcomeUnchanged, Original: "a\n", Text: "a\n"}},
		{RelativePath: "changed.hpp", Result: normalize.Result{Outcome: normalize.OutcomeChanged, Original: "a\nb\n", Text: "b\na\n"}},
	}
	if err := p.Diffs(results); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(out.String(), "same.hpp") {
		t.Error("unchanged file must not be diffed")
	}
	if !strings.Contains(out.String(), "+++ b/changed.hpp") {
		t.Errorf("missing diff for changed file:\n%s", out.String())
	}
}
