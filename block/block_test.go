package block

import (
	"errors"
	"strings"
	"testing"

	"github.com/lexandro/includenorm/language"
)

const banner = "// Copyright (c) 2025 Example Authors\n// SPDX-License-Identifier: Apache-2.0\n"

func Test_Extract_Header(t *testing.T) {
	text := banner +
		"#pragma once\n" +
		"\n\n" +
		"#include \"String.hpp\"\n" +
		"#include <vector>\n" +
		"\n\n" +
		"namespace erbsland::conf {\n"

	b, found, err := Extract(text, language.KindHeader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected a block")
	}
	wantText := "\n\n#include \"String.hpp\"\n#include <vector>\n\n\n"
	if b.Text != wantText {
		t.Errorf("unexpected block text %q", b.Text)
	}
	if text[:b.Start] != banner+"#pragma once\n" {
		t.Errorf("unexpected preamble %q", text[:b.Start])
	}
	if text[b.End:] != "namespace erbsland::conf {\n" {
		t.Errorf("unexpected body %q", text[b.End:])
	}
	if b.Line != 4 {
		t.Errorf("expected block to start on line 4, got %d", b.Line)
	}
}

func Test_Extract_SourceSkipsOwnHeader(t *testing.T) {
	text := banner +
		"#include \"Source.hpp\"\n" +
		"\n\n" +
		"#include \"impl/source/FileSource.hpp\"\n" +
		"\n\n" +
		"namespace erbsland::conf {\n"

	b, found, err := Extract(text, language.KindSource)
	if err != nil || !found {
		t.Fatalf("expected a block, got found=%v err=%v", found, err)
	}
	if b.Text != "\n\n#include \"impl/source/FileSource.hpp\"\n\n\n" {
		t.Errorf("unexpected block text %q", b.Text)
	}
}

func Test_Extract_ByteOrderMarkAndNoBanner(t *testing.T) {
	text := "\ufeff#pragma once\n#include <map>\n\nclass X;\n"
	b, found, err := Extract(text, language.KindHeader)
	if err != nil || !found {
		t.Fatalf("expected a block, got found=%v err=%v", found, err)
	}
	if b.Text != "#include <map>\n\n" {
		t.Errorf("unexpected block text %q", b.Text)
	}
	if b.Start != len("\ufeff#pragma once\n") {
		t.Errorf("unexpected start %d", b.Start)
	}
}

func Test_Extract_MissingGuard(t *testing.T) {
	text := banner + "#include <vector>\n"
	_, _, err := Extract(text, language.KindHeader)
	if !errors.Is(err, ErrMissingGuard) {
		t.Errorf("expected ErrMissingGuard, got %v", err)
	}
}

func Test_Extract_GuardNotInPosition(t *testing.T) {
	text := banner + "#include <vector>\n#pragma once\n"
	_, found, err := Extract(text, language.KindHeader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected no block when the guard is not directly after the banner")
	}
}

func Test_Extract_NoIncludes(t *testing.T) {
	text := banner + "#pragma once\n\n\nnamespace x {}\n"
	_, found, err := Extract(text, language.KindHeader)
	if err != nil || found {
		t.Errorf("expected no block, got found=%v err=%v", found, err)
	}
}

func Test_Extract_SourceWithoutOwnInclude(t *testing.T) {
	text := banner + "\nint main() {}\n"
	_, found, err := Extract(text, language.KindSource)
	if err != nil || found {
		t.Errorf("expected no block, got found=%v err=%v", found, err)
	}
}

func Test_Extract_StopsAtConditional(t *testing.T) {
	text := "#pragma once\n\n" +
		"#include <cstdint>\n" +
		"#include <algorithm>\n" +
		"\n" +
		"#ifdef _MSC_VER\n" +
		"#include <safeint.h>\n" +
		"#endif\n"
	b, found, err := Extract(text, language.KindHeader)
	if err != nil || !found {
		t.Fatalf("expected a block, got found=%v err=%v", found, err)
	}
	if strings.Contains(b.Text, "safeint") || strings.Contains(b.Text, "#ifdef") {
		t.Errorf("conditional section must stay outside the block: %q", b.Text)
	}
	if !strings.HasPrefix(text[b.End:], "#ifdef _MSC_VER\n") {
		t.Errorf("unexpected body %q", text[b.End:])
	}
}

func Test_Extract_StopsAtUnparsableInclude(t *testing.T) {
	text := "#pragma once\n#include <vector>\n#include HEADER_NAME\n#include <map>\n"
	b, found, _ := Extract(text, language.KindHeader)
	if !found {
		t.Fatal("expected a block")
	}
	if b.Text != "#include <vector>\n" {
		t.Errorf("unexpected block text %q", b.Text)
	}
}

func Test_Extract_IgnoresUnterminatedLastLine(t *testing.T) {
	text := "#pragma once\n#include <vector>"
	_, found, err := Extract(text, language.KindHeader)
	if err != nil || found {
		t.Errorf("expected no block, got found=%v err=%v", found, err)
	}
}

func Test_Block_Lines(t *testing.T) {
	b := Block{Text: "\n#include <a>\n\n"}
	lines := b.Lines()
	if len(lines) != 3 || lines[1] != "#include <a>" {
		t.Errorf("unexpected lines %q", lines)
	}
}
