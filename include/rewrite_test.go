package include

import (
	"errors"
	"testing"
)

func Test_Rewriter_Rewrite(t *testing.T) {
	rewriter := NewRewriter("src", "erbsland")
	tests := []struct {
		name      string
		including string
		literal   string
		want      string
	}{
		{"same directory", "conf/Value.hpp", "src/erbsland/conf/Name.hpp", "Name.hpp"},
		{"subdirectory", "conf/Value.hpp", "src/erbsland/conf/impl/Lexer.hpp", "impl/Lexer.hpp"},
		{"one level up", "conf/impl/Lexer.cpp", "src/erbsland/conf/Name.hpp", "../Name.hpp"},
		{"two levels up from three deep", "conf/impl/vr/Rule.hpp", "src/erbsland/conf/Name.hpp", "../../Name.hpp"},
		{"sibling branch", "conf/impl/vr/Rule.hpp", "src/erbsland/conf/impl/utf8/U8.hpp", "../utf8/U8.hpp"},
		{"dot segments are ignored", "conf/./Value.hpp", "src/erbsland/conf//Name.hpp", "Name.hpp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rewritten, err := rewriter.Rewrite(tt.including, tt.literal)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !rewritten {
				t.Error("expected rewritten=true")
			}
			if got != tt.want {
				t.Errorf("Rewrite(%q, %q) = %q, want %q", tt.including, tt.literal, got, tt.want)
			}
		})
	}
}

func Test_Rewriter_LeavesRelativePathsAlone(t *testing.T) {
	rewriter := NewRewriter("src", "erbsland")
	got, rewritten, err := rewriter.Rewrite("conf/Value.hpp", "impl/Lexer.hpp")
	if err != nil || rewritten || got != "impl/Lexer.hpp" {
		t.Errorf("expected untouched path, got (%q, %v, %v)", got, rewritten, err)
	}
}

func Test_Rewriter_Unrewritable(t *testing.T) {
	rewriter := NewRewriter("src", "erbsland")
	tests := []struct {
		name      string
		including string
		literal   string
	}{
		{"empty target", "conf/Value.hpp", "src/erbsland/"},
		{"empty including path", "", "src/erbsland/conf/Name.hpp"},
		{"self include", "conf/Value.hpp", "src/erbsland/conf/Value.hpp"},
		{"escapes the tree", "conf/Value.hpp", "src/erbsland/../other/Name.hpp"},
		{"directory of the including file", "conf/impl/Lexer.hpp", "src/erbsland/conf/impl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := rewriter.Rewrite(tt.including, tt.literal)
			if !errors.Is(err, ErrUnrewritable) {
				t.Errorf("expected ErrUnrewritable, got %v", err)
			}
		})
	}
}

func Test_Rewriter_Sentinel(t *testing.T) {
	rewriter := NewRewriter("source", "acme")
	if rewriter.Sentinel() != "source/acme/" {
		t.Errorf("unexpected sentinel %s", rewriter.Sentinel())
	}
	if !rewriter.IsRooted("source/acme/x.hpp") || rewriter.IsRooted("acme/x.hpp") {
		t.Error("unexpected IsRooted result")
	}
}
