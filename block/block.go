// Package block locates the leading include block of a C++ file.
//
// The block is found by a sequence of small recognizers that each consume a
// span of the text: an optional byte order mark, the "//" copyright banner,
// the guard line (headers) or the own-header include (sources), and finally
// the contiguous run of include and blank lines.
package block

import (
	"errors"
	"regexp"
	"strings"

	"github.com/lexandro/includenorm/include"
	"github.com/lexandro/includenorm/language"
)

// ErrMissingGuard is returned for header files without "#pragma once".
var ErrMissingGuard = errors.New(`missing "#pragma once" in header file`)

const (
	byteOrderMark = "\ufeff"
	guardMarker   = "#pragma once"
)

var guardPattern = regexp.MustCompile(`^#pragma[ \t]+once[ \t]*$`)

// Block is the span of a file holding the leading include directives and
// the blank lines around them.
type Block struct {
	Start int    // Byte offset of the first block line.
	End   int    // Byte offset just past the last block line.
	Text  string // text[Start:End]
	Line  int    // 1-based line number of the first block line.
}

// Lines returns the block lines without line breaks.
func (b Block) Lines() []string {
	return strings.Split(strings.TrimSuffix(b.Text, "\n"), "\n")
}

// Extract finds the include block of a file.
// found is false if the file has no include block; this is not an error.
// Headers that do not contain a guard marker at all return ErrMissingGuard.
func Extract(text string, kind language.Kind) (b Block, found bool, err error) {
	if kind == language.KindHeader && !strings.Contains(text, guardMarker) {
		return Block{}, false, ErrMissingGuard
	}

	s := &scanner{text: text, line: 1}
	s.skipByteOrderMark()
	s.skipBanner()
	if kind == language.KindHeader {
		if !s.skipGuard() {
			return Block{}, false, nil
		}
	} else if !s.skipOwnInclude() {
		return Block{}, false, nil
	}

	start, startLine := s.pos, s.line
	if !s.scanIncludeRun() {
		return Block{}, false, nil
	}
	return Block{
		Start: start,
		End:   s.pos,
		Text:  text[start:s.pos],
		Line:  startLine,
	}, true, nil
}

// scanner walks complete lines of a text. A final line without a line
// break is never consumed.
type scanner struct {
	text string
	pos  int
	line int
}

// peek returns the current line without its line break.
func (s *scanner) peek() (string, bool) {
	rest := s.text[s.pos:]
	end := strings.IndexByte(rest, '\n')
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}

func (s *scanner) advance(line string) {
	s.pos += len(line) + 1
	s.line++
}

func (s *scanner) skipByteOrderMark() {
	if strings.HasPrefix(s.text[s.pos:], byteOrderMark) {
		s.pos += len(byteOrderMark)
	}
}

// skipBanner consumes the comment lines at the top of the file and the
// blank lines that follow them.
func (s *scanner) skipBanner() {
	for {
		line, ok := s.peek()
		if !ok || !strings.HasPrefix(line, "//") {
			break
		}
		s.advance(line)
	}
	s.skipBlankLines()
}

func (s *scanner) skipBlankLines() {
	for {
		line, ok := s.peek()
		if !ok || !isBlank(line) {
			return
		}
		s.advance(line)
	}
}

func (s *scanner) skipGuard() bool {
	line, ok := s.peek()
	if !ok || !guardPattern.MatchString(line) {
		return false
	}
	s.advance(line)
	return true
}

// skipOwnInclude consumes the first include of a source file, which is the
// matching header and stays in front of the block.
func (s *scanner) skipOwnInclude() bool {
	line, ok := s.peek()
	if !ok || !strings.HasPrefix(line, "#include") || len(line) == len("#include") {
		return false
	}
	s.advance(line)
	return true
}

// scanIncludeRun consumes the maximal run of include and blank lines.
// It reports whether the run holds at least one include.
func (s *scanner) scanIncludeRun() bool {
	hasInclude := false
	for {
		line, ok := s.peek()
		if !ok {
			break
		}
		if include.IsDirective(line) {
			hasInclude = true
		} else if !isBlank(line) {
			break
		}
		s.advance(line)
	}
	return hasInclude
}

func isBlank(line string) bool {
	return strings.Trim(line, " \t") == ""
}
