package language

import (
	"path/filepath"
	"strings"
)

// Kind classifies a C++ source file by the role it plays in the include graph.
type Kind int

const (
	KindUnknown Kind = iota
	KindHeader
	KindSource
)

func (k Kind) String() string {
	switch k {
	case KindHeader:
		return "header"
	case KindSource:
		return "source"
	default:
		return "unknown"
	}
}

// ExtensionToKind maps file extensions (without dot, lower case) to file kinds.
// Template implementation files (.tpp) are included like headers and carry
// their own "#pragma once".
var ExtensionToKind = map[string]Kind{
	"h": KindHeader, "hh": KindHeader, "hpp": KindHeader, "hxx": KindHeader,
	"tpp": KindHeader,
	"c": KindSource, "cc": KindSource, "cpp": KindSource, "cxx": KindSource,
}

// DetectKind returns the file kind for a path based on its extension.
// Returns KindUnknown if the extension is not a C/C++ extension.
func DetectKind(filePath string) Kind {
	ext := Extension(filePath)
	if ext == "" {
		return KindUnknown
	}
	return ExtensionToKind[ext]
}

// Extension returns the lower case extension of a path without the leading dot.
func Extension(filePath string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
}
