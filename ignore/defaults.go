package ignore

// DefaultExcludedNames are umbrella headers that aggregate includes on purpose.
// Their include order is part of their content and must not be changed.
var DefaultExcludedNames = []string{
	"fwd.hpp",
	"all.hpp",
}

// skippedDirNames are never descended into.
var skippedDirNames = map[string]bool{
	".git":         true,
	".svn":         true,
	".hg":          true,
	".idea":        true,
	".vscode":      true,
	".vs":          true,
	".cache":       true,
	"cmake-build":  true,
	"CMakeFiles":   true,
	"node_modules": true,
}
