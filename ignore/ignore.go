package ignore

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides which files of the source tree are left out of normalization.
// It combines the excluded file names, doublestar patterns relative to the
// source root and the project's .gitignore.
// Thread-safe: Reload() acquires a write lock, the checks acquire a read lock.
type Matcher struct {
	mu            sync.RWMutex
	rootDir       string
	sourceDir     string
	gitIgnore     gitignore.GitIgnore
	excludedNames []string
	patterns      []string
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir       string   // Project root, holds the .gitignore.
	SourceDir     string   // Root for Patterns.
	ExcludedNames []string // Exact base names; DefaultExcludedNames if nil.
	Patterns      []string // Doublestar patterns relative to SourceDir.
}

// NewMatcher creates an ignore matcher for a project.
func NewMatcher(options MatcherOptions) *Matcher {
	matcher := &Matcher{
		rootDir:       options.RootDir,
		sourceDir:     options.SourceDir,
		excludedNames: options.ExcludedNames,
		patterns:      options.Patterns,
	}
	if matcher.excludedNames == nil {
		matcher.excludedNames = DefaultExcludedNames
	}
	if matcher.sourceDir == "" {
		matcher.sourceDir = options.RootDir
	}
	matcher.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	return matcher
}

// ValidatePatterns returns the first invalid doublestar pattern, if any.
func ValidatePatterns(patterns []string) (string, bool) {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return pattern, false
		}
	}
	return "", true
}

// ShouldIgnore returns true if the file must not be normalized.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if slices.Contains(m.excludedNames, filepath.Base(absolutePath)) {
		return true
	}
	if m.matchesPatterns(absolutePath) {
		return true
	}
	return m.matchesGitIgnore(absolutePath, false)
}

// ShouldIgnoreDir returns true if a directory should be skipped entirely.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if skippedDirNames[filepath.Base(absolutePath)] {
		return true
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.matchesPatterns(absolutePath) {
		return true
	}
	return m.matchesGitIgnore(absolutePath, true)
}

// Reload re-reads the .gitignore file from disk.
func (m *Matcher) Reload() {
	newGitIgnore := loadIgnoreFile(filepath.Join(m.rootDir, ".gitignore"), m.rootDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = newGitIgnore
}

// IsIgnoreFile reports whether path is an ignore file that Reload reads.
func (m *Matcher) IsIgnoreFile(absolutePath string) bool {
	return filepath.Clean(absolutePath) == filepath.Join(m.rootDir, ".gitignore")
}

func (m *Matcher) matchesPatterns(absolutePath string) bool {
	if len(m.patterns) == 0 {
		return false
	}
	relativePath, ok := relativeTo(m.sourceDir, absolutePath)
	if !ok {
		return false
	}
	for _, pattern := range m.patterns {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), relativePath)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (m *Matcher) matchesGitIgnore(absolutePath string, isDir bool) bool {
	if m.gitIgnore == nil {
		return false
	}
	relativePath, ok := relativeTo(m.rootDir, absolutePath)
	if !ok {
		return false
	}
	match := m.gitIgnore.Relative(relativePath, isDir)
	return match != nil && match.Ignore()
}

// relativeTo returns the slash separated path of target below base.
func relativeTo(base string, target string) (string, bool) {
	relativePath, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}
	relativePath = filepath.ToSlash(relativePath)
	if relativePath == "." || relativePath == ".." || strings.HasPrefix(relativePath, "../") {
		return "", false
	}
	return relativePath, true
}

// loadIgnoreFile reads an ignore file and creates a GitIgnore matcher from it.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
