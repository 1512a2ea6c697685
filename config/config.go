package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultFileName is the config file looked up in the project root.
const DefaultFileName = ".includenorm.toml"

// ErrSourceDirMissing is returned when <project>/<source_dir> does not exist.
var ErrSourceDirMissing = errors.New("the source dir does not exist")

// Config is the run configuration. It is built once at startup and is
// read-only afterwards.
type Config struct {
	ProjectDir      string   // Absolute project root.
	SourceDirName   string   // Directory below the project root holding the sources.
	Namespace       string   // Single top-level namespace directory below SourceDirName.
	SourceDir       string   // <ProjectDir>/<SourceDirName>/<Namespace>, set by Resolve.
	Verbose         bool     // Per-file progress and per-change diagnostics.
	ExcludedNames   []string // File names that are never reordered (umbrella headers).
	ExcludePatterns []string // Doublestar patterns relative to SourceDir.
	Extensions      []string // Scanned extensions, without dot.
	BlockPadding    int      // Line breaks before and after a composed block.
	Jobs            int      // Parallel planning workers; 1 is sequential.
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		SourceDirName: "src",
		ExcludedNames: []string{"fwd.hpp", "all.hpp"},
		Extensions:    []string{"hpp", "tpp", "cpp"},
		BlockPadding:  2,
		Jobs:          1,
	}
}

type fileConfig struct {
	SourceDir     string   `toml:"source_dir"`
	Namespace     string   `toml:"namespace"`
	ExcludedNames []string `toml:"excluded_names"`
	Exclude       []string `toml:"exclude"`
	Extensions    []string `toml:"extensions"`
	BlockPadding  int      `toml:"block_padding"`
	Jobs          int      `toml:"jobs"`
	Verbose       bool     `toml:"verbose"`
}

// LoadFile applies the keys defined in a TOML file on top of cfg.
func LoadFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("source_dir") {
		cfg.SourceDirName = strings.Trim(strings.TrimSpace(raw.SourceDir), "/")
	}
	if meta.IsDefined("namespace") {
		cfg.Namespace = strings.Trim(strings.TrimSpace(raw.Namespace), "/")
	}
	if meta.IsDefined("excluded_names") {
		cfg.ExcludedNames = normalizeList(raw.ExcludedNames)
	}
	if meta.IsDefined("exclude") {
		cfg.ExcludePatterns = normalizeList(raw.Exclude)
	}
	if meta.IsDefined("extensions") {
		cfg.Extensions = normalizeExtensions(raw.Extensions)
	}
	if meta.IsDefined("block_padding") {
		cfg.BlockPadding = raw.BlockPadding
	}
	if meta.IsDefined("jobs") {
		cfg.Jobs = raw.Jobs
	}
	if meta.IsDefined("verbose") {
		cfg.Verbose = raw.Verbose
	}
	return nil
}

// LoadDefaultFile applies <projectDir>/.includenorm.toml if it exists.
func LoadDefaultFile(cfg *Config, projectDir string) (bool, error) {
	path := filepath.Join(projectDir, DefaultFileName)
	if _, err := os.Stat(path); err != nil {
		return false, nil
	}
	return true, LoadFile(cfg, path)
}

// Resolve fixes the project root, detects the namespace if none is set and
// derives SourceDir. It validates the resulting layout.
func (c *Config) Resolve(projectDir string) error {
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return fmt.Errorf("resolving project dir %s: %w", projectDir, err)
	}
	c.ProjectDir = absDir

	if c.SourceDirName == "" {
		return errors.New("source_dir must not be empty")
	}
	if c.BlockPadding < 0 {
		return fmt.Errorf("block_padding must not be negative, got %d", c.BlockPadding)
	}
	if c.Jobs < 1 {
		c.Jobs = 1
	}
	if len(c.Extensions) == 0 {
		return errors.New("extensions must not be empty")
	}

	srcRoot := filepath.Join(absDir, filepath.FromSlash(c.SourceDirName))
	if info, err := os.Stat(srcRoot); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrSourceDirMissing, srcRoot)
	}

	if c.Namespace == "" {
		namespace, err := detectNamespace(srcRoot)
		if err != nil {
			return err
		}
		c.Namespace = namespace
	}
	c.SourceDir = filepath.Join(srcRoot, filepath.FromSlash(c.Namespace))
	if info, err := os.Stat(c.SourceDir); err != nil || !info.IsDir() {
		return fmt.Errorf("namespace directory does not exist: %s", c.SourceDir)
	}
	return nil
}

// ForbiddenPrefixes returns the include prefixes that leak the internal
// source root or the namespace root.
func (c *Config) ForbiddenPrefixes() []string {
	return []string{c.SourceDirName + "/", c.Namespace + "/"}
}

// HasExtension reports whether ext (without dot, any case) is scanned.
func (c *Config) HasExtension(ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range c.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// detectNamespace returns the single visible directory inside srcRoot.
func detectNamespace(srcRoot string) (string, error) {
	entries, err := os.ReadDir(srcRoot)
	if err != nil {
		return "", fmt.Errorf("reading source dir %s: %w", srcRoot, err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			dirs = append(dirs, entry.Name())
		}
	}
	if len(dirs) != 1 {
		return "", fmt.Errorf("cannot detect namespace in %s: expected one directory, found %d (set namespace in %s)",
			srcRoot, len(dirs), DefaultFileName)
	}
	return dirs[0], nil
}

func normalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

func normalizeExtensions(in []string) []string {
	out := normalizeList(in)
	for i, ext := range out {
		out[i] = strings.ToLower(strings.TrimPrefix(ext, "."))
	}
	return out
}
