package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CheckerConfig is the on-disk configuration for a checker run, loaded
// from a YAML file (funxycheck.yaml).
type CheckerConfig struct {
	// StrictMode is loaded from the file but no checker behavior depends
	// on it: the checker always runs in best-effort mode (it warns, it
	// never rejects).
	StrictMode bool `yaml:"strict_mode"`

	// IgnoredCategories suppresses diagnostics of the named categories
	// from the sink entirely.
	IgnoredCategories []string `yaml:"ignored_categories"`

	// SourceRoots lists import search directories. The import resolver
	// does not read it: imports resolve relative to the entry file's
	// directory only.
	SourceRoots []string `yaml:"source_roots"`

	// CachePath is the SQLite database file backing the on-disk analyzed
	// module cache. Empty disables the cache.
	CachePath string `yaml:"cache_path"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *CheckerConfig {
	return &CheckerConfig{
		SourceRoots: []string{"."},
	}
}

// LoadCheckerConfig reads and parses a YAML checker configuration file.
func LoadCheckerConfig(path string) (*CheckerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading checker config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing checker config %s: %w", path, err)
	}
	if len(cfg.SourceRoots) == 0 {
		cfg.SourceRoots = []string{"."}
	}
	return cfg, nil
}

// IgnoresCategory reports whether diagnostics of the given category string
// should be dropped before reaching the sink.
func (c *CheckerConfig) IgnoresCategory(category string) bool {
	if c == nil {
		return false
	}
	for _, ignored := range c.IgnoredCategories {
		if ignored == category {
			return true
		}
	}
	return false
}
