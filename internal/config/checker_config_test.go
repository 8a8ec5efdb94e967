package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/funxy-check/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	assert.Equal(t, []string{"."}, cfg.SourceRoots)
	assert.False(t, cfg.StrictMode)
	assert.Empty(t, cfg.CachePath)
}

func TestLoadCheckerConfigParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "funxycheck.yaml")
	contents := `
strict_mode: true
ignored_categories:
  - reassignment
  - conditional-type
source_roots:
  - ./lib
  - ./vendor
cache_path: ./cache.db
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.LoadCheckerConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.StrictMode)
	assert.Equal(t, []string{"./lib", "./vendor"}, cfg.SourceRoots)
	assert.Equal(t, "./cache.db", cfg.CachePath)
	assert.True(t, cfg.IgnoresCategory("reassignment"))
	assert.False(t, cfg.IgnoresCategory("type-error"))
}

func TestLoadCheckerConfigDefaultsSourceRootsWhenOmitted(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "funxycheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strict_mode: false\n"), 0o644))

	cfg, err := config.LoadCheckerConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, cfg.SourceRoots)
}

func TestLoadCheckerConfigMissingFile(t *testing.T) {
	_, err := config.LoadCheckerConfig("/nonexistent/funxycheck.yaml")
	assert.Error(t, err)
}

func TestIgnoresCategoryOnNilConfig(t *testing.T) {
	var cfg *config.CheckerConfig
	assert.False(t, cfg.IgnoresCategory("anything"))
}
