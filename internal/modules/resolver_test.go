package modules

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"

	"github.com/funvibe/funxy-check/internal/annotations"
)

// unpackFixture writes a txtar archive's files under a fresh temp dir and
// returns that dir, so each test gets an isolated little file tree without
// checking fixture files into the repo.
func unpackFixture(t *testing.T, archive string) string {
	t.Helper()
	dir := t.TempDir()
	a := txtar.Parse([]byte(archive))
	for _, f := range a.Files {
		path := filepath.Join(dir, f.Name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", f.Name, err)
		}
		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatalf("writing %s: %v", f.Name, err)
		}
	}
	return dir
}

func TestResolverLoadsPlainModule(t *testing.T) {
	dir := unpackFixture(t, `
-- main.fx --
import helper

-- helper.fx --
greeting = "hi"
`)
	collector := annotations.NewCollector()
	r := NewResolver(dir, collector, collector, nil)

	typ, err := r.Resolve("helper", 0, filepath.Join(dir, "main.fx"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if typ == nil {
		t.Fatal("expected a resolved module type")
	}
}

func TestResolverReportsMissingModule(t *testing.T) {
	dir := unpackFixture(t, `
-- main.fx --
import nope
`)
	collector := annotations.NewCollector()
	r := NewResolver(dir, collector, collector, nil)

	if _, err := r.Resolve("nope", 0, filepath.Join(dir, "main.fx")); err == nil {
		t.Fatal("expected an error resolving a nonexistent module")
	}
}

func TestResolverBreaksImportCycles(t *testing.T) {
	dir := unpackFixture(t, `
-- a.fx --
import b

-- b.fx --
import a
`)
	collector := annotations.NewCollector()
	r := NewResolver(dir, collector, collector, nil)

	if _, err := r.Resolve("a", 0, filepath.Join(dir, "entry.fx")); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}

func TestResolverFindsPackageDirectory(t *testing.T) {
	dir := unpackFixture(t, `
-- main.fx --
import pkg

-- pkg/pkg.fx --
value = 1
`)
	collector := annotations.NewCollector()
	r := NewResolver(dir, collector, collector, nil)

	if _, err := r.Resolve("pkg", 0, filepath.Join(dir, "main.fx")); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
}
