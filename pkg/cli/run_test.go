package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.fx")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunCleanProgramExitsZero(t *testing.T) {
	path := writeTempSource(t, "x = 1\n")
	var stdout, stderr bytes.Buffer
	code := Run(Options{SourcePath: path, Stdout: &stdout, Stderr: &stderr})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "x Num") {
		t.Fatalf("stdout = %q, want a scope dump mentioning x Num", stdout.String())
	}
}

func TestRunPrintsWarningsForFlaggedCode(t *testing.T) {
	path := writeTempSource(t, "x = 1\nx = \"s\"\n")
	var stdout, stderr bytes.Buffer
	code := Run(Options{SourcePath: path, Stdout: &stdout, Stderr: &stderr})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "warnings in") {
		t.Fatalf("stdout = %q, want a trailing warnings summary line", stdout.String())
	}
	if !strings.Contains(stdout.String(), "[type-change]") {
		t.Fatalf("stdout = %q, want the type-change warning for x", stdout.String())
	}
}

func TestRunMissingSourceFileReturnsNonZero(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(Options{SourcePath: "/nonexistent/file.fx", Stdout: &stdout, Stderr: &stderr})
	if code == 0 {
		t.Fatal("expected a nonzero exit code for a missing source file")
	}
	if stderr.Len() == 0 {
		t.Fatal("expected an error message on stderr")
	}
}

func TestRunConfigIgnoresCategorySuppressesWarning(t *testing.T) {
	path := writeTempSource(t, "x = 1\nx = 2\n")
	cfgPath := filepath.Join(filepath.Dir(path), "funxycheck.yaml")
	if err := os.WriteFile(cfgPath, []byte("ignored_categories:\n  - reassignment\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	var stdout, stderr bytes.Buffer
	code := Run(Options{SourcePath: path, ConfigPath: cfgPath, Stdout: &stdout, Stderr: &stderr})
	if code != 0 {
		t.Fatalf("exit code = %d, want 0; stderr=%s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "0 warnings in") {
		t.Fatalf("expected the reassignment warning to be suppressed by config, got %q", stdout.String())
	}
}

func TestRunUsesModuleCacheAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	helperPath := filepath.Join(dir, "helper.fx")
	if err := os.WriteFile(helperPath, []byte("value = 1\n"), 0o644); err != nil {
		t.Fatalf("writing helper fixture: %v", err)
	}
	mainPath := filepath.Join(dir, "main.fx")
	if err := os.WriteFile(mainPath, []byte("import helper\n"), 0o644); err != nil {
		t.Fatalf("writing main fixture: %v", err)
	}
	cachePath := filepath.Join(dir, "cache.db")

	for i := 0; i < 2; i++ {
		var stdout, stderr bytes.Buffer
		code := Run(Options{SourcePath: mainPath, CachePath: cachePath, Stdout: &stdout, Stderr: &stderr})
		if code != 0 {
			t.Fatalf("run %d: exit code = %d, want 0; stderr=%s", i, code, stderr.String())
		}
	}
}
