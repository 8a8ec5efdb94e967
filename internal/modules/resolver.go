// Package modules resolves import statements to the exported scope of
// another source file, running a nested Analyzer over it and caching
// the result. Directory walking and package-extension detection follow
// a Loader-style design that owns a cache of already-loaded modules to
// break import cycles, adapted from a module-graph-of-packages model
// to this checker's simpler one-file-per-import model.
package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/funvibe/funxy-check/internal/analyzer"
	"github.com/funvibe/funxy-check/internal/annotations"
	"github.com/funvibe/funxy-check/internal/config"
	"github.com/funvibe/funxy-check/internal/modcache"
	"github.com/funvibe/funxy-check/internal/parser"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// Resolver implements analyzer.ModuleResolver, turning an import path
// into the Instance wrapping the target file's exported scope.
type Resolver struct {
	baseDir  string
	diagSink annotations.DiagnosticSink
	annoSink annotations.AnnotationSink
	cache    *modcache.Cache

	visiting map[string]bool
	resolved map[string]typesystem.Type
}

// NewResolver builds a Resolver rooted at baseDir (the entry file's
// directory), reporting nested-module diagnostics/annotations to the
// same sinks as the top-level run, and optionally consulting cache (nil
// disables caching).
func NewResolver(baseDir string, diagSink annotations.DiagnosticSink, annoSink annotations.AnnotationSink, cache *modcache.Cache) *Resolver {
	return &Resolver{
		baseDir:  baseDir,
		diagSink: diagSink,
		annoSink: annoSink,
		cache:    cache,
		visiting: make(map[string]bool),
		resolved: make(map[string]typesystem.Type),
	}
}

// Resolve implements analyzer.ModuleResolver.
func (r *Resolver) Resolve(importPath string, level int, currentFile string) (typesystem.Type, error) {
	path, err := r.locate(importPath, level, currentFile)
	if err != nil {
		return nil, err
	}
	if t, ok := r.resolved[path]; ok {
		return t, nil
	}
	if r.visiting[path] {
		// Import cycle: stand in with an empty, attribute-less instance
		// rather than failing the whole run.
		return typesystem.Instance{ClassName: "object", Attributes: typesystem.NewScope()}, nil
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if r.cache != nil {
		if cached, ok := r.cache.Lookup(path, string(source), config.Version); ok {
			r.resolved[path] = cached
			return cached, nil
		}
	}

	r.visiting[path] = true
	defer delete(r.visiting, path)

	p := parser.New(string(source), path)
	program := p.ParseProgram()
	for _, perr := range p.Errors() {
		if r.diagSink != nil {
			r.diagSink.Diagnostic(perr)
		}
	}

	nested := analyzer.New(r.diagSink, r.annoSink)
	nested.SetResolver(&Resolver{
		baseDir:  filepath.Dir(path),
		diagSink: r.diagSink,
		annoSink: r.annoSink,
		cache:    r.cache,
		// visiting and resolved are shared with the root resolver (not
		// copied) so that cycle detection and memoization span the whole
		// import graph of a run, not just one file's direct imports.
		visiting: r.visiting,
		resolved: r.resolved,
	})
	nested.Analyze(path, program)

	instance := typesystem.Instance{ClassName: moduleName(path), Attributes: nested.Context().GlobalScope()}
	r.resolved[path] = instance
	if r.cache != nil {
		r.cache.Store(path, string(source), config.Version, instance)
	}
	return instance, nil
}

func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// locate turns a dotted import path (and, for from-imports, a leading-dot
// relative level) into a concrete source file path.
func (r *Resolver) locate(importPath string, level int, currentFile string) (string, error) {
	dir := r.baseDir
	if level > 0 && currentFile != "" {
		dir = filepath.Dir(currentFile)
		for i := 1; i < level; i++ {
			dir = filepath.Dir(dir)
		}
	}
	if importPath == "" {
		return dir, nil
	}
	parts := strings.Split(importPath, ".")
	rel := filepath.Join(parts...)
	candidateDir := filepath.Join(dir, rel)

	if info, err := os.Stat(candidateDir); err == nil && info.IsDir() {
		ext := detectPackageExtension(candidateDir)
		main := filepath.Join(candidateDir, parts[len(parts)-1]+ext)
		if _, err := os.Stat(main); err == nil {
			return main, nil
		}
		return "", fmt.Errorf("package %q has no main file", importPath)
	}

	for _, ext := range config.SourceFileExtensions {
		candidate := candidateDir + ext
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("module %q not found under %s", importPath, dir)
}

func detectPackageExtension(dirPath string) string {
	dirName := filepath.Base(dirPath)
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return config.SourceFileExt
	}
	for _, ext := range config.SourceFileExtensions {
		mainFile := dirName + ext
		for _, f := range entries {
			if !f.IsDir() && f.Name() == mainFile {
				return ext
			}
		}
	}
	for _, f := range entries {
		if f.IsDir() {
			continue
		}
		for _, ext := range config.SourceFileExtensions {
			if strings.HasSuffix(f.Name(), ext) {
				return ext
			}
		}
	}
	return config.SourceFileExt
}
