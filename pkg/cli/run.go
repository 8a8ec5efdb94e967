// Package cli implements the funxy-check command line: parse one source
// file, run the Statement Visitor over it, and render the resulting
// scope and diagnostics — a scope dump followed by warnings. Exit code
// 0 for a completed check, 1 when the config, source file or cache
// cannot be opened, 2 for a checker-internal error. A flag-driven, single-
// binary entry point with color-on-a-tty output, reporting on the
// program rather than executing it.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/funxy-check/internal/analyzer"
	"github.com/funvibe/funxy-check/internal/annotations"
	"github.com/funvibe/funxy-check/internal/config"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/modcache"
	"github.com/funvibe/funxy-check/internal/modules"
	"github.com/funvibe/funxy-check/internal/parser"
)

// Options configures one checker run.
type Options struct {
	SourcePath string
	ConfigPath string
	CachePath  string
	Stdout     io.Writer
	Stderr     io.Writer
}

// Run executes one checker run over opts.SourcePath and returns the
// process exit code.
func Run(opts Options) int {
	runID := uuid.New()
	started := time.Now()

	cfg := config.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := config.LoadCheckerConfig(opts.ConfigPath)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "funxy-check: loading config: %v\n", err)
			return 1
		}
		cfg = loaded
	}

	source, err := os.ReadFile(opts.SourcePath)
	if err != nil {
		fmt.Fprintf(opts.Stderr, "funxy-check: %v\n", err)
		return 1
	}

	var cache *modcache.Cache
	cachePath := cfg.CachePath
	if opts.CachePath != "" {
		cachePath = opts.CachePath
	}
	if cachePath != "" {
		cache, err = modcache.Open(cachePath)
		if err != nil {
			fmt.Fprintf(opts.Stderr, "funxy-check: opening cache: %v\n", err)
			return 1
		}
		defer cache.Close()
	}

	collector := annotations.NewCollector()

	exitCode := runChecked(func() int {
		p := parser.New(string(source), opts.SourcePath)
		program := p.ParseProgram()
		for _, perr := range p.Errors() {
			collector.Diagnostic(perr)
		}

		a := analyzer.New(collector, collector)
		a.SetResolver(modules.NewResolver(filepath.Dir(opts.SourcePath), collector, collector, cache))
		a.Analyze(opts.SourcePath, program)

		report(opts, cfg, a, collector, runID, started)
		return 0
	}, opts.Stderr)

	return exitCode
}

// runChecked recovers exactly one internal error per run.
func runChecked(fn func() int, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			if ierr, ok := r.(*diagnostics.InternalError); ok {
				fmt.Fprintf(stderr, "funxy-check: %v\n", ierr)
			} else {
				fmt.Fprintf(stderr, "funxy-check: internal error: %v\n", r)
			}
			code = 2
		}
	}()
	return fn()
}

func report(opts Options, cfg *config.CheckerConfig, a *analyzer.Analyzer, collector *annotations.Collector, runID uuid.UUID, started time.Time) {
	colorize := isatty.IsTerminal(os.Stdout.Fd())

	fmt.Fprintln(opts.Stdout, a.Context().GlobalScope().String())

	shown := 0
	for _, d := range collector.Diagnostics {
		if cfg.IgnoresCategory(string(d.Category)) {
			continue
		}
		shown++
		if colorize {
			fmt.Fprintf(opts.Stdout, "\x1b[33m%s\x1b[0m\n", d.Error())
		} else {
			fmt.Fprintln(opts.Stdout, d.Error())
		}
	}

	elapsed := time.Since(started)
	fmt.Fprintf(opts.Stdout, "\nrun %s: %s warnings in %s\n",
		runID.String()[:8],
		humanize.Comma(int64(shown)),
		elapsed.Round(time.Millisecond),
	)
}
