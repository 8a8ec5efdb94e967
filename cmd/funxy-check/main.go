// Command funxy-check statically analyzes a single source file and
// reports inferred types and warnings.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/funvibe/funxy-check/pkg/cli"
)

func main() {
	configPath := flag.String("config", "", "path to a checker config YAML file")
	cachePath := flag.String("cache", "", "path to the analyzed-module SQLite cache")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <source-file>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	os.Exit(cli.Run(cli.Options{
		SourcePath: flag.Arg(0),
		ConfigPath: *configPath,
		CachePath:  *cachePath,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}))
}
