// Package config holds process-wide constants and the on-disk checker
// configuration format.
package config

// Version is the current funxy-check version. Folded into module cache
// keys so a checker upgrade invalidates stale cache entries.
var Version = "0.1.0"

const SourceFileExt = ".fx"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".fx", ".funxy"}

// HasSourceExt returns true if the path ends with any recognized source extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// IsTestMode is a process-wide test flag; no package in this module reads
// it.
var IsTestMode = false

// Names the checker treats specially regardless of user code.
const (
	SelfParamName  = "self"
	InitMethodName = "__init__"
	ReturnSymbol   = "return"
)

// Builtin identifier names. The lexer reads these as keywords; they are
// not seeded into the prelude scope.
const (
	NoneName  = "None"
	TrueName  = "True"
	FalseName = "False"
)
