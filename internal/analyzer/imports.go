package analyzer

import (
	"errors"

	"github.com/funvibe/funxy-check/internal/typesystem"
)

var errNoResolver = errors.New("no module resolver configured")

func (a *Analyzer) resolveImport(path string, level int) (typesystem.Type, error) {
	if a.resolver == nil {
		return nil, errNoResolver
	}
	return a.resolver.Resolve(path, level, a.currentFile)
}
