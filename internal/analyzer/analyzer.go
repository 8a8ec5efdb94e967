// Package analyzer implements the static checker's core walk: the
// Expression Typer, the constraint/narrowing helpers, the deferred
// Function Evaluator, and the Statement Visitor that drives all of it
// over a parsed program. The walker is a type implementing
// ast.StatementVisitor, one VisitX method per node kind, an addError
// helper feeding a shared diagnostics slice.
package analyzer

import (
	"github.com/funvibe/funxy-check/internal/annotations"
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// Analyzer drives one checker run's statement walk. It is not
// goroutine-safe: a caller analyzing multiple modules concurrently
// runs one Analyzer per module on its own goroutine, each with an
// independent ctx.
type Analyzer struct {
	ctx         *symbols.Context
	currentFile string

	diagSink annotations.DiagnosticSink
	annoSink annotations.AnnotationSink

	suppressDiagnostics bool

	evaluators map[*ast.FunctionDef]*FunctionEvaluator

	// declaredClasses tracks class names declared in this run, to
	// detect the overlapping-class-names diagnostic.
	declaredClasses map[string]bool

	resolver ModuleResolver
}

// ModuleResolver resolves an import to the Instance type standing in for
// that module's exported scope. Kept as an interface here (rather than
// an internal/analyzer -> internal/modules import) because the module
// resolver needs to run an Analyzer over the imported file, which would
// otherwise create an import cycle; internal/modules implements this
// interface and the CLI wires the two together.
type ModuleResolver interface {
	Resolve(importPath string, level int, currentFile string) (typesystem.Type, error)
}

// SetResolver installs the module resolver used by import statements.
func (a *Analyzer) SetResolver(r ModuleResolver) {
	a.resolver = r
}

// New builds an Analyzer over a fresh global scope, reporting to the
// given sinks.
func New(diagSink annotations.DiagnosticSink, annoSink annotations.AnnotationSink) *Analyzer {
	a := &Analyzer{
		ctx:             symbols.NewContext(),
		diagSink:        diagSink,
		annoSink:        annoSink,
		evaluators:      make(map[*ast.FunctionDef]*FunctionEvaluator),
		declaredClasses: make(map[string]bool),
	}
	Seed(a.ctx)
	return a
}

// Context exposes the analyzer's live context, for prelude bootstrap and
// module-resolution code that needs to seed or read the global scope.
func (a *Analyzer) Context() *symbols.Context {
	return a.ctx
}

// Analyze walks program's top-level statements, using file as the
// diagnostic/annotation location tag.
func (a *Analyzer) Analyze(file string, program *ast.Program) {
	a.currentFile = file
	for _, stmt := range program.Statements {
		stmt.Accept(a)
	}
}

func (a *Analyzer) report(d *diagnostics.DiagnosticError) {
	if a.suppressDiagnostics || a.diagSink == nil {
		return
	}
	d.File = a.currentFile
	a.diagSink.Diagnostic(d)
}

func (a *Analyzer) annotate(node ast.Node, t typesystem.Type) {
	if a.annoSink == nil {
		return
	}
	id, ok := node.(*ast.Identifier)
	if !ok {
		return
	}
	tok := node.GetToken()
	a.annoSink.Annotate(annotations.Annotation{
		File:       a.currentFile,
		Line:       tok.Line,
		Column:     tok.Column,
		Identifier: id.Value,
		TypeText:   t.String(),
	})
}

// extend wraps the analyzer's live context in a fresh ExtendedContext
// layer for expression evaluation.
func (a *Analyzer) extend() *symbols.ExtendedContext {
	return symbols.NewExtendedContext(a.ctx)
}
