package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// FunctionEvaluator defers a function body's analysis until it is first
// called, caches the result per argument-scope shape, and guards against
// runaway mutual recursion.
type FunctionEvaluator struct {
	def        *ast.FunctionDef
	defContext *symbols.Context
	analyzer   *Analyzer

	cache      map[string]typesystem.Type
	inProgress map[string]bool
	calledOnce bool
}

// NewFunctionEvaluator captures the function body and a snapshot of the
// context at definition time (the closure over enclosing scopes).
func NewFunctionEvaluator(a *Analyzer, def *ast.FunctionDef, defCtx *symbols.Context) *FunctionEvaluator {
	return &FunctionEvaluator{
		def:        def,
		defContext: defCtx.Copy(),
		analyzer:   a,
		cache:      make(map[string]typesystem.Type),
		inProgress: make(map[string]bool),
	}
}

// Evaluate runs the function body against argScope (the parameter
// bindings for one call site) and returns its inferred return type.
// Every call after the first one suppresses the diagnostics the body
// walk would otherwise re-report — "each function body reports its
// warnings once, across all call sites" — while still recording type
// annotations for every call site's identifiers.
func (fe *FunctionEvaluator) Evaluate(argScope *typesystem.Scope) typesystem.Type {
	key := argScope.String()
	if ret, ok := fe.cache[key]; ok {
		return ret
	}
	if fe.inProgress[key] {
		return typesystem.Unknown{}
	}
	fe.inProgress[key] = true
	defer delete(fe.inProgress, key)

	callCtx := fe.defContext.Copy()
	callCtx.BeginScope()
	callCtx.MergeScope(argScope)

	savedCtx := fe.analyzer.ctx
	savedSuppress := fe.analyzer.suppressDiagnostics
	fe.analyzer.ctx = callCtx
	fe.analyzer.suppressDiagnostics = savedSuppress || fe.calledOnce

	for _, stmt := range fe.def.Body {
		stmt.Accept(fe.analyzer)
	}
	returnType := callCtx.TopScope().GetReturnType()

	fe.analyzer.ctx = savedCtx
	fe.analyzer.suppressDiagnostics = savedSuppress
	fe.calledOnce = true
	fe.cache[key] = returnType
	return returnType
}
