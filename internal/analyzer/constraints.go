package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// maybeInferences narrows t along a truthy/falsy branch split. A
// Maybe(T) narrows to T when truthy and NoneType when falsy; this needs
// no general union-subtraction machinery, since Maybe already isolates
// the NoneType alternative. A bare NoneType (an unannotated `x = None`)
// narrows the same way, just without a known inner type to recover.
// Every other type is unaffected by a bare truthiness test.
func maybeInferences(t typesystem.Type) (truthy, falsy typesystem.Type) {
	switch v := t.(type) {
	case typesystem.Maybe:
		return v.Inner, typesystem.NoneType{}
	case typesystem.NoneType:
		return typesystem.Unknown{}, typesystem.NoneType{}
	}
	return t, t
}

// findConstraints walks a boolean test expression and returns the name
// -> narrowed-type constraints that hold when the test evaluates to
// `want` (true for the if-branch, false for the else-branch).
// Recognizes `is`/`is not None`, `isinstance`, bare-name truthiness, and
// propagates through `and`/`or`/`not`.
func (a *Analyzer) findConstraints(ec *symbols.ExtendedContext, test ast.Expression, want bool) map[string]typesystem.Type {
	out := make(map[string]typesystem.Type)
	a.collectConstraints(ec, test, want, out)
	return out
}

func (a *Analyzer) collectConstraints(ec *symbols.ExtendedContext, test ast.Expression, want bool, out map[string]typesystem.Type) {
	switch e := test.(type) {
	case *ast.UnaryOp:
		if e.Op == "not" {
			a.collectConstraints(ec, e.Operand, !want, out)
			return
		}
	case *ast.BoolOp:
		if (e.Op == "and" && want) || (e.Op == "or" && !want) {
			for _, v := range e.Values {
				a.collectConstraints(ec, v, want, out)
			}
		}
		return
	case *ast.Compare:
		if len(e.Ops) == 1 {
			op := e.Ops[0]
			if op == "is" || op == "is not" {
				if _, isNone := e.Comparators[0].(*ast.NoneLiteral); isNone {
					if id, ok := e.Left.(*ast.Identifier); ok {
						isNotNone := (op == "is not") == want
						sym, found := ec.Get(id.Value)
						if !found {
							return
						}
						truthy, falsy := maybeInferences(sym.Type)
						if isNotNone {
							out[id.Value] = truthy
						} else {
							out[id.Value] = falsy
						}
					}
				}
			}
		}
		return
	case *ast.CallExpr:
		if ident, ok := e.Func.(*ast.Identifier); ok && ident.Value == "isinstance" && len(e.Args) == 2 {
			if id, ok := e.Args[0].(*ast.Identifier); ok && want {
				if typeName, ok := e.Args[1].(*ast.Identifier); ok {
					out[id.Value] = a.resolveNamedType(typeName.Value)
				}
			}
		}
		return
	case *ast.Identifier:
		sym, found := ec.Get(e.Value)
		if !found {
			return
		}
		truthy, falsy := maybeInferences(sym.Type)
		if want {
			out[e.Value] = truthy
		} else {
			out[e.Value] = falsy
		}
	}
}

// applyConstraints pushes every name -> type pair from constraints onto
// ctx as a narrowing constraint.
func applyConstraints(ctx *symbols.Context, constraints map[string]typesystem.Type) {
	for name, t := range constraints {
		ctx.AddConstraint(name, t)
	}
}
