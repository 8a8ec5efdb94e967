package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

func (a *Analyzer) typeCall(ec *symbols.ExtendedContext, e *ast.CallExpr) typedValue {
	callee := a.ExpressionType(ec, e.Func)

	argTypes := make([]typesystem.Type, len(e.Args))
	for i, arg := range e.Args {
		argTypes[i] = a.ExpressionType(ec, arg).Type
	}
	kwTypes := make(map[string]typesystem.Type, len(e.Keywords))
	for _, kw := range e.Keywords {
		t := a.ExpressionType(ec, kw.Value).Type
		switch kw.Name {
		case "*args":
			if !isUnknown(t) && !typesystem.Subset(t, typesystem.BaseTuple{}) {
				if _, isList := t.(typesystem.List); !isList {
					a.report(diagnostics.New(diagnostics.CategoryInvalidVarargType, e.GetToken(), kw.Name, t.String()))
				}
			}
		case "**kwargs":
			if !isUnknown(t) {
				if _, isDict := t.(typesystem.Dict); !isDict {
					a.report(diagnostics.New(diagnostics.CategoryInvalidKwargType, e.GetToken(), kw.Name, t.String()))
				}
			}
		default:
			kwTypes[kw.Name] = t
		}
	}

	switch callee := callee.Type.(type) {
	case typesystem.Function:
		return unknownValue(a.callFunction(e, callee, argTypes, kwTypes))
	case typesystem.Class:
		return a.callClass(ec, e, callee, argTypes, kwTypes)
	case typesystem.Unknown:
		return unknownValue(typesystem.Unknown{})
	}

	a.report(diagnostics.New(diagnostics.CategoryNotAFunction, e.GetToken(), exprText(e.Func), callee.Type.String()))
	return unknownValue(typesystem.Unknown{})
}

func exprText(e ast.Expression) string {
	if id, ok := e.(*ast.Identifier); ok {
		return id.Value
	}
	return "<expr>"
}

// bindArguments validates a call's positional and keyword arguments
// against a callable's declared Arguments, reporting every call-site
// mismatch category, and returns the scope the callee's body should
// be evaluated in.
func (a *Analyzer) bindArguments(tok ast.Node, args typesystem.Arguments, argTypes []typesystem.Type, kwTypes map[string]typesystem.Type) *typesystem.Scope {
	scope := typesystem.NewScope()
	bound := make(map[string]bool)

	n := len(argTypes)
	if n > len(args.Names) && args.VarArgName == "" {
		a.report(diagnostics.New(diagnostics.CategoryTooManyArguments, tok.GetToken(), len(args.Names), n))
		n = len(args.Names)
	}
	for i := 0; i < n && i < len(args.Names); i++ {
		name := args.Names[i]
		declared := args.ExplicitTypes[i]
		if !isUnknown(declared) && !typesystem.Subset(argTypes[i], declared) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, tok.GetToken(), "argument '"+name+"' expected "+declared.String()+", got "+argTypes[i].String()))
		}
		scope.Add(typesystem.NewSymbol(name, typesystem.Unify([]typesystem.Type{declared, argTypes[i]}), typesystem.UnknownValue{}, nil))
		bound[name] = true
	}
	if args.VarArgName != "" && len(argTypes) > len(args.Names) {
		extra := argTypes[len(args.Names):]
		scope.Add(typesystem.NewSymbol(args.VarArgName, typesystem.List{Item: typesystem.Unify(extra)}, typesystem.UnknownValue{}, nil))
	}

	for name, kt := range kwTypes {
		declared, isParam := args.TypeOf(name)
		if !isParam {
			if args.VarKwArgName == "" {
				a.report(diagnostics.New(diagnostics.CategoryExtraKeyword, tok.GetToken(), name))
				continue
			}
			continue
		}
		if !isUnknown(declared) && !typesystem.Subset(kt, declared) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, tok.GetToken(), "keyword '"+name+"' expected "+declared.String()+", got "+kt.String()))
		}
		scope.Add(typesystem.NewSymbol(name, kt, typesystem.UnknownValue{}, nil))
		bound[name] = true
	}

	for i, name := range args.Names {
		if bound[name] {
			continue
		}
		if i < args.MinCount {
			a.report(diagnostics.New(diagnostics.CategoryMissingArgument, tok.GetToken(), name))
			scope.Add(typesystem.NewSymbol(name, typesystem.Unknown{}, typesystem.UnknownValue{}, nil))
			continue
		}
		scope.Add(typesystem.NewSymbol(name, args.DefaultTypes[i], typesystem.UnknownValue{}, nil))
	}
	return scope
}

func (a *Analyzer) callFunction(tok ast.Node, fn typesystem.Function, argTypes []typesystem.Type, kwTypes map[string]typesystem.Type) typesystem.Type {
	argScope := a.bindArguments(tok, fn.Arguments, argTypes, kwTypes)
	if resolved, ok := fn.ResolvedReturn(); ok {
		return resolved
	}
	if evaluator, ok := fn.ReturnSpec.(*FunctionEvaluator); ok {
		return evaluator.Evaluate(argScope)
	}
	return typesystem.Unknown{}
}

func (a *Analyzer) callClass(ec *symbols.ExtendedContext, e *ast.CallExpr, class typesystem.Class, argTypes []typesystem.Type, kwTypes map[string]typesystem.Type) typedValue {
	a.bindArguments(e, class.Arguments, argTypes, kwTypes)
	return unknownValue(class.InstanceType)
}
