package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// resolveTypeExpr turns a syntactic annotation into a lattice Type. An
// unresolvable name (a class not yet declared, a typo) resolves to
// Unknown rather than failing the walk — annotations are advisory, not
// load-bearing for program structure.
func (a *Analyzer) resolveTypeExpr(expr ast.TypeExpr) typesystem.Type {
	if expr == nil {
		return typesystem.Unknown{}
	}
	switch t := expr.(type) {
	case *ast.NamedType:
		return a.resolveNamedType(t.Name)
	case *ast.GenericType:
		return a.resolveGenericType(t)
	}
	return typesystem.Unknown{}
}

func (a *Analyzer) resolveNamedType(name string) typesystem.Type {
	switch name {
	case "int", "float", "Num", "num":
		return typesystem.Num{}
	case "str", "Str", "string":
		return typesystem.Str{}
	case "bool", "Bool":
		return typesystem.Bool{}
	case "None", "NoneType":
		return typesystem.NoneType{}
	case "Any", "object":
		return typesystem.Unknown{}
	case "tuple", "Tuple":
		return typesystem.BaseTuple{}
	}
	if sym, ok := a.ctx.GlobalScope().Get(name); ok {
		if class, ok := sym.Type.(typesystem.Class); ok {
			return class.InstanceType
		}
	}
	return typesystem.Unknown{}
}

func (a *Analyzer) resolveGenericType(t *ast.GenericType) typesystem.Type {
	args := make([]typesystem.Type, len(t.Args))
	for i, arg := range t.Args {
		args[i] = a.resolveTypeExpr(arg)
	}
	switch t.Name {
	case "List", "list":
		if len(args) == 1 {
			return typesystem.List{Item: args[0]}
		}
	case "Set", "set":
		if len(args) == 1 {
			return typesystem.Set{Item: args[0]}
		}
	case "Dict", "dict":
		if len(args) == 2 {
			return typesystem.Dict{Key: args[0], Value: args[1]}
		}
	case "Tuple", "tuple":
		return typesystem.Tuple{Elements: args}
	case "Optional":
		if len(args) == 1 {
			return typesystem.NewMaybe(args[0])
		}
	case "Union":
		return typesystem.NewUnion(args)
	}
	return typesystem.Unknown{}
}
