package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

// typedValue is the pair an expression evaluation produces: its lattice
// type and, when decidable, its static value (used for constant-folding
// `if` conditions and for inferring `self`'s instance type inside
// `__init__`).
type typedValue struct {
	Type  typesystem.Type
	Value any // typesystem.UnknownValue{} when not statically decidable
}

func unknownValue(t typesystem.Type) typedValue {
	return typedValue{Type: t, Value: typesystem.UnknownValue{}}
}

// ExpressionType is the Expression Typer: a function of an expression and
// the extended context it is evaluated in, with no side effects on the
// context beyond what ExtendedContext.Add introduces locally (for
// comprehension targets). Diagnostics discovered while typing are
// reported through the Analyzer's sink as they're found, rather than
// batched up and returned as a list.
func (a *Analyzer) ExpressionType(ec *symbols.ExtendedContext, expr ast.Expression) typedValue {
	switch e := expr.(type) {
	case *ast.Identifier:
		return a.typeIdentifier(ec, e)
	case *ast.IntLiteral, *ast.FloatLiteral:
		return typedValue{Type: typesystem.Num{}, Value: typesystem.UnknownValue{}}
	case *ast.StringLiteral:
		return typedValue{Type: typesystem.Str{}, Value: e.Value}
	case *ast.BoolLiteral:
		return typedValue{Type: typesystem.Bool{}, Value: e.Value}
	case *ast.NoneLiteral:
		return typedValue{Type: typesystem.NoneType{}, Value: nil}
	case *ast.ListLiteral:
		return a.typeList(ec, e)
	case *ast.SetLiteral:
		return a.typeSet(ec, e)
	case *ast.TupleLiteral:
		return a.typeTuple(ec, e)
	case *ast.DictLiteral:
		return a.typeDict(ec, e)
	case *ast.BinOp:
		return a.typeBinOp(ec, e)
	case *ast.UnaryOp:
		return a.typeUnaryOp(ec, e)
	case *ast.BoolOp:
		return a.typeBoolOp(ec, e)
	case *ast.Compare:
		return a.typeCompare(ec, e)
	case *ast.CallExpr:
		return a.typeCall(ec, e)
	case *ast.AttributeExpr:
		return a.typeAttribute(ec, e)
	case *ast.SubscriptExpr:
		return a.typeSubscript(ec, e)
	case *ast.IfExp:
		return a.typeIfExp(ec, e)
	case *ast.SliceExpr:
		return a.typeSliceExpr(ec, e)
	case *ast.ListComp:
		return a.typeListComp(ec, e)
	case *ast.SetComp:
		return a.typeSetComp(ec, e)
	case *ast.DictComp:
		return a.typeDictComp(ec, e)
	}
	return unknownValue(typesystem.Unknown{})
}

func (a *Analyzer) typeIdentifier(ec *symbols.ExtendedContext, e *ast.Identifier) typedValue {
	sym, ok := ec.Get(e.Value)
	if !ok {
		a.report(diagnostics.New(diagnostics.CategoryUndefined, e.GetToken(), e.Value))
		return unknownValue(typesystem.Unknown{})
	}
	a.annotate(e, sym.Type)
	return typedValue{Type: sym.Type, Value: sym.StaticValue}
}

// reportInconsistent warns when unifying a collection's element types
// fell back to a Union rather than a single concrete type - the literal
// mixes element kinds the checker can't treat uniformly.
func (a *Analyzer) reportInconsistent(tok ast.Node, unified typesystem.Type) {
	if u, ok := unified.(typesystem.Union); ok {
		a.report(diagnostics.New(diagnostics.CategoryInconsistentTypes, tok.GetToken(), u.String()))
	}
}

func (a *Analyzer) typeList(ec *symbols.ExtendedContext, e *ast.ListLiteral) typedValue {
	items := make([]typesystem.Type, len(e.Elements))
	for i, el := range e.Elements {
		items[i] = a.ExpressionType(ec, el).Type
	}
	item := typesystem.Unify(items)
	a.reportInconsistent(e, item)
	return unknownValue(typesystem.List{Item: item})
}

func (a *Analyzer) typeSet(ec *symbols.ExtendedContext, e *ast.SetLiteral) typedValue {
	items := make([]typesystem.Type, len(e.Elements))
	for i, el := range e.Elements {
		items[i] = a.ExpressionType(ec, el).Type
	}
	item := typesystem.Unify(items)
	a.reportInconsistent(e, item)
	return unknownValue(typesystem.Set{Item: item})
}

func (a *Analyzer) typeTuple(ec *symbols.ExtendedContext, e *ast.TupleLiteral) typedValue {
	elems := make([]typesystem.Type, len(e.Elements))
	for i, el := range e.Elements {
		elems[i] = a.ExpressionType(ec, el).Type
	}
	return unknownValue(typesystem.Tuple{Elements: elems})
}

func (a *Analyzer) typeDict(ec *symbols.ExtendedContext, e *ast.DictLiteral) typedValue {
	keys := make([]typesystem.Type, len(e.Keys))
	values := make([]typesystem.Type, len(e.Values))
	for i := range e.Keys {
		keys[i] = a.ExpressionType(ec, e.Keys[i]).Type
		values[i] = a.ExpressionType(ec, e.Values[i]).Type
	}
	key := typesystem.Unify(keys)
	value := typesystem.Unify(values)
	a.reportInconsistent(e, key)
	a.reportInconsistent(e, value)
	return unknownValue(typesystem.Dict{Key: key, Value: value})
}

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "//": true, "%": true, "**": true}

func (a *Analyzer) reportNumericOperands(e *ast.BinOp, left, right typesystem.Type) {
	if !typesystem.Subset(left, typesystem.Num{}) && !isUnknown(left) {
		a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "left operand of '"+e.Op+"' is not numeric: "+left.String()))
	}
	if !typesystem.Subset(right, typesystem.Num{}) && !isUnknown(right) {
		a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "right operand of '"+e.Op+"' is not numeric: "+right.String()))
	}
}

func (a *Analyzer) typeBinOp(ec *symbols.ExtendedContext, e *ast.BinOp) typedValue {
	left := a.ExpressionType(ec, e.Left)
	right := a.ExpressionType(ec, e.Right)
	lt, rt := left.Type, right.Type

	switch e.Op {
	case "+":
		if ltup, ok := lt.(typesystem.Tuple); ok {
			if rtup, ok := rt.(typesystem.Tuple); ok {
				elems := append(append([]typesystem.Type{}, ltup.Elements...), rtup.Elements...)
				return unknownValue(typesystem.Tuple{Elements: elems})
			}
		}
		if typesystem.Subset(lt, typesystem.BaseTuple{}) && typesystem.Subset(rt, typesystem.BaseTuple{}) {
			return unknownValue(typesystem.BaseTuple{})
		}
		if llist, ok := lt.(typesystem.List); ok {
			if rlist, ok := rt.(typesystem.List); ok {
				return unknownValue(typesystem.List{Item: typesystem.Unify([]typesystem.Type{llist.Item, rlist.Item})})
			}
		}
		if typesystem.TypePatterns([]typesystem.Type{lt, rt}, [][]typesystem.Type{
			{typesystem.Num{}, typesystem.Num{}},
			{typesystem.Str{}, typesystem.Str{}},
		}) {
			if _, ok := lt.(typesystem.Str); ok {
				return unknownValue(typesystem.Str{})
			}
			return unknownValue(typesystem.Num{})
		}
		if !isUnknown(lt) && !isUnknown(rt) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "operands of '+' are incompatible: "+lt.String()+" and "+rt.String()))
		}
		return unknownValue(typesystem.Unknown{})

	case "*":
		if typesystem.TypePatterns([]typesystem.Type{lt, rt}, [][]typesystem.Type{
			{typesystem.Num{}, typesystem.Num{}},
			{typesystem.Num{}, typesystem.Str{}},
			{typesystem.Str{}, typesystem.Num{}},
		}) {
			if _, ok := lt.(typesystem.Str); ok {
				return unknownValue(typesystem.Str{})
			}
			if _, ok := rt.(typesystem.Str); ok {
				return unknownValue(typesystem.Str{})
			}
			return unknownValue(typesystem.Num{})
		}
		if !isUnknown(lt) && !isUnknown(rt) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "operands of '*' must be (Num,Num), (Num,Str), or (Str,Num), got "+lt.String()+" and "+rt.String()))
		}
		return unknownValue(typesystem.Unknown{})

	case "%":
		if _, ok := lt.(typesystem.Str); ok {
			return unknownValue(typesystem.Str{})
		}
		a.reportNumericOperands(e, lt, rt)
		return unknownValue(typesystem.Num{})
	}

	if arithmeticOps[e.Op] {
		a.reportNumericOperands(e, lt, rt)
		return unknownValue(typesystem.Num{})
	}
	return unknownValue(typesystem.Unknown{})
}

func isUnknown(t typesystem.Type) bool {
	_, ok := t.(typesystem.Unknown)
	return ok
}

func (a *Analyzer) typeUnaryOp(ec *symbols.ExtendedContext, e *ast.UnaryOp) typedValue {
	operand := a.ExpressionType(ec, e.Operand)
	switch e.Op {
	case "not":
		if !typesystem.Subset(operand.Type, typesystem.Bool{}) && !isUnknown(operand.Type) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "operand of 'not' is not Bool: "+operand.Type.String()))
		}
		return unknownValue(typesystem.Bool{})
	case "-", "+":
		if !typesystem.Subset(operand.Type, typesystem.Num{}) && !isUnknown(operand.Type) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "operand of unary '"+e.Op+"' is not numeric: "+operand.Type.String()))
		}
		return unknownValue(typesystem.Num{})
	}
	return unknownValue(operand.Type)
}

func (a *Analyzer) typeBoolOp(ec *symbols.ExtendedContext, e *ast.BoolOp) typedValue {
	types := make([]typesystem.Type, len(e.Values))
	for i, v := range e.Values {
		t := a.ExpressionType(ec, v).Type
		types[i] = t
		if !typesystem.Subset(t, typesystem.Bool{}) && !isUnknown(t) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "operand of '"+e.Op+"' is not Bool: "+t.String()))
		}
	}
	return unknownValue(typesystem.Unify(types))
}

func (a *Analyzer) typeCompare(ec *symbols.ExtendedContext, e *ast.Compare) typedValue {
	if len(e.Ops) > 1 {
		for _, op := range e.Ops {
			if op == "in" || op == "not in" {
				a.report(diagnostics.New(diagnostics.CategoryInOperatorChaining, e.GetToken()))
			}
			if op == "is" || op == "is not" {
				a.report(diagnostics.New(diagnostics.CategoryIsOperatorChaining, e.GetToken()))
			}
		}
	}
	left := a.ExpressionType(ec, e.Left)
	prev := left
	for i, comparator := range e.Comparators {
		right := a.ExpressionType(ec, comparator)
		op := e.Ops[i]
		switch op {
		case "in", "not in":
			switch right.Type.(type) {
			case typesystem.List, typesystem.Set, typesystem.Dict, typesystem.Unknown:
			default:
				a.report(diagnostics.New(diagnostics.CategoryInOperatorArgumentNotList, e.GetToken(), right.Type.String()))
			}
		case "is", "is not":
			// always comparable: identity check
		default:
			if !typesystem.Comparable(prev.Type, right.Type) {
				a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "cannot compare "+prev.Type.String()+" and "+right.Type.String()))
			}
		}
		prev = right
	}
	return unknownValue(typesystem.Bool{})
}

func (a *Analyzer) typeAttribute(ec *symbols.ExtendedContext, e *ast.AttributeExpr) typedValue {
	val := a.ExpressionType(ec, e.Value)
	switch t := val.Type.(type) {
	case typesystem.Instance:
		if sym, ok := t.Attributes.Get(e.Attr); ok {
			return typedValue{Type: sym.Type, Value: sym.StaticValue}
		}
	case typesystem.Class:
		if t.StaticScope != nil {
			if sym, ok := t.StaticScope.Get(e.Attr); ok {
				return typedValue{Type: sym.Type, Value: sym.StaticValue}
			}
		}
	case typesystem.Unknown:
		return unknownValue(typesystem.Unknown{})
	}
	a.report(diagnostics.New(diagnostics.CategoryUndefined, e.GetToken(), e.Attr))
	return unknownValue(typesystem.Unknown{})
}

func (a *Analyzer) typeSubscript(ec *symbols.ExtendedContext, e *ast.SubscriptExpr) typedValue {
	val := a.ExpressionType(ec, e.Value)
	if _, ok := e.Index.(*ast.SliceExpr); ok {
		a.ExpressionType(ec, e.Index)
		return unknownValue(val.Type)
	}
	a.ExpressionType(ec, e.Index)
	switch t := val.Type.(type) {
	case typesystem.List:
		return unknownValue(t.Item)
	case typesystem.Dict:
		return unknownValue(t.Value)
	case typesystem.Tuple:
		return unknownValue(typesystem.Unify(t.Elements))
	case typesystem.Str:
		return unknownValue(typesystem.Str{})
	}
	return unknownValue(typesystem.Unknown{})
}

func (a *Analyzer) typeIfExp(ec *symbols.ExtendedContext, e *ast.IfExp) typedValue {
	test := a.ExpressionType(ec, e.Test)
	if !typesystem.Subset(test.Type, typesystem.Bool{}) && !isUnknown(test.Type) {
		a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "condition of conditional expression is not Bool: "+test.Type.String()))
	}
	body := a.ExpressionType(ec, e.Body)
	orelse := a.ExpressionType(ec, e.Orelse)
	if !isUnknown(body.Type) && !isUnknown(orelse.Type) && !typesystem.Unifiable(body.Type, orelse.Type) {
		a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "branches of conditional expression have incompatible types: "+body.Type.String()+" and "+orelse.Type.String()))
	}
	return unknownValue(typesystem.Unify([]typesystem.Type{body.Type, orelse.Type}))
}

// typeSliceExpr checks a subscript's `lower:upper:step` bounds, each of
// which must be Num when present.
func (a *Analyzer) typeSliceExpr(ec *symbols.ExtendedContext, e *ast.SliceExpr) typedValue {
	for _, bound := range []ast.Expression{e.Lower, e.Upper, e.Step} {
		if bound == nil {
			continue
		}
		t := a.ExpressionType(ec, bound)
		if !typesystem.Subset(t.Type, typesystem.Num{}) && !isUnknown(t.Type) {
			a.report(diagnostics.New(diagnostics.CategoryTypeError, e.GetToken(), "slice bound is not numeric: "+t.Type.String()))
		}
	}
	return unknownValue(typesystem.Unknown{})
}

func (a *Analyzer) bindComprehensionTargets(ec *symbols.ExtendedContext, gens []ast.Comprehension) {
	for _, gen := range gens {
		iter := a.ExpressionType(ec, gen.Iter)
		var itemType typesystem.Type = typesystem.Unknown{}
		switch t := iter.Type.(type) {
		case typesystem.List:
			itemType = t.Item
		case typesystem.Set:
			itemType = t.Item
		case typesystem.Dict:
			itemType = t.Key
		}
		if id, ok := gen.Target.(*ast.Identifier); ok {
			ec.Add(typesystem.NewSymbol(id.Value, itemType, typesystem.UnknownValue{}, id))
		}
		for _, cond := range gen.Ifs {
			a.ExpressionType(ec, cond)
		}
	}
}

func (a *Analyzer) typeListComp(ec *symbols.ExtendedContext, e *ast.ListComp) typedValue {
	inner := symbols.NewExtendedContext(ec.Base())
	a.bindComprehensionTargets(inner, e.Generators)
	elt := a.ExpressionType(inner, e.Elt)
	return unknownValue(typesystem.List{Item: elt.Type})
}

func (a *Analyzer) typeSetComp(ec *symbols.ExtendedContext, e *ast.SetComp) typedValue {
	inner := symbols.NewExtendedContext(ec.Base())
	a.bindComprehensionTargets(inner, e.Generators)
	elt := a.ExpressionType(inner, e.Elt)
	return unknownValue(typesystem.Set{Item: elt.Type})
}

func (a *Analyzer) typeDictComp(ec *symbols.ExtendedContext, e *ast.DictComp) typedValue {
	inner := symbols.NewExtendedContext(ec.Base())
	a.bindComprehensionTargets(inner, e.Generators)
	key := a.ExpressionType(inner, e.Key)
	value := a.ExpressionType(inner, e.Value)
	return unknownValue(typesystem.Dict{Key: key.Type, Value: value.Type})
}
