package analyzer

import (
	"github.com/funvibe/funxy-check/internal/ast"
	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/symbols"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

func (a *Analyzer) VisitProgram(p *ast.Program) {
	if p.File != "" {
		a.currentFile = p.File
	}
	for _, stmt := range p.Statements {
		stmt.Accept(a)
	}
}

func (a *Analyzer) VisitExpressionStatement(s *ast.ExpressionStatement) {
	a.ExpressionType(a.extend(), s.Expression)
}

func (a *Analyzer) VisitAssign(s *ast.AssignStatement) {
	value := a.ExpressionType(a.extend(), s.Value)
	for _, target := range s.Targets {
		a.assignTarget(target, value)
	}
}

// assignTarget binds value to target, reporting reassignment/type-change
// warnings: reassigning a name to a different type that does not join
// into a single type (Unify yields a Union or Unknown) is a type-change;
// reassigning to the same type, or to one that joins (Num and NoneType
// into Maybe[Num]), is a plain reassignment notice.
func (a *Analyzer) assignTarget(target ast.Expression, value typedValue) {
	switch t := target.(type) {
	case *ast.Identifier:
		if existing, ok := a.ctx.Get(t.Value); ok {
			if !typesystem.Equal(existing.Type, value.Type) {
				joined := typesystem.Unify([]typesystem.Type{existing.Type, value.Type})
				if _, isUnion := joined.(typesystem.Union); !isUnion && !isUnknown(joined) {
					a.report(diagnostics.New(diagnostics.CategoryReassignment, t.GetToken(), t.Value))
				} else {
					a.report(diagnostics.New(diagnostics.CategoryTypeChange, t.GetToken(), t.Value, existing.Type.String(), value.Type.String()))
				}
			} else {
				a.report(diagnostics.New(diagnostics.CategoryReassignment, t.GetToken(), t.Value))
			}
		}
		a.ctx.Add(typesystem.NewSymbol(t.Value, value.Type, value.Value, t))
		a.annotate(t, value.Type)
	case *ast.AttributeExpr:
		base := a.ExpressionType(a.extend(), t.Value)
		if inst, ok := base.Type.(typesystem.Instance); ok {
			inst.Attributes.Add(typesystem.NewSymbol(t.Attr, value.Type, value.Value, t))
		}
	case *ast.TupleLiteral:
		elements, ok := value.Type.(typesystem.Tuple)
		for i, el := range t.Elements {
			var elType typesystem.Type = typesystem.Unknown{}
			if ok && i < len(elements.Elements) {
				elType = elements.Elements[i]
			}
			a.assignTarget(el, unknownValue(elType))
		}
	case *ast.SubscriptExpr:
		a.ExpressionType(a.extend(), t)
	}
}

func (a *Analyzer) VisitAugAssign(s *ast.AugAssignStatement) {
	ec := a.extend()
	current := a.ExpressionType(ec, s.Target)
	rhs := a.ExpressionType(ec, s.Value)
	result := typesystem.Unify([]typesystem.Type{current.Type, rhs.Type})
	a.assignTarget(s.Target, unknownValue(result))
}

func (a *Analyzer) VisitFunctionDef(s *ast.FunctionDef) {
	args := a.buildArguments(s.Params)

	var returnSpec any
	if s.ReturnType != nil {
		returnSpec = a.resolveTypeExpr(s.ReturnType)
	} else {
		returnSpec = NewFunctionEvaluator(a, s, a.ctx)
	}
	fn := typesystem.Function{Arguments: args, ReturnSpec: returnSpec}
	a.ctx.Add(typesystem.NewSymbol(s.Name.Value, fn, typesystem.UnknownValue{}, s))
	a.evaluators[s] = nil
}

func (a *Analyzer) buildArguments(params []*ast.Param) typesystem.Arguments {
	args := typesystem.Arguments{}
	minCount := 0
	seenDefault := false
	for _, p := range params {
		if p.IsVarArg {
			args.VarArgName = p.Name
			continue
		}
		if p.IsKwArg {
			args.VarKwArgName = p.Name
			continue
		}
		args.Names = append(args.Names, p.Name)
		explicit := a.resolveTypeExpr(p.ExplicitType)
		args.ExplicitTypes = append(args.ExplicitTypes, explicit)
		if p.Default != nil {
			seenDefault = true
			defaultVal := a.ExpressionType(a.extend(), p.Default)
			if !isUnknown(explicit) && !typesystem.Subset(defaultVal.Type, explicit) {
				a.report(diagnostics.New(diagnostics.CategoryDefaultArgumentTypeError, p.Default.GetToken(), p.Name, explicit.String()))
			}
			args.DefaultTypes = append(args.DefaultTypes, defaultVal.Type)
		} else {
			args.DefaultTypes = append(args.DefaultTypes, typesystem.Unknown{})
			if !seenDefault {
				minCount++
			}
		}
	}
	args.MinCount = minCount
	return args
}

func (a *Analyzer) VisitClassDef(s *ast.ClassDef) {
	if a.declaredClasses[s.Name.Value] {
		a.report(diagnostics.New(diagnostics.CategoryOverlappingClassNames, s.GetToken(), s.Name.Value))
	}
	a.declaredClasses[s.Name.Value] = true

	staticScope := typesystem.NewScope()
	instanceType := typesystem.Instance{ClassName: s.Name.Value, Attributes: typesystem.NewScope()}

	class := typesystem.Class{
		Name:         s.Name.Value,
		InstanceType: instanceType,
		StaticScope:  staticScope,
	}
	a.ctx.Add(typesystem.NewSymbol(s.Name.Value, class, typesystem.UnknownValue{}, s))

	a.ctx.BeginScope()
	for _, stmt := range s.Body {
		stmt.Accept(a)
	}
	classBody := a.ctx.EndScope()

	for _, name := range classBody.Names() {
		sym, _ := classBody.Get(name)
		staticScope.Add(sym)
		if fn, ok := sym.Type.(typesystem.Function); ok {
			method := typesystem.Function{Arguments: fn.Arguments.WithoutFirst(), ReturnSpec: fn.ReturnSpec}
			instanceType.Attributes.Add(typesystem.NewSymbol(name, method, typesystem.UnknownValue{}, sym.AssignNode))
			if name == "__init__" {
				class.Arguments = method.Arguments
			}
		}
	}

	// Re-bind the class symbol now that InstanceType carries its fully
	// populated attribute scope.
	class.InstanceType = instanceType
	a.ctx.Add(typesystem.NewSymbol(s.Name.Value, class, typesystem.UnknownValue{}, s))
}

func (a *Analyzer) VisitReturn(s *ast.ReturnStatement) {
	var t typesystem.Type = typesystem.NoneType{}
	if s.Value != nil {
		t = a.ExpressionType(a.extend(), s.Value).Type
	}
	scope := a.ctx.TopScope()
	if existing := scope.GetReturn(); existing != nil && !typesystem.Equal(existing.Type, t) {
		a.report(diagnostics.New(diagnostics.CategoryMultipleReturnTypes, s.GetToken(), existing.Type.String()+" | "+t.String()))
		t = typesystem.Unify([]typesystem.Type{existing.Type, t})
	}
	scope.SetReturn(typesystem.NewSymbol("return", t, typesystem.UnknownValue{}, s))
}

func (a *Analyzer) VisitYield(s *ast.YieldStatement) {
	if s.Value != nil {
		a.ExpressionType(a.extend(), s.Value)
	}
}

func (a *Analyzer) VisitIf(s *ast.IfStatement) {
	ec := a.extend()
	test := a.ExpressionType(ec, s.Test)
	if _, ok := test.Value.(typesystem.UnknownValue); !ok && test.Value != nil {
		if b, ok := test.Value.(bool); ok {
			word := "false"
			if b {
				word = "true"
			}
			a.report(diagnostics.New(diagnostics.CategoryConstantIfCondition, s.GetToken(), word))
		}
	}

	thenConstraints := a.findConstraints(ec, s.Test, true)
	elseConstraints := a.findConstraints(ec, s.Test, false)

	// Each branch explores in its own scope layer so that mutations in one
	// branch never leak into the other (Context.Copy shares the underlying
	// *Scope objects, so without a fresh layer per branch both branches
	// would be reading and writing the exact same scope).
	thenCtx := a.ctx.Copy()
	thenCtx.BeginScope()
	applyConstraints(thenCtx, thenConstraints)
	a.withContext(thenCtx, func() {
		for _, stmt := range s.Body {
			stmt.Accept(a)
		}
	})
	thenScope := thenCtx.EndScope()

	elseCtx := a.ctx.Copy()
	elseCtx.BeginScope()
	applyConstraints(elseCtx, elseConstraints)
	a.withContext(elseCtx, func() {
		for _, stmt := range s.Orelse {
			stmt.Accept(a)
		}
	})
	elseScope := elseCtx.EndScope()

	a.mergeBranches(s, thenScope, elseScope)
}

// withContext runs fn with a.ctx temporarily swapped, restoring it after.
func (a *Analyzer) withContext(ctx *symbols.Context, fn func()) {
	saved := a.ctx
	a.ctx = ctx
	fn()
	a.ctx = saved
}

// mergeBranches folds the two branch-local scopes back into the current
// scope. Each branch ran in its own isolated layer (see VisitIf), so a name
// touched in a branch shows up only in that branch's popped Scope — whether
// the name is brand new or an existing binding that got reassigned.
//
// A name touched in both branches with the same resulting type is a plain
// binding; touched in both with differing types gets conditional-type.
// A name touched in only one branch falls back to its pre-if type (if it
// had one) for the untouched branch: if it had no pre-if type, the result
// is conditionally-assigned and wrapped in Maybe; if it did, the two
// branches still diverge (one kept the old type, the other changed it) and
// that is conditional-type too.
func (a *Analyzer) mergeBranches(node ast.Node, thenScope, elseScope *typesystem.Scope) {
	seen := map[string]bool{}
	names := append(append([]string{}, thenScope.Names()...), elseScope.Names()...)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		thenSym, inThen := thenScope.Get(name)
		elseSym, inElse := elseScope.Get(name)
		outerSym, inOuter := a.ctx.Get(name)

		thenType, elseType := thenSym.Type, elseSym.Type
		if !inThen {
			if inOuter {
				thenType = outerSym.Type
			} else {
				thenType = typesystem.Unknown{}
			}
		}
		if !inElse {
			if inOuter {
				elseType = outerSym.Type
			} else {
				elseType = typesystem.Unknown{}
			}
		}

		switch {
		case !inOuter && inThen != inElse:
			only := thenSym
			if inElse {
				only = elseSym
			}
			a.report(diagnostics.New(diagnostics.CategoryConditionallyAssigned, node.GetToken(), name))
			a.ctx.Add(typesystem.NewSymbol(name, typesystem.NewMaybe(only.Type), typesystem.UnknownValue{}, node))
		case typesystem.Equal(thenType, elseType):
			value := thenSym.StaticValue
			if !inThen {
				value = elseSym.StaticValue
			}
			a.ctx.Add(typesystem.NewSymbol(name, thenType, value, node))
		default:
			a.report(diagnostics.New(diagnostics.CategoryConditionalType, node.GetToken(), name, thenType.String()+" | "+elseType.String()))
			a.ctx.Add(typesystem.NewSymbol(name, typesystem.Unify([]typesystem.Type{thenType, elseType}), typesystem.UnknownValue{}, node))
		}
	}
	if thenRet, elseRet := thenScope.GetReturn(), elseScope.GetReturn(); thenRet != nil || elseRet != nil {
		var t typesystem.Type
		switch {
		case thenRet != nil && elseRet != nil:
			if !typesystem.Equal(thenRet.Type, elseRet.Type) {
				a.report(diagnostics.New(diagnostics.CategoryConditionalReturnType, node.GetToken(), thenRet.Type.String()+" | "+elseRet.Type.String()))
			}
			t = typesystem.Unify([]typesystem.Type{thenRet.Type, elseRet.Type})
		case thenRet != nil:
			t = thenRet.Type
		default:
			t = elseRet.Type
		}
		existing := a.ctx.TopScope().GetReturn()
		if existing != nil {
			t = typesystem.Unify([]typesystem.Type{existing.Type, t})
		}
		a.ctx.TopScope().SetReturn(typesystem.NewSymbol("return", t, typesystem.UnknownValue{}, node))
	}
}

func (a *Analyzer) VisitWhile(s *ast.WhileStatement) {
	ec := a.extend()
	a.ExpressionType(ec, s.Test)
	thenConstraints := a.findConstraints(ec, s.Test, true)
	loopCtx := a.ctx.Copy()
	applyConstraints(loopCtx, thenConstraints)
	a.withContext(loopCtx, func() {
		for _, stmt := range s.Body {
			stmt.Accept(a)
		}
	})
	a.ctx.MergeScope(loopCtx.TopScope())
	a.ctx.ClearConstraints()
}

func (a *Analyzer) VisitFor(s *ast.ForStatement) {
	ec := a.extend()
	iter := a.ExpressionType(ec, s.Iter)
	var itemType typesystem.Type = typesystem.Unknown{}
	switch t := iter.Type.(type) {
	case typesystem.List:
		itemType = t.Item
	case typesystem.Set:
		itemType = t.Item
	case typesystem.Dict:
		itemType = t.Key
	case typesystem.Tuple:
		itemType = typesystem.Unify(t.Elements)
	}
	// For/with targets live in a fresh scope layer that is popped, not
	// merged, once the body is done: the loop/with variable doesn't
	// survive past the statement, matching a name bound nowhere else.
	a.ctx.BeginScope()
	a.assignTarget(s.Target, unknownValue(itemType))
	for _, stmt := range s.Body {
		stmt.Accept(a)
	}
	a.ctx.EndScope()
}

func (a *Analyzer) VisitWith(s *ast.WithStatement) {
	ec := a.extend()
	ctxVal := a.ExpressionType(ec, s.ContextExpr)
	a.ctx.BeginScope()
	if s.OptionalVars != nil {
		a.assignTarget(s.OptionalVars, ctxVal)
	}
	for _, stmt := range s.Body {
		stmt.Accept(a)
	}
	a.ctx.EndScope()
}

func (a *Analyzer) VisitDelete(s *ast.DeleteStatement) {
	for _, target := range s.Targets {
		if id, ok := target.(*ast.Identifier); ok {
			a.report(diagnostics.New(diagnostics.CategoryDelete, id.GetToken(), id.Value))
			a.ctx.Remove(id.Value)
		}
	}
}

func (a *Analyzer) VisitImport(s *ast.ImportStatement) {
	name := s.Path
	if s.Alias != nil {
		name = s.Alias.Value
	}
	mod, err := a.resolveImport(s.Path, 0)
	if err != nil {
		a.report(diagnostics.New(diagnostics.CategoryImportFailed, s.GetToken(), s.Path, err.Error()))
		a.ctx.Add(typesystem.NewSymbol(name, typesystem.Unknown{}, typesystem.UnknownValue{}, s))
		return
	}
	a.ctx.Add(typesystem.NewSymbol(name, mod, typesystem.UnknownValue{}, s))
}

func (a *Analyzer) VisitImportFrom(s *ast.ImportFromStatement) {
	mod, err := a.resolveImport(s.Module, s.Level)
	if err != nil {
		a.report(diagnostics.New(diagnostics.CategoryImportFailed, s.GetToken(), s.Module, err.Error()))
		for _, n := range s.Names {
			name := n.Name
			if n.Alias != "" {
				name = n.Alias
			}
			a.ctx.Add(typesystem.NewSymbol(name, typesystem.Unknown{}, typesystem.UnknownValue{}, s))
		}
		return
	}
	inst, ok := mod.(typesystem.Instance)
	if !ok {
		a.report(diagnostics.New(diagnostics.CategoryInvalidImport, s.GetToken(), "module did not resolve to a scope"))
		return
	}
	for _, n := range s.Names {
		name := n.Name
		if n.Alias != "" {
			name = n.Alias
		}
		if sym, ok := inst.Attributes.Get(n.Name); ok {
			a.ctx.Add(typesystem.NewSymbol(name, sym.Type, sym.StaticValue, s))
		} else {
			a.report(diagnostics.New(diagnostics.CategoryInvalidImport, s.GetToken(), n.Name))
			a.ctx.Add(typesystem.NewSymbol(name, typesystem.Unknown{}, typesystem.UnknownValue{}, s))
		}
	}
}

func (a *Analyzer) VisitPass(s *ast.PassStatement) {}
