package parser

import (
	"testing"

	"github.com/funvibe/funxy-check/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(src, "test.fx")
	prog := p.ParseProgram()
	if len(p.Errors()) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, p.Errors())
	}
	return prog
}

func TestParseSimpleAssignment(t *testing.T) {
	prog := parseOK(t, "x = 5")
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	assign, ok := prog.Statements[0].(*ast.AssignStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.AssignStatement", prog.Statements[0])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(assign.Targets))
	}
	if _, ok := assign.Value.(*ast.IntLiteral); !ok {
		t.Fatalf("value is %T, want *ast.IntLiteral", assign.Value)
	}
}

func TestParseChainedAssignment(t *testing.T) {
	prog := parseOK(t, "a = b = 1")
	assign := prog.Statements[0].(*ast.AssignStatement)
	if len(assign.Targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(assign.Targets))
	}
}

func TestParseArithmeticPrecedence(t *testing.T) {
	prog := parseOK(t, "x = 1 + 2 * 3")
	assign := prog.Statements[0].(*ast.AssignStatement)
	bin, ok := assign.Value.(*ast.BinOp)
	if !ok || bin.Op != "+" {
		t.Fatalf("top-level op = %#v, want + at the top", assign.Value)
	}
	rhs, ok := bin.Right.(*ast.BinOp)
	if !ok || rhs.Op != "*" {
		t.Fatalf("right operand = %#v, want a * BinOp (higher precedence binds tighter)", bin.Right)
	}
}

func TestParseFloorDivAndPowerPrecedence(t *testing.T) {
	prog := parseOK(t, "x = 2 ** 3 // 4")
	assign := prog.Statements[0].(*ast.AssignStatement)
	bin := assign.Value.(*ast.BinOp)
	if bin.Op != "//" {
		t.Fatalf("top-level op = %s, want //", bin.Op)
	}
	if _, ok := bin.Left.(*ast.BinOp); !ok {
		t.Fatalf("left operand = %#v, want a ** BinOp (power binds tighter than floordiv)", bin.Left)
	}
}

func TestParseFunctionDefWithDefaultsAndVarargs(t *testing.T) {
	prog := parseOK(t, "def f(x: int, y=1, *args, **kwargs) -> int { return x }")
	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDef", prog.Statements[0])
	}
	if fn.Name.Value != "f" {
		t.Fatalf("Name = %s, want f", fn.Name.Value)
	}
	if len(fn.Params) != 4 {
		t.Fatalf("got %d params, want 4", len(fn.Params))
	}
	if fn.Params[0].ExplicitType == nil {
		t.Fatal("param x should have an explicit type annotation")
	}
	if fn.Params[1].Default == nil {
		t.Fatal("param y should have a default value")
	}
	if !fn.Params[2].IsVarArg {
		t.Fatal("param args should be a vararg")
	}
	if !fn.Params[3].IsKwArg {
		t.Fatal("param kwargs should be a kwarg")
	}
	if fn.ReturnType == nil {
		t.Fatal("expected a declared return type")
	}
}

func TestParseClassDefSkipsBaseList(t *testing.T) {
	prog := parseOK(t, "class Dog(Animal) { def bark(self) { pass } }")
	cls, ok := prog.Statements[0].(*ast.ClassDef)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ClassDef", prog.Statements[0])
	}
	if cls.Name.Value != "Dog" {
		t.Fatalf("Name = %s, want Dog", cls.Name.Value)
	}
	if len(cls.Body) != 1 {
		t.Fatalf("got %d body statements, want 1", len(cls.Body))
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseOK(t, "if a { x = 1 } else if b { x = 2 } else { x = 3 }")
	outer, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", prog.Statements[0])
	}
	if len(outer.Orelse) != 1 {
		t.Fatalf("got %d else statements, want 1 (the nested else-if)", len(outer.Orelse))
	}
	if _, ok := outer.Orelse[0].(*ast.IfStatement); !ok {
		t.Fatalf("else branch is %T, want a nested *ast.IfStatement", outer.Orelse[0])
	}
}

func TestParseForLoop(t *testing.T) {
	prog := parseOK(t, "for x in items { print(x) }")
	forStmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForStatement", prog.Statements[0])
	}
	if _, ok := forStmt.Target.(*ast.Identifier); !ok {
		t.Fatalf("Target is %T, want *ast.Identifier", forStmt.Target)
	}
}

func TestParseListComprehension(t *testing.T) {
	prog := parseOK(t, "x = [a for a in items if a]")
	assign := prog.Statements[0].(*ast.AssignStatement)
	comp, ok := assign.Value.(*ast.ListComp)
	if !ok {
		t.Fatalf("value is %T, want *ast.ListComp", assign.Value)
	}
	if len(comp.Generators) != 1 || len(comp.Generators[0].Ifs) != 1 {
		t.Fatalf("got %#v, want one generator with one condition", comp.Generators)
	}
}

func TestParseDictLiteralVsSetLiteralVsDictComp(t *testing.T) {
	prog := parseOK(t, "a = {1, 2}\nb = {1: 2}\nc = {k: v for k in items}")
	if _, ok := prog.Statements[0].(*ast.AssignStatement).Value.(*ast.SetLiteral); !ok {
		t.Fatal("{1, 2} should parse as a SetLiteral")
	}
	if _, ok := prog.Statements[1].(*ast.AssignStatement).Value.(*ast.DictLiteral); !ok {
		t.Fatal("{1: 2} should parse as a DictLiteral")
	}
	if _, ok := prog.Statements[2].(*ast.AssignStatement).Value.(*ast.DictComp); !ok {
		t.Fatal("{k: v for k in items} should parse as a DictComp")
	}
}

func TestParseChainedComparisonBecomesOneCompareNode(t *testing.T) {
	prog := parseOK(t, "x = a < b <= c")
	assign := prog.Statements[0].(*ast.AssignStatement)
	cmp, ok := assign.Value.(*ast.Compare)
	if !ok {
		t.Fatalf("value is %T, want *ast.Compare", assign.Value)
	}
	if len(cmp.Ops) != 2 || len(cmp.Comparators) != 2 {
		t.Fatalf("got ops=%v comparators=%d, want 2 chained operators", cmp.Ops, len(cmp.Comparators))
	}
}

func TestParseIsNotAndNotIn(t *testing.T) {
	prog := parseOK(t, "x = a is not None\ny = a not in items")
	cmp1 := prog.Statements[0].(*ast.AssignStatement).Value.(*ast.Compare)
	if cmp1.Ops[0] != "is not" {
		t.Fatalf("op = %q, want \"is not\"", cmp1.Ops[0])
	}
	cmp2 := prog.Statements[1].(*ast.AssignStatement).Value.(*ast.Compare)
	if cmp2.Ops[0] != "not in" {
		t.Fatalf("op = %q, want \"not in\"", cmp2.Ops[0])
	}
}

func TestParseCallWithKeywordArguments(t *testing.T) {
	prog := parseOK(t, "f(1, 2, name=3)")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expression is %T, want *ast.CallExpr", stmt.Expression)
	}
	if len(call.Args) != 2 {
		t.Fatalf("got %d positional args, want 2", len(call.Args))
	}
	if len(call.Keywords) != 1 || call.Keywords[0].Name != "name" {
		t.Fatalf("got %#v, want one keyword arg named 'name'", call.Keywords)
	}
}

func TestParseCallWithSplatArguments(t *testing.T) {
	prog := parseOK(t, "f(*args, **kwargs)")
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	call, ok := stmt.Expression.(*ast.CallExpr)
	if !ok {
		t.Fatalf("expression is %T, want *ast.CallExpr", stmt.Expression)
	}
	if len(call.Args) != 0 {
		t.Fatalf("got %d positional args, want 0", len(call.Args))
	}
	if len(call.Keywords) != 2 || call.Keywords[0].Name != "*args" || call.Keywords[1].Name != "**kwargs" {
		t.Fatalf("got %#v, want splats named '*args' and '**kwargs'", call.Keywords)
	}
}

func TestParseSliceExpression(t *testing.T) {
	prog := parseOK(t, "x = items[1:5:2]")
	assign := prog.Statements[0].(*ast.AssignStatement)
	sub, ok := assign.Value.(*ast.SubscriptExpr)
	if !ok {
		t.Fatalf("value is %T, want *ast.SubscriptExpr", assign.Value)
	}
	slice, ok := sub.Index.(*ast.SliceExpr)
	if !ok {
		t.Fatalf("index is %T, want *ast.SliceExpr", sub.Index)
	}
	if slice.Lower == nil || slice.Upper == nil || slice.Step == nil {
		t.Fatalf("expected all three slice parts to be present, got %#v", slice)
	}
}

func TestParseEmptyTuple(t *testing.T) {
	prog := parseOK(t, "x = ()")
	assign := prog.Statements[0].(*ast.AssignStatement)
	tup, ok := assign.Value.(*ast.TupleLiteral)
	if !ok || len(tup.Elements) != 0 {
		t.Fatalf("value = %#v, want an empty TupleLiteral", assign.Value)
	}
}

func TestParseWithStatement(t *testing.T) {
	prog := parseOK(t, "with open(\"f\") as fh { pass }")
	w, ok := prog.Statements[0].(*ast.WithStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WithStatement", prog.Statements[0])
	}
	if w.OptionalVars == nil {
		t.Fatal("expected an `as` target to be recorded")
	}
}

func TestParseImportFromWithLeadingDots(t *testing.T) {
	prog := parseOK(t, "from ..pkg import a, b as c")
	imp, ok := prog.Statements[0].(*ast.ImportFromStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ImportFromStatement", prog.Statements[0])
	}
	if imp.Level != 2 {
		t.Fatalf("Level = %d, want 2", imp.Level)
	}
	if imp.Module != "pkg" {
		t.Fatalf("Module = %q, want pkg", imp.Module)
	}
	if len(imp.Names) != 2 || imp.Names[1].Alias != "c" {
		t.Fatalf("Names = %#v, want b aliased to c", imp.Names)
	}
}

func TestParseErrorOnMismatchedToken(t *testing.T) {
	p := New("def f(", "test.fx")
	p.ParseProgram()
	if len(p.Errors()) == 0 {
		t.Fatal("expected a parse error for an unterminated parameter list")
	}
}
