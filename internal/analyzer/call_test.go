package analyzer

import (
	"testing"

	"github.com/funvibe/funxy-check/internal/diagnostics"
)

func TestExtraKeywordArgumentReported(t *testing.T) {
	_, diags := analyzeSource(t, "def f(x) { pass }\nf(1, y=2)")
	if !hasCategory(diags, diagnostics.CategoryExtraKeyword) {
		t.Fatalf("expected extra-keyword diagnostic, got %v", categories(diags))
	}
}

func TestVarArgsAbsorbExtraPositionals(t *testing.T) {
	_, diags := analyzeSource(t, "def f(*args) { pass }\nf(1, 2, 3)")
	if hasCategory(diags, diagnostics.CategoryTooManyArguments) {
		t.Fatalf("*args should absorb extra positionals without a diagnostic, got %v", categories(diags))
	}
}

func TestKwArgsAbsorbExtraKeywords(t *testing.T) {
	_, diags := analyzeSource(t, "def f(**kwargs) { pass }\nf(x=1, y=2)")
	if hasCategory(diags, diagnostics.CategoryExtraKeyword) {
		t.Fatalf("**kwargs should absorb extra keywords without a diagnostic, got %v", categories(diags))
	}
}

func TestDefaultArgumentUsedWhenOmitted(t *testing.T) {
	a, diags := analyzeSource(t, "def f(x=1) -> int {\n  return x\n}\ny = f()")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sym, _ := a.Context().GlobalScope().Get("y")
	if sym.Type.String() != "Num" {
		t.Fatalf("y = %s, want Num", sym.Type)
	}
}

func TestCallingNonFunctionReported(t *testing.T) {
	_, diags := analyzeSource(t, "x = 1\nx()")
	if !hasCategory(diags, diagnostics.CategoryNotAFunction) {
		t.Fatalf("expected not-a-function diagnostic, got %v", categories(diags))
	}
}

func TestArgumentTypeMismatchAgainstDeclaredParamType(t *testing.T) {
	_, diags := analyzeSource(t, `def f(x: int) { pass }
f("s")`)
	if !hasCategory(diags, diagnostics.CategoryTypeError) {
		t.Fatalf("expected type-error diagnostic for a Str argument against a declared int param, got %v", categories(diags))
	}
}

func TestRecursiveFunctionDoesNotHang(t *testing.T) {
	a, diags := analyzeSource(t, `def fact(n) {
  if n is not None {
    return fact(n)
  }
  return 1
}
x = fact(1)`)
	if hasCategory(diags, diagnostics.CategoryUndefinedFunction) {
		t.Fatalf("fact should resolve to itself, got %v", categories(diags))
	}
	if _, ok := a.Context().GlobalScope().Get("x"); !ok {
		t.Fatal("expected x to be bound from the recursive call's return type")
	}
}
