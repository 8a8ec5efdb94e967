package symbols

import (
	"testing"

	"github.com/funvibe/funxy-check/internal/typesystem"
)

func sym(name string, t typesystem.Type) typesystem.Symbol {
	return typesystem.NewSymbol(name, t, typesystem.UnknownValue{}, nil)
}

func TestContextGetFindsOuterScope(t *testing.T) {
	c := NewContext()
	c.Add(sym("x", typesystem.Num{}))
	c.BeginScope()
	got, ok := c.Get("x")
	if !ok || !typesystem.Equal(got.Type, typesystem.Num{}) {
		t.Fatalf("Get(x) from nested scope = %v, %v, want Num, true", got, ok)
	}
}

func TestContextEndScopeOnLastScopePanics(t *testing.T) {
	c := NewContext()
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected EndScope on the global scope to panic")
		}
	}()
	c.EndScope()
}

func TestContextCopySharesScopesButNotConstraints(t *testing.T) {
	c := NewContext()
	c.Add(sym("x", typesystem.Num{}))
	cp := c.Copy()

	cp.Add(sym("y", typesystem.Str{}))
	if !c.TopScope().Contains("y") {
		t.Fatal("Copy should share the same *Scope pointers, so adds via the copy are visible to the original")
	}

	cp.AddConstraint("x", typesystem.Bool{})
	if _, ok := c.GetConstraints()["x"]; ok {
		t.Fatal("Copy should not share the constraint map with the original")
	}
}

func TestContextAddConstraintNarrowsAgainstDeclaredType(t *testing.T) {
	c := NewContext()
	c.Add(sym("x", typesystem.Maybe{Inner: typesystem.Num{}}))
	c.AddConstraint("x", typesystem.Num{})

	got, _ := c.Get("x")
	if !typesystem.Equal(got.Type, typesystem.Num{}) {
		t.Fatalf("Get(x) after constraining Maybe[Num] to Num = %v, want Num", got.Type)
	}
}

func TestContextClearConstraints(t *testing.T) {
	c := NewContext()
	c.Add(sym("x", typesystem.Maybe{Inner: typesystem.Num{}}))
	c.AddConstraint("x", typesystem.Num{})
	c.ClearConstraints()

	got, _ := c.Get("x")
	if !typesystem.Equal(got.Type, typesystem.Maybe{Inner: typesystem.Num{}}) {
		t.Fatalf("Get(x) after ClearConstraints = %v, want Maybe[Num]", got.Type)
	}
}

func TestContextRemove(t *testing.T) {
	c := NewContext()
	c.Add(sym("x", typesystem.Num{}))
	c.Remove("x")
	if _, ok := c.Get("x"); ok {
		t.Fatal("expected x to be removed")
	}
}

func TestExtendedContextAddDoesNotMutateBase(t *testing.T) {
	base := NewContext()
	ec := NewExtendedContext(base)
	ec.Add(sym("local", typesystem.Str{}))

	if _, ok := base.Get("local"); ok {
		t.Fatal("ExtendedContext.Add must not leak into the base context")
	}
	got, ok := ec.Get("local")
	if !ok || !typesystem.Equal(got.Type, typesystem.Str{}) {
		t.Fatalf("ec.Get(local) = %v, %v, want Str, true", got, ok)
	}
}

func TestExtendedContextFallsThroughToBase(t *testing.T) {
	base := NewContext()
	base.Add(sym("x", typesystem.Num{}))
	ec := NewExtendedContext(base)

	got, ok := ec.Get("x")
	if !ok || !typesystem.Equal(got.Type, typesystem.Num{}) {
		t.Fatalf("ec.Get(x) = %v, %v, want Num, true", got, ok)
	}
}

func TestExtendedContextAddConstraintDelegatesToBase(t *testing.T) {
	base := NewContext()
	base.Add(sym("x", typesystem.Maybe{Inner: typesystem.Num{}}))
	ec := NewExtendedContext(base)

	ec.AddConstraint("x", typesystem.Num{})

	got, _ := base.Get("x")
	if !typesystem.Equal(got.Type, typesystem.Num{}) {
		t.Fatalf("base.Get(x) after ec.AddConstraint = %v, want Num", got.Type)
	}
}

func TestExtendedContextCopyPanics(t *testing.T) {
	ec := NewExtendedContext(NewContext())
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected ExtendedContext.Copy to panic")
		}
	}()
	ec.Copy()
}
