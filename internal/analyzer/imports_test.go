package analyzer

import (
	"errors"
	"testing"

	"github.com/funvibe/funxy-check/internal/diagnostics"
	"github.com/funvibe/funxy-check/internal/typesystem"
)

type fakeResolver struct {
	instance typesystem.Instance
	err      error
}

func (f fakeResolver) Resolve(importPath string, level int, currentFile string) (typesystem.Type, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.instance, nil
}

func TestImportBindsResolvedModuleScope(t *testing.T) {
	attrs := typesystem.NewScope()
	attrs.Add(typesystem.NewSymbol("greeting", typesystem.Str{}, typesystem.UnknownValue{}, nil))

	a, diags := analyzeSourceWithResolver(t, "import helper", fakeResolver{
		instance: typesystem.Instance{ClassName: "helper", Attributes: attrs},
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sym, ok := a.Context().GlobalScope().Get("helper")
	if !ok {
		t.Fatal("expected helper to be bound in scope")
	}
	if _, ok := sym.Type.(typesystem.Instance); !ok {
		t.Fatalf("helper = %T, want typesystem.Instance", sym.Type)
	}
}

func TestImportFromBindsIndividualNames(t *testing.T) {
	attrs := typesystem.NewScope()
	attrs.Add(typesystem.NewSymbol("greeting", typesystem.Str{}, typesystem.UnknownValue{}, nil))

	a, diags := analyzeSourceWithResolver(t, "from helper import greeting as g", fakeResolver{
		instance: typesystem.Instance{ClassName: "helper", Attributes: attrs},
	})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	sym, ok := a.Context().GlobalScope().Get("g")
	if !ok || sym.Type.String() != "Str" {
		t.Fatalf("g = %v, ok=%v, want Str", sym, ok)
	}
}

func TestImportResolverErrorReportsImportFailed(t *testing.T) {
	_, diags := analyzeSourceWithResolver(t, "import missing", fakeResolver{err: errors.New("not found")})
	if !hasCategory(diags, diagnostics.CategoryImportFailed) {
		t.Fatalf("expected import-failed diagnostic, got %v", categories(diags))
	}
}
