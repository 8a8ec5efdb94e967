package diagnostics

import (
	"strings"
	"testing"

	"github.com/funvibe/funxy-check/internal/token"
)

func TestErrorFormatsTemplateAndLocation(t *testing.T) {
	d := New(CategoryUndefined, token.Token{Line: 3, Column: 7}, "x")
	got := d.Error()
	want := "3:7 [undefined] 'x' is undefined"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestErrorPrependsFileWhenSet(t *testing.T) {
	d := NewWithFile(CategoryReassignment, "mod.fx", token.Token{Line: 1, Column: 1}, "y")
	if !strings.HasPrefix(d.Error(), "mod.fx: ") {
		t.Fatalf("Error() = %q, want it to start with the file prefix", d.Error())
	}
}

func TestErrorOmitsLocationForZeroLineToken(t *testing.T) {
	d := New(CategoryDelete, token.Token{}, "z")
	if strings.Contains(d.Error(), "0:0") {
		t.Fatalf("Error() = %q, should not render a zero line:column", d.Error())
	}
}

func TestErrorUnknownCategoryIsReported(t *testing.T) {
	d := &DiagnosticError{Category: Category("made-up")}
	if !strings.Contains(d.Error(), "unknown diagnostic category") {
		t.Fatalf("Error() = %q, want an unknown-category message", d.Error())
	}
}

func TestEveryCategoryHasATemplate(t *testing.T) {
	categories := []Category{
		CategoryUndefined, CategoryUndefinedFunction, CategoryNotAFunction,
		CategoryTypeError, CategoryInconsistentTypes, CategoryReassignment,
		CategoryTypeChange, CategoryMultipleReturnTypes, CategoryConditionalType,
		CategoryConditionalReturnType, CategoryConditionallyAssigned,
		CategoryConstantIfCondition, CategoryMissingArgument, CategoryTooManyArguments,
		CategoryExtraKeyword, CategoryInvalidVarargType, CategoryInvalidKwargType,
		CategoryDefaultArgumentTypeError, CategoryOverlappingClassNames,
		CategoryInOperatorChaining, CategoryIsOperatorChaining,
		CategoryInOperatorArgumentNotList, CategoryDelete, CategoryImportFailed,
		CategoryInvalidImport, CategoryParseError,
	}
	for _, c := range categories {
		if _, ok := templates[c]; !ok {
			t.Errorf("category %s has no template", c)
		}
	}
}

func TestInternalErrorMessage(t *testing.T) {
	tok := token.Token{Line: 5, Column: 2}
	err := &InternalError{Message: "scope stack underflow", Token: tok}
	want := "internal error at 5:2: scope stack underflow"
	if got := err.Error(); got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestPanicRaisesInternalError(t *testing.T) {
	defer func() {
		r := recover()
		ierr, ok := r.(*InternalError)
		if !ok {
			t.Fatalf("recovered %v (%T), want *InternalError", r, r)
		}
		if ierr.Message != "bad state: 3" {
			t.Fatalf("Message = %q, want %q", ierr.Message, "bad state: 3")
		}
	}()
	Panic(token.Token{Line: 1, Column: 1}, "bad state: %d", 3)
}
