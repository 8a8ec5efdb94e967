// Package diagnostics defines the typed categories the analyzer reports
// and the DiagnosticError that carries one occurrence: lexer/parser/
// analyzer phase codes paired with the closed category list a static
// checker run emits.
package diagnostics

import (
	"fmt"

	"github.com/funvibe/funxy-check/internal/token"
)

// Phase names the pipeline stage a diagnostic originated in.
type Phase string

const (
	PhaseLexer    Phase = "lexer"
	PhaseParser   Phase = "parser"
	PhaseAnalyzer Phase = "analyzer"
	PhaseModules  Phase = "modules"
)

// Category is one of the closed set of warning/error kinds the checker
// can emit.
type Category string

const (
	CategoryUndefined                  Category = "undefined"
	CategoryUndefinedFunction          Category = "undefined-function"
	CategoryNotAFunction               Category = "not-a-function"
	CategoryTypeError                  Category = "type-error"
	CategoryInconsistentTypes          Category = "inconsistent-types"
	CategoryReassignment               Category = "reassignment"
	CategoryTypeChange                 Category = "type-change"
	CategoryMultipleReturnTypes        Category = "multiple-return-types"
	CategoryConditionalType            Category = "conditional-type"
	CategoryConditionalReturnType      Category = "conditional-return-type"
	CategoryConditionallyAssigned      Category = "conditionally-assigned"
	CategoryConstantIfCondition        Category = "constant-if-condition"
	CategoryMissingArgument            Category = "missing-argument"
	CategoryTooManyArguments           Category = "too-many-arguments"
	CategoryExtraKeyword               Category = "extra-keyword"
	CategoryInvalidVarargType          Category = "invalid-vararg-type"
	CategoryInvalidKwargType           Category = "invalid-kwarg-type"
	CategoryDefaultArgumentTypeError   Category = "default-argument-type-error"
	CategoryOverlappingClassNames      Category = "overlapping-class-names"
	CategoryInOperatorChaining         Category = "in-operator-chaining"
	CategoryIsOperatorChaining         Category = "is-operator-chaining"
	CategoryInOperatorArgumentNotList  Category = "in-operator-argument-not-list-or-dict"
	CategoryDelete                     Category = "delete"
	CategoryImportFailed               Category = "import-failed"
	CategoryInvalidImport              Category = "invalid-import"
	CategoryParseError                 Category = "parse-error"
)

var templates = map[Category]string{
	CategoryUndefined:                 "'%s' is undefined",
	CategoryUndefinedFunction:         "call to undefined function '%s'",
	CategoryNotAFunction:              "'%s' of type %s is not callable",
	CategoryTypeError:                 "type error: %s",
	CategoryInconsistentTypes:         "inconsistent types: %s",
	CategoryReassignment:              "'%s' is reassigned",
	CategoryTypeChange:                "'%s' changes type from %s to %s",
	CategoryMultipleReturnTypes:       "function returns multiple types: %s",
	CategoryConditionalType:           "'%s' has a conditional type: %s",
	CategoryConditionalReturnType:     "function has a conditional return type: %s",
	CategoryConditionallyAssigned:     "'%s' is only conditionally assigned",
	CategoryConstantIfCondition:       "if condition is always %s",
	CategoryMissingArgument:           "missing required argument '%s'",
	CategoryTooManyArguments:          "too many arguments: expected %d, got %d",
	CategoryExtraKeyword:              "unexpected keyword argument '%s'",
	CategoryInvalidVarargType:         "vararg '%s' has invalid type %s",
	CategoryInvalidKwargType:          "kwarg '%s' has invalid type %s",
	CategoryDefaultArgumentTypeError:  "default value for '%s' does not match declared type %s",
	CategoryOverlappingClassNames:     "class '%s' overlaps with an existing name",
	CategoryInOperatorChaining:        "'in' operator cannot be chained",
	CategoryIsOperatorChaining:        "'is' operator cannot be chained",
	CategoryInOperatorArgumentNotList: "argument to 'in' must be a list, set, or dict, got %s",
	CategoryDelete:                    "'%s' is deleted",
	CategoryImportFailed:              "failed to import '%s': %s",
	CategoryInvalidImport:             "invalid import: %s",
	CategoryParseError:                "%s",
}

// DiagnosticError is one reported occurrence of a Category, at a
// specific token in a specific file.
type DiagnosticError struct {
	Category Category
	Phase    Phase
	Args     []any
	Token    token.Token
	File     string
	Hint     string
}

func (e *DiagnosticError) Error() string {
	template, ok := templates[e.Category]
	if !ok {
		return fmt.Sprintf("unknown diagnostic category: %s", e.Category)
	}
	message := fmt.Sprintf(template, e.Args...)

	prefix := ""
	if e.File != "" {
		prefix = e.File + ": "
	}
	if e.Token.Line > 0 {
		return fmt.Sprintf("%s%d:%d [%s] %s", prefix, e.Token.Line, e.Token.Column, e.Category, message)
	}
	return fmt.Sprintf("%s[%s] %s", prefix, e.Category, message)
}

// New builds a DiagnosticError for category at tok.
func New(category Category, tok token.Token, args ...any) *DiagnosticError {
	return &DiagnosticError{Category: category, Phase: PhaseAnalyzer, Token: tok, Args: args}
}

// NewWithFile is New plus a source file path, for multi-module runs.
func NewWithFile(category Category, file string, tok token.Token, args ...any) *DiagnosticError {
	d := New(category, tok, args...)
	d.File = file
	return d
}

// InternalError signals a checker-internal invariant violation — never a
// consequence of the program under analysis, always a bug in the
// checker itself. pkg/cli's runChecked recovers exactly one of these per
// run and reports it distinctly from ordinary diagnostics.
type InternalError struct {
	Message string
	Token   token.Token
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at %d:%d: %s", e.Token.Line, e.Token.Column, e.Message)
}

// Panic raises an InternalError; paired with pkg/cli's recover.
func Panic(tok token.Token, format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...), Token: tok})
}
