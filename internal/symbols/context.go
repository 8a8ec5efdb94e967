// Package symbols manages the lexically-scoped stack of typesystem.Scope
// values a checker walk carries as it descends into function bodies,
// branches, and comprehensions, plus the narrowing constraints collected
// along an `if`/`while` condition.
package symbols

import (
	"fmt"

	"github.com/funvibe/funxy-check/internal/typesystem"
)

// Context is a stack of scopes (innermost last) plus a flat map of
// narrowing constraints accumulated while evaluating a boolean test
// expression (`x is not None`, `isinstance(x, int)`, ...).
type Context struct {
	scopes      []*typesystem.Scope
	constraints map[string]typesystem.Type
}

// NewContext starts a fresh context with a single global scope.
func NewContext() *Context {
	return &Context{
		scopes:      []*typesystem.Scope{typesystem.NewScope()},
		constraints: make(map[string]typesystem.Type),
	}
}

// BeginScope pushes a new, empty scope layer.
func (c *Context) BeginScope() {
	c.scopes = append(c.scopes, typesystem.NewScope())
}

// EndScope pops the innermost scope layer. Popping the last remaining
// layer is a programmer error, not a checked-input error, so it panics.
func (c *Context) EndScope() *typesystem.Scope {
	if len(c.scopes) <= 1 {
		panic("symbols: EndScope called with no non-global scope to pop")
	}
	top := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	return top
}

// TopScope returns the innermost scope.
func (c *Context) TopScope() *typesystem.Scope {
	return c.scopes[len(c.scopes)-1]
}

// GlobalScope returns the outermost scope.
func (c *Context) GlobalScope() *typesystem.Scope {
	return c.scopes[0]
}

// FindScope returns the innermost scope that binds name, searching from
// the top of the stack down to the global scope.
func (c *Context) FindScope(name string) (*typesystem.Scope, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if c.scopes[i].Contains(name) {
			return c.scopes[i], true
		}
	}
	return nil, false
}

// Get resolves name against the scope stack, applying any active
// narrowing constraint on top of the symbol's declared type.
func (c *Context) Get(name string) (typesystem.Symbol, bool) {
	scope, ok := c.FindScope(name)
	if !ok {
		return typesystem.Symbol{}, false
	}
	sym, _ := scope.Get(name)
	if constraint, ok := c.constraints[name]; ok {
		sym.Type = typesystem.Intersection(constraint, sym.Type)
	}
	return sym, true
}

// Add binds a symbol in the innermost scope.
func (c *Context) Add(sym typesystem.Symbol) {
	c.TopScope().Add(sym)
}

// Remove deletes name from whichever scope currently binds it.
func (c *Context) Remove(name string) {
	if scope, ok := c.FindScope(name); ok {
		scope.Remove(name)
	}
}

// Copy produces a shallow copy: a new stack of the same *Scope pointers,
// and a fresh copy of the constraint map. Scopes are shared references
// deliberately: branch exploration mutates scopes in place and the
// caller merges the results back explicitly.
func (c *Context) Copy() *Context {
	scopes := make([]*typesystem.Scope, len(c.scopes))
	copy(scopes, c.scopes)
	constraints := make(map[string]typesystem.Type, len(c.constraints))
	for k, v := range c.constraints {
		constraints[k] = v
	}
	return &Context{scopes: scopes, constraints: constraints}
}

// MergeScope merges scope into the current top scope (right-biased).
func (c *Context) MergeScope(scope *typesystem.Scope) {
	c.TopScope().Merge(scope)
}

// AddConstraint narrows name's type for the remainder of the current
// branch: if a constraint already exists it is intersected with t,
// otherwise it is intersected with the symbol's current declared type so
// a constraint can never widen what's already known.
func (c *Context) AddConstraint(name string, t typesystem.Type) {
	base, ok := c.constraints[name]
	if !ok {
		if sym, found := c.Get(name); found {
			base = sym.Type
		} else {
			base = typesystem.Unknown{}
		}
	}
	c.constraints[name] = typesystem.Intersection(base, t)
}

// GetConstraints returns a snapshot of the active narrowing constraints.
func (c *Context) GetConstraints() map[string]typesystem.Type {
	out := make(map[string]typesystem.Type, len(c.constraints))
	for k, v := range c.constraints {
		out[k] = v
	}
	return out
}

// ClearConstraints drops all narrowing constraints, e.g. after a loop body
// that may reassign names the condition narrowed.
func (c *Context) ClearConstraints() {
	c.constraints = make(map[string]typesystem.Type)
}

// ExtendedContext layers one fresh, mutable scope over an immutable
// borrowed base Context, for side-effect-free expression evaluation that
// must still be able to introduce comprehension/lambda-local bindings
// without mutating the caller's scopes.
type ExtendedContext struct {
	base *Context
	top  *typesystem.Scope
}

// NewExtendedContext wraps base with a fresh top layer.
func NewExtendedContext(base *Context) *ExtendedContext {
	return &ExtendedContext{base: base, top: typesystem.NewScope()}
}

// Get checks the extended top layer first, then falls through to base.
func (e *ExtendedContext) Get(name string) (typesystem.Symbol, bool) {
	if sym, ok := e.top.Get(name); ok {
		if constraint, ok := e.base.constraints[name]; ok {
			sym.Type = typesystem.Intersection(constraint, sym.Type)
		}
		return sym, true
	}
	return e.base.Get(name)
}

// Add binds a symbol in the extended top layer only; the base context is
// never mutated.
func (e *ExtendedContext) Add(sym typesystem.Symbol) {
	e.top.Add(sym)
}

// Copy is unsupported: an ExtendedContext is a disposable view, not a
// branchable context.
func (e *ExtendedContext) Copy() *ExtendedContext {
	panic(fmt.Errorf("symbols: ExtendedContext.Copy is not supported"))
}

// AddConstraint delegates to the base context, since narrowing applies
// to the names the base context owns.
func (e *ExtendedContext) AddConstraint(name string, t typesystem.Type) {
	e.base.AddConstraint(name, t)
}

// Base returns the underlying borrowed context, for callers that need to
// drop back to plain Context semantics (e.g. to recurse into a nested
// statement visit).
func (e *ExtendedContext) Base() *Context {
	return e.base
}
