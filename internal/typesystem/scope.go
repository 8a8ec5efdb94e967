package typesystem

import (
	"sort"
	"strings"

	"github.com/funvibe/funxy-check/internal/ast"
)

// Symbol binds a name to a type, an optional statically-known value, and
// the AST node that introduced it (kept for diagnostic locations only,
// never consulted by equality or unification).
type Symbol struct {
	Name           string
	Type           Type
	StaticValue    any // UnknownValue{}, a canonical nil for NoneType, or a decidable Go value
	AssignNode     ast.Node
}

// NewSymbol builds a Symbol, forcing the canonical-None invariant: for
// NoneType the value is always a canonical None.
func NewSymbol(name string, t Type, value any, node ast.Node) Symbol {
	if _, ok := t.(NoneType); ok {
		value = nil
	}
	return Symbol{Name: name, Type: t, StaticValue: value, AssignNode: node}
}

// Scope is an insertion-ordered table of symbols, optionally carrying a
// return symbol for function bodies.
type Scope struct {
	order   []string
	symbols map[string]Symbol
	ret     *Symbol
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{symbols: make(map[string]Symbol)}
}

// Add inserts or overwrites a symbol, preserving original insertion order
// for a name that is reassigned.
func (s *Scope) Add(sym Symbol) {
	if _, exists := s.symbols[sym.Name]; !exists {
		s.order = append(s.order, sym.Name)
	}
	s.symbols[sym.Name] = sym
}

// Remove deletes a symbol by name; no-op if absent.
func (s *Scope) Remove(name string) {
	if _, ok := s.symbols[name]; !ok {
		return
	}
	delete(s.symbols, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Get looks up a symbol by name in this scope only (no outer fallthrough).
func (s *Scope) Get(name string) (Symbol, bool) {
	sym, ok := s.symbols[name]
	return sym, ok
}

// Contains reports whether name is bound in this scope.
func (s *Scope) Contains(name string) bool {
	_, ok := s.symbols[name]
	return ok
}

// Names returns the bound names in insertion order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Symbols returns a shallow snapshot: name -> Symbol.
func (s *Scope) Symbols() map[string]Symbol {
	out := make(map[string]Symbol, len(s.symbols))
	for k, v := range s.symbols {
		out[k] = v
	}
	return out
}

// Merge right-biased merges other into s: other's bindings win on conflict.
func (s *Scope) Merge(other *Scope) {
	if other == nil {
		return
	}
	for _, name := range other.order {
		s.Add(other.symbols[name])
	}
	if other.ret != nil {
		r := *other.ret
		s.ret = &r
	}
}

// SetReturn records the unification of all returns seen so far in this scope.
func (s *Scope) SetReturn(sym Symbol) {
	r := sym
	s.ret = &r
}

// GetReturn returns the scope's return symbol, or nil if none was set.
func (s *Scope) GetReturn() *Symbol {
	return s.ret
}

// GetReturnType returns the scope's return type, defaulting to NoneType
// when no return statement was ever visited.
func (s *Scope) GetReturnType() Type {
	if s.ret == nil {
		return NoneType{}
	}
	return s.ret.Type
}

// Equal is the structural equality of two Scopes: all symbols and the
// return symbol match. Used by the scope tests; the Function Evaluator
// keys its cache on the argument scope's String() form instead.
func (s *Scope) Equal(other *Scope) bool {
	if other == nil {
		return s == nil
	}
	if s == nil {
		return false
	}
	if len(s.symbols) != len(other.symbols) {
		return false
	}
	for name, sym := range s.symbols {
		osym, ok := other.symbols[name]
		if !ok || !Equal(sym.Type, osym.Type) {
			return false
		}
	}
	if (s.ret == nil) != (other.ret == nil) {
		return false
	}
	if s.ret != nil && !Equal(s.ret.Type, other.ret.Type) {
		return false
	}
	return true
}

// String renders the scope the way the original reference implementation
// does: one "name type" line per symbol, sorted by name for determinism.
func (s *Scope) String() string {
	names := make([]string, len(s.order))
	copy(names, s.order)
	sort.Strings(names)
	var b strings.Builder
	for _, name := range names {
		sym := s.symbols[name]
		b.WriteString(name)
		b.WriteByte(' ')
		b.WriteString(sym.Type.String())
		b.WriteByte('\n')
	}
	return b.String()
}
