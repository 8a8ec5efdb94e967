// Package typesystem defines the closed type lattice the checker reasons
// over, plus the Symbol/Scope primitives that pair a name with a type and
// an optional statically-known value. This lattice is a small, closed
// sum of variants rather than a general Hindley-Milner algebra with type
// variables, kinds, and substitution: dynamic typing maps to a tagged
// sum here, dispatched with a type switch over a sealed interface,
// because nothing in this checker ever needs to solve for an unbound
// type variable.
package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the sealed interface implemented by every lattice member.
type Type interface {
	String() string
	typeNode()
}

// Unknown is the bottom-of-knowledge sentinel: compatible with everything,
// never triggers a type error.
type Unknown struct{}

func (Unknown) typeNode()        {}
func (Unknown) String() string   { return "Unknown" }

// NoneType is the singleton absence of a value.
type NoneType struct{}

func (NoneType) typeNode()      {}
func (NoneType) String() string { return "NoneType" }

// Bool is the boolean type.
type Bool struct{}

func (Bool) typeNode()      {}
func (Bool) String() string { return "Bool" }

// Num collapses ints and floats into a single numeric type.
type Num struct{}

func (Num) typeNode()      {}
func (Num) String() string { return "Num" }

// Str is the text type.
type Str struct{}

func (Str) typeNode()      {}
func (Str) String() string { return "Str" }

// List is a homogeneous ordered sequence.
type List struct {
	Item Type
}

func (List) typeNode() {}
func (l List) String() string {
	return fmt.Sprintf("List[%s]", l.Item)
}

// Dict is a homogeneous mapping.
type Dict struct {
	Key   Type
	Value Type
}

func (Dict) typeNode() {}
func (d Dict) String() string {
	return fmt.Sprintf("Dict[%s, %s]", d.Key, d.Value)
}

// Set is a homogeneous unordered collection.
type Set struct {
	Item Type
}

func (Set) typeNode() {}
func (s Set) String() string {
	return fmt.Sprintf("Set[%s]", s.Item)
}

// Tuple is a fixed-length heterogeneous sequence.
type Tuple struct {
	Elements []Type
}

func (Tuple) typeNode() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return fmt.Sprintf("Tuple[%s]", strings.Join(parts, ", "))
}

// BaseTuple is the join of all tuples: a tuple of unknown arity.
type BaseTuple struct{}

func (BaseTuple) typeNode()      {}
func (BaseTuple) String() string { return "Tuple" }

// Maybe is `inner | NoneType`, kept distinct so `is None` narrowing can
// remove the NoneType alternative directly instead of general union
// subtraction.
type Maybe struct {
	Inner Type
}

func (Maybe) typeNode() {}
func (m Maybe) String() string {
	return fmt.Sprintf("Maybe[%s]", m.Inner)
}

// NewMaybe builds a Maybe, enforcing the invariant that a Maybe is
// never nested and never wraps NoneType.
func NewMaybe(inner Type) Type {
	switch t := inner.(type) {
	case NoneType:
		return NoneType{}
	case Maybe:
		return NewMaybe(t.Inner)
	default:
		return Maybe{Inner: inner}
	}
}

// Union is a disjunction of non-Maybe alternatives, flattened and
// deduplicated on construction.
type Union struct {
	Alternatives []Type
}

func (Union) typeNode() {}
func (u Union) String() string {
	parts := make([]string, len(u.Alternatives))
	for i, a := range u.Alternatives {
		parts[i] = a.String()
	}
	sort.Strings(parts)
	return fmt.Sprintf("Union[%s]", strings.Join(parts, ", "))
}

// NewUnion flattens nested unions, drops duplicates, absorbs to Unknown if
// any alternative is Unknown, and collapses a single remaining alternative
// to itself.
func NewUnion(types []Type) Type {
	var flat []Type
	for _, t := range types {
		if u, ok := t.(Union); ok {
			flat = append(flat, u.Alternatives...)
		} else {
			flat = append(flat, t)
		}
	}
	for _, t := range flat {
		if _, ok := t.(Unknown); ok {
			return Unknown{}
		}
	}
	deduped := make([]Type, 0, len(flat))
	for _, t := range flat {
		found := false
		for _, d := range deduped {
			if Equal(d, t) {
				found = true
				break
			}
		}
		if !found {
			deduped = append(deduped, t)
		}
	}
	if len(deduped) == 0 {
		return Unknown{}
	}
	if len(deduped) == 1 {
		return deduped[0]
	}
	return Union{Alternatives: deduped}
}

// Instance is a runtime object with a structural attribute table.
type Instance struct {
	ClassName  string
	Attributes *Scope
}

func (Instance) typeNode()      {}
func (i Instance) String() string { return i.ClassName }

// Arguments describes a callable's formal parameters.
type Arguments struct {
	Names         []string
	ExplicitTypes []Type // per-name; Unknown{} when unannotated
	DefaultTypes  []Type // per-name; Unknown{} when no default
	VarArgName    string // empty when there is no *args parameter
	VarKwArgName  string // empty when there is no **kwargs parameter
	MinCount      int    // count of leading arguments without defaults
}

// WithoutFirst drops the receiver parameter (used when a FunctionDef is a
// method: the first positional parameter, conventionally `self`, is not
// part of the call-site-visible signature).
func (a Arguments) WithoutFirst() Arguments {
	if len(a.Names) == 0 {
		return a
	}
	min := a.MinCount - 1
	if min < 0 {
		min = 0
	}
	return Arguments{
		Names:         append([]string{}, a.Names[1:]...),
		ExplicitTypes: append([]Type{}, a.ExplicitTypes[1:]...),
		DefaultTypes:  append([]Type{}, a.DefaultTypes[1:]...),
		VarArgName:    a.VarArgName,
		VarKwArgName:  a.VarKwArgName,
		MinCount:      min,
	}
}

// TypeOf returns the declared type for a named parameter, or Unknown if
// the name isn't a parameter.
func (a Arguments) TypeOf(name string) (Type, bool) {
	for i, n := range a.Names {
		if n == name {
			return a.ExplicitTypes[i], true
		}
	}
	return Unknown{}, false
}

// Class is a callable that yields an Instance.
type Class struct {
	Name         string
	Arguments    Arguments
	InstanceType Type // an Instance
	StaticScope  *Scope
}

func (Class) typeNode()        {}
func (c Class) String() string { return "Class[" + c.Name + "]" }

// Function is a callable whose ReturnSpec is either a resolved Type or a
// deferred evaluator. It is stored as `any` rather than a typesystem
// interface because the deferred evaluator (internal/analyzer's
// FunctionEvaluator) needs the Statement Visitor and Context to do its
// work, and typesystem must not import analyzer — only analyzer depends
// on typesystem. See ResolvedReturn below and the analyzer's callFunction.
type Function struct {
	Arguments  Arguments
	ReturnSpec any
}

func (Function) typeNode()        {}
func (f Function) String() string { return "Function" }

// ResolvedReturn reports whether ReturnSpec is already a concrete Type
// (as opposed to a deferred evaluator) and returns it if so.
func (f Function) ResolvedReturn() (Type, bool) {
	t, ok := f.ReturnSpec.(Type)
	return t, ok
}

// UnknownValue is the sentinel static value meaning "not decidable at
// check time".
type UnknownValue struct{}

// Equal reports structural equality between two types — used by Union
// deduplication and Scope/Context structural-equality tests.
func Equal(a, b Type) bool {
	switch x := a.(type) {
	case Unknown:
		_, ok := b.(Unknown)
		return ok
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	case Bool:
		_, ok := b.(Bool)
		return ok
	case Num:
		_, ok := b.(Num)
		return ok
	case Str:
		_, ok := b.(Str)
		return ok
	case BaseTuple:
		_, ok := b.(BaseTuple)
		return ok
	case List:
		y, ok := b.(List)
		return ok && Equal(x.Item, y.Item)
	case Set:
		y, ok := b.(Set)
		return ok && Equal(x.Item, y.Item)
	case Dict:
		y, ok := b.(Dict)
		return ok && Equal(x.Key, y.Key) && Equal(x.Value, y.Value)
	case Tuple:
		y, ok := b.(Tuple)
		if !ok || len(x.Elements) != len(y.Elements) {
			return false
		}
		for i := range x.Elements {
			if !Equal(x.Elements[i], y.Elements[i]) {
				return false
			}
		}
		return true
	case Maybe:
		y, ok := b.(Maybe)
		return ok && Equal(x.Inner, y.Inner)
	case Union:
		y, ok := b.(Union)
		if !ok || len(x.Alternatives) != len(y.Alternatives) {
			return false
		}
		for _, xa := range x.Alternatives {
			found := false
			for _, ya := range y.Alternatives {
				if Equal(xa, ya) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	case Instance:
		y, ok := b.(Instance)
		return ok && x.ClassName == y.ClassName
	case Class:
		y, ok := b.(Class)
		return ok && x.Name == y.Name
	case Function:
		_, ok := b.(Function)
		return ok
	}
	return false
}
