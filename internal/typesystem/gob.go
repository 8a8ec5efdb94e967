package typesystem

import (
	"bytes"
	"encoding/gob"
)

func init() {
	gob.Register(Unknown{})
	gob.Register(NoneType{})
	gob.Register(Bool{})
	gob.Register(Num{})
	gob.Register(Str{})
	gob.Register(List{})
	gob.Register(Dict{})
	gob.Register(Set{})
	gob.Register(Tuple{})
	gob.Register(BaseTuple{})
	gob.Register(Maybe{})
	gob.Register(Union{})
	gob.Register(Instance{})
	gob.Register(Class{})
	gob.Register(Function{})
	gob.Register(UnknownValue{})
}

// scopeGob is the serializable mirror of Scope used by internal/modcache
// to persist an analyzed module's exported scope across runs. It drops
// each Symbol's AssignNode (an ast.Node, meaningless once the source
// file that produced it is gone) and the Function variant's ReturnSpec
// when it's a live *analyzer.FunctionEvaluator rather than a resolved
// Type — a cached function is always reported with its return already
// resolved, since nothing can call back into a disposed-of walk.
type scopeGob struct {
	Order     []string
	Symbols   map[string]symbolGob
	HasReturn bool
	Return    symbolGob
}

type symbolGob struct {
	Name        string
	Type        Type
	StaticValue any
}

func toSymbolGob(s Symbol) symbolGob {
	t := s.Type
	if fn, ok := t.(Function); ok {
		if _, resolved := fn.ResolvedReturn(); !resolved {
			fn.ReturnSpec = Unknown{}
			t = fn
		}
	}
	value := s.StaticValue
	if value == nil {
		value = UnknownValue{}
	}
	return symbolGob{Name: s.Name, Type: t, StaticValue: value}
}

func fromSymbolGob(g symbolGob) Symbol {
	return Symbol{Name: g.Name, Type: g.Type, StaticValue: g.StaticValue}
}

// GobEncode implements gob.GobEncoder for *Scope.
func (s *Scope) GobEncode() ([]byte, error) {
	g := scopeGob{
		Order:   append([]string{}, s.order...),
		Symbols: make(map[string]symbolGob, len(s.symbols)),
	}
	for name, sym := range s.symbols {
		g.Symbols[name] = toSymbolGob(sym)
	}
	if s.ret != nil {
		g.HasReturn = true
		g.Return = toSymbolGob(*s.ret)
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder for *Scope.
func (s *Scope) GobDecode(data []byte) error {
	var g scopeGob
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return err
	}
	s.order = g.Order
	s.symbols = make(map[string]Symbol, len(g.Symbols))
	for name, sg := range g.Symbols {
		s.symbols[name] = fromSymbolGob(sg)
	}
	if g.HasReturn {
		r := fromSymbolGob(g.Return)
		s.ret = &r
	}
	return nil
}
