package ast

import "github.com/funvibe/funxy-check/internal/token"

// TypeExpr is a syntactic type annotation, e.g. `int`, `List[int]`,
// `Optional[str]`. It is resolved to a typesystem.Type by
// internal/analyzer/types_builder.go; it never participates in the
// lattice itself.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is a bare name annotation: `int`, `str`, `MyClass`.
type NamedType struct {
	BaseNode
	Name string
}

func (t *NamedType) typeExprNode() {}

// GenericType is a parameterized annotation: `List[int]`, `Dict[str, int]`.
type GenericType struct {
	BaseNode
	Name string
	Args []TypeExpr
}

func (t *GenericType) typeExprNode() {}

// NewNamedType is a convenience constructor for the parser.
func NewNamedType(tok token.Token, name string) *NamedType {
	return &NamedType{BaseNode: NewBaseNode(tok), Name: name}
}
