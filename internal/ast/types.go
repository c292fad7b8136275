package ast

import (
	"strconv"
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// TypeAnnotation is any node appearing in type-annotation position: after a
// `:` on a declaration, parameter, or field, or nested inside another type.
type TypeAnnotation interface {
	Node
	typeNode()
}

// SimpleType is a bare or generic-instantiated name, e.g. `int`, `string`,
// `List<int>`.
type SimpleType struct {
	Token    token.Token
	Name     string
	TypeArgs []TypeAnnotation
}

func (t *SimpleType) typeNode()           {}
func (t *SimpleType) TokenLiteral() string { return t.Token.Lexeme }
func (t *SimpleType) Pos() token.Position  { return t.Token.Pos }
func (t *SimpleType) String() string {
	if len(t.TypeArgs) == 0 {
		return t.Name
	}
	args := make([]string, len(t.TypeArgs))
	for i, a := range t.TypeArgs {
		args[i] = a.String()
	}
	return t.Name + "<" + strings.Join(args, ", ") + ">"
}

// ArrayType is `Elem[]` or the fixed-size `Elem[N]`.
type ArrayType struct {
	Token token.Token // the '['
	Elem  TypeAnnotation
	Size  *int
}

func (t *ArrayType) typeNode()           {}
func (t *ArrayType) TokenLiteral() string { return t.Token.Lexeme }
func (t *ArrayType) Pos() token.Position  { return t.Token.Pos }
func (t *ArrayType) String() string {
	if t.Size != nil {
		return t.Elem.String() + "[" + strconv.Itoa(*t.Size) + "]"
	}
	return t.Elem.String() + "[]"
}

// MapType is `map<Key, Value>`.
type MapType struct {
	Token token.Token
	Key   TypeAnnotation
	Value TypeAnnotation
}

func (t *MapType) typeNode()           {}
func (t *MapType) TokenLiteral() string { return t.Token.Lexeme }
func (t *MapType) Pos() token.Position  { return t.Token.Pos }
func (t *MapType) String() string {
	return "map<" + t.Key.String() + ", " + t.Value.String() + ">"
}

// ObjectTypeProperty is one field of an ObjectType literal.
type ObjectTypeProperty struct {
	Name     string
	Type     TypeAnnotation
	Optional bool
}

// ObjectType is an inline `{ name: Type, ... }` structural type.
type ObjectType struct {
	Token      token.Token // the '{'
	Properties []ObjectTypeProperty
}

func (t *ObjectType) typeNode()           {}
func (t *ObjectType) TokenLiteral() string { return t.Token.Lexeme }
func (t *ObjectType) Pos() token.Position  { return t.Token.Pos }
func (t *ObjectType) String() string {
	parts := make([]string, len(t.Properties))
	for i, p := range t.Properties {
		q := ""
		if p.Optional {
			q = "?"
		}
		parts[i] = p.Name + q + ": " + p.Type.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// TupleType is a fixed-arity, heterogeneous `[T1, T2, ...]` type.
type TupleType struct {
	Token    token.Token // the '['
	Elements []TypeAnnotation
}

func (t *TupleType) typeNode()           {}
func (t *TupleType) TokenLiteral() string { return t.Token.Lexeme }
func (t *TupleType) Pos() token.Position  { return t.Token.Pos }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elements))
	for i, e := range t.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FunctionType is `(Params) -> Return`, a first-class function signature.
type FunctionType struct {
	Token  token.Token // the '('
	Params []TypeAnnotation
	Return TypeAnnotation
}

func (t *FunctionType) typeNode()           {}
func (t *FunctionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *FunctionType) Pos() token.Position  { return t.Token.Pos }
func (t *FunctionType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// UnionType is `A | B | ...`.
type UnionType struct {
	Token   token.Token
	Options []TypeAnnotation
}

func (t *UnionType) typeNode()           {}
func (t *UnionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *UnionType) Pos() token.Position  { return t.Token.Pos }
func (t *UnionType) String() string {
	parts := make([]string, len(t.Options))
	for i, o := range t.Options {
		parts[i] = o.String()
	}
	return strings.Join(parts, " | ")
}

// IntersectionType is `A & B & ...`.
type IntersectionType struct {
	Token   token.Token
	Options []TypeAnnotation
}

func (t *IntersectionType) typeNode()           {}
func (t *IntersectionType) TokenLiteral() string { return t.Token.Lexeme }
func (t *IntersectionType) Pos() token.Position  { return t.Token.Pos }
func (t *IntersectionType) String() string {
	parts := make([]string, len(t.Options))
	for i, o := range t.Options {
		parts[i] = o.String()
	}
	return strings.Join(parts, " & ")
}
