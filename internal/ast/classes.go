package ast

import (
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// Modifiers are the visibility/storage keywords that may precede a class
// member declaration. At most one of Public, Private, Protected applies;
// Static and Readonly compose freely with any of them.
type Modifiers struct {
	Public    bool
	Private   bool
	Protected bool
	Static    bool
	Abstract  bool
	Readonly  bool
}

func (m Modifiers) String() string {
	var parts []string
	switch {
	case m.Private:
		parts = append(parts, "private")
	case m.Protected:
		parts = append(parts, "protected")
	case m.Public:
		parts = append(parts, "public")
	}
	if m.Static {
		parts = append(parts, "static")
	}
	if m.Abstract {
		parts = append(parts, "abstract")
	}
	if m.Readonly {
		parts = append(parts, "readonly")
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " ") + " "
}

// Decorator is an `@name(args)` annotation attached to a class or member.
type Decorator struct {
	Token token.Token // the '@'
	Name  string
	Args  []Expression
}

func (d Decorator) String() string {
	if len(d.Args) == 0 {
		return "@" + d.Name
	}
	parts := make([]string, len(d.Args))
	for i, a := range d.Args {
		parts[i] = a.String()
	}
	return "@" + d.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ClassMember is a field or method entry of a ClassDeclaration body.
type ClassMember interface {
	Node
	classMemberNode()
}

// FieldMember is a class field declaration, with an optional initializer.
type FieldMember struct {
	Token      token.Token
	Name       string
	Type       TypeAnnotation // nil when inferred from Init
	Init       Expression     // nil when uninitialized
	Modifiers  Modifiers
	Decorators []Decorator
}

func (m *FieldMember) classMemberNode()     {}
func (m *FieldMember) TokenLiteral() string { return m.Token.Lexeme }
func (m *FieldMember) Pos() token.Position  { return m.Token.Pos }
func (m *FieldMember) String() string {
	var out strings.Builder
	for _, d := range m.Decorators {
		out.WriteString(d.String())
		out.WriteString(" ")
	}
	out.WriteString(m.Modifiers.String())
	out.WriteString(m.Name)
	if m.Type != nil {
		out.WriteString(": ")
		out.WriteString(m.Type.String())
	}
	if m.Init != nil {
		out.WriteString(" = ")
		out.WriteString(m.Init.String())
	}
	return out.String()
}

// MethodMember is a class method, including the constructor (IsConstructor
// true, Name "constructor").
type MethodMember struct {
	Token         token.Token // the 'fn' keyword, or the constructor name
	Name          string
	Params        []Param
	ReturnType    TypeAnnotation
	Body          *BlockStatement // nil for an abstract method
	Modifiers     Modifiers
	IsConstructor bool
	IsAsync       bool
	Decorators    []Decorator
}

func (m *MethodMember) classMemberNode()     {}
func (m *MethodMember) TokenLiteral() string { return m.Token.Lexeme }
func (m *MethodMember) Pos() token.Position  { return m.Token.Pos }
func (m *MethodMember) String() string {
	var out strings.Builder
	for _, d := range m.Decorators {
		out.WriteString(d.String())
		out.WriteString(" ")
	}
	out.WriteString(m.Modifiers.String())
	if m.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString(m.Name)
	out.WriteString("(")
	out.WriteString(paramsString(m.Params))
	out.WriteString(")")
	if m.ReturnType != nil {
		out.WriteString(": ")
		out.WriteString(m.ReturnType.String())
	}
	if m.Body != nil {
		out.WriteString(" ")
		out.WriteString(m.Body.String())
	}
	return out.String()
}

// ClassDeclaration is a class definition with optional superclass,
// implemented interfaces, and member list.
type ClassDeclaration struct {
	Token      token.Token // the 'class' keyword
	Name       string
	Abstract   bool
	Super      *Identifier
	Interfaces []*Identifier
	Members    []ClassMember
	Decorators []Decorator
	Exported   bool
	DocComment string
}

func (d *ClassDeclaration) statementNode()      {}
func (d *ClassDeclaration) TokenLiteral() string { return d.Token.Lexeme }
func (d *ClassDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *ClassDeclaration) String() string {
	var out strings.Builder
	for _, dec := range d.Decorators {
		out.WriteString(dec.String())
		out.WriteString(" ")
	}
	if d.Exported {
		out.WriteString("export ")
	}
	if d.Abstract {
		out.WriteString("abstract ")
	}
	out.WriteString("class ")
	out.WriteString(d.Name)
	if d.Super != nil {
		out.WriteString(" extends " + d.Super.String())
	}
	if len(d.Interfaces) > 0 {
		names := make([]string, len(d.Interfaces))
		for i, n := range d.Interfaces {
			names[i] = n.String()
		}
		out.WriteString(" implements " + strings.Join(names, ", "))
	}
	out.WriteString(" {\n")
	for _, m := range d.Members {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(m.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// EnumMember is one `Name` or `Name = value` entry of an EnumDeclaration.
type EnumMember struct {
	Name  string
	Value Expression // nil when auto-assigned
}

// EnumDeclaration is a closed set of named constant members.
type EnumDeclaration struct {
	Token    token.Token // the 'enum' keyword
	Name     string
	Members  []EnumMember
	Exported bool
}

func (d *EnumDeclaration) statementNode()      {}
func (d *EnumDeclaration) TokenLiteral() string { return d.Token.Lexeme }
func (d *EnumDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *EnumDeclaration) String() string {
	var out strings.Builder
	if d.Exported {
		out.WriteString("export ")
	}
	out.WriteString("enum " + d.Name + " {\n")
	for _, m := range d.Members {
		out.WriteString("  " + m.Name)
		if m.Value != nil {
			out.WriteString(" = " + m.Value.String())
		}
		out.WriteString(",\n")
	}
	out.WriteString("}")
	return out.String()
}
