package ast

import (
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// Pattern is one arm-head in a `when` match: a literal, a binding, a
// destructuring shape, a type test, or a combination of these.
type Pattern interface {
	Node
	patternNode()
}

// LiteralPattern matches the arm subject against a constant value.
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (p *LiteralPattern) patternNode()         {}
func (p *LiteralPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *LiteralPattern) Pos() token.Position  { return p.Token.Pos }
func (p *LiteralPattern) String() string       { return p.Value.String() }

// IdentPattern binds the subject unconditionally to Name.
type IdentPattern struct {
	Token token.Token
	Name  string
}

func (p *IdentPattern) patternNode()         {}
func (p *IdentPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *IdentPattern) Pos() token.Position  { return p.Token.Pos }
func (p *IdentPattern) String() string       { return p.Name }

// ArrayPattern destructures the subject as an array/tuple.
type ArrayPattern struct {
	Token    token.Token // the '['
	Elements []Pattern
}

func (p *ArrayPattern) patternNode()         {}
func (p *ArrayPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ArrayPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ArrayPattern) String() string {
	parts := make([]string, len(p.Elements))
	for i, e := range p.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectPatternField is one `key: subpattern` entry of an ObjectPattern.
type ObjectPatternField struct {
	Key   string
	Value Pattern
}

// ObjectPattern destructures the subject as an object/record.
type ObjectPattern struct {
	Token  token.Token // the '{'
	Fields []ObjectPatternField
}

func (p *ObjectPattern) patternNode()         {}
func (p *ObjectPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ObjectPattern) Pos() token.Position  { return p.Token.Pos }
func (p *ObjectPattern) String() string {
	parts := make([]string, len(p.Fields))
	for i, f := range p.Fields {
		parts[i] = f.Key + ": " + f.Value.String()
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

// TypePattern matches when the subject `is` Type, optionally binding it to
// Name (`n is int`).
type TypePattern struct {
	Token token.Token // the 'is' keyword
	Name  string      // empty when no binding is introduced
	Type  TypeAnnotation
}

func (p *TypePattern) patternNode()         {}
func (p *TypePattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *TypePattern) Pos() token.Position  { return p.Token.Pos }
func (p *TypePattern) String() string {
	if p.Name == "" {
		return "is " + p.Type.String()
	}
	return p.Name + " is " + p.Type.String()
}

// OrPattern matches when the subject matches any one of Patterns.
type OrPattern struct {
	Token    token.Token
	Patterns []Pattern
}

func (p *OrPattern) patternNode()         {}
func (p *OrPattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *OrPattern) Pos() token.Position  { return p.Token.Pos }
func (p *OrPattern) String() string {
	parts := make([]string, len(p.Patterns))
	for i, sub := range p.Patterns {
		parts[i] = sub.String()
	}
	return strings.Join(parts, " | ")
}

// ElsePattern is the catch-all arm head.
type ElsePattern struct{ Token token.Token }

func (p *ElsePattern) patternNode()         {}
func (p *ElsePattern) TokenLiteral() string { return p.Token.Lexeme }
func (p *ElsePattern) Pos() token.Position  { return p.Token.Pos }
func (p *ElsePattern) String() string       { return "else" }

// WhenArm is one `pattern [where guard] => body` entry. Body is an
// Expression when the enclosing when is a WhenExpression and a
// *BlockStatement when it is a WhenStatement.
type WhenArm struct {
	Token   token.Token
	Pattern Pattern
	Guard   Expression // nil when no `where` clause
	Body    Node
}

func (a WhenArm) String() string {
	var out strings.Builder
	out.WriteString(a.Pattern.String())
	if a.Guard != nil {
		out.WriteString(" where ")
		out.WriteString(a.Guard.String())
	}
	out.WriteString(" => ")
	out.WriteString(a.Body.String())
	return out.String()
}
