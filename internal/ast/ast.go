// Package ast defines the abstract syntax tree produced by internal/parser
// and consumed by internal/generator. Every node kind is a distinct Go type
// implementing Expression or Statement; there is no catch-all "NodeKind"
// tag, so adding a variant means adding a type and teaching every switch
// about it.
package ast

import (
	"bytes"
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without itself producing a
// value.
type Statement interface {
	Node
	statementNode()
}

// Program is the root of the tree: the ordered top-level statements of one
// source file.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() token.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, s := range p.Statements {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Identifier is a bare name reference: a variable, function, type, or class
// name used as an expression.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) Pos() token.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntLiteral is an integer literal, decimal, hex, octal, or binary.
type IntLiteral struct {
	Token token.Token
	Value int64
}

func (l *IntLiteral) expressionNode()      {}
func (l *IntLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *IntLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *IntLiteral) String() string       { return l.Token.Lexeme }

// FloatLiteral is a floating-point literal.
type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (l *FloatLiteral) expressionNode()      {}
func (l *FloatLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *FloatLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *FloatLiteral) String() string       { return l.Token.Lexeme }

// StringLiteral is a plain (non-template) string literal; Value has escapes
// already decoded and NFC-normalized by the lexer.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (l *StringLiteral) expressionNode()      {}
func (l *StringLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *StringLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *StringLiteral) String() string       { return "\"" + l.Value + "\"" }

// TemplateChunk is one piece of a TemplateStringLiteral: a literal run, or
// an embedded expression parsed from a ${...} span.
type TemplateChunk struct {
	Literal bool
	Text    string
	Expr    Expression
}

// TemplateStringLiteral is a backtick-free template string with ${...}
// interpolations, lowered by the generator into a JS template literal.
type TemplateStringLiteral struct {
	Token  token.Token
	Chunks []TemplateChunk
}

func (l *TemplateStringLiteral) expressionNode()      {}
func (l *TemplateStringLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *TemplateStringLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *TemplateStringLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("\"")
	for _, c := range l.Chunks {
		if c.Literal {
			out.WriteString(c.Text)
		} else {
			out.WriteString("${")
			out.WriteString(c.Expr.String())
			out.WriteString("}")
		}
	}
	out.WriteString("\"")
	return out.String()
}

// BoolLiteral is the true/false literal.
type BoolLiteral struct {
	Token token.Token
	Value bool
}

func (l *BoolLiteral) expressionNode()      {}
func (l *BoolLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *BoolLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *BoolLiteral) String() string       { return l.Token.Lexeme }

// NulLiteral is the `nul` literal.
type NulLiteral struct {
	Token token.Token
}

func (l *NulLiteral) expressionNode()      {}
func (l *NulLiteral) TokenLiteral() string { return l.Token.Lexeme }
func (l *NulLiteral) Pos() token.Position  { return l.Token.Pos }
func (l *NulLiteral) String() string       { return "nul" }

// ThisExpression is the `this` receiver reference.
type ThisExpression struct{ Token token.Token }

func (e *ThisExpression) expressionNode()      {}
func (e *ThisExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *ThisExpression) Pos() token.Position  { return e.Token.Pos }
func (e *ThisExpression) String() string       { return "this" }

// SuperExpression is the `super` reference, valid only inside a subclass
// constructor or method body.
type SuperExpression struct{ Token token.Token }

func (e *SuperExpression) expressionNode()      {}
func (e *SuperExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *SuperExpression) Pos() token.Position  { return e.Token.Pos }
func (e *SuperExpression) String() string       { return "super" }

// ExpressionStatement wraps a bare expression used in statement position.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (s *ExpressionStatement) statementNode()      {}
func (s *ExpressionStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExpressionStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExpressionStatement) String() string {
	if s.Expression == nil {
		return ""
	}
	return s.Expression.String()
}

// BlockStatement is a brace-delimited sequence of statements.
type BlockStatement struct {
	Token      token.Token // the '{'
	Statements []Statement
}

func (s *BlockStatement) statementNode()      {}
func (s *BlockStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *BlockStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BlockStatement) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, st := range s.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(st.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
