package ast

import (
	"bytes"
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// BinaryExpression is an arithmetic, comparison, or bitwise infix operation.
type BinaryExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryExpression) expressionNode()      {}
func (e *BinaryExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *BinaryExpression) Pos() token.Position  { return e.Token.Pos }
func (e *BinaryExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// LogicalExpression is a short-circuiting &&, ||, or ?? operation.
type LogicalExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (e *LogicalExpression) expressionNode()      {}
func (e *LogicalExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *LogicalExpression) Pos() token.Position  { return e.Token.Pos }
func (e *LogicalExpression) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

// UnaryExpression is a prefix +, -, !, or ~ operation.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (e *UnaryExpression) expressionNode()      {}
func (e *UnaryExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *UnaryExpression) Pos() token.Position  { return e.Token.Pos }
func (e *UnaryExpression) String() string {
	return "(" + e.Operator + e.Right.String() + ")"
}

// GroupedExpression is a parenthesized expression, kept in the tree so the
// generator can decide whether parens are still needed at emission time.
type GroupedExpression struct {
	Token token.Token // the '('
	Inner Expression
}

func (e *GroupedExpression) expressionNode()      {}
func (e *GroupedExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *GroupedExpression) Pos() token.Position  { return e.Token.Pos }
func (e *GroupedExpression) String() string       { return e.Inner.String() }

// CallExpression applies Callee to Args.
type CallExpression struct {
	Token    token.Token // the '('
	Callee   Expression
	Args     []Expression
	Optional bool // Callee?.(...)
}

func (e *CallExpression) expressionNode()      {}
func (e *CallExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *CallExpression) Pos() token.Position  { return e.Token.Pos }
func (e *CallExpression) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	sep := "("
	if e.Optional {
		sep = "?.("
	}
	return e.Callee.String() + sep + strings.Join(args, ", ") + ")"
}

// NewExpression constructs an instance of Callee (a class or generic
// instantiation) with Args.
type NewExpression struct {
	Token  token.Token // the 'new' keyword
	Callee Expression
	Args   []Expression
}

func (e *NewExpression) expressionNode()      {}
func (e *NewExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *NewExpression) Pos() token.Position  { return e.Token.Pos }
func (e *NewExpression) String() string {
	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}
	return "new " + e.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

// MemberExpression is a `.`, `?.`, or computed `[...]` property access.
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Property Expression // *Identifier for dot access, any Expression when Computed
	Computed bool
	Optional bool
}

func (e *MemberExpression) expressionNode()      {}
func (e *MemberExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *MemberExpression) Pos() token.Position  { return e.Token.Pos }
func (e *MemberExpression) String() string {
	if e.Computed {
		op := "["
		if e.Optional {
			op = "?.["
		}
		return e.Object.String() + op + e.Property.String() + "]"
	}
	op := "."
	if e.Optional {
		op = "?."
	}
	return e.Object.String() + op + e.Property.String()
}

// ArrayLiteral is an `[elem, elem, ...]` expression.
type ArrayLiteral struct {
	Token    token.Token // the '['
	Elements []Expression
}

func (e *ArrayLiteral) expressionNode()      {}
func (e *ArrayLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *ArrayLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *ArrayLiteral) String() string {
	els := make([]string, len(e.Elements))
	for i, el := range e.Elements {
		els[i] = el.String()
	}
	return "[" + strings.Join(els, ", ") + "]"
}

// ObjectProperty is one key/value entry of an ObjectLiteral.
type ObjectProperty struct {
	Key       Expression // *Identifier or *StringLiteral, or any Expression when Computed
	Value     Expression
	Computed  bool
	Shorthand bool // `{ x }` instead of `{ x: x }`
}

// ObjectLiteral is a `{ key: value, ... }` expression.
type ObjectLiteral struct {
	Token      token.Token // the '{'
	Properties []ObjectProperty
}

func (e *ObjectLiteral) expressionNode()      {}
func (e *ObjectLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *ObjectLiteral) Pos() token.Position  { return e.Token.Pos }
func (e *ObjectLiteral) String() string {
	var out bytes.Buffer
	out.WriteString("{")
	for i, p := range e.Properties {
		if i > 0 {
			out.WriteString(", ")
		}
		if p.Shorthand {
			out.WriteString(p.Key.String())
			continue
		}
		if p.Computed {
			out.WriteString("[" + p.Key.String() + "]")
		} else {
			out.WriteString(p.Key.String())
		}
		out.WriteString(": ")
		out.WriteString(p.Value.String())
	}
	out.WriteString("}")
	return out.String()
}

// AssignmentExpression assigns Value to Target using Operator (=, +=, **=,
// &&=, ||=, ??=, ...).
type AssignmentExpression struct {
	Token    token.Token
	Target   Expression
	Operator string
	Value    Expression
}

func (e *AssignmentExpression) expressionNode()      {}
func (e *AssignmentExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *AssignmentExpression) Pos() token.Position  { return e.Token.Pos }
func (e *AssignmentExpression) String() string {
	return "(" + e.Target.String() + " " + e.Operator + " " + e.Value.String() + ")"
}

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	Token     token.Token // the '?'
	Condition Expression
	Then      Expression
	Else      Expression
}

func (e *TernaryExpression) expressionNode()      {}
func (e *TernaryExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *TernaryExpression) Pos() token.Position  { return e.Token.Pos }
func (e *TernaryExpression) String() string {
	return "(" + e.Condition.String() + " ? " + e.Then.String() + " : " + e.Else.String() + ")"
}

// RangeExpression is `start..end` or the inclusive `start..=end`, typically
// used in for-in heads.
type RangeExpression struct {
	Token     token.Token // the '..' or '..=' token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (e *RangeExpression) expressionNode()      {}
func (e *RangeExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *RangeExpression) Pos() token.Position  { return e.Token.Pos }
func (e *RangeExpression) String() string {
	op := ".."
	if e.Inclusive {
		op = "..="
	}
	return "(" + e.Start.String() + op + e.End.String() + ")"
}

// CastExpression is `expr of Type`, a checked conversion.
type CastExpression struct {
	Token token.Token // the 'of' keyword
	Expr  Expression
	Type  TypeAnnotation
}

func (e *CastExpression) expressionNode()      {}
func (e *CastExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *CastExpression) Pos() token.Position  { return e.Token.Pos }
func (e *CastExpression) String() string {
	return "(" + e.Expr.String() + " of " + e.Type.String() + ")"
}

// TypeCheckExpression is `expr is Type`, a boolean runtime type test.
type TypeCheckExpression struct {
	Token token.Token // the 'is' keyword
	Expr  Expression
	Type  TypeAnnotation
}

func (e *TypeCheckExpression) expressionNode()      {}
func (e *TypeCheckExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *TypeCheckExpression) Pos() token.Position  { return e.Token.Pos }
func (e *TypeCheckExpression) String() string {
	return "(" + e.Expr.String() + " is " + e.Type.String() + ")"
}

// InstanceofExpression is `expr instanceof Class`, a JS-style prototype
// chain test distinct from the structural `is` check.
type InstanceofExpression struct {
	Token token.Token
	Expr  Expression
	Class Expression
}

func (e *InstanceofExpression) expressionNode()      {}
func (e *InstanceofExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *InstanceofExpression) Pos() token.Position  { return e.Token.Pos }
func (e *InstanceofExpression) String() string {
	return e.Expr.String() + " instanceof " + e.Class.String()
}

// AwaitExpression suspends until Expr, a Promise-shaped value, settles.
type AwaitExpression struct {
	Token token.Token
	Expr  Expression
}

func (e *AwaitExpression) expressionNode()      {}
func (e *AwaitExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *AwaitExpression) Pos() token.Position  { return e.Token.Pos }
func (e *AwaitExpression) String() string       { return "await " + e.Expr.String() }

// GoExpression launches Call as a detached goroutine-style task.
type GoExpression struct {
	Token token.Token
	Call  *CallExpression
}

func (e *GoExpression) expressionNode()      {}
func (e *GoExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *GoExpression) Pos() token.Position  { return e.Token.Pos }
func (e *GoExpression) String() string       { return "go " + e.Call.String() }

// ChannelExpression is `chan ElemType(capacity)`, constructing a new
// channel value.
type ChannelExpression struct {
	Token    token.Token
	ElemType TypeAnnotation
	Capacity Expression // nil means unbuffered
}

func (e *ChannelExpression) expressionNode()      {}
func (e *ChannelExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *ChannelExpression) Pos() token.Position  { return e.Token.Pos }
func (e *ChannelExpression) String() string {
	if e.Capacity != nil {
		return "chan " + e.ElemType.String() + "(" + e.Capacity.String() + ")"
	}
	return "chan " + e.ElemType.String()
}

// ReceiveExpression is `<-ch`, receiving the next value from a channel in
// expression position.
type ReceiveExpression struct {
	Token   token.Token
	Channel Expression
}

func (e *ReceiveExpression) expressionNode()      {}
func (e *ReceiveExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *ReceiveExpression) Pos() token.Position  { return e.Token.Pos }
func (e *ReceiveExpression) String() string       { return "<-" + e.Channel.String() }

// TypeofExpression yields the runtime type tag of Expr as a string.
type TypeofExpression struct {
	Token token.Token
	Expr  Expression
}

func (e *TypeofExpression) expressionNode()      {}
func (e *TypeofExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *TypeofExpression) Pos() token.Position  { return e.Token.Pos }
func (e *TypeofExpression) String() string       { return "typeof " + e.Expr.String() }

// VoidExpression evaluates Expr and discards its result, yielding nul.
type VoidExpression struct {
	Token token.Token
	Expr  Expression
}

func (e *VoidExpression) expressionNode()      {}
func (e *VoidExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *VoidExpression) Pos() token.Position  { return e.Token.Pos }
func (e *VoidExpression) String() string       { return "void " + e.Expr.String() }

// DeleteExpression removes a property named by a member expression.
type DeleteExpression struct {
	Token  token.Token
	Target *MemberExpression
}

func (e *DeleteExpression) expressionNode()      {}
func (e *DeleteExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *DeleteExpression) Pos() token.Position  { return e.Token.Pos }
func (e *DeleteExpression) String() string       { return "delete " + e.Target.String() }

// YieldExpression suspends a generator function, optionally delegating
// (yield*) to an iterable.
type YieldExpression struct {
	Token     token.Token
	Expr      Expression // may be nil
	Delegate  bool
}

func (e *YieldExpression) expressionNode()      {}
func (e *YieldExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *YieldExpression) Pos() token.Position  { return e.Token.Pos }
func (e *YieldExpression) String() string {
	kw := "yield"
	if e.Delegate {
		kw = "yield*"
	}
	if e.Expr == nil {
		return kw
	}
	return kw + " " + e.Expr.String()
}

// WhenExpression is `when (subject) { arm, arm, ... }` used where a value
// is required; every arm's Body must be an Expression.
type WhenExpression struct {
	Token   token.Token
	Subject Expression
	Arms    []WhenArm
}

func (e *WhenExpression) expressionNode()      {}
func (e *WhenExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *WhenExpression) Pos() token.Position  { return e.Token.Pos }
func (e *WhenExpression) String() string {
	var out bytes.Buffer
	out.WriteString("when (")
	out.WriteString(e.Subject.String())
	out.WriteString(") {")
	for _, a := range e.Arms {
		out.WriteString(" ")
		out.WriteString(a.String())
		out.WriteString(";")
	}
	out.WriteString(" }")
	return out.String()
}
