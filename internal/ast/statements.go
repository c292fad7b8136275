package ast

import (
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// VarDeclaration declares a binding with `const` or `mut`.
type VarDeclaration struct {
	Token    token.Token
	Kind     string // "const" or "mut"
	Name     string
	Type     TypeAnnotation // nil when inferred
	Init     Expression     // nil only for `mut` without an initializer
	Exported bool
}

func (s *VarDeclaration) statementNode()      {}
func (s *VarDeclaration) TokenLiteral() string { return s.Token.Lexeme }
func (s *VarDeclaration) Pos() token.Position  { return s.Token.Pos }
func (s *VarDeclaration) String() string {
	var out strings.Builder
	if s.Exported {
		out.WriteString("export ")
	}
	out.WriteString(s.Kind)
	out.WriteString(" ")
	out.WriteString(s.Name)
	if s.Type != nil {
		out.WriteString(": ")
		out.WriteString(s.Type.String())
	}
	if s.Init != nil {
		out.WriteString(" = ")
		out.WriteString(s.Init.String())
	}
	return out.String()
}

// IfStatement is `if (cond) then else`. Else may itself be an *IfStatement
// (an `else if` chain) or a *BlockStatement.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      *BlockStatement
	Else      Statement // *IfStatement, *BlockStatement, or nil
}

func (s *IfStatement) statementNode()      {}
func (s *IfStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *IfStatement) Pos() token.Position  { return s.Token.Pos }
func (s *IfStatement) String() string {
	var out strings.Builder
	out.WriteString("if (")
	out.WriteString(s.Condition.String())
	out.WriteString(") ")
	out.WriteString(s.Then.String())
	if s.Else != nil {
		out.WriteString(" else ")
		out.WriteString(s.Else.String())
	}
	return out.String()
}

// ForStatement is the C-style `for (init; cond; update) body` loop.
type ForStatement struct {
	Token  token.Token
	Init   Statement  // nil when omitted
	Cond   Expression // nil when omitted
	Update Expression // nil when omitted
	Body   *BlockStatement
}

func (s *ForStatement) statementNode()      {}
func (s *ForStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForStatement) String() string {
	var out strings.Builder
	out.WriteString("for (")
	if s.Init != nil {
		out.WriteString(s.Init.String())
	}
	out.WriteString("; ")
	if s.Cond != nil {
		out.WriteString(s.Cond.String())
	}
	out.WriteString("; ")
	if s.Update != nil {
		out.WriteString(s.Update.String())
	}
	out.WriteString(") ")
	out.WriteString(s.Body.String())
	return out.String()
}

// ForInStatement iterates VarName over Iterable, which may be a range, an
// array, or any other iterable value.
type ForInStatement struct {
	Token    token.Token
	VarName  string
	Iterable Expression
	Body     *BlockStatement
}

func (s *ForInStatement) statementNode()      {}
func (s *ForInStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ForInStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ForInStatement) String() string {
	return "for (" + s.VarName + " in " + s.Iterable.String() + ") " + s.Body.String()
}

// WhileStatement is the pre-test `while (cond) body` loop.
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (s *WhileStatement) statementNode()      {}
func (s *WhileStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhileStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStatement) String() string {
	return "while (" + s.Condition.String() + ") " + s.Body.String()
}

// DoWhileStatement is the post-test `do body while (cond)` loop.
type DoWhileStatement struct {
	Token     token.Token
	Body      *BlockStatement
	Condition Expression
}

func (s *DoWhileStatement) statementNode()      {}
func (s *DoWhileStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DoWhileStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DoWhileStatement) String() string {
	return "do " + s.Body.String() + " while (" + s.Condition.String() + ")"
}

// WhenStatement is `when (subject) { arms }` used for its side effects;
// every arm's Body is a *BlockStatement.
type WhenStatement struct {
	Token   token.Token
	Subject Expression
	Arms    []WhenArm
}

func (s *WhenStatement) statementNode()      {}
func (s *WhenStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *WhenStatement) Pos() token.Position  { return s.Token.Pos }
func (s *WhenStatement) String() string {
	var out strings.Builder
	out.WriteString("when (")
	out.WriteString(s.Subject.String())
	out.WriteString(") {\n")
	for _, a := range s.Arms {
		out.WriteString("  ")
		out.WriteString(a.String())
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// ReturnStatement exits the enclosing function, optionally with a value.
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare `return`
}

func (s *ReturnStatement) statementNode()      {}
func (s *ReturnStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ReturnStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ReturnStatement) String() string {
	if s.Value == nil {
		return "return"
	}
	return "return " + s.Value.String()
}

// BreakStatement exits the innermost loop or when-statement, optionally
// carrying a value when used inside a loop-as-expression context.
type BreakStatement struct {
	Token token.Token
	Value Expression // nil for a bare `break`
}

func (s *BreakStatement) statementNode()      {}
func (s *BreakStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *BreakStatement) Pos() token.Position  { return s.Token.Pos }
func (s *BreakStatement) String() string {
	if s.Value == nil {
		return "break"
	}
	return "break " + s.Value.String()
}

// ContinueStatement skips to the next iteration of the innermost loop.
type ContinueStatement struct{ Token token.Token }

func (s *ContinueStatement) statementNode()      {}
func (s *ContinueStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ContinueStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ContinueStatement) String() string       { return "continue" }

// ThrowStatement raises Value as an exception.
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (s *ThrowStatement) statementNode()      {}
func (s *ThrowStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ThrowStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ThrowStatement) String() string       { return "throw " + s.Value.String() }

// CatchClause is one `catch (param: Type) { ... }` handler.
type CatchClause struct {
	Param string
	Type  TypeAnnotation // nil when unfiltered
	Body  *BlockStatement
}

func (c CatchClause) String() string {
	if c.Type == nil {
		return "catch (" + c.Param + ") " + c.Body.String()
	}
	return "catch (" + c.Param + ": " + c.Type.String() + ") " + c.Body.String()
}

// TryStatement runs Block, dispatching any thrown value to the first
// matching Catches entry, then always runs Finally.
type TryStatement struct {
	Token   token.Token
	Block   *BlockStatement
	Catches []CatchClause
	Finally *BlockStatement // nil when absent
}

func (s *TryStatement) statementNode()      {}
func (s *TryStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *TryStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TryStatement) String() string {
	var out strings.Builder
	out.WriteString("try ")
	out.WriteString(s.Block.String())
	for _, c := range s.Catches {
		out.WriteString(" ")
		out.WriteString(c.String())
	}
	if s.Finally != nil {
		out.WriteString(" finally ")
		out.WriteString(s.Finally.String())
	}
	return out.String()
}

// ImportSpecifier is one named import binding, optionally aliased.
type ImportSpecifier struct {
	Name  string
	Alias string // equal to Name when there is no `as` clause
}

// ImportStatement brings bindings from Source into scope.
type ImportStatement struct {
	Token     token.Token
	Default   string // empty when absent
	Named     []ImportSpecifier
	Namespace string // `import * as ns from "..."`; empty when absent
	Source    string
}

func (s *ImportStatement) statementNode()      {}
func (s *ImportStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ImportStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ImportStatement) String() string {
	var parts []string
	if s.Default != "" {
		parts = append(parts, s.Default)
	}
	if s.Namespace != "" {
		parts = append(parts, "* as "+s.Namespace)
	}
	if len(s.Named) > 0 {
		names := make([]string, len(s.Named))
		for i, n := range s.Named {
			if n.Alias != "" && n.Alias != n.Name {
				names[i] = n.Name + " as " + n.Alias
			} else {
				names[i] = n.Name
			}
		}
		parts = append(parts, "{ "+strings.Join(names, ", ")+" }")
	}
	return "import " + strings.Join(parts, ", ") + " from \"" + s.Source + "\""
}

// ExportSpecifier is one named re-export entry.
type ExportSpecifier struct {
	Name  string
	Alias string
}

// ExportStatement makes a declaration or a set of bindings visible outside
// the module. Exactly one of Declaration, Specifiers, or Default is set in
// a well-formed program.
type ExportStatement struct {
	Token       token.Token
	Declaration Statement // `export fn/class/enum/const ...`
	Specifiers  []ExportSpecifier
	Default     Expression // `export default expr`
	Source      string     // set for `export { x } from "mod"` re-exports
}

func (s *ExportStatement) statementNode()      {}
func (s *ExportStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *ExportStatement) Pos() token.Position  { return s.Token.Pos }
func (s *ExportStatement) String() string {
	if s.Declaration != nil {
		return s.Declaration.String()
	}
	if s.Default != nil {
		return "export default " + s.Default.String()
	}
	names := make([]string, len(s.Specifiers))
	for i, sp := range s.Specifiers {
		if sp.Alias != "" && sp.Alias != sp.Name {
			names[i] = sp.Name + " as " + sp.Alias
		} else {
			names[i] = sp.Name
		}
	}
	out := "export { " + strings.Join(names, ", ") + " }"
	if s.Source != "" {
		out += " from \"" + s.Source + "\""
	}
	return out
}

// TypeAliasStatement binds Name to Type.
type TypeAliasStatement struct {
	Token    token.Token
	Name     string
	Type     TypeAnnotation
	Exported bool
}

func (s *TypeAliasStatement) statementNode()      {}
func (s *TypeAliasStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *TypeAliasStatement) Pos() token.Position  { return s.Token.Pos }
func (s *TypeAliasStatement) String() string {
	prefix := ""
	if s.Exported {
		prefix = "export "
	}
	return prefix + "type " + s.Name + " = " + s.Type.String()
}

// DeferStatement schedules Expr to run when the enclosing function returns,
// LIFO relative to other defers in the same function.
type DeferStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *DeferStatement) statementNode()      {}
func (s *DeferStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *DeferStatement) Pos() token.Position  { return s.Token.Pos }
func (s *DeferStatement) String() string       { return "defer " + s.Expr.String() }

// UsingStatement binds Name to the result of Init for the scope of Body,
// disposing it (even if Body throws) when the scope exits.
type UsingStatement struct {
	Token token.Token
	Name  string
	Init  Expression
	Body  *BlockStatement
}

func (s *UsingStatement) statementNode()      {}
func (s *UsingStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *UsingStatement) Pos() token.Position  { return s.Token.Pos }
func (s *UsingStatement) String() string {
	return "using (" + s.Name + " = " + s.Init.String() + ") " + s.Body.String()
}

// SendStatement sends Value on Channel, blocking until a receiver is ready
// (or the channel has buffer capacity).
type SendStatement struct {
	Token   token.Token
	Channel Expression
	Value   Expression
}

func (s *SendStatement) statementNode()      {}
func (s *SendStatement) TokenLiteral() string { return s.Token.Lexeme }
func (s *SendStatement) Pos() token.Position  { return s.Token.Pos }
func (s *SendStatement) String() string {
	return s.Channel.String() + " <- " + s.Value.String()
}
