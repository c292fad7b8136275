package ast

import (
	"strings"

	"github.com/xbodwf/ljc/internal/token"
)

// Param is one function or arrow-function parameter.
type Param struct {
	Name     string
	Type     TypeAnnotation // nil when unannotated (inferred by context)
	Default  Expression     // nil when required
	Variadic bool           // `...rest`
}

func (p Param) String() string {
	var out strings.Builder
	if p.Variadic {
		out.WriteString("...")
	}
	out.WriteString(p.Name)
	if p.Type != nil {
		out.WriteString(": ")
		out.WriteString(p.Type.String())
	}
	if p.Default != nil {
		out.WriteString(" = ")
		out.WriteString(p.Default.String())
	}
	return out.String()
}

func paramsString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

// FunctionDeclaration is a top-level or nested named function definition.
type FunctionDeclaration struct {
	Token      token.Token // the 'fn' keyword
	Name       string
	TypeParams []string
	Params     []Param
	ReturnType TypeAnnotation // nil when unannotated
	Body       *BlockStatement
	IsAsync    bool
	Exported   bool
	DocComment string
}

func (d *FunctionDeclaration) statementNode()      {}
func (d *FunctionDeclaration) TokenLiteral() string { return d.Token.Lexeme }
func (d *FunctionDeclaration) Pos() token.Position  { return d.Token.Pos }
func (d *FunctionDeclaration) String() string {
	var out strings.Builder
	if d.Exported {
		out.WriteString("export ")
	}
	if d.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("fn ")
	out.WriteString(d.Name)
	if len(d.TypeParams) > 0 {
		out.WriteString("<" + strings.Join(d.TypeParams, ", ") + ">")
	}
	out.WriteString("(")
	out.WriteString(paramsString(d.Params))
	out.WriteString(")")
	if d.ReturnType != nil {
		out.WriteString(": ")
		out.WriteString(d.ReturnType.String())
	}
	out.WriteString(" ")
	out.WriteString(d.Body.String())
	return out.String()
}

// ArrowFunctionExpression is a `(params) => body` lambda. Body is an
// Expression for the concise form or a *BlockStatement for the block form.
type ArrowFunctionExpression struct {
	Token      token.Token // the '(' or the sole param identifier
	Params     []Param
	ReturnType TypeAnnotation
	Body       Node
	IsAsync    bool
}

func (e *ArrowFunctionExpression) expressionNode()      {}
func (e *ArrowFunctionExpression) TokenLiteral() string { return e.Token.Lexeme }
func (e *ArrowFunctionExpression) Pos() token.Position  { return e.Token.Pos }
func (e *ArrowFunctionExpression) String() string {
	var out strings.Builder
	if e.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("(")
	out.WriteString(paramsString(e.Params))
	out.WriteString(")")
	if e.ReturnType != nil {
		out.WriteString(": ")
		out.WriteString(e.ReturnType.String())
	}
	out.WriteString(" => ")
	out.WriteString(e.Body.String())
	return out.String()
}
