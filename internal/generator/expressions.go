package generator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
)

// expr renders e as a single ECMAScript expression. It never writes to
// g.out directly so callers can embed the result inline (in a `const x =
// ...` binding, an IIFE condition, a template chunk, ...).
func (g *Generator) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Identifier:
		return n.Value
	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.FloatLiteral:
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *ast.StringLiteral:
		return strconv.Quote(n.Value)
	case *ast.TemplateStringLiteral:
		return g.templateString(n)
	case *ast.BoolLiteral:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.NulLiteral:
		return "null"
	case *ast.ThisExpression:
		return "this"
	case *ast.SuperExpression:
		return "super"
	case *ast.GroupedExpression:
		return "(" + g.expr(n.Inner) + ")"
	case *ast.ArrayLiteral:
		return g.arrayLiteral(n)
	case *ast.ObjectLiteral:
		return g.objectLiteral(n)
	case *ast.BinaryExpression:
		return g.expr(n.Left) + " " + n.Operator + " " + g.expr(n.Right)
	case *ast.LogicalExpression:
		return g.expr(n.Left) + " " + n.Operator + " " + g.expr(n.Right)
	case *ast.UnaryExpression:
		return n.Operator + g.expr(n.Right)
	case *ast.AssignmentExpression:
		return g.expr(n.Target) + " " + n.Operator + " " + g.expr(n.Value)
	case *ast.TernaryExpression:
		return g.expr(n.Condition) + " ? " + g.expr(n.Then) + " : " + g.expr(n.Else)
	case *ast.CallExpression:
		return g.callExpression(n)
	case *ast.NewExpression:
		return g.newExpression(n)
	case *ast.MemberExpression:
		return g.memberExpression(n)
	case *ast.RangeExpression:
		g.usesRange = true
		return fmt.Sprintf("range(%s, %s, %t)", g.expr(n.Start), g.expr(n.End), n.Inclusive)
	case *ast.CastExpression:
		return g.castExpression(n)
	case *ast.TypeCheckExpression:
		return "(" + g.typeTest(g.expr(n.Expr), n.Type) + ")"
	case *ast.InstanceofExpression:
		return g.expr(n.Expr) + " instanceof " + g.expr(n.Class)
	case *ast.AwaitExpression:
		return "await " + g.expr(n.Expr)
	case *ast.GoExpression:
		g.usesSpawn = true
		return "spawn(() => " + g.expr(n.Call) + ")"
	case *ast.ChannelExpression:
		g.usesChannel = true
		if n.Capacity != nil {
			return "new Channel(" + g.expr(n.Capacity) + ")"
		}
		return "new Channel()"
	case *ast.ReceiveExpression:
		return "(await " + g.expr(n.Channel) + ".recv())"
	case *ast.TypeofExpression:
		g.usesTypeOf = true
		return "typeOf(" + g.expr(n.Expr) + ")"
	case *ast.VoidExpression:
		return "void " + g.expr(n.Expr)
	case *ast.DeleteExpression:
		return "delete " + g.expr(n.Target)
	case *ast.YieldExpression:
		kw := "yield"
		if n.Delegate {
			kw = "yield*"
		}
		if n.Expr == nil {
			return kw
		}
		return kw + " " + g.expr(n.Expr)
	case *ast.ArrowFunctionExpression:
		return g.arrowFunction(n)
	case *ast.WhenExpression:
		return g.whenExpression(n)
	default:
		g.errorf(diag.CodeInternal, e.Pos(), "generator: unhandled expression %T", e)
		return "undefined"
	}
}

func (g *Generator) templateString(n *ast.TemplateStringLiteral) string {
	var out strings.Builder
	out.WriteString("`")
	for _, c := range n.Chunks {
		if c.Literal {
			out.WriteString(c.Text)
			continue
		}
		out.WriteString("${")
		out.WriteString(g.expr(c.Expr))
		out.WriteString("}")
	}
	out.WriteString("`")
	return out.String()
}

func (g *Generator) arrayLiteral(n *ast.ArrayLiteral) string {
	parts := make([]string, len(n.Elements))
	for i, el := range n.Elements {
		parts[i] = g.expr(el)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (g *Generator) objectLiteral(n *ast.ObjectLiteral) string {
	parts := make([]string, len(n.Properties))
	for i, p := range n.Properties {
		if p.Shorthand {
			parts[i] = g.expr(p.Key)
			continue
		}
		var key string
		switch k := p.Key.(type) {
		case *ast.Identifier:
			key = k.Value
		case *ast.StringLiteral:
			key = strconv.Quote(k.Value)
		default:
			key = "[" + g.expr(p.Key) + "]"
		}
		parts[i] = key + ": " + g.expr(p.Value)
	}
	return "{ " + strings.Join(parts, ", ") + " }"
}

func (g *Generator) callExpression(n *ast.CallExpression) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.expr(a)
	}
	sep := "("
	if n.Optional {
		sep = "?.("
	}
	return g.expr(n.Callee) + sep + strings.Join(args, ", ") + ")"
}

func (g *Generator) newExpression(n *ast.NewExpression) string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = g.expr(a)
	}
	return "new " + g.expr(n.Callee) + "(" + strings.Join(args, ", ") + ")"
}

// memberExpression rewrites `this.name` / `x.name` into `this.#name` /
// `x.#name` when name is private in the class currently being emitted.
func (g *Generator) memberExpression(n *ast.MemberExpression) string {
	if n.Computed {
		op := "["
		if n.Optional {
			op = "?.["
		}
		return g.expr(n.Object) + op + g.expr(n.Property) + "]"
	}
	ident, ok := n.Property.(*ast.Identifier)
	name := ""
	if ok {
		name = ident.Value
	} else {
		name = g.expr(n.Property)
	}
	if ok && g.isPrivateName(name) {
		name = "#" + name
	}
	op := "."
	if n.Optional {
		op = "?."
	}
	return g.expr(n.Object) + op + name
}

// castExpression lowers `expr of T`. Numeric casts null-sentinel on a
// failed coercion rather than producing NaN; a named-class target uses an
// instanceof-guarded ternary rather than passing the value through
// unchecked, per the cast translation rules.
func (g *Generator) castExpression(n *ast.CastExpression) string {
	inner := g.expr(n.Expr)
	switch t := n.Type.(type) {
	case *ast.SimpleType:
		switch t.Name {
		case "int":
			return fmt.Sprintf("((($v) => { const $n = Math.trunc(Number($v)); return Number.isNaN($n) ? null : $n; })(%s))", inner)
		case "float":
			return fmt.Sprintf("((($v) => { const $n = Number($v); return Number.isNaN($n) ? null : $n; })(%s))", inner)
		case "str":
			return "(String(" + inner + "))"
		case "bool":
			return "(Boolean(" + inner + "))"
		case "nul":
			return fmt.Sprintf("((($v) => ($v === null || $v === undefined) ? $v : null)(%s))", inner)
		default:
			return fmt.Sprintf("((($v) => ($v instanceof %s) ? $v : null)(%s))", t.Name, inner)
		}
	case *ast.ArrayType:
		return fmt.Sprintf("((($v) => Array.isArray($v) ? $v : null)(%s))", inner)
	}
	return inner
}

func (g *Generator) arrowFunction(n *ast.ArrowFunctionExpression) string {
	var out strings.Builder
	if n.IsAsync {
		out.WriteString("async ")
	}
	out.WriteString("(" + g.paramList(n.Params) + ") => ")
	switch body := n.Body.(type) {
	case ast.Expression:
		out.WriteString(g.expr(body))
	case *ast.BlockStatement:
		out.WriteString("{\n")
		out.WriteString(g.withBuffer(func() {
			g.indent++
			g.genFunctionBodyStatements(body)
			g.indent--
		}))
		out.WriteString(g.currentIndentStr() + "}")
	}
	return out.String()
}

func (g *Generator) paramList(params []ast.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		var sb strings.Builder
		if p.Variadic {
			sb.WriteString("...")
		}
		sb.WriteString(p.Name)
		if p.Default != nil {
			sb.WriteString(" = ")
			sb.WriteString(g.expr(p.Default))
		}
		parts[i] = sb.String()
	}
	return strings.Join(parts, ", ")
}

// typeTest renders the boolean expression testing subject against t, used
// by both `is` expressions and when-statement type patterns.
func (g *Generator) typeTest(subject string, t ast.TypeAnnotation) string {
	switch tt := t.(type) {
	case *ast.SimpleType:
		switch tt.Name {
		case "int":
			return fmt.Sprintf("(typeof %s === \"number\" && Number.isInteger(%s))", subject, subject)
		case "float":
			return fmt.Sprintf("typeof %s === \"number\"", subject)
		case "str":
			return fmt.Sprintf("typeof %s === \"string\"", subject)
		case "bool":
			return fmt.Sprintf("typeof %s === \"boolean\"", subject)
		case "nul":
			return fmt.Sprintf("(%s === null || %s === undefined)", subject, subject)
		default:
			return fmt.Sprintf("(%s instanceof %s)", subject, tt.Name)
		}
	case *ast.ArrayType:
		return fmt.Sprintf("Array.isArray(%s)", subject)
	case *ast.UnionType:
		parts := make([]string, len(tt.Options))
		for i, o := range tt.Options {
			parts[i] = g.typeTest(subject, o)
		}
		return "(" + strings.Join(parts, " || ") + ")"
	case *ast.IntersectionType:
		parts := make([]string, len(tt.Options))
		for i, o := range tt.Options {
			parts[i] = g.typeTest(subject, o)
		}
		return "(" + strings.Join(parts, " && ") + ")"
	default:
		return fmt.Sprintf("(%s !== undefined)", subject)
	}
}
