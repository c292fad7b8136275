package generator

import (
	"fmt"
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
)

// binding is one name introduced by a pattern, together with the
// expression (relative to the match subject) that produces its value.
type binding struct {
	name   string
	access string
}

// patternPredicate renders the boolean expression testing subject against
// pat, structurally. It does not include any `where` guard; callers AND the
// guard in separately once bindings are in scope.
func (g *Generator) patternPredicate(subject string, pat ast.Pattern) string {
	switch p := pat.(type) {
	case *ast.LiteralPattern:
		return subject + " === " + g.expr(p.Value)
	case *ast.IdentPattern:
		return "true"
	case *ast.ElsePattern:
		return "true"
	case *ast.TypePattern:
		return g.typeTest(subject, p.Type)
	case *ast.ArrayPattern:
		parts := []string{"Array.isArray(" + subject + ")", fmt.Sprintf("%s.length === %d", subject, len(p.Elements))}
		for i, el := range p.Elements {
			parts = append(parts, g.patternPredicate(fmt.Sprintf("%s[%d]", subject, i), el))
		}
		return "(" + strings.Join(parts, " && ") + ")"
	case *ast.ObjectPattern:
		parts := []string{subject + " !== null && typeof " + subject + " === \"object\""}
		for _, f := range p.Fields {
			parts = append(parts, g.patternPredicate(subject+"."+f.Key, f.Value))
		}
		return "(" + strings.Join(parts, " && ") + ")"
	case *ast.OrPattern:
		parts := make([]string, len(p.Patterns))
		for i, sub := range p.Patterns {
			parts[i] = g.patternPredicate(subject, sub)
		}
		return "(" + strings.Join(parts, " || ") + ")"
	default:
		return "true"
	}
}

// patternBindings collects every name a pattern introduces, paired with
// the expression (relative to subject) it is bound to.
func (g *Generator) patternBindings(subject string, pat ast.Pattern) []binding {
	switch p := pat.(type) {
	case *ast.IdentPattern:
		return []binding{{name: p.Name, access: subject}}
	case *ast.TypePattern:
		if p.Name == "" {
			return nil
		}
		return []binding{{name: p.Name, access: subject}}
	case *ast.ArrayPattern:
		var out []binding
		for i, el := range p.Elements {
			out = append(out, g.patternBindings(fmt.Sprintf("%s[%d]", subject, i), el)...)
		}
		return out
	case *ast.ObjectPattern:
		var out []binding
		for _, f := range p.Fields {
			out = append(out, g.patternBindings(subject+"."+f.Key, f.Value)...)
		}
		return out
	case *ast.OrPattern:
		var out []binding
		for _, sub := range p.Patterns {
			out = append(out, g.patternBindings(subject, sub)...)
		}
		return out
	default:
		return nil
	}
}

func bindingDecls(bindings []binding) string {
	if len(bindings) == 0 {
		return ""
	}
	parts := make([]string, len(bindings))
	for i, b := range bindings {
		parts[i] = fmt.Sprintf("const %s = %s;", b.name, b.access)
	}
	return strings.Join(parts, " ")
}

// armCondition renders the self-invoking predicate used to pick an arm:
// bindings are redeclared inside the IIFE so the guard can reference them.
func (g *Generator) armCondition(subject string, arm ast.WhenArm) string {
	if _, ok := arm.Pattern.(*ast.ElsePattern); ok {
		return "true"
	}
	bindings := g.patternBindings(subject, arm.Pattern)
	structural := g.patternPredicate(subject, arm.Pattern)
	guard := "true"
	if arm.Guard != nil {
		guard = g.expr(arm.Guard)
	}
	decls := bindingDecls(bindings)
	if decls == "" {
		return fmt.Sprintf("(() => { return %s && (%s); })()", structural, guard)
	}
	return fmt.Sprintf("(() => { %s return %s && (%s); })()", decls, structural, guard)
}

// whenExpression lowers a `when` used in value position into an
// immediately-invoked arrow function holding one `if (armCondition) return`
// per arm, so the first satisfied arm supplies the value; if no arm
// matches, it throws "no when arm matched".
func (g *Generator) whenExpression(n *ast.WhenExpression) string {
	subjectVar := "$subject"
	subject := g.expr(n.Subject)

	var body strings.Builder
	body.WriteString("(() => { const " + subjectVar + " = " + subject + "; ")
	for _, arm := range n.Arms {
		bindings := g.patternBindings(subjectVar, arm.Pattern)
		cond := g.armCondition(subjectVar, arm)
		body.WriteString("if (" + cond + ") { ")
		body.WriteString(bindingDecls(bindings))
		if bindings != nil {
			body.WriteString(" ")
		}
		armExpr, _ := arm.Body.(ast.Expression)
		if armExpr != nil {
			body.WriteString("return " + g.expr(armExpr) + "; ")
		}
		body.WriteString("} ")
	}
	body.WriteString("throw new Error(\"no when arm matched\"); })()")
	return body.String()
}

// genWhenStatement lowers a `when` used for its side effects into an
// if/else-if ladder, with each matched body block re-entered with its
// bindings redeclared at the top.
func (g *Generator) genWhenStatement(n *ast.WhenStatement) {
	subjectVar := g.freshVar("subject")
	g.writeLine("const %s = %s;", subjectVar, g.expr(n.Subject))
	for i, arm := range n.Arms {
		cond := g.armCondition(subjectVar, arm)
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		g.writeLine("%s (%s) {", kw, cond)
		g.indent++
		bindings := g.patternBindings(subjectVar, arm.Pattern)
		for _, b := range bindings {
			g.writeLine("const %s = %s;", b.name, b.access)
		}
		if block, ok := arm.Body.(*ast.BlockStatement); ok {
			for _, s := range block.Statements {
				g.genStatement(s)
			}
		}
		g.indent--
	}
	g.writeLine("}")
}

// freshVar produces a stable synthetic identifier, scoped to this
// Generator so output stays deterministic across calls.
func (g *Generator) freshVar(prefix string) string {
	g.syntheticCounter++
	return fmt.Sprintf("$%s%d", prefix, g.syntheticCounter)
}
