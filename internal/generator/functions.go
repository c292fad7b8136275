package generator

import (
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
)

func (g *Generator) genFunctionDeclaration(d *ast.FunctionDeclaration) {
	if d.DocComment != "" {
		g.writeJSDoc(d.DocComment, d.Params)
	}
	prefix := ""
	if d.Exported {
		prefix = "export "
	}
	async := ""
	if d.IsAsync {
		async = "async "
	}
	g.writeLine("%s%sfunction %s(%s) {", prefix, async, d.Name, g.paramList(d.Params))
	g.indent++
	g.genFunctionBodyStatements(d.Body)
	g.indent--
	g.writeLine("}")
}

// genFunctionBodyStatements renders body's statements (assuming the
// enclosing "{"/"}" have already been written by the caller), lowering any
// direct `defer` statements into a synthesized try/finally and recording a
// warning for each deferred expression, whose errors are caught and logged
// rather than propagated.
func (g *Generator) genFunctionBodyStatements(body *ast.BlockStatement) {
	g.deferStacks = append(g.deferStacks, nil)
	inner := g.withBuffer(func() { g.genBlock(body) })
	top := len(g.deferStacks) - 1
	defers := g.deferStacks[top]
	g.deferStacks = g.deferStacks[:top]

	if len(defers) == 0 {
		g.write("%s", inner)
		return
	}

	g.writeLine("try {")
	g.write("%s", indentText(inner, 1))
	g.writeLine("} finally {")
	g.indent++
	for i := len(defers) - 1; i >= 0; i-- {
		g.warnf(diag.CodeSwallowedDeferErr, defers[i].Pos(), "an error thrown by this deferred expression is caught and logged, not propagated")
		errVar := g.freshVar("deferErr")
		g.writeLine("try { %s; } catch (%s) { console.warn(\"deferred expression threw:\", %s); }", g.expr(defers[i]), errVar, errVar)
	}
	g.indent--
	g.writeLine("}")
}

// indentText adds extra levels of two-space indentation to every non-empty
// line of text, used to re-nest an already-rendered block one level deeper
// (e.g. when wrapping a function body in a synthesized try).
func indentText(text string, extra int) string {
	if extra <= 0 || text == "" {
		return text
	}
	prefix := strings.Repeat("  ", extra)
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}

// writeJSDoc renders a `##`-style doc comment as a JSDoc block, including a
// @param line per named parameter, matching the convention consumers of
// the generated code (editors, doc tools) expect.
func (g *Generator) writeJSDoc(doc string, params []ast.Param) {
	g.writeLine("/**")
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		g.writeLine(" * %s", strings.TrimSpace(line))
	}
	for _, p := range params {
		g.writeLine(" * @param %s", p.Name)
	}
	g.writeLine(" */")
}
