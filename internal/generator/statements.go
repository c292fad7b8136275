package generator

import (
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
)

func (g *Generator) genStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		g.writeLine("%s;", g.expr(s.Expression))
	case *ast.VarDeclaration:
		g.genVarDeclaration(s)
	case *ast.BlockStatement:
		g.writeLine("{")
		g.indent++
		g.genBlock(s)
		g.indent--
		g.writeLine("}")
	case *ast.IfStatement:
		g.genIfStatement(s)
	case *ast.ForStatement:
		g.genForStatement(s)
	case *ast.ForInStatement:
		g.genForInStatement(s)
	case *ast.WhileStatement:
		g.writeLine("while (%s) {", g.expr(s.Condition))
		g.indent++
		g.genBlock(s.Body)
		g.indent--
		g.writeLine("}")
	case *ast.DoWhileStatement:
		g.writeLine("do {")
		g.indent++
		g.genBlock(s.Body)
		g.indent--
		g.writeLine("} while (%s);", g.expr(s.Condition))
	case *ast.WhenStatement:
		g.genWhenStatement(s)
	case *ast.ReturnStatement:
		if s.Value == nil {
			g.writeLine("return;")
		} else {
			g.writeLine("return %s;", g.expr(s.Value))
		}
	case *ast.BreakStatement:
		if s.Value != nil {
			g.warnf(diag.CodeInvalidControlFlow, s.Pos(), "break with a value has no ECMAScript equivalent; value discarded")
		}
		g.writeLine("break;")
	case *ast.ContinueStatement:
		g.writeLine("continue;")
	case *ast.ThrowStatement:
		g.writeLine("throw %s;", g.expr(s.Value))
	case *ast.TryStatement:
		g.genTryStatement(s)
	case *ast.ImportStatement:
		g.genImportStatement(s)
	case *ast.ExportStatement:
		g.genExportStatement(s)
	case *ast.TypeAliasStatement:
		// type aliases are compile-time only; nothing is emitted.
	case *ast.DeferStatement:
		g.genDeferStatement(s)
	case *ast.UsingStatement:
		g.genUsingStatement(s)
	case *ast.SendStatement:
		g.writeLine("await %s.send(%s);", g.expr(s.Channel), g.expr(s.Value))
	case *ast.FunctionDeclaration:
		g.genFunctionDeclaration(s)
	case *ast.ClassDeclaration:
		g.genClassDeclaration(s)
	case *ast.EnumDeclaration:
		g.genEnumDeclaration(s)
	default:
		g.errorf(diag.CodeInternal, stmt.Pos(), "generator: unhandled statement %T", stmt)
	}
}

func (g *Generator) genBlock(block *ast.BlockStatement) {
	for _, s := range block.Statements {
		g.genStatement(s)
	}
}

func (g *Generator) genVarDeclaration(s *ast.VarDeclaration) {
	kw := "let"
	if s.Kind == "const" {
		kw = "const"
	}
	if s.Init == nil {
		g.writeLine("%s %s;", kw, s.Name)
		return
	}
	g.writeLine("%s %s = %s;", kw, s.Name, g.expr(s.Init))
}

func (g *Generator) genIfStatement(s *ast.IfStatement) {
	g.writeLine("if (%s) {", g.expr(s.Condition))
	g.indent++
	g.genBlock(s.Then)
	g.indent--
	switch elseBranch := s.Else.(type) {
	case nil:
		g.writeLine("}")
	case *ast.IfStatement:
		g.writeIndent()
		g.write("} else ")
		g.genElseIf(elseBranch)
	case *ast.BlockStatement:
		g.writeLine("} else {")
		g.indent++
		g.genBlock(elseBranch)
		g.indent--
		g.writeLine("}")
	}
}

// genElseIf renders a chained `else if` without an intervening newline
// between "} else" and the nested "if (...)".
func (g *Generator) genElseIf(s *ast.IfStatement) {
	g.write("if (%s) {\n", g.expr(s.Condition))
	g.indent++
	g.genBlock(s.Then)
	g.indent--
	switch elseBranch := s.Else.(type) {
	case nil:
		g.writeLine("}")
	case *ast.IfStatement:
		g.writeIndent()
		g.write("} else ")
		g.genElseIf(elseBranch)
	case *ast.BlockStatement:
		g.writeLine("} else {")
		g.indent++
		g.genBlock(elseBranch)
		g.indent--
		g.writeLine("}")
	}
}

func (g *Generator) genForStatement(s *ast.ForStatement) {
	init, cond, update := "", "", ""
	if s.Init != nil {
		init = strings.TrimSuffix(strings.TrimSpace(g.withBuffer(func() { g.genStatement(s.Init) })), ";")
	}
	if s.Cond != nil {
		cond = g.expr(s.Cond)
	}
	if s.Update != nil {
		update = g.expr(s.Update)
	}
	g.writeLine("for (%s; %s; %s) {", init, cond, update)
	g.indent++
	g.genBlock(s.Body)
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genForInStatement(s *ast.ForInStatement) {
	if rng, ok := s.Iterable.(*ast.RangeExpression); ok {
		g.usesRange = true
		g.writeLine("for (const %s of range(%s, %s, %t)) {", s.VarName, g.expr(rng.Start), g.expr(rng.End), rng.Inclusive)
	} else {
		g.writeLine("for (const %s of %s) {", s.VarName, g.expr(s.Iterable))
	}
	g.indent++
	g.genBlock(s.Body)
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genTryStatement(s *ast.TryStatement) {
	g.writeLine("try {")
	g.indent++
	g.genBlock(s.Block)
	g.indent--
	if len(s.Catches) > 0 {
		errVar := g.freshVar("err")
		g.writeLine("} catch (%s) {", errVar)
		g.indent++
		g.genCatchLadder(errVar, s.Catches)
		g.indent--
	}
	if s.Finally != nil {
		g.writeLine("} finally {")
		g.indent++
		g.genBlock(s.Finally)
		g.indent--
	}
	g.writeLine("}")
}

// genCatchLadder compiles multiple typed `catch` clauses into an if/else-if
// chain on the caught value's runtime type, re-throwing if nothing matches.
func (g *Generator) genCatchLadder(errVar string, catches []ast.CatchClause) {
	for i, c := range catches {
		kw := "if"
		if i > 0 {
			kw = "} else if"
		}
		if c.Type == nil {
			g.writeLine("%s (true) {", kw)
		} else {
			g.writeLine("%s (%s) {", kw, g.typeTest(errVar, c.Type))
		}
		g.indent++
		g.writeLine("const %s = %s;", c.Param, errVar)
		g.genBlock(c.Body)
		g.indent--
	}
	g.writeLine("} else {")
	g.indent++
	g.writeLine("throw %s;", errVar)
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genImportStatement(s *ast.ImportStatement) {
	source := g.opts.resolver().ResolveImport(s.Source, g.opts.SourceFile)
	var clauses []string
	if s.Default != "" {
		clauses = append(clauses, s.Default)
	}
	if s.Namespace != "" {
		clauses = append(clauses, "* as "+s.Namespace)
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
		clauses = append(clauses, "{ "+strings.Join(names, ", ")+" }")
	}
	if len(clauses) == 0 {
		g.writeLine("import %q;", source)
		return
	}
	g.writeLine("import %s from %q;", strings.Join(clauses, ", "), source)
}

func (g *Generator) genExportStatement(s *ast.ExportStatement) {
	switch {
	case s.Declaration != nil:
		g.genStatement(s.Declaration)
	case s.Default != nil:
		g.writeLine("export default %s;", g.expr(s.Default))
	default:
		names := make([]string, len(s.Specifiers))
		for i, sp := range s.Specifiers {
			if sp.Alias != "" && sp.Alias != sp.Name {
				names[i] = sp.Name + " as " + sp.Alias
			} else {
				names[i] = sp.Name
			}
		}
		clause := "export { " + strings.Join(names, ", ") + " }"
		if s.Source != "" {
			source := g.opts.resolver().ResolveImport(s.Source, g.opts.SourceFile)
			g.writeLine("%s from %q;", clause, source)
			return
		}
		g.writeLine("%s;", clause)
	}
}

func (g *Generator) genDeferStatement(s *ast.DeferStatement) {
	if len(g.deferStacks) == 0 {
		g.errorf(diag.CodeInvalidControlFlow, s.Pos(), "defer used outside a function body")
		return
	}
	top := len(g.deferStacks) - 1
	g.deferStacks[top] = append(g.deferStacks[top], s.Expr)
}

func (g *Generator) genUsingStatement(s *ast.UsingStatement) {
	g.writeLine("const %s = %s;", s.Name, g.expr(s.Init))
	g.writeLine("try {")
	g.indent++
	g.genBlock(s.Body)
	g.indent--
	g.writeLine("} finally {")
	g.indent++
	g.writeLine("if (typeof %s.dispose === \"function\") { %s.dispose(); } else if (typeof %s.close === \"function\") { %s.close(); }", s.Name, s.Name, s.Name, s.Name)
	g.indent--
	g.writeLine("}")
}
