package generator

import (
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
)

// isPrivateMember reports whether a member is hard-private: declared
// `private`, or named with a leading underscore (the language's informal
// privacy convention, honored the same way even without the modifier).
func isPrivateMember(mods ast.Modifiers, name string) bool {
	return mods.Private || strings.HasPrefix(name, "_")
}

func (g *Generator) collectPrivateNames(d *ast.ClassDeclaration) map[string]bool {
	names := map[string]bool{}
	for _, m := range d.Members {
		switch mm := m.(type) {
		case *ast.FieldMember:
			if isPrivateMember(mm.Modifiers, mm.Name) {
				names[mm.Name] = true
			}
		case *ast.MethodMember:
			if !mm.IsConstructor && isPrivateMember(mm.Modifiers, mm.Name) {
				names[mm.Name] = true
			}
		}
	}
	return names
}

func (g *Generator) genClassDeclaration(d *ast.ClassDeclaration) {
	if d.DocComment != "" {
		g.writeJSDoc(d.DocComment, nil)
	}
	prefix := ""
	if d.Exported {
		prefix = "export "
	}
	header := prefix + "class " + d.Name
	if d.Super != nil {
		header += " extends " + d.Super.Value
	}
	g.writeLine("%s {", header)
	g.indent++

	private := g.collectPrivateNames(d)
	g.pushPrivate(private)
	for _, m := range d.Members {
		switch mm := m.(type) {
		case *ast.FieldMember:
			g.genFieldMember(mm, private)
		case *ast.MethodMember:
			g.genMethodMember(mm, private)
		}
	}
	g.popPrivate()

	g.indent--
	g.writeLine("}")
}

func (g *Generator) genFieldMember(m *ast.FieldMember, private map[string]bool) {
	name := memberName(m.Name, private[m.Name])
	static := ""
	if m.Modifiers.Static {
		static = "static "
	}
	if m.Init == nil {
		g.writeLine("%s%s;", static, name)
		return
	}
	g.writeLine("%s%s = %s;", static, name, g.expr(m.Init))
}

func (g *Generator) genMethodMember(m *ast.MethodMember, private map[string]bool) {
	name := m.Name
	if m.IsConstructor {
		name = "constructor"
	} else {
		name = memberName(name, private[m.Name])
	}
	static := ""
	if m.Modifiers.Static {
		static = "static "
	}
	async := ""
	if m.IsAsync {
		async = "async "
	}
	g.writeLine("%s%s%s(%s) {", static, async, name, g.paramList(m.Params))
	g.indent++
	if m.Body == nil {
		g.writeLine("throw new Error(%q);", m.Name+" is abstract and was not overridden")
	} else {
		g.genFunctionBodyStatements(m.Body)
	}
	g.indent--
	g.writeLine("}")
}

func (g *Generator) genEnumDeclaration(d *ast.EnumDeclaration) {
	prefix := ""
	if d.Exported {
		prefix = "export "
	}
	g.writeLine("%sconst %s = Object.freeze({", prefix, d.Name)
	g.indent++
	next := 0
	for _, m := range d.Members {
		if m.Value != nil {
			g.writeLine("%s: %s,", m.Name, g.expr(m.Value))
			if lit, ok := m.Value.(*ast.IntLiteral); ok {
				next = int(lit.Value) + 1
			}
			continue
		}
		g.writeLine("%s: %d,", m.Name, next)
		next++
	}
	g.indent--
	g.writeLine("});")
}
