// Package generator walks an internal/ast.Program and emits
// ECMAScript-compatible source text, per the translation table in
// SPEC_FULL.md's Code Generator section. The generator is a pure function
// of the AST; its per-generation state is the defer-stack used to lower
// `defer` into a synthesized try/finally, the private-name stack of the
// class being emitted, a counter for synthesized variable names, and the
// handful of runtime symbol flags used to avoid emitting unreferenced
// imports.
package generator

import (
	"fmt"
	"strings"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/token"
)

// Options configures a single Generate call.
type Options struct {
	// Resolver rewrites import/export specifiers. Defaults to
	// IdentityResolver when nil.
	Resolver ModuleResolver
	// Target is an opaque tag recorded in the emitted header comment only
	// (e.g. "es2020"); it does not change emission.
	Target string
	// RuntimeModule is the specifier the synthesized runtime import is
	// emitted from.
	RuntimeModule string
	// SourceFile names the file being compiled, passed to Resolver.
	SourceFile string
}

func (o Options) resolver() ModuleResolver {
	if o.Resolver != nil {
		return o.Resolver
	}
	return IdentityResolver{}
}

func (o Options) runtimeModule() string {
	if o.RuntimeModule != "" {
		return o.RuntimeModule
	}
	return "lj-runtime"
}

// Generator renders one AST into target text.
type Generator struct {
	opts   Options
	out    strings.Builder
	indent int
	errors diag.List

	deferStacks      [][]ast.Expression
	privateStack     []map[string]bool
	syntheticCounter int
	usesTypeOf       bool
	usesRange        bool
	usesSpawn        bool
	usesChannel      bool
}

// New builds a Generator for a single Generate call.
func New(opts Options) *Generator {
	return &Generator{opts: opts}
}

// Generate renders prog and returns the emitted text plus any diagnostics
// recorded while emitting: a warning per deferred expression (its errors
// are swallowed), a warning for `break` with a value, an error for `defer`
// outside a function body, and an internal-compiler-error diagnostic for
// any node type the generator has no case for. Unhandled node types are
// reported this way rather than by panicking.
func Generate(prog *ast.Program, opts Options) (string, diag.List) {
	g := New(opts)
	body := g.withBuffer(func() {
		for _, stmt := range prog.Statements {
			g.genStatement(stmt)
		}
	})

	var header strings.Builder
	if g.opts.Target != "" {
		header.WriteString("// target: " + g.opts.Target + "\n")
	}
	if imports := g.runtimeImportLine(); imports != "" {
		header.WriteString(imports)
		header.WriteString("\n")
	}

	return header.String() + body, g.errors
}

func (g *Generator) runtimeImportLine() string {
	var symbols []string
	if g.usesTypeOf {
		symbols = append(symbols, "typeOf")
	}
	if g.usesRange {
		symbols = append(symbols, "range")
	}
	if g.usesSpawn {
		symbols = append(symbols, "spawn")
	}
	if g.usesChannel {
		symbols = append(symbols, "Channel")
	}
	if len(symbols) == 0 {
		return ""
	}
	return fmt.Sprintf("import { %s } from %q;\n", strings.Join(symbols, ", "), g.opts.runtimeModule())
}

// withBuffer redirects emission into a fresh buffer for the duration of fn,
// returning what was written. Used to lower defer/using/when, which all
// need to inspect or wrap already-rendered statement text.
func (g *Generator) withBuffer(fn func()) string {
	saved := g.out
	g.out = strings.Builder{}
	fn()
	result := g.out.String()
	g.out = saved
	return result
}

func (g *Generator) writeIndent() {
	g.out.WriteString(strings.Repeat("  ", g.indent))
}

func (g *Generator) currentIndentStr() string {
	return strings.Repeat("  ", g.indent)
}

func (g *Generator) writeLine(format string, args ...any) {
	g.writeIndent()
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteString("\n")
}

func (g *Generator) write(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
}

func (g *Generator) errorf(code diag.Code, pos token.Position, format string, args ...any) {
	g.errors = append(g.errors, diag.Newf(code, pos, format, args...).WithFile(g.opts.SourceFile))
}

func (g *Generator) warnf(code diag.Code, pos token.Position, format string, args ...any) {
	d := diag.Newf(code, pos, format, args...).WithFile(g.opts.SourceFile)
	d.Severity = diag.Warning
	g.errors = append(g.errors, d)
}

// pushPrivate/popPrivate/isPrivateName track the hard-private member-name
// set of the class currently being emitted, so memberExpression can
// rewrite `this.name` into `this.#name` without a separate resolve pass.
func (g *Generator) pushPrivate(names map[string]bool) {
	g.privateStack = append(g.privateStack, names)
}

func (g *Generator) popPrivate() {
	g.privateStack = g.privateStack[:len(g.privateStack)-1]
}

func (g *Generator) isPrivateName(name string) bool {
	if len(g.privateStack) == 0 {
		return false
	}
	return g.privateStack[len(g.privateStack)-1][name]
}

func memberName(name string, private bool) string {
	if private {
		return "#" + name
	}
	return name
}
