package parser

import (
	"testing"

	"github.com/xbodwf/ljc/internal/ast"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("parser errors: %v", errs)
	}
}

func testParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, errs := ParseSource(src, "t.lj")
	if len(errs) != 0 {
		t.Fatalf("unexpected diagnostics for %q: %v", src, errs)
	}
	return prog
}

func TestParseVarDeclaration(t *testing.T) {
	prog := testParse(t, `const x: int = 1 + 2`)
	if len(prog.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Statements))
	}
	decl, ok := prog.Statements[0].(*ast.VarDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.VarDeclaration", prog.Statements[0])
	}
	if decl.Kind != "const" || decl.Name != "x" {
		t.Errorf("decl = %+v", decl)
	}
	if _, ok := decl.Init.(*ast.BinaryExpression); !ok {
		t.Errorf("Init is %T, want *ast.BinaryExpression", decl.Init)
	}
}

func TestParseConstWithoutInitializerErrors(t *testing.T) {
	_, errs := ParseSource(`const x: int`, "t.lj")
	if len(errs) == 0 {
		t.Fatal("expected a missing-initializer diagnostic")
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3;", "(1 + (2 * 3))"},
		{"(1 + 2) * 3;", "((1 + 2) * 3)"},
		{"1 + 2 + 3;", "((1 + 2) + 3)"},
		{"a = b = c;", "(a = (b = c))"},
		{"-a * b;", "((-a) * b)"},
		{"a ?? b ?? c;", "((a ?? b) ?? c)"},
		{"a < b == c > d;", "((a < b) == (c > d))"},
		{"a..b;", "(a..b)"},
		{"a..=b;", "(a..=b)"},
		{"x of int;", "(x of int)"},
		{"x is string;", "(x is string)"},
		{"a + b of int;", "(a + (b of int))"},
		{"a ** b of int;", "(a ** (b of int))"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := testParse(t, tt.input)
			if len(prog.Statements) != 1 {
				t.Fatalf("got %d statements", len(prog.Statements))
			}
			stmt, ok := prog.Statements[0].(*ast.ExpressionStatement)
			if !ok {
				t.Fatalf("statement is %T, want *ast.ExpressionStatement", prog.Statements[0])
			}
			if got := stmt.Expression.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseArrowFunctionConcise(t *testing.T) {
	prog := testParse(t, `const add = (a: int, b: int) => a + b`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	fn, ok := decl.Init.(*ast.ArrowFunctionExpression)
	if !ok {
		t.Fatalf("Init is %T, want *ast.ArrowFunctionExpression", decl.Init)
	}
	if len(fn.Params) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Params))
	}
	if _, ok := fn.Body.(ast.Expression); !ok {
		t.Errorf("Body is %T, want an Expression", fn.Body)
	}
}

func TestParseArrowFunctionBareIdent(t *testing.T) {
	prog := testParse(t, `const inc = n => n + 1`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	fn, ok := decl.Init.(*ast.ArrowFunctionExpression)
	if !ok {
		t.Fatalf("Init is %T, want *ast.ArrowFunctionExpression", decl.Init)
	}
	if len(fn.Params) != 1 || fn.Params[0].Name != "n" {
		t.Errorf("params = %+v", fn.Params)
	}
}

func TestParseGroupedExpressionNotArrow(t *testing.T) {
	prog := testParse(t, `(1 + 2) * 3;`)
	stmt := prog.Statements[0].(*ast.ExpressionStatement)
	bin, ok := stmt.Expression.(*ast.BinaryExpression)
	if !ok {
		t.Fatalf("expression is %T, want *ast.BinaryExpression", stmt.Expression)
	}
	if _, ok := bin.Left.(*ast.GroupedExpression); !ok {
		t.Errorf("Left is %T, want *ast.GroupedExpression", bin.Left)
	}
}

func TestParseFunctionDeclaration(t *testing.T) {
	prog := testParse(t, `fn add(a: int, b: int): int { return a + b }`)
	fn, ok := prog.Statements[0].(*ast.FunctionDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.FunctionDeclaration", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("fn = %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("got %d body statements, want 1", len(fn.Body.Statements))
	}
	if _, ok := fn.Body.Statements[0].(*ast.ReturnStatement); !ok {
		t.Errorf("body statement is %T, want *ast.ReturnStatement", fn.Body.Statements[0])
	}
}

func TestFunctionDocCommentCaptured(t *testing.T) {
	prog := testParse(t, "## Adds two numbers.\nfn add(a: int, b: int): int { return a + b }")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	if fn.DocComment != "Adds two numbers." {
		t.Errorf("DocComment = %q", fn.DocComment)
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := testParse(t, `
if (a) {
  1;
} else if (b) {
  2;
} else {
  3;
}`)
	stmt, ok := prog.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.IfStatement", prog.Statements[0])
	}
	elseIf, ok := stmt.Else.(*ast.IfStatement)
	if !ok {
		t.Fatalf("Else is %T, want *ast.IfStatement", stmt.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStatement); !ok {
		t.Errorf("elseIf.Else is %T, want *ast.BlockStatement", elseIf.Else)
	}
}

func TestParseForInStatement(t *testing.T) {
	prog := testParse(t, `for (x in items) { print(x); }`)
	stmt, ok := prog.Statements[0].(*ast.ForInStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForInStatement", prog.Statements[0])
	}
	if stmt.VarName != "x" {
		t.Errorf("VarName = %q", stmt.VarName)
	}
}

func TestParseCStyleForStatement(t *testing.T) {
	prog := testParse(t, `for (mut i = 0; i < 10; i = i + 1) { print(i); }`)
	stmt, ok := prog.Statements[0].(*ast.ForStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ForStatement", prog.Statements[0])
	}
	if stmt.Init == nil || stmt.Cond == nil || stmt.Update == nil {
		t.Errorf("ForStatement has a nil clause: %+v", stmt)
	}
}

func TestParseWhenExpression(t *testing.T) {
	prog := testParse(t, `const msg = when (x) { 1 => "one", n is int where n > 1 => "many", else => "none" };`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	when, ok := decl.Init.(*ast.WhenExpression)
	if !ok {
		t.Fatalf("Init is %T, want *ast.WhenExpression", decl.Init)
	}
	if len(when.Arms) != 3 {
		t.Fatalf("got %d arms, want 3", len(when.Arms))
	}
	if _, ok := when.Arms[0].Pattern.(*ast.LiteralPattern); !ok {
		t.Errorf("arm 0 pattern is %T", when.Arms[0].Pattern)
	}
	guarded, ok := when.Arms[1].Pattern.(*ast.TypePattern)
	if !ok {
		t.Fatalf("arm 1 pattern is %T, want *ast.TypePattern", when.Arms[1].Pattern)
	}
	if guarded.Name != "n" || when.Arms[1].Guard == nil {
		t.Errorf("arm 1 = %+v", when.Arms[1])
	}
	if _, ok := when.Arms[2].Pattern.(*ast.ElsePattern); !ok {
		t.Errorf("arm 2 pattern is %T, want *ast.ElsePattern", when.Arms[2].Pattern)
	}
}

func TestParseWhenStatement(t *testing.T) {
	prog := testParse(t, `
when (code) {
  404 => { print("missing"); },
  else => { print("ok"); },
}`)
	stmt, ok := prog.Statements[0].(*ast.WhenStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.WhenStatement", prog.Statements[0])
	}
	if len(stmt.Arms) != 2 {
		t.Fatalf("got %d arms, want 2", len(stmt.Arms))
	}
}

func TestParseClassDeclaration(t *testing.T) {
	prog := testParse(t, `
class Animal extends Base {
  private name: string

  fn constructor(name: string) {
    this.name = name;
  }

  fn speak(): string {
    return this.name;
  }
}`)
	decl, ok := prog.Statements[0].(*ast.ClassDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ClassDeclaration", prog.Statements[0])
	}
	if decl.Name != "Animal" || decl.Super == nil || decl.Super.Value != "Base" {
		t.Errorf("decl = %+v", decl)
	}
	if len(decl.Members) != 3 {
		t.Fatalf("got %d members, want 3", len(decl.Members))
	}
	field, ok := decl.Members[0].(*ast.FieldMember)
	if !ok || !field.Modifiers.Private {
		t.Errorf("member 0 = %+v", decl.Members[0])
	}
	ctor, ok := decl.Members[1].(*ast.MethodMember)
	if !ok || !ctor.IsConstructor {
		t.Errorf("member 1 = %+v", decl.Members[1])
	}
}

func TestParseEnumDeclaration(t *testing.T) {
	prog := testParse(t, `enum Color { Red, Green, Blue = 5 }`)
	decl, ok := prog.Statements[0].(*ast.EnumDeclaration)
	if !ok {
		t.Fatalf("statement is %T, want *ast.EnumDeclaration", prog.Statements[0])
	}
	if len(decl.Members) != 3 || decl.Members[2].Value == nil {
		t.Errorf("decl = %+v", decl)
	}
}

func TestParseTryCatchFinally(t *testing.T) {
	prog := testParse(t, `
try {
  risky();
} catch (e: Error) {
  handle(e);
} finally {
  cleanup();
}`)
	stmt, ok := prog.Statements[0].(*ast.TryStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.TryStatement", prog.Statements[0])
	}
	if len(stmt.Catches) != 1 || stmt.Finally == nil {
		t.Errorf("stmt = %+v", stmt)
	}
}

func TestParseUsingStatement(t *testing.T) {
	prog := testParse(t, `using (f = openFile("x")) { read(f); }`)
	stmt, ok := prog.Statements[0].(*ast.UsingStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.UsingStatement", prog.Statements[0])
	}
	if stmt.Name != "f" {
		t.Errorf("Name = %q", stmt.Name)
	}
}

func TestParseDeferStatement(t *testing.T) {
	prog := testParse(t, `defer close(f);`)
	if _, ok := prog.Statements[0].(*ast.DeferStatement); !ok {
		t.Fatalf("statement is %T, want *ast.DeferStatement", prog.Statements[0])
	}
}

func TestParseSendAndReceive(t *testing.T) {
	prog := testParse(t, `ch <- 1; const v = <-ch;`)
	if _, ok := prog.Statements[0].(*ast.SendStatement); !ok {
		t.Fatalf("statement 0 is %T, want *ast.SendStatement", prog.Statements[0])
	}
	decl := prog.Statements[1].(*ast.VarDeclaration)
	if _, ok := decl.Init.(*ast.ReceiveExpression); !ok {
		t.Fatalf("Init is %T, want *ast.ReceiveExpression", decl.Init)
	}
}

func TestParseGoAndAwaitAndChan(t *testing.T) {
	prog := testParse(t, `go worker(1); const c = chan int(4);`)
	if _, ok := prog.Statements[0].(*ast.ExpressionStatement); !ok {
		t.Fatalf("statement 0 is %T", prog.Statements[0])
	}
	decl := prog.Statements[1].(*ast.VarDeclaration)
	ch, ok := decl.Init.(*ast.ChannelExpression)
	if !ok {
		t.Fatalf("Init is %T, want *ast.ChannelExpression", decl.Init)
	}
	if ch.Capacity == nil {
		t.Error("expected a capacity expression")
	}
}

func TestParseImportAndExport(t *testing.T) {
	prog := testParse(t, `
import { readFile, writeFile as write } from "fs";
export const VERSION = 1;
export fn greet(): string { return "hi"; }
`)
	imp, ok := prog.Statements[0].(*ast.ImportStatement)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.ImportStatement", prog.Statements[0])
	}
	if len(imp.Named) != 2 || imp.Named[1].Alias != "write" {
		t.Errorf("imp = %+v", imp)
	}
	exp, ok := prog.Statements[1].(*ast.ExportStatement)
	if !ok {
		t.Fatalf("statement 1 is %T, want *ast.ExportStatement", prog.Statements[1])
	}
	if _, ok := exp.Declaration.(*ast.VarDeclaration); !ok {
		t.Errorf("Declaration is %T", exp.Declaration)
	}
}

func TestParseTypeAnnotations(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`const a: int[] = x;`, "int[]"},
		{`const b: map<string, int> = x;`, "map<string, int>"},
		{`const c: int | string = x;`, "int | string"},
		{`const d: { x: int, y?: int } = x;`, "{ x: int, y?: int }"},
		{`const e: (int, string) -> bool = x;`, "(int, string) -> bool"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			prog := testParse(t, tt.input)
			decl := prog.Statements[0].(*ast.VarDeclaration)
			if got := decl.Type.String(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseTemplateStringExpression(t *testing.T) {
	prog := testParse(t, `const s = "hello ${name + 1}!";`)
	decl := prog.Statements[0].(*ast.VarDeclaration)
	lit, ok := decl.Init.(*ast.TemplateStringLiteral)
	if !ok {
		t.Fatalf("Init is %T, want *ast.TemplateStringLiteral", decl.Init)
	}
	if len(lit.Chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(lit.Chunks))
	}
	if _, ok := lit.Chunks[1].Expr.(*ast.BinaryExpression); !ok {
		t.Errorf("chunk 1 expr is %T, want *ast.BinaryExpression", lit.Chunks[1].Expr)
	}
}

func TestNewlineTerminatesStatement(t *testing.T) {
	prog := testParse(t, "fn f() {\n  return a\n  (b).foo()\n}")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("got %d statements in body, want 2: %+v", len(fn.Body.Statements), fn.Body.Statements)
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("statement 0 is %T, want *ast.ReturnStatement", fn.Body.Statements[0])
	}
	if ident, ok := ret.Value.(*ast.Identifier); !ok || ident.Value != "a" {
		t.Errorf("return value = %+v, want identifier a", ret.Value)
	}
	if _, ok := fn.Body.Statements[1].(*ast.ExpressionStatement); !ok {
		t.Errorf("statement 1 is %T, want *ast.ExpressionStatement", fn.Body.Statements[1])
	}
}

func TestNewlineAfterBareReturn(t *testing.T) {
	prog := testParse(t, "fn f() {\n  return\n  1;\n}")
	fn := prog.Statements[0].(*ast.FunctionDeclaration)
	if len(fn.Body.Statements) != 2 {
		t.Fatalf("got %d statements in body, want 2", len(fn.Body.Statements))
	}
	ret := fn.Body.Statements[0].(*ast.ReturnStatement)
	if ret.Value != nil {
		t.Errorf("return value = %+v, want nil (bare return)", ret.Value)
	}
}

func TestNewlineIgnoredInsideParens(t *testing.T) {
	prog := testParse(t, "const x = (1 +\n  2);")
	decl := prog.Statements[0].(*ast.VarDeclaration)
	grp, ok := decl.Init.(*ast.GroupedExpression)
	if !ok {
		t.Fatalf("Init is %T, want *ast.GroupedExpression", decl.Init)
	}
	if _, ok := grp.Inner.(*ast.BinaryExpression); !ok {
		t.Errorf("Inner is %T, want *ast.BinaryExpression (newline inside parens must not break the expression)", grp.Inner)
	}
}

func TestSynchronizeRecoversAfterBadStatement(t *testing.T) {
	_, errs := ParseSource("const ; const y = 1;", "t.lj")
	if len(errs) == 0 {
		t.Fatal("expected at least one diagnostic")
	}
}
