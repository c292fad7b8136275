package generator_test

import (
	"strings"
	"testing"

	"github.com/xbodwf/ljc/internal/generator"
	"github.com/xbodwf/ljc/internal/parser"
)

func mustGenerate(t *testing.T, src string) string {
	t.Helper()
	prog, errs := parser.ParseSource(src, "test.lj")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %s", src, errs.Format(false, src))
	}
	out, genErrs := generator.Generate(prog, generator.Options{})
	if genErrs.HasErrors() {
		t.Fatalf("unexpected generator errors for %q: %s", src, genErrs.Format(false, src))
	}
	return out
}

func assertContains(t *testing.T, out, want string) {
	t.Helper()
	if !strings.Contains(out, want) {
		t.Errorf("expected output to contain %q, got:\n%s", want, out)
	}
}

func TestGenerateVarDeclaration(t *testing.T) {
	out := mustGenerate(t, `const x: int = 1;`)
	assertContains(t, out, "const x = 1;")
}

func TestGenerateMutDeclaration(t *testing.T) {
	out := mustGenerate(t, `mut y = 2;`)
	assertContains(t, out, "let y = 2;")
}

func TestGenerateFunctionDeclaration(t *testing.T) {
	out := mustGenerate(t, `fn add(a: int, b: int): int { return a + b; }`)
	assertContains(t, out, "function add(a, b) {")
	assertContains(t, out, "return a + b;")
}

func TestGenerateIfElseChain(t *testing.T) {
	out := mustGenerate(t, `fn f(x: int) { if (x > 0) { return 1; } else if (x < 0) { return -1; } else { return 0; } }`)
	assertContains(t, out, "if (x > 0) {")
	assertContains(t, out, "} else if (x < 0) {")
	assertContains(t, out, "} else {")
}

func TestGenerateForInRangeLoop(t *testing.T) {
	out := mustGenerate(t, `fn f() { for (i in 0..10) { } }`)
	assertContains(t, out, "import { range } from")
	assertContains(t, out, "range(0, 10, false)")
}

func TestGenerateDeferLowersToTryFinally(t *testing.T) {
	out := mustGenerate(t, `fn f() { defer cleanup(); doWork(); }`)
	assertContains(t, out, "try {")
	assertContains(t, out, "doWork();")
	assertContains(t, out, "} finally {")
	assertContains(t, out, "cleanup();")
	assertContains(t, out, "console.warn")
}

func TestGenerateUsingLowersToTryFinally(t *testing.T) {
	out := mustGenerate(t, `fn f() { using (res = open("f")) { res.read(); } }`)
	assertContains(t, out, `const res = open("f");`)
	assertContains(t, out, "} finally {")
	assertContains(t, out, "res.dispose")
	assertContains(t, out, "res.close")
}

func TestGenerateClassWithPrivateField(t *testing.T) {
	out := mustGenerate(t, `class Counter {
		private count: int = 0;
		fn increment() { this.count = this.count + 1; }
	}`)
	assertContains(t, out, "#count = 0;")
	assertContains(t, out, "this.#count = this.#count + 1;")
}

func TestGenerateClassExtends(t *testing.T) {
	out := mustGenerate(t, `class Animal {}
	class Dog extends Animal {}`)
	assertContains(t, out, "class Dog extends Animal {")
}

func TestGenerateEnumDeclaration(t *testing.T) {
	out := mustGenerate(t, `enum Color { Red, Green, Blue = 5, Yellow }`)
	assertContains(t, out, "const Color = Object.freeze({")
	assertContains(t, out, "Red: 0,")
	assertContains(t, out, "Blue: 5,")
	assertContains(t, out, "Yellow: 6,")
}

func TestGenerateWhenExpression(t *testing.T) {
	out := mustGenerate(t, `fn classify(n: int): str {
		mut label: str = when (n) {
			0 => "zero",
			n is int where n > 0 => "positive",
			else => "negative",
		};
		return label;
	}`)
	assertContains(t, out, "$subject === 0")
	assertContains(t, out, `"positive"`)
	assertContains(t, out, "no when arm matched")
}

func TestGenerateWhenStatement(t *testing.T) {
	out := mustGenerate(t, `fn f(x: int) {
		when (x) {
			1 => { return 1; }
			else => { return 0; }
		}
	}`)
	assertContains(t, out, "const $subject")
	assertContains(t, out, "if (")
	assertContains(t, out, "} else if (true) {")
}

func TestGenerateTypeCheckExpression(t *testing.T) {
	out := mustGenerate(t, `fn f(x: int): bool { return x is int; }`)
	assertContains(t, out, "Number.isInteger(x)")
}

func TestGenerateTryCatchFinally(t *testing.T) {
	out := mustGenerate(t, `fn f() {
		try {
			risky();
		} catch (e: str) {
			handle(e);
		} finally {
			cleanup();
		}
	}`)
	assertContains(t, out, "try {")
	assertContains(t, out, "risky();")
	assertContains(t, out, `typeof`)
	assertContains(t, out, "handle(")
	assertContains(t, out, "cleanup();")
}

func TestGenerateSendAndReceive(t *testing.T) {
	out := mustGenerate(t, `fn f() { mut ch = chan int(1); ch <- 5; mut v: int = <-ch; }`)
	assertContains(t, out, "import { ")
	assertContains(t, out, "new Channel(1)")
	assertContains(t, out, "await ch.send(5);")
	assertContains(t, out, "await ch.recv())")
}

func TestGenerateImportRewriteExtension(t *testing.T) {
	prog, errs := parser.ParseSource(`import { foo } from "./util.lj";`, "test.lj")
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", errs.Format(false, ""))
	}
	out, genErrs := generator.Generate(prog, generator.Options{Resolver: generator.RewriteExtensionResolver{}})
	if genErrs.HasErrors() {
		t.Fatalf("unexpected generator errors: %s", genErrs.Format(false, ""))
	}
	assertContains(t, out, `from "./util.js"`)
}

func TestGenerateNoUnreferencedRuntimeImport(t *testing.T) {
	out := mustGenerate(t, `const x: int = 1;`)
	if strings.Contains(out, "lj-runtime") {
		t.Errorf("expected no runtime import for code using no runtime symbols, got:\n%s", out)
	}
}
