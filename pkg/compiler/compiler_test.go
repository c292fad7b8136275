package compiler_test

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/xbodwf/ljc/pkg/compiler"
)

func TestCompileSuccess(t *testing.T) {
	result, err := compiler.Compile(`fn add(a: int, b: int): int { return a + b; }`, "add.lj", compiler.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK result, got diagnostics: %+v", result.Diagnostics)
	}
	if !strings.Contains(result.Code, "function add(a, b) {") {
		t.Errorf("expected emitted function signature, got:\n%s", result.Code)
	}
}

func TestCompileParseError(t *testing.T) {
	result, err := compiler.Compile(`fn add(a: int, b: int): int { return a + `, "broken.lj", compiler.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OK {
		t.Fatalf("expected a failing result, got OK with code:\n%s", result.Code)
	}
	if len(result.Diagnostics) == 0 {
		t.Fatalf("expected at least one diagnostic")
	}
}

func TestCompileSourceMapOptedIn(t *testing.T) {
	result, err := compiler.Compile(`const x: int = 1;`, "x.lj", compiler.Options{SourceMap: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK result, got diagnostics: %+v", result.Diagnostics)
	}
	if !strings.Contains(result.SourceMap, `"version":3`) {
		t.Errorf("expected a v3 source map, got: %s", result.SourceMap)
	}
	if !strings.Contains(result.SourceMap, `"x.lj"`) {
		t.Errorf("expected source map to name the source file, got: %s", result.SourceMap)
	}
}

func TestCompileSourceMapOmittedByDefault(t *testing.T) {
	result, err := compiler.Compile(`const x: int = 1;`, "x.lj", compiler.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceMap != "" {
		t.Errorf("expected no source map when SourceMap option is false, got: %s", result.SourceMap)
	}
}

func TestCompileModuleResolutionStdPrefix(t *testing.T) {
	result, err := compiler.Compile(`import { io } from "/std/io";`, "main.lj", compiler.Options{
		ModuleResolution: compiler.ModuleResolutionStdPrefix,
		StdRoot:          "lj-std",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK result, got diagnostics: %+v", result.Diagnostics)
	}
	if !strings.Contains(result.Code, `from "lj-std/io"`) {
		t.Errorf("expected rewritten std import, got:\n%s", result.Code)
	}
}

func TestCompileFileMissing(t *testing.T) {
	_, err := compiler.CompileFile("/nonexistent/path/does-not-exist.lj", compiler.Options{})
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestCompileSnapshot(t *testing.T) {
	result, err := compiler.Compile(`
class Greeter {
	private name: str;

	fn constructor(name: str) {
		this.name = name;
	}

	fn greet(): str {
		return "hello, " + this.name;
	}
}
`, "greeter.lj", compiler.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OK {
		t.Fatalf("expected OK result, got diagnostics: %+v", result.Diagnostics)
	}
	snaps.MatchSnapshot(t, result.Code)
}
