// Package compiler is the two-operation façade over the lexer, parser,
// and generator: Compile and CompileFile. Every internal package stays
// import-only from here; this is the one place that wires lex -> parse ->
// generate into a single call.
package compiler

import (
	"fmt"
	"os"

	"github.com/xbodwf/ljc/internal/ast"
	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/internal/generator"
	"github.com/xbodwf/ljc/internal/parser"
	"github.com/xbodwf/ljc/internal/token"
)

// ModuleResolutionStrategy selects one of internal/generator's built-in
// ModuleResolver implementations by name, keeping pkg/compiler's public
// surface free of the generator package's types.
type ModuleResolutionStrategy string

const (
	ModuleResolutionIdentity  ModuleResolutionStrategy = "identity"
	ModuleResolutionExtension ModuleResolutionStrategy = "rewrite-extension"
	ModuleResolutionStdPrefix ModuleResolutionStrategy = "std-prefix"
)

// Options configures one Compile or CompileFile call.
type Options struct {
	OutDir           string
	SourceMap        bool
	Target           string
	ModuleResolution ModuleResolutionStrategy
	StdRoot          string // used only when ModuleResolution is std-prefix
	RuntimeModule    string // defaults to "lj-runtime" when empty
}

func (o Options) resolver() generator.ModuleResolver {
	switch o.ModuleResolution {
	case ModuleResolutionExtension:
		return generator.RewriteExtensionResolver{}
	case ModuleResolutionStdPrefix:
		return generator.StdPrefixResolver{Root: o.StdRoot}
	default:
		return generator.IdentityResolver{}
	}
}

// Result is the outcome of one compilation: either a completed emission
// (OK true, Code populated) or a failed one (OK false, Diagnostics
// explaining why).
type Result struct {
	OK          bool
	Code        string
	SourceMap   string
	Diagnostics []diag.Diagnostic
}

// Compile lexes, parses, and generates sourceText (named sourceName for
// diagnostics), returning a Result that is never nil. Compile never
// panics: a true AST-shape invariant violation inside the generator is
// recovered here and reported as an internal-compiler-error diagnostic
// rather than propagated to the caller, per the façade boundary's error
// policy.
func Compile(sourceText, sourceName string, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = &Result{
				OK: false,
				Diagnostics: []diag.Diagnostic{
					diag.Newf(diag.CodeInternal, token.Position{Line: 1, Column: 1}, "internal compiler error: %v", r).WithFile(sourceName),
				},
			}
		}
	}()

	prog, parseErrs := parser.ParseSource(sourceText, sourceName)
	if parseErrs.HasErrors() {
		return &Result{OK: false, Diagnostics: []diag.Diagnostic(parseErrs)}, nil
	}

	code, genErrs := generateFrom(prog, sourceName, opts)
	if genErrs.HasErrors() {
		return &Result{OK: false, Diagnostics: []diag.Diagnostic(genErrs)}, nil
	}

	result = &Result{
		OK:          true,
		Code:        code,
		Diagnostics: []diag.Diagnostic(genErrs),
	}
	if opts.SourceMap {
		result.SourceMap = emptySourceMap(sourceName)
	}
	return result, nil
}

// emptySourceMap renders a structurally valid V3 source map with no
// segment mappings: the generator does not yet track source positions
// through emission, so this records "one file, no detail" honestly
// instead of fabricating line-accurate mappings.
func emptySourceMap(sourceName string) string {
	return fmt.Sprintf(`{"version":3,"sources":[%q],"names":[],"mappings":""}`, sourceName)
}

func generateFrom(prog *ast.Program, sourceName string, opts Options) (string, diag.List) {
	runtimeModule := opts.RuntimeModule
	if runtimeModule == "" {
		runtimeModule = "lj-runtime"
	}
	return generator.Generate(prog, generator.Options{
		Resolver:      opts.resolver(),
		Target:        opts.Target,
		RuntimeModule: runtimeModule,
		SourceFile:    sourceName,
	})
}

// CompileFile reads path and calls Compile with its contents. It is the
// only convenience wrapper in this package that touches the filesystem;
// everything else in pkg/compiler and internal/* is pure, apart from
// internal/config.Load, which reads an options file.
func CompileFile(path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiler: reading %s: %w", path, err)
	}
	return Compile(string(data), path, opts)
}
