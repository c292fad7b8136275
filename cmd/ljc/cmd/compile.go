package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xbodwf/ljc/internal/diag"
	"github.com/xbodwf/ljc/pkg/compiler"
)

var (
	compileOutput       string
	compileSourceMap    bool
	compileJSON         bool
	compileModuleResMod string
	compileStdRoot      string
	compileTarget       string
)

var compileCmd = &cobra.Command{
	Use:   "compile <file>",
	Short: "Compile an Lj file to ECMAScript",
	Long: `Compile an Lj program to plain ECMAScript and print it to stdout,
or write it to a file with -o.

Examples:
  # Compile to stdout
  ljc compile script.lj

  # Compile to a file
  ljc compile script.lj -o script.js

  # Emit a source map alongside the code
  ljc compile script.lj -o script.js --source-map

  # Print diagnostics as JSON instead of human-readable text
  ljc compile script.lj --json`,
	Args: cobra.ExactArgs(1),
	RunE: compileSource,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&compileSourceMap, "source-map", false, "emit a source map")
	compileCmd.Flags().BoolVar(&compileJSON, "json", false, "print diagnostics as JSON")
	compileCmd.Flags().StringVar(&compileModuleResMod, "module-resolution", "identity", "module resolution strategy: identity, rewrite-extension, std-prefix")
	compileCmd.Flags().StringVar(&compileStdRoot, "std-root", "", "import root substituted for a leading /std/ (std-prefix resolution only)")
	compileCmd.Flags().StringVar(&compileTarget, "target", "", "target annotation recorded in the emitted header comment")
}

func compileSource(_ *cobra.Command, args []string) error {
	filename := args[0]

	opts := compiler.Options{
		OutDir:           "",
		SourceMap:        compileSourceMap,
		Target:           compileTarget,
		ModuleResolution: compiler.ModuleResolutionStrategy(compileModuleResMod),
		StdRoot:          compileStdRoot,
	}

	result, err := compiler.CompileFile(filename, opts)
	if err != nil {
		return usageFailure(err)
	}

	if !result.OK {
		if err := reportDiagnostics(result.Diagnostics, filename); err != nil {
			return err
		}
		return compileFailure(fmt.Errorf("compilation failed with %d diagnostic(s)", len(result.Diagnostics)))
	}

	if len(result.Diagnostics) > 0 {
		if err := reportDiagnostics(result.Diagnostics, filename); err != nil {
			return err
		}
	}

	if compileOutput == "" {
		fmt.Print(result.Code)
		return nil
	}

	if err := os.WriteFile(compileOutput, []byte(result.Code), 0o644); err != nil {
		return usageFailure(fmt.Errorf("failed to write output file %s: %w", compileOutput, err))
	}
	if result.SourceMap != "" {
		if err := os.WriteFile(compileOutput+".map", []byte(result.SourceMap), 0o644); err != nil {
			return usageFailure(fmt.Errorf("failed to write source map %s.map: %w", compileOutput, err))
		}
	}
	fmt.Printf("Compiled %s -> %s\n", filename, compileOutput)
	return nil
}

func reportDiagnostics(diags []diag.Diagnostic, source string) error {
	if compileJSON {
		data, err := diag.List(diags).MarshalJSON()
		if err != nil {
			return usageFailure(fmt.Errorf("failed to encode diagnostics as JSON: %w", err))
		}
		fmt.Fprintln(os.Stderr, string(data))
		return nil
	}

	content, readErr := os.ReadFile(source)
	src := ""
	if readErr == nil {
		src = string(content)
	}
	fmt.Fprint(os.Stderr, diag.List(diags).Format(false, src))
	return nil
}
