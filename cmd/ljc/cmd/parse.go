package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xbodwf/ljc/internal/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse an Lj file and print its AST",
	Long: `Parse an Lj program and print the resulting AST's debug form,
or diagnostics if parsing fails.

Examples:
  ljc parse script.lj
  ljc parse -e "fn add(a: int, b: int): int { return a + b; }"`,
	Args: cobra.MaximumNArgs(1),
	RunE: parseSource,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from file")
}

func parseSource(_ *cobra.Command, args []string) error {
	input, filename, err := readSourceArg(parseEval, args)
	if err != nil {
		return usageFailure(err)
	}

	prog, errs := parser.ParseSource(input, filename)
	if errs.HasErrors() {
		fmt.Fprint(os.Stderr, errs.Format(false, input))
		return compileFailure(fmt.Errorf("parsing failed with %d error(s)", len(errs)))
	}

	fmt.Println(prog.String())
	return nil
}
