package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/xbodwf/ljc/internal/lexer"
	"github.com/xbodwf/ljc/internal/token"
)

var (
	lexEval       string
	lexShowDoc    bool
	lexOnlyErrors bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize an Lj file or expression",
	Long: `Tokenize (lex) an Lj program and print the resulting tokens, one
line per token: kind, lexeme, and line:column.

Examples:
  # Tokenize a script file
  ljc lex script.lj

  # Tokenize inline code
  ljc lex -e "mut x = 1;"

  # Show only illegal tokens
  ljc lex --only-errors script.lj`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexSource,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&lexShowDoc, "show-doc", false, "show attached doc-comment text per token")
	lexCmd.Flags().BoolVar(&lexOnlyErrors, "only-errors", false, "show only illegal tokens")
}

func lexSource(_ *cobra.Command, args []string) error {
	input, filename, err := readSourceArg(lexEval, args)
	if err != nil {
		return usageFailure(err)
	}

	l := lexer.New(input, filename)

	tokenCount := 0
	errorCount := 0
	for {
		tok := l.NextToken()
		if lexOnlyErrors && tok.Kind != token.ILLEGAL {
			if tok.Kind == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Kind == token.ILLEGAL {
			errorCount++
		}
		printToken(tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	if len(l.Errors()) > 0 {
		fmt.Fprint(os.Stderr, l.Errors().Format(false, input))
		return compileFailure(fmt.Errorf("lexing failed with %d error(s)", len(l.Errors())))
	}
	if lexOnlyErrors && errorCount > 0 {
		return compileFailure(fmt.Errorf("found %d illegal token(s)", errorCount))
	}
	return nil
}

func printToken(tok token.Token) {
	out := fmt.Sprintf("[%-16s] %q @%s", tok.Kind, tok.Lexeme, tok.Pos)
	if lexShowDoc && tok.Doc != "" {
		out += fmt.Sprintf(" doc=%q", tok.Doc)
	}
	fmt.Println(out)
}

// readSourceArg resolves the "-e inline code" vs "file argument" input
// shape shared by lex and parse.
func readSourceArg(eval string, args []string) (input, filename string, err error) {
	if eval != "" {
		return eval, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e for inline code")
}
