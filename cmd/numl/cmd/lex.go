package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/numl/internal/lexer"
	"github.com/cwbudde/numl/internal/token"
	"github.com/spf13/cobra"
)

var (
	lexEvalExpr string
	showPos     bool
	showType    bool
	onlyErrors  bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a numl file or expression",
	Long: `Tokenize (lex) a numl program and print the resulting tokens.

This command is useful for debugging the lexer and understanding how
numl source code is tokenized.

Examples:
  # Tokenize a script file
  numl lex script.num

  # Tokenize an inline expression
  numl lex -e "1 + 2"

  # Show token kinds and positions
  numl lex --show-type --show-pos script.num

  # Show only unrecognized tokens
  numl lex --only-errors script.num`,
	Args: cobra.MaximumNArgs(1),
	RunE: lexScript,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEvalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token positions (line:column)")
	lexCmd.Flags().BoolVar(&showType, "show-type", false, "show token kind names")
	lexCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only unrecognized tokens")
}

func lexScript(_ *cobra.Command, args []string) error {
	var input, filename string

	switch {
	case lexEvalExpr != "":
		input = lexEvalExpr
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		input = string(content)
	default:
		filename = "<stdin>"
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		input = string(content)
	}

	if verbose {
		fmt.Printf("Tokenizing: %s\n", filename)
		fmt.Printf("Input length: %d bytes\n", len(input))
		fmt.Println("---")
	}

	l := lexer.NewFromString(input)

	tokenCount := 0
	errorCount := 0

	for {
		tok := l.Next()

		if onlyErrors && tok.Kind != token.UNKNOWN {
			if tok.Kind == token.EOF {
				break
			}
			continue
		}

		tokenCount++
		if tok.Kind == token.UNKNOWN {
			errorCount++
		}

		printToken(tok)

		if tok.Kind == token.EOF {
			break
		}
	}

	if verbose {
		fmt.Println("---")
		fmt.Printf("Total tokens: %d\n", tokenCount)
		if errorCount > 0 {
			fmt.Printf("Errors: %d\n", errorCount)
		}
	}

	if onlyErrors && errorCount > 0 {
		return fmt.Errorf("found %d unrecognized token(s)", errorCount)
	}

	return nil
}

func printToken(tok token.Token) {
	var output string

	if showType {
		output = fmt.Sprintf("[%-10s]", tok.Kind)
	}

	switch tok.Kind {
	case token.EOF:
		output += " EOF"
	case token.UNKNOWN:
		output += fmt.Sprintf(" UNKNOWN: %q", tok.Lexeme)
	case token.STRING:
		output += fmt.Sprintf(" %q", tok.Str)
	case token.DOUBLE:
		output += fmt.Sprintf(" %g", tok.Num)
	case token.ID:
		output += fmt.Sprintf(" %s", tok.Lexeme)
	default:
		output += fmt.Sprintf(" %s", tok.Kind)
	}

	if showPos {
		output += fmt.Sprintf(" @%s", tok.Pos)
	}

	fmt.Println(output)
}
