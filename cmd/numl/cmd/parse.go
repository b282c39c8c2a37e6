package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/numl/internal/lexer"
	"github.com/cwbudde/numl/internal/parser"
	"github.com/cwbudde/numl/internal/repl"
	"github.com/spf13/cobra"
)

var parseExpression bool

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse numl source and display the AST",
	Long: `Parse numl source code and display the Abstract Syntax Tree (AST)
of every top-level statement, without evaluating any of them.

If no file is provided, reads from stdin.
Use -e to parse a single expression from the command line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExpression, "expression", "e", false, "parse an expression given on the command line")
}

func runParse(_ *cobra.Command, args []string) error {
	var input string

	switch {
	case parseExpression:
		if len(args) == 0 {
			return fmt.Errorf("no expression provided")
		}
		input = args[0]
	case len(args) > 0:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("error reading file: %w", err)
		}
		input = string(data)
	default:
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		input = string(data)
	}

	p := parser.New(lexer.NewFromString(input), input, "<parse>")

	count := 0
	for {
		stmt := p.ParseStatement()
		if stmt == nil {
			break
		}
		count++
		fmt.Println(repl.DumpStmt(stmt, 0))
	}

	if errs := p.Errors(); len(errs) > 0 {
		fmt.Fprint(os.Stderr, repl.FormatErrors(errs, true))
		fmt.Fprintln(os.Stderr)
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	if count == 0 {
		fmt.Println("(empty program)")
	}

	return nil
}
