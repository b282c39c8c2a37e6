package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/numl/internal/eval"
	"github.com/cwbudde/numl/internal/repl"
	"github.com/spf13/cobra"
)

var (
	evalExpr string
	dumpAST  bool
	trace    bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a numl file or expression",
	Long: `Execute a numl program from a file, an inline expression, or
standard input, printing the result of every top-level statement that
produces one.

Examples:
  # Run a script file
  numl run script.num

  # Evaluate an inline expression
  numl run -e "1 + 2 * 3"

  # Run with AST dump (for debugging)
  numl run --dump-ast script.num

  # Run with an execution trace
  numl run --trace script.num

  # Read from standard input, REPL-style
  numl run`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST of each statement (for debugging)")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace evaluator control flow (for debugging)")
}

func runScript(_ *cobra.Command, args []string) error {
	var (
		src      *strings.Reader
		filename string
		prompt   string
	)

	switch {
	case evalExpr != "":
		src = strings.NewReader(evalExpr)
		filename = "<eval>"
	case len(args) == 1:
		filename = args[0]
		content, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file %s: %w", filename, err)
		}
		src = strings.NewReader(string(content))
	default:
		filename = "<stdin>"
		prompt = "> "
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		src = strings.NewReader(string(content))
	}

	errCount, err := repl.Run(src, os.Stdout, os.Stderr, repl.Options{
		Prompt:  prompt,
		File:    filename,
		Color:   true,
		DumpAST: dumpAST,
		Eval:    eval.Config{Trace: trace},
	})
	if err != nil {
		return err
	}
	if errCount > 0 {
		return fmt.Errorf("execution finished with %d error(s)", errCount)
	}
	return nil
}
