package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "numl",
	Short: "numl interpreter",
	Long: `numl is a small interpreted language over scalars, strings, vectors,
and matrices.

It supports:
  - C-like control flow (if/else, while, for, break, continue)
  - User-defined functions
  - Vector and matrix literals with built-in linear algebra operators
  - A REPL-style driver that prints the value of every top-level
    statement that produces one`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
