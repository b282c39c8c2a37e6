// Command numl is the executable front end for the numl interpreter: a
// small expression-and-control-flow language over scalars, vectors, and
// matrices. See the cmd subpackage for the available subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/numl/cmd/numl/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
