// Command textplate renders named text templates from the command line.
package main

import (
	"fmt"
	"os"

	"github.com/opencode-ai/textplate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}
