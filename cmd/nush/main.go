// Command nush is the pipeline shell runtime CLI.
package main

import (
	"fmt"
	"os"

	"github.com/dantswain/nushell/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
