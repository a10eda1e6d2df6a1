// SPDX-License-Identifier: MIT

// Command tempocycle finds temporal cycles in timestamped event graphs.
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/tempocycle/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tempocycle:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
