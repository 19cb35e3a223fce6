package main

import (
	"os"

	"github.com/remapd/remapd/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// Commands report their own errors; the ExitError code is the
		// only thing left to surface.
		os.Exit(cli.GetExitCode(err))
	}
}
