// Command catalog manages a magazine catalog file from the command line.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aoideee/magazine-catalog/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}

	// ExitErrors have already been reported by the command.
	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(cli.GetExitCode(err))
}
