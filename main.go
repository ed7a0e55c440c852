// Package main provides the pictty CLI entrypoint.
//
// Usage:
//
//	pictty [--config FILE] [--verbose] <command> [options] PATH
//
// Exit codes:
//   - 0: success
//   - 1: I/O failure (temp file or terminal stream)
//   - 2: usage error (missing id, path or unknown action)
//   - 3: image could not be decoded or probed
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/command"
)

// Version is set via ldflags at build time.
var version = "dev"

func main() {
	app := command.DefaultEnv().App(version)
	app.ExitErrHandler = exitErrHandler

	if err := app.Run(os.Args); err != nil {
		os.Exit(1)
	}
}

// exitErrHandler prints the error message and exits with its code.
func exitErrHandler(_ *cli.Context, err error) {
	if err == nil {
		return
	}

	var exitCoder cli.ExitCoder
	if errors.As(err, &exitCoder) {
		code := exitCoder.ExitCode()
		msg := exitCoder.Error()
		if msg != "" && msg != fmt.Sprintf("exit status %d", code) {
			fmt.Fprintln(os.Stderr, msg)
		}
		os.Exit(code)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
