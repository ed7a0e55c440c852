package command

import (
	"github.com/urfave/cli/v2"
)

// App builds the pictty CLI application.
func (e *Env) App(version string) *cli.App {
	return &cli.App{
		Name:      "pictty",
		Usage:     "Display images in the terminal with the kitty graphics protocol",
		Version:   version,
		Flags:     GlobalFlags(),
		Writer:    e.Stdout,
		ErrWriter: e.Stderr,
		Reader:    e.Stdin,
		Commands: []*cli.Command{
			e.DisplayCommand(),
			e.LoadCommand(),
			e.ShowCommand(),
			e.ClearCommand(),
			e.ProbeCommand(),
			e.InspectCommand(),
		},
	}
}
