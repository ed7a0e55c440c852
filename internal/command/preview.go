package command

import (
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/errmsg"
	"github.com/llehouerou/pictty/internal/options"
)

// LoadCommand transmits an image into terminal memory without showing it.
func (e *Env) LoadCommand() *cli.Command {
	return &cli.Command{
		Name:      "load",
		Usage:     "Load an image into terminal memory under --id",
		ArgsUsage: "PATH",
		Flags:     []cli.Flag{IDFlag},
		Action:    e.previewAction(options.Load),
	}
}

// DisplayCommand shows an image, by id when given or by transmitting it.
func (e *Env) DisplayCommand() *cli.Command {
	return &cli.Command{
		Name:      "display",
		Usage:     "Display an image; with --id, display the copy loaded earlier",
		ArgsUsage: "PATH",
		Flags:     DisplayFlags(),
		Action:    e.previewAction(options.Display),
	}
}

// ShowCommand loads an image under --id and displays it.
func (e *Env) ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Aliases:   []string{"load-and-display"},
		Usage:     "Load an image under --id and display it",
		ArgsUsage: "PATH",
		Flags:     DisplayFlags(),
		Action:    e.previewAction(options.LoadAndDisplay),
	}
}

// ClearCommand erases every image shown or held by the terminal.
func (e *Env) ClearCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear",
		Usage:  "Delete all images from the terminal",
		Action: e.previewAction(options.Clear),
	}
}

func (e *Env) previewAction(action options.Action) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := e.setup(c)
		if err != nil {
			return err
		}
		defer rt.log.Sync()

		o, err := buildOptions(c, action, rt.cfg.Upscale)
		if err != nil {
			return cli.Exit(rt.styles.Error.Render(err.Error()), 2)
		}

		if err := rt.previewer().Preview(o); err != nil {
			return e.fail(errmsg.ForAction(action), o.Path, err)
		}
		return nil
	}
}
