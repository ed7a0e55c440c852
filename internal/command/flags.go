// Package command provides the CLI commands of the pictty binary.
package command

import (
	"fmt"
	"math"

	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/options"
)

// Global flags.
var (
	// ConfigFlag names an extra config file read after the default ones.
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Read configuration from `FILE` after the default locations",
	}

	// VerboseFlag enables debug logging on stderr.
	VerboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "Log debug information to stderr",
	}
)

// Image flags.
var (
	IDFlag = &cli.UintFlag{
		Name:  "id",
		Usage: "Terminal image `ID` to load into or display from",
	}
	ColsFlag = &cli.IntFlag{
		Name:  "cols",
		Usage: "Fit the image into at most `N` columns",
	}
	RowsFlag = &cli.IntFlag{
		Name:  "rows",
		Usage: "Fit the image into at most `N` rows",
	}
	XFlag = &cli.IntFlag{
		Name:  "x",
		Usage: "Place the image at column `X` (0-based)",
	}
	YFlag = &cli.IntFlag{
		Name:  "y",
		Usage: "Place the image at row `Y` (0-based)",
	}
	UpscaleFlag = &cli.BoolFlag{
		Name:  "upscale",
		Usage: "Allow enlarging the image beyond its native size",
	}
)

// GlobalFlags returns the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{ConfigFlag, VerboseFlag}
}

// GeometryFlags returns the flags controlling the on-screen footprint.
func GeometryFlags() []cli.Flag {
	return []cli.Flag{ColsFlag, RowsFlag, XFlag, YFlag, UpscaleFlag}
}

// DisplayFlags returns the flags of the display and show commands.
func DisplayFlags() []cli.Flag {
	return append([]cli.Flag{IDFlag}, GeometryFlags()...)
}

// buildOptions reads the image flags of c into an Options value for action.
// Unset flags stay nil; upscale falls back to the configured default.
func buildOptions(c *cli.Context, action options.Action, defaultUpscale bool) (*options.Options, error) {
	o := &options.Options{
		Path:    c.Args().First(),
		Action:  action,
		Upscale: defaultUpscale,
	}

	if c.IsSet(IDFlag.Name) {
		id := c.Uint(IDFlag.Name)
		if id > math.MaxUint32 {
			return nil, fmt.Errorf("--id %d: out of range", id)
		}
		v := uint32(id) //nolint:gosec // range checked above
		o.ID = &v
	}
	o.Cols = intFlag(c, ColsFlag.Name)
	o.Rows = intFlag(c, RowsFlag.Name)
	o.X = intFlag(c, XFlag.Name)
	o.Y = intFlag(c, YFlag.Name)
	if c.IsSet(UpscaleFlag.Name) {
		o.Upscale = c.Bool(UpscaleFlag.Name)
	}

	return o, nil
}

func intFlag(c *cli.Context, name string) *int {
	if !c.IsSet(name) {
		return nil
	}
	v := c.Int(name)
	return &v
}
