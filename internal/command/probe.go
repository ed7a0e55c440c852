package command

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/errmsg"
	"github.com/llehouerou/pictty/internal/geometry"
	"github.com/llehouerou/pictty/internal/imagefile"
	"github.com/llehouerou/pictty/internal/options"
	"github.com/llehouerou/pictty/internal/styles"
)

// ProbeCommand prints an image's dimensions and the footprint display would use.
func (e *Env) ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:      "probe",
		Usage:     "Print image dimensions and the cell footprint it would occupy",
		ArgsUsage: "PATH",
		Flags:     []cli.Flag{ColsFlag, RowsFlag, UpscaleFlag},
		Action:    e.probeAction,
	}
}

func (e *Env) probeAction(c *cli.Context) error {
	rt, err := e.setup(c)
	if err != nil {
		return err
	}
	defer rt.log.Sync()

	o, err := buildOptions(c, options.Display, rt.cfg.Upscale)
	if err != nil {
		return cli.Exit(rt.styles.Error.Render(err.Error()), 2)
	}
	if o.Path == "" {
		return e.fail(errmsg.OpProbe, "", options.ErrMissingPath)
	}

	files := imagefile.Reader{Options: rt.cfg.DecodeOptions()}
	width, height, err := files.Probe(o.Path)
	if err != nil {
		return e.fail(errmsg.OpProbe, o.Path, err)
	}

	cell := rt.cfg.CellSize(e.DetectCellSize)
	natCols, natRows := geometry.Natural(width, height, cell)
	cols, rows := geometry.Fit(width, height, o.Cols, o.Rows, o.Upscale, cell)

	s := styles.T().For(e.Stdout)
	lines := []string{
		s.Title.Render(o.Path),
		s.Field("size", fmt.Sprintf("%dx%d px", width, height)),
		s.Field("pixels", humanize.Bytes(uint64(width)*uint64(height)*4)), //nolint:gosec // dimensions are positive
		s.Field("cell", fmt.Sprintf("%dx%d px", cell.Width, cell.Height)),
		s.Field("natural", fmt.Sprintf("%dx%d cells", natCols, natRows)),
		s.Field("fit", fmt.Sprintf("%dx%d cells", cols, rows)),
	}
	_, err = fmt.Fprintln(e.Stdout, strings.Join(lines, "\n"))
	return err
}
