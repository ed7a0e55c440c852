package command

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/llehouerou/pictty/internal/config"
	"github.com/llehouerou/pictty/internal/errmsg"
	"github.com/llehouerou/pictty/internal/geometry"
	"github.com/llehouerou/pictty/internal/imagefile"
	"github.com/llehouerou/pictty/internal/log"
	"github.com/llehouerou/pictty/internal/preview"
	"github.com/llehouerou/pictty/internal/styles"
)

// Env holds the process resources commands run against.
type Env struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// DetectCellSize queries the terminal cell size. Nil disables detection.
	DetectCellSize func() geometry.CellSize
}

// DefaultEnv returns an Env bound to the process's standard streams.
func DefaultEnv() *Env {
	return &Env{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		DetectCellSize: func() geometry.CellSize {
			return geometry.DetectCellSize(os.Stdout.Fd())
		},
	}
}

// runtime is what one command invocation needs after reading global flags.
type runtime struct {
	cfg    *config.Config
	log    *log.Logger
	styles *styles.Styles
	env    *Env
}

func (e *Env) setup(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load(c.String(ConfigFlag.Name))
	if err != nil {
		return nil, e.fail(errmsg.OpConfig, "", err)
	}

	level := cfg.LogLevel
	if c.Bool(VerboseFlag.Name) {
		level = "debug"
	}
	logger := log.NewWithWriter(level, e.Stderr)

	if f, ok := e.Stdout.(*os.File); ok && !term.IsTerminal(int(f.Fd())) { //nolint:gosec // fd of an open file
		logger.Debug("stdout is not a terminal, graphics output may not render")
	}

	return &runtime{
		cfg:    cfg,
		log:    logger,
		styles: styles.T().For(e.Stderr),
		env:    e,
	}, nil
}

func (r *runtime) previewer() *preview.Previewer {
	cell := r.cfg.CellSize(r.env.DetectCellSize)
	files := imagefile.Reader{Options: r.cfg.DecodeOptions()}
	r.log.Debug("previewer ready",
		zap.Int("cell_width", cell.Width),
		zap.Int("cell_height", cell.Height))

	return preview.New(r.env.Stdout, preview.Config{
		Decoder:    files,
		Prober:     files,
		CellSize:   cell,
		TempDir:    r.cfg.TempDir,
		TempPrefix: r.cfg.GetTempPrefix(),
		Logger:     r.log,
	})
}

// fail converts err into a cli exit error carrying a styled message.
func (e *Env) fail(op errmsg.Op, context string, err error) error {
	msg := errmsg.FormatWith(op, context, err)
	return cli.Exit(styles.T().For(e.Stderr).Error.Render(msg), errmsg.ExitCode(err))
}
