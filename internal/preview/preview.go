// Package preview renders images in the terminal through the kitty graphics
// protocol: load into terminal memory, display, both, or clear.
package preview

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/llehouerou/pictty/internal/cursor"
	"github.com/llehouerou/pictty/internal/geometry"
	"github.com/llehouerou/pictty/internal/imagefile"
	"github.com/llehouerou/pictty/internal/kitty"
	"github.com/llehouerou/pictty/internal/log"
	"github.com/llehouerou/pictty/internal/options"
	"github.com/llehouerou/pictty/internal/transfer"
)

// Decoder turns an image file into RGBA8 pixels.
type Decoder interface {
	Decode(path string) (*imagefile.Decoded, error)
}

// Prober reads image dimensions without decoding pixels.
type Prober interface {
	Probe(path string) (width, height int, err error)
}

// Config holds the collaborators and settings of a Previewer. Zero fields
// get defaults.
type Config struct {
	Decoder  Decoder
	Prober   Prober
	CellSize geometry.CellSize

	// TempDir and TempPrefix locate the pixel transfer files.
	TempDir    string
	TempPrefix string

	Logger *log.Logger
}

// Previewer writes protocol commands to one output stream.
type Previewer struct {
	out     *bufio.Writer
	decoder Decoder
	prober  Prober
	cell    geometry.CellSize
	tempDir string
	prefix  string
	log     *log.Logger
}

// New creates a Previewer writing to w.
func New(w io.Writer, cfg Config) *Previewer {
	files := imagefile.Reader{}
	p := &Previewer{
		out:     bufio.NewWriter(w),
		decoder: cfg.Decoder,
		prober:  cfg.Prober,
		cell:    cfg.CellSize,
		tempDir: cfg.TempDir,
		prefix:  cfg.TempPrefix,
		log:     cfg.Logger,
	}
	if p.decoder == nil {
		p.decoder = files
	}
	if p.prober == nil {
		p.prober = files
	}
	if !p.cell.Valid() {
		p.cell = geometry.DefaultCellSize
	}
	if p.prefix == "" {
		p.prefix = transfer.DefaultPrefix
	}
	if p.log == nil {
		p.log = log.Nop()
	}
	return p
}

// Preview runs the action selected by o. Missing required fields are
// reported before anything is written.
func (p *Previewer) Preview(o *options.Options) error {
	if err := o.Validate(); err != nil {
		return err
	}

	switch o.Action {
	case options.Load:
		return p.Load(o)
	case options.Display:
		return p.Display(o)
	case options.LoadAndDisplay:
		return p.LoadAndDisplay(o)
	case options.Clear:
		return p.Clear()
	}
	return fmt.Errorf("%w: %s", options.ErrUnknownAction, o.Action)
}

// Clear deletes every image and placement held by the terminal.
func (p *Previewer) Clear() error {
	p.log.Debug("clear graphics")
	return p.send(kitty.Clear())
}

// Load decodes o.Path and stores its pixels in the terminal under o.ID.
func (p *Previewer) Load(o *options.Options) error {
	if o.ID == nil {
		return fmt.Errorf("%s: %w", options.Load, options.ErrMissingID)
	}

	img, tf, err := p.stage(o.Path)
	if err != nil {
		return err
	}

	cmd := kitty.Load(img.Width, img.Height, *o.ID, tf.Path())
	if err := p.send(cmd); err != nil {
		p.discard(tf)
		return err
	}
	p.log.Debug("loaded image", zap.Uint32("id", *o.ID), zap.String("path", o.Path))
	return nil
}

// Display shows the image. With an id the terminal's copy is placed and
// only geometry is sent; without one the pixels travel with the command.
func (p *Previewer) Display(o *options.Options) error {
	var (
		cmd *kitty.Command
		tf  *transfer.File
	)

	if o.ID != nil {
		width, height, err := p.prober.Probe(o.Path)
		if err != nil {
			return err
		}
		cols, rows := geometry.Fit(width, height, o.Cols, o.Rows, o.Upscale, p.cell)
		cmd = kitty.Place(cols, rows, *o.ID)
		p.log.Debug("place image",
			zap.Uint32("id", *o.ID), zap.Int("cols", cols), zap.Int("rows", rows))
	} else {
		img, staged, err := p.stage(o.Path)
		if err != nil {
			return err
		}
		tf = staged
		cols, rows := geometry.Fit(img.Width, img.Height, o.Cols, o.Rows, o.Upscale, p.cell)
		cmd = kitty.TransmitAndDisplay(img.Width, img.Height, cols, rows, tf.Path())
		p.log.Debug("transmit and display image",
			zap.Int("cols", cols), zap.Int("rows", rows))
	}

	var err error
	if o.Positioned() {
		x, y := o.Position()
		err = cursor.At(p.out, x, y, func() error { return p.send(cmd) })
	} else {
		err = p.send(cmd)
	}
	if err != nil {
		if tf != nil {
			p.discard(tf)
		}
		return err
	}

	return p.newline()
}

// LoadAndDisplay loads the image under o.ID and then places it. A failed
// display leaves the loaded image in the terminal.
func (p *Previewer) LoadAndDisplay(o *options.Options) error {
	if err := p.Load(o); err != nil {
		return err
	}
	return p.Display(o)
}

// stage decodes path and writes its pixels to a closed transfer file.
func (p *Previewer) stage(path string) (*imagefile.Decoded, *transfer.File, error) {
	img, err := p.decoder.Decode(path)
	if err != nil {
		return nil, nil, err
	}

	tf, err := transfer.Write(p.tempDir, p.prefix, img.Pix)
	if err != nil {
		if tf != nil {
			p.discard(tf)
		}
		return nil, nil, err
	}
	// Pixels must be on disk before the terminal is told to read them.
	if err := tf.Close(); err != nil {
		p.discard(tf)
		return nil, nil, err
	}

	p.log.Debug("staged pixels",
		zap.String("file", tf.Path()),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.String("size", humanize.Bytes(uint64(len(img.Pix)))))
	return img, tf, nil
}

// discard removes a transfer file the terminal was never told about.
func (p *Previewer) discard(tf *transfer.File) {
	if err := tf.Remove(); err != nil {
		p.log.Warn("remove transfer file", zap.Error(err))
	}
}

func (p *Previewer) send(cmd *kitty.Command) error {
	return kitty.Send(p.out, cmd.Control(), cmd.Payload)
}

func (p *Previewer) newline() error {
	if err := p.out.WriteByte('\n'); err != nil {
		return fmt.Errorf("write newline: %w", err)
	}
	if err := p.out.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
