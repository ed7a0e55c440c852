// Package imagefile decodes image files into tight RGBA8 buffers and probes
// their dimensions.
package imagefile

import (
	"bytes"
	"errors"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"  // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ErrEmptyImage is returned for images with a zero dimension.
var ErrEmptyImage = errors.New("image has no pixels")

// Error records the failing operation and the path it was applied to.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Decoded is an image in straight-alpha RGBA8 layout: 4 bytes per pixel,
// row-major, no padding between rows.
type Decoded struct {
	Width  int
	Height int
	Pix    []byte
}

// Options tunes decoding.
type Options struct {
	// MaxWidth and MaxHeight bound the decoded size; larger images are
	// downscaled preserving aspect ratio. Zero means unbounded.
	MaxWidth  int
	MaxHeight int
}

// Decode reads the image at path. Audio files are accepted when they embed
// a cover picture.
func Decode(path string, opts Options) (*Decoded, error) {
	r, err := open(path)
	if err != nil {
		return nil, &Error{Op: "decode", Path: path, Err: err}
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	img, _, err := image.Decode(r)
	if err != nil {
		return nil, &Error{Op: "decode", Path: path, Err: err}
	}
	img = limit(img, opts)

	d := ToRGBA(img)
	if d.Width == 0 || d.Height == 0 {
		return nil, &Error{Op: "decode", Path: path, Err: ErrEmptyImage}
	}
	return d, nil
}

// Probe returns the pixel dimensions of the image at path without decoding
// its pixels.
func Probe(path string) (width, height int, err error) {
	r, err := open(path)
	if err != nil {
		return 0, 0, &Error{Op: "probe", Path: path, Err: err}
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return 0, 0, &Error{Op: "probe", Path: path, Err: err}
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return 0, 0, &Error{Op: "probe", Path: path, Err: ErrEmptyImage}
	}
	return cfg.Width, cfg.Height, nil
}

// ProbeLimited is Probe followed by the same downscale bound Decode applies,
// so that both report identical dimensions for the same Options.
func ProbeLimited(path string, opts Options) (width, height int, err error) {
	width, height, err = Probe(path)
	if err != nil {
		return 0, 0, err
	}
	w, h := limitedSize(width, height, opts)
	return w, h, nil
}

// open returns a reader over the image bytes at path.
func open(path string) (io.Reader, error) {
	if IsAudioFile(path) {
		data, err := ExtractCoverArt(path)
		if err != nil {
			return nil, err
		}
		return bytes.NewReader(data), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return f, nil
}

func limitedSize(width, height int, opts Options) (int, int) {
	maxW, maxH := opts.MaxWidth, opts.MaxHeight
	if maxW <= 0 {
		maxW = width
	}
	if maxH <= 0 {
		maxH = height
	}
	if width <= maxW && height <= maxH {
		return width, height
	}
	ratio := float64(width) / float64(height)
	w, h := float64(maxW), float64(maxH)
	if float64(maxW)/float64(maxH) > ratio {
		w = h * ratio
	} else {
		h = w / ratio
	}
	return max(int(w), 1), max(int(h), 1)
}

func limit(img image.Image, opts Options) image.Image {
	if opts.MaxWidth <= 0 && opts.MaxHeight <= 0 {
		return img
	}
	b := img.Bounds()
	w, h := limitedSize(b.Dx(), b.Dy(), opts)
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	return resize.Resize(uint(w), uint(h), img, resize.Lanczos3) //nolint:gosec // bounded by source size
}

// ToRGBA converts img to a tight, non-premultiplied RGBA8 buffer.
func ToRGBA(img image.Image) *Decoded {
	b := img.Bounds()
	var rgba *image.NRGBA
	if src, ok := img.(*image.NRGBA); ok && src.Stride == 4*b.Dx() && src.Rect.Min == (image.Point{}) {
		rgba = src
	} else {
		rgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	}
	return &Decoded{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pix:    rgba.Pix[:4*b.Dx()*b.Dy()],
	}
}

// Reader decodes and probes files with fixed Options.
type Reader struct {
	Options Options
}

// Decode decodes path with r's options.
func (r Reader) Decode(path string) (*Decoded, error) {
	return Decode(path, r.Options)
}

// Probe returns the dimensions Decode would produce for path.
func (r Reader) Probe(path string) (int, int, error) {
	return ProbeLimited(path, r.Options)
}
