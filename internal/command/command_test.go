package command

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/kitty"
)

type harness struct {
	env    *Env
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	config string
	image  string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "pictty.toml")
	cfg := fmt.Sprintf("cell_width = 8\ncell_height = 16\ntemp_dir = %q\n", t.TempDir())
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 32, 32))))
	imgPath := filepath.Join(dir, "img.png")
	require.NoError(t, os.WriteFile(imgPath, buf.Bytes(), 0o600))

	h := &harness{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		config: cfgPath,
		image:  imgPath,
	}
	h.env = &Env{Stdin: strings.NewReader(""), Stdout: h.stdout, Stderr: h.stderr}
	return h
}

func (h *harness) run(args ...string) error {
	app := h.env.App("test")
	app.ExitErrHandler = func(*cli.Context, error) {}
	return app.Run(append([]string{"pictty", "--config", h.config}, args...))
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var ec cli.ExitCoder
	require.ErrorAs(t, err, &ec)
	return ec.ExitCode()
}

func TestGlobalFlags(t *testing.T) {
	names := map[string]bool{}
	for _, f := range GlobalFlags() {
		names[f.Names()[0]] = true
	}
	assert.True(t, names["config"])
	assert.True(t, names["verbose"])
}

func TestClear(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("clear"))
	assert.Equal(t, kitty.Frame("a=d,d=a", nil), h.stdout.String())
}

func TestDisplay_Transmit(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("display", h.image))

	out := h.stdout.String()
	require.True(t, strings.HasSuffix(out, "\n"))
	control, payload, err := kitty.Decode(strings.TrimSuffix(out, "\n"))
	require.NoError(t, err)
	assert.Equal(t, "a=T,t=t,f=32,s=32,v=32,c=4,r=2,q=2", control)
	assert.NotEmpty(t, payload)
}

func TestDisplay_PlacedByID(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("display", "--id", "5", "--cols", "2", "-x", "3", "-y", "1", h.image))

	out := h.stdout.String()
	assert.True(t, strings.HasPrefix(out, ansi.SaveCursor))
	assert.Contains(t, out, kitty.Frame("a=p,c=2,r=1,i=5,q=2", nil))
	assert.True(t, strings.HasSuffix(out, ansi.RestoreCursor+"\n"))
}

func TestShow(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("show", "--id", "11", "--upscale", "--rows", "4", h.image))

	parts := kitty.Split(h.stdout.Bytes())
	require.Len(t, parts, 3)
	control, _, err := kitty.Decode(parts[1])
	require.NoError(t, err)
	assert.Equal(t, "a=p,c=8,r=4,i=11,q=2", control)
}

func TestLoad_MissingID(t *testing.T) {
	h := newHarness(t)
	err := h.run("load", h.image)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Zero(t, h.stdout.Len())
	assert.Contains(t, err.Error(), "image id is required")
}

func TestLoad_IDOutOfRange(t *testing.T) {
	h := newHarness(t)
	err := h.run("load", "--id", "4294967296", h.image)
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
	assert.Zero(t, h.stdout.Len())
}

func TestDisplay_UnreadableImage(t *testing.T) {
	h := newHarness(t)
	err := h.run("display", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
	assert.Equal(t, 3, exitCode(t, err))
	assert.Zero(t, h.stdout.Len())
}

func TestProbe(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, h.run("probe", "--cols", "2", h.image))

	out := h.stdout.String()
	assert.Contains(t, out, "size: 32x32 px")
	assert.Contains(t, out, "natural: 4x2 cells")
	assert.Contains(t, out, "fit: 2x1 cells")
	assert.Contains(t, out, "pixels: 4.1 kB")
}

func TestProbe_MissingPath(t *testing.T) {
	h := newHarness(t)
	err := h.run("probe")
	require.Error(t, err)
	assert.Equal(t, 2, exitCode(t, err))
}

func TestInspect(t *testing.T) {
	h := newHarness(t)
	captured := kitty.Frame("a=d,d=a", nil) + kitty.Frame("a=t,i=1", []byte("/tmp/x")) + "\n"
	h.env.Stdin = strings.NewReader(captured)

	require.NoError(t, h.run("inspect"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "graphics: a=d,d=a", lines[0])
	assert.Equal(t, "graphics: a=t,i=1 payload: /tmp/x", lines[1])
	assert.Equal(t, `text: "\n"`, lines[2])
}

func TestInspect_LabelsFilesAndUnknownActions(t *testing.T) {
	h := newHarness(t)
	captured := kitty.Frame("a=T,t=t,f=32", []byte("/tmp/px")) + kitty.Frame("a=q,i=3", nil)
	h.env.Stdin = strings.NewReader(captured)

	require.NoError(t, h.run("inspect"))

	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "graphics: a=T,t=t,f=32 file: /tmp/px", lines[0])
	assert.Equal(t, `graphics: a=q,i=3 (unknown action "q")`, lines[1])
}

func TestInspect_MalformedControl(t *testing.T) {
	h := newHarness(t)
	h.env.Stdin = strings.NewReader(kitty.Frame("a=d,bogus", nil))

	err := h.run("inspect")
	require.Error(t, err)
	var ec cli.ExitCoder
	assert.True(t, errors.As(err, &ec))
}

func TestInspect_Malformed(t *testing.T) {
	h := newHarness(t)
	h.env.Stdin = strings.NewReader("\x1b_Ga=d\x1b\\")

	err := h.run("inspect", "-")
	require.Error(t, err)
	var ec cli.ExitCoder
	assert.True(t, errors.As(err, &ec))
}
