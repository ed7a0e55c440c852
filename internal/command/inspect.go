package command

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/urfave/cli/v2"

	"github.com/llehouerou/pictty/internal/errmsg"
	"github.com/llehouerou/pictty/internal/kitty"
	"github.com/llehouerou/pictty/internal/styles"
)

// InspectCommand decodes captured pictty output into a readable listing.
func (e *Env) InspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "Decode captured graphics output (from FILE or stdin)",
		ArgsUsage: "[FILE]",
		Action:    e.inspectAction,
	}
}

func (e *Env) inspectAction(c *cli.Context) error {
	name := c.Args().First()

	var data []byte
	var err error
	if name == "" || name == "-" {
		data, err = io.ReadAll(e.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		return e.fail(errmsg.OpInspect, name, err)
	}

	s := styles.T().For(e.Stdout)
	for _, part := range kitty.Split(data) {
		line, err := describe(s, part)
		if err != nil {
			return e.fail(errmsg.OpInspect, name, err)
		}
		if _, err := fmt.Fprintln(e.Stdout, line); err != nil {
			return err
		}
	}
	return nil
}

func describe(s *styles.Styles, part string) (string, error) {
	if !kitty.IsCommand(part) {
		return s.Field("text", fmt.Sprintf("%q", part)), nil
	}

	control, payload, err := kitty.Decode(part)
	if err != nil {
		return "", err
	}
	cmd, err := kitty.ParseControl(control)
	if err != nil {
		return "", err
	}

	line := s.Field("graphics", cmd.Control())
	label := "payload"
	if t, _ := cmd.Get(kitty.KeyTransfer); t == kitty.TransferTempFile {
		label = "file"
	}
	switch {
	case len(payload) == 0:
	case printable(payload):
		line += " " + s.Field(label, string(payload))
	default:
		line += " " + s.Field(label, fmt.Sprintf("%d bytes", len(payload)))
	}
	if a, _ := cmd.Get(kitty.KeyAction); !knownActions[a] {
		line += " " + s.Warning.Render(fmt.Sprintf("(unknown action %q)", a))
	}
	return line, nil
}

var knownActions = map[string]bool{
	kitty.ActionTransmit:        true,
	kitty.ActionTransmitDisplay: true,
	kitty.ActionPlace:           true,
	kitty.ActionDelete:          true,
}

func printable(b []byte) bool {
	return strings.IndexFunc(string(b), func(r rune) bool {
		return !unicode.IsPrint(r)
	}) < 0
}
