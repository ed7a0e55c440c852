package kitty

import (
	"strconv"
	"strings"
)

// Control keys understood by the terminal.
const (
	KeyAction   = "a"
	KeyTransfer = "t"
	KeyFormat   = "f"
	KeyWidth    = "s"
	KeyHeight   = "v"
	KeyCols     = "c"
	KeyRows     = "r"
	KeyID       = "i"
	KeyQuiet    = "q"
	KeyDelete   = "d"
)

// Action codes
const (
	ActionTransmit        = "t"
	ActionTransmitDisplay = "T"
	ActionPlace           = "p"
	ActionDelete          = "d"
)

const (
	// TransferTempFile tells the terminal to read pixels from a temporary
	// file and delete it afterwards.
	TransferTempFile = "t"

	// FormatRGBA is 32 bits per pixel, 8 bits per channel.
	FormatRGBA = 32

	// QuietAll suppresses both OK and error responses.
	QuietAll = 2

	// DeleteAll deletes every placement and image held by the terminal.
	DeleteAll = "a"
)

// Command is a control-data string under construction plus an optional payload.
type Command struct {
	keys    []string
	values  []string
	Payload []byte
}

// Set appends key=value, replacing an existing value for key.
func (c *Command) Set(key, value string) *Command {
	for i, k := range c.keys {
		if k == key {
			c.values[i] = value
			return c
		}
	}
	c.keys = append(c.keys, key)
	c.values = append(c.values, value)
	return c
}

// SetInt is Set for integer values.
func (c *Command) SetInt(key string, value int) *Command {
	return c.Set(key, strconv.Itoa(value))
}

// Get returns the value stored for key.
func (c *Command) Get(key string) (string, bool) {
	for i, k := range c.keys {
		if k == key {
			return c.values[i], true
		}
	}
	return "", false
}

// Control renders the comma separated control data.
func (c *Command) Control() string {
	var sb strings.Builder
	for i, k := range c.keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(c.values[i])
	}
	return sb.String()
}

// String returns the framed command.
func (c *Command) String() string {
	return Frame(c.Control(), c.Payload)
}

// ParseControl splits control data into a Command without payload.
func ParseControl(control string) (*Command, error) {
	c := &Command{}
	if control == "" {
		return c, nil
	}
	for _, tok := range strings.Split(control, ",") {
		k, v, ok := strings.Cut(tok, "=")
		if !ok || k == "" {
			return nil, ErrMalformed
		}
		c.Set(k, v)
	}
	return c, nil
}

// Clear deletes all graphics held by the terminal.
func Clear() *Command {
	return (&Command{}).
		Set(KeyAction, ActionDelete).
		Set(KeyDelete, DeleteAll)
}

// Load transmits RGBA pixels of the given size from a temporary file and
// stores them under id without displaying them.
func Load(width, height int, id uint32, path string) *Command {
	c := (&Command{}).
		Set(KeyAction, ActionTransmit).
		Set(KeyTransfer, TransferTempFile).
		SetInt(KeyFormat, FormatRGBA).
		SetInt(KeyWidth, width).
		SetInt(KeyHeight, height).
		Set(KeyID, strconv.FormatUint(uint64(id), 10)).
		SetInt(KeyQuiet, QuietAll)
	c.Payload = []byte(path)
	return c
}

// Place displays the image previously loaded under id over cols x rows cells.
func Place(cols, rows int, id uint32) *Command {
	return (&Command{}).
		Set(KeyAction, ActionPlace).
		SetInt(KeyCols, cols).
		SetInt(KeyRows, rows).
		Set(KeyID, strconv.FormatUint(uint64(id), 10)).
		SetInt(KeyQuiet, QuietAll)
}

// TransmitAndDisplay transmits RGBA pixels from a temporary file and displays
// them over cols x rows cells in one command.
func TransmitAndDisplay(width, height, cols, rows int, path string) *Command {
	c := (&Command{}).
		Set(KeyAction, ActionTransmitDisplay).
		Set(KeyTransfer, TransferTempFile).
		SetInt(KeyFormat, FormatRGBA).
		SetInt(KeyWidth, width).
		SetInt(KeyHeight, height).
		SetInt(KeyCols, cols).
		SetInt(KeyRows, rows).
		SetInt(KeyQuiet, QuietAll)
	c.Payload = []byte(path)
	return c
}
