// Package kitty builds and frames kitty terminal graphics protocol commands.
package kitty

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Kitty graphics protocol escape sequences
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
	escSep   = ";"
)

// ErrMalformed is returned by Decode when a sequence is not a framed command.
var ErrMalformed = errors.New("malformed graphics command")

type flusher interface {
	Flush() error
}

// Frame returns the framed command for the given control data and payload.
// The payload is base64 encoded; a nil payload yields an empty payload field.
func Frame(control string, payload []byte) string {
	var sb strings.Builder
	sb.Grow(len(escStart) + len(control) + 1 + base64.StdEncoding.EncodedLen(len(payload)) + len(escEnd))
	sb.WriteString(escStart)
	sb.WriteString(control)
	sb.WriteString(escSep)
	sb.WriteString(base64.StdEncoding.EncodeToString(payload))
	sb.WriteString(escEnd)
	return sb.String()
}

// Send writes one framed command to w in a single write and flushes w if it
// buffers. Nothing about the control data is interpreted here.
func Send(w io.Writer, control string, payload []byte) error {
	if _, err := io.WriteString(w, Frame(control, payload)); err != nil {
		return fmt.Errorf("write graphics command: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush graphics command: %w", err)
		}
	}
	return nil
}

// Decode parses a single framed command back into its control data and
// decoded payload.
func Decode(seq string) (control string, payload []byte, err error) {
	body, ok := strings.CutPrefix(seq, escStart)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing start marker", ErrMalformed)
	}
	body, ok = strings.CutSuffix(body, escEnd)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing end marker", ErrMalformed)
	}
	control, encoded, ok := strings.Cut(body, escSep)
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload separator", ErrMalformed)
	}
	payload, err = base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", nil, fmt.Errorf("%w: payload: %w", ErrMalformed, err)
	}
	return control, payload, nil
}

// Split cuts a captured output stream into framed commands and the plain
// bytes between them. Plain runs are returned as-is, in order.
func Split(data []byte) []string {
	var parts []string
	start := []byte(escStart)
	end := []byte(escEnd)
	for len(data) > 0 {
		i := bytes.Index(data, start)
		if i < 0 {
			parts = append(parts, string(data))
			break
		}
		if i > 0 {
			parts = append(parts, string(data[:i]))
		}
		j := bytes.Index(data[i+len(start):], end)
		if j < 0 {
			parts = append(parts, string(data[i:]))
			break
		}
		stop := i + len(start) + j + len(end)
		parts = append(parts, string(data[i:stop]))
		data = data[stop:]
	}
	return parts
}

// IsCommand reports whether s is framed as a graphics command.
func IsCommand(s string) bool {
	return strings.HasPrefix(s, escStart) && strings.HasSuffix(s, escEnd)
}
