// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import (
	"errors"
	"fmt"

	"github.com/llehouerou/pictty/internal/imagefile"
	"github.com/llehouerou/pictty/internal/options"
)

// Op represents an operation that can fail.
type Op string

// Operation constants
const (
	OpLoad           Op = "load image into terminal"
	OpDisplay        Op = "display image"
	OpLoadAndDisplay Op = "load and display image"
	OpClear          Op = "clear terminal graphics"
	OpProbe          Op = "probe image"
	OpConfig         Op = "load configuration"
	OpInspect        Op = "inspect graphics output"
)

// ForAction returns the operation matching a previewer action.
func ForAction(a options.Action) Op {
	switch a {
	case options.Load:
		return OpLoad
	case options.LoadAndDisplay:
		return OpLoadAndDisplay
	case options.Clear:
		return OpClear
	default:
		return OpDisplay
	}
}

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// ExitCode maps an error to a process exit code: 2 for usage errors (missing
// or invalid options), 3 for unreadable images, 1 otherwise.
func ExitCode(err error) int {
	var ie *imagefile.Error
	switch {
	case err == nil:
		return 0
	case errors.Is(err, options.ErrMissingID),
		errors.Is(err, options.ErrMissingPath),
		errors.Is(err, options.ErrUnknownAction):
		return 2
	case errors.As(err, &ie):
		return 3
	default:
		return 1
	}
}
