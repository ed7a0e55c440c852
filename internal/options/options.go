// Package options defines the per-invocation request handed to the previewer.
package options

import (
	"errors"
	"fmt"
)

// Action selects what the previewer does with an image.
type Action int

const (
	// Display shows an image, either previously loaded (with ID) or
	// transmitted in the same command (without ID).
	Display Action = iota
	// Load transmits an image into terminal memory under ID without showing it.
	Load
	// LoadAndDisplay is Load followed by Display.
	LoadAndDisplay
	// Clear deletes every image held by the terminal.
	Clear
)

var actionNames = map[Action]string{
	Display:        "display",
	Load:           "load",
	LoadAndDisplay: "load-and-display",
	Clear:          "clear",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ErrUnknownAction is returned for an Action value outside the defined set.
var ErrUnknownAction = errors.New("unknown action")

var (
	// ErrMissingID is returned when an action requiring an image id has none.
	ErrMissingID = errors.New("image id is required")
	// ErrMissingPath is returned when an action needing a source image has none.
	ErrMissingPath = errors.New("image path is required")
)

// Options is the complete request for one invocation.
type Options struct {
	Path   string
	Action Action

	// ID is the terminal-side image id. Required for Load.
	ID *uint32

	// Cols and Rows bound the footprint in cells; nil is unconstrained.
	Cols *int
	Rows *int

	// X and Y place the image at an absolute 0-based cell. When either is
	// set the other defaults to 0.
	X *int
	Y *int

	// Upscale allows enlarging the image beyond its native size.
	Upscale bool
}

// Positioned reports whether an explicit on-screen position was requested.
func (o *Options) Positioned() bool {
	return o.X != nil || o.Y != nil
}

// Position returns the requested position, missing axes as 0.
func (o *Options) Position() (x, y int) {
	if o.X != nil {
		x = *o.X
	}
	if o.Y != nil {
		y = *o.Y
	}
	return x, y
}

// Validate checks that the fields the action needs are present.
func (o *Options) Validate() error {
	if o.Action == Clear {
		return nil
	}
	if o.Path == "" {
		return fmt.Errorf("%s: %w", o.Action, ErrMissingPath)
	}
	if (o.Action == Load || o.Action == LoadAndDisplay) && o.ID == nil {
		return fmt.Errorf("%s: %w", o.Action, ErrMissingID)
	}
	return nil
}
