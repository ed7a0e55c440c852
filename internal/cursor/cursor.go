// Package cursor writes terminal cursor save, move and restore sequences.
//
// No state is kept here: Save and Restore rely on the terminal's own saved
// cursor slot, so Restore must follow a Save.
package cursor

import (
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

type flusher interface {
	Flush() error
}

func emit(w io.Writer, seq string) error {
	if _, err := io.WriteString(w, seq); err != nil {
		return fmt.Errorf("write cursor sequence: %w", err)
	}
	if f, ok := w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("flush cursor sequence: %w", err)
		}
	}
	return nil
}

// Save stores the current cursor position.
func Save(w io.Writer) error {
	return emit(w, ansi.SaveCursor)
}

// Restore returns the cursor to the last saved position.
func Restore(w io.Writer) error {
	return emit(w, ansi.RestoreCursor)
}

// MoveSequence returns the sequence moving the cursor to the 0-based cell (x, y).
func MoveSequence(x, y int) string {
	return ansi.CursorPosition(max(x, 0)+1, max(y, 0)+1)
}

// MoveTo moves the cursor to the 0-based cell (x, y).
func MoveTo(w io.Writer, x, y int) error {
	return emit(w, MoveSequence(x, y))
}

// At saves the cursor, moves it to (x, y), runs fn and restores the cursor.
// The cursor is not restored when fn fails.
func At(w io.Writer, x, y int, fn func() error) error {
	if err := Save(w); err != nil {
		return err
	}
	if err := MoveTo(w, x, y); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	return Restore(w)
}
