// Package transfer hands raw pixel buffers to the terminal through temporary files.
package transfer

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultPrefix names temporary files so that the terminal deletes them after
// reading: kitty only removes t=t files whose path contains
// "tty-graphics-protocol".
const DefaultPrefix = "pictty-tty-graphics-protocol."

// Allocate creates a uniquely named temporary file in dir (os.TempDir when
// empty) and returns it open for writing together with its absolute path.
// On error nothing is left on disk.
func Allocate(dir, prefix string) (*os.File, string, error) {
	f, err := os.CreateTemp(dir, prefix+"*")
	if err != nil {
		return nil, "", fmt.Errorf("create temp file: %w", err)
	}
	path, err := filepath.Abs(f.Name())
	if err != nil {
		abandon(f)
		return nil, "", fmt.Errorf("resolve temp file path: %w", err)
	}
	return f, path, nil
}

// abandon closes f and removes it from disk.
func abandon(f *os.File) {
	_ = f.Close()
	_ = os.Remove(f.Name())
}

// Save writes buf to f in full.
func Save(buf []byte, f *os.File) error {
	if _, err := f.Write(buf); err != nil {
		return fmt.Errorf("write %s: %w", f.Name(), err)
	}
	return nil
}

// File is a temporary file holding pixels the terminal will read by path.
type File struct {
	f    *os.File
	path string
}

// Write allocates a temporary file and writes buf to it. The handle stays
// open; call Close before referencing Path in a command.
func Write(dir, prefix string, buf []byte) (*File, error) {
	f, path, err := Allocate(dir, prefix)
	if err != nil {
		return nil, err
	}
	t := &File{f: f, path: path}
	if err := Save(buf, f); err != nil {
		return t, err
	}
	return t, nil
}

// Path returns the absolute path of the file.
func (t *File) Path() string {
	return t.path
}

// Handle returns the open file, or nil after Close.
func (t *File) Handle() *os.File {
	return t.f
}

// Close flushes the file to disk and releases the handle. Safe to call twice.
func (t *File) Close() error {
	if t.f == nil {
		return nil
	}
	f := t.f
	t.f = nil
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("sync %s: %w", t.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", t.path, err)
	}
	return nil
}

// Remove closes and deletes the file. Failure to delete is reported but
// callers treat it as non-fatal.
func (t *File) Remove() error {
	_ = t.Close()
	if err := os.Remove(t.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", t.path, err)
	}
	return nil
}
