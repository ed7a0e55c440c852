//go:build unix

package geometry

import (
	"os"
	"testing"
)

func TestDetectCellSize_NotATerminal(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error: %v", err)
	}
	defer r.Close()
	defer w.Close()

	if got := DetectCellSize(r.Fd()); got != DefaultCellSize {
		t.Errorf("DetectCellSize(pipe) = %+v, want %+v", got, DefaultCellSize)
	}
}
