//go:build unix

package geometry

import (
	"golang.org/x/sys/unix"
)

// DetectCellSize returns the terminal cell dimensions in pixels
// by querying TIOCGWINSZ on fd. Falls back to defaults if unavailable.
func DetectCellSize(fd uintptr) CellSize {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ) //nolint:gosec // fd comes from an *os.File
	if err != nil || ws.Col == 0 || ws.Row == 0 || ws.Xpixel == 0 || ws.Ypixel == 0 {
		return DefaultCellSize
	}
	return CellSize{
		Width:  int(ws.Xpixel) / int(ws.Col),
		Height: int(ws.Ypixel) / int(ws.Row),
	}.orDefault()
}
