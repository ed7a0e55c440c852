//go:build !unix

package geometry

// DetectCellSize returns DefaultCellSize on platforms without TIOCGWINSZ.
func DetectCellSize(uintptr) CellSize {
	return DefaultCellSize
}
