// Package geometry converts image pixel dimensions into terminal cell footprints.
package geometry

// CellSize is the pixel size of one terminal cell.
type CellSize struct {
	Width  int
	Height int
}

// MaxCells bounds any requested cell count and cell dimension so the
// cross-multiplications in Fit stay within int64.
const MaxCells = 1 << 16

// DefaultCellSize is used when the terminal does not report its cell size.
var DefaultCellSize = CellSize{Width: 8, Height: 16}

// Valid reports whether both dimensions are positive.
func (c CellSize) Valid() bool {
	return c.Width > 0 && c.Height > 0
}

func (c CellSize) orDefault() CellSize {
	if !c.Valid() {
		return DefaultCellSize
	}
	return CellSize{Width: min(c.Width, MaxCells), Height: min(c.Height, MaxCells)}
}

// Natural returns the number of cells a width x height pixel image covers at
// its native size. Partial cells count as whole ones; each axis is at least 1.
func Natural(width, height int, cell CellSize) (cols, rows int) {
	cell = cell.orDefault()
	return max(ceilDiv(width, cell.Width), 1), max(ceilDiv(height, cell.Height), 1)
}

// Fit returns the cell footprint to request for a width x height pixel image.
//
// A nil bound leaves that axis unconstrained. The aspect ratio is preserved:
// the axis whose bound limits the scale gets exactly its bound and the other
// axis is rounded down. Without upscale the result never exceeds Natural.
// Bounds are clamped to [1, MaxCells]. Width and height must be positive.
func Fit(width, height int, cols, rows *int, upscale bool, cell CellSize) (int, int) {
	cell = cell.orDefault()
	natCols, natRows := Natural(width, height, cell)

	if cols == nil && rows == nil {
		return natCols, natRows
	}

	w, h := int64(width), int64(height)
	cw, ch := int64(cell.Width), int64(cell.Height)

	// Pixel boxes of the requested footprint.
	var boxW, boxH int64
	if cols != nil {
		c := clampBound(*cols)
		cols = &c
		boxW = int64(c) * cw
	}
	if rows != nil {
		r := clampBound(*rows)
		rows = &r
		boxH = int64(r) * ch
	}

	// Pick the limiting axis: compare boxW/w against boxH/h.
	colsLimit := rows == nil || (cols != nil && boxW*h <= boxH*w)

	if colsLimit {
		if !upscale && boxW >= w {
			return natCols, natRows
		}
		outCols := *cols
		outRows := h * boxW / (w * ch)
		return outCols, max(int(outRows), 1)
	}

	if !upscale && boxH >= h {
		return natCols, natRows
	}
	outRows := *rows
	outCols := w * boxH / (h * cw)
	return max(int(outCols), 1), outRows
}

// clampBound limits a requested bound to [1, MaxCells].
func clampBound(n int) int {
	return min(max(n, 1), MaxCells)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
