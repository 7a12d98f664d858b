package tui

import (
	"math"

	"github.com/bethropolis/softkeys/internal/keyboard"
	"github.com/bethropolis/softkeys/internal/types"
)

// A terminal cell is CellWidth by CellHeight layout points. Cells are about
// twice as tall as wide, and the gesture thresholds are in points, so a
// swipe takes two columns or one row of travel.
const (
	CellWidth  float32 = 6
	CellHeight float32 = 12

	// KeyRows is the height of a key row in cells.
	KeyRows = 3
)

// CellToPoint returns the point at the centre of cell (x, y).
func CellToPoint(x, y int) types.Point {
	return types.Pt((float32(x)+0.5)*CellWidth, (float32(y)+0.5)*CellHeight)
}

// PointToCell returns the cell containing p.
func PointToCell(p types.Point) (int, int) {
	return int(math.Floor(float64(p.X / CellWidth))), int(math.Floor(float64(p.Y / CellHeight)))
}

// CellRect converts r to cells. x1 and y1 are exclusive.
func CellRect(r types.Rect) (x0, y0, x1, y1 int) {
	x0 = int(math.Round(float64(r.Min.X / CellWidth)))
	y0 = int(math.Round(float64(r.Min.Y / CellHeight)))
	x1 = int(math.Round(float64(r.Max.X / CellWidth)))
	y1 = int(math.Round(float64(r.Max.Y / CellHeight)))
	return
}

// KeyboardHeight is the number of cells l takes.
func KeyboardHeight(l *keyboard.Layout) int {
	return len(l.Rows) * KeyRows
}

// Arrange lays l out in the band of width cells starting at cell (x, y) and
// records every key's bounds in points. Key widths are shared out in
// proportion to Key.Width; edges are rounded to whole cells so neighbours
// always touch.
func Arrange(l *keyboard.Layout, x, y, width int) {
	for r, row := range l.Rows {
		var total float32
		for _, k := range row {
			total += k.Width
		}
		if total <= 0 {
			continue
		}
		rowY := y + r*KeyRows
		var acc float32
		for _, k := range row {
			start := x + int(math.Round(float64(acc/total*float32(width))))
			acc += k.Width
			end := x + int(math.Round(float64(acc/total*float32(width))))
			l.SetBounds(k.ID, types.R(
				float32(start)*CellWidth, float32(rowY)*CellHeight,
				float32(end-start)*CellWidth, KeyRows*CellHeight,
			))
		}
	}
}
