// internal/types/rect.go
package types

import "fmt"

// Rect is an axis aligned rectangle. Min is inclusive, Max is exclusive.
type Rect struct {
	Min, Max Point
}

// R builds a Rect from an origin and a size.
func R(x, y, w, h float32) Rect {
	return Rect{Min: Point{X: x, Y: y}, Max: Point{X: x + w, Y: y + h}}
}

// Dx returns the width of r.
func (r Rect) Dx() float32 {
	return r.Max.X - r.Min.X
}

// Dy returns the height of r.
func (r Rect) Dy() float32 {
	return r.Max.Y - r.Min.Y
}

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X &&
		r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Inset returns r shrunk by dx on the left and right and dy on the top and
// bottom. Negative values grow the rectangle.
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{
		Min: Point{X: r.Min.X + dx, Y: r.Min.Y + dy},
		Max: Point{X: r.Max.X - dx, Y: r.Max.Y - dy},
	}
}

// Expand grows r on every side by fraction of its own size, so a 40x40 rect
// expanded by 0.75 gains 30 points per side.
func (r Rect) Expand(fraction float32) Rect {
	if fraction <= 0 {
		return r
	}
	return r.Inset(-r.Dx()*fraction, -r.Dy()*fraction)
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}
