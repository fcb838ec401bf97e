package popover

// DefaultMargin is the gap kept between a popover and its anchor or the
// viewport edges, in the surface's logical units.
const DefaultMargin = 8

// Point is a position on the surface.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned box on the surface.
type Rect struct {
	Left, Top     int
	Width, Height int
}

// Right returns the x coordinate just past the box.
func (r Rect) Right() int { return r.Left + r.Width }

// Bottom returns the y coordinate just past the box.
func (r Rect) Bottom() int { return r.Top + r.Height }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X < r.Right() && p.Y >= r.Top && p.Y < r.Bottom()
}

// Tentative returns the first-pass top-left corner for a popover: below the
// anchor when there is one, otherwise the viewport centre. The popover's
// size is not known yet at this point.
func Tentative(anchor *Rect, vw, vh, margin int) Point {
	if anchor != nil {
		return Point{X: anchor.Left, Y: anchor.Bottom() + margin}
	}
	return Point{X: vw / 2, Y: vh / 2}
}

// Center returns the top-left corner that centres a w×h box in the viewport.
func Center(w, h, vw, vh int) Point {
	return Point{X: (vw - w) / 2, Y: (vh - h) / 2}
}

// Clamp shifts b so it stays inside the viewport with margin on every side.
// When the right or bottom edge overflows, the box is pulled back so that
// edge sits at viewport-margin, but never further than margin from the
// left or top. A box bigger than the viewport ends up pinned at margin.
func Clamp(b Rect, vw, vh, margin int) Rect {
	if b.Right() > vw-margin {
		b.Left = max(margin, vw-b.Width-margin)
	}
	if b.Bottom() > vh-margin {
		b.Top = max(margin, vh-b.Height-margin)
	}
	if b.Left < margin {
		b.Left = margin
	}
	if b.Top < margin {
		b.Top = margin
	}
	return b
}
