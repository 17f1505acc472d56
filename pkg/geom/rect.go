package geom

import "fmt"

// Rect is an axis-aligned rectangle. Right and Bottom are exclusive.
// Y grows downwards, matching screen coordinates.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// NewRect creates a rectangle from its edges. It panics on inverted bounds.
func NewRect(left, top, right, bottom float64) Rect {
	if right < left || bottom < top {
		panic(fmt.Sprintf("geom: invalid rect (%g, %g, %g, %g)", left, top, right, bottom))
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// RectFromRanges combines a horizontal and a vertical range.
func RectFromRanges(horizontal, vertical OffsetRange) Rect {
	return Rect{
		Left:   horizontal.Start,
		Top:    vertical.Start,
		Right:  horizontal.EndExclusive,
		Bottom: vertical.EndExclusive,
	}
}

// RectFromLeftTopWidthHeight creates a rectangle from its origin and size.
func RectFromLeftTopWidthHeight(left, top, width, height float64) Rect {
	return RectFromRanges(OfStartAndLength(left, width), OfStartAndLength(top, height))
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Size returns the width and height as a Size2D.
func (r Rect) Size() Size2D { return Size2D{Width: r.Width(), Height: r.Height()} }

// TopLeft returns the origin corner.
func (r Rect) TopLeft() Point { return Point{X: r.Left, Y: r.Top} }

// HorizontalRange returns [Left, Right).
func (r Rect) HorizontalRange() OffsetRange {
	return OffsetRange{Start: r.Left, EndExclusive: r.Right}
}

// VerticalRange returns [Top, Bottom).
func (r Rect) VerticalRange() OffsetRange {
	return OffsetRange{Start: r.Top, EndExclusive: r.Bottom}
}

// WithMargin grows each edge outwards by the given amount, in CSS order.
// Negative values shrink the rectangle.
func (r Rect) WithMargin(top, right, bottom, left float64) Rect {
	return RectFromRanges(
		r.HorizontalRange().WithMargin(left, right),
		r.VerticalRange().WithMargin(top, bottom),
	)
}

// WithUniformMargin grows every edge by m.
func (r Rect) WithUniformMargin(m float64) Rect {
	return r.WithMargin(m, m, m, m)
}

// WithHorizontalRange replaces the horizontal extent.
func (r Rect) WithHorizontalRange(h OffsetRange) Rect {
	return RectFromRanges(h, r.VerticalRange())
}

// WithVerticalRange replaces the vertical extent.
func (r Rect) WithVerticalRange(v OffsetRange) Rect {
	return RectFromRanges(r.HorizontalRange(), v)
}

// TranslateX shifts the rectangle horizontally.
func (r Rect) TranslateX(dx float64) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top, Right: r.Right + dx, Bottom: r.Bottom}
}

// TranslateY shifts the rectangle vertically.
func (r Rect) TranslateY(dy float64) Rect {
	return Rect{Left: r.Left, Top: r.Top + dy, Right: r.Right, Bottom: r.Bottom + dy}
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.HorizontalRange().ContainsRange(o.HorizontalRange()) &&
		r.VerticalRange().ContainsRange(o.VerticalRange())
}

func (r Rect) String() string {
	return fmt.Sprintf("Rect(%g, %g, %g, %g)", r.Left, r.Top, r.Right, r.Bottom)
}
