package geom

import "fmt"

// Size2D is a width/height pair. It describes the available space on a line
// or the outer size of a widget.
type Size2D struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewSize2D creates a Size2D.
func NewSize2D(width, height float64) Size2D {
	return Size2D{Width: width, Height: height}
}

// Add returns the component-wise sum of s and o.
func (s Size2D) Add(o Size2D) Size2D {
	return Size2D{Width: s.Width + o.Width, Height: s.Height + o.Height}
}

// Sub returns the component-wise difference of s and o.
func (s Size2D) Sub(o Size2D) Size2D {
	return Size2D{Width: s.Width - o.Width, Height: s.Height - o.Height}
}

// Scale multiplies both components by f.
func (s Size2D) Scale(f float64) Size2D {
	return Size2D{Width: s.Width * f, Height: s.Height * f}
}

// Transpose swaps the axes. Queries written for one orientation can be reused
// for the other by transposing their input.
func (s Size2D) Transpose() Size2D {
	return Size2D{Width: s.Height, Height: s.Width}
}

// IsZero reports whether both components are zero.
func (s Size2D) IsZero() bool { return s.Width == 0 && s.Height == 0 }

func (s Size2D) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// Point is a position in 2D space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}
