// Package tower answers extent queries over areas stacked edge to edge.
//
// Areas are laid out along a primary axis in order, each occupying its
// Width along that axis and offering its Height on the cross axis. A tower
// spanning a target range on the primary axis can be no taller than the
// shortest area it overlaps. Callers that stack along the vertical axis
// transpose their sizes before querying.
package tower

import "github.com/matzehuels/hintlayout/pkg/geom"

// MaxTowerHeight returns the largest cross-axis extent available across
// target. It is the minimum Height of all areas overlapping target, or 0 when
// target extends past the end of the stack or overlaps no area.
func MaxTowerHeight(target geom.OffsetRange, areas []geom.Size2D) float64 {
	var (
		offset     float64
		maxHeight  float64
		overlapped bool
	)
	for _, area := range areas {
		start, end := offset, offset+area.Width
		offset = end

		if target.EndExclusive <= start {
			break
		}
		if target.Start >= end {
			continue
		}
		if max(target.Start, start) < min(target.EndExclusive, end) {
			if !overlapped || area.Height < maxHeight {
				maxHeight = area.Height
			}
			overlapped = true
		}
	}

	if target.EndExclusive > offset || !overlapped {
		return 0
	}
	return maxHeight
}

// Align selects the cross-axis edge stacked rectangles share.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// StackDown returns the rectangles of sizes stacked top to bottom starting at
// at. With AlignLeft every rectangle starts at at.X; with AlignRight every
// rectangle ends at at.X.
func StackDown(at geom.Point, sizes []geom.Size2D, align Align) []geom.Rect {
	rects := make([]geom.Rect, 0, len(sizes))
	y := at.Y
	for _, s := range sizes {
		left := at.X
		if align == AlignRight {
			left = at.X - s.Width
		}
		rects = append(rects, geom.RectFromLeftTopWidthHeight(left, y, s.Width, s.Height))
		y += s.Height
	}
	return rects
}
