// Package scroll computes minimal scroll adjustments.
package scroll

import "github.com/matzehuels/hintlayout/pkg/geom"

// ToReveal returns the scroll offset that brings target into a viewport of
// size window currently scrolled to current, moving as little as possible.
//
// A target that is already visible leaves the offset unchanged. A target
// longer than the window is aligned to its start. Otherwise the viewport is
// shifted just far enough to uncover the target's end or start.
func ToReveal(current, window float64, target geom.OffsetRange) float64 {
	visible := geom.OfStartAndLength(current, window)
	switch {
	case visible.ContainsRange(target):
		return current
	case target.Length() > window:
		return target.Start
	case target.EndExclusive > visible.EndExclusive:
		return target.EndExclusive - window
	case target.Start < visible.Start:
		return target.Start
	default:
		return current
	}
}
