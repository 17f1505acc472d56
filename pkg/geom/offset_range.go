package geom

import "fmt"

// OffsetRange is a half-open interval [Start, EndExclusive) on one axis.
// The invariant EndExclusive >= Start holds for every range built through
// this package.
type OffsetRange struct {
	Start        float64 `json:"start"`
	EndExclusive float64 `json:"end"`
}

// NewOffsetRange creates a range. It panics if end < start.
func NewOffsetRange(start, endExclusive float64) OffsetRange {
	if endExclusive < start {
		panic(fmt.Sprintf("geom: invalid offset range [%g, %g)", start, endExclusive))
	}
	return OffsetRange{Start: start, EndExclusive: endExclusive}
}

// OfStartAndLength creates the range [start, start+length). A negative length
// yields an empty range at start.
func OfStartAndLength(start, length float64) OffsetRange {
	return OffsetRange{Start: start, EndExclusive: start + max(0, length)}
}

// Length returns EndExclusive - Start.
func (r OffsetRange) Length() float64 { return r.EndExclusive - r.Start }

// IsEmpty reports whether the range has zero length.
func (r OffsetRange) IsEmpty() bool { return r.EndExclusive <= r.Start }

// WithMargin grows the range by before at the start and after at the end.
// Negative values shrink it.
func (r OffsetRange) WithMargin(before, after float64) OffsetRange {
	return normalizeRange(r.Start-before, r.EndExclusive+after)
}

// WithUniformMargin grows the range by m on both sides.
func (r OffsetRange) WithUniformMargin(m float64) OffsetRange {
	return r.WithMargin(m, m)
}

// Delta shifts the range by d.
func (r OffsetRange) Delta(d float64) OffsetRange {
	return OffsetRange{Start: r.Start + d, EndExclusive: r.EndExclusive + d}
}

// Intersect returns the overlap of r and o. Ranges that merely touch
// intersect in an empty range; disjoint ranges report false.
func (r OffsetRange) Intersect(o OffsetRange) (OffsetRange, bool) {
	start := max(r.Start, o.Start)
	end := min(r.EndExclusive, o.EndExclusive)
	if start > end {
		return OffsetRange{}, false
	}
	return OffsetRange{Start: start, EndExclusive: end}, true
}

// Overlaps reports whether r and o share a non-empty interval.
func (r OffsetRange) Overlaps(o OffsetRange) bool {
	return max(r.Start, o.Start) < min(r.EndExclusive, o.EndExclusive)
}

// IntersectsOrTouches reports whether r and o overlap or share an endpoint.
func (r OffsetRange) IntersectsOrTouches(o OffsetRange) bool {
	return max(r.Start, o.Start) <= min(r.EndExclusive, o.EndExclusive)
}

// Contains reports whether offset lies in [Start, EndExclusive).
func (r OffsetRange) Contains(offset float64) bool {
	return r.Start <= offset && offset < r.EndExclusive
}

// ContainsRange reports whether o lies entirely within r.
func (r OffsetRange) ContainsRange(o OffsetRange) bool {
	return r.Start <= o.Start && o.EndExclusive <= r.EndExclusive
}

func (r OffsetRange) String() string {
	return fmt.Sprintf("[%g, %g)", r.Start, r.EndExclusive)
}

func normalizeRange(start, end float64) OffsetRange {
	if end < start {
		mid := (start + end) / 2
		return OffsetRange{Start: mid, EndExclusive: mid}
	}
	return OffsetRange{Start: start, EndExclusive: end}
}
