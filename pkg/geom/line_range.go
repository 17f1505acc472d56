package geom

import "fmt"

// LineRange is a half-open range of 1-based line numbers
// [StartLineNumber, EndLineNumberExclusive).
type LineRange struct {
	StartLineNumber        int `json:"start"`
	EndLineNumberExclusive int `json:"end"`
}

// LineRangeOfLength returns the range of length lines starting at start.
func LineRangeOfLength(start, length int) LineRange {
	return LineRange{StartLineNumber: start, EndLineNumberExclusive: start + max(0, length)}
}

// Length returns the number of lines in the range.
func (r LineRange) Length() int { return r.EndLineNumberExclusive - r.StartLineNumber }

// IsEmpty reports whether the range holds no lines.
func (r LineRange) IsEmpty() bool { return r.EndLineNumberExclusive <= r.StartLineNumber }

// Contains reports whether line lies in the range.
func (r LineRange) Contains(line int) bool {
	return r.StartLineNumber <= line && line < r.EndLineNumberExclusive
}

// AddMargin extends the range by before lines at the start and after lines at
// the end. Negative margins shrink it; an inverted result is reported as an
// empty range at the original start.
func (r LineRange) AddMargin(before, after int) LineRange {
	start := r.StartLineNumber - before
	end := r.EndLineNumberExclusive + after
	if end < start {
		return LineRange{StartLineNumber: r.StartLineNumber, EndLineNumberExclusive: r.StartLineNumber}
	}
	return LineRange{StartLineNumber: start, EndLineNumberExclusive: end}
}

// Intersect returns the overlap of r and o, or false if they are disjoint.
func (r LineRange) Intersect(o LineRange) (LineRange, bool) {
	start := max(r.StartLineNumber, o.StartLineNumber)
	end := min(r.EndLineNumberExclusive, o.EndLineNumberExclusive)
	if start > end {
		return LineRange{}, false
	}
	return LineRange{StartLineNumber: start, EndLineNumberExclusive: end}, true
}

func (r LineRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.StartLineNumber, r.EndLineNumberExclusive)
}
