// Package nearest searches outward from a target for the closest accepted index.
package nearest

// Range is an inclusive span of line numbers.
type Range struct {
	First int
	Last  int
}

// Contains reports whether line lies in [First, Last].
func (r Range) Contains(line int) bool {
	return r.First <= line && line <= r.Last
}

// FindFirstMinimizeDistance probes target, then target+1, target-1,
// target+2, target-2 and so on, returning the payload of the first line
// inside r that pred accepts. Lines below the target win ties. The search
// ends once the downward probe has passed r.Last and the upward probe has
// passed r.First, so a target outside r still reaches the nearest edge.
func FindFirstMinimizeDistance[T any](r Range, target int, pred func(line int) (T, bool)) (T, bool) {
	for offset := 0; ; offset++ {
		down, up := target+offset, target-offset
		if r.Contains(down) {
			if v, ok := pred(down); ok {
				return v, true
			}
		}
		if offset != 0 && r.Contains(up) {
			if v, ok := pred(up); ok {
				return v, true
			}
		}
		if up < r.First && down > r.Last {
			break
		}
	}
	var zero T
	return zero, false
}

// PrefixSums returns the running totals of values, starting with 0.
// The result has len(values)+1 entries.
func PrefixSums(values []float64) []float64 {
	sums := make([]float64, len(values)+1)
	for i, v := range values {
		sums[i+1] = sums[i] + v
	}
	return sums
}
