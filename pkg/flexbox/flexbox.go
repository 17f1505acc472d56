package flexbox

import (
	"math"

	"github.com/matzehuels/hintlayout/pkg/geom"
)

// epsilon is the amount of remaining space below which distribution stops.
const epsilon = 1e-4

// Rule is one growth phase of a part.
type Rule struct {
	// Max caps the part's total size during this phase. Nil means unbounded.
	Max *float64 `json:"max,omitempty"`
	// Priority orders phases across parts; higher priorities fill first.
	Priority int `json:"priority,omitempty"`
	// Share weights this part against other parts of equal priority.
	// Values <= 0 are treated as 1.
	Share float64 `json:"share,omitempty"`
}

// Limit returns a pointer to v for use as Rule.Max.
func Limit(v float64) *float64 { return &v }

func (r Rule) limit() float64 {
	if r.Max == nil {
		return math.Inf(1)
	}
	return *r.Max
}

func (r Rule) share() float64 {
	if r.Share <= 0 {
		return 1
	}
	return r.Share
}

// Part holds the growth constraints of one region. Build parts with [Single]
// or [Phased]; both normalize to the phase list form.
type Part struct {
	Min   float64 `json:"min,omitempty"`
	Rules []Rule  `json:"rules,omitempty"`
}

// Single creates a part that grows under a single rule.
func Single(min float64, rule Rule) Part {
	return Part{Min: min, Rules: []Rule{rule}}
}

// Phased creates a part that grows under several rules. Every rule whose cap
// the part has not reached competes by priority, whatever its position.
// A part without rules never grows beyond its minimum.
func Phased(min float64, rules ...Rule) Part {
	return Part{Min: min, Rules: append([]Rule(nil), rules...)}
}

// NamedPart binds a part to the key it is reported under.
type NamedPart struct {
	Name string
	Part Part
}

// Result maps part names to their allocated sizes.
type Result map[string]float64

// Lengths returns the allocations for names in the given order.
func (r Result) Lengths(names ...string) []float64 {
	out := make([]float64, len(names))
	for i, n := range names {
		out[i] = r[n]
	}
	return out
}

// Total returns the sum of all allocations.
func (r Result) Total() float64 {
	var sum float64
	for _, v := range r {
		sum += v
	}
	return sum
}

// candidate is the active phase of a part during one distribution round.
type candidate struct {
	idx      int
	priority int
	share    float64
	limit    float64
}

// Distribute apportions total among parts. It returns ok == false when the
// sum of minimums exceeds total. Allocations never fall below a part's
// minimum; their sum equals total unless no phase can absorb the remainder.
func Distribute(total float64, parts []NamedPart) (Result, bool) {
	sizes := make([]float64, len(parts))
	var used float64
	for i, p := range parts {
		sizes[i] = p.Part.Min
		used += p.Part.Min
	}
	if used > total {
		return nil, false
	}

	remaining := total - used
	for remaining > epsilon {
		active := activePhases(parts, sizes)
		if len(active) == 0 {
			break
		}

		top := active[0].priority
		for _, c := range active[1:] {
			top = max(top, c.priority)
		}

		var totalShare float64
		group := active[:0]
		for _, c := range active {
			if c.priority == top {
				group = append(group, c)
				totalShare += c.share
			}
		}

		var distributed float64
		for _, c := range group {
			growth := max(0, min(remaining*c.share/totalShare, c.limit-sizes[c.idx]))
			sizes[c.idx] += growth
			distributed += growth
		}

		remaining -= distributed
		if distributed < epsilon {
			break
		}
	}

	result := make(Result, len(parts))
	for i, p := range parts {
		result[p.Name] = sizes[i]
	}
	return result, true
}

// activePhases returns every (part, rule) pair whose cap still exceeds the
// part's current size, regardless of where the rule sits in the part's list.
func activePhases(parts []NamedPart, sizes []float64) []candidate {
	var active []candidate
	for i, p := range parts {
		for _, rule := range p.Part.Rules {
			if limit := rule.limit(); sizes[i] < limit {
				active = append(active, candidate{
					idx:      i,
					priority: rule.Priority,
					share:    rule.share(),
					limit:    limit,
				})
			}
		}
	}
	return active
}

// Slice lays lengths end to end starting at offset and returns the range each
// one occupies.
func Slice(lengths []float64, offset float64) []geom.OffsetRange {
	ranges := make([]geom.OffsetRange, len(lengths))
	for i, l := range lengths {
		ranges[i] = geom.OfStartAndLength(offset, l)
		offset += l
	}
	return ranges
}
