// Package flexbox apportions a bounded one-dimensional size among named parts.
//
// Each part has a minimum and a list of growth phases ([Rule]). A phase caps
// the part's total size and carries a priority and a share. Distribution
// first assigns every minimum. Each round then collects every phase whose cap
// its part has not reached and hands the remaining space to those with the
// highest priority, split in proportion to their shares and capped by each
// phase's headroom. A phase drops out once its part reaches the cap, so the
// order in which a part lists its phases does not matter.
//
// Space that no phase can absorb is left undistributed. This "dead space" is
// a valid outcome, not an error. The only infeasible input is one whose
// minimums exceed the total, which [Distribute] reports with ok == false.
//
// # Example
//
//	maxWidth := 400.0
//	alloc, ok := flexbox.Distribute(width, []flexbox.NamedPart{
//	    {Name: "spaceBefore", Part: flexbox.Single(0, flexbox.Rule{Max: flexbox.Limit(10), Priority: 1})},
//	    {Name: "content", Part: flexbox.Phased(50,
//	        flexbox.Rule{Max: flexbox.Limit(150), Priority: 2},
//	        flexbox.Rule{Max: flexbox.Limit(maxWidth), Priority: 1},
//	    )},
//	    {Name: "spaceAfter", Part: flexbox.Single(20, flexbox.Rule{})},
//	})
package flexbox
