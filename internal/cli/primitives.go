package cli

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hintlayout/pkg/flexbox"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/scroll"
	"github.com/matzehuels/hintlayout/pkg/tower"
)

// =============================================================================
// flex
// =============================================================================

// flexCommand creates the flex command.
func (c *CLI) flexCommand() *cobra.Command {
	var total float64

	cmd := &cobra.Command{
		Use:   "flex [part...]",
		Short: "Distribute a length among parts with growth rules",
		Long: `Distribute a length among parts with growth rules.

Each part is written as name=min/rule,rule,... where a rule is
[max][@priority][*share]. A rule without max grows without bound.

Example:

  hintlayout flex --total 300 before=0/10@1 content=50/150@2,270@1 after=20/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := make([]flexbox.NamedPart, len(args))
			for i, a := range args {
				p, err := parsePart(a)
				if err != nil {
					return err
				}
				parts[i] = p
			}
			return runFlex(cmd.OutOrStdout(), total, parts)
		},
	}

	cmd.Flags().Float64Var(&total, "total", 0, "length to distribute")
	_ = cmd.MarkFlagRequired("total")

	return cmd
}

func runFlex(w io.Writer, total float64, parts []flexbox.NamedPart) error {
	names := make([]string, len(parts))
	for i, p := range parts {
		if slices.Contains(names[:i], p.Name) {
			return fmt.Errorf("duplicate part %q", p.Name)
		}
		names[i] = p.Name
	}

	alloc, ok := flexbox.Distribute(total, parts)
	if !ok {
		printWarning(w, "Infeasible: minimums exceed %g", total)
		return nil
	}

	ranges := flexbox.Slice(alloc.Lengths(names...), 0)
	t := newTable("Part", "Min", "Size", "Range")
	for i, p := range parts {
		t.Row(p.Name, fmt.Sprintf("%g", p.Part.Min), fmt.Sprintf("%g", alloc[p.Name]), formatRange(ranges[i]))
	}
	fmt.Fprintln(w, t.Render())
	if unused := total - alloc.Total(); unused > 0 {
		printDetail(w, "%g unused", unused)
	}
	return nil
}

// parsePart parses name=min/rule,rule,...
func parsePart(s string) (flexbox.NamedPart, error) {
	name, rest, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return flexbox.NamedPart{}, fmt.Errorf("part %q: want name=min/rules", s)
	}
	minStr, rulesStr, _ := strings.Cut(rest, "/")

	var part flexbox.Part
	if minStr != "" {
		v, err := strconv.ParseFloat(minStr, 64)
		if err != nil || v < 0 {
			return flexbox.NamedPart{}, fmt.Errorf("part %q: invalid min %q", name, minStr)
		}
		part.Min = v
	}
	if rulesStr == "" && strings.HasSuffix(rest, "/") {
		part.Rules = []flexbox.Rule{{}}
	}
	for _, r := range strings.Split(rulesStr, ",") {
		if r == "" {
			continue
		}
		rule, err := parseRule(r)
		if err != nil {
			return flexbox.NamedPart{}, fmt.Errorf("part %q: %w", name, err)
		}
		part.Rules = append(part.Rules, rule)
	}
	return flexbox.NamedPart{Name: name, Part: part}, nil
}

// parseRule parses [max][@priority][*share].
func parseRule(s string) (flexbox.Rule, error) {
	var rule flexbox.Rule
	rest := s
	if before, share, ok := strings.Cut(rest, "*"); ok {
		v, err := strconv.ParseFloat(share, 64)
		if err != nil {
			return rule, fmt.Errorf("rule %q: invalid share %q", s, share)
		}
		rule.Share = v
		rest = before
	}
	if before, prio, ok := strings.Cut(rest, "@"); ok {
		v, err := strconv.Atoi(prio)
		if err != nil {
			return rule, fmt.Errorf("rule %q: invalid priority %q", s, prio)
		}
		rule.Priority = v
		rest = before
	}
	if rest != "" && rest != "inf" {
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return rule, fmt.Errorf("rule %q: invalid max %q", s, rest)
		}
		rule.Max = flexbox.Limit(v)
	}
	return rule, nil
}

// =============================================================================
// tower
// =============================================================================

// towerCommand creates the tower command.
func (c *CLI) towerCommand() *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "tower [area...]",
		Short: "Find the tallest tower that fits over stacked areas",
		Long: `Find the tallest tower that fits over stacked areas.

Areas are given as WIDTHxHEIGHT and stacked edge to edge along the first
axis. The result is the smallest height among the areas the target range
overlaps, or 0 when the target runs past the end of the stack.

Example:

  hintlayout tower --target 15:35 10x5 10x3 10x8 10x6`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := parseRange(target)
			if err != nil {
				return err
			}
			areas := make([]geom.Size2D, len(args))
			for i, a := range args {
				if areas[i], err = parseSize(a); err != nil {
					return err
				}
			}
			runTower(cmd.OutOrStdout(), tr, areas)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "target", "", "target range as start:end")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}

func runTower(w io.Writer, target geom.OffsetRange, areas []geom.Size2D) {
	rects := tower.StackDown(geom.Point{}, transposeAll(areas), tower.AlignLeft)

	t := newTable("Area", "Span", "Height", "Overlaps")
	for i, r := range rects {
		span := r.VerticalRange()
		overlaps := ""
		if span.Overlaps(target) {
			overlaps = iconSuccess
		}
		t.Row(strconv.Itoa(i+1), formatRange(span), fmt.Sprintf("%g", areas[i].Height), overlaps)
	}
	fmt.Fprintln(w, t.Render())

	height := tower.MaxTowerHeight(target, areas)
	printInfo(w, "Max height over %s: %s", formatRange(target), StyleHighlight.Render(fmt.Sprintf("%g", height)))
}

func transposeAll(sizes []geom.Size2D) []geom.Size2D {
	out := make([]geom.Size2D, len(sizes))
	for i, s := range sizes {
		out[i] = s.Transpose()
	}
	return out
}

// parseSize parses WIDTHxHEIGHT.
func parseSize(s string) (geom.Size2D, error) {
	ws, hs, ok := strings.Cut(s, "x")
	if !ok {
		return geom.Size2D{}, fmt.Errorf("area %q: want WIDTHxHEIGHT", s)
	}
	w, err1 := strconv.ParseFloat(ws, 64)
	h, err2 := strconv.ParseFloat(hs, 64)
	if err1 != nil || err2 != nil || w < 0 || h < 0 {
		return geom.Size2D{}, fmt.Errorf("area %q: want non-negative numbers", s)
	}
	return geom.NewSize2D(w, h), nil
}

// parseRange parses start:end.
func parseRange(s string) (geom.OffsetRange, error) {
	ss, es, ok := strings.Cut(s, ":")
	if !ok {
		return geom.OffsetRange{}, fmt.Errorf("range %q: want start:end", s)
	}
	start, err1 := strconv.ParseFloat(ss, 64)
	end, err2 := strconv.ParseFloat(es, 64)
	if err1 != nil || err2 != nil || math.IsNaN(start) || math.IsNaN(end) || end < start {
		return geom.OffsetRange{}, fmt.Errorf("range %q: want start <= end", s)
	}
	return geom.NewOffsetRange(start, end), nil
}

// =============================================================================
// reveal
// =============================================================================

// revealCommand creates the reveal command.
func (c *CLI) revealCommand() *cobra.Command {
	var current, window float64

	cmd := &cobra.Command{
		Use:   "reveal [start:end]",
		Short: "Compute the minimal scroll that reveals a range",
		Long: `Compute the minimal scroll that reveals a range.

Example:

  hintlayout reveal --current 0 --window 100 80:150`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := parseRange(args[0])
			if err != nil {
				return err
			}
			if window < 0 {
				return fmt.Errorf("window must not be negative")
			}
			next := scroll.ToReveal(current, window, target)
			w := cmd.OutOrStdout()
			printInfo(w, "Scroll %s %s", iconArrow, StyleHighlight.Render(fmt.Sprintf("%g", next)))
			if delta := next - current; delta != 0 {
				printDetail(w, "moved by %+g", delta)
			} else {
				printDetail(w, "already visible")
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&current, "current", 0, "current scroll offset")
	cmd.Flags().Float64Var(&window, "window", 0, "visible window size")
	_ = cmd.MarkFlagRequired("window")

	return cmd
}
