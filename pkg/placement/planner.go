package placement

import (
	"fmt"

	"github.com/matzehuels/hintlayout/pkg/flexbox"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/nearest"
	"github.com/matzehuels/hintlayout/pkg/scroll"
	"github.com/matzehuels/hintlayout/pkg/tower"
)

// Band names used for the horizontal split of the widget outline.
const (
	BandSpaceBefore = "spaceBefore"
	BandContent     = "content"
	BandSpaceAfter  = "spaceAfter"
)

// Planner computes widget placements. It is immutable after construction.
type Planner struct {
	opts  Options
	debug DebugHook
}

// PlannerOption configures a Planner.
type PlannerOption func(*Planner)

// WithDebugHook reports intermediate rectangles of every pass to h.
func WithDebugHook(h DebugHook) PlannerOption {
	return func(p *Planner) {
		if h != nil {
			p.debug = h
		}
	}
}

// New creates a planner with the given options.
func New(opts Options, options ...PlannerOption) *Planner {
	p := &Planner{opts: opts, debug: NopDebugHook{}}
	for _, o := range options {
		o(p)
	}
	return p
}

// Options returns the planner's configuration.
func (p *Planner) Options() Options { return p.opts }

// lineSpace is the free area to the right of one line's text.
type lineSpace struct {
	line  int
	space geom.Size2D
}

// candidate is an accepted outline and the line it is aligned to.
type candidate struct {
	outline Outline
	line    int
}

// Plan computes the placement for in. It returns ok == false when a metric
// is missing, the line window is empty, or the bands cannot fit the outline.
func (p *Planner) Plan(in Input) (Result, bool) {
	if in.Lines == nil || in.Embedded == nil || in.Embedded.ContentHeight <= 0 {
		return Result{}, false
	}
	count := in.Lines.LineCount()
	if count < 1 {
		return Result{}, false
	}

	window, ok := geom.LineRangeOfLength(in.AnchorLine, 1).
		AddMargin(p.opts.WindowMargin, p.opts.WindowMargin).
		Intersect(geom.LineRangeOfLength(1, count))
	if !ok || window.IsEmpty() {
		return Result{}, false
	}

	vp := in.Viewport
	trueContentWidth := vp.ContentWidth - vp.VerticalScrollbarWidth
	trueContentRight := vp.ContentLeft + trueContentWidth
	windowTop := in.Lines.LineTop(window.StartLineNumber)

	spaces := p.availableSpace(in, window, count, trueContentWidth)
	heights := make([]float64, len(spaces))
	transposed := make([]geom.Size2D, len(spaces))
	for i, s := range spaces {
		heights[i] = s.space.Height
		transposed[i] = s.space.Transpose()
	}
	tops := nearest.PrefixSums(heights)

	if p.debugging() {
		sizes := make([]geom.Size2D, len(spaces))
		rects := make(map[string]geom.Rect, len(spaces))
		for i, s := range spaces {
			sizes[i] = s.space
		}
		at := geom.Point{X: trueContentRight - vp.ScrollLeft, Y: windowTop - vp.ScrollTop}
		for i, r := range tower.StackDown(at, sizes, tower.AlignRight) {
			rects[fmt.Sprintf("line%d", spaces[i].line)] = r
		}
		p.debug.Rects(StageAvailableSpace, rects)
	}

	previewHeight := in.Embedded.ContentHeight + p.opts.ExtraGutterMargin
	verticalOutline := func(line int) geom.OffsetRange {
		idx := min(max(line-window.StartLineNumber, 0), len(tops)-1)
		top := windowTop + tops[idx]
		return geom.OfStartAndLength(top, previewHeight).
			WithUniformMargin(p.opts.EditorMargin + p.opts.WidgetPadding + p.opts.WidgetBorder).
			WithMargin(0, p.opts.LowerBarHeight)
	}

	search := nearest.Range{First: window.StartLineNumber + 1, Last: window.EndLineNumberExclusive - 1}
	found, ok := nearest.FindFirstMinimizeDistance(search, in.AnchorLine, func(line int) (candidate, bool) {
		vertical := verticalOutline(line)
		maxWidth := tower.MaxTowerHeight(vertical.Delta(-windowTop), transposed)
		if maxWidth < p.opts.MinWidgetWidth {
			return candidate{}, false
		}
		return candidate{
			outline: Outline{
				Horizontal: geom.OfStartAndLength(trueContentRight-maxWidth, maxWidth),
				Vertical:   vertical,
			},
			line: line,
		}, true
	})
	fallback := !ok
	if fallback {
		found = candidate{outline: Outline{
			Horizontal: geom.OfStartAndLength(trueContentRight-p.opts.MaxWidgetWidth, p.opts.MaxWidgetWidth),
			Vertical:   verticalOutline(in.AnchorLine + p.opts.FallbackLineOffset).Delta(p.opts.FallbackShift),
		}}
	}

	available := geom.RectFromRanges(found.outline.Horizontal, found.outline.Vertical).
		TranslateX(-vp.ScrollLeft).
		TranslateY(-vp.ScrollTop)
	p.debug.Rects(StageOutline, map[string]geom.Rect{"available": available})

	maxWidgetWidth := min(p.opts.MaxWidgetWidth, in.Embedded.MaxPreferredWidth+p.opts.EditorMargin+p.opts.WidgetPadding)
	alloc, ok := flexbox.Distribute(available.Width(), p.bands(maxWidgetWidth))
	if !ok {
		return Result{}, false
	}
	ranges := flexbox.Slice(alloc.Lengths(BandSpaceBefore, BandContent, BandSpaceAfter), available.Left)
	spaceBefore := available.WithHorizontalRange(ranges[0])
	widget := available.WithHorizontalRange(ranges[1])
	spaceAfter := available.WithHorizontalRange(ranges[2])
	p.debug.Rects(StageBands, map[string]geom.Rect{
		BandSpaceBefore: spaceBefore,
		BandContent:     widget,
		BandSpaceAfter:  spaceAfter,
	})

	editor := widget.
		WithUniformMargin(-(p.opts.WidgetPadding + p.opts.WidgetBorder + p.opts.EditorMargin)).
		WithMargin(0, 0, -p.opts.LowerBarHeight, 0)
	p.debug.Rects(StageEditor, map[string]geom.Rect{"editor": editor})

	return Result{
		OuterSize:                 editor.Size(),
		DesiredInternalScrollLeft: p.revealScroll(editor, in.Embedded),
		WidgetRect:                widget,
		EditorRect:                editor,
		SpaceBeforeRect:           spaceBefore,
		SpaceAfterRect:            spaceAfter,
		AnchorLine:                in.AnchorLine,
		PlacedLine:                found.line,
		Fallback:                  fallback,
		Window:                    window,
	}, true
}

// availableSpace returns, for every line of window, the free width right of
// the line's text and the line's height.
func (p *Planner) availableSpace(in Input, window geom.LineRange, count int, trueContentWidth float64) []lineSpace {
	spaces := make([]lineSpace, 0, window.Length())
	for line := window.StartLineNumber; line < window.EndLineNumberExclusive; line++ {
		padding := p.opts.LinePadding
		if line == in.AnchorLine {
			padding = p.opts.AnchorLinePadding
		}
		width := max(0, trueContentWidth-in.Lines.ContentWidth(line)-padding)
		spaces = append(spaces, lineSpace{
			line:  line,
			space: geom.NewSize2D(width, lineHeight(in.Lines, line, count)),
		})
	}
	return spaces
}

func (p *Planner) bands(maxWidgetWidth float64) []flexbox.NamedPart {
	return []flexbox.NamedPart{
		{Name: BandSpaceBefore, Part: flexbox.Single(0, flexbox.Rule{Max: flexbox.Limit(p.opts.SpaceBeforeMax), Priority: 1})},
		{Name: BandContent, Part: flexbox.Phased(p.opts.ContentMin,
			flexbox.Rule{Max: flexbox.Limit(p.opts.ContentPreferred), Priority: 2},
			flexbox.Rule{Max: flexbox.Limit(maxWidgetWidth), Priority: 1},
		)},
		{Name: BandSpaceAfter, Part: flexbox.Single(p.opts.SpaceAfterMin, flexbox.Rule{})},
	}
}

// revealScroll returns the preview's horizontal scroll that shows the
// preferred range, clipped to RevealRatio of the visible content width.
func (p *Planner) revealScroll(editor geom.Rect, m *EmbeddedContentMetrics) float64 {
	contentWidth := editor.Width() - m.NonContentWidth
	preferred := m.PreferredRangeToReveal
	limit := geom.OfStartAndLength(preferred.Start, contentWidth*p.opts.RevealRatio)
	if clipped, ok := preferred.Intersect(limit); ok {
		preferred = clipped
	}
	return scroll.ToReveal(m.IndentationEnd, contentWidth, preferred)
}

func (p *Planner) debugging() bool {
	_, nop := p.debug.(NopDebugHook)
	return !nop
}
