package placement

import "github.com/matzehuels/hintlayout/pkg/geom"

// LineMetricsProvider exposes the rendered geometry of document lines.
// Line numbers are 1-based.
type LineMetricsProvider interface {
	// ContentWidth returns the rendered width of the line's text.
	ContentWidth(line int) float64
	// LineTop returns the vertical offset of the line in document space.
	LineTop(line int) float64
	// LineCount returns the number of lines in the document.
	LineCount() int
}

// LineHeightProvider is implemented by providers that know line heights
// directly. Without it, heights are derived from consecutive LineTop values.
type LineHeightProvider interface {
	LineHeight(line int) float64
}

// ViewportMetrics describes the host surface's current layout.
type ViewportMetrics struct {
	ScrollTop              float64 `json:"scroll_top" toml:"scroll_top"`
	ScrollLeft             float64 `json:"scroll_left" toml:"scroll_left"`
	ContentLeft            float64 `json:"content_left" toml:"content_left"`
	ContentWidth           float64 `json:"content_width" toml:"content_width"`
	VerticalScrollbarWidth float64 `json:"vertical_scrollbar_width" toml:"vertical_scrollbar_width"`
}

// EmbeddedContentMetrics describes the preview shown inside the widget.
type EmbeddedContentMetrics struct {
	// ContentHeight is the preview's full content height. Zero means the
	// preview has not been laid out yet.
	ContentHeight float64
	// MaxPreferredWidth is the widest width the preview can use.
	MaxPreferredWidth float64
	// NonContentWidth is the horizontal space taken by gutters and margins.
	NonContentWidth float64
	// IndentationEnd is the horizontal offset where the preview's text starts.
	IndentationEnd float64
	// PreferredRangeToReveal is the horizontal range that should be visible.
	PreferredRangeToReveal geom.OffsetRange
}

// Input is one planning pass's snapshot.
type Input struct {
	AnchorLine int
	Lines      LineMetricsProvider
	Viewport   ViewportMetrics
	// Embedded is nil while the preview has no layout.
	Embedded *EmbeddedContentMetrics
}

// Outline is a candidate widget placement before band refinement.
type Outline struct {
	Horizontal geom.OffsetRange `json:"horizontal"`
	Vertical   geom.OffsetRange `json:"vertical"`
}

// Result is a successful placement. All rectangles are viewport-relative.
type Result struct {
	// OuterSize is the size of the embedded preview editor.
	OuterSize geom.Size2D `json:"outer_size"`
	// DesiredInternalScrollLeft is the preview's horizontal scroll.
	DesiredInternalScrollLeft float64 `json:"desired_internal_scroll_left"`

	WidgetRect      geom.Rect `json:"widget_rect"`
	EditorRect      geom.Rect `json:"editor_rect"`
	SpaceBeforeRect geom.Rect `json:"space_before_rect"`
	SpaceAfterRect  geom.Rect `json:"space_after_rect"`

	AnchorLine int `json:"anchor_line"`
	// PlacedLine is the line the widget was aligned to, or 0 for the
	// fallback outline.
	PlacedLine int            `json:"placed_line"`
	Fallback   bool           `json:"fallback"`
	Window     geom.LineRange `json:"window"`
}

func lineHeight(lines LineMetricsProvider, line, count int) float64 {
	if h, ok := lines.(LineHeightProvider); ok {
		return h.LineHeight(line)
	}
	switch {
	case line < count:
		return lines.LineTop(line+1) - lines.LineTop(line)
	case count > 1:
		return lines.LineTop(count) - lines.LineTop(count-1)
	default:
		return 0
	}
}
