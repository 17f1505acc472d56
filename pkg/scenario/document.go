package scenario

import "github.com/matzehuels/hintlayout/pkg/placement"

// Document is the expanded line table of a scenario.
// It implements placement.LineMetricsProvider and placement.LineHeightProvider.
type Document struct {
	widths  []float64
	heights []float64
	tops    []float64
}

// NewDocument expands the lines of s.
func NewDocument(s *Scenario) *Document {
	n := s.LineCount()
	d := &Document{
		widths:  make([]float64, 0, n),
		heights: make([]float64, 0, n),
		tops:    make([]float64, 0, n),
	}
	var top float64
	for _, l := range s.Lines {
		h := l.Height
		if h == 0 {
			h = s.DefaultLineHeight
		}
		for range max(l.Repeat, 1) {
			d.widths = append(d.widths, l.Width)
			d.heights = append(d.heights, h)
			d.tops = append(d.tops, top)
			top += h
		}
	}
	return d
}

func (d *Document) valid(line int) bool { return line >= 1 && line <= len(d.widths) }

// ContentWidth returns the text width of line, or 0 outside the document.
func (d *Document) ContentWidth(line int) float64 {
	if !d.valid(line) {
		return 0
	}
	return d.widths[line-1]
}

// LineTop returns the top offset of line. Lines past the end report the
// document height.
func (d *Document) LineTop(line int) float64 {
	switch {
	case line < 1:
		return 0
	case line > len(d.tops):
		return d.Height()
	default:
		return d.tops[line-1]
	}
}

// LineHeight returns the height of line, or 0 outside the document.
func (d *Document) LineHeight(line int) float64 {
	if !d.valid(line) {
		return 0
	}
	return d.heights[line-1]
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return len(d.widths) }

// Height returns the total document height.
func (d *Document) Height() float64 {
	if len(d.tops) == 0 {
		return 0
	}
	return d.tops[len(d.tops)-1] + d.heights[len(d.heights)-1]
}

var (
	_ placement.LineMetricsProvider = (*Document)(nil)
	_ placement.LineHeightProvider  = (*Document)(nil)
)
