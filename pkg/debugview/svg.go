package debugview

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/hintlayout/pkg/geom"
)

const (
	svgMargin   = 20.0
	titleHeight = 24.0
	fontFamily  = "ui-monospace, Menlo, Consolas, monospace"
)

// stageColors cycles through distinguishable stroke colors.
var stageColors = []string{"#8a8f98", "#1f77b4", "#2ca02c", "#d62728", "#9467bd", "#ff7f0e"}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	viewport *geom.Rect
	title    string
	labels   bool
}

func WithViewport(r geom.Rect) SVGOption { return func(s *svgRenderer) { s.viewport = &r } }
func WithTitle(t string) SVGOption       { return func(s *svgRenderer) { s.title = t } }
func WithLabels() SVGOption              { return func(s *svgRenderer) { s.labels = true } }

// RenderSVG draws every rectangle of stages. Coordinates are kept as-is and
// the view box is fitted around all rectangles and the viewport.
func RenderSVG(stages []Stage, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	bounds, ok := r.bounds(stages)
	if !ok {
		bounds = geom.NewRect(0, 0, 1, 1)
	}
	top := bounds.Top - svgMargin
	if r.title != "" {
		top -= titleHeight
	}
	left := bounds.Left - svgMargin
	width := bounds.Right + svgMargin - left
	height := bounds.Bottom + svgMargin - top

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.1f %.1f %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		left, top, width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="#fff"/>`+"\n", left, top, width, height)

	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="14" fill="#000">%s</text>`+"\n",
			left+svgMargin, top+svgMargin, fontFamily, escapeXML(r.title))
	}
	if r.viewport != nil {
		v := *r.viewport
		fmt.Fprintf(&buf, `  <rect class="viewport" x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="none" stroke="#000" stroke-dasharray="6 4"/>`+"\n",
			v.Left, v.Top, v.Width(), v.Height())
	}

	for i, s := range stages {
		renderStage(&buf, s, stageColors[i%len(stageColors)], r.labels)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderStage(buf *bytes.Buffer, s Stage, color string, labels bool) {
	fmt.Fprintf(buf, `  <g class="stage" id="stage-%s" stroke="%s" fill="%s" fill-opacity="0.12">`+"\n",
		escapeXML(s.Name), color, color)
	for _, name := range slices.Sorted(maps.Keys(s.Rects)) {
		rect := s.Rects[name]
		fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%s: %s</title></rect>`+"\n",
			rect.Left, rect.Top, rect.Width(), rect.Height(), escapeXML(s.Name), escapeXML(name))
		if labels {
			fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="%s" font-size="10" stroke="none" fill="%s" fill-opacity="1">%s</text>`+"\n",
				rect.Left+2, rect.Top+11, fontFamily, color, escapeXML(name))
		}
	}
	buf.WriteString("  </g>\n")
}

// bounds returns the smallest rectangle containing all drawn rectangles.
func (r svgRenderer) bounds(stages []Stage) (geom.Rect, bool) {
	b := geom.Rect{Left: math.Inf(1), Top: math.Inf(1), Right: math.Inf(-1), Bottom: math.Inf(-1)}
	grow := func(o geom.Rect) {
		b.Left = min(b.Left, o.Left)
		b.Top = min(b.Top, o.Top)
		b.Right = max(b.Right, o.Right)
		b.Bottom = max(b.Bottom, o.Bottom)
	}
	if r.viewport != nil {
		grow(*r.viewport)
	}
	for _, s := range stages {
		for _, rect := range s.Rects {
			grow(rect)
		}
	}
	if b.Left > b.Right {
		return geom.Rect{}, false
	}
	return b, true
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
