package placement

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/hintlayout/pkg/geom"
)

// uniformLines is a document whose lines all share one height.
type uniformLines struct {
	widths []float64
	height float64
}

func (u uniformLines) ContentWidth(line int) float64 { return u.widths[line-1] }
func (u uniformLines) LineTop(line int) float64      { return float64(line-1) * u.height }
func (u uniformLines) LineCount() int                { return len(u.widths) }

func newLines(count int, width float64) uniformLines {
	widths := make([]float64, count)
	for i := range widths {
		widths[i] = width
	}
	return uniformLines{widths: widths, height: 20}
}

func testInput(lines LineMetricsProvider) Input {
	return Input{
		AnchorLine: 20,
		Lines:      lines,
		Viewport: ViewportMetrics{
			ContentLeft:            50,
			ContentWidth:           1000,
			VerticalScrollbarWidth: 14,
		},
		Embedded: &EmbeddedContentMetrics{
			ContentHeight:          60,
			MaxPreferredWidth:      500,
			NonContentWidth:        10,
			IndentationEnd:         0,
			PreferredRangeToReveal: geom.NewOffsetRange(100, 900),
		},
	}
}

func TestPlan_PlacesOnAnchorLine(t *testing.T) {
	p := New(DefaultOptions())
	got, ok := p.Plan(testInput(newLines(100, 100)))
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}

	want := Result{
		OuterSize:                 geom.Size2D{Width: 390, Height: 62},
		DesiredInternalScrollLeft: 24,
		WidgetRect:                geom.Rect{Left: 260, Top: 375, Right: 660, Bottom: 467},
		EditorRect:                geom.Rect{Left: 265, Top: 380, Right: 655, Bottom: 442},
		SpaceBeforeRect:           geom.Rect{Left: 250, Top: 375, Right: 260, Bottom: 467},
		SpaceAfterRect:            geom.Rect{Left: 660, Top: 375, Right: 1036, Bottom: 467},
		AnchorLine:                20,
		PlacedLine:                20,
		Window:                    geom.LineRange{StartLineNumber: 15, EndLineNumberExclusive: 26},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Plan() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_MovesBelowBlockedAnchor(t *testing.T) {
	lines := newLines(100, 100)
	lines.widths[18] = 900 // line 19 leaves no room

	got, ok := New(DefaultOptions()).Plan(testInput(lines))
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	if got.Fallback {
		t.Fatal("Plan() fell back, want a placed line")
	}
	if got.PlacedLine != 21 {
		t.Errorf("PlacedLine = %d, want 21", got.PlacedLine)
	}
	if got.WidgetRect.Top != 395 {
		t.Errorf("WidgetRect.Top = %v, want 395", got.WidgetRect.Top)
	}
}

func TestPlan_FallbackWhenNoLineFits(t *testing.T) {
	got, ok := New(DefaultOptions()).Plan(testInput(newLines(100, 900)))
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	if !got.Fallback || got.PlacedLine != 0 {
		t.Errorf("Fallback, PlacedLine = %v, %d, want true, 0", got.Fallback, got.PlacedLine)
	}
	want := geom.Rect{Left: 646, Top: 425, Right: 1016, Bottom: 517}
	if got.WidgetRect != want {
		t.Errorf("WidgetRect = %v, want %v", got.WidgetRect, want)
	}
}

func TestPlan_TranslatesByScroll(t *testing.T) {
	in := testInput(newLines(100, 100))
	in.Viewport.ScrollTop = 300
	in.Viewport.ScrollLeft = 30

	got, ok := New(DefaultOptions()).Plan(in)
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	want := geom.Rect{Left: 230, Top: 75, Right: 630, Bottom: 167}
	if got.WidgetRect != want {
		t.Errorf("WidgetRect = %v, want %v", got.WidgetRect, want)
	}
}

func TestPlan_SingleLineDocument(t *testing.T) {
	in := testInput(newLines(1, 10))
	in.AnchorLine = 1

	got, ok := New(DefaultOptions()).Plan(in)
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	if !got.Fallback {
		t.Error("Plan() placed on a line, want fallback for a single line document")
	}
}

func TestPlan_NoPlacement(t *testing.T) {
	tests := map[string]struct {
		mutate func(*Input)
		opts   func(*Options)
	}{
		"nil lines": {
			mutate: func(in *Input) { in.Lines = nil },
		},
		"no embedded layout": {
			mutate: func(in *Input) { in.Embedded = nil },
		},
		"zero content height": {
			mutate: func(in *Input) { in.Embedded.ContentHeight = 0 },
		},
		"empty document": {
			mutate: func(in *Input) { in.Lines = uniformLines{height: 20} },
		},
		"anchor far outside document": {
			mutate: func(in *Input) { in.AnchorLine = 500 },
		},
		"bands do not fit": {
			mutate: func(in *Input) { in.Lines = newLines(100, 900) },
			opts:   func(o *Options) { o.MaxWidgetWidth = 60; o.MinWidgetWidth = 10 },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			in := testInput(newLines(100, 100))
			tt.mutate(&in)
			opts := DefaultOptions()
			if tt.opts != nil {
				tt.opts(&opts)
			}
			if got, ok := New(opts).Plan(in); ok {
				t.Errorf("Plan() = %+v, true, want no placement", got)
			}
		})
	}
}

func TestPlan_RevealRatio(t *testing.T) {
	in := testInput(newLines(100, 100))
	in.Embedded.PreferredRangeToReveal = geom.NewOffsetRange(100, 900)

	opts := DefaultOptions()
	opts.RevealRatio = 0.5
	got, ok := New(opts).Plan(in)
	if !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	// content width 380, preferred range clipped to [100, 290)
	if got.DesiredInternalScrollLeft != 0 {
		t.Errorf("DesiredInternalScrollLeft = %v, want 0", got.DesiredInternalScrollLeft)
	}
}

func TestPlan_DebugHook(t *testing.T) {
	var stages []string
	hook := DebugHookFunc(func(stage string, rects map[string]geom.Rect) {
		stages = append(stages, stage)
		if len(rects) == 0 {
			t.Errorf("stage %q reported no rects", stage)
		}
	})

	if _, ok := New(DefaultOptions(), WithDebugHook(hook)).Plan(testInput(newLines(100, 100))); !ok {
		t.Fatal("Plan() ok = false, want true")
	}
	want := []string{StageAvailableSpace, StageOutline, StageBands, StageEditor}
	if diff := cmp.Diff(want, stages); diff != "" {
		t.Errorf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_DoesNotMutateInput(t *testing.T) {
	in := testInput(newLines(100, 100))
	embedded := *in.Embedded
	New(DefaultOptions()).Plan(in)
	if *in.Embedded != embedded {
		t.Error("Plan() mutated embedded metrics")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := map[string]struct {
		mutate  func(*Options)
		wantErr bool
	}{
		"defaults":          {mutate: func(*Options) {}},
		"negative padding":  {mutate: func(o *Options) { o.LinePadding = -1 }, wantErr: true},
		"min above max":     {mutate: func(o *Options) { o.MinWidgetWidth = 500 }, wantErr: true},
		"ratio zero":        {mutate: func(o *Options) { o.RevealRatio = 0 }, wantErr: true},
		"ratio above one":   {mutate: func(o *Options) { o.RevealRatio = 1.5 }, wantErr: true},
		"ratio one":         {mutate: func(o *Options) { o.RevealRatio = 1 }},
		"negative window":   {mutate: func(o *Options) { o.WindowMargin = -2 }, wantErr: true},
		"preferred too low": {mutate: func(o *Options) { o.ContentPreferred = 10 }, wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			if err := o.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
