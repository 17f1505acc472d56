package placement

import (
	"errors"
	"fmt"
	"slices"
)

// Options holds the planner's tunables. The zero value is not useful; start
// from [DefaultOptions].
type Options struct {
	// WindowMargin is the number of lines gathered above and below the anchor.
	WindowMargin int `toml:"window_margin" json:"window_margin"`
	// LinePadding is the gap kept between a line's text and the widget.
	LinePadding float64 `toml:"line_padding" json:"line_padding"`
	// AnchorLinePadding replaces LinePadding on the anchor line itself.
	AnchorLinePadding float64 `toml:"anchor_line_padding" json:"anchor_line_padding"`

	EditorMargin      float64 `toml:"editor_margin" json:"editor_margin"`
	WidgetPadding     float64 `toml:"widget_padding" json:"widget_padding"`
	WidgetBorder      float64 `toml:"widget_border" json:"widget_border"`
	LowerBarHeight    float64 `toml:"lower_bar_height" json:"lower_bar_height"`
	ExtraGutterMargin float64 `toml:"extra_gutter_margin" json:"extra_gutter_margin"`

	MinWidgetWidth float64 `toml:"min_widget_width" json:"min_widget_width"`
	MaxWidgetWidth float64 `toml:"max_widget_width" json:"max_widget_width"`

	// FallbackLineOffset is how many lines below the anchor the fallback
	// outline is aligned to.
	FallbackLineOffset int `toml:"fallback_line_offset" json:"fallback_line_offset"`
	// FallbackShift moves the fallback outline down by this many pixels.
	FallbackShift float64 `toml:"fallback_shift" json:"fallback_shift"`

	SpaceBeforeMax   float64 `toml:"space_before_max" json:"space_before_max"`
	ContentMin       float64 `toml:"content_min" json:"content_min"`
	ContentPreferred float64 `toml:"content_preferred" json:"content_preferred"`
	SpaceAfterMin    float64 `toml:"space_after_min" json:"space_after_min"`

	// RevealRatio caps the revealed range to this fraction of the preview's
	// content width.
	RevealRatio float64 `toml:"reveal_ratio" json:"reveal_ratio"`
}

// DefaultOptions returns the standard widget geometry.
func DefaultOptions() Options {
	return Options{
		WindowMargin:       5,
		LinePadding:        20,
		AnchorLinePadding:  100,
		EditorMargin:       2,
		WidgetPadding:      2,
		WidgetBorder:       1,
		LowerBarHeight:     20,
		ExtraGutterMargin:  2,
		MinWidgetWidth:     200,
		MaxWidgetWidth:     400,
		FallbackLineOffset: 2,
		FallbackShift:      10,
		SpaceBeforeMax:     10,
		ContentMin:         50,
		ContentPreferred:   150,
		SpaceAfterMin:      20,
		RevealRatio:        0.8,
	}
}

// Validate reports every option that would make planning meaningless.
func (o Options) Validate() error {
	var errs []error
	nonNegative := map[string]float64{
		"line_padding":        o.LinePadding,
		"anchor_line_padding": o.AnchorLinePadding,
		"editor_margin":       o.EditorMargin,
		"widget_padding":      o.WidgetPadding,
		"widget_border":       o.WidgetBorder,
		"lower_bar_height":    o.LowerBarHeight,
		"extra_gutter_margin": o.ExtraGutterMargin,
		"min_widget_width":    o.MinWidgetWidth,
		"space_before_max":    o.SpaceBeforeMax,
		"content_min":         o.ContentMin,
		"space_after_min":     o.SpaceAfterMin,
	}
	for _, name := range sortedKeys(nonNegative) {
		if nonNegative[name] < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %g", name, nonNegative[name]))
		}
	}
	if o.WindowMargin < 0 {
		errs = append(errs, fmt.Errorf("window_margin must not be negative, got %d", o.WindowMargin))
	}
	if o.MaxWidgetWidth <= 0 {
		errs = append(errs, fmt.Errorf("max_widget_width must be positive, got %g", o.MaxWidgetWidth))
	}
	if o.MinWidgetWidth > o.MaxWidgetWidth {
		errs = append(errs, fmt.Errorf("min_widget_width (%g) exceeds max_widget_width (%g)", o.MinWidgetWidth, o.MaxWidgetWidth))
	}
	if o.ContentPreferred < o.ContentMin {
		errs = append(errs, fmt.Errorf("content_preferred (%g) is below content_min (%g)", o.ContentPreferred, o.ContentMin))
	}
	if o.RevealRatio <= 0 || o.RevealRatio > 1 {
		errs = append(errs, fmt.Errorf("reveal_ratio must be in (0, 1], got %g", o.RevealRatio))
	}
	return errors.Join(errs...)
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
