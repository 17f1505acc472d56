// Package scenario describes a frozen snapshot of everything the placement
// planner reads: document line metrics, the viewport and the embedded
// preview. Scenarios are loaded from TOML or JSON files, replayed by the
// CLI, and posted to the HTTP API.
//
//	anchor_line = 12
//	default_line_height = 18
//
//	[viewport]
//	content_left = 64
//	content_width = 1200
//	vertical_scrollbar_width = 14
//
//	[embedded]
//	content_height = 54
//	max_preferred_width = 380
//	reveal_start = 40
//	reveal_end = 260
//
//	[[lines]]
//	width = 420
//	repeat = 30
package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hintlayout/pkg/cache"
	"github.com/matzehuels/hintlayout/pkg/errors"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/placement"
)

// Scenario is the serialized form of a planning input.
type Scenario struct {
	AnchorLine        int     `toml:"anchor_line" json:"anchor_line"`
	DefaultLineHeight float64 `toml:"default_line_height,omitempty" json:"default_line_height,omitempty"`

	Viewport placement.ViewportMetrics `toml:"viewport" json:"viewport"`
	Embedded Embedded                  `toml:"embedded" json:"embedded"`
	Lines    []Line                    `toml:"lines" json:"lines"`
}

// Embedded is the serialized form of placement.EmbeddedContentMetrics.
type Embedded struct {
	ContentHeight     float64 `toml:"content_height" json:"content_height"`
	MaxPreferredWidth float64 `toml:"max_preferred_width" json:"max_preferred_width"`
	NonContentWidth   float64 `toml:"non_content_width" json:"non_content_width"`
	IndentationEnd    float64 `toml:"indentation_end" json:"indentation_end"`
	RevealStart       float64 `toml:"reveal_start" json:"reveal_start"`
	RevealEnd         float64 `toml:"reveal_end" json:"reveal_end"`
}

// Line describes one or more consecutive document lines.
type Line struct {
	Width float64 `toml:"width" json:"width"`
	// Height overrides the scenario's default line height.
	Height float64 `toml:"height,omitempty" json:"height,omitempty"`
	// Repeat expands the entry into this many identical lines. Zero means one.
	Repeat int `toml:"repeat,omitempty" json:"repeat,omitempty"`
}

// Load reads a scenario file. The format follows the file extension.
func Load(path string) (*Scenario, error) {
	format, err := errors.ValidateScenarioFilename(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "scenario file %s not found", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScenario, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes and validates a scenario.
func Parse(data []byte, format errors.ScenarioFormat) (*Scenario, error) {
	var s Scenario
	switch format {
	case errors.FormatTOML:
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse scenario")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return nil, errors.New(errors.ErrCodeInvalidScenario, "unknown scenario keys: %s", strings.Join(keys, ", "))
		}
	case errors.FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse scenario")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported scenario format %q", format)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the scenario describes a plannable document.
func (s *Scenario) Validate() error {
	if len(s.Lines) == 0 {
		return errors.New(errors.ErrCodeInvalidScenario, "scenario has no lines")
	}
	if err := errors.ValidateNonNegative("default_line_height", s.DefaultLineHeight); err != nil {
		return scenarioError(err)
	}
	for i, l := range s.Lines {
		if err := errors.ValidateNonNegative(fmt.Sprintf("lines[%d].width", i), l.Width); err != nil {
			return scenarioError(err)
		}
		if err := errors.ValidateNonNegative(fmt.Sprintf("lines[%d].height", i), l.Height); err != nil {
			return scenarioError(err)
		}
		if l.Repeat < 0 {
			return errors.New(errors.ErrCodeInvalidScenario, "lines[%d]: repeat must not be negative", i)
		}
	}
	if err := errors.ValidateLineNumber("anchor_line", s.AnchorLine, s.LineCount()); err != nil {
		return err
	}

	vp := s.Viewport
	nonNegative := []struct {
		field string
		v     float64
	}{
		{"viewport.scroll_top", vp.ScrollTop},
		{"viewport.scroll_left", vp.ScrollLeft},
		{"viewport.content_width", vp.ContentWidth},
		{"viewport.vertical_scrollbar_width", vp.VerticalScrollbarWidth},
		{"embedded.content_height", s.Embedded.ContentHeight},
		{"embedded.max_preferred_width", s.Embedded.MaxPreferredWidth},
		{"embedded.non_content_width", s.Embedded.NonContentWidth},
	}
	for _, f := range nonNegative {
		if err := errors.ValidateNonNegative(f.field, f.v); err != nil {
			return scenarioError(err)
		}
	}
	if err := errors.ValidateFinite("viewport.content_left", vp.ContentLeft); err != nil {
		return scenarioError(err)
	}
	if err := errors.ValidateFinite("embedded.indentation_end", s.Embedded.IndentationEnd); err != nil {
		return scenarioError(err)
	}
	if err := errors.ValidateRange("embedded reveal range", s.Embedded.RevealStart, s.Embedded.RevealEnd); err != nil {
		return scenarioError(err)
	}
	return nil
}

// scenarioError re-codes a field validation error as a scenario error.
func scenarioError(err error) error {
	return errors.New(errors.ErrCodeInvalidScenario, "%s", errors.UserMessage(err))
}

// LineCount returns the number of document lines after expanding repeats.
func (s *Scenario) LineCount() int {
	n := 0
	for _, l := range s.Lines {
		n += max(l.Repeat, 1)
	}
	return n
}

// WithAnchor returns a shallow copy of s anchored at line.
func (s *Scenario) WithAnchor(line int) *Scenario {
	c := *s
	c.AnchorLine = line
	return &c
}

// Hash returns the content hash of the scenario.
func (s *Scenario) Hash() (string, error) {
	h, err := cache.HashJSON(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash scenario")
	}
	return h, nil
}

// Input builds the planner input for this scenario.
func (s *Scenario) Input() placement.Input {
	return placement.Input{
		AnchorLine: s.AnchorLine,
		Lines:      NewDocument(s),
		Viewport:   s.Viewport,
		Embedded: &placement.EmbeddedContentMetrics{
			ContentHeight:          s.Embedded.ContentHeight,
			MaxPreferredWidth:      s.Embedded.MaxPreferredWidth,
			NonContentWidth:        s.Embedded.NonContentWidth,
			IndentationEnd:         s.Embedded.IndentationEnd,
			PreferredRangeToReveal: geom.NewOffsetRange(s.Embedded.RevealStart, s.Embedded.RevealEnd),
		},
	}
}
