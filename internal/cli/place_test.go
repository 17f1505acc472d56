package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/hintlayout/pkg/errors"
	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/pipeline"
)

func TestPlaceCommandJSON(t *testing.T) {
	isolate(t)
	path := writeScenario(t)

	out, err := execute(t, "place", path, "--json")
	if err != nil {
		t.Fatalf("place error = %v", err)
	}
	var res pipeline.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if !res.Placed {
		t.Fatal("Placed = false, want true")
	}
	want := geom.Rect{Left: 260, Top: 375, Right: 660, Bottom: 467}
	if res.Placement.WidgetRect != want {
		t.Errorf("WidgetRect = %v, want %v", res.Placement.WidgetRect, want)
	}
	if res.CacheHit {
		t.Error("first run CacheHit = true, want false")
	}

	out, err = execute(t, "place", path, "--json")
	if err != nil {
		t.Fatalf("second place error = %v", err)
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if !res.CacheHit {
		t.Error("second run CacheHit = false, want true")
	}
}

func TestPlaceCommandFlags(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantHit   bool
		wantPlace int
	}{
		"no cache":  {args: []string{"--no-cache"}, wantPlace: 20},
		"refresh":   {args: []string{"--refresh"}, wantPlace: 20},
		"anchor":    {args: []string{"--anchor", "40"}, wantPlace: 40},
		"first hit": {args: nil, wantHit: true, wantPlace: 20},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			path := writeScenario(t)
			if _, err := execute(t, "place", path); err != nil {
				t.Fatalf("warm-up place error = %v", err)
			}

			out, err := execute(t, append([]string{"place", path, "--json"}, tt.args...)...)
			if err != nil {
				t.Fatalf("place error = %v", err)
			}
			var res pipeline.Result
			if err := json.Unmarshal([]byte(out), &res); err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if res.CacheHit != tt.wantHit {
				t.Errorf("CacheHit = %v, want %v", res.CacheHit, tt.wantHit)
			}
			if res.Placement.PlacedLine != tt.wantPlace {
				t.Errorf("PlacedLine = %d, want %d", res.Placement.PlacedLine, tt.wantPlace)
			}
		})
	}
}

func TestPlaceCommandTable(t *testing.T) {
	isolate(t)
	out, err := execute(t, "place", writeScenario(t))
	if err != nil {
		t.Fatalf("place error = %v", err)
	}
	for _, want := range []string{"Placed widget for anchor line 20", "Widget", "260,375", "Window"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPlaceCommandDebugSVG(t *testing.T) {
	isolate(t)
	svgPath := filepath.Join(t.TempDir(), "debug.svg")

	if _, err := execute(t, "place", writeScenario(t), "--debug-svg", svgPath); err != nil {
		t.Fatalf("place error = %v", err)
	}
	data, err := os.ReadFile(svgPath)
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	for _, want := range []string{"<svg", `id="stage-editor"`, "anchor line 20"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestPlaceCommandErrors(t *testing.T) {
	isolate(t)
	path := writeScenario(t)

	tests := map[string]struct {
		args     []string
		wantCode errors.Code
	}{
		"missing file":   {args: []string{"place", filepath.Join(t.TempDir(), "nope.toml")}, wantCode: errors.ErrCodeFileNotFound},
		"anchor too far": {args: []string{"place", path, "--anchor", "500"}, wantCode: errors.ErrCodeInvalidScenario},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil {
				t.Fatal("error = nil, want error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q (err: %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestPlaceCommandFallbackHint(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "wide.toml")
	wide := strings.Replace(scenarioTOML, "\nwidth = 100\n", "\nwidth = 900\n", 1)
	if err := os.WriteFile(path, []byte(wide), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "place", path)
	if err != nil {
		t.Fatalf("place error = %v", err)
	}
	for _, want := range []string{"fallback", "See why no line fit", "--debug-svg"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
