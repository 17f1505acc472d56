package cli

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/hintlayout/pkg/flexbox"
	"github.com/matzehuels/hintlayout/pkg/geom"
)

func TestParsePart(t *testing.T) {
	tests := map[string]struct {
		in      string
		want    flexbox.NamedPart
		wantErr bool
	}{
		"min only": {
			in:   "gap=20",
			want: flexbox.NamedPart{Name: "gap", Part: flexbox.Part{Min: 20}},
		},
		"unbounded": {
			in:   "after=20/",
			want: flexbox.NamedPart{Name: "after", Part: flexbox.Part{Min: 20, Rules: []flexbox.Rule{{}}}},
		},
		"phased": {
			in: "content=50/150@2,270@1*2",
			want: flexbox.NamedPart{Name: "content", Part: flexbox.Part{Min: 50, Rules: []flexbox.Rule{
				{Max: flexbox.Limit(150), Priority: 2},
				{Max: flexbox.Limit(270), Priority: 1, Share: 2},
			}}},
		},
		"priority without max": {
			in:   "x=/@3",
			want: flexbox.NamedPart{Name: "x", Part: flexbox.Part{Rules: []flexbox.Rule{{Priority: 3}}}},
		},
		"missing name":   {in: "=5", wantErr: true},
		"missing equals": {in: "content", wantErr: true},
		"negative min":   {in: "a=-1", wantErr: true},
		"bad priority":   {in: "a=0/10@x", wantErr: true},
		"bad share":      {in: "a=0/10*y", wantErr: true},
		"bad max":        {in: "a=0/ten", wantErr: true},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := parsePart(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePart(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("parsePart(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestParseRangeAndSize(t *testing.T) {
	if got, err := parseRange("15:35"); err != nil || got != geom.NewOffsetRange(15, 35) {
		t.Errorf("parseRange(15:35) = %v, %v", got, err)
	}
	for _, bad := range []string{"15", "35:15", "a:b"} {
		if _, err := parseRange(bad); err == nil {
			t.Errorf("parseRange(%q) error = nil, want error", bad)
		}
	}

	if got, err := parseSize("10x5"); err != nil || got != geom.NewSize2D(10, 5) {
		t.Errorf("parseSize(10x5) = %v, %v", got, err)
	}
	for _, bad := range []string{"10", "-1x5", "ax5"} {
		if _, err := parseSize(bad); err == nil {
			t.Errorf("parseSize(%q) error = nil, want error", bad)
		}
	}
}

func TestFlexCommand(t *testing.T) {
	out, err := execute(t, "flex", "--total", "300", "before=0/10@1", "content=50/150@2,270@1", "after=20/")
	if err != nil {
		t.Fatalf("flex error = %v", err)
	}
	for _, want := range []string{"before", "270", "[10, 280)", "[280, 300)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFlexCommandInfeasible(t *testing.T) {
	out, err := execute(t, "flex", "--total", "10", "a=8", "b=8")
	if err != nil {
		t.Fatalf("flex error = %v", err)
	}
	if !strings.Contains(out, "Infeasible") {
		t.Errorf("output = %q, want infeasible warning", out)
	}
}

func TestTowerCommand(t *testing.T) {
	tests := map[string]struct {
		target string
		want   string
	}{
		"spans three areas": {target: "15:35", want: "Max height over [15, 35): 3"},
		"inside one area":   {target: "21:29", want: "Max height over [21, 29): 8"},
		"past the end":      {target: "30:50", want: "Max height over [30, 50): 0"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, "tower", "--target", tt.target, "10x5", "10x3", "10x8", "10x6")
			if err != nil {
				t.Fatalf("tower error = %v", err)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestRevealCommand(t *testing.T) {
	tests := map[string]struct {
		args []string
		want []string
	}{
		"scroll forward": {
			args: []string{"--current", "0", "--window", "100", "80:150"},
			want: []string{"Scroll → 50", "moved by +50"},
		},
		"scroll back": {
			args: []string{"--current", "100", "--window", "100", "20:60"},
			want: []string{"Scroll → 20", "moved by -80"},
		},
		"visible": {
			args: []string{"--current", "0", "--window", "100", "10:20"},
			want: []string{"Scroll → 0", "already visible"},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := execute(t, append([]string{"reveal"}, tt.args...)...)
			if err != nil {
				t.Fatalf("reveal error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestFlexCommandDuplicatePart(t *testing.T) {
	if _, err := execute(t, "flex", "--total", "10", "a=1", "a=2"); err == nil {
		t.Error("flex with duplicate parts error = nil, want error")
	}
}
