package scroll

import (
	"testing"

	"github.com/matzehuels/hintlayout/pkg/geom"
)

func TestToReveal(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		window  float64
		target  geom.OffsetRange
		want    float64
	}{
		{"already visible", 10, 40, geom.NewOffsetRange(20, 30), 10},
		{"overflows end", 10, 40, geom.NewOffsetRange(50, 80), 40},
		{"longer than window", 10, 40, geom.NewOffsetRange(20, 100), 20},
		{"zero window", 10, 0, geom.NewOffsetRange(20, 30), 20},
		{"before start", 50, 40, geom.NewOffsetRange(20, 30), 20},
		{"flush with end", 10, 40, geom.NewOffsetRange(40, 50), 10},
		{"empty target inside", 10, 40, geom.NewOffsetRange(25, 25), 10},
		{"empty target after", 10, 40, geom.NewOffsetRange(70, 70), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToReveal(tt.current, tt.window, tt.target)
			if got != tt.want {
				t.Errorf("ToReveal(%v, %v, %v) = %v, want %v", tt.current, tt.window, tt.target, got, tt.want)
			}
			if again := ToReveal(got, tt.window, tt.target); again != got {
				t.Errorf("ToReveal() not idempotent: %v then %v", got, again)
			}
		})
	}
}
