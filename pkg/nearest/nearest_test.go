package nearest

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindFirstMinimizeDistance(t *testing.T) {
	tests := map[string]struct {
		r        Range
		target   int
		accept   map[int]bool
		want     int
		wantOK   bool
		wantSeen []int
	}{
		"single accepted line": {
			r:        Range{First: 1, Last: 10},
			target:   5,
			accept:   map[int]bool{7: true},
			want:     7,
			wantOK:   true,
			wantSeen: []int{5, 6, 4, 7},
		},
		"target accepted": {
			r:        Range{First: 1, Last: 10},
			target:   5,
			accept:   map[int]bool{5: true, 6: true},
			want:     5,
			wantOK:   true,
			wantSeen: []int{5},
		},
		"tie favors line below": {
			r:        Range{First: 1, Last: 10},
			target:   5,
			accept:   map[int]bool{3: true, 7: true},
			want:     7,
			wantOK:   true,
			wantSeen: []int{5, 6, 4, 7},
		},
		"nothing accepted": {
			r:        Range{First: 2, Last: 4},
			target:   3,
			accept:   map[int]bool{1: true, 5: true},
			wantOK:   false,
			wantSeen: []int{3, 4, 2},
		},
		"upper bound is inclusive": {
			r:        Range{First: 1, Last: 3},
			target:   2,
			accept:   map[int]bool{3: true},
			want:     3,
			wantOK:   true,
			wantSeen: []int{2, 3},
		},
		"target before range walks down": {
			r:        Range{First: 2, Last: 4},
			target:   1,
			accept:   map[int]bool{3: true},
			want:     3,
			wantOK:   true,
			wantSeen: []int{2, 3},
		},
		"empty range": {
			r:        Range{First: 5, Last: 4},
			target:   5,
			accept:   map[int]bool{5: true},
			wantOK:   false,
			wantSeen: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var seen []int
			got, ok := FindFirstMinimizeDistance(tt.r, tt.target, func(line int) (int, bool) {
				seen = append(seen, line)
				if tt.accept[line] {
					return line * 100, true
				}
				return 0, false
			})
			if ok != tt.wantOK {
				t.Fatalf("FindFirstMinimizeDistance() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want*100 {
				t.Errorf("FindFirstMinimizeDistance() = %v, want %v", got, tt.want*100)
			}
			if diff := cmp.Diff(tt.wantSeen, seen); diff != "" {
				t.Errorf("probe order mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPrefixSums(t *testing.T) {
	got := PrefixSums([]float64{10, 20, 5})
	want := []float64{0, 10, 30, 35}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PrefixSums() mismatch (-want +got):\n%s", diff)
	}
	if got := PrefixSums(nil); len(got) != 1 || got[0] != 0 {
		t.Errorf("PrefixSums(nil) = %v, want [0]", got)
	}
}
