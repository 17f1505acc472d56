package debugview

import (
	"maps"
	"sync"

	"github.com/matzehuels/hintlayout/pkg/geom"
	"github.com/matzehuels/hintlayout/pkg/placement"
)

// Stage is the set of rectangles reported for one planner stage.
type Stage struct {
	Name  string
	Rects map[string]geom.Rect
}

// Recorder collects debug stages in the order they are reported.
// It is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	stages []Stage
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Rects implements placement.DebugHook.
func (r *Recorder) Rects(stage string, rects map[string]geom.Rect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = append(r.stages, Stage{Name: stage, Rects: maps.Clone(rects)})
}

// Stages returns a copy of the recorded stages.
func (r *Recorder) Stages() []Stage {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Stage, len(r.stages))
	for i, s := range r.stages {
		out[i] = Stage{Name: s.Name, Rects: maps.Clone(s.Rects)}
	}
	return out
}

// Stage returns the last recorded stage with the given name.
func (r *Recorder) Stage(name string) (Stage, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.stages) - 1; i >= 0; i-- {
		if r.stages[i].Name == name {
			return Stage{Name: name, Rects: maps.Clone(r.stages[i].Rects)}, true
		}
	}
	return Stage{}, false
}

// Reset discards all recorded stages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stages = nil
}

var _ placement.DebugHook = (*Recorder)(nil)
