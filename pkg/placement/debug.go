package placement

import "github.com/matzehuels/hintlayout/pkg/geom"

// Debug stages reported to a DebugHook, in the order a pass emits them.
const (
	StageAvailableSpace = "available-space"
	StageOutline        = "outline"
	StageBands          = "bands"
	StageEditor         = "editor"
)

// DebugHook receives intermediate rectangles of a planning pass. Rectangles
// are viewport-relative. Implementations must not retain the map.
type DebugHook interface {
	Rects(stage string, rects map[string]geom.Rect)
}

// NopDebugHook discards everything.
type NopDebugHook struct{}

func (NopDebugHook) Rects(string, map[string]geom.Rect) {}

// DebugHookFunc adapts a function to DebugHook.
type DebugHookFunc func(stage string, rects map[string]geom.Rect)

func (f DebugHookFunc) Rects(stage string, rects map[string]geom.Rect) { f(stage, rects) }
