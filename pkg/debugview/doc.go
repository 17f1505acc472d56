// Package debugview records the intermediate rectangles of a placement pass
// and draws them as SVG.
//
// # Recording
//
// A [Recorder] implements [placement.DebugHook]. Pass it to the planner (or
// to the pipeline through its Debug option) and every stage the planner
// reports is kept in order:
//
//	rec := debugview.NewRecorder()
//	planner := placement.New(opts, placement.WithDebugHook(rec))
//	planner.Plan(in)
//	svg := debugview.RenderSVG(rec.Stages(), debugview.WithViewport(frame))
//
// # SVG Output
//
// [RenderSVG] draws each stage as its own group with a distinct color, so
// the available space per line, the chosen outline, the flex bands and the
// final editor rectangle can be compared at a glance. Options:
//
//   - [WithViewport]: outline the visible viewport
//   - [WithTitle]: caption the drawing
//   - [WithLabels]: print rectangle names next to each rectangle
package debugview
