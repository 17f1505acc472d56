// Package placement positions a long-distance hint widget next to an anchor
// line without covering the text around it.
//
// A [Planner] reads a snapshot of line metrics, viewport metrics and the
// embedded preview's content metrics, and produces the widget rectangle, the
// inner editor rectangle and the horizontal scroll that reveals the
// interesting part of the preview. Planning is pure: the planner never
// mutates its inputs and holds no state between calls, so a single Planner
// can be shared across goroutines.
//
// # Algorithm
//
//  1. Collect a window of lines around the anchor, clipped to the document.
//  2. For each line, compute the free width to the right of its text.
//  3. Search outward from the anchor for the nearest line whose widget
//     outline fits into the free space of every line it covers.
//  4. Fall back to a fixed outline below the anchor when no line fits.
//  5. Split the outline into spaceBefore, content and spaceAfter bands.
//  6. Shrink the content band to the editor rectangle and compute the
//     scroll that reveals the preferred range.
//
// Any missing metric or infeasible band layout yields ok == false, and the
// caller should hide the widget for that pass.
package placement
