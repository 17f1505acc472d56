// Package geom provides the immutable value types shared by the layout
// solver: one-dimensional offset ranges, line ranges, sizes, points and
// axis-aligned rectangles.
//
// All types are plain values. Every operation returns a new value and never
// mutates the receiver, so values can be shared freely between goroutines.
//
// # Degenerate input
//
// Margins may be negative (shrinking a range or rectangle). When a negative
// margin would invert a range, the result collapses to an empty range at the
// midpoint of the inverted bounds instead of panicking. Only the explicit
// constructors [NewOffsetRange] and [NewRect] reject inverted bounds.
package geom
