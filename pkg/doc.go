// Package pkg provides the libraries behind hintlayout's inline widget placement.
//
// # Overview
//
// hintlayout decides where an inline preview widget goes inside a scrollable
// text view. The widget sits to the right of the text, next to the anchor
// line when the surrounding lines leave enough room and on a nearby line
// otherwise. The pkg directory is organized into three areas:
//
//  1. Primitives - geometry and the small solvers the planner is built from
//  2. Planning - the placement planner, scenarios and the cached pipeline
//  3. Infrastructure - caching, configuration, errors, hooks and the HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	Scenario file (TOML/JSON)
//	         ↓
//	    [scenario] package (decode, validate, expand lines)
//	         ↓
//	    [pipeline] package (hash, cache lookup)
//	         ↓
//	    [placement] package (available space → outline → bands → editor)
//	         ↓
//	    Result rectangles (JSON, table, debug SVG)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/hintlayout/pkg/placement"
//	    "github.com/matzehuels/hintlayout/pkg/scenario"
//	)
//
//	sc, _ := scenario.Load("scenario.toml")
//	res, ok := placement.New(placement.DefaultOptions()).Plan(sc.Input())
//	if ok {
//	    fmt.Println(res.WidgetRect)
//	}
//
// # Main Packages
//
// ## Primitives
//
//   - [geom]: Sizes, offset ranges, line ranges and rectangles
//   - [flexbox]: Priority-phased distribution of a length among parts
//   - [tower]: Tallest tower over areas stacked edge to edge
//   - [nearest]: Nearest-first search around a starting index
//   - [scroll]: Minimal scroll that reveals a range
//
// ## Planning
//
//   - [placement]: The widget placement planner and its options
//   - [scenario]: Recorded planner inputs loaded from TOML or JSON
//   - [pipeline]: Cached, instrumented execution of the planner
//   - [debugview]: Recording and SVG rendering of intermediate rectangles
//
// ## Infrastructure
//
//   - [cache]: Placement cache with file, Redis and null backends
//   - [config]: TOML configuration
//   - [errors]: Coded errors and input validation
//   - [observability]: Hook registry and in-process counters
//   - [server]: HTTP API
//   - [buildinfo]: Version information set at build time
package pkg
