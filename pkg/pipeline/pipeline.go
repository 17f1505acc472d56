// Package pipeline turns a scenario and planner options into a placement.
//
// This package is shared by the CLI and the HTTP API. It wraps the pure
// [placement.Planner] with the concerns the solver deliberately leaves out:
// input validation, result caching, structured logging and observability
// hooks. By centralizing them here both entry points behave identically.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Place(ctx, pipeline.Options{
//	    Scenario: sc,
//	    Planner:  placement.DefaultOptions(),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if result.Placed {
//	    fmt.Println(result.Placement.WidgetRect)
//	}
//
// Requests carrying a debug hook always run the solver, since a cached
// result would leave the hook without any intermediate rectangles.
package pipeline

import (
	"time"

	"github.com/matzehuels/hintlayout/pkg/errors"
	"github.com/matzehuels/hintlayout/pkg/observability"
	"github.com/matzehuels/hintlayout/pkg/placement"
	"github.com/matzehuels/hintlayout/pkg/scenario"
)

// cacheKeyType labels placement entries in cache hooks.
const cacheKeyType = "placement"

// Options configures a single placement run.
type Options struct {
	// Scenario is the frozen planner input. Required.
	Scenario *scenario.Scenario

	// Planner holds the solver tunables.
	Planner placement.Options

	// Debug receives intermediate rectangles. Setting it bypasses the cache.
	Debug placement.DebugHook

	// NoCache disables both cache lookup and cache writes.
	NoCache bool

	// Refresh skips the cache lookup but still stores the fresh result.
	Refresh bool
}

// Validate checks that the options describe a runnable placement.
func (o Options) Validate() error {
	if o.Scenario == nil {
		return errors.New(errors.ErrCodeInvalidInput, "scenario is required")
	}
	if err := o.Scenario.Validate(); err != nil {
		return err
	}
	if err := o.Planner.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid planner options")
	}
	return nil
}

func (o Options) useCache() bool {
	return !o.NoCache && o.Debug == nil
}

// Result is the outcome of a placement run.
type Result struct {
	// Placed is false when the planner produced no placement at all.
	Placed bool `json:"placed"`

	// Placement is the computed placement. Zero when Placed is false.
	Placement placement.Result `json:"result"`

	// ScenarioHash is the content hash of the scenario.
	ScenarioHash string `json:"scenario_hash"`

	// CacheHit reports whether the placement came from the cache.
	CacheHit bool `json:"cache_hit"`

	// PlanTime is the wall time spent in Place.
	PlanTime time.Duration `json:"plan_time_ns"`
}

// Outcome classifies the result for hooks and logs.
func (r *Result) Outcome() observability.Outcome {
	switch {
	case !r.Placed:
		return observability.OutcomeHidden
	case r.Placement.Fallback:
		return observability.OutcomeFallback
	default:
		return observability.OutcomePlaced
	}
}

// cachedPlacement is the payload stored in the cache.
type cachedPlacement struct {
	Placed    bool             `json:"placed"`
	Placement placement.Result `json:"result"`
}
