package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Counters is an in-process implementation of every hook interface. It keeps
// running totals that the HTTP server exposes at /v1/stats.
type Counters struct {
	plans        atomic.Int64
	placed       atomic.Int64
	fallbacks    atomic.Int64
	hidden       atomic.Int64
	planErrors   atomic.Int64
	planNanos    atomic.Int64
	cacheHits    atomic.Int64
	cacheMisses  atomic.Int64
	cacheSets    atomic.Int64
	cacheErrors  atomic.Int64
	requests     atomic.Int64
	serverErrors atomic.Int64
	clientErrors atomic.Int64
}

// Stats is a point-in-time copy of Counters.
type Stats struct {
	Plans        int64         `json:"plans"`
	Placed       int64         `json:"placed"`
	Fallbacks    int64         `json:"fallbacks"`
	Hidden       int64         `json:"hidden"`
	PlanErrors   int64         `json:"plan_errors"`
	PlanTime     time.Duration `json:"plan_time_ns"`
	CacheHits    int64         `json:"cache_hits"`
	CacheMisses  int64         `json:"cache_misses"`
	CacheSets    int64         `json:"cache_sets"`
	CacheErrors  int64         `json:"cache_errors"`
	Requests     int64         `json:"requests"`
	ClientErrors int64         `json:"client_errors"`
	ServerErrors int64         `json:"server_errors"`
}

// NewCounters creates zeroed counters.
func NewCounters() *Counters {
	return &Counters{}
}

func (c *Counters) OnPlanStart(context.Context, int, int) {
	c.plans.Add(1)
}

func (c *Counters) OnPlanComplete(_ context.Context, outcome Outcome, d time.Duration, err error) {
	c.planNanos.Add(int64(d))
	if err != nil {
		c.planErrors.Add(1)
		return
	}
	switch outcome {
	case OutcomePlaced:
		c.placed.Add(1)
	case OutcomeFallback:
		c.fallbacks.Add(1)
	case OutcomeHidden:
		c.hidden.Add(1)
	}
}

func (c *Counters) OnCacheHit(context.Context, string)          { c.cacheHits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string)         { c.cacheMisses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string, int)     { c.cacheSets.Add(1) }
func (c *Counters) OnCacheError(context.Context, string, error) { c.cacheErrors.Add(1) }

func (c *Counters) OnRequest(context.Context, string, string) { c.requests.Add(1) }

func (c *Counters) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	switch {
	case status >= 500:
		c.serverErrors.Add(1)
	case status >= 400:
		c.clientErrors.Add(1)
	}
}

// Snapshot returns the current totals.
func (c *Counters) Snapshot() Stats {
	return Stats{
		Plans:        c.plans.Load(),
		Placed:       c.placed.Load(),
		Fallbacks:    c.fallbacks.Load(),
		Hidden:       c.hidden.Load(),
		PlanErrors:   c.planErrors.Load(),
		PlanTime:     time.Duration(c.planNanos.Load()),
		CacheHits:    c.cacheHits.Load(),
		CacheMisses:  c.cacheMisses.Load(),
		CacheSets:    c.cacheSets.Load(),
		CacheErrors:  c.cacheErrors.Load(),
		Requests:     c.requests.Load(),
		ClientErrors: c.clientErrors.Load(),
		ServerErrors: c.serverErrors.Load(),
	}
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
