package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hintlayout/pkg/cache"
	"github.com/matzehuels/hintlayout/pkg/observability"
	"github.com/matzehuels/hintlayout/pkg/placement"
)

// Runner encapsulates placement execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLPlacement,
	}
}

// Place validates opts, consults the cache and runs the planner on a miss.
//
// Cache failures never fail a placement: they are logged, reported to the
// cache hooks and treated as a miss.
func (r *Runner) Place(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	in := opts.Scenario.Input()
	hooks.OnPlanStart(ctx, in.AnchorLine, in.Lines.LineCount())
	start := time.Now()

	hash, err := opts.Scenario.Hash()
	if err != nil {
		hooks.OnPlanComplete(ctx, "", time.Since(start), err)
		return nil, err
	}
	result := &Result{ScenarioHash: hash}
	key := r.Keyer.PlacementKey(hash, opts.Planner)

	if opts.useCache() && !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			result.Placed = cached.Placed
			result.Placement = cached.Placement
			result.CacheHit = true
			return r.finish(ctx, result, start), nil
		}
	}

	planner := placement.New(opts.Planner, placement.WithDebugHook(opts.Debug))
	result.Placement, result.Placed = planner.Plan(in)

	if opts.useCache() {
		r.store(ctx, key, cachedPlacement{Placed: result.Placed, Placement: result.Placement})
	}
	return r.finish(ctx, result, start), nil
}

func (r *Runner) finish(ctx context.Context, result *Result, start time.Time) *Result {
	result.PlanTime = time.Since(start)
	observability.Pipeline().OnPlanComplete(ctx, result.Outcome(), result.PlanTime, nil)

	logger := r.Logger.With("scenario", shortHash(result.ScenarioHash))
	if !result.Placed {
		logger.Debug("no placement", "cache_hit", result.CacheHit, "duration", result.PlanTime)
		return result
	}
	logger.Debug("placed widget",
		"anchor", result.Placement.AnchorLine,
		"line", result.Placement.PlacedLine,
		"fallback", result.Placement.Fallback,
		"cache_hit", result.CacheHit,
		"duration", result.PlanTime)
	return result
}

func (r *Runner) lookup(ctx context.Context, key string) (cachedPlacement, bool) {
	var cached cachedPlacement
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		observability.Cache().OnCacheError(ctx, cacheKeyType, err)
		return cached, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return cached, false
	}
	if err := json.Unmarshal(data, &cached); err != nil {
		// If deserialization fails, fall through to recompute
		r.Logger.Warn("discarding corrupt cache entry", "error", err)
		observability.Cache().OnCacheError(ctx, cacheKeyType, err)
		return cached, false
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, v cachedPlacement) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Warn("encode placement for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		observability.Cache().OnCacheError(ctx, cacheKeyType, err)
		return
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
