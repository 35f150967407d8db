/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"context"
	"time"
)

const millisPerSecond = 1000

// Opts represents options for constructing a Gate.
type Opts struct {
	// Backend is the storage for per-key timestamp sequences.
	// If nil, a new InMemoryBackend is used.
	Backend Backend

	// MetricsCollector is used to collect statistics about admitted and denied events.
	// It can be nil, in this case, metrics will be disabled.
	MetricsCollector MetricsCollector
}

// Gate is a sliding-window admission and accounting engine.
//
// Every public operation reads the current timestamp sequence for a key from
// the Backend, filters it against the current window, and (only in Hit and
// Cleanup) writes updated state back. The Gate owns no mutable per-key state
// and is safe to share across callers as long as the Backend provides the
// required consistency.
type Gate struct {
	limit            int
	window           time.Duration
	windowMs         int64
	category         string
	backend          Backend
	metricsCollector MetricsCollector

	now func() time.Time // overridden in tests
}

// New creates a new Gate with the default in-memory Backend.
func New(cfg *Config) *Gate {
	return NewWithOpts(cfg, Opts{})
}

// NewWithOpts creates a new Gate with an ability to specify a custom Backend
// and a metrics collector.
//
// cfg.Limit must be positive; the Gate does not validate it, all arithmetic
// assumes it. Zero cfg.Window and empty cfg.Category fall back to
// DefaultWindow and DefaultCategory.
func NewWithOpts(cfg *Config, opts Opts) *Gate {
	window := time.Duration(cfg.Window)
	if window <= 0 {
		window = DefaultWindow
	}
	category := cfg.Category
	if category == "" {
		category = DefaultCategory
	}
	backend := opts.Backend
	if backend == nil {
		backend = NewInMemoryBackend()
	}
	metricsCollector := opts.MetricsCollector
	if metricsCollector == nil {
		metricsCollector = disabledMetricsCollector
	}
	return &Gate{
		limit:            cfg.Limit,
		window:           window,
		windowMs:         window.Milliseconds(),
		category:         category,
		backend:          backend,
		metricsCollector: metricsCollector,
		now:              time.Now,
	}
}

// Check reports whether one more event for the key would currently be admitted.
// It has no side effect: nothing is recorded, and pruned state is not written back.
func (g *Gate) Check(ctx context.Context, key string) (bool, error) {
	valid, err := g.validTimestamps(ctx, key, g.now().UnixMilli())
	if err != nil {
		return false, err
	}
	return len(valid) < g.limit, nil
}

// Hit records a new event for the key if the key is under the limit.
//
// If the key is at or over the limit, a *RateLimitError is returned and
// nothing is recorded. Any other error comes from the Backend and is
// surfaced as-is. Hit is a read-modify-write over the Backend, see the
// package documentation for the concurrency implications.
func (g *Gate) Hit(ctx context.Context, key string) error {
	now := g.now().UnixMilli()
	valid, err := g.validTimestamps(ctx, key, now)
	if err != nil {
		return err
	}
	if len(valid) >= g.limit {
		g.metricsCollector.IncDeniedEvents()
		// The pruned sequence preserves arrival order, so its first element
		// is the oldest counted event and determines when the next slot frees up.
		return newRateLimitError(g.category, g.limit, g.window, ceilSeconds(valid[0]+g.windowMs-now))
	}
	if err := g.backend.Set(ctx, key, append(valid, now)); err != nil {
		return err
	}
	g.metricsCollector.IncAdmittedEvents()
	return nil
}

// Remaining returns how many more events for the key would currently be admitted.
// It never returns a negative value and has no side effect.
func (g *Gate) Remaining(ctx context.Context, key string) (int, error) {
	valid, err := g.validTimestamps(ctx, key, g.now().UnixMilli())
	if err != nil {
		return 0, err
	}
	if remaining := g.limit - len(valid); remaining > 0 {
		return remaining, nil
	}
	return 0, nil
}

// ResetIn returns the number of whole seconds (rounded up) until the oldest
// counted event for the key leaves the window. It returns 0 when the key has
// no unexpired recorded events. It has no side effect.
func (g *Gate) ResetIn(ctx context.Context, key string) (int, error) {
	now := g.now().UnixMilli()
	valid, err := g.validTimestamps(ctx, key, now)
	if err != nil {
		return 0, err
	}
	if len(valid) == 0 {
		return 0, nil
	}
	return ceilSeconds(valid[0]+g.windowMs-now), nil
}

// Cleanup prunes expired timestamps for all keys known to the Backend.
//
// Keys whose entire sequence has expired are deleted, sequences that shrank
// are written back, and untouched sequences cause no write at all. Cleanup is
// intended to run periodically and independently of request traffic to bound
// the growth of expired entries for keys that stop being hit, see CleanupWorker.
func (g *Gate) Cleanup(ctx context.Context) error {
	keys, err := g.backend.Keys(ctx)
	if err != nil {
		return err
	}

	now := g.now().UnixMilli()
	removedKeys := 0
	for _, key := range keys {
		stored, err := g.backend.Get(ctx, key)
		if err != nil {
			return err
		}
		valid := pruneTimestamps(stored, now-g.windowMs)
		switch {
		case len(valid) == 0:
			if err := g.backend.Delete(ctx, key); err != nil {
				return err
			}
			removedKeys++
		case len(valid) < len(stored):
			if err := g.backend.Set(ctx, key, valid); err != nil {
				return err
			}
		}
	}

	g.metricsCollector.IncCleanupSweeps()
	g.metricsCollector.AddCleanupRemovedKeys(removedKeys)
	return nil
}

func (g *Gate) validTimestamps(ctx context.Context, key string, nowMs int64) ([]int64, error) {
	stored, err := g.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return pruneTimestamps(stored, nowMs-g.windowMs), nil
}

// pruneTimestamps keeps the timestamps strictly inside the window, preserving order.
func pruneTimestamps(stored []int64, windowStartMs int64) []int64 {
	valid := make([]int64, 0, len(stored))
	for _, ts := range stored {
		if ts > windowStartMs {
			valid = append(valid, ts)
		}
	}
	return valid
}

// ceilSeconds converts milliseconds to whole seconds, rounding up and
// clamping negative values (clock skew, races) to 0.
func ceilSeconds(ms int64) int {
	if ms <= 0 {
		return 0
	}
	return int((ms + millisPerSecond - 1) / millisPerSecond)
}
