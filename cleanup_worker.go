/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"context"
	"time"

	"github.com/acronis/go-appkit/log"
	"github.com/acronis/go-appkit/retry"
	"github.com/acronis/go-appkit/service"
)

// DefaultCleanupInterval is a default interval between two cleanup sweeps.
const DefaultCleanupInterval = time.Minute

const (
	defaultCleanupRetryInterval    = 100 * time.Millisecond
	defaultCleanupMaxRetryAttempts = 3
)

// CleanupWorker runs one Gate.Cleanup sweep per Run invocation, retrying
// transient Backend failures according to the configured policy.
// It implements service.Worker and is usually scheduled with
// service.PeriodicWorker (see NewPeriodicCleanupWorker).
type CleanupWorker struct {
	gate        *Gate
	logger      log.FieldLogger
	retryPolicy retry.Policy
}

var _ service.Worker = (*CleanupWorker)(nil)

// CleanupWorkerOpts contains optional parameters for constructing CleanupWorker.
type CleanupWorkerOpts struct {
	// RetryPolicy defines how Backend failures during a sweep are retried.
	// If nil, an exponential backoff policy with a small number of attempts is used.
	RetryPolicy retry.Policy
}

// NewCleanupWorker creates a new CleanupWorker for the provided Gate.
func NewCleanupWorker(gate *Gate, logger log.FieldLogger) *CleanupWorker {
	return NewCleanupWorkerWithOpts(gate, logger, CleanupWorkerOpts{})
}

// NewCleanupWorkerWithOpts creates a new CleanupWorker
// with an ability to specify different optional parameters.
func NewCleanupWorkerWithOpts(gate *Gate, logger log.FieldLogger, opts CleanupWorkerOpts) *CleanupWorker {
	retryPolicy := opts.RetryPolicy
	if retryPolicy == nil {
		retryPolicy = retry.NewExponentialBackoffPolicy(defaultCleanupRetryInterval, defaultCleanupMaxRetryAttempts)
	}
	return &CleanupWorker{gate: gate, logger: logger, retryPolicy: retryPolicy}
}

// Run performs a single cleanup sweep. Implements service.Worker.
func (w *CleanupWorker) Run(ctx context.Context) error {
	start := time.Now()
	if err := retry.DoWithRetry(ctx, w.retryPolicy, nil, nil, w.gate.Cleanup); err != nil {
		w.logger.Error("expired timestamps sweep failed", log.Error(err))
		return err
	}
	w.logger.Info("expired timestamps sweep finished", log.DurationIn(time.Since(start), time.Millisecond))
	return nil
}

// NewPeriodicCleanupWorker wraps a CleanupWorker into a service.PeriodicWorker
// that sweeps expired entries every interval until the context is canceled.
// Pass a non-positive interval to use DefaultCleanupInterval.
func NewPeriodicCleanupWorker(gate *Gate, interval time.Duration, logger log.FieldLogger) *service.PeriodicWorker {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	return service.NewPeriodicWorker(NewCleanupWorker(gate, logger), interval, logger)
}
