/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/acronis/go-appkit/config"
	"github.com/acronis/go-appkit/log/logtest"
	"github.com/acronis/go-appkit/retry"
	"github.com/stretchr/testify/require"
)

func TestCleanupWorkerSweepsExpiredKeys(t *testing.T) {
	backend := NewInMemoryBackend()
	gate := NewWithOpts(&Config{Limit: 10, Window: config.TimeDuration(time.Second)}, Opts{Backend: backend})
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, backend.Set(ctx, "stale", []int64{expired, expired + 1}))
	require.NoError(t, gate.Hit(ctx, "active"))

	logRecorder := logtest.NewRecorder()
	worker := NewCleanupWorker(gate, logRecorder)
	require.NoError(t, worker.Run(ctx))

	keys, err := backend.Keys(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"active"}, keys)

	_, found := logRecorder.FindEntry("expired timestamps sweep finished")
	require.True(t, found)
}

func TestCleanupWorkerRetriesAndReportsFailure(t *testing.T) {
	backendErr := errors.New("storage unavailable")
	gate := NewWithOpts(&Config{Limit: 1}, Opts{Backend: &failingBackend{err: backendErr}})

	logRecorder := logtest.NewRecorder()
	worker := NewCleanupWorkerWithOpts(gate, logRecorder, CleanupWorkerOpts{
		RetryPolicy: retry.NewConstantBackoffPolicy(time.Millisecond, 2),
	})

	err := worker.Run(context.Background())
	require.ErrorIs(t, err, backendErr)

	_, found := logRecorder.FindEntry("expired timestamps sweep failed")
	require.True(t, found)
}

func TestNewPeriodicCleanupWorker(t *testing.T) {
	backend := NewInMemoryBackend()
	gate := NewWithOpts(&Config{Limit: 10, Window: config.TimeDuration(time.Second)}, Opts{Backend: backend})
	ctx := context.Background()

	expired := time.Now().Add(-time.Minute).UnixMilli()
	require.NoError(t, backend.Set(ctx, "stale", []int64{expired}))

	periodicWorker := NewPeriodicCleanupWorker(gate, 10*time.Millisecond, logtest.NewRecorder())

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() {
		done <- periodicWorker.Run(runCtx)
	}()

	require.Eventually(t, func() bool {
		return backend.Len() == 0
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
