/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package redistore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts Opts) (*Store, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
		server.Close()
	})

	return New(client, opts), server
}

func TestStoreAbsentKey(t *testing.T) {
	store, _ := newTestStore(t, Opts{})
	ctx := context.Background()

	timestamps, err := store.Get(ctx, "absent")
	require.NoError(t, err)
	require.Empty(t, timestamps)

	require.NoError(t, store.Delete(ctx, "absent"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestStoreSetGet(t *testing.T) {
	store, _ := newTestStore(t, Opts{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", []int64{100, 200, 200, 300}))

	timestamps, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, []int64{100, 200, 200, 300}, timestamps)

	require.NoError(t, store.Set(ctx, "user-1", []int64{400}))
	timestamps, err = store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, []int64{400}, timestamps)
}

func TestStoreDelete(t *testing.T) {
	store, server := newTestStore(t, Opts{})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", []int64{100}))
	require.True(t, server.Exists("rategate:user-1"))

	require.NoError(t, store.Delete(ctx, "user-1"))
	require.False(t, server.Exists("rategate:user-1"))
}

func TestStoreKeys(t *testing.T) {
	store, server := newTestStore(t, Opts{KeyPrefix: "throttle"})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", []int64{1}))
	require.NoError(t, store.Set(ctx, "b", []int64{2}))

	// Keys outside the prefix must not be picked up.
	require.NoError(t, server.Set("unrelated", "value"))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestStoreAppliesTTL(t *testing.T) {
	ttl := 30 * time.Second
	store, server := newTestStore(t, Opts{TTL: ttl})
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "user-1", []int64{100}))

	remaining := server.TTL("rategate:user-1")
	require.Greater(t, remaining, time.Duration(0))
	require.LessOrEqual(t, remaining, ttl)

	// Redis reclaims the key on its own once the TTL elapses.
	server.FastForward(ttl + time.Second)
	timestamps, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	require.Empty(t, timestamps)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	require.Empty(t, keys)
}

func TestStoreCorruptedValue(t *testing.T) {
	store, server := newTestStore(t, Opts{})
	ctx := context.Background()

	require.NoError(t, server.Set("rategate:user-1", "not-json"))

	_, err := store.Get(ctx, "user-1")
	require.ErrorContains(t, err, "decode timestamps")
}
