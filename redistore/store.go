/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

// Package redistore provides a Redis-backed rategate.Backend.
//
// Timestamp sequences are stored as JSON-encoded arrays under prefixed string
// keys. An optional per-key TTL lets Redis reclaim idle keys on its own, which
// complements (but does not replace) Gate.Cleanup sweeps.
package redistore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	rategate "github.com/rezzedai/rate-gate"
)

// DefaultKeyPrefix is a default prefix for all Redis keys managed by the Store.
const DefaultKeyPrefix = "rategate"

const scanBatchSize = 100

// Opts represents options for constructing a Store.
type Opts struct {
	// KeyPrefix is prepended (with a ":" separator) to every key.
	// If empty, DefaultKeyPrefix is used.
	KeyPrefix string

	// TTL is applied to every key on each Set call. Zero means no expiration.
	// A TTL of at least the Gate's window keeps idle keys from accumulating
	// without ever cutting live entries short.
	TTL time.Duration
}

// Store is a rategate.Backend that keeps per-key timestamp sequences in Redis.
//
// Individual operations map to single Redis commands, but the Get/Set pair
// performed by Gate.Hit is not atomic, the limitation described in the
// rategate package documentation applies to this backend as well.
type Store struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

var _ rategate.Backend = (*Store)(nil)

// New creates a new Store using the provided Redis client.
func New(client redis.UniversalClient, opts Opts) *Store {
	keyPrefix := opts.KeyPrefix
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Store{client: client, keyPrefix: keyPrefix, ttl: opts.TTL}
}

// Get implements rategate.Backend.
func (s *Store) Get(ctx context.Context, key string) ([]int64, error) {
	data, err := s.client.Get(ctx, s.storageKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var timestamps []int64
	if err := json.Unmarshal(data, &timestamps); err != nil {
		return nil, fmt.Errorf("decode timestamps: %w", err)
	}
	return timestamps, nil
}

// Set implements rategate.Backend.
func (s *Store) Set(ctx context.Context, key string, timestamps []int64) error {
	data, err := json.Marshal(timestamps)
	if err != nil {
		return fmt.Errorf("encode timestamps: %w", err)
	}
	if err := s.client.Set(ctx, s.storageKey(key), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete implements rategate.Backend.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.storageKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Keys implements rategate.Backend. It enumerates keys with SCAN,
// so the result is not a point-in-time snapshot under concurrent writes.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := s.client.Scan(ctx, 0, s.storageKey("*"), scanBatchSize).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.keyPrefix+":"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

func (s *Store) storageKey(key string) string {
	return s.keyPrefix + ":" + key
}
