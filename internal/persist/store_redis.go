// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// KV is the external key-value byte store the snapshot lives in.
//
// Get reports a missing key as (nil, nil) so the adapter can distinguish
// first-run from store failure.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// RedisKV implements [KV] over a Redis client.
type RedisKV struct {
	client *redis.Client
}

// NewRedisKV wraps an already-connected Redis client.
func NewRedisKV(client *redis.Client) *RedisKV {
	return &RedisKV{client: client}
}

// Get returns the raw bytes under key, or (nil, nil) when the key is absent.
func (kv *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	raw, err := kv.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("persist: redis get %q: %w", key, err)
	}
	return raw, nil
}

// Set writes the raw bytes under key with no expiry — the snapshot is the
// system of record, not a cache entry.
func (kv *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := kv.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("persist: redis set %q: %w", key, err)
	}
	return nil
}
