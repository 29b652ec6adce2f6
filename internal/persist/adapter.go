// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package persist serializes and restores the full Twittish state to an
external key-value byte store under one fixed key.

# Recovery Policy

An absent or unreadable snapshot is never a blocking failure: Load replaces
it with the fixed seed state and persists that seed immediately. The corrupt
case is logged as an informational event — data loss is inherent to a
corrupted local snapshot, so there is nothing better to do than start over.
*/
package persist

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/twittish/internal/platform/apperr"
)

// Adapter reads and writes the snapshot as one unit.
type Adapter struct {
	kv     KV
	key    string
	newID  func() string
	now    func() time.Time
	logger *slog.Logger
}

// NewAdapter constructs an [Adapter] over the given byte store.
//
// # Parameters
//   - kv: The external key-value store.
//   - key: The fixed key the snapshot lives under.
//   - newID, now: Sources used when the seed state must be materialized.
//   - logger: Structured logger for recovery events.
func NewAdapter(kv KV, key string, newID func() string, now func() time.Time, logger *slog.Logger) *Adapter {
	return &Adapter{
		kv:     kv,
		key:    key,
		newID:  newID,
		now:    now,
		logger: logger,
	}
}

// Save serializes the snapshot and writes it under the fixed key.
//
// It is called synchronously at the end of every successful mutation; the
// mutation engine treats a failure as a warning, not a rollback.
func (adapter *Adapter) Save(ctx context.Context, snapshot *Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("persist: encode snapshot: %w", err)
	}

	return adapter.kv.Set(ctx, adapter.key, raw)
}

// Load reads the snapshot from the store.
//
// An absent key yields the fixed seed state; an unparseable or
// unknown-version value is recovered the same way after logging a
// STORAGE_CORRUPT event. In both cases the seed is persisted immediately.
// Only a store read failure is returned as an error.
func (adapter *Adapter) Load(ctx context.Context) (*Snapshot, error) {
	raw, err := adapter.kv.Get(ctx, adapter.key)
	if err != nil {
		return nil, err
	}

	if raw == nil {
		adapter.logger.Info("no snapshot found, seeding",
			slog.String("key", adapter.key),
		)
		return adapter.reseed(ctx), nil
	}

	snapshot := &Snapshot{}
	if err := json.Unmarshal(raw, snapshot); err != nil {
		corrupt := apperr.StorageCorrupt(err)
		adapter.logger.Info("snapshot unreadable, reseeding",
			slog.String("key", adapter.key),
			slog.String("code", corrupt.Code),
			slog.Any("cause", corrupt.Cause),
		)
		return adapter.reseed(ctx), nil
	}

	if snapshot.Version != SnapshotVersion {
		corrupt := apperr.StorageCorrupt(fmt.Errorf("unknown snapshot version %d", snapshot.Version))
		adapter.logger.Info("snapshot version mismatch, reseeding",
			slog.String("key", adapter.key),
			slog.String("code", corrupt.Code),
			slog.Int("version", snapshot.Version),
		)
		return adapter.reseed(ctx), nil
	}

	return snapshot, nil
}

// reseed builds the seed state and persists it. A write failure here leaves
// the in-memory seed authoritative, mirroring the save policy for mutations.
func (adapter *Adapter) reseed(ctx context.Context) *Snapshot {
	seed := Seed(adapter.newID, adapter.now)

	if err := adapter.Save(ctx, seed); err != nil {
		adapter.logger.Warn("failed to persist seed snapshot",
			slog.String("key", adapter.key),
			slog.Any("error", err),
		)
	}

	return seed
}
