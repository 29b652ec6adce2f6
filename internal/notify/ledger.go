// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package notify keeps the append-only log of notification events.

The ledger applies no deduplication and no transition logic of its own:
deciding whether an event deserves an entry (for example, only the
transition into a liked state) is the mutation engine's job. The ledger
records what it is told, in order.
*/
package notify

import (
	"time"

	"github.com/taibuivan/twittish/pkg/slice"
)

// Ledger is the append-only notification log keyed by target user.
//
// # Concurrency
//
// Ledger is not safe for concurrent use on its own. The mutation engine
// serializes all writes and guards reads.
type Ledger struct {
	entries []*Notification
	newID   func() string
	now     func() time.Time
}

// NewLedger constructs an empty [Ledger].
func NewLedger(newID func() string, now func() time.Time) *Ledger {
	return &Ledger{newID: newID, now: now}
}

// Record appends a notification unconditionally and returns it.
func (ledger *Ledger) Record(kind Kind, actorUsername, targetUserID, postID string) *Notification {
	entry := &Notification{
		ID:            ledger.newID(),
		TargetUserID:  targetUserID,
		Kind:          kind,
		ActorUsername: actorUsername,
		PostID:        postID,
		CreatedAt:     ledger.now(),
	}
	ledger.entries = append(ledger.entries, entry)

	return entry
}

// UnreadCount returns the number of unread entries for the given user.
func (ledger *Ledger) UnreadCount(userID string) int {
	return slice.Reduce(ledger.entries, 0, func(count int, entry *Notification) int {
		if entry.TargetUserID == userID && !entry.Read {
			return count + 1
		}
		return count
	})
}

// ListFor returns every entry targeting the given user, in insertion order
// (oldest first). The presentation layer is free to reverse for display.
func (ledger *Ledger) ListFor(userID string) []*Notification {
	return slice.Filter(ledger.entries, func(entry *Notification) bool {
		return entry.TargetUserID == userID
	})
}

// MarkAllRead flips every entry for the given user to read. Idempotent.
func (ledger *Ledger) MarkAllRead(userID string) {
	for _, entry := range ledger.entries {
		if entry.TargetUserID == userID {
			entry.Read = true
		}
	}
}

// All returns the full log in insertion order, read-only for callers.
func (ledger *Ledger) All() []*Notification {
	return ledger.entries
}

// Restore replaces the log with the given entries, preserving order.
func (ledger *Ledger) Restore(entries []*Notification) {
	ledger.entries = entries
}
