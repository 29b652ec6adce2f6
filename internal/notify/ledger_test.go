// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/twittish/internal/notify"
)

func newTestLedger() *notify.Ledger {
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("n-%d", n)
	}
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := func() time.Time {
		base = base.Add(time.Second)
		return base
	}
	return notify.NewLedger(ids, now)
}

func TestLedger_Record(t *testing.T) {
	ledger := newTestLedger()

	entry := ledger.Record(notify.KindMention, "bob", "amy-id", "post-1")
	require.NotNil(t, entry)
	assert.Equal(t, notify.KindMention, entry.Kind)
	assert.Equal(t, "bob", entry.ActorUsername)
	assert.Equal(t, "amy-id", entry.TargetUserID)
	assert.Equal(t, "post-1", entry.PostID)
	assert.False(t, entry.Read)

	// No deduplication: repeated identical events each append.
	ledger.Record(notify.KindMention, "bob", "amy-id", "post-1")
	assert.Len(t, ledger.All(), 2)
}

func TestLedger_ListFor_InsertionOrder(t *testing.T) {
	ledger := newTestLedger()

	first := ledger.Record(notify.KindLike, "bob", "amy-id", "post-1")
	ledger.Record(notify.KindReply, "carol", "other-id", "post-2")
	second := ledger.Record(notify.KindReply, "carol", "amy-id", "post-1")

	entries := ledger.ListFor("amy-id")
	require.Len(t, entries, 2)
	assert.Same(t, first, entries[0], "oldest first")
	assert.Same(t, second, entries[1])
}

func TestLedger_UnreadCountAndMarkAllRead(t *testing.T) {
	ledger := newTestLedger()

	ledger.Record(notify.KindLike, "bob", "amy-id", "post-1")
	ledger.Record(notify.KindReply, "bob", "amy-id", "post-1")
	ledger.Record(notify.KindFollow, "bob", "other-id", "")

	assert.Equal(t, 2, ledger.UnreadCount("amy-id"))
	assert.Equal(t, 1, ledger.UnreadCount("other-id"))
	assert.Equal(t, 0, ledger.UnreadCount("nobody"))

	ledger.MarkAllRead("amy-id")
	assert.Equal(t, 0, ledger.UnreadCount("amy-id"))
	assert.Equal(t, 1, ledger.UnreadCount("other-id"), "other users' entries untouched")

	// Idempotent.
	ledger.MarkAllRead("amy-id")
	assert.Equal(t, 0, ledger.UnreadCount("amy-id"))

	// New entries after a bulk mark start unread again.
	ledger.Record(notify.KindLike, "carol", "amy-id", "post-2")
	assert.Equal(t, 1, ledger.UnreadCount("amy-id"))
}
