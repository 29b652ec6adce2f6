// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/internal/identity"
	"github.com/taibuivan/twittish/internal/notify"
	"github.com/taibuivan/twittish/internal/persist"
)

const testKey = "twittish:test"

func setupAdapter(t *testing.T) (*persist.Adapter, *miniredis.Miniredis) {
	t.Helper()

	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("seed-%d", n)
	}
	now := func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return persist.NewAdapter(persist.NewRedisKV(client), testKey, ids, now, logger), server
}

func TestAdapter_SaveLoadRoundTrip(t *testing.T) {
	adapter, _ := setupAdapter(t)
	ctx := context.Background()

	createdAt := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	original := &persist.Snapshot{
		Version: persist.SnapshotVersion,
		Users: []*identity.User{
			{ID: "u-1", Email: "a@x.com", Username: "amy", DisplayName: "Amy", CredentialSecret: "pw1"},
			{ID: "u-2", Username: "bob", DisplayName: "bob"},
		},
		Posts: []*content.Post{
			{
				ID:             "p-1",
				AuthorUsername: "amy",
				AuthorDisplay:  "Amy",
				Content:        "hi @bob #demo",
				CreatedAt:      createdAt,
				Seq:            1,
				LikedBy:        []string{"bob"},
				ReplyIDs:       []string{"p-2"},
			},
			{
				ID:             "p-2",
				AuthorUsername: "bob",
				AuthorDisplay:  "bob",
				Content:        "hello back",
				InReplyToID:    "p-1",
				CreatedAt:      createdAt.Add(time.Minute),
				Seq:            2,
			},
		},
		Notifications: []*notify.Notification{
			{
				ID:            "n-1",
				TargetUserID:  "u-2",
				Kind:          notify.KindMention,
				ActorUsername: "amy",
				PostID:        "p-1",
				CreatedAt:     createdAt,
			},
		},
		SessionUserID: "u-1",
	}

	require.NoError(t, adapter.Save(ctx, original))

	restored, err := adapter.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, original.Version, restored.Version)
	assert.Equal(t, original.SessionUserID, restored.SessionUserID)
	assert.ElementsMatch(t, original.Users, restored.Users)
	assert.ElementsMatch(t, original.Posts, restored.Posts)
	assert.ElementsMatch(t, original.Notifications, restored.Notifications)
}

func TestAdapter_Load_SeedsWhenAbsent(t *testing.T) {
	adapter, server := setupAdapter(t)
	ctx := context.Background()

	snapshot, err := adapter.Load(ctx)
	require.NoError(t, err)

	require.Len(t, snapshot.Users, 2)
	assert.Equal(t, "alice", snapshot.Users[0].Username)
	assert.Equal(t, "bob", snapshot.Users[1].Username)
	require.Len(t, snapshot.Posts, 2)
	assert.Empty(t, snapshot.Notifications)
	assert.Equal(t, snapshot.Users[0].ID, snapshot.SessionUserID, "first seed user is the active session")

	// The seed must be persisted immediately.
	assert.True(t, server.Exists(testKey))

	// Loading again yields the same state, not a fresh seed.
	again, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, snapshot.SessionUserID, again.SessionUserID)
	assert.Equal(t, snapshot.Users[0].ID, again.Users[0].ID)
}

func TestAdapter_Load_ReseedsOnCorruptPayload(t *testing.T) {
	adapter, server := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, server.Set(testKey, "{not json"))

	snapshot, err := adapter.Load(ctx)
	require.NoError(t, err, "corruption is recovered, not surfaced")
	require.Len(t, snapshot.Users, 2)

	// The replacement seed overwrote the corrupt payload.
	raw, err := server.Get(testKey)
	require.NoError(t, err)
	assert.Contains(t, raw, `"version":1`)
}

func TestAdapter_Load_ReseedsOnUnknownVersion(t *testing.T) {
	adapter, server := setupAdapter(t)
	ctx := context.Background()

	require.NoError(t, server.Set(testKey, `{"version":99,"users":[],"posts":[],"notifications":[]}`))

	snapshot, err := adapter.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, persist.SnapshotVersion, snapshot.Version)
	require.Len(t, snapshot.Users, 2)
}
