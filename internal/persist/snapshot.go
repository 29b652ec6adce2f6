// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package persist

import (
	"time"

	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/internal/identity"
	"github.com/taibuivan/twittish/internal/notify"
)

// SnapshotVersion is the current snapshot schema version.
//
// The original format carried no version field; it is added here for forward
// compatibility. A snapshot with an unknown version is treated as corrupt
// (reseed) since no migration path exists yet.
const SnapshotVersion = 1

// Snapshot is the full persisted state, read and written as one unit.
type Snapshot struct {
	Version       int                    `json:"version"`
	Users         []*identity.User       `json:"users"`
	Posts         []*content.Post        `json:"posts"`
	Notifications []*notify.Notification `json:"notifications"`
	// SessionUserID points at the currently authenticated user; empty when
	// no session is active.
	SessionUserID string `json:"session_user_id,omitempty"`
}

// Seed builds the fixed first-run state: two sample users, two sample posts,
// no notifications, and the first seed user as the active session.
func Seed(newID func() string, now func() time.Time) *Snapshot {
	alice := &identity.User{
		ID:          newID(),
		Email:       "alice@example.com",
		Username:    "alice",
		DisplayName: "Alice",
		Bio:         "Front-end dev",
	}
	bob := &identity.User{
		ID:          newID(),
		Email:       "bob@example.com",
		Username:    "bob",
		DisplayName: "Bob",
		Bio:         "Game designer",
	}

	createdAt := now()
	posts := []*content.Post{
		{
			ID:             newID(),
			AuthorUsername: alice.Username,
			AuthorDisplay:  alice.DisplayName,
			Content:        "Hello Twittish! #firstpost",
			CreatedAt:      createdAt,
			Seq:            1,
		},
		{
			ID:             newID(),
			AuthorUsername: bob.Username,
			AuthorDisplay:  bob.DisplayName,
			Content:        "Working on level design today. @alice #gamedev",
			MediaRef:       "https://picsum.photos/seed/level/800/400",
			CreatedAt:      createdAt,
			Seq:            2,
		},
	}

	return &Snapshot{
		Version:       SnapshotVersion,
		Users:         []*identity.User{alice, bob},
		Posts:         posts,
		Notifications: []*notify.Notification{},
		SessionUserID: alice.ID,
	}
}
