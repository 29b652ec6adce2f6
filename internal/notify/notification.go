// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notify

import "time"

// Kind classifies a notification event.
type Kind string

const (
	KindMention Kind = "mention" // Someone referenced the target in post text.
	KindLike    Kind = "like"    // Someone liked the target's post.
	KindReply   Kind = "reply"   // Someone replied to the target's post.
	KindFollow  Kind = "follow"  // Someone followed the target.
)

// Notification is a single entry in the append-only notification log.
//
// Entries are created only as a side effect of a mutation engine transaction
// and are never deleted; the read flag is the only mutation path, and it
// flips exclusively through the bulk mark-read operation.
type Notification struct {
	ID           string `json:"id"`
	TargetUserID string `json:"target_user_id"`
	Kind         Kind   `json:"kind"`
	// ActorUsername is who caused the event.
	ActorUsername string `json:"actor_username"`
	// PostID is present for mention, like, and reply events.
	PostID    string    `json:"post_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Read      bool      `json:"read"`
}
