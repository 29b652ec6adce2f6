// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package content

import (
	"slices"
	"time"
)

// Post represents a short message, either a root post or a thread reply.
//
// AuthorDisplay and AuthorAvatarRef are denormalized snapshots of the
// author's profile taken at creation time. They are intentionally not
// live-updated when the author later edits their profile.
type Post struct {
	ID             string `json:"id"`
	AuthorUsername string `json:"author_username"`
	AuthorDisplay  string `json:"author_display"`
	AuthorAvatar   string `json:"author_avatar,omitempty"`
	// Content is free text, intended max 280 code units. The store does not
	// enforce the budget; the mutation engine does.
	Content  string `json:"content"`
	MediaRef string `json:"media_ref,omitempty"`
	// InReplyToID references the parent post; empty for root posts.
	InReplyToID string    `json:"in_reply_to_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	// Seq is a monotonic insertion counter. It makes the feed ordering
	// tie-break (reverse insertion order on equal timestamps) total, and it
	// is persisted so the ordering survives a snapshot round-trip.
	Seq int64 `json:"seq"`
	// LikedBy is a set of usernames, maintained without duplicates.
	LikedBy []string `json:"liked_by,omitempty"`
	// ReplyIDs holds child post ids in creation order, append-only.
	ReplyIDs []string `json:"reply_ids,omitempty"`
}

// IsLikedBy reports whether the given username is in the post's like set.
func (p *Post) IsLikedBy(username string) bool {
	return slices.Contains(p.LikedBy, username)
}

// IsRoot reports whether the post starts a thread.
func (p *Post) IsRoot() bool {
	return p.InReplyToID == ""
}
