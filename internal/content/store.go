// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package content stores posts and the thread-reply links between them.

# Architecture

The store keeps the global post sequence in memory and maintains the
bidirectional parent/reply invariant transactionally: a reply is inserted and
linked into its parent's ReplyIDs in one operation, or not at all. Author
resolution is delegated to the identity registry; reference extraction to
the annotate package.
*/
package content

import (
	"slices"
	"strings"
	"time"

	"github.com/taibuivan/twittish/internal/annotate"
	"github.com/taibuivan/twittish/internal/identity"
	"github.com/taibuivan/twittish/internal/platform/apperr"
	"github.com/taibuivan/twittish/pkg/slice"
)

// Store owns the global post sequence.
//
// # Concurrency
//
// Store is not safe for concurrent use on its own. The mutation engine
// serializes all writes and guards reads.
type Store struct {
	posts    []*Post
	registry *identity.Registry
	newID    func() string
	now      func() time.Time
	seq      int64
}

// NewStore constructs an empty [Store].
//
// # Parameters
//   - registry: Identity registry used to resolve authors at creation time.
//   - newID: Entity ID source.
//   - now: Clock source, injected for deterministic tests.
func NewStore(registry *identity.Registry, newID func() string, now func() time.Time) *Store {
	return &Store{
		registry: registry,
		newID:    newID,
		now:      now,
	}
}

// # Mutations (engine-only callers)

// CreatePost builds and inserts a post authored by authorUsername.
//
// The author must already exist — the mutation engine guarantees this by
// always passing the session user. Author display and avatar are snapshotted
// as of now. Root posts are inserted at the head of the global sequence
// (most-recent-first is a convenience; canonical ordering is always
// recomputed by the view resolver). Replies are appended at the tail and
// linked into the parent's ReplyIDs in the same operation.
//
// # Errors
//   - NOT_FOUND when the author or the referenced parent does not exist.
//     Nothing is applied in either case.
func (store *Store) CreatePost(authorUsername, content, mediaRef, inReplyToID string) (*Post, error) {
	author := store.registry.LookupByUsername(authorUsername)
	if author == nil {
		return nil, apperr.NotFound("User")
	}

	// Validate the parent reference before touching any state.
	var parent *Post
	if inReplyToID != "" {
		parent = store.FindByID(inReplyToID)
		if parent == nil {
			return nil, apperr.NotFound("Post")
		}
	}

	store.seq++
	post := &Post{
		ID:             store.newID(),
		AuthorUsername: author.Username,
		AuthorDisplay:  author.DisplayName,
		AuthorAvatar:   author.AvatarRef,
		Content:        content,
		MediaRef:       mediaRef,
		InReplyToID:    inReplyToID,
		CreatedAt:      store.now(),
		Seq:            store.seq,
	}

	if parent == nil {
		store.posts = append([]*Post{post}, store.posts...)
	} else {
		store.posts = append(store.posts, post)
		parent.ReplyIDs = append(parent.ReplyIDs, post.ID)
	}

	return post, nil
}

// ToggleLike flips username's membership in the post's like set and reports
// the resulting state, so the caller can decide whether to emit a
// notification (only on the transition into liked).
func (store *Store) ToggleLike(postID, username string) (bool, error) {
	post := store.FindByID(postID)
	if post == nil {
		return false, apperr.NotFound("Post")
	}

	if post.IsLikedBy(username) {
		post.LikedBy = slice.Filter(post.LikedBy, func(u string) bool { return u != username })
		return false, nil
	}

	post.LikedBy = append(post.LikedBy, username)
	return true, nil
}

// # Queries

// FindByID returns the post with the given id, or nil.
func (store *Store) FindByID(postID string) *Post {
	for _, post := range store.posts {
		if post.ID == postID {
			return post
		}
	}
	return nil
}

// Search returns posts whose content contains the query case-insensitively,
// or whose extracted tags contain the lowercased query as a substring.
//
// No ranking is applied; results keep the global sequence order. An empty
// query matches nothing.
func (store *Store) Search(query string) []*Post {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	return slice.Filter(store.posts, func(post *Post) bool {
		if strings.Contains(strings.ToLower(post.Content), q) {
			return true
		}
		return slices.ContainsFunc(annotate.ExtractTags(post.Content), func(tag string) bool {
			return strings.Contains(tag, q)
		})
	})
}

// All returns the global post sequence. Callers must treat it as read-only.
func (store *Store) All() []*Post {
	return store.posts
}

// # Snapshot plumbing

// Restore replaces the store contents with the given posts, preserving their
// order, and resumes the insertion counter past the highest persisted Seq.
func (store *Store) Restore(posts []*Post) {
	store.posts = posts
	store.seq = 0
	for _, post := range posts {
		if post.Seq > store.seq {
			store.seq = post.Seq
		}
	}
}
