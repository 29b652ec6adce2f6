// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view turns a navigation target into an ordered post list.

# Architecture

Resolution is a pure read: candidate selection per target, an optional
media-only filter, then one canonical sort. The resolver never mutates state
and never fails — unknown references yield an empty list.
*/
package view

import (
	"slices"

	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/pkg/slice"
)

// Options filters the candidate set after target selection.
type Options struct {
	// MediaOnly drops posts without a media reference.
	MediaOnly bool
}

// Resolver resolves navigation targets against the content store.
type Resolver struct {
	store *content.Store
}

// NewResolver constructs a [Resolver] over the given store.
func NewResolver(store *content.Store) *Resolver {
	return &Resolver{store: store}
}

// Resolve returns the ordered post list for the target.
//
// # Ordering
//
// Descending CreatedAt, ties broken by descending insertion counter (most
// recently created-and-inserted first). The comparator is total: no two
// distinct posts compare equal, so the result is deterministic regardless
// of candidate order.
func (resolver *Resolver) Resolve(target Target, opts Options) []*content.Post {
	var candidates []*content.Post

	switch target.kind {
	case kindHome, kindLatest:
		// No following graph yet: both surface the full global set.
		candidates = slices.Clone(resolver.store.All())

	case kindProfile:
		candidates = slice.Filter(resolver.store.All(), func(post *content.Post) bool {
			return post.AuthorUsername == target.username
		})

	case kindThread:
		root := resolver.store.FindByID(target.postID)
		if root == nil {
			return nil
		}
		candidates = append([]*content.Post{root},
			slice.Filter(resolver.store.All(), func(post *content.Post) bool {
				return post.InReplyToID == root.ID
			})...)

	case kindSearch:
		candidates = slices.Clone(resolver.store.Search(target.query))

	case kindTagFilter:
		candidates = slices.Clone(resolver.store.Search(target.tag))
	}

	if opts.MediaOnly {
		candidates = slice.Filter(candidates, func(post *content.Post) bool {
			return post.MediaRef != ""
		})
	}

	slices.SortStableFunc(candidates, func(a, b *content.Post) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		// Equal timestamps: higher insertion counter first.
		switch {
		case b.Seq > a.Seq:
			return 1
		case b.Seq < a.Seq:
			return -1
		default:
			return 0
		}
	})

	return candidates
}
