// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/internal/identity"
	"github.com/taibuivan/twittish/internal/view"
	"github.com/taibuivan/twittish/pkg/slice"
)

// fixture builds a store with an advancing or frozen clock.
func fixture(t *testing.T, frozen bool) *content.Store {
	t.Helper()

	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	clock := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	now := func() time.Time {
		if !frozen {
			clock = clock.Add(time.Minute)
		}
		return clock
	}

	registry := identity.NewRegistry(ids)
	registry.EnsureUser("alice")
	registry.EnsureUser("bob")

	return content.NewStore(registry, ids, now)
}

func contents(posts []*content.Post) []string {
	return slice.Map(posts, func(p *content.Post) string { return p.Content })
}

func TestResolver_HomeAndLatest(t *testing.T) {
	store := fixture(t, false)
	mustPost(t, store, "alice", "first", "")
	mustPost(t, store, "bob", "second", "")
	mustPost(t, store, "alice", "third", "")

	resolver := view.NewResolver(store)

	home := resolver.Resolve(view.Home(), view.Options{})
	assert.Equal(t, []string{"third", "second", "first"}, contents(home))

	// Home and Latest surface the same candidate set.
	latest := resolver.Resolve(view.Latest(), view.Options{})
	assert.Equal(t, contents(home), contents(latest))
}

func TestResolver_Profile(t *testing.T) {
	store := fixture(t, false)
	mustPost(t, store, "alice", "mine", "")
	mustPost(t, store, "bob", "theirs", "")

	resolver := view.NewResolver(store)

	posts := resolver.Resolve(view.Profile("alice"), view.Options{})
	assert.Equal(t, []string{"mine"}, contents(posts))

	// Unknown usernames yield an empty list, never an error.
	assert.Empty(t, resolver.Resolve(view.Profile("ghost"), view.Options{}))
}

func TestResolver_Thread(t *testing.T) {
	store := fixture(t, false)
	root := mustPost(t, store, "alice", "root", "")
	mustPost(t, store, "bob", "unrelated", "")

	reply, err := store.CreatePost("bob", "reply", "", root.ID)
	require.NoError(t, err)

	resolver := view.NewResolver(store)

	posts := resolver.Resolve(view.Thread(root.ID), view.Options{})
	require.Len(t, posts, 2)
	// Newest first: the reply was created after the root.
	assert.Equal(t, reply.ID, posts[0].ID)
	assert.Equal(t, root.ID, posts[1].ID)

	assert.Empty(t, resolver.Resolve(view.Thread("no-such-id"), view.Options{}))
}

func TestResolver_SearchAndTagFilter(t *testing.T) {
	store := fixture(t, false)
	mustPost(t, store, "alice", "level design notes #gamedev", "")
	mustPost(t, store, "bob", "lunch", "")

	resolver := view.NewResolver(store)

	assert.Len(t, resolver.Resolve(view.Search("design"), view.Options{}), 1)
	assert.Len(t, resolver.Resolve(view.TagFilter("gamedev"), view.Options{}), 1)
	assert.Empty(t, resolver.Resolve(view.Search("nothing here"), view.Options{}))
}

func TestResolver_MediaOnly(t *testing.T) {
	store := fixture(t, false)
	mustPost(t, store, "alice", "plain", "")
	mustPost(t, store, "alice", "with media", "media://shot")

	resolver := view.NewResolver(store)

	posts := resolver.Resolve(view.Latest(), view.Options{MediaOnly: true})
	assert.Equal(t, []string{"with media"}, contents(posts))
}

// Equal timestamps resolve by reverse insertion order: [A,B,C] → [C,B,A].
func TestResolver_EqualTimestampTieBreak(t *testing.T) {
	store := fixture(t, true) // frozen clock: identical CreatedAt
	mustPost(t, store, "alice", "A", "")
	mustPost(t, store, "alice", "B", "")
	mustPost(t, store, "alice", "C", "")

	resolver := view.NewResolver(store)

	posts := resolver.Resolve(view.Latest(), view.Options{})
	assert.Equal(t, []string{"C", "B", "A"}, contents(posts))
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		route string
		want  string
		ok    bool
	}{
		{"home", "home", true},
		{"latest", "latest", true},
		{"profile:@alice", "profile:@alice", true},
		{"thread:abc123", "thread:abc123", true},
		{"search:level design", "search:level design", true},
		{"tag:gamedev", "tag:gamedev", true},
		{"profile:alice", "", false}, // missing @ marker
		{"profile:@", "", false},
		{"thread:", "", false},
		{"bogus", "", false},
		{"bogus:payload", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			target, ok := view.ParseTarget(tt.route)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, target.String())
			}
		})
	}
}

func mustPost(t *testing.T, store *content.Store, author, text, mediaRef string) *content.Post {
	t.Helper()
	post, err := store.CreatePost(author, text, mediaRef, "")
	require.NoError(t, err)
	return post
}
