// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package engine orchestrates multi-entity transactions over the Twittish state.

# Architecture

The engine exclusively owns write access to all entity collections and the
session pointer. Every mutation follows the same pipeline:

	validate → apply → emit notifications → persist → signal

A failed mutation applies nothing (validate-then-apply). A persistence
failure after the apply step is logged as a warning and does not roll back
the in-memory state — the mutation stays committed, unpersisted.

# Concurrency

All mutating operations are serialized through a single writer lock;
read-only queries run concurrently against a consistent snapshot under the
read side of the same lock. Nothing can observe a partially applied
mutation.
*/
package engine

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/twittish/internal/annotate"
	"github.com/taibuivan/twittish/internal/content"
	"github.com/taibuivan/twittish/internal/identity"
	"github.com/taibuivan/twittish/internal/notify"
	"github.com/taibuivan/twittish/internal/persist"
	"github.com/taibuivan/twittish/internal/platform/apperr"
	"github.com/taibuivan/twittish/internal/platform/validate"
	"github.com/taibuivan/twittish/internal/view"
	"github.com/taibuivan/twittish/pkg/uuidv7"
)

// MaxPostLength is the intended content budget in Unicode code points.
const MaxPostLength = 280

// Engine is the single writer over the Twittish entity graph.
type Engine struct {
	mu sync.RWMutex

	registry *identity.Registry
	store    *content.Store
	ledger   *notify.Ledger
	resolver *view.Resolver
	adapter  *persist.Adapter

	// sessionUserID is the session pointer: the currently authenticated
	// user's id, or empty when no session is active.
	sessionUserID string

	newID  func() string
	now    func() time.Time
	logger *slog.Logger

	subscribers []chan struct{}
}

// Option customizes an [Engine], mainly for deterministic tests.
type Option func(*Engine)

// WithIDSource replaces the default UUIDv7 ID source.
func WithIDSource(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// WithClock replaces the default time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New constructs an [Engine] over the given persistence adapter and restores
// the persisted state (seeding on first run).
func New(ctx context.Context, adapter *persist.Adapter, logger *slog.Logger, opts ...Option) (*Engine, error) {
	engine := &Engine{
		adapter: adapter,
		newID:   uuidv7.New,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(engine)
	}

	engine.registry = identity.NewRegistry(engine.newID)
	engine.store = content.NewStore(engine.registry, engine.newID, engine.now)
	engine.ledger = notify.NewLedger(engine.newID, engine.now)
	engine.resolver = view.NewResolver(engine.store)

	snapshot, err := adapter.Load(ctx)
	if err != nil {
		return nil, err
	}
	engine.restore(snapshot)

	return engine, nil
}

// restore loads a snapshot into the owned collections.
func (engine *Engine) restore(snapshot *persist.Snapshot) {
	engine.registry.Restore(snapshot.Users)
	engine.store.Restore(snapshot.Posts)
	engine.ledger.Restore(snapshot.Notifications)
	engine.sessionUserID = snapshot.SessionUserID
}

// snapshot assembles the current state for persistence. Callers hold the lock.
func (engine *Engine) snapshot() *persist.Snapshot {
	return &persist.Snapshot{
		Version:       persist.SnapshotVersion,
		Users:         engine.registry.All(),
		Posts:         engine.store.All(),
		Notifications: engine.ledger.All(),
		SessionUserID: engine.sessionUserID,
	}
}

// commit persists the state and signals subscribers. Callers hold the write
// lock and have already applied the mutation; a save failure is reported as
// a warning, never rolled back.
func (engine *Engine) commit(ctx context.Context) {
	if err := engine.adapter.Save(ctx, engine.snapshot()); err != nil {
		engine.logger.Warn("state mutated but snapshot save failed",
			slog.Any("error", err),
		)
	}
	engine.signal()
}

// # Session

// sessionUser resolves the session pointer, or fails with UNAUTHORIZED.
// Callers hold at least the read lock.
func (engine *Engine) sessionUser() (*identity.User, error) {
	if engine.sessionUserID == "" {
		return nil, apperr.Unauthorized("Login required")
	}
	user := engine.registry.LookupByID(engine.sessionUserID)
	if user == nil {
		// A stale pointer (e.g. hand-edited snapshot) behaves like no session.
		return nil, apperr.Unauthorized("Login required")
	}
	return user, nil
}

// CurrentUser returns the currently authenticated user, or nil.
func (engine *Engine) CurrentUser() *identity.User {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	user, err := engine.sessionUser()
	if err != nil {
		return nil
	}
	return user
}

// # Mutations

// CreatePost publishes a root post authored by the session user.
//
// Mentions in the text materialize placeholder users and each records a
// mention notification attributed to the author.
func (engine *Engine) CreatePost(ctx context.Context, text, mediaRef string) (*content.Post, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	author, err := engine.sessionUser()
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	v := &validate.Validator{}
	v.Required("content", text).MaxLen("content", text, MaxPostLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	post, err := engine.store.CreatePost(author.Username, text, strings.TrimSpace(mediaRef), "")
	if err != nil {
		return nil, err
	}

	engine.notifyMentions(author, post)
	engine.commit(ctx)

	return post, nil
}

// CreateReply publishes a reply to an existing post.
//
// The parent's author receives a reply notification unless they are the
// session user. Reply text is not scanned for mentions; only root posts
// trigger mention notifications.
func (engine *Engine) CreateReply(ctx context.Context, postID, text string) (*content.Post, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	author, err := engine.sessionUser()
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	v := &validate.Validator{}
	v.Required("content", text).MaxLen("content", text, MaxPostLength)
	if err := v.Err(); err != nil {
		return nil, err
	}

	parent := engine.store.FindByID(postID)
	if parent == nil {
		return nil, apperr.NotFound("Post")
	}

	reply, err := engine.store.CreatePost(author.Username, text, "", postID)
	if err != nil {
		return nil, err
	}

	if parentAuthor := engine.registry.LookupByUsername(parent.AuthorUsername); parentAuthor != nil && parentAuthor.ID != author.ID {
		engine.ledger.Record(notify.KindReply, author.Username, parentAuthor.ID, parent.ID)
	}

	engine.commit(ctx)

	return reply, nil
}

// ToggleLike flips the session user's like on a post and reports the
// resulting state. The post's author is notified only on the transition
// into liked, and never about their own likes.
func (engine *Engine) ToggleLike(ctx context.Context, postID string) (bool, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	user, err := engine.sessionUser()
	if err != nil {
		return false, err
	}

	liked, err := engine.store.ToggleLike(postID, user.Username)
	if err != nil {
		return false, err
	}

	if liked {
		post := engine.store.FindByID(postID)
		if author := engine.registry.LookupByUsername(post.AuthorUsername); author != nil && author.ID != user.ID {
			engine.ledger.Record(notify.KindLike, user.Username, author.ID, post.ID)
		}
	}

	engine.commit(ctx)

	return liked, nil
}

// Register creates a credentialed account and makes it the active session.
func (engine *Engine) Register(ctx context.Context, email, username, secret string) (*identity.User, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	user, err := engine.registry.Register(email, username, secret)
	if err != nil {
		return nil, err
	}

	engine.sessionUserID = user.ID
	engine.commit(ctx)

	return user, nil
}

// Login authenticates by identifier (resolved as username first, then
// email) and makes the matching user the active session.
func (engine *Engine) Login(ctx context.Context, identifier, secret string) (*identity.User, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	user, err := engine.registry.Authenticate(identifier, "", secret)
	if apperr.IsCode(err, apperr.CodeNotFound) {
		user, err = engine.registry.Authenticate("", identifier, secret)
	}
	if err != nil {
		return nil, err
	}

	engine.sessionUserID = user.ID
	engine.commit(ctx)

	return user, nil
}

// Logout clears the session pointer. Idempotent.
func (engine *Engine) Logout(ctx context.Context) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	engine.sessionUserID = ""
	engine.commit(ctx)

	return nil
}

// UpdateProfile replaces the session user's mutable profile fields.
func (engine *Engine) UpdateProfile(ctx context.Context, displayName, bio, avatarRef string) (*identity.User, error) {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	user, err := engine.sessionUser()
	if err != nil {
		return nil, err
	}

	updated, err := engine.registry.UpdateProfile(user.ID, displayName, bio, avatarRef)
	if err != nil {
		return nil, err
	}

	engine.commit(ctx)

	return updated, nil
}

// MarkNotificationsRead flips every notification for the session user to
// read. Idempotent.
func (engine *Engine) MarkNotificationsRead(ctx context.Context) error {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	user, err := engine.sessionUser()
	if err != nil {
		return err
	}

	engine.ledger.MarkAllRead(user.ID)
	engine.commit(ctx)

	return nil
}

// notifyMentions materializes placeholder users for every mention in the
// post and records a mention notification per target. Self-mentions are
// recorded too, matching the original behavior.
func (engine *Engine) notifyMentions(author *identity.User, post *content.Post) {
	for _, username := range annotate.ExtractMentions(post.Content) {
		target := engine.registry.EnsureUser(username)
		engine.ledger.Record(notify.KindMention, author.Username, target.ID, post.ID)
	}
}

// # Read surface

// Feed resolves a navigation target into an ordered post list.
func (engine *Engine) Feed(target view.Target, opts view.Options) []*content.Post {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return engine.resolver.Resolve(target, opts)
}

// FindPost returns the post with the given id, or nil.
func (engine *Engine) FindPost(postID string) *content.Post {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return engine.store.FindByID(postID)
}

// Notifications lists the session user's notifications in insertion order.
// It returns nil when no session is active.
func (engine *Engine) Notifications() []*notify.Notification {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	user, err := engine.sessionUser()
	if err != nil {
		return nil
	}
	return engine.ledger.ListFor(user.ID)
}

// UnreadCount reports the session user's unread notification count, zero
// when no session is active.
func (engine *Engine) UnreadCount() int {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	user, err := engine.sessionUser()
	if err != nil {
		return 0
	}
	return engine.ledger.UnreadCount(user.ID)
}

// SearchPosts returns posts matching the query in global sequence order.
func (engine *Engine) SearchPosts(query string) []*content.Post {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return engine.store.Search(query)
}

// SearchUsers returns users matching the query by username or display name.
func (engine *Engine) SearchUsers(query string) []*identity.User {
	engine.mu.RLock()
	defer engine.mu.RUnlock()

	return engine.registry.Search(query)
}

// # Change signal

// Subscribe returns a channel that receives a signal after every committed
// mutation. The send is non-blocking: a subscriber that has not drained the
// previous signal coalesces subsequent ones. Intended for presentation-layer
// re-rendering, never for data transfer.
func (engine *Engine) Subscribe() <-chan struct{} {
	engine.mu.Lock()
	defer engine.mu.Unlock()

	ch := make(chan struct{}, 1)
	engine.subscribers = append(engine.subscribers, ch)
	return ch
}

// signal fans the state-changed event out to subscribers. Callers hold the
// write lock.
func (engine *Engine) signal() {
	for _, ch := range engine.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
