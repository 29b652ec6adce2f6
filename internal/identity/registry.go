// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"strings"

	"github.com/taibuivan/twittish/internal/platform/apperr"
	"github.com/taibuivan/twittish/internal/platform/validate"
	"github.com/taibuivan/twittish/pkg/slice"
)

// Registry stores user records and resolves or creates users by name.
//
// # Concurrency
//
// Registry is not safe for concurrent use on its own. The mutation engine
// serializes all writes and guards reads; nothing else may hold a Registry.
type Registry struct {
	users []*User
	newID func() string
}

// NewRegistry constructs an empty [Registry] drawing IDs from the given source.
func NewRegistry(newID func() string) *Registry {
	return &Registry{newID: newID}
}

// # Lookups

// LookupByUsername returns the user with the given username, or nil.
// Matching is case-sensitive.
func (registry *Registry) LookupByUsername(username string) *User {
	for _, user := range registry.users {
		if user.Username == username {
			return user
		}
	}
	return nil
}

// LookupByEmail returns the user with the given non-empty email, or nil.
func (registry *Registry) LookupByEmail(email string) *User {
	if email == "" {
		return nil
	}
	for _, user := range registry.users {
		if user.Email == email {
			return user
		}
	}
	return nil
}

// LookupByID returns the user with the given id, or nil.
func (registry *Registry) LookupByID(id string) *User {
	for _, user := range registry.users {
		if user.ID == id {
			return user
		}
	}
	return nil
}

// # Mutations (engine-only callers)

// EnsureUser returns the user with the given username, creating and storing
// a placeholder (empty email/bio/avatar, no credential, display defaulting
// to the username) the first time the name is referenced. Idempotent.
func (registry *Registry) EnsureUser(username string) *User {
	if user := registry.LookupByUsername(username); user != nil {
		return user
	}

	user := &User{
		ID:          registry.newID(),
		Username:    username,
		DisplayName: username,
	}
	registry.users = append(registry.users, user)

	return user
}

// Register validates and creates a credentialed account.
//
// # Business Rules
//   - Email, username, and secret are all required (VALIDATION_ERROR).
//   - Email must be a parseable address (VALIDATION_ERROR).
//   - Any existing holder of the username — placeholder or not — blocks
//     registration with DUPLICATE_USERNAME. Placeholders materialized by
//     mentions are deliberately not claimable; see DESIGN.md.
//
// Session handling is the caller's responsibility: the engine stores the
// returned user as the new session pointer.
func (registry *Registry) Register(email, username, secret string) (*User, error) {
	v := &validate.Validator{}
	v.Required("email", email).
		Required("username", username).
		Required("secret", secret)
	if !v.HasErrors() {
		v.Email("email", email)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	if registry.LookupByUsername(username) != nil {
		return nil, apperr.DuplicateUsername(username)
	}

	user := &User{
		ID:               registry.newID(),
		Email:            email,
		Username:         username,
		DisplayName:      username,
		CredentialSecret: secret,
	}
	registry.users = append(registry.users, user)

	return user, nil
}

// Authenticate resolves a user by username (when non-empty) or email and
// checks the supplied secret against the stored one.
//
// A missing stored secret is treated as the empty string, so placeholder
// accounts only authenticate with an empty secret.
func (registry *Registry) Authenticate(username, email, secret string) (*User, error) {
	var user *User
	if username != "" {
		user = registry.LookupByUsername(username)
	} else {
		user = registry.LookupByEmail(email)
	}
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	if user.CredentialSecret != secret {
		return nil, apperr.InvalidCredentials()
	}

	return user, nil
}

// UpdateProfile mutates the mutable profile fields of the matching record.
func (registry *Registry) UpdateProfile(userID, displayName, bio, avatarRef string) (*User, error) {
	user := registry.LookupByID(userID)
	if user == nil {
		return nil, apperr.NotFound("User")
	}

	user.DisplayName = displayName
	user.Bio = bio
	user.AvatarRef = avatarRef

	return user, nil
}

// Search returns users whose username or display name contains the query
// case-insensitively, in insertion order. An empty query matches nothing.
func (registry *Registry) Search(query string) []*User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	return slice.Filter(registry.users, func(user *User) bool {
		return strings.Contains(strings.ToLower(user.Username), q) ||
			strings.Contains(strings.ToLower(user.DisplayName), q)
	})
}

// # Snapshot plumbing

// All returns the underlying user sequence in insertion order.
// Callers must treat the result as read-only.
func (registry *Registry) All() []*User {
	return registry.users
}

// Restore replaces the registry contents with the given users, preserving
// their order. Used exclusively by the persistence round-trip.
func (registry *Registry) Restore(users []*User) {
	registry.users = users
}
