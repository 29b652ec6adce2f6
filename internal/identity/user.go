// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package identity defines user records and the registry that owns them.
//
// # Architecture
//
// The registry is a passive in-memory collection: it validates and applies
// identity operations but never persists or emits notifications. Those
// side effects belong to the mutation engine, which is the only writer.
package identity

// User represents a member of the Twittish platform.
//
// # Rules
//   - Username is unique (case-sensitive) and immutable once assigned.
//   - Email is unique among non-empty values.
//   - CredentialSecret is present only for accounts created through
//     registration; placeholder users have none.
//
// The persisted snapshot is the system of record, so CredentialSecret is
// serialized with the rest of the entity (single-user local state, no wire
// exposure).
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username"`
	// DisplayName is the mutable profile label shown next to the username.
	DisplayName string `json:"display_name"`
	Bio         string `json:"bio,omitempty"`
	// AvatarRef is an opaque reference to an avatar image. Empty means
	// "use a generated placeholder" — the presentation layer decides how.
	AvatarRef        string `json:"avatar_ref,omitempty"`
	CredentialSecret string `json:"credential_secret,omitempty"`
}

// IsPlaceholder reports whether the user was materialized by a mention or
// profile visit rather than created through registration.
func (u *User) IsPlaceholder() bool {
	return u.CredentialSecret == "" && u.Email == ""
}
