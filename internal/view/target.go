// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import "strings"

// targetKind discriminates the closed set of navigation targets.
type targetKind int

const (
	kindHome targetKind = iota
	kindLatest
	kindProfile
	kindThread
	kindSearch
	kindTagFilter
)

// Target is a navigation destination: a closed tagged variant replacing the
// original prefix-string routes, so resolution never string-matches.
//
// The zero value is Home.
type Target struct {
	kind     targetKind
	username string
	postID   string
	query    string
	tag      string
}

// Home targets the home feed. Without a following graph it surfaces the
// entire global post set, same as [Latest]; the two stay distinct variants
// so personalization can later split them without touching callers.
func Home() Target { return Target{kind: kindHome} }

// Latest targets the reverse-chronological global feed.
func Latest() Target { return Target{kind: kindLatest} }

// Profile targets the posts authored by the given username.
func Profile(username string) Target {
	return Target{kind: kindProfile, username: username}
}

// Thread targets a root post and its direct replies.
func Thread(postID string) Target {
	return Target{kind: kindThread, postID: postID}
}

// Search targets posts matching a free-text query.
func Search(query string) Target {
	return Target{kind: kindSearch, query: query}
}

// TagFilter targets posts carrying the given tag.
func TagFilter(tag string) Target {
	return Target{kind: kindTagFilter, tag: tag}
}

// String renders the target in the route grammar accepted by [ParseTarget].
func (t Target) String() string {
	switch t.kind {
	case kindLatest:
		return "latest"
	case kindProfile:
		return "profile:@" + t.username
	case kindThread:
		return "thread:" + t.postID
	case kindSearch:
		return "search:" + t.query
	case kindTagFilter:
		return "tag:" + t.tag
	default:
		return "home"
	}
}

// ParseTarget parses the route grammar:
//
//	home | latest | profile:@<username> | thread:<postId> |
//	search:<query> | tag:<tag>
//
// It reports false for anything else, including profile routes missing the
// "@" marker and routes with empty payloads.
func ParseTarget(route string) (Target, bool) {
	switch {
	case route == "home":
		return Home(), true
	case route == "latest":
		return Latest(), true
	}

	prefix, payload, found := strings.Cut(route, ":")
	if !found || payload == "" {
		return Target{}, false
	}

	switch prefix {
	case "profile":
		username := strings.TrimPrefix(payload, "@")
		if username == payload || username == "" {
			return Target{}, false
		}
		return Profile(username), true
	case "thread":
		return Thread(payload), true
	case "search":
		return Search(payload), true
	case "tag":
		return TagFilter(payload), true
	default:
		return Target{}, false
	}
}
