// Copyright (c) 2026 Twittish. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package annotate extracts structured references (tags, mentions) from free
// post text.
//
// Both extractors are pure and total: they never fail, never touch shared
// state, and return an empty result for empty input. Tokenization is plain
// whitespace splitting; a token is a reference when it starts with the marker
// rune followed by at least one word character. The remainder of the token is
// kept verbatim (trailing punctuation included), matching the rendering
// layer's linkification.
package annotate

import (
	"regexp"
	"strings"
)

var (
	tagToken     = regexp.MustCompile(`^#\w`)
	mentionToken = regexp.MustCompile(`^@\w`)
)

// ExtractTags returns the tags referenced in text: "#" tokens with the marker
// stripped and the remainder lowercased, deduplicated preserving first
// occurrence order.
func ExtractTags(text string) []string {
	return extract(text, tagToken, strings.ToLower)
}

// ExtractMentions returns the usernames mentioned in text: "@" tokens with
// the marker stripped, deduplicated preserving order.
//
// No case folding is applied — mentions are case-sensitive matches against
// registry usernames, so "@Bob" and "@bob" are distinct references.
func ExtractMentions(text string) []string {
	return extract(text, mentionToken, func(s string) string { return s })
}

// extract runs the shared tokenize-match-dedup pipeline.
func extract(text string, token *regexp.Regexp, fold func(string) string) []string {
	var (
		result []string
		seen   = make(map[string]struct{})
	)

	for _, word := range strings.Fields(text) {
		if !token.MatchString(word) {
			continue
		}

		ref := fold(word[1:])
		if _, dup := seen[ref]; dup {
			continue
		}

		seen[ref] = struct{}{}
		result = append(result, ref)
	}

	return result
}
