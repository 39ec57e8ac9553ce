// Package htmltext converts HTML fragments into plain text.
//
// Extraction rules in this project frequently end up holding a fragment of
// markup (a heading's inner HTML, a table cell, an anchor body) that needs
// to become a clean display string. Normalize is the single place that
// transformation happens so every extracted field is cleaned the same way.
package htmltext

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]+>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize strips tags, decodes HTML entities, and collapses all whitespace
// runs (including newlines) into single spaces, then trims the result.
// It is a pure function; empty input yields an empty string.
func Normalize(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
