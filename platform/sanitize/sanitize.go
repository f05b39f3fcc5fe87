// Package sanitize provides text sanitization utilities for user-entered text.
package sanitize

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy drops every element and the contents of script and style.
	strictPolicy = bluemonday.StrictPolicy()
	// spaceRunRegex matches runs of horizontal whitespace
	spaceRunRegex = regexp.MustCompile(`[ \t]+`)
)

// StripHTML removes all HTML tags from a string, making it safe for text-only display.
// Entities are decoded afterwards so "Q&A" and "a < b" read as typed.
func StripHTML(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// Text sanitizes a chat line: tags are stripped, horizontal whitespace runs
// collapse to one space, and line breaks are kept.
func Text(s string) string {
	lines := strings.Split(StripHTML(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRunRegex.ReplaceAllString(line, " "))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
