package captions

import (
	"html"
	"regexp"
	"strings"
)

var (
	// tagRe matches inline markup: styling tags, <c> class wrappers, and
	// karaoke timestamp tags like <00:01:23.456>.
	tagRe = regexp.MustCompile(`<[^>]+>`)
	// bracketTimeRe matches literal "[1.2s - 3.4s]" span annotations that
	// appear in some auto-generated tracks.
	bracketTimeRe = regexp.MustCompile(`\[\d+\.\d+s\s*-\s*\d+\.\d+s\]`)
	// whitespaceRe collapses runs of whitespace, newlines included.
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize strips markup from raw cue text and canonicalizes whitespace.
// It is pure: the same input always yields the same output. Input that is
// nothing but markup or whitespace yields ""; the caller drops the
// resulting empty segments.
func Normalize(raw string) string {
	text := tagRe.ReplaceAllString(raw, "")
	text = bracketTimeRe.ReplaceAllString(text, "")
	text = html.UnescapeString(text)
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
