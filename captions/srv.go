package captions

import (
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"
)

// The XML timed-text format comes in two sub-variants: srv1-style
// <text start="12.34" dur="5.6"> with float-second attributes, and
// srv3-style <p t="12340" d="5600"> with integer-millisecond attributes.
// Both are matched per element; a malformed element simply doesn't match
// and is skipped.
var (
	srvTextRe = regexp.MustCompile(`(?s)<text\b([^>]*)>(.*?)</text>`)
	srvParaRe = regexp.MustCompile(`(?s)<p\b([^>]*)>(.*?)</p>`)
	srvAttrRe = regexp.MustCompile(`([a-zA-Z]+)="([^"]*)"`)
)

// parseSRV parses XML timed-text content, normalizing both sub-variants
// to seconds and decoding escaped entities in the cue text.
func parseSRV(content string) ([]Segment, error) {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "<") {
		return nil, fmt.Errorf("%w: not an XML document", ErrUnrecognizedFormat)
	}
	if !strings.Contains(trimmed, "<text") && !strings.Contains(trimmed, "<p") {
		return nil, fmt.Errorf("%w: no timed-text cue elements", ErrUnrecognizedFormat)
	}

	var segments []Segment

	for _, match := range srvTextRe.FindAllStringSubmatch(content, -1) {
		attrs := parseAttrs(match[1])
		start, ok := parseSeconds(attrs["start"])
		if !ok {
			continue
		}
		dur, _ := parseSeconds(attrs["dur"])
		appendCue(&segments, start, start+dur, match[2])
	}

	for _, match := range srvParaRe.FindAllStringSubmatch(content, -1) {
		attrs := parseAttrs(match[1])
		startMs, err := strconv.ParseInt(attrs["t"], 10, 64)
		if err != nil {
			continue
		}
		durMs, _ := strconv.ParseInt(attrs["d"], 10, 64)
		start := float64(startMs) / 1000.0
		appendCue(&segments, start, start+float64(durMs)/1000.0, match[2])
	}

	return segments, nil
}

// appendCue decodes entities and drops cues whose text is empty on the wire.
func appendCue(segments *[]Segment, start, end float64, raw string) {
	text := html.UnescapeString(raw)
	if strings.TrimSpace(text) == "" {
		return
	}
	*segments = append(*segments, newSegment(start, end, text))
}

// parseAttrs extracts name="value" pairs from an element's attribute list.
func parseAttrs(s string) map[string]string {
	attrs := make(map[string]string)
	for _, m := range srvAttrRe.FindAllStringSubmatch(s, -1) {
		attrs[m[1]] = m[2]
	}
	return attrs
}

// parseSeconds parses a float-second attribute value.
func parseSeconds(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}
