// Package captions implements the caption retrieval core: parsing the three
// wire formats YouTube serves caption tracks in, normalizing cue text,
// deduplicating the rolling repetition of auto-generated streams, and
// selecting a track from the set a video offers.
package captions

import (
	"errors"
	"fmt"
)

// FormatKind identifies one of the supported caption wire formats.
type FormatKind string

const (
	// FormatVTT is the WebVTT format.
	FormatVTT FormatKind = "vtt"
	// FormatJSON3 is YouTube's internal JSON3 event-list format.
	FormatJSON3 FormatKind = "json3"
	// FormatSRV is YouTube's XML timed-text format (srv1/srv3 variants).
	FormatSRV FormatKind = "srv"
)

// ErrUnrecognizedFormat indicates a payload that is structurally not the
// declared format at all, as opposed to a valid payload that simply
// contains no cues.
var ErrUnrecognizedFormat = errors.New("captions: payload does not match declared format")

// DefaultFormatPreference is the fixed selection order: WebVTT and JSON3
// are denser and cheaper to parse correctly than the XML variant.
func DefaultFormatPreference() []FormatKind {
	return []FormatKind{FormatVTT, FormatJSON3, FormatSRV}
}

// ParseFormatKind converts a string to a FormatKind.
func ParseFormatKind(s string) (FormatKind, error) {
	switch FormatKind(s) {
	case FormatVTT, FormatJSON3, FormatSRV:
		return FormatKind(s), nil
	default:
		return "", fmt.Errorf("unknown caption format: %q", s)
	}
}

// Parse dispatches a raw caption payload to the parser for the given kind.
// Parsers return cue text verbatim, embedded markup included; stripping
// happens in Normalize. A structurally valid payload with zero cues yields
// an empty slice and a nil error.
func Parse(payload string, kind FormatKind) ([]Segment, error) {
	switch kind {
	case FormatVTT:
		return parseVTT(payload)
	case FormatJSON3:
		return parseJSON3(payload)
	case FormatSRV:
		return parseSRV(payload)
	default:
		return nil, fmt.Errorf("unknown caption format: %q", kind)
	}
}
