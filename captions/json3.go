package captions

import (
	"encoding/json"
	"fmt"
	"strings"
)

// json3Event is a single timed event in a JSON3 payload. Events without
// segs carry window metadata, not text.
type json3Event struct {
	TStartMs    int64      `json:"tStartMs"`
	DDurationMs int64      `json:"dDurationMs"`
	Segs        []json3Seg `json:"segs"`
}

// json3Seg is one text run within an event.
type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// parseJSON3 parses YouTube's JSON3 event-list format. Offsets are in
// milliseconds; runs within an event are concatenated.
func parseJSON3(content string) ([]Segment, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("%w: not a JSON document: %v", ErrUnrecognizedFormat, err)
	}

	raw, ok := doc["events"]
	if !ok {
		return nil, fmt.Errorf("%w: missing events list", ErrUnrecognizedFormat)
	}

	var events []json3Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, fmt.Errorf("%w: malformed events list: %v", ErrUnrecognizedFormat, err)
	}

	var segments []Segment
	for _, event := range events {
		if len(event.Segs) == 0 {
			continue
		}

		var text strings.Builder
		for _, seg := range event.Segs {
			text.WriteString(seg.UTF8)
		}
		if strings.TrimSpace(text.String()) == "" {
			continue
		}

		start := float64(event.TStartMs) / 1000.0
		end := start + float64(event.DDurationMs)/1000.0
		segments = append(segments, newSegment(start, end, text.String()))
	}

	return segments, nil
}
