package captions

import (
	"fmt"
	"strconv"
	"strings"
)

// parseVTT parses WebVTT content: a header line, then blank-line-separated
// cue blocks, each beginning with a "HH:MM:SS.mmm --> HH:MM:SS.mmm" timing
// line optionally followed by positioning directives, then text lines.
// Blocks without a valid timing line are skipped. Inline styling tags stay
// in the text; Normalize strips them later.
func parseVTT(content string) ([]Segment, error) {
	if !strings.Contains(content, "WEBVTT") && !strings.Contains(content, "-->") {
		return nil, fmt.Errorf("%w: missing WEBVTT header and timing lines", ErrUnrecognizedFormat)
	}

	lines := strings.Split(content, "\n")
	var segments []Segment

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !strings.Contains(line, "-->") {
			continue
		}

		parts := strings.SplitN(line, "-->", 2)
		if len(parts) != 2 {
			continue
		}

		start, err := parseVTTTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			continue
		}

		// Positioning directives ("align:start position:0%") follow the
		// end timestamp; only the first token is the timestamp.
		endField := strings.Fields(strings.TrimSpace(parts[1]))
		if len(endField) == 0 {
			continue
		}
		end, err := parseVTTTimestamp(endField[0])
		if err != nil {
			continue
		}

		// Collect text lines until a blank line or the next timing line.
		var text []string
		for i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next == "" || strings.Contains(next, "-->") {
				break
			}
			text = append(text, next)
			i++
		}

		if len(text) == 0 {
			continue
		}
		segments = append(segments, newSegment(start, end, strings.Join(text, " ")))
	}

	return segments, nil
}

// parseVTTTimestamp parses "HH:MM:SS.mmm" or "MM:SS.mmm" into seconds.
// A comma separator (SRT style) is tolerated.
func parseVTTTimestamp(ts string) (float64, error) {
	ts = strings.ReplaceAll(ts, ",", ".")
	parts := strings.Split(ts, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("invalid timestamp: %q", ts)
	}

	var total float64
	for _, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid timestamp: %q", ts)
		}
		total = total*60 + v
	}
	return total, nil
}
