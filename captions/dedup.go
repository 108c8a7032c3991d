package captions

import "strings"

// Deduplicate runs a single forward pass over normalized segments and
// returns the segments worth keeping plus the deduplicated clean text.
//
// Auto-generated tracks roll their cues: each cue often repeats the
// previous cue's text with a few trailing words appended, or repeats it
// outright. Naively joining every cue duplicates most of the transcript.
// The pass keeps O(1) state (the last accepted text and the running
// clean-text accumulation) and handles each cue one of three ways:
//
//   - a cue whose text exactly equals the previous text is dropped
//   - a cue whose text extends the previous text (previous text is a
//     proper prefix) contributes only its new suffix to the clean text,
//     while the kept segment retains the full cue text for its time span
//   - anything else is wholly new content
//
// Comparison is exact; continuations that differ by trailing punctuation
// or an ASR correction are not recognized. Output preserves input order
// and never grows: len(kept) <= len(segments).
func Deduplicate(segments []Segment) ([]Segment, string) {
	var kept []Segment
	var clean strings.Builder
	last := ""

	for _, seg := range segments {
		text := seg.Text

		// Pure repeat of the previous cue.
		if text == last {
			continue
		}

		if last != "" && len(text) > len(last) && strings.HasPrefix(text, last) {
			// Continuation: only the suffix is new content.
			suffix := strings.TrimSpace(text[len(last):])
			if suffix != "" {
				appendClean(&clean, suffix)
			}
			kept = append(kept, seg)
		} else {
			appendClean(&clean, text)
			kept = append(kept, seg)
		}

		last = text
	}

	return kept, clean.String()
}

func appendClean(b *strings.Builder, text string) {
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(text)
}
