package captions

// Segment is one timed unit of caption text. Parsers create segments with
// raw cue text; the extraction pipeline replaces the text with its
// normalized form exactly once, after which a segment is never mutated.
type Segment struct {
	// Start is the cue start time in seconds.
	Start float64 `json:"start_time"`
	// End is the cue end time in seconds. Always >= Start.
	End float64 `json:"end_time"`
	// Duration is End - Start, in seconds.
	Duration float64 `json:"duration"`
	// Text is the cue text.
	Text string `json:"text"`
}

// newSegment builds a segment from start/end times, clamping a negative
// span to zero duration rather than emitting End < Start.
func newSegment(start, end float64, text string) Segment {
	if end < start {
		end = start
	}
	return Segment{
		Start:    start,
		End:      end,
		Duration: end - start,
		Text:     text,
	}
}

// WithText returns a copy of the segment carrying different text.
func (s Segment) WithText(text string) Segment {
	s.Text = text
	return s
}

// Track describes one selectable caption source for a video. Tracks are
// produced by the platform client and consumed once by SelectTrack.
type Track struct {
	// LanguageCode is the track language (e.g. "en").
	LanguageCode string
	// Format is the wire format the track's payload is served in.
	Format FormatKind
	// SourceURL is the opaque reference used to fetch the raw payload.
	SourceURL string
	// AutoGenerated marks platform ASR tracks as opposed to
	// manually-authored subtitles.
	AutoGenerated bool
}
