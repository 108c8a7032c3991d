package captions

import "errors"

// ErrNoCaptions indicates no caption track matched the selection policy.
// A video without tracks is an expected terminal state, not a malformed
// input.
var ErrNoCaptions = errors.New("captions: no captions available")

// SelectTrack picks one track from the set a video offers.
//
// Policy: only tracks in the requested language are considered; falling
// back to another language would silently corrupt the clean-text output.
// Among matches, manually-authored tracks beat auto-generated ones, and
// formats are preferred in the given order (DefaultFormatPreference when
// prefs is empty). Selection is deterministic regardless of input order.
func SelectTrack(tracks []Track, language string, prefs []FormatKind) (Track, error) {
	if len(tracks) == 0 {
		return Track{}, ErrNoCaptions
	}
	if len(prefs) == 0 {
		prefs = DefaultFormatPreference()
	}

	rank := make(map[FormatKind]int, len(prefs))
	for i, kind := range prefs {
		rank[kind] = i
	}

	best := Track{}
	bestScore := -1
	for _, track := range tracks {
		if track.LanguageCode != language {
			continue
		}
		formatRank, ok := rank[track.Format]
		if !ok {
			continue
		}

		// Manual beats auto; format preference ranks within each group.
		score := formatRank
		if track.AutoGenerated {
			score += len(prefs)
		}
		if bestScore == -1 || score < bestScore {
			best = track
			bestScore = score
		}
	}

	if bestScore == -1 {
		return Track{}, ErrNoCaptions
	}
	return best, nil
}
