// Package youtube resolves video references and retrieves video metadata
// and caption payloads, using the Innertube player API as the primary
// source and the YouTube Data API v3 for metadata when a key is
// configured.
package youtube

import (
	"errors"
	"fmt"

	"captionapi/captions"
)

var (
	// ErrInvalidURL indicates the input could not be resolved to a video ID.
	ErrInvalidURL = errors.New("youtube: invalid video URL")

	// ErrVideoUnavailable indicates the video exists in no retrievable form:
	// deleted, private, region locked, or the ID simply never existed.
	ErrVideoUnavailable = errors.New("youtube: video unavailable")

	// ErrCaptionFetch indicates a caption payload download failed after
	// retries.
	ErrCaptionFetch = errors.New("youtube: caption fetch failed")
)

// VideoMetadata is what the platform knows about a video before any
// caption payload is fetched.
type VideoMetadata struct {
	// ID is the 11-character video ID.
	ID string
	// Title is the video title.
	Title string
	// Duration is the video length in seconds.
	Duration float64
	// Tracks lists every caption track the video offers, one entry per
	// track and format combination.
	Tracks []captions.Track
}

// UnavailableError wraps ErrVideoUnavailable with the playability reason
// the platform reported.
type UnavailableError struct {
	VideoID string
	Status  string
	Reason  string
}

func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("youtube: video %s unavailable: %s (%s)", e.VideoID, e.Reason, e.Status)
	}
	return fmt.Sprintf("youtube: video %s unavailable (%s)", e.VideoID, e.Status)
}

func (e *UnavailableError) Unwrap() error {
	return ErrVideoUnavailable
}
