package captionapi

import (
	"captionapi/captions"
	"captionapi/extractor"
	"captionapi/http"
	"captionapi/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, captionapi.ErrNoCaptions) {
//		fmt.Println("No captions for this video")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var tooLong *captionapi.VideoTooLongError
//	if errors.As(err, &tooLong) {
//		fmt.Printf("Video runs %.0fs, cap is %.0fs\n", tooLong.Duration, tooLong.Max)
//	}

// Sentinel errors from sub-packages:
//
// From youtube package:
//   - youtube.ErrInvalidURL: Input is not a video URL or ID
//   - youtube.ErrVideoUnavailable: Video is deleted, private, or unknown
//   - youtube.ErrCaptionFetch: Caption payload download failed
//
// From captions package:
//   - captions.ErrNoCaptions: No track matched the selection policy
//   - captions.ErrUnrecognizedFormat: Payload does not match its declared format
var (
	// ErrInvalidURL indicates the input could not be resolved to a video ID.
	ErrInvalidURL = youtube.ErrInvalidURL
	// ErrVideoUnavailable indicates the video cannot be retrieved.
	ErrVideoUnavailable = youtube.ErrVideoUnavailable
	// ErrCaptionFetch indicates a caption payload download failed.
	ErrCaptionFetch = youtube.ErrCaptionFetch
	// ErrNoCaptions indicates no caption track matched the selection policy.
	ErrNoCaptions = captions.ErrNoCaptions
	// ErrUnrecognizedFormat indicates a payload that is not its declared format.
	ErrUnrecognizedFormat = captions.ErrUnrecognizedFormat
)

// Type aliases for convenient error handling.
type (
	// VideoTooLongError reports a video over the configured duration cap.
	VideoTooLongError = extractor.VideoTooLongError
	// UnavailableError carries the playability detail behind ErrVideoUnavailable.
	UnavailableError = youtube.UnavailableError
	// HTTPError is a non-2xx platform response.
	HTTPError = http.HTTPError
	// RateLimitError is a 429 or 503 platform response.
	RateLimitError = http.RateLimitError
)
