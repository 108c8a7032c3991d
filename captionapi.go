package captionapi

import (
	"context"
	"log/slog"

	"captionapi/extractor"
	ythttp "captionapi/http"
	"captionapi/youtube"
)

// Result shapes re-exported for library users.
type (
	// CleanResult is the deduplicated plain-text output.
	CleanResult = extractor.CleanResult
	// DetailedResult carries timestamped segments and video metadata.
	DetailedResult = extractor.DetailedResult
)

// ExtractClean retrieves a video's captions as deduplicated plain text
// using default settings. It builds a fresh client per call; long-lived
// processes should construct an extractor.Extractor once instead.
func ExtractClean(ctx context.Context, videoURL string) (*CleanResult, error) {
	return defaultExtractor().ExtractClean(ctx, videoURL)
}

// ExtractDetailed retrieves a video's captions as timestamped segments
// using default settings.
func ExtractDetailed(ctx context.Context, videoURL string) (*DetailedResult, error) {
	return defaultExtractor().ExtractDetailed(ctx, videoURL)
}

func defaultExtractor() *extractor.Extractor {
	httpClient := ythttp.New(ythttp.DefaultConfig())
	client := youtube.NewClient(httpClient)
	return extractor.New(client, extractor.DefaultOptions(), slog.Default())
}
