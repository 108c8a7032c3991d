// Package captionapi provides a library for extracting YouTube captions.
//
// It retrieves a video's caption track, parses it, and returns either
// deduplicated plain text or timestamped segments.
//
// # Overview
//
// captionapi provides high-level convenience functions for the most common operations:
//
//   - ExtractClean: Get a video's captions as deduplicated plain text
//   - ExtractDetailed: Get a video's captions as timestamped segments
//
// # Quick Start
//
// Extract clean text:
//
//	ctx := context.Background()
//	result, err := captionapi.ExtractClean(ctx, "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.CleanText)
//
// Extract timestamped segments:
//
//	result, err := captionapi.ExtractDetailed(ctx, "dQw4w9WgXcQ")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, seg := range result.Captions {
//		fmt.Printf("[%.1fs] %s\n", seg.Start, seg.Text)
//	}
//
// For servers and long-lived processes, build the pipeline once from the
// extractor, youtube, and http packages instead of using these helpers;
// the helpers construct a fresh client per call.
//
// # Configuration
//
// captionapi uses a configuration system that loads settings from multiple sources:
//
//  1. Environment variables (highest priority)
//  2. Config file (captionapi.yaml or ~/.config/captionapi/captionapi.yaml)
//  3. Default values (lowest priority)
//
// Environment variables:
//
//   - CAPTIONAPI_ADDR: HTTP listen address
//   - CAPTIONAPI_MAX_VIDEO_DURATION: Longest accepted video in seconds
//   - CAPTIONAPI_REQUEST_TIMEOUT: Outbound request timeout in seconds
//   - CAPTIONAPI_DEFAULT_LANGUAGE: Caption language to extract
//   - CAPTIONAPI_FORMAT_PREFERENCE: Comma-separated format order (vtt, json3, srv)
//   - CAPTIONAPI_YOUTUBE_API_KEY: Data API key for metadata lookups
//   - CAPTIONAPI_ALLOWED_ORIGINS: Comma-separated CORS origins
//   - CAPTIONAPI_MAX_RETRIES: Maximum retry attempts
//   - CAPTIONAPI_INITIAL_BACKOFF: Initial retry backoff duration
//   - CAPTIONAPI_MAX_BACKOFF: Maximum retry backoff duration
//   - CAPTIONAPI_LOG_LEVEL: debug, info, warn, or error
//   - CAPTIONAPI_LOG_FORMAT: text or json
package captionapi
