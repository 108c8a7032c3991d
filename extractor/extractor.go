// Package extractor orchestrates caption extraction: resolve the video,
// gate on duration, select a track, fetch and parse its payload, then
// normalize and deduplicate the cue text.
package extractor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"captionapi/captions"
	"captionapi/youtube"
)

// PlatformClient is the platform surface the pipeline needs. The
// Innertube client implements it; tests substitute fakes.
type PlatformClient interface {
	FetchMetadata(ctx context.Context, videoID string) (*youtube.VideoMetadata, error)
	FetchCaptionPayload(ctx context.Context, track captions.Track) (string, error)
}

// Options tune the extraction pipeline.
type Options struct {
	// MaxVideoDuration is the longest video accepted, in seconds.
	// Zero disables the gate.
	MaxVideoDuration float64

	// DefaultLanguage is the caption language to select.
	DefaultLanguage string

	// FormatPreference orders caption formats for track selection.
	// Empty means captions.DefaultFormatPreference.
	FormatPreference []captions.FormatKind
}

// DefaultOptions matches the service defaults: two-hour cap, English.
func DefaultOptions() Options {
	return Options{
		MaxVideoDuration: 7200,
		DefaultLanguage:  "en",
	}
}

// Extractor runs the extraction pipeline against a platform client.
type Extractor struct {
	client PlatformClient
	opts   Options
	logger *slog.Logger
}

// New creates an extractor.
func New(client PlatformClient, opts Options, logger *slog.Logger) *Extractor {
	if opts.DefaultLanguage == "" {
		opts.DefaultLanguage = "en"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: client,
		opts:   opts,
		logger: logger,
	}
}

// CleanResult is the deduplicated plain-text output.
type CleanResult struct {
	Success       bool   `json:"success"`
	VideoTitle    string `json:"video_title"`
	VideoID       string `json:"video_id"`
	CaptionFormat string `json:"caption_format"`
	CleanText     string `json:"clean_text"`
	ContentLength int    `json:"content_length"`
}

// DetailedResult carries the timestamped segments alongside the video
// metadata.
type DetailedResult struct {
	Success       bool               `json:"success"`
	VideoTitle    string             `json:"video_title"`
	VideoID       string             `json:"video_id"`
	VideoDuration float64            `json:"video_duration"`
	TotalCaptions int                `json:"total_captions"`
	Format        string             `json:"format"`
	Captions      []captions.Segment `json:"captions"`
}

// extraction is the shared pipeline output both result shapes draw from.
type extraction struct {
	meta      *youtube.VideoMetadata
	track     captions.Track
	segments  []captions.Segment
	cleanText string
}

// ExtractClean runs the pipeline and returns deduplicated plain text.
func (e *Extractor) ExtractClean(ctx context.Context, videoURL string) (*CleanResult, error) {
	ext, err := e.extract(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	return &CleanResult{
		Success:       true,
		VideoTitle:    ext.meta.Title,
		VideoID:       ext.meta.ID,
		CaptionFormat: string(ext.track.Format),
		CleanText:     ext.cleanText,
		ContentLength: len(ext.cleanText),
	}, nil
}

// ExtractDetailed runs the pipeline and returns timestamped segments.
func (e *Extractor) ExtractDetailed(ctx context.Context, videoURL string) (*DetailedResult, error) {
	ext, err := e.extract(ctx, videoURL)
	if err != nil {
		return nil, err
	}

	return &DetailedResult{
		Success:       true,
		VideoTitle:    ext.meta.Title,
		VideoID:       ext.meta.ID,
		VideoDuration: ext.meta.Duration,
		TotalCaptions: len(ext.segments),
		Format:        string(ext.track.Format),
		Captions:      ext.segments,
	}, nil
}

func (e *Extractor) extract(ctx context.Context, videoURL string) (*extraction, error) {
	videoID, err := youtube.ResolveVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	meta, err := e.client.FetchMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}

	e.logger.Info("video resolved",
		"video_id", meta.ID,
		"title", meta.Title,
		"duration_seconds", meta.Duration,
		"tracks", len(meta.Tracks))

	// The duration gate runs before any caption payload is touched, so
	// an oversized video costs one metadata call and nothing more.
	if e.opts.MaxVideoDuration > 0 && meta.Duration > e.opts.MaxVideoDuration {
		return nil, &VideoTooLongError{Duration: meta.Duration, Max: e.opts.MaxVideoDuration}
	}

	track, err := captions.SelectTrack(meta.Tracks, e.opts.DefaultLanguage, e.opts.FormatPreference)
	if err != nil {
		return nil, err
	}

	payload, err := e.client.FetchCaptionPayload(ctx, track)
	if err != nil {
		return nil, err
	}

	parsed, err := captions.Parse(payload, track.Format)
	if err != nil {
		return nil, fmt.Errorf("parse %s track: %w", track.Format, err)
	}

	normalized := make([]captions.Segment, 0, len(parsed))
	for _, seg := range parsed {
		text := captions.Normalize(seg.Text)
		if text == "" {
			continue
		}
		normalized = append(normalized, seg.WithText(text))
	}

	kept, cleanText := captions.Deduplicate(normalized)
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: track contained no usable text", captions.ErrNoCaptions)
	}

	e.logger.Info("captions extracted",
		"video_id", meta.ID,
		"format", track.Format,
		"segments", len(kept),
		"clean_text_length", len(cleanText))

	return &extraction{
		meta:      meta,
		track:     track,
		segments:  kept,
		cleanText: cleanText,
	}, nil
}

// VideoTooLongError reports a video over the duration cap.
type VideoTooLongError struct {
	// Duration is the video length in seconds.
	Duration float64
	// Max is the configured cap in seconds.
	Max float64
}

func (e *VideoTooLongError) Error() string {
	return fmt.Sprintf("extractor: video duration %s exceeds maximum %s",
		FormatDuration(e.Duration), FormatDuration(e.Max))
}

// FormatDuration renders seconds as "1h 1m 5s", omitting zero components.
func FormatDuration(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	var parts []string
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if secs > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", secs))
	}
	return strings.Join(parts, " ")
}
