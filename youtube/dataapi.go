package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"google.golang.org/api/option"
	ytapi "google.golang.org/api/youtube/v3"
)

// DataAPIClient fetches video metadata through the YouTube Data API v3.
// A videos.list call costs 1 quota unit, so it is the preferred metadata
// source when an API key is configured; the Innertube player response
// covers the keyless case.
type DataAPIClient struct {
	service *ytapi.Service
}

// NewDataAPIClient creates a Data API metadata source.
func NewDataAPIClient(ctx context.Context, apiKey string) (*DataAPIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}

	service, err := ytapi.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &DataAPIClient{service: service}, nil
}

// VideoDetails returns the title and duration for a video ID. A video the
// API does not know is reported as ErrVideoUnavailable.
func (d *DataAPIClient) VideoDetails(ctx context.Context, videoID string) (string, float64, error) {
	call := d.service.Videos.List([]string{"snippet", "contentDetails"}).
		Id(videoID).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return "", 0, fmt.Errorf("videos.list: %w", err)
	}
	if len(resp.Items) == 0 {
		return "", 0, &UnavailableError{VideoID: videoID, Status: "NOT_FOUND"}
	}

	item := resp.Items[0]
	duration, err := parseISO8601Duration(item.ContentDetails.Duration)
	if err != nil {
		return "", 0, fmt.Errorf("parse duration %q: %w", item.ContentDetails.Duration, err)
	}

	return item.Snippet.Title, duration, nil
}

// iso8601DurationRe matches the PT#H#M#S form the Data API uses. Date
// components never appear on video durations.
var iso8601DurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// parseISO8601Duration converts an ISO 8601 duration like "PT1H2M3S" to
// seconds. "PT0S" (live streams and premieres) yields zero.
func parseISO8601Duration(s string) (float64, error) {
	m := iso8601DurationRe.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("not an ISO 8601 duration")
	}

	var total float64
	for i, mult := range []float64{3600, 60, 1} {
		if m[i+1] == "" {
			continue
		}
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return 0, err
		}
		total += v * mult
	}
	return total, nil
}
