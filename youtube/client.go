package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"captionapi/captions"
	ythttp "captionapi/http"
)

const (
	// playerEndpoint is the Innertube API endpoint for player metadata.
	playerEndpoint = "https://www.youtube.com/youtubei/v1/player"

	// defaultClientName is the client identifier for web requests.
	defaultClientName = "WEB"
	// defaultClientVersion is the client version for web requests.
	defaultClientVersion = "2.20240101.00.00"

	// defaultUserAgent mimics a standard browser.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Client retrieves video metadata and caption payloads through the
// Innertube player API. When a metadata source is attached it is
// consulted first for title and duration, with the player response as
// fallback; caption track discovery always comes from the player
// response.
type Client struct {
	httpClient *ythttp.Client
	metadata   MetadataSource
	endpoint   string
	logger     *slog.Logger
}

// MetadataSource supplies title and duration for a video ID. The Data
// API client implements it.
type MetadataSource interface {
	VideoDetails(ctx context.Context, videoID string) (title string, duration float64, err error)
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithMetadataSource attaches a preferred metadata source.
func WithMetadataSource(src MetadataSource) ClientOption {
	return func(c *Client) {
		c.metadata = src
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// withEndpoint overrides the player endpoint. Test hook.
func withEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}

// NewClient creates an Innertube player client on top of the shared HTTP
// client.
func NewClient(httpClient *ythttp.Client, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: httpClient,
		endpoint:   playerEndpoint,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// playerRequest is the body of a player endpoint call.
type playerRequest struct {
	Context clientContext `json:"context"`
	VideoID string        `json:"videoId"`
}

type clientContext struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	HL            string `json:"hl"`
	GL            string `json:"gl"`
}

// playerResponse is the subset of the player endpoint response the
// extraction pipeline needs.
type playerResponse struct {
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus,omitempty"`
	VideoDetails      *videoDetails      `json:"videoDetails,omitempty"`
	Captions          *captionsWrapper   `json:"captions,omitempty"`
}

type playabilityStatus struct {
	Status string `json:"status,omitempty"`
	Reason string `json:"reason,omitempty"`
}

type videoDetails struct {
	VideoID       string `json:"videoId,omitempty"`
	Title         string `json:"title,omitempty"`
	LengthSeconds string `json:"lengthSeconds,omitempty"`
}

type captionsWrapper struct {
	PlayerCaptionsTracklistRenderer *tracklistRenderer `json:"playerCaptionsTracklistRenderer,omitempty"`
}

type tracklistRenderer struct {
	CaptionTracks []captionTrack `json:"captionTracks,omitempty"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl,omitempty"`
	LanguageCode string `json:"languageCode,omitempty"`
	// Kind is "asr" for auto-generated tracks, empty for manual ones.
	Kind string `json:"kind,omitempty"`
}

// FetchMetadata resolves a video ID into metadata plus its caption track
// listing.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := c.player(ctx, videoID)
	if err != nil {
		return nil, err
	}

	meta, err := metadataFromPlayerResponse(videoID, resp)
	if err != nil {
		return nil, err
	}

	if c.metadata != nil {
		title, duration, err := c.metadata.VideoDetails(ctx, videoID)
		if err != nil {
			c.logger.Warn("metadata source failed, using player response",
				"video_id", videoID, "error", err)
		} else {
			meta.Title = title
			meta.Duration = duration
		}
	}

	return meta, nil
}

// FetchCaptionPayload downloads the raw payload for one caption track.
func (c *Client) FetchCaptionPayload(ctx context.Context, track captions.Track) (string, error) {
	resp, err := c.httpClient.Get(ctx, track.SourceURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCaptionFetch, err)
	}
	if len(resp.Body) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrCaptionFetch)
	}
	return string(resp.Body), nil
}

// player calls the Innertube player endpoint for a video.
func (c *Client) player(ctx context.Context, videoID string) (*playerResponse, error) {
	req := playerRequest{
		Context: clientContext{
			Client: innertubeClient{
				ClientName:    defaultClientName,
				ClientVersion: defaultClientVersion,
				HL:            "en",
				GL:            "US",
			},
		},
		VideoID: videoID,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal player request: %w", err)
	}

	headers := map[string]string{
		"Content-Type": "application/json",
		"User-Agent":   defaultUserAgent,
		"Origin":       "https://www.youtube.com",
		"Referer":      "https://www.youtube.com/",
	}

	httpResp, err := c.httpClient.Do(ctx, "POST", c.endpoint, body, headers)
	if err != nil {
		var httpErr *ythttp.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == 404 {
			return nil, &UnavailableError{VideoID: videoID, Status: "NOT_FOUND"}
		}
		return nil, fmt.Errorf("player request: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal(httpResp.Body, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal player response: %w", err)
	}
	return &resp, nil
}

// metadataFromPlayerResponse validates playability and flattens the
// caption track listing. Each platform track is expanded into one entry
// per supported wire format, so track selection can prefer formats
// without a second round trip.
func metadataFromPlayerResponse(videoID string, resp *playerResponse) (*VideoMetadata, error) {
	if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Status != "OK" {
		return nil, &UnavailableError{
			VideoID: videoID,
			Status:  resp.PlayabilityStatus.Status,
			Reason:  resp.PlayabilityStatus.Reason,
		}
	}
	if resp.VideoDetails == nil {
		return nil, &UnavailableError{VideoID: videoID, Status: "NO_DETAILS"}
	}

	duration, err := strconv.ParseFloat(resp.VideoDetails.LengthSeconds, 64)
	if err != nil {
		duration = 0
	}

	meta := &VideoMetadata{
		ID:       videoID,
		Title:    resp.VideoDetails.Title,
		Duration: duration,
	}

	if resp.Captions != nil && resp.Captions.PlayerCaptionsTracklistRenderer != nil {
		for _, track := range resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks {
			if track.BaseURL == "" {
				continue
			}
			meta.Tracks = append(meta.Tracks, expandTrack(track)...)
		}
	}

	return meta, nil
}

// formatParams maps each wire format to the fmt query parameter the
// timedtext endpoint expects.
var formatParams = map[captions.FormatKind]string{
	captions.FormatVTT:   "vtt",
	captions.FormatJSON3: "json3",
	captions.FormatSRV:   "srv1",
}

func expandTrack(track captionTrack) []captions.Track {
	out := make([]captions.Track, 0, len(formatParams))
	for _, kind := range captions.DefaultFormatPreference() {
		out = append(out, captions.Track{
			LanguageCode:  track.LanguageCode,
			Format:        kind,
			SourceURL:     withFormatParam(track.BaseURL, formatParams[kind]),
			AutoGenerated: track.Kind == "asr",
		})
	}
	return out
}

// withFormatParam appends or replaces the fmt query parameter on a
// timedtext base URL.
func withFormatParam(baseURL, format string) string {
	u, err := url.Parse(baseURL)
	if err != nil {
		// Fall back to naive appending rather than dropping the track.
		sep := "?"
		if strings.Contains(baseURL, "?") {
			sep = "&"
		}
		return baseURL + sep + "fmt=" + format
	}
	q := u.Query()
	q.Set("fmt", format)
	u.RawQuery = q.Encode()
	return u.String()
}
