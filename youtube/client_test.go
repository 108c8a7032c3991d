package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"captionapi/captions"
	ythttp "captionapi/http"
	"captionapi/retry"
)

func testHTTPClient() *ythttp.Client {
	cfg := ythttp.DefaultConfig()
	cfg.Retry = retry.Config{
		MaxRetries:     1,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
	cfg.RateLimiter.RequestsPerSecond = 1000
	cfg.RateLimiter.Burst = 1000
	return ythttp.New(cfg)
}

const playerResponseOK = `{
  "playabilityStatus": {"status": "OK"},
  "videoDetails": {
    "videoId": "dQw4w9WgXcQ",
    "title": "Test Video",
    "lengthSeconds": "212"
  },
  "captions": {
    "playerCaptionsTracklistRenderer": {
      "captionTracks": [
        {"baseUrl": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=en", "languageCode": "en", "kind": "asr"},
        {"baseUrl": "https://www.youtube.com/api/timedtext?v=dQw4w9WgXcQ&lang=de", "languageCode": "de"}
      ]
    }
  }
}`

func TestMetadataFromPlayerResponse(t *testing.T) {
	var resp playerResponse
	if err := json.Unmarshal([]byte(playerResponseOK), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	meta, err := metadataFromPlayerResponse("dQw4w9WgXcQ", &resp)
	if err != nil {
		t.Fatalf("metadataFromPlayerResponse failed: %v", err)
	}

	if meta.Title != "Test Video" {
		t.Errorf("Title = %q", meta.Title)
	}
	if meta.Duration != 212 {
		t.Errorf("Duration = %f, want 212", meta.Duration)
	}

	// Two platform tracks, each expanded per supported format.
	if len(meta.Tracks) != 6 {
		t.Fatalf("got %d tracks, want 6", len(meta.Tracks))
	}

	var enAuto, deManual int
	for _, track := range meta.Tracks {
		switch {
		case track.LanguageCode == "en" && track.AutoGenerated:
			enAuto++
		case track.LanguageCode == "de" && !track.AutoGenerated:
			deManual++
		default:
			t.Errorf("unexpected track: %+v", track)
		}
		if !strings.Contains(track.SourceURL, "fmt=") {
			t.Errorf("track URL missing fmt param: %s", track.SourceURL)
		}
	}
	if enAuto != 3 || deManual != 3 {
		t.Errorf("track split = (%d en auto, %d de manual), want (3, 3)", enAuto, deManual)
	}
}

func TestMetadataFromPlayerResponse_Unplayable(t *testing.T) {
	resp := &playerResponse{
		PlayabilityStatus: &playabilityStatus{
			Status: "LOGIN_REQUIRED",
			Reason: "This video is private",
		},
	}

	_, err := metadataFromPlayerResponse("abcdefghijk", resp)
	if !errors.Is(err, ErrVideoUnavailable) {
		t.Fatalf("err = %v, want ErrVideoUnavailable", err)
	}

	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatal("error is not an *UnavailableError")
	}
	if unavailable.Status != "LOGIN_REQUIRED" || unavailable.Reason != "This video is private" {
		t.Errorf("unexpected detail: %+v", unavailable)
	}
}

func TestMetadataFromPlayerResponse_NoDetails(t *testing.T) {
	resp := &playerResponse{
		PlayabilityStatus: &playabilityStatus{Status: "OK"},
	}
	if _, err := metadataFromPlayerResponse("abcdefghijk", resp); !errors.Is(err, ErrVideoUnavailable) {
		t.Errorf("err = %v, want ErrVideoUnavailable", err)
	}
}

func TestMetadataFromPlayerResponse_NoCaptionSection(t *testing.T) {
	resp := &playerResponse{
		PlayabilityStatus: &playabilityStatus{Status: "OK"},
		VideoDetails:      &videoDetails{Title: "No Captions", LengthSeconds: "60"},
	}

	meta, err := metadataFromPlayerResponse("abcdefghijk", resp)
	if err != nil {
		t.Fatalf("metadataFromPlayerResponse failed: %v", err)
	}
	if len(meta.Tracks) != 0 {
		t.Errorf("got %d tracks, want 0", len(meta.Tracks))
	}
}

func TestFetchMetadata(t *testing.T) {
	var gotBody playerRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(playerResponseOK))
	}))
	defer srv.Close()

	client := NewClient(testHTTPClient(), withEndpoint(srv.URL))
	meta, err := client.FetchMetadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchMetadata failed: %v", err)
	}

	if gotBody.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("request videoId = %q", gotBody.VideoID)
	}
	if gotBody.Context.Client.ClientName != "WEB" {
		t.Errorf("request clientName = %q", gotBody.Context.Client.ClientName)
	}
	if meta.ID != "dQw4w9WgXcQ" || meta.Title != "Test Video" {
		t.Errorf("metadata = %+v", meta)
	}
}

type stubMetadataSource struct {
	title    string
	duration float64
	err      error
}

func (s *stubMetadataSource) VideoDetails(ctx context.Context, videoID string) (string, float64, error) {
	return s.title, s.duration, s.err
}

func TestFetchMetadata_MetadataSourcePreferred(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playerResponseOK))
	}))
	defer srv.Close()

	src := &stubMetadataSource{title: "API Title", duration: 300}
	client := NewClient(testHTTPClient(), withEndpoint(srv.URL), WithMetadataSource(src))

	meta, err := client.FetchMetadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchMetadata failed: %v", err)
	}
	if meta.Title != "API Title" || meta.Duration != 300 {
		t.Errorf("metadata = (%q, %f), want source values", meta.Title, meta.Duration)
	}
	// Track listing still comes from the player response.
	if len(meta.Tracks) == 0 {
		t.Error("tracks missing when a metadata source is attached")
	}
}

func TestFetchMetadata_MetadataSourceFailureFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(playerResponseOK))
	}))
	defer srv.Close()

	src := &stubMetadataSource{err: errors.New("quota exceeded")}
	client := NewClient(testHTTPClient(), withEndpoint(srv.URL), WithMetadataSource(src))

	meta, err := client.FetchMetadata(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("FetchMetadata failed: %v", err)
	}
	if meta.Title != "Test Video" || meta.Duration != 212 {
		t.Errorf("metadata = (%q, %f), want player response values", meta.Title, meta.Duration)
	}
}

func TestFetchCaptionPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nhello\n"))
	}))
	defer srv.Close()

	client := NewClient(testHTTPClient())
	payload, err := client.FetchCaptionPayload(context.Background(), captions.Track{
		LanguageCode: "en",
		Format:       captions.FormatVTT,
		SourceURL:    srv.URL,
	})
	if err != nil {
		t.Fatalf("FetchCaptionPayload failed: %v", err)
	}
	if !strings.HasPrefix(payload, "WEBVTT") {
		t.Errorf("payload = %q", payload)
	}
}

func TestFetchCaptionPayload_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testHTTPClient())
	_, err := client.FetchCaptionPayload(context.Background(), captions.Track{SourceURL: srv.URL})
	if !errors.Is(err, ErrCaptionFetch) {
		t.Errorf("err = %v, want ErrCaptionFetch", err)
	}
}

func TestFetchCaptionPayload_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(testHTTPClient())
	_, err := client.FetchCaptionPayload(context.Background(), captions.Track{SourceURL: srv.URL})
	if !errors.Is(err, ErrCaptionFetch) {
		t.Errorf("err = %v, want ErrCaptionFetch", err)
	}
}

func TestWithFormatParam(t *testing.T) {
	tests := []struct {
		base   string
		format string
		want   string
	}{
		{"https://example.com/timedtext?v=abc", "vtt", "fmt=vtt"},
		{"https://example.com/timedtext?v=abc&fmt=srv3", "json3", "fmt=json3"},
		{"https://example.com/timedtext", "srv1", "fmt=srv1"},
	}
	for _, tt := range tests {
		got := withFormatParam(tt.base, tt.format)
		if !strings.Contains(got, tt.want) {
			t.Errorf("withFormatParam(%q, %q) = %q, missing %q", tt.base, tt.format, got, tt.want)
		}
		if strings.Count(got, "fmt=") != 1 {
			t.Errorf("withFormatParam(%q, %q) = %q, duplicate fmt param", tt.base, tt.format, got)
		}
	}
}

func TestParseISO8601Duration(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"PT3M32S", 212},
		{"PT1H1M5S", 3665},
		{"PT45S", 45},
		{"PT2H", 7200},
		{"PT0S", 0},
	}
	for _, tt := range tests {
		got, err := parseISO8601Duration(tt.in)
		if err != nil {
			t.Fatalf("parseISO8601Duration(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseISO8601Duration(%q) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestParseISO8601Duration_Invalid(t *testing.T) {
	for _, in := range []string{"", "3m32s", "P1DT2H", "PTXS"} {
		if _, err := parseISO8601Duration(in); err == nil {
			t.Errorf("parseISO8601Duration(%q) returned nil error", in)
		}
	}
}
