package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// videoIDRe matches a complete 11-character video ID.
var videoIDRe = regexp.MustCompile(`^[0-9A-Za-z_-]{11}$`)

// youtubeHosts are the hostnames accepted as video URLs.
var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
	"www.youtu.be":    true,
}

// ResolveVideoID extracts the 11-character video ID from a URL or accepts
// a bare ID. Supported URL shapes:
//
//	https://www.youtube.com/watch?v=ID
//	https://youtu.be/ID
//	https://www.youtube.com/embed/ID
//	https://www.youtube.com/shorts/ID
//	https://m.youtube.com/watch?v=ID
//
// Anything else returns ErrInvalidURL. Resolution is purely syntactic; it
// never asserts the video exists.
func ResolveVideoID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty input", ErrInvalidURL)
	}

	if videoIDRe.MatchString(input) {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil || u.Host == "" {
		// Tolerate a missing scheme: "youtube.com/watch?v=ID".
		u, err = url.Parse("https://" + input)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrInvalidURL, input)
		}
	}

	host := strings.ToLower(u.Hostname())
	if !youtubeHosts[host] {
		return "", fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, u.Hostname())
	}

	var id string
	switch {
	case host == "youtu.be" || host == "www.youtu.be":
		id = strings.Trim(u.Path, "/")
		// youtu.be paths can carry extra segments; the ID is the first.
		if i := strings.IndexByte(id, '/'); i >= 0 {
			id = id[:i]
		}
	case u.Path == "/watch":
		id = u.Query().Get("v")
	case strings.HasPrefix(u.Path, "/embed/"):
		id = strings.TrimPrefix(u.Path, "/embed/")
	case strings.HasPrefix(u.Path, "/shorts/"):
		id = strings.TrimPrefix(u.Path, "/shorts/")
	case strings.HasPrefix(u.Path, "/live/"):
		id = strings.TrimPrefix(u.Path, "/live/")
	default:
		return "", fmt.Errorf("%w: unrecognized path %q", ErrInvalidURL, u.Path)
	}

	if i := strings.IndexByte(id, '/'); i >= 0 {
		id = id[:i]
	}
	if !videoIDRe.MatchString(id) {
		return "", fmt.Errorf("%w: no video id in %q", ErrInvalidURL, input)
	}
	return id, nil
}
