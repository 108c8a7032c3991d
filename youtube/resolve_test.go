package youtube

import (
	"errors"
	"testing"
)

func TestResolveVideoID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url bare host", "https://youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"mobile host", "https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short link with query", "https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"live url", "https://www.youtube.com/live/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch with extra params", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&t=10s", "dQw4w9WgXcQ"},
		{"schemeless", "youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"whitespace padded", "  https://youtu.be/dQw4w9WgXcQ  ", "dQw4w9WgXcQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveVideoID(tt.input)
			if err != nil {
				t.Fatalf("ResolveVideoID(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveVideoID(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveVideoID_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"wrong host", "https://vimeo.com/123456789"},
		{"no video param", "https://www.youtube.com/watch"},
		{"channel url", "https://www.youtube.com/@somechannel"},
		{"short id", "https://www.youtube.com/watch?v=abc"},
		{"long id", "https://www.youtube.com/watch?v=dQw4w9WgXcQ0"},
		{"id with bad chars", "https://youtu.be/dQw4w9WgX!Q"},
		{"plain text", "not a url at all"},
		{"bare short token", "abc123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveVideoID(tt.input)
			if !errors.Is(err, ErrInvalidURL) {
				t.Errorf("ResolveVideoID(%q) err = %v, want ErrInvalidURL", tt.input, err)
			}
		})
	}
}
