package server

import (
	"context"
	"errors"
	"net/http"

	"captionapi/captions"
	"captionapi/extractor"
	"captionapi/youtube"
)

// errorEnvelope is the error response body. Every error is wrapped in a
// "detail" object so clients can distinguish it from a success body by
// shape alone.
type errorEnvelope struct {
	Detail errorDetail `json:"detail"`
}

type errorDetail struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError maps a pipeline error to an HTTP status and envelope.
// Client-side failures (bad URL, missing video, oversized video, no
// captions) are 400s; upstream failures are 502s; anything unclassified
// is a 500.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLong *extractor.VideoTooLongError

	switch {
	case errors.Is(err, youtube.ErrInvalidURL):
		s.writeErrorEnvelope(w, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, youtube.ErrVideoUnavailable):
		s.writeErrorEnvelope(w, http.StatusBadRequest, "Failed to extract captions", err.Error())
	case errors.As(err, &tooLong):
		s.writeErrorEnvelope(w, http.StatusBadRequest, "Failed to extract captions", err.Error())
	case errors.Is(err, captions.ErrNoCaptions):
		s.writeErrorEnvelope(w, http.StatusBadRequest, "Failed to extract captions", err.Error())
	case errors.Is(err, youtube.ErrCaptionFetch):
		s.writeErrorEnvelope(w, http.StatusBadGateway, "Failed to extract captions", err.Error())
	case errors.Is(err, captions.ErrUnrecognizedFormat):
		s.writeErrorEnvelope(w, http.StatusBadGateway, "Failed to extract captions", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.writeErrorEnvelope(w, http.StatusGatewayTimeout, "Failed to extract captions", "extraction timed out")
	default:
		s.logger.Error("unclassified extraction error",
			"path", r.URL.Path, "error", err)
		s.writeErrorEnvelope(w, http.StatusInternalServerError, "Internal server error", err.Error())
	}
}

func (s *Server) writeErrorEnvelope(w http.ResponseWriter, status int, msg, details string) {
	s.writeJSON(w, status, errorEnvelope{
		Detail: errorDetail{
			Success: false,
			Error:   msg,
			Details: details,
		},
	})
}
