// Package server exposes the caption extraction pipeline over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"captionapi/extractor"
)

// CaptionExtractor is the pipeline surface the handlers need. The
// extractor package implements it; tests substitute stubs.
type CaptionExtractor interface {
	ExtractClean(ctx context.Context, videoURL string) (*extractor.CleanResult, error)
	ExtractDetailed(ctx context.Context, videoURL string) (*extractor.DetailedResult, error)
}

// Options configure the HTTP server.
type Options struct {
	// Addr is the listen address.
	Addr string

	// AllowedOrigins lists CORS origins. "*" allows any origin.
	AllowedOrigins []string

	// RequestTimeout bounds each extraction request.
	RequestTimeout time.Duration
}

// Server handles the caption API routes.
type Server struct {
	extractor CaptionExtractor
	opts      Options
	logger    *slog.Logger
	httpSrv   *http.Server
}

// Version is the reported API version.
const Version = "1.0.0"

// New creates a server around an extractor.
func New(ext CaptionExtractor, opts Options, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 60 * time.Second
	}

	s := &Server{
		extractor: ext,
		opts:      opts,
		logger:    logger,
	}

	s.httpSrv = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler builds the route table with middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/captions/extract", s.handleExtract)
	mux.HandleFunc("POST /api/v1/captions/extract/detailed", s.handleExtractDetailed)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /{$}", s.handleRoot)

	var h http.Handler = mux
	h = s.corsMiddleware(h)
	h = s.requestIDMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

// ListenAndServe runs the server until the context is canceled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.opts.Addr)
		errCh <- s.httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpSrv.Shutdown(shutdownCtx)
	}
}

// extractRequest is the body both extraction endpoints accept.
type extractRequest struct {
	YouTubeURL string `json:"youtube_url"`
	// Format is the requested output layout: txt, srt, or json.
	// Defaults to txt.
	Format string `json:"format"`
}

func (r *extractRequest) validate() error {
	if r.YouTubeURL == "" {
		return errors.New("youtube_url is required")
	}
	switch r.Format {
	case "", "txt", "srt", "json":
		return nil
	default:
		return errors.New("format must be one of txt, srt, json")
	}
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	defer cancel()

	result, err := s.extractor.ExtractClean(ctx, req.YouTubeURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExtractDetailed(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRequest(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.opts.RequestTimeout)
	defer cancel()

	result, err := s.extractor.ExtractDetailed(ctx, req.YouTubeURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"name":       "captionapi",
		"version":    Version,
		"health_url": "/health",
	})
}

// decodeRequest parses and validates an extraction request body. On
// failure it writes the validation envelope and returns ok=false.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) (*extractRequest, bool) {
	var req extractRequest

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeErrorEnvelope(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return nil, false
	}
	if err := req.validate(); err != nil {
		s.writeErrorEnvelope(w, http.StatusUnprocessableEntity, "Validation error", err.Error())
		return nil, false
	}
	return &req, true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
