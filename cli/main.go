package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"captionapi/config"
	"captionapi/extractor"
	ythttp "captionapi/http"
	"captionapi/retry"
	"captionapi/server"
	"captionapi/youtube"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "serve":
		cmdServe(args)
	case "extract":
		cmdExtract(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `captionapi - YouTube caption extraction service

Usage:
  captionapi serve [flags]               Run the HTTP API server
  captionapi extract [flags] <url>       Extract captions from one video
  captionapi help                        Show this help message

Examples:
  captionapi serve                                            # Serve on the configured address
  captionapi serve --addr :9000                               # Override the listen address
  captionapi extract https://youtu.be/dQw4w9WgXcQ             # Print clean text
  captionapi extract --detailed dQw4w9WgXcQ                   # Timestamped segments as JSON

For help on specific command: captionapi <command> -h
`)
}

func cmdServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", "", "Listen address (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: captionapi serve [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}

	logger := cfg.NewLogger(os.Stderr)

	ext, err := buildExtractor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	srv := server.New(ext, server.Options{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.ListenAndServe(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	detailed := fs.Bool("detailed", false, "Emit timestamped segments as JSON")
	timeout := fs.Duration("timeout", 60*time.Second, "Overall extraction timeout")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: captionapi extract [flags] <url-or-video-id>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing video URL\n")
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	ext, err := buildExtractor(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if *detailed {
		result, err := ext.ExtractDetailed(ctx, argv[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	result, err := ext.ExtractClean(ctx, argv[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(result.CleanText)
}

// buildExtractor wires the HTTP client, platform client, and pipeline
// from configuration.
func buildExtractor(cfg *config.Config) (*extractor.Extractor, error) {
	logger := cfg.NewLogger(os.Stderr)

	httpCfg := ythttp.DefaultConfig()
	httpCfg.Timeout = time.Duration(cfg.RequestTimeout) * time.Second
	httpCfg.Retry = retry.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxBackoff:     cfg.MaxBackoff,
		Multiplier:     2.0,
		JitterFraction: 0.2,
	}
	httpCfg.RateLimiter.RequestsPerSecond = cfg.RequestsPerSecond

	httpClient := ythttp.New(httpCfg)

	clientOpts := []youtube.ClientOption{youtube.WithLogger(logger)}
	if cfg.YouTubeAPIKey != "" {
		dataAPI, err := youtube.NewDataAPIClient(context.Background(), cfg.YouTubeAPIKey)
		if err != nil {
			return nil, fmt.Errorf("create data api client: %w", err)
		}
		clientOpts = append(clientOpts, youtube.WithMetadataSource(dataAPI))
	}

	client := youtube.NewClient(httpClient, clientOpts...)

	return extractor.New(client, extractor.Options{
		MaxVideoDuration: float64(cfg.MaxVideoDuration),
		DefaultLanguage:  cfg.DefaultLanguage,
		FormatPreference: cfg.Formats(),
	}, logger), nil
}
