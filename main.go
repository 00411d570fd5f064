// go_transcript — YouTube Transcript MCP server.
//
// Exposes three tools (get_transcript_from_url, get_transcript_from_id,
// list_available_transcripts) and a youtube://transcript/{video_id}
// resource over the Model Context Protocol.
package main

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/anatolykoptev/go-kit/env"
	"github.com/anatolykoptev/go-mcpserver"
	stealth "github.com/anatolykoptev/go-stealth"
	"github.com/anatolykoptev/go-stealth/proxypool"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
	"github.com/anatolykoptev/go_transcript/internal/engine/youtube"
	"github.com/anatolykoptev/go_transcript/internal/transcriptserver"
)

var (
	version = "dev"
	mcpPort = env.Str("MCP_PORT", "8000")
)

func main() {
	initEngine()

	slog.Info("starting go_transcript",
		slog.String("port", mcpPort),
	)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "go_transcript",
		Version: version,
	}, nil)

	svc := &transcriptserver.Service{
		Fetcher:         transcript.NewFetcher(youtube.NewClient(), engine.Cfg.MaxFetchAttempts),
		DefaultLanguage: engine.Cfg.DefaultLanguage,
	}
	transcriptserver.RegisterTools(server, svc)
	transcriptserver.RegisterResources(server, svc)
	slog.Info("transcript tools registered",
		slog.Int("tools", 3),
		slog.String("default_language", engine.Cfg.DefaultLanguage),
		slog.Int("max_attempts", engine.Cfg.MaxFetchAttempts))

	if err := mcpserver.Run(server, mcpserver.Config{
		Name:         "go_transcript",
		Version:      version,
		Port:         mcpPort,
		WriteTimeout: 120 * time.Second,
		Metrics:      engine.FormatMetrics,
	}); err != nil {
		slog.Error("server failed", slog.Any("error", err))
	}
}

// initEngine wires configuration from environment variables and constructs
// the shared HTTP clients.
func initEngine() {
	fetchTimeout := env.Duration("FETCH_TIMEOUT", 15*time.Second)
	c := engine.Config{
		MaxFetchAttempts: env.Int("MAX_FETCH_ATTEMPTS", 3),
		DefaultLanguage:  env.Str("DEFAULT_LANGUAGE", "en"),
		FetchTimeout:     fetchTimeout,
		RateLimit:        env.Float("YT_RATE_LIMIT", 2.5),
		RateBurst:        env.Int("YT_RATE_BURST", 2),
		HTTPClient: &http.Client{
			Timeout: fetchTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     60 * time.Second,
			},
		},
	}

	var opts []stealth.ClientOption
	opts = append(opts, stealth.WithTimeout(15))

	if apiKey := env.Str("WEBSHARE_API_KEY", ""); apiKey != "" {
		pool, err := proxypool.NewWebshare(apiKey)
		if err != nil {
			slog.Warn("proxy pool init failed, running without proxy", slog.Any("error", err))
		} else {
			opts = append(opts, stealth.WithProxyPool(pool))
			slog.Info("proxy pool initialized", slog.Int("proxies", pool.Len()))
		}
	}

	bc, err := stealth.NewClient(opts...)
	if err != nil {
		slog.Warn("stealth client init failed, watch pages will use plain HTTP", slog.Any("error", err))
	} else {
		c.BrowserClient = bc
		slog.Info("stealth browser client initialized")
	}

	engine.Init(c)
}
