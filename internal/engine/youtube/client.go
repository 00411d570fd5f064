// Package youtube implements the transcript.Provider interface against
// YouTube's public caption surfaces. Track listing scrapes the watch page,
// falling back to the Innertube ANDROID player endpoint when the page is
// unusable; track content comes from the timedtext URL embedded in the
// listing. The client never retries; the transcript.Fetcher owns that.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// Client talks to YouTube. Construct with NewClient after engine.Init;
// zero value is not usable.
type Client struct {
	httpClient *http.Client
	browser    *engine.BrowserClient
	limiter    *rate.Limiter
}

// NewClient builds a Client from the engine configuration. A browser client,
// when configured, fetches watch pages with TLS fingerprint mimicry; the
// plain HTTP client covers everything else.
func NewClient() *Client {
	c := engine.Cfg
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.FetchTimeout}
	}
	limit := rate.Limit(c.RateLimit)
	if c.RateLimit <= 0 {
		limit = rate.Inf
	}
	burst := c.RateBurst
	if burst < 1 {
		burst = 1
	}
	return &Client{
		httpClient: httpClient,
		browser:    c.BrowserClient,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// ListTracks implements transcript.Provider.
func (c *Client) ListTracks(ctx context.Context, videoID string) ([]transcript.Track, error) {
	tracks, err := c.listTracks(ctx, videoID)
	if err != nil {
		engine.IncrUpstreamErrors()
	}
	return tracks, err
}

// FetchTrack implements transcript.Provider.
func (c *Client) FetchTrack(ctx context.Context, track transcript.Track) ([]transcript.Segment, error) {
	segments, err := c.fetchTimedText(ctx, track)
	if err != nil {
		engine.IncrUpstreamErrors()
	}
	return segments, err
}

func (c *Client) listTracks(ctx context.Context, videoID string) ([]transcript.Track, error) {
	tracks, err := c.tracksFromWatchPage(ctx, videoID)
	if err == nil {
		return tracks, nil
	}
	if isTerminalListing(err) {
		return nil, err
	}
	slog.Warn("youtube: watch page listing failed, trying player endpoint",
		slog.String("video_id", videoID),
		slog.Any("error", err))
	return c.tracksFromPlayer(ctx, videoID)
}

// isTerminalListing reports watch page verdicts that the player endpoint
// cannot overturn, so falling back would only burn a request.
func isTerminalListing(err error) bool {
	return errors.Is(err, transcript.ErrVideoUnavailable) ||
		errors.Is(err, transcript.ErrTranscriptsDisabled)
}

// wait blocks until the rate limiter admits one upstream request.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}

// checkStatus maps an HTTP status onto the provider error kinds. YouTube
// answers bot-flagged and rate-limited traffic with 403/429.
func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusTooManyRequests || code == http.StatusForbidden:
		return fmt.Errorf("%w: HTTP %d", transcript.ErrRequestBlocked, code)
	default:
		return fmt.Errorf("%w: HTTP %d", transcript.ErrRequestFailed, code)
	}
}
