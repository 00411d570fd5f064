package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"
)

// Metrics tracks operational counters across the engine.
var metrics struct {
	TranscriptRequests atomic.Int64
	ListRequests       atomic.Int64
	ResourceRequests   atomic.Int64
	FetchRetries       atomic.Int64
	WatchPageRequests  atomic.Int64
	PlayerRequests     atomic.Int64
	TimedtextRequests  atomic.Int64
	UpstreamErrors     atomic.Int64
}

// GetMetrics returns a snapshot of all metrics.
func GetMetrics() map[string]int64 {
	return map[string]int64{
		"transcript_requests": metrics.TranscriptRequests.Load(),
		"list_requests":       metrics.ListRequests.Load(),
		"resource_requests":   metrics.ResourceRequests.Load(),
		"fetch_retries":       metrics.FetchRetries.Load(),
		"watch_page_requests": metrics.WatchPageRequests.Load(),
		"player_requests":     metrics.PlayerRequests.Load(),
		"timedtext_requests":  metrics.TimedtextRequests.Load(),
		"upstream_errors":     metrics.UpstreamErrors.Load(),
	}
}

// FormatMetrics returns metrics as a simple text format for HTTP endpoint.
func FormatMetrics() string {
	m := GetMetrics()
	var sb strings.Builder
	keys := []string{
		"transcript_requests", "list_requests", "resource_requests",
		"fetch_retries",
		"watch_page_requests", "player_requests", "timedtext_requests",
		"upstream_errors",
	}
	for _, k := range keys {
		fmt.Fprintf(&sb, "%s %d\n", k, m[k])
	}
	return sb.String()
}

// Incrementors for the transcriptserver package.
func IncrTranscriptRequests() { metrics.TranscriptRequests.Add(1) }
func IncrListRequests()       { metrics.ListRequests.Add(1) }
func IncrResourceRequests()   { metrics.ResourceRequests.Add(1) }

// Incrementors for the transcript/ and youtube/ sub-packages.
func IncrFetchRetries()      { metrics.FetchRetries.Add(1) }
func IncrWatchPageRequests() { metrics.WatchPageRequests.Add(1) }
func IncrPlayerRequests()    { metrics.PlayerRequests.Add(1) }
func IncrTimedtextRequests() { metrics.TimedtextRequests.Add(1) }
func IncrUpstreamErrors()    { metrics.UpstreamErrors.Add(1) }

// TrackOperation logs a warning if an operation takes longer than threshold.
func TrackOperation(ctx context.Context, name string, fn func(context.Context) error) error {
	start := time.Now()
	err := fn(ctx)
	elapsed := time.Since(start)
	if elapsed > 5*time.Second {
		slog.Warn("slow operation", slog.String("op", name), slog.Duration("elapsed", elapsed))
	}
	return err
}
