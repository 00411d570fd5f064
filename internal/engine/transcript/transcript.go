// Package transcript implements the transcript engine core: video reference
// resolution, caption track selection, retry-orchestrated fetching, and
// output rendering. Upstream access goes through the Provider interface;
// everything else here is deterministic and free of shared state.
package transcript

import "context"

// Track describes one caption track available for a video.
type Track struct {
	Language       string // display name, e.g. "English (auto-generated)"
	LanguageCode   string // e.g. "en", "es", "pt-BR"
	IsGenerated    bool   // true for speech-recognition tracks
	IsTranslatable bool
	BaseURL        string // provider content endpoint for this track
}

// Segment is one timed caption line.
type Segment struct {
	Text     string   `json:"text"`
	Start    float64  `json:"start"`
	Duration *float64 `json:"duration"`
}

// FetchResult is a fetched transcript plus the language code of the track
// that was actually used, which may differ from the requested one.
type FetchResult struct {
	Segments []Segment
	Language string
}

// Provider enumerates caption tracks and retrieves their content.
// Implementations map upstream failures onto the error kinds in errors.go
// and perform no retries of their own; the Fetcher owns the retry policy.
type Provider interface {
	ListTracks(ctx context.Context, videoID string) ([]Track, error)
	FetchTrack(ctx context.Context, track Track) ([]Segment, error)
}
