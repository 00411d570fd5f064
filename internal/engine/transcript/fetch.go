package transcript

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/anatolykoptev/go_transcript/internal/engine"
)

// DefaultMaxAttempts is the fetch attempt limit when none is configured.
const DefaultMaxAttempts = 3

// Fetcher coordinates track selection and caption retrieval with bounded,
// failure-aware retries. Safe for concurrent use; it holds no per-request
// state.
type Fetcher struct {
	Provider    Provider
	MaxAttempts int // attempts per fetch; <= 0 means DefaultMaxAttempts

	// sleep is swapped in tests to observe the backoff schedule.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewFetcher returns a Fetcher over p with the given attempt limit.
func NewFetcher(p Provider, maxAttempts int) *Fetcher {
	return &Fetcher{Provider: p, MaxAttempts: maxAttempts}
}

// LanguagePreference builds the ordered language candidates for a request:
// the requested language first, then "en" as fallback.
func LanguagePreference(language string) []string {
	if language == "" || language == "en" {
		return []string{"en"}
	}
	return []string{language, "en"}
}

// FetchWithRetry retrieves the transcript for videoID, preferring caption
// languages in the given order. Terminal conditions (disabled, unavailable,
// no transcript) propagate immediately. Parse failures back off
// exponentially (1s, 2s, 4s, ...), blocked requests linearly in 5s steps,
// and other upstream failures linearly in 1s steps with the last error
// remembered for the final verdict. Each attempt re-enumerates tracks so a
// transient listing failure cannot poison the whole fetch.
func (f *Fetcher) FetchWithRetry(ctx context.Context, videoID string, languages []string) (FetchResult, error) {
	maxAttempts := f.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := f.fetchOnce(ctx, videoID, languages)
		if err == nil {
			return result, nil
		}

		switch {
		case isTerminal(err):
			return FetchResult{}, err

		case isParseFailure(err):
			if attempt == maxAttempts {
				var pe *ParseError
				errors.As(err, &pe)
				return FetchResult{}, &ParseError{Attempts: maxAttempts, Err: pe.Err}
			}
			wait := time.Duration(1<<(attempt-1)) * time.Second
			slog.Warn("transcript parse failed, retrying",
				slog.String("video_id", videoID),
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.Any("error", err))
			engine.IncrFetchRetries()
			if werr := f.wait(ctx, wait); werr != nil {
				return FetchResult{}, werr
			}

		case errors.Is(err, ErrRequestBlocked):
			if attempt == maxAttempts {
				return FetchResult{}, err
			}
			wait := time.Duration(5*attempt) * time.Second
			slog.Warn("transcript request blocked, backing off",
				slog.String("video_id", videoID),
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait))
			engine.IncrFetchRetries()
			if werr := f.wait(ctx, wait); werr != nil {
				return FetchResult{}, werr
			}

		case errors.Is(err, ErrRequestFailed):
			lastErr = err
			if attempt == maxAttempts {
				break
			}
			wait := time.Duration(attempt) * time.Second
			slog.Warn("transcript request failed, retrying",
				slog.String("video_id", videoID),
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				slog.Any("error", err))
			engine.IncrFetchRetries()
			if werr := f.wait(ctx, wait); werr != nil {
				return FetchResult{}, werr
			}

		default:
			// Outside the provider taxonomy; not retryable here.
			return FetchResult{}, err
		}
	}

	if lastErr != nil {
		return FetchResult{}, lastErr
	}
	return FetchResult{}, ErrRetriesExhausted
}

// ListTracks enumerates the caption tracks for videoID. A single upstream
// call with no retry loop: listing failures are terminal for listing. Zero
// tracks is a valid result, not an error.
func (f *Fetcher) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	return f.Provider.ListTracks(ctx, videoID)
}

// fetchOnce performs one full fetch round: enumerate tracks, select by
// language preference, retrieve the selected track's content.
func (f *Fetcher) fetchOnce(ctx context.Context, videoID string, languages []string) (FetchResult, error) {
	tracks, err := f.Provider.ListTracks(ctx, videoID)
	if err != nil {
		return FetchResult{}, err
	}
	if len(tracks) == 0 {
		return FetchResult{}, ErrNoTranscript
	}
	track := selectTrack(tracks, languages)
	segments, err := f.Provider.FetchTrack(ctx, track)
	if err != nil {
		return FetchResult{}, err
	}
	return FetchResult{Segments: segments, Language: track.LanguageCode}, nil
}

// selectTrack picks the first track matching the preference order, falling
// back to the first enumerated track. Fallback order is whatever the
// upstream returned; it carries no stability guarantee.
func selectTrack(tracks []Track, languages []string) Track {
	for _, lang := range languages {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	return tracks[0]
}

func (f *Fetcher) wait(ctx context.Context, d time.Duration) error {
	if f.sleep != nil {
		return f.sleep(ctx, d)
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
