package transcript

import (
	"errors"
	"fmt"
)

// Closed set of failure kinds for transcript retrieval. Providers map every
// upstream condition onto one of these, wrapping with %w so callers can
// classify with errors.Is; anything they cannot attribute more precisely
// collapses into ErrRequestFailed.
var (
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")
	ErrVideoUnavailable    = errors.New("video is unavailable or does not exist")
	ErrNoTranscript        = errors.New("no transcript found for this video")
	ErrRequestBlocked      = errors.New("request blocked by upstream")
	ErrRequestFailed       = errors.New("upstream request failed")
	ErrRetriesExhausted    = errors.New("all retry attempts failed")
)

// InvalidReferenceError reports input that cannot be resolved to a video ID.
type InvalidReferenceError struct {
	Reference string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("invalid video reference: %q", e.Reference)
}

// ParseError reports caption content that could not be decoded. Attempts is
// zero when a provider reports a single failed decode; the Fetcher sets it
// when parse failures persist through the final attempt.
type ParseError struct {
	Attempts int
	Err      error
}

func (e *ParseError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("failed to parse transcript content after %d attempts", e.Attempts)
	}
	return "parse transcript content: " + e.Err.Error()
}

func (e *ParseError) Unwrap() error { return e.Err }

// isTerminal reports failures that retrying can never fix.
func isTerminal(err error) bool {
	return errors.Is(err, ErrTranscriptsDisabled) ||
		errors.Is(err, ErrVideoUnavailable) ||
		errors.Is(err, ErrNoTranscript)
}

func isParseFailure(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
