// Package transcriptserver exposes the transcript engine over MCP: three
// tools plus a youtube://transcript/{video_id} resource. Operations never
// fail at the protocol level; every failure is folded into the returned
// message string so clients always get something readable.
package transcriptserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// Service bundles what the tool handlers need: the fetch orchestrator and
// the request defaults.
type Service struct {
	Fetcher         *transcript.Fetcher
	DefaultLanguage string
}

// TranscriptFromURL implements get_transcript_from_url: resolve the URL,
// fetch with retries, render in the requested format.
func (s *Service) TranscriptFromURL(ctx context.Context, url, language, formatType string) string {
	engine.IncrTranscriptRequests()

	videoID, err := transcript.ExtractVideoID(url)
	if err != nil {
		slog.Warn("get_transcript_from_url: invalid reference", slog.String("url", url))
		return fmt.Sprintf("URL Error: Invalid YouTube URL or video ID: %s", url)
	}

	result, err := s.fetch(ctx, videoID, language)
	if err != nil {
		slog.Warn("get_transcript_from_url: fetch failed",
			slog.String("video_id", videoID), slog.Any("error", err))
		return errorMessage(err)
	}

	format := transcript.ParseFormat(formatType)
	rendered, err := transcript.Render(result.Segments, format)
	if err != nil {
		return "Unexpected error: " + err.Error()
	}
	slog.Info("get_transcript_from_url: done",
		slog.String("video_id", videoID),
		slog.String("language", result.Language),
		slog.Int("segments", len(result.Segments)))
	if format != transcript.FormatText {
		return rendered
	}
	return fmt.Sprintf("Transcript for %s (Language: %s):\n\n%s", url, result.Language, rendered)
}

// TranscriptFromID implements get_transcript_from_id. Same flow as
// TranscriptFromURL but takes a bare video ID and validates it structurally
// instead of resolving.
func (s *Service) TranscriptFromID(ctx context.Context, videoID, language, formatType string) string {
	engine.IncrTranscriptRequests()

	if !transcript.ValidateVideoID(videoID) {
		return fmt.Sprintf("Error: Invalid video ID format. Must be 11 characters: %s", videoID)
	}

	result, err := s.fetch(ctx, videoID, language)
	if err != nil {
		slog.Warn("get_transcript_from_id: fetch failed",
			slog.String("video_id", videoID), slog.Any("error", err))
		return errorMessage(err)
	}

	format := transcript.ParseFormat(formatType)
	rendered, err := transcript.Render(result.Segments, format)
	if err != nil {
		return "Unexpected error: " + err.Error()
	}
	slog.Info("get_transcript_from_id: done",
		slog.String("video_id", videoID),
		slog.String("language", result.Language),
		slog.Int("segments", len(result.Segments)))
	if format != transcript.FormatText {
		return rendered
	}
	return fmt.Sprintf("Transcript for video %s (Language: %s):\n\n%s", videoID, result.Language, rendered)
}

// ListAvailable implements list_available_transcripts: enumerate caption
// tracks for a video given by URL or bare ID. Zero tracks is reported as a
// message, not an error.
func (s *Service) ListAvailable(ctx context.Context, reference string) string {
	engine.IncrListRequests()

	videoID := reference
	if !transcript.ValidateVideoID(videoID) {
		id, err := transcript.ExtractVideoID(reference)
		if err != nil {
			return fmt.Sprintf("Error: Invalid video ID or URL: %s", reference)
		}
		videoID = id
	}

	tracks, err := s.Fetcher.ListTracks(ctx, videoID)
	if err != nil {
		slog.Warn("list_available_transcripts: listing failed",
			slog.String("video_id", videoID), slog.Any("error", err))
		return errorMessage(err)
	}
	if len(tracks) == 0 {
		return "No transcripts available for video " + videoID
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Available transcripts for video %s:\n\n", videoID)
	for i, t := range tracks {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, t.Language, t.LanguageCode)
		fmt.Fprintf(&sb, "   Generated: %s\n", yesNo(t.IsGenerated))
		fmt.Fprintf(&sb, "   Translatable: %s\n\n", yesNo(t.IsTranslatable))
	}
	slog.Info("list_available_transcripts: done",
		slog.String("video_id", videoID), slog.Int("tracks", len(tracks)))
	return sb.String()
}

// fetch runs the retry-orchestrated fetch with the effective language
// preference, logging when the whole operation turns out slow.
func (s *Service) fetch(ctx context.Context, videoID, language string) (transcript.FetchResult, error) {
	langs := transcript.LanguagePreference(s.language(language))
	var result transcript.FetchResult
	err := engine.TrackOperation(ctx, "fetch_transcript", func(ctx context.Context) error {
		var ferr error
		result, ferr = s.Fetcher.FetchWithRetry(ctx, videoID, langs)
		return ferr
	})
	return result, err
}

func (s *Service) language(requested string) string {
	if requested != "" {
		return requested
	}
	if s.DefaultLanguage != "" {
		return s.DefaultLanguage
	}
	return "en"
}

// errorMessage folds a transcript error into the boundary string contract.
// Anything outside the known taxonomy becomes an "Unexpected error" string.
func errorMessage(err error) string {
	var parseErr *transcript.ParseError
	switch {
	case errors.Is(err, transcript.ErrTranscriptsDisabled):
		return "Error: Transcripts are disabled for this video"
	case errors.Is(err, transcript.ErrVideoUnavailable):
		return "Error: Video is unavailable or does not exist"
	case errors.Is(err, transcript.ErrNoTranscript):
		return "Error: No transcript found for this video"
	case errors.Is(err, transcript.ErrRequestBlocked):
		return "Error: Request blocked. Please try again later"
	case errors.Is(err, transcript.ErrRequestFailed):
		return "Error: YouTube request failed. Please try again later"
	case errors.Is(err, transcript.ErrRetriesExhausted):
		return "Error: All retry attempts failed"
	case errors.As(err, &parseErr):
		return "Error: " + parseErr.Error()
	default:
		return "Unexpected error: " + err.Error()
	}
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
