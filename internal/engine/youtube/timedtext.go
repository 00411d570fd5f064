package youtube

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// fetchTimedText downloads and decodes the srv1 XML behind a caption
// track's base URL.
func (c *Client) fetchTimedText(ctx context.Context, track transcript.Track) ([]transcript.Segment, error) {
	engine.IncrTimedtextRequests()
	if track.BaseURL == "" {
		return nil, fmt.Errorf("%w: track has no content URL", transcript.ErrNoTranscript)
	}
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.BaseURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.UserAgentBot)
	req.Header.Set("Accept-Language", "en-US")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: timedtext: %v", transcript.ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, timedtextMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read timedtext: %v", transcript.ErrRequestFailed, err)
	}
	return parseTimedText(body)
}

// parseTimedText decodes srv1 timedtext XML into segments. Lines with no
// text node are dropped; caption markup and entity residue are cleaned per
// line. An empty or undecodable document is a parse failure, which the
// fetch orchestrator retries.
func parseTimedText(body []byte) ([]transcript.Segment, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &transcript.ParseError{Err: errors.New("empty timedtext response")}
	}
	var tt ytTimedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, &transcript.ParseError{Err: err}
	}

	segments := make([]transcript.Segment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		if line.Text == "" {
			continue
		}
		start, err := strconv.ParseFloat(line.Start, 64)
		if err != nil {
			return nil, &transcript.ParseError{Err: fmt.Errorf("bad start attribute %q", line.Start)}
		}
		seg := transcript.Segment{
			Text:  engine.CleanCaptionText(line.Text),
			Start: start,
		}
		if line.Dur != "" {
			if d, derr := strconv.ParseFloat(line.Dur, 64); derr == nil {
				seg.Duration = &d
			}
		}
		segments = append(segments, seg)
	}
	return segments, nil
}
