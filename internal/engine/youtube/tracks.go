package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_transcript/internal/engine"
	"github.com/anatolykoptev/go_transcript/internal/engine/transcript"
)

// tracksFromWatchPage scrapes the caption track list out of the player
// response embedded in the video's watch page.
func (c *Client) tracksFromWatchPage(ctx context.Context, videoID string) ([]transcript.Track, error) {
	engine.IncrWatchPageRequests()
	body, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}
	return parseWatchPage(body)
}

// parseWatchPage locates the embedded ytInitialPlayerResponse JSON and maps
// it to caption tracks.
func parseWatchPage(body []byte) ([]transcript.Track, error) {
	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, fmt.Errorf("%w: player response not found in watch page", transcript.ErrRequestFailed)
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, fmt.Errorf("%w: unbalanced player response JSON", transcript.ErrRequestFailed)
	}
	var resp playerResp
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode player response: %v", transcript.ErrRequestFailed, err)
	}
	return tracksFromPlayerResp(&resp)
}

// fetchWatchPage GETs the watch page, through the stealth browser client
// when one is configured, otherwise with a rotating plain-HTTP User-Agent.
func (c *Client) fetchWatchPage(ctx context.Context, videoID string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}
	target := ytWatchURL + videoID

	if c.browser != nil {
		headers := engine.ChromeHeaders()
		headers["accept-language"] = "en-US,en;q=0.9"
		data, _, status, err := c.browser.Do(http.MethodGet, target, headers, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: watch page: %v", transcript.ErrRequestFailed, err)
		}
		if err := checkStatus(status); err != nil {
			return nil, err
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: watch page: %v", transcript.ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, watchPageMaxBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read watch page: %v", transcript.ErrRequestFailed, err)
	}
	return body, nil
}

// tracksFromPlayer queries the Innertube /player endpoint with an ANDROID
// client identity, which serves caption listings without cookies or consent
// interstitials.
func (c *Client) tracksFromPlayer(ctx context.Context, videoID string) ([]transcript.Track, error) {
	engine.IncrPlayerRequests()
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, ytPlayerURL+"?prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", ytAndroidUA)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: player endpoint: %v", transcript.ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	var player playerResp
	if err := json.NewDecoder(io.LimitReader(resp.Body, playerMaxBytes)).Decode(&player); err != nil {
		return nil, fmt.Errorf("%w: decode player response: %v", transcript.ErrRequestFailed, err)
	}
	return tracksFromPlayerResp(&player)
}

// tracksFromPlayerResp maps a player response onto the track model. The
// playability verdict is inspected first: an unavailable video also has no
// captions block, and reporting it as "disabled" would mislead.
func tracksFromPlayerResp(resp *playerResp) ([]transcript.Track, error) {
	if ps := resp.PlayabilityStatus; ps != nil {
		switch ps.Status {
		case "ERROR", "UNPLAYABLE":
			if ps.Reason != "" {
				return nil, fmt.Errorf("%w: %s", transcript.ErrVideoUnavailable,
					engine.TruncateRunes(ps.Reason, 120, "..."))
			}
			return nil, transcript.ErrVideoUnavailable
		case "LOGIN_REQUIRED":
			// Datacenter IPs and age-gated videos both land here.
			return nil, fmt.Errorf("%w: login required", transcript.ErrRequestBlocked)
		}
	}
	if resp.Captions == nil {
		return nil, transcript.ErrTranscriptsDisabled
	}

	raw := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	tracks := make([]transcript.Track, 0, len(raw))
	for _, t := range raw {
		if needsPoToken(t.BaseURL) {
			continue
		}
		tracks = append(tracks, transcript.Track{
			Language:       displayLanguage(t),
			LanguageCode:   t.LanguageCode,
			IsGenerated:    t.Kind == "asr",
			IsTranslatable: t.IsTranslatable,
			BaseURL:        t.BaseURL,
		})
	}
	return tracks, nil
}

// needsPoToken detects caption URLs gated behind a proof-of-origin token
// experiment. Fetching them without the token returns an empty document, so
// they are skipped during enumeration.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

func displayLanguage(t captionTrack) string {
	if name := t.Name.String(); name != "" {
		return name
	}
	return t.LanguageCode
}
