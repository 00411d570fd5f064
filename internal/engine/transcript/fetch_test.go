package transcript

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// mockProvider scripts ListTracks/FetchTrack responses by call number.
type mockProvider struct {
	listCalls  int
	fetchCalls int
	list       func(call int) ([]Track, error)
	fetch      func(call int, track Track) ([]Segment, error)
}

func (m *mockProvider) ListTracks(ctx context.Context, videoID string) ([]Track, error) {
	m.listCalls++
	return m.list(m.listCalls)
}

func (m *mockProvider) FetchTrack(ctx context.Context, track Track) ([]Segment, error) {
	m.fetchCalls++
	return m.fetch(m.fetchCalls, track)
}

func newTestFetcher(p Provider, attempts int) (*Fetcher, *[]time.Duration) {
	f := NewFetcher(p, attempts)
	slept := &[]time.Duration{}
	f.sleep = func(ctx context.Context, d time.Duration) error {
		*slept = append(*slept, d)
		return nil
	}
	return f, slept
}

var testSegments = []Segment{{Text: "hi", Start: 0}}

func assertSleeps(t *testing.T, got, want []time.Duration) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("backoff schedule = %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("backoff schedule = %v, want %v", got, want)
		}
	}
}

func TestFetchPrefersRequestedLanguage(t *testing.T) {
	tracks := []Track{
		{LanguageCode: "en", BaseURL: "u1"},
		{LanguageCode: "es", BaseURL: "u2"},
	}
	p := &mockProvider{
		list:  func(int) ([]Track, error) { return tracks, nil },
		fetch: func(_ int, tr Track) ([]Segment, error) { return testSegments, nil },
	}
	f, slept := newTestFetcher(p, 3)
	res, err := f.FetchWithRetry(context.Background(), "vid", []string{"es", "en"})
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if res.Language != "es" {
		t.Errorf("language = %q, want es", res.Language)
	}
	if p.listCalls != 1 || p.fetchCalls != 1 {
		t.Errorf("calls = %d list / %d fetch, want 1/1", p.listCalls, p.fetchCalls)
	}
	if len(*slept) != 0 {
		t.Errorf("slept %v, want none", *slept)
	}
}

func TestFetchFallsBackToFirstTrack(t *testing.T) {
	p := &mockProvider{
		list:  func(int) ([]Track, error) { return []Track{{LanguageCode: "es", BaseURL: "u"}}, nil },
		fetch: func(int, Track) ([]Segment, error) { return testSegments, nil },
	}
	f, _ := newTestFetcher(p, 3)
	res, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if res.Language != "es" {
		t.Errorf("language = %q, want es fallback", res.Language)
	}
	if p.listCalls != 1 {
		t.Errorf("listCalls = %d, want 1", p.listCalls)
	}
}

func TestFetchTerminalNoRetry(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"disabled", ErrTranscriptsDisabled, ErrTranscriptsDisabled},
		{"unavailable", fmt.Errorf("watch page: %w", ErrVideoUnavailable), ErrVideoUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockProvider{list: func(int) ([]Track, error) { return nil, tt.err }}
			f, slept := newTestFetcher(p, 3)
			_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if p.listCalls != 1 {
				t.Errorf("listCalls = %d, want 1", p.listCalls)
			}
			if len(*slept) != 0 {
				t.Errorf("slept %v, want none", *slept)
			}
		})
	}
}

func TestFetchZeroTracks(t *testing.T) {
	p := &mockProvider{list: func(int) ([]Track, error) { return []Track{}, nil }}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("error = %v, want ErrNoTranscript", err)
	}
	if p.listCalls != 1 || len(*slept) != 0 {
		t.Errorf("listCalls = %d slept = %v, want single attempt", p.listCalls, *slept)
	}
}

func TestFetchParseRetrySchedule(t *testing.T) {
	tracks := []Track{{LanguageCode: "en", BaseURL: "u"}}
	p := &mockProvider{
		list: func(int) ([]Track, error) { return tracks, nil },
		fetch: func(call int, _ Track) ([]Segment, error) {
			if call < 3 {
				return nil, &ParseError{Err: errors.New("bad xml")}
			}
			return testSegments, nil
		},
	}
	f, slept := newTestFetcher(p, 3)
	res, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if err != nil {
		t.Fatalf("FetchWithRetry: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("segments = %d, want 1", len(res.Segments))
	}
	if p.listCalls != 3 {
		t.Errorf("listCalls = %d, want 3 (re-enumerated per attempt)", p.listCalls)
	}
	want := []time.Duration{1 * time.Second, 2 * time.Second}
	assertSleeps(t, *slept, want)
}

func TestFetchParseExhausted(t *testing.T) {
	p := &mockProvider{
		list:  func(int) ([]Track, error) { return []Track{{LanguageCode: "en"}}, nil },
		fetch: func(int, Track) ([]Segment, error) { return nil, &ParseError{Err: errors.New("bad xml")} },
	}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error = %v, want ParseError", err)
	}
	if pe.Attempts != 3 {
		t.Errorf("Attempts = %d, want 3", pe.Attempts)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("error %q does not name the attempt count", err)
	}
	assertSleeps(t, *slept, []time.Duration{1 * time.Second, 2 * time.Second})
}

func TestFetchBlockedSchedule(t *testing.T) {
	p := &mockProvider{
		list: func(int) ([]Track, error) { return nil, fmt.Errorf("HTTP 429: %w", ErrRequestBlocked) },
	}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if !errors.Is(err, ErrRequestBlocked) {
		t.Fatalf("error = %v, want ErrRequestBlocked", err)
	}
	if p.listCalls != 3 {
		t.Errorf("listCalls = %d, want 3", p.listCalls)
	}
	assertSleeps(t, *slept, []time.Duration{5 * time.Second, 10 * time.Second})
}

func TestFetchTransientRemembered(t *testing.T) {
	p := &mockProvider{
		list: func(int) ([]Track, error) { return nil, fmt.Errorf("boom: %w", ErrRequestFailed) },
	}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("error = %v, want ErrRequestFailed", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q lost the original cause", err)
	}
	assertSleeps(t, *slept, []time.Duration{1 * time.Second, 2 * time.Second})
}

func TestFetchBlockedSupersedesTransient(t *testing.T) {
	p := &mockProvider{
		list: func(call int) ([]Track, error) {
			if call == 1 {
				return nil, fmt.Errorf("timeout: %w", ErrRequestFailed)
			}
			return nil, fmt.Errorf("HTTP 403: %w", ErrRequestBlocked)
		},
	}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if !errors.Is(err, ErrRequestBlocked) {
		t.Fatalf("error = %v, want the later blocked error", err)
	}
	assertSleeps(t, *slept, []time.Duration{1 * time.Second, 10 * time.Second})
}

func TestFetchUnknownErrorPassthrough(t *testing.T) {
	weird := errors.New("weird state")
	p := &mockProvider{list: func(int) ([]Track, error) { return nil, weird }}
	f, slept := newTestFetcher(p, 3)
	_, err := f.FetchWithRetry(context.Background(), "vid", []string{"en"})
	if !errors.Is(err, weird) {
		t.Fatalf("error = %v, want passthrough of %v", err, weird)
	}
	if p.listCalls != 1 || len(*slept) != 0 {
		t.Errorf("listCalls = %d slept = %v, want single attempt", p.listCalls, *slept)
	}
}

func TestFetchContextCanceled(t *testing.T) {
	p := &mockProvider{
		list: func(int) ([]Track, error) { return nil, fmt.Errorf("reset: %w", ErrRequestFailed) },
	}
	f := NewFetcher(p, 3)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchWithRetry(ctx, "vid", []string{"en"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if p.listCalls != 1 {
		t.Errorf("listCalls = %d, want no attempts after cancellation", p.listCalls)
	}
}

func TestListTracksPassthrough(t *testing.T) {
	blocked := fmt.Errorf("HTTP 429: %w", ErrRequestBlocked)
	p := &mockProvider{list: func(int) ([]Track, error) { return nil, blocked }}
	f, slept := newTestFetcher(p, 3)
	_, err := f.ListTracks(context.Background(), "vid")
	if !errors.Is(err, ErrRequestBlocked) {
		t.Fatalf("error = %v, want ErrRequestBlocked", err)
	}
	if p.listCalls != 1 || len(*slept) != 0 {
		t.Errorf("listing must not retry: listCalls = %d slept = %v", p.listCalls, *slept)
	}
}

func TestLanguagePreference(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"en"}},
		{"en", []string{"en"}},
		{"es", []string{"es", "en"}},
		{"pt-BR", []string{"pt-BR", "en"}},
	}
	for _, tt := range tests {
		got := LanguagePreference(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("LanguagePreference(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LanguagePreference(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestSelectTrack(t *testing.T) {
	tracks := []Track{
		{LanguageCode: "de"},
		{LanguageCode: "es"},
		{LanguageCode: "en"},
	}
	tests := []struct {
		name  string
		langs []string
		want  string
	}{
		{"first preference", []string{"es", "en"}, "es"},
		{"second preference", []string{"fr", "en"}, "en"},
		{"no match falls back to first", []string{"fr", "ja"}, "de"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := selectTrack(tracks, tt.langs); got.LanguageCode != tt.want {
				t.Errorf("selectTrack(%v) = %q, want %q", tt.langs, got.LanguageCode, tt.want)
			}
		})
	}
}
