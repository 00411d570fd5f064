package transcript

import "regexp"

// Candidate patterns for locating a video ID inside the known YouTube URL
// layouts (watch?v=, youtu.be/, embed/, /v/, /e/, user pages). Tried in
// order; the first capture that validates wins. The first pattern also
// admits a bare 11-character ID, so callers can pass IDs where URLs are
// expected.
var videoIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:v=|v/|vi=|vi/|youtu\.be/|embed/|/v/|/e/|watch\?v=|youtube\.com/user/[^#]*#[^/]*/)*([^#&?]*)`),
	regexp.MustCompile(`(?:youtube\.com/(?:[^/]+/.+/|(?:v|e(?:mbed)?)/|.*[?&]v=)|youtu\.be/)([^"&?/\s]{11})`),
}

var videoIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID derives the canonical 11-character video ID from a YouTube
// URL or bare ID.
func ExtractVideoID(reference string) (string, error) {
	for _, re := range videoIDPatterns {
		m := re.FindStringSubmatch(reference)
		if m == nil {
			continue
		}
		if id := m[1]; ValidateVideoID(id) {
			return id, nil
		}
	}
	return "", &InvalidReferenceError{Reference: reference}
}

// ValidateVideoID reports whether id is structurally a video ID: exactly
// 11 characters from [A-Za-z0-9_-].
func ValidateVideoID(id string) bool {
	return videoIDRE.MatchString(id)
}
