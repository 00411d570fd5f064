package engine

import (
	"html"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	xhtml "golang.org/x/net/html"
)

// UserAgentBot identifies plain (non-browser-mimicking) requests.
const UserAgentBot = "GoTranscript/1.0"

// CleanCaptionText decodes HTML entities and strips formatting markup
// (<b>, <i>, <font>, ...) from a caption line. YouTube double-escapes
// entities in timedtext ("&amp;#39;" on the wire), so XML decoding still
// leaves "&#39;"-style residue behind. Outer whitespace is preserved;
// renderers trim as needed.
func CleanCaptionText(s string) string {
	s = html.UnescapeString(s)
	if !strings.ContainsRune(s, '<') {
		return s
	}
	var sb strings.Builder
	tok := xhtml.NewTokenizer(strings.NewReader(s))
	for {
		tt := tok.Next()
		if tt == xhtml.ErrorToken {
			break
		}
		if tt == xhtml.TextToken {
			sb.Write(tok.Text())
		}
	}
	return sb.String()
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}
