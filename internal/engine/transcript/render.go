package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects a transcript output encoding.
type Format string

const (
	FormatText Format = "text" // "[MM:SS] line" per segment
	FormatJSON Format = "json" // pretty-printed segment array
	FormatRaw  Format = "raw"  // stable debug dump of the segments
)

// ParseFormat normalizes a requested format name. Unrecognized or empty
// names fall back to FormatText.
func ParseFormat(s string) Format {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON
	case "raw":
		return FormatRaw
	default:
		return FormatText
	}
}

// Render converts segments into the requested encoding. Deterministic:
// identical segments yield byte-identical output.
func Render(segments []Segment, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return renderJSON(segments)
	case FormatRaw:
		return renderRaw(segments), nil
	default:
		return renderText(segments), nil
	}
}

// renderText emits one "[MM:SS] text" line per segment. Segments whose text
// is empty after trimming are dropped. Minutes grow past 59 unclamped, so
// hour-long videos render as [75:30].
func renderText(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		total := int(seg.Start)
		lines = append(lines, fmt.Sprintf("[%02d:%02d] %s", total/60, total%60, text))
	}
	return strings.Join(lines, "\n")
}

// renderJSON emits the segment array as indented JSON without HTML escaping,
// so caption text survives byte-for-byte. A nil or empty sequence renders
// as "[]".
func renderJSON(segments []Segment) (string, error) {
	if len(segments) == 0 {
		return "[]", nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(segments); err != nil {
		return "", fmt.Errorf("encode segments: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// renderRaw dumps the segment sequence as received, for debugging.
func renderRaw(segments []Segment) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, seg := range segments {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "{text: %q, start: %g", seg.Text, seg.Start)
		if seg.Duration != nil {
			fmt.Fprintf(&sb, ", duration: %g", *seg.Duration)
		}
		sb.WriteByte('}')
	}
	sb.WriteByte(']')
	return sb.String()
}
