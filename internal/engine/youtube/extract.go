package youtube

// extractJSON returns the balanced JSON object at the start of b, or nil if
// none completes. Brace depth is tracked outside string literals, with
// backslash escapes honored so `"}"` and `"\\"` inside values do not skew
// the count.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if escaped {
			escaped = false
			continue
		}
		if inStr {
			switch c {
			case '\\':
				escaped = true
			case '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}
