package util

import "strings"

// TruncateString truncates a string to maxRunes characters (rune-based, not byte-based)
// If truncated, appends "..." to the result
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes]) + "..."
}

// SanitizeInput trims user text and collapses internal whitespace runs so
// prompts stay compact.
func SanitizeInput(s string, maxRunes int) string {
	s = strings.Join(strings.Fields(s), " ")
	if maxRunes > 0 {
		runes := []rune(s)
		if len(runes) > maxRunes {
			s = string(runes[:maxRunes])
		}
	}
	return s
}

// Preview returns at most n bytes of s for log fields.
func Preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
