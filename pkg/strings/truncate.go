// Package strings holds text helpers for CLI output and log-safe display.
package strings

import (
	"strings"
)

// DefaultDescriptionMaxLen is the column width used for tool descriptions in
// the `tools` table.
const DefaultDescriptionMaxLen = 60

// MinTruncateLen is the minimum maxLen value for Truncate.
// Values smaller than this would not leave room for meaningful content plus "...".
const MinTruncateLen = 4

// Truncate collapses all whitespace to single spaces and shortens s to at
// most maxLen runes, marking the cut with "...". maxLen is clamped to
// MinTruncateLen.
func Truncate(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
