// Package filename turns article titles into filesystem-safe file names.
package filename

import (
	"regexp"
	"strings"
)

// DefaultMaxLength is the maximum file name length, in runes, used by Sanitize.
const DefaultMaxLength = 255

// Untitled replaces titles that sanitize to nothing.
const Untitled = "untitled"

var (
	reservedRun   = regexp.MustCompile(`[\\/:*?"<>|]+`)
	whitespaceRun = regexp.MustCompile(`[\s\p{Z}]+`)
	underscoreRun = regexp.MustCompile(`__+`)
)

// Sanitize normalizes title with DefaultMaxLength.
func Sanitize(title string) string {
	return SanitizeMax(title, DefaultMaxLength)
}

// SanitizeMax lower-cases and trims title, replaces path-reserved characters and
// whitespace with underscores, and truncates the result to maxLength runes.
// A maxLength of zero or less means DefaultMaxLength.
func SanitizeMax(title string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}

	s := strings.TrimSpace(strings.ToLower(title))
	s = reservedRun.ReplaceAllString(s, "_")
	s = whitespaceRun.ReplaceAllString(s, "_")
	s = underscoreRun.ReplaceAllString(s, "_")

	if s == "" {
		s = Untitled
	}

	return truncateRunes(s, maxLength)
}

func truncateRunes(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
