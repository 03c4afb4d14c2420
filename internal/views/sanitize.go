package views

import (
	"strings"
	"unicode"
)

// Sanitize drops terminal control characters from document text so a
// card cannot inject escape sequences. Newlines become spaces.
func Sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}

// SanitizeBlock is Sanitize for multi-line text; newlines are kept.
func SanitizeBlock(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n':
			return r
		case r == '\t':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, s)
}
