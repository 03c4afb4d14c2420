// Package render turns the board into HTML: per-list card markup, the
// detail modal body and a complete standalone page.
package render

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for use in element content and quoted
// attribute values.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}
