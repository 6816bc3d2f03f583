package validation

import (
	"html"
	"strings"
)

// Field length limits applied to sanitized values before storage
const (
	TitleMaxLength       = 255
	DescriptionMaxLength = 5000
)

// SanitizeText neutralizes HTML-unsafe characters in a submitted text field
// and trims surrounding whitespace. Applied before storage and display so a
// field value can never carry markup.
func SanitizeText(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// IsBlank reports whether a submitted field is empty after trimming.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
