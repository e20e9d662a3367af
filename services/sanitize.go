package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Free-text fields arrive from a rich client; strip any markup before it
// reaches the database so stored values are plain text.
var sanitizePolicy = bluemonday.StrictPolicy()

// SanitizeText strips all HTML from a free-text input and trims whitespace
func SanitizeText(input string) string {
	return strings.TrimSpace(sanitizePolicy.Sanitize(input))
}
