package feedback

import (
	"html"
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

// RenderHTML escapes content, then turns **bold** spans into <strong> and
// newlines into <br />.
func RenderHTML(content string) string {
	escaped := html.EscapeString(content)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	return strings.ReplaceAll(escaped, "\n", "<br />")
}
