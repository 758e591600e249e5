package utils

import (
	"regexp"
	"strings"
)

var (
	// reImageMD matches markdown images: ![alt](url)
	reImageMD = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	// reImageHTML matches HTML image tags: <img ...>
	reImageHTML = regexp.MustCompile(`(?is)<img[^>]*>`)
	// reComment matches HTML comments: <!-- ... -->
	reComment = regexp.MustCompile(`(?s)<!--.*?-->`)
	// reExcessiveNewlines matches 3 or more newlines to compress them
	reExcessiveNewlines = regexp.MustCompile(`\n{3,}`)
)

// MarkdownClean strips content that adds no value as LLM context: images,
// HTML comments, and runs of blank lines. The query path applies it to the
// generated document before embedding it in a prompt.
func MarkdownClean(text string) string {
	text = reImageMD.ReplaceAllString(text, "")
	text = reImageHTML.ReplaceAllString(text, "")
	text = reComment.ReplaceAllString(text, "")
	text = reExcessiveNewlines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
