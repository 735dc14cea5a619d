package knowledge

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Pre-compiled expressions for markup stripping.
var (
	scriptTag   = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag    = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	allTags     = regexp.MustCompile(`<[^>]+>`)
	whitespaces = regexp.MustCompile(`\s+`)
)

// Sanitize strips script and style blocks, removes remaining tags, decodes
// entities, collapses whitespace runs to single spaces and trims.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}
	t := scriptTag.ReplaceAllString(text, " ")
	t = styleTag.ReplaceAllString(t, " ")
	t = allTags.ReplaceAllString(t, " ")
	t = html.UnescapeString(t)
	t = whitespaces.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
