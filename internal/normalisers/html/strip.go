package html

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Pre-compiled regular expressions for HTML parsing performance.
var (
	scriptTag     = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	styleTag      = regexp.MustCompile(`(?is)<style[^>]*>.*?</style>`)
	svgTag        = regexp.MustCompile(`(?is)<svg[^>]*>.*?</svg>`)
	htmlComments  = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockBoundary = regexp.MustCompile(`(?i)</?(p|div|br|hr|h[1-6]|li|ul|ol|tr|blockquote|pre|table|section)\b[^>]*/?>`)
	allTags       = regexp.MustCompile(`<[^>]+>`)
)

// Text converts an HTML fragment into a single line of plain text.
// Block boundaries become spaces so adjacent paragraphs do not fuse words.
// Plain text passes through with only entity decoding and whitespace
// collapsing applied.
func Text(s string) string {
	if s == "" {
		return ""
	}

	if strings.ContainsRune(s, '<') {
		// Remove script, style and svg tags entirely
		s = scriptTag.ReplaceAllString(s, "")
		s = styleTag.ReplaceAllString(s, "")
		s = svgTag.ReplaceAllString(s, "")
		s = htmlComments.ReplaceAllString(s, "")

		s = blockBoundary.ReplaceAllString(s, " ")
		s = allTags.ReplaceAllString(s, "")
	}

	if strings.ContainsRune(s, '&') {
		s = html.UnescapeString(s)
	}

	return strings.Join(strings.Fields(s), " ")
}

// Summary is Text capped at maxRunes, cut at a word boundary with an
// ellipsis. A non-positive maxRunes disables the cap.
func Summary(s string, maxRunes int) string {
	s = Text(s)
	if maxRunes <= 0 || utf8.RuneCountInString(s) <= maxRunes {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndexByte(cut, ' '); i > maxRunes/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:-") + "..."
}

// DescriptionLimit caps provider descriptions. Longer text adds keyword
// matches from unrelated sections (sponsor blurbs, link lists) without
// adding signal.
const DescriptionLimit = 500
