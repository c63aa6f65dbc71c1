package pipeline

import (
	"regexp"
	"strings"
)

var (
	scriptPattern = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	stylePattern  = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	tagPattern    = regexp.MustCompile(`<[^>]*>`)

	// One or more blank lines. Paragraph boundaries must survive
	// normalization because the analyzer builds section hints from them.
	blankLinePattern = regexp.MustCompile(`\n[ \t\r]*\n[\s]*`)
)

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// Normalize cleans raw or HTML-flavored input: script and style blocks go
// first, then all remaining tags, then a fixed set of named entities is
// decoded. Entity decoding is a single pass, so double-encoded input
// (e.g. &amp;lt;) resolves one layer per call rather than looping; a
// repeated decode would wrongly un-escape text that is meant to read as
// a literal entity. Whitespace runs inside a paragraph collapse to a single space
// while blank-line paragraph boundaries are kept, and the result is
// truncated to maxChars keeping the prefix only. It never fails; empty
// in, empty out.
func Normalize(input string, maxChars int) string {
	s := scriptPattern.ReplaceAllString(input, " ")
	s = stylePattern.ReplaceAllString(s, " ")
	s = tagPattern.ReplaceAllString(s, " ")
	s = entityReplacer.Replace(s)
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var paragraphs []string
	for _, p := range blankLinePattern.Split(s, -1) {
		p = strings.Join(strings.Fields(p), " ")
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	s = strings.Join(paragraphs, "\n\n")

	if maxChars > 0 {
		runes := []rune(s)
		if len(runes) > maxChars {
			// Blunt prefix cut, no sentence-boundary awareness.
			s = strings.TrimSpace(string(runes[:maxChars]))
		}
	}

	return s
}
