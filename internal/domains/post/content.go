package post

import (
	"strings"
)

const (
	wordsPerMinute   = 200
	excerptMaxLength = 160
)

var markdownMarkerReplacer = strings.NewReplacer("#", "", "*", "", "`", "")

// ContentStats holds values derived from raw Markdown content.
type ContentStats struct {
	ReadingTime int
	Excerpt     string
}

// ProcessContent derives the estimated reading time and the excerpt
// from raw Markdown. Pure and total: any input yields a result, and
// reading time is never below one minute.
func ProcessContent(content string) ContentStats {
	words := len(strings.Fields(content))
	readingTime := (words + wordsPerMinute - 1) / wordsPerMinute
	if readingTime < 1 {
		readingTime = 1
	}

	return ContentStats{
		ReadingTime: readingTime,
		Excerpt:     deriveExcerpt(content),
	}
}

// deriveExcerpt takes the first non-empty line with Markdown emphasis,
// heading and code markers stripped, truncated to 160 characters.
func deriveExcerpt(content string) string {
	stripped := markdownMarkerReplacer.Replace(content)

	for _, line := range strings.Split(stripped, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		runes := []rune(line)
		if len(runes) > excerptMaxLength {
			runes = runes[:excerptMaxLength]
		}
		return string(runes) + "..."
	}

	return ""
}
