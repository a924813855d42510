package srt

import (
	"regexp"
	"strings"

	"subdeck/internal/textutil"
)

var (
	markupTagPattern     = regexp.MustCompile(`<[^>]+>`)
	styleOverridePattern = regexp.MustCompile(`\{[^}]*\}`)
	annotationPattern    = regexp.MustCompile(`\[[^\]]+\]`)
	musicNoteReplacer    = strings.NewReplacer("♪", " ", "♫", " ")
)

// creditPatterns flag captions that advertise the subtitle source rather
// than carry dialogue.
var creditPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)subtitles`),
	regexp.MustCompile(`(?i)opensubtitles`),
	regexp.MustCompile(`(?i)subtitles? by`),
	regexp.MustCompile(`(?i)synced? and corrected`),
	regexp.MustCompile(`(?i)advertise (your|yours?) product`),
	regexp.MustCompile(`(?i)http(s)?://`),
	regexp.MustCompile(`(?i)\bwww\.`),
	regexp.MustCompile(`(?i)\bsubscene\b`),
	regexp.MustCompile(`(?i)\byts\b`),
	regexp.MustCompile(`(?i)\byify\b`),
}

// CleanCaption joins caption lines and strips markup, style directives,
// bracketed annotations and music glyphs.
func CleanCaption(lines []string) string {
	text := strings.Join(lines, " ")
	text = markupTagPattern.ReplaceAllString(text, "")
	text = styleOverridePattern.ReplaceAllString(text, "")
	text = annotationPattern.ReplaceAllString(text, "")
	text = musicNoteReplacer.Replace(text)
	return textutil.NFC(textutil.CollapseSpaces(text))
}

// IsCredit reports whether a cleaned caption looks like a subtitle credit or
// advertisement.
func IsCredit(text string) bool {
	payload := strings.TrimSpace(text)
	if payload == "" {
		return false
	}
	for _, pattern := range creditPatterns {
		if pattern.MatchString(payload) {
			return true
		}
	}
	return false
}
