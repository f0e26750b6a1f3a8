package summary

import (
	"regexp"
	"strings"
)

var (
	markerLabelRe = regexp.MustCompile(`(?i)(?:🎯\s*)?\**(?:COMPLETED|Done)\**\s*:\s*`)
	emphasisRe    = regexp.MustCompile("[*_`]{1,3}")
	headingMarkRe = regexp.MustCompile(`(?m)^#{1,6}\s*`)
)

func stripEmphasis(s string) string {
	return strings.Join(strings.Fields(emphasisRe.ReplaceAllString(s, "")), " ")
}

// CleanForSpeech prepares a description for the TTS pipeline: marker
// labels, markdown markup and emoji are removed, except emoji inside
// bracketed emotion tags, and whitespace is collapsed.
func CleanForSpeech(s string) string {
	s = markerLabelRe.ReplaceAllString(s, "")
	s = headingMarkRe.ReplaceAllString(s, "")
	s = emphasisRe.ReplaceAllString(s, "")
	s = stripEmojiOutsideTags(s)
	return strings.Join(strings.Fields(s), " ")
}

// stripEmojiOutsideTags removes emoji runes unless they appear inside a
// [bracketed] span, which is how emotion tags carry their emoji.
func stripEmojiOutsideTags(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isEmoji(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isEmoji(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF: // pictographs, transport, supplemental
		return true
	case r >= 0x2600 && r <= 0x27BF: // misc symbols, dingbats
		return true
	case r >= 0x1F000 && r <= 0x1F2FF: // mahjong, enclosed ideographs
		return true
	case r == 0xFE0F || r == 0x200D: // variation selector, ZWJ
		return true
	}
	return false
}
