package tts

import (
	"regexp"
	"strings"
)

// emotionTable maps the tag emoji to the emotion it must label. A
// bracketed tag whose emoji and label disagree is left untouched.
var emotionTable = map[string]string{
	"✅":  "success",
	"❌":  "error",
	"🎉": "celebration",
	"⚠️": "warning",
	"ℹ️": "info",
	"🚀": "launch",
	"💡": "idea",
	"🔔": "notification",
}

// emotionPresets are the synthesis parameters used when a tag matched.
var emotionPresets = map[string]VoiceSettings{
	"success":      {Stability: 0.45, SimilarityBoost: 0.70},
	"error":        {Stability: 0.70, SimilarityBoost: 0.55},
	"celebration":  {Stability: 0.30, SimilarityBoost: 0.80},
	"warning":      {Stability: 0.65, SimilarityBoost: 0.55},
	"info":         {Stability: 0.55, SimilarityBoost: 0.60},
	"launch":       {Stability: 0.35, SimilarityBoost: 0.75},
	"idea":         {Stability: 0.45, SimilarityBoost: 0.65},
	"notification": {Stability: 0.50, SimilarityBoost: 0.60},
}

var emotionTagRe = regexp.MustCompile(`^\s*\[(\S+)\s+([a-z]+)\]\s*`)

// ExtractEmotion looks for a leading "[emoji label]" tag. When emoji
// and label agree per the fixed table, the tag is stripped from the
// spoken text and the emotion name is returned as a hint. Otherwise the
// message is returned unchanged with no hint.
func ExtractEmotion(message string) (spoken string, emotion string, ok bool) {
	m := emotionTagRe.FindStringSubmatch(message)
	if m == nil {
		return message, "", false
	}
	emoji, label := m[1], m[2]
	if expected, known := emotionTable[emoji]; !known || expected != label {
		return message, "", false
	}
	return strings.TrimSpace(message[len(m[0]):]), label, true
}

// EmotionPreset returns the voice settings for an emotion hint.
func EmotionPreset(emotion string) (VoiceSettings, bool) {
	preset, ok := emotionPresets[emotion]
	return preset, ok
}
