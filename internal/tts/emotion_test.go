package tts

import "testing"

func TestExtractEmotion(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		wantSpoken string
		wantHint   string
		wantOK     bool
	}{
		{"success tag", "[✅ success] Build finished", "Build finished", "success", true},
		{"error tag", "[❌ error] Tests failed", "Tests failed", "error", true},
		{"celebration tag", "[🎉 celebration] Release shipped", "Release shipped", "celebration", true},
		{"leading whitespace", "  [✅ success] Done", "Done", "success", true},
		{"mismatched pair untouched", "[✅ error] Build finished", "[✅ error] Build finished", "", false},
		{"unknown emoji untouched", "[🦊 success] Build finished", "[🦊 success] Build finished", "", false},
		{"no tag", "Build finished", "Build finished", "", false},
		{"tag not at start", "Build [✅ success] finished", "Build [✅ success] finished", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spoken, hint, ok := ExtractEmotion(tt.message)
			if spoken != tt.wantSpoken || hint != tt.wantHint || ok != tt.wantOK {
				t.Errorf("ExtractEmotion(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.message, spoken, hint, ok, tt.wantSpoken, tt.wantHint, tt.wantOK)
			}
		})
	}
}

func TestEmotionPreset(t *testing.T) {
	preset, ok := EmotionPreset("celebration")
	if !ok {
		t.Fatal("celebration preset missing")
	}
	if preset.Stability != 0.30 || preset.SimilarityBoost != 0.80 {
		t.Errorf("celebration preset = %+v", preset)
	}

	if _, ok := EmotionPreset("nonsense"); ok {
		t.Error("EmotionPreset accepted an unknown emotion")
	}
}

// TestEmotionTableCoverage checks every tag emoji maps to an emotion
// that has a synthesis preset.
func TestEmotionTableCoverage(t *testing.T) {
	for emoji, emotion := range emotionTable {
		if _, ok := emotionPresets[emotion]; !ok {
			t.Errorf("emotion %q (tag %s) has no preset", emotion, emoji)
		}
	}
}
