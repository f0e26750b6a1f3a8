package tts

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsQuotaError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"429", &ProviderError{Provider: "elevenlabs", Status: 429, Message: "too many requests"}, true},
		{"402", &ProviderError{Provider: "elevenlabs", Status: 402, Message: "payment required"}, true},
		{"quota text", &ProviderError{Provider: "elevenlabs", Status: 401, Message: "character quota exceeded"}, true},
		{"rate limit text", &ProviderError{Provider: "elevenlabs", Message: "Rate limit hit"}, true},
		{"plain 500", &ProviderError{Provider: "elevenlabs", Status: 500, Message: "internal"}, false},
		{"wrapped", fmt.Errorf("synthesis: %w", &ProviderError{Status: 429}), true},
		{"ordinary error", errors.New("quota"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsQuotaError(tt.err); got != tt.want {
				t.Errorf("IsQuotaError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestProviderErrorString(t *testing.T) {
	e := &ProviderError{Provider: "elevenlabs", Status: 429, Message: "quota exceeded"}
	if got := e.Error(); got != "elevenlabs: 429 quota exceeded" {
		t.Errorf("Error() = %q", got)
	}
	e2 := &ProviderError{Provider: "piper", Message: "binary not found"}
	if got := e2.Error(); got != "piper: binary not found" {
		t.Errorf("Error() = %q", got)
	}
}
