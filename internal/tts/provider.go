package tts

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// VoiceSettings parameterizes a synthesis call.
type VoiceSettings struct {
	VoiceID         string
	Stability       float64
	SimilarityBoost float64
}

// DefaultVoiceSettings is the flat fallback when neither an emotion
// preset nor a personality profile applies.
var DefaultVoiceSettings = VoiceSettings{Stability: 0.5, SimilarityBoost: 0.5}

// Provider is one interchangeable speech synthesizer in the cascade.
type Provider interface {
	Name() string
	// Format is the fixed output container of this provider ("mp3",
	// "wav", "aiff").
	Format() string
	// Available reports whether the provider can be attempted at all
	// (key configured, model file present). Health tracking is handled
	// by the cascade, not here.
	Available() bool
	Synthesize(ctx context.Context, text string, settings VoiceSettings) ([]byte, error)
}

// ProviderError carries the HTTP status of a failed cloud synthesis
// call so quota signals can be told apart from transient errors.
type ProviderError struct {
	Provider string
	Status   int
	Message  string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %d %s", e.Provider, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// IsQuotaError reports whether err is a quota or rate-limit signal that
// will not clear on retry within this process's lifetime.
func IsQuotaError(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		if pe.Status == 429 || pe.Status == 402 {
			return true
		}
		msg := strings.ToLower(pe.Message)
		return strings.Contains(msg, "quota") || strings.Contains(msg, "rate limit") ||
			strings.Contains(msg, "too many requests")
	}
	return false
}
