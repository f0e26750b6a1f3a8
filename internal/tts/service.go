package tts

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"voicebox/internal/health"
	"voicebox/internal/metrics"
	"voicebox/internal/models"
)

// Recorder persists notification history and synthesis failures.
// Implemented by the database store; nil disables persistence.
type Recorder interface {
	RecordNotification(rec models.NotificationRecord) error
	LogSynthesisError(message, errMsg string) error
}

// Options wires up a notification service.
type Options struct {
	// Providers in cascade order. The last entry should be the
	// guaranteed platform fallback.
	Providers    []Provider
	Tracker      *health.Tracker
	Player       *Player
	Chime        *Chime
	Voices       *VoiceRegistry
	Recorder     Recorder
	ErrorLogPath string
	// Preference moves one provider to the front of the cascade:
	// "elevenlabs", "piper", "platform" or "auto".
	Preference string
}

// Service runs the speech pipeline: emotion extraction, voice
// resolution, chime, provider cascade, playback. Speech is a
// best-effort side effect; exhausting the whole cascade is logged, not
// surfaced to the HTTP caller.
type Service struct {
	providers    []Provider
	tracker      *health.Tracker
	player       *Player
	chime        *Chime
	voices       *VoiceRegistry
	recorder     Recorder
	errorLogPath string
}

// NewService creates the service and registers every provider with the
// health tracker.
func NewService(opts Options) *Service {
	providers := orderByPreference(opts.Providers, opts.Preference)
	for _, p := range providers {
		opts.Tracker.Register(p.Name())
	}
	return &Service{
		providers:    providers,
		tracker:      opts.Tracker,
		player:       opts.Player,
		chime:        opts.Chime,
		voices:       opts.Voices,
		recorder:     opts.Recorder,
		errorLogPath: opts.ErrorLogPath,
	}
}

func orderByPreference(providers []Provider, preference string) []Provider {
	if preference == "" || preference == "auto" {
		return providers
	}
	ordered := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p.Name() == preference {
			ordered = append(ordered, p)
		}
	}
	for _, p := range providers {
		if p.Name() != preference {
			ordered = append(ordered, p)
		}
	}
	return ordered
}

// Speak runs the full pipeline for a sanitized message. voiceEnabled
// false records the notification without producing audio.
func (s *Service) Speak(ctx context.Context, title, message, voiceID string, voiceEnabled bool) error {
	spoken, emotion, tagged := ExtractEmotion(message)
	if tagged {
		log.Printf("[TTS] Emotion hint: %s", emotion)
	}

	rec := models.NotificationRecord{
		CreatedAt: time.Now(),
		Title:     title,
		Message:   spoken,
		Emotion:   emotion,
	}

	if !voiceEnabled {
		s.record(rec)
		return nil
	}

	settings := s.voices.Resolve(voiceID, emotion)

	s.chime.Play(ctx)

	audio, format, provider, err := s.synthesize(ctx, spoken, settings)
	if err != nil {
		s.logExhausted(spoken, err)
		s.record(rec)
		return err
	}

	rec.Provider = provider
	rec.Success = true
	s.record(rec)

	if err := s.player.Play(ctx, audio, format); err != nil {
		log.Printf("⚠️  [TTS] Playback failed: %v", err)
		return err
	}
	return nil
}

// synthesize attempts each candidate provider in strict order; the
// first to succeed wins and its fixed output container is used for
// playback. A quota signal from a provider disables it for the rest of
// the process lifetime; any other failure degrades it and the loop
// moves on. When every provider fails, the last error is returned.
func (s *Service) synthesize(ctx context.Context, text string, settings VoiceSettings) (audio []byte, format, provider string, err error) {
	var lastErr error
	attempted := 0

	for _, p := range s.providers {
		if !p.Available() {
			continue
		}
		if !s.tracker.Usable(p.Name()) {
			log.Printf("[TTS] Skipping %s (disabled)", p.Name())
			continue
		}
		attempted++

		data, synthErr := p.Synthesize(ctx, text, settings)
		if synthErr == nil {
			s.tracker.MarkSuccess(p.Name())
			metrics.CountTTSAttempt(p.Name(), "success")
			return data, p.Format(), p.Name(), nil
		}

		lastErr = synthErr
		log.Printf("⚠️  [TTS] %s synthesis failed: %v", p.Name(), synthErr)
		if IsQuotaError(synthErr) {
			// Fast permanent fallback: quota will not clear on retry.
			s.tracker.MarkDisabled(p.Name(), synthErr.Error())
			metrics.CountTTSAttempt(p.Name(), "quota")
		} else {
			s.tracker.MarkFailure(p.Name(), synthErr.Error())
			metrics.CountTTSAttempt(p.Name(), "failure")
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no synthesis provider available")
	}
	return nil, "", "", fmt.Errorf("all %d providers failed: %w", attempted, lastErr)
}

// Providers returns the availability snapshot for the health endpoint.
func (s *Service) Providers() []ProviderAvailability {
	out := make([]ProviderAvailability, 0, len(s.providers))
	for _, p := range s.providers {
		status := s.tracker.Status(p.Name())
		out = append(out, ProviderAvailability{
			Name:      p.Name(),
			Format:    p.Format(),
			Available: p.Available() && status.State != health.StateDisabled,
			State:     string(status.State),
			Failures:  status.Failures,
		})
	}
	return out
}

// ProviderAvailability is the health-endpoint view of one provider.
type ProviderAvailability struct {
	Name      string `json:"name"`
	Format    string `json:"format"`
	Available bool   `json:"available"`
	State     string `json:"state"`
	Failures  int    `json:"consecutive_failures"`
}

func (s *Service) record(rec models.NotificationRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordNotification(rec); err != nil {
		log.Printf("⚠️  [TTS] Could not record notification: %v", err)
	}
}

// logExhausted appends the failure to the persistent error log and the
// recorder. The HTTP caller already received success.
func (s *Service) logExhausted(message string, cascadeErr error) {
	log.Printf("❌ [TTS] Cascade exhausted: %v", cascadeErr)

	if s.recorder != nil {
		if err := s.recorder.LogSynthesisError(message, cascadeErr.Error()); err != nil {
			log.Printf("⚠️  [TTS] Could not persist synthesis error: %v", err)
		}
	}
	if s.errorLogPath == "" {
		return
	}
	f, err := os.OpenFile(s.errorLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s\tmessage=%q\terror=%q\n", time.Now().Format(time.RFC3339), message, cascadeErr.Error())
}
