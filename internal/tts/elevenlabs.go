package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const elevenLabsBaseURL = "https://api.elevenlabs.io/v1"

// ElevenLabs is the cloud synthesis provider. Output is mp3.
type ElevenLabs struct {
	apiKey         string
	defaultVoiceID string
	httpClient     *http.Client
	limiter        *rate.Limiter
}

// NewElevenLabs creates the cloud provider. The outbound limiter keeps
// a burst of local notifications from hammering the API.
func NewElevenLabs(apiKey, defaultVoiceID string) *ElevenLabs {
	return &ElevenLabs{
		apiKey:         apiKey,
		defaultVoiceID: defaultVoiceID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(2), 4),
	}
}

func (e *ElevenLabs) Name() string   { return "elevenlabs" }
func (e *ElevenLabs) Format() string { return "mp3" }

// Available requires a configured API key.
func (e *ElevenLabs) Available() bool { return e.apiKey != "" }

type elevenLabsRequest struct {
	Text          string                  `json:"text"`
	ModelID       string                  `json:"model_id"`
	VoiceSettings elevenLabsVoiceSettings `json:"voice_settings"`
}

type elevenLabsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func (e *ElevenLabs) Synthesize(ctx context.Context, text string, settings VoiceSettings) ([]byte, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("elevenlabs rate limiter: %w", err)
	}

	voiceID := settings.VoiceID
	if voiceID == "" {
		voiceID = e.defaultVoiceID
	}

	body, err := json.Marshal(elevenLabsRequest{
		Text:    text,
		ModelID: "eleven_turbo_v2_5",
		VoiceSettings: elevenLabsVoiceSettings{
			Stability:       settings.Stability,
			SimilarityBoost: settings.SimilarityBoost,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal elevenlabs request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", elevenLabsBaseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create elevenlabs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", e.apiKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("elevenlabs request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read elevenlabs response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ [TTS] ElevenLabs API error: %d - %s", resp.StatusCode, truncateForLog(respBody))

		var errorResp struct {
			Detail struct {
				Status  string `json:"status"`
				Message string `json:"message"`
			} `json:"detail"`
		}
		msg := string(respBody)
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Detail.Message != "" {
			msg = errorResp.Detail.Message
		}
		return nil, &ProviderError{Provider: "elevenlabs", Status: resp.StatusCode, Message: msg}
	}

	log.Printf("✅ [TTS] ElevenLabs synthesis successful (%d bytes)", len(respBody))
	return respBody, nil
}

func truncateForLog(b []byte) string {
	const max = 200
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
