package models

import "time"

// NotificationRequest is the wire payload accepted by POST /notify.
// VoiceEnabled defaults to true when omitted.
type NotificationRequest struct {
	Title        string `json:"title"`
	Message      string `json:"message"`
	VoiceEnabled *bool  `json:"voice_enabled"`
	Priority     string `json:"priority,omitempty"`
	VoiceID      string `json:"voice_id,omitempty"`
	VoiceName    string `json:"voice_name,omitempty"`
}

// Voice returns whether speech should be produced for this request.
func (r *NotificationRequest) Voice() bool {
	return r.VoiceEnabled == nil || *r.VoiceEnabled
}

// VoiceProfile is a named preset of synthesis parameters associated
// with an agent personality.
type VoiceProfile struct {
	VoiceID         string  `json:"voice_id" yaml:"voice_id"`
	Stability       float64 `json:"stability" yaml:"stability"`
	SimilarityBoost float64 `json:"similarity_boost" yaml:"similarity_boost"`
	Description     string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// VoicesConfig is the static voice configuration loaded at server startup.
// Read-only after load; hot reload swaps the whole snapshot.
type VoicesConfig struct {
	DefaultVolume float64                 `json:"default_volume" yaml:"default_volume"`
	Voices        map[string]VoiceProfile `json:"voices" yaml:"voices"`
}

// NotificationRecord is one row of the notification history.
type NotificationRecord struct {
	ID        int64     `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Emotion   string    `json:"emotion,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	Success   bool      `json:"success"`
}
