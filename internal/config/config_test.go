package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8456" {
		t.Errorf("Port = %q, want 8456", cfg.Port)
	}
	if cfg.ProviderPreference != "auto" {
		t.Errorf("ProviderPreference = %q", cfg.ProviderPreference)
	}
	if !cfg.ChimeEnabled {
		t.Error("ChimeEnabled default = false, want true")
	}
	if cfg.Volume != 0.8 {
		t.Errorf("Volume = %v", cfg.Volume)
	}
	if cfg.RateLimitMax != 10 || cfg.RateLimitWindow != time.Minute {
		t.Errorf("rate limit = %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	if cfg.ServerURL != "http://localhost:8456" {
		t.Errorf("ServerURL = %q", cfg.ServerURL)
	}
	if cfg.NotifyTimeout != 2*time.Second || cfg.StdinTimeout != 500*time.Millisecond {
		t.Errorf("timeouts = %v, %v", cfg.NotifyTimeout, cfg.StdinTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("VOICEBOX_PORT", "9000")
	t.Setenv("TTS_PROVIDER", "piper")
	t.Setenv("CHIME_ENABLED", "false")
	t.Setenv("PLAYBACK_VOLUME", "0.5")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("RATE_LIMIT_WINDOW_SECONDS", "30")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.ProviderPreference != "piper" {
		t.Errorf("ProviderPreference = %q", cfg.ProviderPreference)
	}
	if cfg.ChimeEnabled {
		t.Error("ChimeEnabled = true, want false")
	}
	if cfg.Volume != 0.5 {
		t.Errorf("Volume = %v", cfg.Volume)
	}
	if cfg.RateLimitMax != 3 || cfg.RateLimitWindow != 30*time.Second {
		t.Errorf("rate limit = %d per %v", cfg.RateLimitMax, cfg.RateLimitWindow)
	}
}

func TestInvalidEnvValuesFallBack(t *testing.T) {
	t.Setenv("CHIME_ENABLED", "maybe")
	t.Setenv("PLAYBACK_VOLUME", "11")
	t.Setenv("RATE_LIMIT_MAX", "lots")

	cfg := Load()
	if !cfg.ChimeEnabled {
		t.Error("invalid bool did not fall back to default")
	}
	if cfg.Volume != 0.8 {
		t.Errorf("out-of-range volume = %v, want default 0.8", cfg.Volume)
	}
	if cfg.RateLimitMax != 10 {
		t.Errorf("invalid int = %d, want default 10", cfg.RateLimitMax)
	}
}
