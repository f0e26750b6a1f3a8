package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port string

	// ElevenLabs (cloud TTS provider)
	ElevenLabsAPIKey  string
	ElevenLabsVoiceID string

	// Piper (local neural TTS provider)
	PiperBinary    string
	PiperModelPath string

	// Platform speech fallback (say / espeak)
	PlatformVoice string

	// Chime played before synthesized speech
	ChimeEnabled bool
	ChimePath    string

	// Provider preference: "auto", "elevenlabs", "piper" or "platform"
	ProviderPreference string

	// Voice personality configuration file (.json or .yaml)
	VoicesConfigPath string

	// Playback volume 0.0-1.0
	Volume float64

	// Notification history database ("" disables history)
	HistoryDBPath string

	// Persistent log for exhausted synthesis cascades
	ErrorLogPath string

	// Rate limiting for POST /notify (fixed window per client IP)
	RateLimitMax    int
	RateLimitWindow time.Duration

	// Analyzer (hook) side
	ServerURL     string
	NotifyTimeout time.Duration
	StdinTimeout  time.Duration
	MarkerDir     string
}

// Load loads configuration from environment variables with defaults.
// Every option has a default so the server runs with zero configuration;
// the platform speech command is always available as a fallback.
func Load() *Config {
	return &Config{
		Port: getEnv("VOICEBOX_PORT", "8456"),

		ElevenLabsAPIKey:  getEnv("ELEVENLABS_API_KEY", ""),
		ElevenLabsVoiceID: getEnv("ELEVENLABS_VOICE_ID", "21m00Tcm4TlvDq8ikWAM"),

		PiperBinary:    getEnv("PIPER_BINARY", "piper"),
		PiperModelPath: getEnv("PIPER_MODEL_PATH", ""),

		PlatformVoice: getEnv("PLATFORM_VOICE", "Samantha"),

		ChimeEnabled: getBoolEnv("CHIME_ENABLED", true),
		ChimePath:    getEnv("CHIME_PATH", filepath.Join(os.TempDir(), "voicebox-chime.mp3")),

		ProviderPreference: getEnv("TTS_PROVIDER", "auto"),

		VoicesConfigPath: getEnv("VOICES_CONFIG_PATH", ""),

		Volume: getFloatEnv("PLAYBACK_VOLUME", 0.8),

		HistoryDBPath: getEnv("HISTORY_DB_PATH", filepath.Join(dataDir(), "history.db")),
		ErrorLogPath:  getEnv("ERROR_LOG_PATH", filepath.Join(dataDir(), "tts-errors.log")),

		RateLimitMax:    getIntEnv("RATE_LIMIT_MAX", 10),
		RateLimitWindow: time.Duration(getIntEnv("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		ServerURL:     getEnv("VOICEBOX_SERVER_URL", "http://localhost:8456"),
		NotifyTimeout: time.Duration(getIntEnv("NOTIFY_TIMEOUT_MS", 2000)) * time.Millisecond,
		StdinTimeout:  time.Duration(getIntEnv("STDIN_TIMEOUT_MS", 500)) * time.Millisecond,
		MarkerDir:     getEnv("MARKER_DIR", os.TempDir()),
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(home, ".voicebox")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err == nil && parsed >= 0 && parsed <= 1 {
			return parsed
		}
	}
	return defaultValue
}
