package tts

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"voicebox/internal/models"
)

// VoiceRegistry holds the loaded personality profiles. The snapshot is
// read-only; hot reload replaces it atomically.
type VoiceRegistry struct {
	mu  sync.RWMutex
	cfg *models.VoicesConfig
}

// NewVoiceRegistry loads the voices file at path, or starts empty when
// path is "" or unreadable (the server must run with zero config).
func NewVoiceRegistry(path string) *VoiceRegistry {
	r := &VoiceRegistry{cfg: &models.VoicesConfig{Voices: map[string]models.VoiceProfile{}}}
	if path == "" {
		return r
	}
	if err := r.Load(path); err != nil {
		log.Printf("⚠️  [VOICES] Could not load %s: %v (using defaults)", path, err)
	}
	return r
}

// Load parses the voices file (.json or .yaml/.yml) and swaps the
// snapshot in.
func (r *VoiceRegistry) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read voices config: %w", err)
	}

	var cfg models.VoicesConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse voices yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse voices json: %w", err)
		}
	}
	if cfg.Voices == nil {
		cfg.Voices = map[string]models.VoiceProfile{}
	}

	r.mu.Lock()
	r.cfg = &cfg
	r.mu.Unlock()
	log.Printf("✅ [VOICES] Loaded %d voice profiles from %s", len(cfg.Voices), path)
	return nil
}

// Snapshot returns the current configuration.
func (r *VoiceRegistry) Snapshot() *models.VoicesConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.cfg
}

// Volume returns the configured playback volume, defaulting to 0.8.
func (r *VoiceRegistry) Volume() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.cfg.DefaultVolume > 0 && r.cfg.DefaultVolume <= 1 {
		return r.cfg.DefaultVolume
	}
	return 0.8
}

// Resolve picks the voice settings for a request. Priority: the emotion
// preset when a tag matched, then a personality profile looked up by
// key or by literal provider voice id, then the flat default.
func (r *VoiceRegistry) Resolve(voiceID, emotion string) VoiceSettings {
	if emotion != "" {
		if preset, ok := EmotionPreset(emotion); ok {
			preset.VoiceID = r.profileVoiceID(voiceID)
			return preset
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	if voiceID != "" {
		if profile, ok := r.cfg.Voices[voiceID]; ok {
			return VoiceSettings{
				VoiceID:         profile.VoiceID,
				Stability:       profile.Stability,
				SimilarityBoost: profile.SimilarityBoost,
			}
		}
		for _, profile := range r.cfg.Voices {
			if profile.VoiceID == voiceID {
				return VoiceSettings{
					VoiceID:         profile.VoiceID,
					Stability:       profile.Stability,
					SimilarityBoost: profile.SimilarityBoost,
				}
			}
		}
		// Unknown id: pass it through with default parameters.
		s := DefaultVoiceSettings
		s.VoiceID = voiceID
		return s
	}
	return DefaultVoiceSettings
}

func (r *VoiceRegistry) profileVoiceID(voiceID string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if profile, ok := r.cfg.Voices[voiceID]; ok {
		return profile.VoiceID
	}
	return voiceID
}

// Watch reloads the voices file whenever it changes on disk. Returns a
// stop function. Errors during reload keep the previous snapshot.
func (r *VoiceRegistry) Watch(path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create voices watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch voices dir: %w", err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != path {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := r.Load(path); err != nil {
					log.Printf("⚠️  [VOICES] Reload failed: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("⚠️  [VOICES] Watcher error: %v", err)
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
