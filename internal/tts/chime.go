package tts

import (
	"context"
	"log"
	"os"
)

// Chime plays a short audio cue before synthesized speech. Failures are
// logged and swallowed so the cue never blocks the notification itself.
type Chime struct {
	enabled bool
	path    string
	player  *Player
}

func NewChime(enabled bool, path string, player *Player) *Chime {
	return &Chime{enabled: enabled, path: path, player: player}
}

// Play plays the chime to completion when enabled and the file exists.
func (c *Chime) Play(ctx context.Context) {
	if !c.enabled || c.path == "" {
		return
	}
	if _, err := os.Stat(c.path); err != nil {
		return
	}
	if err := c.player.PlayFile(ctx, c.path); err != nil {
		log.Printf("⚠️  [TTS] Chime playback failed: %v", err)
	}
}
